package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(ttl time.Duration) (*Registry, *time.Time) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	r := NewRegistry(func() *Controller {
		return NewController(new(MockSource), WithClock(instantClock{}))
	}, ttl)
	r.now = func() time.Time { return now }
	return r, &now
}

func TestRegistry_CreateGetDelete(t *testing.T) {
	r, _ := newTestRegistry(time.Minute)

	id, controller := r.Create()
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, StateIdle, controller.Status().State)
	assert.Equal(t, 1, r.Len())

	got, err := r.Get(id)
	require.NoError(t, err)
	assert.Same(t, controller, got)

	other, _ := r.Create()
	assert.NotEqual(t, id, other)

	require.NoError(t, r.Delete(id))
	_, err = r.Get(id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, r.Delete(id), ErrSessionNotFound)
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_Sweep(t *testing.T) {
	r, now := newTestRegistry(10 * time.Minute)

	stale, _ := r.Create()
	*now = now.Add(8 * time.Minute)
	fresh, _ := r.Create()

	*now = now.Add(5 * time.Minute)
	removed := r.Sweep(*now)

	assert.Equal(t, 1, removed)
	_, err := r.Get(stale)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = r.Get(fresh)
	assert.NoError(t, err)
}

func TestRegistry_GetRefreshesSession(t *testing.T) {
	r, now := newTestRegistry(10 * time.Minute)
	id, _ := r.Create()

	*now = now.Add(9 * time.Minute)
	_, err := r.Get(id)
	require.NoError(t, err)

	*now = now.Add(9 * time.Minute)
	assert.Equal(t, 0, r.Sweep(*now))
}

func TestRegistry_SweepKeepsLoadingSessions(t *testing.T) {
	clock := newManualClock()
	source := new(MockSource)
	source.On("FetchTrips", mock.Anything).Return(sampleTrips(1), nil).Maybe()

	r, now := newTestRegistry(time.Minute)
	r.factory = func() *Controller {
		return NewController(source, WithClock(clock), WithPhaseInterval(time.Second))
	}

	id, controller := r.Create()
	_, err := controller.LoadAsync(context.Background())
	require.NoError(t, err)

	*now = now.Add(time.Hour)
	assert.Equal(t, 0, r.Sweep(*now))
	_, err = r.Get(id)
	assert.NoError(t, err)
}

func TestNewRegistry_DefaultTTL(t *testing.T) {
	r := NewRegistry(func() *Controller { return nil }, 0)
	assert.Equal(t, DefaultSessionTTL, r.ttl)
}

func TestRegistry_RunStopsOnCancel(t *testing.T) {
	r, _ := newTestRegistry(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		r.Run(ctx, time.Millisecond)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
