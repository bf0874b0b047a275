package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/richxcame/trip-dashboard/pkg/models"
	"github.com/stretchr/testify/mock"
)

// MockSource is an in-package mock for testing
type MockSource struct {
	mock.Mock
}

func (m *MockSource) FetchTrips(ctx context.Context) ([]models.Trip, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Trip), args.Error(1)
}

// manualClock hands every requested wait to the test through waits, so the
// test decides when each phase ends.
type manualClock struct {
	mu    sync.Mutex
	now   time.Time
	waits chan chan time.Time
	asked []time.Duration
}

func newManualClock() *manualClock {
	return &manualClock{
		now:   time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		waits: make(chan chan time.Time, 16),
	}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	c.asked = append(c.asked, d)
	c.mu.Unlock()

	ch := make(chan time.Time, 1)
	c.waits <- ch
	return ch
}

// advance ends the next pending phase wait
func (c *manualClock) advance(d time.Duration) {
	ch := <-c.waits
	c.mu.Lock()
	c.now = c.now.Add(d)
	now := c.now
	c.mu.Unlock()
	ch <- now
}

func (c *manualClock) requested() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.asked...)
}

// instantClock never waits
type instantClock struct{}

func (instantClock) Now() time.Time { return time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC) }

func (instantClock) After(time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- time.Time{}
	return ch
}

func makeTrip(id int, vehicle models.VehicleType, payment models.PaymentMethod, fare float64, rating int, pickup, dropoff string) models.Trip {
	return models.Trip{
		TripID:        models.FlexString(fmt.Sprintf("T%04d", id)),
		UserID:        models.FlexString(fmt.Sprintf("U%03d", id%50)),
		Date:          fmt.Sprintf("2024-01-%02d", id%28+1),
		PickupPoint:   pickup,
		DropoffPoint:  dropoff,
		DistanceKM:    float64(id%20) + 1.5,
		DurationMin:   float64(id%45) + 5,
		Fare:          models.NewFare(fare),
		VehicleType:   vehicle,
		PaymentMethod: payment,
		UserRating:    models.Rating(rating),
	}
}

// sampleTrips builds a deterministic mixed collection of n trips
func sampleTrips(n int) []models.Trip {
	places := []string{"Airport", "MG Road", "Koramangala", "Whitefield", "Indiranagar", "Railway Station"}
	trips := make([]models.Trip, n)
	for i := 0; i < n; i++ {
		trips[i] = makeTrip(i+1,
			models.VehicleTypes[i%len(models.VehicleTypes)],
			models.PaymentMethods[i%len(models.PaymentMethods)],
			float64(50+(i*37)%900)+0.25,
			i%5+1,
			places[i%len(places)],
			places[(i+2)%len(places)],
		)
	}
	return trips
}

func tripIDs(trips []models.Trip) []string {
	ids := make([]string, len(trips))
	for i, t := range trips {
		ids[i] = string(t.TripID)
	}
	return ids
}
