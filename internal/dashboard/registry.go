package dashboard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/richxcame/trip-dashboard/pkg/logger"
	"go.uber.org/zap"
)

// DefaultSessionTTL is how long an untouched session is kept
const DefaultSessionTTL = 30 * time.Minute

// ErrSessionNotFound is returned for unknown or expired session ids
var ErrSessionNotFound = errors.New("dashboard session not found")

// Factory builds the controller for a new session
type Factory func() *Controller

type session struct {
	controller *Controller
	lastSeen   time.Time
}

// Registry holds dashboard sessions in memory, keyed by uuid
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*session
	factory  Factory
	ttl      time.Duration
	now      func() time.Time
}

// NewRegistry creates a registry. A non-positive ttl uses DefaultSessionTTL.
func NewRegistry(factory Factory, ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Registry{
		sessions: make(map[string]*session),
		factory:  factory,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create starts a new idle session
func (r *Registry) Create() (string, *Controller) {
	id := uuid.New().String()
	controller := r.factory()

	r.mu.Lock()
	r.sessions[id] = &session{controller: controller, lastSeen: r.now()}
	r.mu.Unlock()

	activeSessions.Inc()
	return id, controller
}

// Get returns the session's controller and marks it as used
func (r *Registry) Get(id string) (*Controller, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.lastSeen = r.now()
	return s.controller, nil
}

// Delete ends a session and discards its state
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	s, ok := r.sessions[id]
	if ok {
		delete(r.sessions, id)
	}
	r.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	s.controller.Close()
	activeSessions.Dec()
	return nil
}

// Len returns the number of live sessions
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep removes sessions idle for longer than the ttl. Sessions with a
// load in flight are kept. It returns how many were removed.
func (r *Registry) Sweep(now time.Time) int {
	var expired []*session

	r.mu.Lock()
	for id, s := range r.sessions {
		if now.Sub(s.lastSeen) <= r.ttl {
			continue
		}
		if s.controller.Status().State == StateConnecting {
			continue
		}
		delete(r.sessions, id)
		expired = append(expired, s)
	}
	r.mu.Unlock()

	for _, s := range expired {
		s.controller.Close()
		activeSessions.Dec()
	}
	return len(expired)
}

// Run sweeps expired sessions every interval until ctx is done
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(r.now()); n > 0 {
				logger.Info("expired dashboard sessions removed", zap.Int("count", n))
			}
		}
	}
}
