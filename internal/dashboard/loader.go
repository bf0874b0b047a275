package dashboard

import (
	"errors"
	"time"
)

// State is the loader's coarse state
type State string

const (
	StateIdle       State = "idle"
	StateConnecting State = "connecting"
	StateLoaded     State = "loaded"
	StateFailed     State = "failed"
)

// Terminal reports whether a load has finished in this state
func (s State) Terminal() bool {
	return s == StateLoaded || s == StateFailed
}

// NoPhase is the phase index outside of the connecting state
const NoPhase = -1

// Status messages shown to the user
const (
	IdleMessage    = `Click "Verify Backend" to begin.`
	SuccessMessage = "Successfully connected and loaded!"
	FailureMessage = "Failed to connect to backend."
)

// Phases are the labels shown, in order, while connecting. Each one is held
// for the phase interval before the next; the request is only issued after
// the last.
var Phases = []string{
	"Initializing connection...",
	"Connecting to backend...",
	"Sending API request to /trips...",
	"Processing data...",
	"Rendering trips and chart...",
}

// DefaultPhaseInterval is how long each phase label is held
const DefaultPhaseInterval = 700 * time.Millisecond

var (
	// ErrLoadFailed covers every transport, status and decoding failure
	ErrLoadFailed = errors.New("load failed")
	// ErrLoadInProgress is returned when a load is already running
	ErrLoadInProgress = errors.New("load already in progress")
	// ErrAlreadyLoaded is returned when the session already holds trips
	ErrAlreadyLoaded = errors.New("trips already loaded")
)

// Status is the user-visible loader state
type Status struct {
	State     State     `json:"state"`
	Phase     int       `json:"phase"`
	Message   string    `json:"message"`
	Loaded    bool      `json:"loaded"`
	UpdatedAt time.Time `json:"updated_at"`
}

func idleStatus(now time.Time) Status {
	return Status{State: StateIdle, Phase: NoPhase, Message: IdleMessage, UpdatedAt: now}
}

func phaseStatus(phase int, now time.Time) Status {
	return Status{State: StateConnecting, Phase: phase, Message: Phases[phase], UpdatedAt: now}
}

func loadedStatus(now time.Time) Status {
	return Status{State: StateLoaded, Phase: NoPhase, Message: SuccessMessage, Loaded: true, UpdatedAt: now}
}

func failedStatus(now time.Time) Status {
	return Status{State: StateFailed, Phase: NoPhase, Message: FailureMessage, UpdatedAt: now}
}

// Clock abstracts time so the phase sequence can be driven without waiting
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

// RealClock returns a Clock backed by the time package
func RealClock() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}
