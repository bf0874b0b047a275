package dashboard

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/richxcame/trip-dashboard/internal/tripsource"
	"github.com/richxcame/trip-dashboard/pkg/logger"
	"github.com/richxcame/trip-dashboard/pkg/models"
	"github.com/richxcame/trip-dashboard/pkg/pagination"
	"go.uber.org/zap"
)

const subscriberBuffer = 8

// Option configures a Controller
type Option func(*Controller)

// WithClock replaces the real clock
func WithClock(clock Clock) Option {
	return func(c *Controller) {
		c.clock = clock
	}
}

// WithPhaseInterval sets how long each phase label is held. Zero skips the
// waits entirely.
func WithPhaseInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d < 0 {
			d = 0
		}
		c.interval = d
	}
}

// PageView is the visible window over the filtered collection
type PageView struct {
	Trips      []models.Trip `json:"trips"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages int           `json:"total_pages"`
	Total      int           `json:"total"`
}

// View is everything a dashboard renders at once
type View struct {
	Status      Status     `json:"status"`
	Criteria    Criteria   `json:"criteria"`
	FareCeiling float64    `json:"fare_ceiling"`
	Page        PageView   `json:"page"`
	Chart       *ChartData `json:"chart,omitempty"`
}

// Controller owns one dashboard session: the loaded trips, the active
// criteria, the filtered collection and the page cursor. Every derivation
// happens synchronously under mu.
type Controller struct {
	source   tripsource.Source
	clock    Clock
	interval time.Duration

	mu       sync.Mutex
	status   Status
	all      []models.Trip
	filtered []models.Trip
	criteria Criteria
	ceiling  float64
	page     int

	subs    map[int]chan Status
	nextSub int
	closed  bool
}

// NewController creates an idle controller reading trips from source
func NewController(source tripsource.Source, opts ...Option) *Controller {
	c := &Controller{
		source:   source,
		clock:    RealClock(),
		interval: DefaultPhaseInterval,
		subs:     make(map[int]chan Status),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.status = idleStatus(c.clock.Now())
	c.all = []models.Trip{}
	c.filtered = []models.Trip{}
	c.ceiling = DefaultFareCeiling
	c.criteria = DefaultCriteria(c.ceiling)
	c.page = pagination.DefaultPage
	return c
}

// Status returns the current loader status
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Subscribe returns a channel receiving every status change until the next
// load finishes, at which point the channel is closed. Slow readers miss
// intermediate updates; Status always reports the latest one.
func (c *Controller) Subscribe() (<-chan Status, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan Status, subscriberBuffer)
	if c.closed {
		close(ch)
		return ch, func() {}
	}

	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch

	return ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if sub, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(sub)
		}
	}
}

// Load runs the whole phase sequence and the fetch, returning once the
// session is loaded or failed. Only idle and failed sessions may load.
func (c *Controller) Load(ctx context.Context) error {
	if err := c.begin(); err != nil {
		return err
	}
	return c.run(ctx)
}

// LoadAsync starts a load in the background and returns the first phase
// status. ctx must outlive the load.
func (c *Controller) LoadAsync(ctx context.Context) (Status, error) {
	if err := c.begin(); err != nil {
		return c.Status(), err
	}

	status := c.Status()
	go func() {
		_ = c.run(ctx)
	}()
	return status, nil
}

func (c *Controller) begin() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.status.State {
	case StateConnecting:
		return ErrLoadInProgress
	case StateLoaded:
		return ErrAlreadyLoaded
	}

	c.all = []models.Trip{}
	c.refilterLocked()
	c.publishLocked(phaseStatus(0, c.clock.Now()))
	return nil
}

func (c *Controller) run(ctx context.Context) error {
	log := logger.WithContext(ctx)

	for i := range Phases {
		if i > 0 {
			c.setStatus(phaseStatus(i, c.clock.Now()))
		}
		log.Debug("loader phase", zap.Int("phase", i), zap.String("label", Phases[i]))
		if c.interval > 0 {
			<-c.clock.After(c.interval)
		}
	}

	start := time.Now()
	trips, err := c.source.FetchTrips(ctx)
	elapsed := time.Since(start).Seconds()

	if err != nil {
		c.setStatus(failedStatus(c.clock.Now()))
		recordLoad("failure", elapsed, 0)
		log.Error("trip load failed", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	c.complete(trips)
	recordLoad("success", elapsed, len(trips))
	log.Info("trips loaded", zap.Int("count", len(trips)), zap.Float64("fare_ceiling", c.Ceiling()))
	return nil
}

func (c *Controller) complete(trips []models.Trip) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.all = append(make([]models.Trip, 0, len(trips)), trips...)
	c.ceiling = fareCeiling(trips)
	c.criteria.MaxFare = c.ceiling
	c.refilterLocked()
	c.publishLocked(loadedStatus(c.clock.Now()))
}

// fareCeiling is the largest fare rounded up, or 0 when there are no trips
func fareCeiling(trips []models.Trip) float64 {
	if len(trips) == 0 {
		return 0
	}
	highest := math.Inf(-1)
	for _, t := range trips {
		if v := t.Fare.Value(); v > highest {
			highest = v
		}
	}
	return math.Ceil(highest)
}

func (c *Controller) setStatus(s Status) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.publishLocked(s)
}

func (c *Controller) publishLocked(s Status) {
	c.status = s
	for _, ch := range c.subs {
		select {
		case ch <- s:
		default:
		}
	}

	if s.State.Terminal() {
		for id, ch := range c.subs {
			delete(c.subs, id)
			close(ch)
		}
	}
}

// Criteria returns the active filter criteria
func (c *Controller) Criteria() Criteria {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.criteria
}

// Ceiling returns the fare ceiling seeded by the last successful load
func (c *Controller) Ceiling() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ceiling
}

// Total returns the size of the full collection
func (c *Controller) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.all)
}

// SetCriteria replaces the criteria, refilters and returns to page 1
func (c *Controller) SetCriteria(criteria Criteria) PageView {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.criteria = criteria
	c.refilterLocked()
	return c.pageViewLocked()
}

// Reset restores the default criteria over [0, ceiling] and page 1
func (c *Controller) Reset() PageView {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.criteria = DefaultCriteria(c.ceiling)
	c.refilterLocked()
	return c.pageViewLocked()
}

// SetPage selects page n. Pages outside [1, totalPages] select page 1.
func (c *Controller) SetPage(n int) PageView {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.page = pagination.Clamp(n, pagination.PageSize, len(c.filtered))
	return c.pageViewLocked()
}

// Page returns the current page
func (c *Controller) Page() PageView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pageViewLocked()
}

// Chart projects the current page into the fare bar series
func (c *Controller) Chart() ChartData {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Project(c.pageViewLocked().Trips)
}

// View returns status, criteria, page and chart in one consistent snapshot.
// The chart is omitted until trips are loaded.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	page := c.pageViewLocked()
	view := View{
		Status:      c.status,
		Criteria:    c.criteria,
		FareCeiling: c.ceiling,
		Page:        page,
	}
	if c.status.Loaded {
		chart := Project(page.Trips)
		view.Chart = &chart
	}
	return view
}

// Close ends the session and releases status subscribers
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	for id, ch := range c.subs {
		delete(c.subs, id)
		close(ch)
	}
}

func (c *Controller) refilterLocked() {
	c.filtered = Apply(c.all, c.criteria)
	c.page = pagination.DefaultPage
}

func (c *Controller) pageViewLocked() PageView {
	total := len(c.filtered)
	start, end := pagination.Window(c.page, pagination.PageSize, total)

	rows := make([]models.Trip, end-start)
	copy(rows, c.filtered[start:end])

	return PageView{
		Trips:      rows,
		Page:       c.page,
		PageSize:   pagination.PageSize,
		TotalPages: pagination.TotalPages(total, pagination.PageSize),
		Total:      total,
	}
}
