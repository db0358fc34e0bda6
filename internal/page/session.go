// Package page owns the state of one page view: the catalog load, the
// product split, and the section reveal flags. The TUI reads it through
// snapshots and changes it only through the methods below.
package page

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/thunderx/thunder/internal/catalog"
	"github.com/thunderx/thunder/internal/domain"
	"github.com/thunderx/thunder/internal/reveal"
	"github.com/thunderx/thunder/internal/service"
)

// Page regions, top to bottom
const (
	RegionHero         = "hero"
	RegionProducts     = "products"
	RegionTestimonials = "testimonials"
	RegionCTA          = "cta"
)

// Regions lists the animated regions in page order
var Regions = []string{RegionHero, RegionProducts, RegionTestimonials, RegionCTA}

// Session is one mounted page view
type Session struct {
	id         string
	loader     *service.CatalogLoader
	isPriority catalog.Predicate
	tracker    *reveal.Tracker
	layout     *reveal.LayoutObserver
	logger     *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	state  domain.LoadState
	split  catalog.Partition
	closed bool
}

func newSession(parent context.Context, id string, loader *service.CatalogLoader, isPriority catalog.Predicate, threshold float64, logger *slog.Logger) *Session {
	ctx, cancel := context.WithCancel(parent)
	s := &Session{
		id:         id,
		loader:     loader,
		isPriority: isPriority,
		logger:     logger.With("session", id),
		ctx:        ctx,
		cancel:     cancel,
		state:      domain.PendingLoad(),
		split:      catalog.Split(nil, isPriority),
	}
	s.tracker = reveal.NewTracker(func(cb reveal.Callback) reveal.Observer {
		s.layout = reveal.NewLayoutObserver(cb)
		return s.layout
	}, threshold)
	s.tracker.OnReveal(func(regions []string) {
		s.logger.Debug("sections revealed", "regions", regions)
	})
	return s
}

// ID returns the session identifier
func (s *Session) ID() string {
	return s.id
}

// Load runs the catalog fetches. It blocks and is meant to run inside a
// command goroutine; Close cancels it.
func (s *Session) Load() service.LoadResult {
	return s.loader.Load(s.ctx)
}

// Apply records the outcome of Load. It returns false when the result was
// discarded because the session is closed or the load already settled.
func (s *Session) Apply(res service.LoadResult) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		s.logger.Debug("discarding load result after unmount")
		return false
	}

	var (
		next domain.LoadState
		err  error
	)
	if res.Err != nil {
		next, err = s.state.Fail(res.Err)
	} else {
		next, err = s.state.Succeed(res.Items, res.Endorsements)
	}
	if err != nil {
		s.logger.Warn("ignoring load result", "error", err)
		return false
	}

	s.state = next
	s.split = catalog.Split(next.Items(), s.isPriority)
	s.logger.Info("catalog state changed", "status", next.Status().String(),
		"priority", len(s.split.Priority), "remainder", len(s.split.Remainder))
	return true
}

// State returns the current load state
func (s *Session) State() domain.LoadState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Partition returns the display split of the loaded items
func (s *Session) Partition() catalog.Partition {
	s.mu.Lock()
	defer s.mu.Unlock()
	return catalog.Partition{
		Priority:  append([]domain.Item{}, s.split.Priority...),
		Remainder: append([]domain.Item{}, s.split.Remainder...),
	}
}

// Matching returns the split of the loaded items that match query. Filtering
// runs before the split so both buckets keep their relative order.
func (s *Session) Matching(query string) catalog.Partition {
	if strings.TrimSpace(query) == "" {
		return s.Partition()
	}
	return catalog.Split(catalog.Filter(s.State().Items(), query), s.isPriority)
}

// Reveals returns a snapshot of the section flags
func (s *Session) Reveals() reveal.Map {
	return s.tracker.Snapshot()
}

// UpdateLayout registers the rendered regions and publishes their bounds
func (s *Session) UpdateLayout(bounds map[string]reveal.Bounds) {
	if s.Closed() {
		return
	}
	for region := range bounds {
		s.tracker.Register(region)
	}
	s.layout.SetLayout(bounds)
}

// Scroll publishes the viewport position
func (s *Session) Scroll(offset, height int) {
	if s.Closed() {
		return
	}
	s.layout.Scroll(offset, height)
}

// Close unmounts the session: the pending load is cancelled and the
// viewport observer disconnected. Safe to call more than once.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.tracker.Close()
	s.logger.Debug("session closed")
}

// Closed reports whether the session has been unmounted
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
