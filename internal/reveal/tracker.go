// Package reveal tracks which page sections have been scrolled into view.
//
// A Tracker owns a viewport Observer and keeps one latch per registered
// region. A latch flips from hidden to revealed the first time the observer
// reports the region at or above the threshold ratio, and never flips back.
package reveal

import (
	"sync"
)

// DefaultThreshold is the visible fraction of a region needed to reveal it
const DefaultThreshold = 0.1

// Entry is one observation: the fraction of a region's area inside the viewport
type Entry struct {
	Region string
	Ratio  float64
}

// Callback receives all entries produced by one viewport change
type Callback func(entries []Entry)

// Observer is the viewport capability the tracker drives. Implementations
// report intersection ratios for observed regions through the callback they
// were created with.
type Observer interface {
	Observe(region string)
	Unobserve(region string)
	Disconnect()
}

// ObserverFactory creates an observer bound to the tracker's callback
type ObserverFactory func(cb Callback) Observer

// Map is a read-only snapshot of reveal flags
type Map map[string]bool

// Revealed reports the flag for region (false when unknown)
func (m Map) Revealed(region string) bool {
	return m[region]
}

// Tracker maintains the monotonic reveal flag of each registered region
type Tracker struct {
	mu        sync.Mutex
	threshold float64
	observer  Observer
	flags     map[string]bool // registered regions
	latched   map[string]bool // revealed regions, kept across Deregister
	closed    bool
	onReveal  func(regions []string)
}

// NewTracker creates a tracker and its observer. A threshold outside (0, 1]
// falls back to DefaultThreshold.
func NewTracker(factory ObserverFactory, threshold float64) *Tracker {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	t := &Tracker{
		threshold: threshold,
		flags:     make(map[string]bool),
		latched:   make(map[string]bool),
	}
	t.observer = factory(t.handle)
	return t
}

// OnReveal sets a hook invoked after a batch reveals at least one region.
// The hook runs outside the tracker lock.
func (t *Tracker) OnReveal(fn func(regions []string)) {
	t.mu.Lock()
	t.onReveal = fn
	t.mu.Unlock()
}

// Register starts observing region. A region revealed earlier in the page
// view comes back revealed.
func (t *Tracker) Register(region string) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	if _, ok := t.flags[region]; ok {
		t.mu.Unlock()
		return
	}
	t.flags[region] = t.latched[region]
	t.mu.Unlock()

	t.observer.Observe(region)
}

// Deregister stops observing region. A revealed flag stays latched.
func (t *Tracker) Deregister(region string) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	if _, ok := t.flags[region]; !ok {
		t.mu.Unlock()
		return
	}
	delete(t.flags, region)
	t.mu.Unlock()

	t.observer.Unobserve(region)
}

// Revealed reports whether region has been revealed
func (t *Tracker) Revealed(region string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.latched[region]
}

// Snapshot returns a copy of the flags of registered and revealed regions
func (t *Tracker) Snapshot() Map {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(Map, len(t.flags)+len(t.latched))
	for k, v := range t.flags {
		out[k] = v
	}
	for k := range t.latched {
		out[k] = true
	}
	return out
}

// Close disconnects the observer. It is safe to call more than once; later
// observer callbacks are ignored.
func (t *Tracker) Close() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.closed = true
	t.mu.Unlock()

	t.observer.Disconnect()
}

// Closed reports whether Close has been called
func (t *Tracker) Closed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}

// handle applies one batch of entries under a single lock
func (t *Tracker) handle(entries []Entry) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	var revealed []string
	for _, e := range entries {
		flag, registered := t.flags[e.Region]
		if !registered || flag {
			continue
		}
		if e.Ratio >= t.threshold {
			t.flags[e.Region] = true
			t.latched[e.Region] = true
			revealed = append(revealed, e.Region)
		}
	}
	hook := t.onReveal
	t.mu.Unlock()

	if len(revealed) > 0 && hook != nil {
		hook(revealed)
	}
}
