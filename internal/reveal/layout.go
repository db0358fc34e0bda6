package reveal

import "sync"

// Bounds is the vertical extent of a region in document rows
type Bounds struct {
	Top    int
	Height int
}

// LayoutObserver is an Observer for row-based layouts such as a terminal
// viewport. The renderer publishes region bounds and the view publishes its
// scroll position; every change reports the ratio of each observed region.
type LayoutObserver struct {
	mu           sync.Mutex
	cb           Callback
	observed     map[string]bool
	bounds       map[string]Bounds
	offset       int
	height       int
	disconnected bool
}

// NewLayoutObserver creates an observer reporting to cb
func NewLayoutObserver(cb Callback) *LayoutObserver {
	return &LayoutObserver{
		cb:       cb,
		observed: make(map[string]bool),
		bounds:   make(map[string]Bounds),
	}
}

func (o *LayoutObserver) Observe(region string) {
	o.mu.Lock()
	if o.disconnected {
		o.mu.Unlock()
		return
	}
	o.observed[region] = true
	o.mu.Unlock()
	o.emit()
}

func (o *LayoutObserver) Unobserve(region string) {
	o.mu.Lock()
	delete(o.observed, region)
	o.mu.Unlock()
}

func (o *LayoutObserver) Disconnect() {
	o.mu.Lock()
	o.disconnected = true
	o.observed = make(map[string]bool)
	o.mu.Unlock()
}

// Observing reports whether region is currently observed
func (o *LayoutObserver) Observing(region string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.observed[region]
}

// SetLayout replaces all region bounds and re-evaluates intersections
func (o *LayoutObserver) SetLayout(bounds map[string]Bounds) {
	o.mu.Lock()
	o.bounds = make(map[string]Bounds, len(bounds))
	for k, v := range bounds {
		o.bounds[k] = v
	}
	o.mu.Unlock()
	o.emit()
}

// Scroll records the viewport position and re-evaluates intersections
func (o *LayoutObserver) Scroll(offset, height int) {
	o.mu.Lock()
	o.offset = offset
	o.height = height
	o.mu.Unlock()
	o.emit()
}

// emit reports every observed region with known bounds in one batch
func (o *LayoutObserver) emit() {
	o.mu.Lock()
	if o.disconnected || o.height <= 0 {
		o.mu.Unlock()
		return
	}
	entries := make([]Entry, 0, len(o.observed))
	for region := range o.observed {
		b, ok := o.bounds[region]
		if !ok {
			continue
		}
		entries = append(entries, Entry{Region: region, Ratio: Ratio(b, o.offset, o.height)})
	}
	cb := o.cb
	o.mu.Unlock()

	if len(entries) > 0 && cb != nil {
		cb(entries)
	}
}

// Ratio returns the fraction of b inside the viewport rows [offset, offset+height).
// A zero-height region counts as fully visible when its top row is on screen.
func Ratio(b Bounds, offset, height int) float64 {
	viewTop, viewBottom := offset, offset+height
	if b.Height <= 0 {
		if b.Top >= viewTop && b.Top < viewBottom {
			return 1
		}
		return 0
	}
	top := max(b.Top, viewTop)
	bottom := min(b.Top+b.Height, viewBottom)
	if bottom <= top {
		return 0
	}
	return float64(bottom-top) / float64(b.Height)
}
