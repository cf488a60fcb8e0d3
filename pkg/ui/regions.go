package ui

// Loading-indicator region identifiers.
const (
	RegionDashboard = "dashboard"
	RegionSymbols   = "symbols"
	RegionConfig    = "config"
)

// Regions tracks which screen areas show a loading indicator. Show and Hide
// are idempotent: repeating either is a no-op.
type Regions struct {
	active map[string]bool
}

// NewRegions creates an empty region tracker.
func NewRegions() *Regions {
	return &Regions{active: make(map[string]bool)}
}

// Show marks a region as loading.
func (r *Regions) Show(id string) {
	r.active[id] = true
}

// Hide clears a region's loading indicator.
func (r *Regions) Hide(id string) {
	delete(r.active, id)
}

// Active reports whether a region is currently loading.
func (r *Regions) Active(id string) bool {
	return r.active[id]
}

// Any reports whether any region is loading; drives the shared spinner tick.
func (r *Regions) Any() bool {
	return len(r.active) > 0
}
