package pipeline

import (
	"math"
	"sync"

	"github.com/banshee-data/rangefinder/internal/units"
)

// Extremes tracks the smallest and largest accepted distances. The
// converter is the only writer; the result is read once all stages have
// stopped.
type Extremes struct {
	mu  sync.Mutex
	min units.Inches
	max units.Inches
}

// NewExtremes returns Extremes holding the (+inf, -inf) sentinels.
func NewExtremes() *Extremes {
	return &Extremes{min: math.MaxInt, max: math.MinInt}
}

// Observe folds d into the running extremes. Ties do not update.
func (e *Extremes) Observe(d units.Inches) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if d < e.min {
		e.min = d
	}
	if d > e.max {
		e.max = d
	}
}

// Snapshot returns the current extremes and whether any distance has been
// observed. With none observed, min and max are still the sentinels.
func (e *Extremes) Snapshot() (lo, hi units.Inches, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.min, e.max, e.min <= e.max
}
