package stirrup

import (
	"math"
	"sort"

	"github.com/WSDOT/PGSuper-sub013/internal/lrfd"
)

// BarLegs is one acceptable (bar size, number of legs) combination
type BarLegs struct {
	Bar  lrfd.BarSize `json:"bar" yaml:"bar"`
	Legs float64      `json:"legs" yaml:"legs"`
}

// Av returns the area of one stirrup set (mm²)
func (b BarLegs) Av() float64 { return b.Bar.Area() * b.Legs }

// Catalog holds the bar and spacing choices available to the zone designer
type Catalog struct {
	combos   []BarLegs
	spacings []float64

	MaxSpacingChange  float64 // largest spacing increase between adjacent zones (mm)
	MaxCapacityChange float64 // largest fractional Av/s drop between adjacent zones
	MinZoneSpacings   int     // minimum number of spacings in a zone
	MinZoneLength     float64 // minimum zone length (mm)
	MaxSpacing        float64 // code maximum spacing (mm), 0 for none
	MaxAggregate      float64 // for the minimum clear spacing rule (mm)
}

// NewCatalog copies the combinations in precedence order and the spacings
// sorted ascending. Both are immutable afterwards.
func NewCatalog(combos []BarLegs, spacings []float64) *Catalog {
	c := &Catalog{
		combos:   append([]BarLegs(nil), combos...),
		spacings: append([]float64(nil), spacings...),
	}
	sort.Float64s(c.spacings)
	return c
}

// Combos returns a copy of the bar/legs combinations in precedence order
func (c *Catalog) Combos() []BarLegs { return append([]BarLegs(nil), c.combos...) }

// Spacings returns a copy of the available spacings, ascending
func (c *Catalog) Spacings() []float64 { return append([]float64(nil), c.spacings...) }

// MinSpacing returns the minimum center-to-center spacing for a bar
func (c *Catalog) MinSpacing(bar lrfd.BarSize) float64 {
	return lrfd.MinStirrupSpacing(bar, c.MaxAggregate)
}

// MaxMaxSpacing is the girder-wide upper bound on any stirrup spacing
func (c *Catalog) MaxMaxSpacing() float64 {
	if len(c.spacings) == 0 {
		return 0
	}
	last := c.spacings[len(c.spacings)-1]
	if c.MaxSpacing > 0 {
		return math.Min(c.MaxSpacing, last)
	}
	return last
}

// SpacingFromList returns the largest available spacing not exceeding s,
// or s itself if it is below the smallest available spacing.
func (c *Catalog) SpacingFromList(s float64) float64 {
	out := s
	for _, sp := range c.spacings {
		if sp <= s+lrfd.SpacingTol {
			out = sp
		} else {
			break
		}
	}
	return out
}

// MaxNextSpacing limits how much the spacing may grow in the zone that
// follows a zone spaced at s.
func (c *Catalog) MaxNextSpacing(s float64) float64 {
	next := c.MaxMaxSpacing()
	if c.MaxSpacingChange > 0 {
		next = math.Min(next, s+c.MaxSpacingChange)
	}
	if c.MaxCapacityChange > 0 {
		next = math.Min(next, s*(1+c.MaxCapacityChange))
	}
	return c.SpacingFromList(next)
}

// MinZoneLengthFor returns the minimum length of a zone spaced at s
func (c *Catalog) MinZoneLengthFor(s float64) float64 {
	return math.Max(s*float64(c.MinZoneSpacings), c.MinZoneLength)
}

// SpacingFor returns the largest available spacing for the combination
// that provides at least avs and does not exceed maxSpacing.
func (c *Catalog) SpacingFor(b BarLegs, avs, maxSpacing float64) (float64, bool) {
	if b.Bar == lrfd.BarNone || b.Legs <= 0 {
		return 0, false
	}
	av := b.Av()
	sMin := c.MinSpacing(b.Bar)
	for i := len(c.spacings) - 1; i >= 0; i-- {
		s := c.spacings[i]
		if s+lrfd.SpacingTol < sMin {
			break
		}
		if s > maxSpacing+lrfd.SpacingTol {
			continue
		}
		if av/s >= avs {
			return s, true
		}
	}
	return 0, false
}

// Select walks the combinations in precedence order and returns the first
// one, with its largest spacing, that satisfies avs within maxSpacing.
func (c *Catalog) Select(avs, maxSpacing float64) (BarLegs, float64, bool) {
	for _, b := range c.combos {
		if s, ok := c.SpacingFor(b, avs, maxSpacing); ok {
			return b, s, true
		}
	}
	return BarLegs{}, 0, false
}

// MinBarSizeAtLeast returns the smallest catalog bar whose area is not
// less than that of bar.
func (c *Catalog) MinBarSizeAtLeast(bar lrfd.BarSize) (lrfd.BarSize, bool) {
	best := lrfd.BarNone
	for _, b := range c.combos {
		if b.Bar.Area() < bar.Area() {
			continue
		}
		if best == lrfd.BarNone || b.Bar.Area() < best.Area() {
			best = b.Bar
		}
	}
	return best, best != lrfd.BarNone
}
