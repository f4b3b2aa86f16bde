package shear

import (
	"math"

	"github.com/WSDOT/PGSuper-sub013/internal/artifact"
	"github.com/WSDOT/PGSuper-sub013/internal/lrfd"
	"github.com/WSDOT/PGSuper-sub013/internal/stirrup"
)

// ModifyExistingLayout keeps the zone boundaries of the current layout and
// upgrades bars and spacings where capacity falls short of demand.
// Asymmetric layouts are walked from both ends.
func (d *Designer) ModifyExistingLayout() bool {
	L := d.params.GirderLength
	if len(d.layout.Zones) == 0 {
		d.layout.Symmetric = true
		d.layout.Zones = []stirrup.Zone{{}}
	}
	d.layout.Renumber()

	if !d.amendFrom(stirrup.FromStart, d.critical.Left) {
		return false
	}
	if !d.layout.Symmetric && !d.amendFrom(stirrup.FromEnd, L-d.critical.Right) {
		return false
	}
	if d.layout.Symmetric {
		d.ExpandZoneLengths()
	}
	return true
}

// amendFrom walks the zones from one end. cssDist is the distance from that
// end to its critical section.
func (d *Designer) amendFrom(dir stirrup.Direction, cssDist float64) bool {
	p := d.params
	cat := p.Catalog
	w := stirrup.NewWalker(d.layout, p.GirderLength, dir)

	nextCap := math.MaxFloat64
	cssItem := -1
	var css stirrup.Zone

	k := 0
	for w.First(); !w.Done(); w.Next() {
		it := w.Item()
		z := &d.layout.Zones[it.Index]
		maxS := d.maxSpacingAt(it.TestLoc)
		demand := d.primaryDemandIn(it.Start, it.End)

		if demand > z.Avs() {
			designed := false
			if z.BarSize != lrfd.BarNone && z.Legs > 0 {
				if s, ok := cat.SpacingFor(stirrup.BarLegs{Bar: z.BarSize, Legs: z.Legs}, demand, nextCap); ok {
					z.Spacing = math.Min(s, maxS)
					designed = true
				}
			}
			if !designed {
				combo, s, ok := cat.Select(demand, nextCap)
				if !ok {
					d.reason = artifact.TooManyStirrupsReqd
					return false
				}
				z.BarSize, z.Legs, z.Spacing = combo.Bar, combo.Legs, math.Min(s, maxS)
			}
			z.Designed = true
		}
		if z.Spacing > maxS+tol {
			z.Spacing = maxS
			z.Designed = true
		}
		if p.ExtendBarsIntoDeck && z.InterfaceLegs < z.Legs {
			z.InterfaceLegs = z.Legs
		}

		if z.Spacing > 0 {
			nextCap = cat.MaxNextSpacing(z.Spacing)
		} else {
			nextCap = math.MaxFloat64
		}
		if cssItem < 0 && it.Reach >= cssDist-tol {
			cssItem = k
			css = *z
		}
		k++
	}

	// zones between the support and the critical section carry at least the
	// critical section capacity
	if cssItem > 0 && css.Avs() > 0 {
		w.First()
		for j := 0; j < cssItem && !w.Done(); j++ {
			z := &d.layout.Zones[w.Item().Index]
			if z.Avs() < css.Avs() {
				z.BarSize, z.Spacing, z.Legs = css.BarSize, css.Spacing, css.Legs
				if p.ExtendBarsIntoDeck {
					z.InterfaceLegs = css.Legs
				}
				z.Designed = true
			}
			w.Next()
		}
	}
	return true
}

// ExpandZoneLengths makes every designed zone but the last an integer
// number of spacings long, growing the zone when needed
func (d *Designer) ExpandZoneLengths() {
	ExpandZoneLengths(d.layout.Zones)
}

// ExpandZoneLengths rounds zone lengths up to whole spacings in place
func ExpandZoneLengths(zones []stirrup.Zone) {
	for i := 0; i < len(zones)-1; i++ {
		z := &zones[i]
		if !z.Designed || z.Spacing <= 0 || z.Length <= 0 {
			continue
		}
		n := z.Length / z.Spacing
		whole := math.Floor(n)
		rem := n - whole
		if rem < tol || 1-rem < tol {
			continue
		}
		z.Length = roundZoneLength(z.Spacing * (whole + 1))
	}
}
