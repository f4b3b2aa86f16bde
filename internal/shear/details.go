package shear

import (
	"math"

	"github.com/WSDOT/PGSuper-sub013/internal/artifact"
	"github.com/WSDOT/PGSuper-sub013/internal/envelope"
	"github.com/WSDOT/PGSuper-sub013/internal/lrfd"
	"github.com/WSDOT/PGSuper-sub013/internal/stirrup"
)

// DetailHorizontalInterfaceShear sizes the interface shear bars when the
// primary bars are not extended into the deck
func (d *Designer) DetailHorizontalInterfaceShear() bool {
	p := d.params
	l := &d.layout
	if !p.HasDeck {
		l.InterfaceZones = nil
		return true
	}

	if p.FromScratch || len(l.InterfaceZones) < 2 {
		l.InterfaceZones = make([]stirrup.InterfaceZone, len(l.Zones))
		for i, z := range l.Zones {
			l.InterfaceZones[i] = stirrup.InterfaceZone{Number: z.Number, Length: z.Length}
		}
	}

	zoneMax := p.GirderLength
	if l.Symmetric {
		zoneMax = p.GirderLength / 2
	}
	maxS := d.checks.MaxConnectorSpacing
	if maxS <= 0 {
		maxS = lrfd.MaxConnectorSpacing
	}

	var start float64
	for i := range l.InterfaceZones {
		hz := &l.InterfaceZones[i]
		end := start + hz.Length
		done := i == len(l.InterfaceZones)-1 || hz.Length <= 0 || end >= zoneMax-tol
		if done {
			end = zoneMax
		}

		demand := d.horizMax(start, end)
		provided := hz.Avs()
		switch {
		case demand > provided:
			if !d.sizeInterfaceZone(hz, demand, maxS) {
				d.reason = artifact.TooManyStirrupsReqdForHorizontalInterfaceShear
				return false
			}
		case demand <= 0 && provided <= 0:
			// minimum bars wherever there is a deck
			d.sizeInterfaceZone(hz, envelope.MandatoryAvs, maxS)
		}

		if done {
			l.InterfaceZones = l.InterfaceZones[:i+1]
			break
		}
		start = end
	}

	if p.FromScratch {
		l.InterfaceZones = collapseInterfaceZones(l.InterfaceZones)
	}
	l.Renumber()
	return true
}

// sizeInterfaceZone upgrades the spacing of the current bars first, then
// falls back to the catalog combinations
func (d *Designer) sizeInterfaceZone(hz *stirrup.InterfaceZone, demand, maxS float64) bool {
	cat := d.params.Catalog
	if hz.BarSize != lrfd.BarNone && hz.Bars > 0 {
		if s, ok := cat.SpacingFor(stirrup.BarLegs{Bar: hz.BarSize, Legs: hz.Bars}, demand, maxS); ok {
			hz.Spacing = s
			return true
		}
	}
	combo, s, ok := cat.Select(demand, maxS)
	if !ok {
		return false
	}
	hz.BarSize, hz.Bars, hz.Spacing = combo.Bar, combo.Legs, s
	return true
}

// collapseInterfaceZones merges adjacent zones with identical bars. A zone
// merged with the open-ended last zone stays open-ended.
func collapseInterfaceZones(in []stirrup.InterfaceZone) []stirrup.InterfaceZone {
	out := make([]stirrup.InterfaceZone, 0, len(in))
	for _, z := range in {
		if n := len(out); n > 0 {
			last := &out[n-1]
			if last.BarSize == z.BarSize && last.Bars == z.Bars && math.Abs(last.Spacing-z.Spacing) < tol {
				if last.Length <= 0 || z.Length <= 0 {
					last.Length = 0
				} else {
					last.Length += z.Length
				}
				continue
			}
		}
		out = append(out, z)
	}
	return out
}

// DetailAdditionalSplitting provides splitting reinforcement beyond what
// the primary bars supply
func (d *Designer) DetailAdditionalSplitting() bool {
	p := d.params
	sp := d.checks.Splitting
	l := &d.layout
	if !p.DesignSplitting || !sp.Applicable {
		return true
	}

	req := sp.AvsRequired()
	if p.PrimaryBarsForSplitting {
		if primary, ok := d.minPrimaryAvsNearEnds(sp.ZoneLength); ok {
			req -= primary
		}
	}

	if req <= 0 {
		l.SplittingBarSize = lrfd.BarNone
		l.SplittingBars = 0
		l.SplittingSpacing = 0
		l.SplittingZoneLength = 0
		return true
	}

	zl := max(sp.ZoneLength[0], sp.ZoneLength[1])
	if !p.FromScratch && l.SplittingBarSize != lrfd.BarNone && l.SplittingSpacing > 0 {
		if l.SplittingBarSize.Area()*l.SplittingBars/l.SplittingSpacing >= req {
			return true
		}
	}

	combo, s, ok := p.Catalog.Select(req, zl)
	if !ok {
		d.reason = artifact.TooManyStirrupsReqdForSplitting
		return false
	}
	l.SplittingBarSize = combo.Bar
	l.SplittingBars = combo.Legs
	l.SplittingSpacing = s
	l.SplittingZoneLength = ceilOff(zl-tol, s)
	return true
}

// minPrimaryAvsNearEnds is the smallest primary Av/s in the zones within
// the given distances of each end
func (d *Designer) minPrimaryAvsNearEnds(dist [2]float64) (float64, bool) {
	L := d.params.GirderLength
	m := math.Inf(1)
	visit := func(dir stirrup.Direction, reach float64) {
		w := stirrup.NewWalker(d.layout, L, dir)
		for w.First(); !w.Done(); w.Next() {
			it := w.Item()
			z := d.layout.Zones[it.Index]
			if z.BarSize != lrfd.BarNone {
				m = math.Min(m, z.Avs())
			}
			if it.Reach >= reach-tol {
				break
			}
		}
	}
	visit(stirrup.FromStart, dist[0])
	if !d.layout.Symmetric {
		visit(stirrup.FromEnd, dist[1])
	}
	return m, !math.IsInf(m, 1)
}

// DetailAdditionalConfinement adds confinement bars at the girder ends when
// the primary bars do not confine the end zones
func (d *Designer) DetailAdditionalConfinement() bool {
	p := d.params
	cf := d.checks.Confinement
	l := &d.layout
	if !p.DesignConfinement || !cf.Applicable {
		return true
	}
	if p.BarsActAsConfinement && p.FromScratch {
		return true
	}

	need := false
	check := func(dir stirrup.Direction, reach float64) {
		w := stirrup.NewWalker(d.layout, p.GirderLength, dir)
		for w.First(); !w.Done(); w.Next() {
			it := w.Item()
			z := d.layout.Zones[it.Index]
			if z.ConfinementBarSize == lrfd.BarNone || z.Spacing > cf.MaxSpacing+tol ||
				z.ConfinementBarSize.Area() < cf.MinBar.Area() {
				need = true
			}
			if it.Reach >= reach-tol {
				break
			}
		}
	}
	check(stirrup.FromStart, cf.ZoneLength[0])
	if !l.Symmetric {
		check(stirrup.FromEnd, cf.ZoneLength[1])
	}
	if !need {
		return true
	}

	zl := max(cf.ZoneLength[0], cf.ZoneLength[1])
	adequate := l.ConfinementBarSize != lrfd.BarNone &&
		l.ConfinementBarSize.Area() >= cf.MinBar.Area() &&
		l.ConfinementSpacing > 0 && l.ConfinementSpacing <= cf.MaxSpacing+tol &&
		l.ConfinementZoneLength >= zl-tol
	if adequate {
		return true
	}

	bar, ok := p.Catalog.MinBarSizeAtLeast(cf.MinBar)
	if !ok {
		bar = cf.MinBar
	}
	l.ConfinementBarSize = bar
	l.ConfinementSpacing = cf.MaxSpacing
	l.ConfinementZoneLength = ceilOff(zl, cf.MaxSpacing)
	return true
}
