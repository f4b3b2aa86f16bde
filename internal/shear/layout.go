package shear

import (
	"github.com/WSDOT/PGSuper-sub013/internal/lrfd"
	"github.com/WSDOT/PGSuper-sub013/internal/stirrup"
)

// zoneBuilder accumulates primary zones while walking the design stations
// from the girder start toward midspan
type zoneBuilder struct {
	d      *Designer
	combo  stirrup.BarLegs
	zone   stirrup.Zone
	start  float64 // station where the open zone begins
	minLen float64
	next   float64 // largest spacing allowed in the following zone
	zones  []stirrup.Zone
}

func (b *zoneBuilder) open(s float64, minLen float64) {
	p := b.d.params
	b.zone.Spacing = s
	b.zone.Designed = true
	b.minLen = max(p.Catalog.MinZoneLengthFor(s), minLen)
	b.next = p.Catalog.MaxNextSpacing(s)
	b.zone.ConfinementBarSize = lrfd.BarNone
	if p.DesignConfinement && p.BarsActAsConfinement && b.d.inConfinementZone(b.start) {
		b.zone.ConfinementBarSize = b.combo.Bar
	}
}

func (b *zoneBuilder) close(length float64) {
	b.zone.Number = len(b.zones) + 1
	b.zone.Length = roundZoneLength(length)
	b.zones = append(b.zones, b.zone)
	b.start += b.zone.Length
}

func (b *zoneBuilder) closeLast() []stirrup.Zone {
	b.zone.Number = len(b.zones) + 1
	b.zone.Length = 0
	return append(b.zones, b.zone)
}

// LayoutPrimaryZones designs a symmetric layout of primary stirrup zones
// from the girder start to midspan. A single bar/legs combination is chosen
// at the first station and kept for the whole layout; zones close when the
// required spacing grows and the zone has reached its minimum length. The
// last zone has zero length and runs to midspan.
func (d *Designer) LayoutPrimaryZones() bool {
	p := d.params
	cat := p.Catalog
	mid := p.GirderLength / 2

	d.layout.Symmetric = true
	d.layout.Zones = nil

	if d.primaryDemandIn(0, p.GirderLength) <= 0 {
		d.layout.Zones = []stirrup.Zone{{Number: 1}}
		return true
	}

	b := &zoneBuilder{d: d}
	var prev float64
	for i, x := range d.stations {
		if x >= mid-tol && i > 0 {
			break
		}
		maxS := d.maxSpacingAt(x)
		avs, horizontal := d.primaryDemandAt(x)

		if i == 0 {
			combo, s, ok := cat.Select(avs, maxS)
			if !ok {
				d.failStirrups(horizontal)
				return false
			}
			b.combo = combo
			b.zone = stirrup.Zone{BarSize: combo.Bar, Legs: combo.Legs}
			if p.ExtendBarsIntoDeck {
				b.zone.InterfaceLegs = combo.Legs
			}

			// the end zone must resist splitting when primary bars count
			var splitLen float64
			sp := d.checks.Splitting
			if p.DesignSplitting && p.PrimaryBarsForSplitting && sp.Applicable {
				if req := sp.AvsRequired(); req > avs {
					// at the tightest spacing, additional splitting bars make
					// up the difference
					if s2, ok := cat.SpacingFor(combo, req, maxS); ok {
						s = s2
					} else if sps := cat.Spacings(); len(sps) > 0 {
						s = sps[0]
					}
					splitLen = max(sp.ZoneLength[0], sp.ZoneLength[1])
				}
			}
			b.open(s, splitLen)
		} else if x > b.start {
			s, ok := cat.SpacingFor(b.combo, avs, maxS)
			if !ok {
				d.failStirrups(horizontal)
				return false
			}
			if s > b.next {
				s = b.next
			}
			if s > b.zone.Spacing+tol {
				zl := ceilOff(prev-b.start, b.zone.Spacing) + 2*b.zone.Spacing
				if zl >= b.minLen-tol {
					b.close(zl)
					b.open(s, 0)
				}
			}
		}

		if i > 0 && b.zone.Spacing >= cat.MaxMaxSpacing()-tol {
			break
		}
		prev = x
	}

	d.layout.Zones = b.closeLast()
	d.log.Debug().Int("zones", len(d.layout.Zones)).Str("bar", b.combo.Bar.String()).
		Float64("legs", b.combo.Legs).Msg("primary zones laid out")
	return true
}
