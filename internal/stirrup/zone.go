package stirrup

import (
	"github.com/WSDOT/PGSuper-sub013/internal/lrfd"
)

// Zone is one run of primary stirrups measured from the start of the girder.
// A Length of zero on the last zone means the zone runs to midspan
// (symmetric layouts) or to the end of the girder.
type Zone struct {
	Number             int          `json:"number" yaml:"number"`
	Length             float64      `json:"length" yaml:"length"` // mm
	BarSize            lrfd.BarSize `json:"bar_size" yaml:"bar_size"`
	Legs               float64      `json:"legs" yaml:"legs"`
	Spacing            float64      `json:"spacing" yaml:"spacing"` // mm
	ConfinementBarSize lrfd.BarSize `json:"confinement_bar_size" yaml:"confinement_bar_size"`
	InterfaceLegs      float64      `json:"interface_legs" yaml:"interface_legs"` // legs extended into the deck
	Designed           bool         `json:"designed" yaml:"-"`
}

// Av returns the area of one stirrup set (mm²)
func (z Zone) Av() float64 {
	if z.BarSize == lrfd.BarNone {
		return 0
	}
	return z.BarSize.Area() * z.Legs
}

// Avs returns the provided Av/s (mm²/mm)
func (z Zone) Avs() float64 {
	if z.BarSize == lrfd.BarNone || z.Spacing <= 0 {
		return 0
	}
	return z.Av() / z.Spacing
}

// InterfaceZone is a run of horizontal interface shear bars
type InterfaceZone struct {
	Number  int          `json:"number" yaml:"number"`
	Length  float64      `json:"length" yaml:"length"`
	BarSize lrfd.BarSize `json:"bar_size" yaml:"bar_size"`
	Bars    float64      `json:"bars" yaml:"bars"`
	Spacing float64      `json:"spacing" yaml:"spacing"`
}

// Avs returns the provided interface Av/s (mm²/mm)
func (z InterfaceZone) Avs() float64 {
	if z.BarSize == lrfd.BarNone || z.Spacing <= 0 {
		return 0
	}
	return z.BarSize.Area() * z.Bars / z.Spacing
}

// Layout is the complete transverse reinforcement description of a girder
type Layout struct {
	Symmetric      bool            `json:"symmetric" yaml:"symmetric"`
	Zones          []Zone          `json:"zones" yaml:"zones"`
	InterfaceZones []InterfaceZone `json:"interface_zones,omitempty" yaml:"interface_zones"`

	// Additional splitting reinforcement at each end
	SplittingBarSize    lrfd.BarSize `json:"splitting_bar_size" yaml:"splitting_bar_size"`
	SplittingBars       float64      `json:"splitting_bars" yaml:"splitting_bars"`
	SplittingSpacing    float64      `json:"splitting_spacing" yaml:"splitting_spacing"`
	SplittingZoneLength float64      `json:"splitting_zone_length" yaml:"splitting_zone_length"`

	// Additional confinement reinforcement at each end
	ConfinementBarSize    lrfd.BarSize `json:"confinement_bar_size" yaml:"confinement_bar_size"`
	ConfinementSpacing    float64      `json:"confinement_spacing" yaml:"confinement_spacing"`
	ConfinementZoneLength float64      `json:"confinement_zone_length" yaml:"confinement_zone_length"`
}

// Clone returns a deep copy of the layout
func (l Layout) Clone() Layout {
	out := l
	if l.Zones != nil {
		out.Zones = make([]Zone, len(l.Zones))
		copy(out.Zones, l.Zones)
	}
	if l.InterfaceZones != nil {
		out.InterfaceZones = make([]InterfaceZone, len(l.InterfaceZones))
		copy(out.InterfaceZones, l.InterfaceZones)
	}
	return out
}

// Renumber assigns zone numbers from one in storage order
func (l *Layout) Renumber() {
	for i := range l.Zones {
		l.Zones[i].Number = i + 1
	}
	for i := range l.InterfaceZones {
		l.InterfaceZones[i].Number = i + 1
	}
}

// ZoneAt returns the index of the primary zone covering station x
// (measured from the girder start) or -1 if the layout is empty.
func (l Layout) ZoneAt(x, girderLength float64) int {
	if len(l.Zones) == 0 {
		return -1
	}
	if l.Symmetric && x > girderLength/2 {
		x = girderLength - x
	}
	var end float64
	for i, z := range l.Zones {
		if i == len(l.Zones)-1 || z.Length <= 0 {
			return i
		}
		end += z.Length
		if x < end+lrfd.SpacingTol {
			return i
		}
	}
	return len(l.Zones) - 1
}

// AvsAt returns the primary Av/s provided at station x
func (l Layout) AvsAt(x, girderLength float64) float64 {
	i := l.ZoneAt(x, girderLength)
	if i < 0 {
		return 0
	}
	return l.Zones[i].Avs()
}
