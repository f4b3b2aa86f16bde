package lrfd

import (
	"fmt"
	"strings"
)

// BarSize is an ASTM A615 bar designation
type BarSize int

const (
	BarNone BarSize = iota
	Bar3
	Bar4
	Bar5
	Bar6
	Bar7
	Bar8
	Bar9
	Bar10
	Bar11
)

type barProperties struct {
	name     string
	area     float64 // mm²
	diameter float64 // mm
}

var barTable = map[BarSize]barProperties{
	BarNone: {"none", 0, 0},
	Bar3:    {"#3", 71, 9.5},
	Bar4:    {"#4", 129, 12.7},
	Bar5:    {"#5", 199, 15.9},
	Bar6:    {"#6", 284, 19.1},
	Bar7:    {"#7", 387, 22.2},
	Bar8:    {"#8", 510, 25.4},
	Bar9:    {"#9", 645, 28.7},
	Bar10:   {"#10", 819, 32.3},
	Bar11:   {"#11", 1006, 35.8},
}

// Area returns the nominal bar area (mm²)
func (b BarSize) Area() float64 { return barTable[b].area }

// Diameter returns the nominal bar diameter (mm)
func (b BarSize) Diameter() float64 { return barTable[b].diameter }

func (b BarSize) String() string {
	if p, ok := barTable[b]; ok {
		return p.name
	}
	return fmt.Sprintf("BarSize(%d)", int(b))
}

// ParseBarSize accepts "#5", "5" or "none"
func ParseBarSize(s string) (BarSize, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "none" {
		return BarNone, nil
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	for b, p := range barTable {
		if p.name == s {
			return b, nil
		}
	}
	return BarNone, fmt.Errorf("unknown bar size %q", s)
}

func (b *BarSize) UnmarshalText(text []byte) error {
	v, err := ParseBarSize(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

func (b BarSize) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// MinStirrupSpacing is the center-to-center spacing implied by the clear
// distance limits max(1.5 db, 1.5 aggregate, 38 mm) (Article 5.10.3.1.1)
func MinStirrupSpacing(bar BarSize, maxAggregate float64) float64 {
	db := bar.Diameter()
	clear := max(1.5*db, 1.5*maxAggregate, 38.0)
	return clear + db
}

// MaxStirrupSpacing returns the maximum transverse reinforcement spacing
// for the given shear stress ratio vu/f'c and effective shear depth
// Article 5.8.2.7
func MaxStirrupSpacing(vuOverFc, dv float64) float64 {
	if vuOverFc < 0.125 {
		return min(0.8*dv, StirrupSpacingLimitLow)
	}
	return min(0.4*dv, StirrupSpacingLimitHigh)
}
