package lrfd

import "fmt"

// LimitState identifies an AASHTO LRFD load combination limit state
type LimitState int

const (
	StrengthI LimitState = iota
	StrengthII
	ServiceI
	ServiceIII
)

func (ls LimitState) String() string {
	switch ls {
	case StrengthI:
		return "Strength I"
	case StrengthII:
		return "Strength II"
	case ServiceI:
		return "Service I"
	case ServiceIII:
		return "Service III"
	}
	return fmt.Sprintf("LimitState(%d)", int(ls))
}

// LoadCombination represents an AASHTO LRFD load combination
// Based on Table 3.4.1-1, maximum load factors for permanent loads
type LoadCombination struct {
	LimitState  LimitState
	Description string
	// Load factors for each load component
	DC   float64 // Structural components (girder, deck)
	DW   float64 // Wearing surface and utilities
	LLIM float64 // Vehicular live load with dynamic allowance
}

// LoadCombinations lists the combinations used by the girder design loop
var LoadCombinations = map[LimitState]LoadCombination{
	StrengthI: {
		LimitState:  StrengthI,
		Description: "1.25DC + 1.50DW + 1.75(LL+IM)",
		DC:          1.25,
		DW:          1.50,
		LLIM:        1.75,
	},
	StrengthII: {
		LimitState:  StrengthII,
		Description: "1.25DC + 1.50DW + 1.35(LL+IM) permit",
		DC:          1.25,
		DW:          1.50,
		LLIM:        1.35,
	},
	ServiceI: {
		LimitState:  ServiceI,
		Description: "1.0DC + 1.0DW + 1.0(LL+IM)",
		DC:          1.0,
		DW:          1.0,
		LLIM:        1.0,
	},
	ServiceIII: {
		LimitState:  ServiceIII,
		Description: "1.0DC + 1.0DW + 0.8(LL+IM)",
		DC:          1.0,
		DW:          1.0,
		LLIM:        0.8,
	},
}

// LoadEffects holds unfactored effects (moment or shear) from each load component
type LoadEffects struct {
	DCGirder float64 // girder self weight
	DCDeck   float64 // deck and haunch
	DW       float64 // wearing surface
	LLIM     float64 // live load plus impact
}

// Factored combines the load effects for this combination
func (lc LoadCombination) Factored(e LoadEffects) float64 {
	return lc.DC*(e.DCGirder+e.DCDeck) +
		lc.DW*e.DW +
		lc.LLIM*e.LLIM
}

// StrengthLimitStates returns the strength limit states considered for design
func StrengthLimitStates(permit bool) []LimitState {
	if permit {
		return []LimitState{StrengthI, StrengthII}
	}
	return []LimitState{StrengthI}
}
