package lrfd

import "math"

// InterfaceFactors holds the cohesion and friction factors for
// interface shear transfer (Article 5.8.4.3)
type InterfaceFactors struct {
	C  float64 // cohesion (MPa)
	Mu float64 // friction factor
	K1 float64 // fraction of f'c available
	K2 float64 // limiting interface resistance (MPa)
}

// InterfaceShearFactors returns the factors for a cast-in-place deck placed
// against a girder top flange, roughened or not
func InterfaceShearFactors(roughened bool) InterfaceFactors {
	if roughened {
		return InterfaceFactors{C: 1.9, Mu: 1.0, K1: 0.3, K2: 12.4}
	}
	return InterfaceFactors{C: 0.52, Mu: 0.6, K1: 0.2, K2: 5.5}
}

// InterfaceAvsRequired returns the Av/s (mm²/mm) needed across an interface
// of width bvi to carry the factored horizontal shear per unit length vui (N/mm)
func InterfaceAvsRequired(vui, bvi, fy float64, f InterfaceFactors) float64 {
	if vui <= 0 || fy <= 0 {
		return 0
	}
	vni := vui / PhiShear
	avs := (vni - f.C*bvi) / (f.Mu * fy)
	return math.Max(avs, 0)
}

// MinInterfaceAvs is the minimum interface reinforcement 0.35 bvi / fy
func MinInterfaceAvs(bvi, fy float64) float64 {
	if fy <= 0 {
		return 0
	}
	return 0.35 * bvi / fy
}

// MinTransverseAvs is the minimum transverse reinforcement
// 0.083 √f'c bv / fy (Article 5.8.2.5)
func MinTransverseAvs(fc, bv, fy float64) float64 {
	if fy <= 0 {
		return 0
	}
	return 0.083 * math.Sqrt(fc) * bv / fy
}

// ConcreteShearResistance returns Vc = 0.083 β √f'c bv dv (N)
func ConcreteShearResistance(beta, fc, bv, dv float64) float64 {
	return 0.083 * beta * math.Sqrt(fc) * bv * dv
}
