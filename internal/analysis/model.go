// Package analysis evaluates load effects and code checks for a simply
// supported pretensioned girder under uniform loads. It answers the demand
// and capacity queries of the design loop for a trial configuration.
package analysis

import (
	"context"
	"math"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/WSDOT/PGSuper-sub013/internal/girder"
	"github.com/WSDOT/PGSuper-sub013/internal/lrfd"
)

// component is one independent load case
type component int

const (
	dcGirder component = iota
	dcDeck
	dw
	llim
	permit
	numComponents
)

var componentNames = [numComponents]string{"DC girder", "DC deck", "DW", "LL+IM", "permit"}

func (c component) String() string { return componentNames[c] }

// Model answers the analysis queries of the design loop for one girder
type Model struct {
	g     *girder.Girder
	props girder.Properties
	rule  CriticalSectionRule
	log   zerolog.Logger

	w [numComponents]float64 // uniform load per component (N/mm)
}

// New builds the analysis model of a validated girder
func New(g *girder.Girder, log zerolog.Logger) *Model {
	m := &Model{
		g:     g,
		props: g.Properties(),
		rule:  CriticalSectionRuleFor(g.Criteria.EditionValue()),
		log:   log,
	}

	// kN/m³ times mm² gives 1e-6 N/mm
	m.w[dcGirder] = m.props.Area * g.Materials.UnitWeight * 1e-6
	if d := g.Deck; d != nil {
		m.w[dcDeck] = d.Thickness * d.Width * g.Materials.UnitWeight * 1e-6
	}
	m.w[dcDeck] += g.Loads.ExtraDC
	m.w[dw] = g.Loads.DW
	m.w[llim] = g.Loads.LLIM * g.Loads.DistFactor
	m.w[permit] = g.Loads.Permit * g.Loads.DistFactor
	return m
}

// Girder returns the girder being analyzed
func (m *Model) Girder() *girder.Girder { return m.g }

// Properties returns the gross section properties
func (m *Model) Properties() girder.Properties { return m.props }

// Effects are the unfactored shear (N) and moment (N·mm) of each load
// component at one station
type Effects struct {
	V [numComponents]float64
	M [numComponents]float64
}

// Factored returns |Vu| and Mu for a limit state. Strength II replaces the
// design live load with the permit vehicle.
func (e Effects) Factored(ls lrfd.LimitState) (vu, mu float64) {
	lc := lrfd.LoadCombinations[ls]
	live := llim
	if ls == lrfd.StrengthII {
		live = permit
	}
	v := lrfd.LoadEffects{DCGirder: e.V[dcGirder], DCDeck: e.V[dcDeck], DW: e.V[dw], LLIM: e.V[live]}
	mo := lrfd.LoadEffects{DCGirder: e.M[dcGirder], DCDeck: e.M[dcDeck], DW: e.M[dw], LLIM: e.M[live]}
	return math.Abs(lc.Factored(v)), lc.Factored(mo)
}

// LoadEffects evaluates every load component at the stations. Components
// run concurrently; each goroutine writes only its own component slot so
// the result does not depend on scheduling.
func (m *Model) LoadEffects(ctx context.Context, xs []float64) ([]Effects, error) {
	out := make([]Effects, len(xs))
	eg, ctx := errgroup.WithContext(ctx)
	for c := component(0); c < numComponents; c++ {
		eg.Go(func() error {
			for i, x := range xs {
				if i%64 == 0 {
					if err := ctx.Err(); err != nil {
						return errors.Wrapf(err, "%s load effects", c)
					}
				}
				out[i].V[c], out[i].M[c] = m.beamEffects(m.w[c], x)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// effectsAt evaluates all components at a single station
func (m *Model) effectsAt(x float64) Effects {
	var e Effects
	for c := component(0); c < numComponents; c++ {
		e.V[c], e.M[c] = m.beamEffects(m.w[c], x)
	}
	return e
}

// beamEffects returns the shear and moment of a uniform load w on the span
// between bearings. The girder ends beyond the bearings are unloaded.
func (m *Model) beamEffects(w, x float64) (v, mo float64) {
	b := m.g.Bearings()
	ls := b[1] - b[0]
	u := x - b[0]
	if w == 0 || u < 0 || u > ls {
		return 0, 0
	}
	return w * (ls/2 - u), w * u * (ls - u) / 2
}
