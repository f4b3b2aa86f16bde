package analysis

import (
	"context"
	"math"

	"github.com/pkg/errors"

	"github.com/WSDOT/PGSuper-sub013/internal/artifact"
	"github.com/WSDOT/PGSuper-sub013/internal/lrfd"
	"github.com/WSDOT/PGSuper-sub013/internal/shear"
)

// concrete shear resistance with the simplified procedure
const (
	beta     = 2.0
	cotTheta = 1.0
)

// StirrupChecks evaluates the stirrup requirements of every strength limit
// state at the stations
func (m *Model) StirrupChecks(ctx context.Context, cfg artifact.Config, stations []float64) (shear.CheckSet, error) {
	eff, err := m.LoadEffects(ctx, stations)
	if err != nil {
		return shear.CheckSet{}, errors.Wrap(err, "stirrup checks")
	}

	g := m.g
	sec := m.Section(cfg)
	fy := g.Materials.StirrupFy
	vc := lrfd.ConcreteShearResistance(beta, cfg.Fc, sec.Bv, sec.Dv)
	avMin := lrfd.MinTransverseAvs(cfg.Fc, sec.Bv, fy)

	var set shear.CheckSet
	for _, ls := range lrfd.StrengthLimitStates(g.Criteria.Permit) {
		pts := make([]shear.PointCheck, len(stations))
		for i, x := range stations {
			vu, _ := eff[i].Factored(ls)
			pts[i] = m.pointCheck(x, vu, vc, avMin, sec, cfg.Fc)
		}
		set.LimitStates = append(set.LimitStates, shear.LimitStateChecks{LimitState: ls, Points: pts})
	}

	if cfg.Strands > 0 {
		pr := lrfd.SplittingForceFraction * float64(cfg.Strands) * g.Strands.Area * lrfd.StrandJacking * lrfd.StrandFpu
		zl := m.splittingZone()
		set.Splitting = shear.SplittingCheck{
			Applicable: true,
			Force:      [2]float64{pr, pr},
			ZoneLength: [2]float64{zl, zl},
			Fs:         lrfd.SplittingStress,
		}
	}

	cz := m.confinementZone()
	set.Confinement = shear.ConfinementCheck{
		Applicable: true,
		MinBar:     lrfd.Bar3,
		MaxSpacing: lrfd.ConfinementMaxSpacing,
		ZoneLength: [2]float64{cz, cz},
	}
	set.MaxConnectorSpacing = lrfd.MaxConnectorSpacing
	return set, nil
}

func (m *Model) pointCheck(x, vu, vc, avMin float64, sec Section, fc float64) shear.PointCheck {
	fy := m.g.Materials.StirrupFy
	phi := lrfd.PhiShear

	vs := vu/phi - vc
	avs := math.Max(vs, 0) / (fy * sec.Dv * cotTheta)
	mandatory := vu > 0.5*phi*vc
	if mandatory {
		avs = math.Max(avs, avMin)
	}

	vuFc := vu / (phi * sec.Bv * sec.Dv) / fc
	pc := shear.PointCheck{
		X:                x,
		AvsReqd:          avs,
		Mandatory:        mandatory,
		StrutTieRequired: vuFc > lrfd.StrutTieStressLimit,
		VuOverFc:         vuFc,
		SMax:             lrfd.MaxStirrupSpacing(vuFc, sec.Dv),
	}

	if d := m.g.Deck; d != nil {
		h := lrfd.InterfaceAvsRequired(vu/sec.Dv, d.InterfaceWidth, fy, lrfd.InterfaceShearFactors(d.Roughened))
		if h > 0 {
			h = math.Max(h, lrfd.MinInterfaceAvs(d.InterfaceWidth, fy))
		}
		pc.HorizAvsReqd = h
	}
	return pc
}

// CheckLongReinfShear compares the tension the longitudinal reinforcement
// must carry because of shear with what the strands and added rebar can
// develop at the station
func (m *Model) CheckLongReinfShear(ls lrfd.LimitState, x float64, cfg artifact.Config) (shear.LongReinfResult, error) {
	g := m.g
	if x < 0 || x > g.Length {
		return shear.LongReinfResult{}, errors.Errorf("station %.1f mm is off the girder", x)
	}
	vu, mu := m.effectsAt(x).Factored(ls)
	sec := m.Section(cfg)

	vs := cfg.Layout.AvsAt(x, g.Length) * g.Materials.StirrupFy * sec.Dv * cotTheta
	vs = math.Min(vs, vu/lrfd.PhiShear)
	demand := math.Max(mu, 0)/(sec.Dv*lrfd.PhiFlexure) + math.Abs(vu/lrfd.PhiShear-0.5*vs)*cotTheta

	dist := math.Min(x, g.Length-x)
	var fps, fpx float64
	if sec.Aps > 0 {
		fps = sec.Fps
		fpx = lrfd.StrandStressAt(dist, sec.Fpe, sec.Fps, g.Strands.Diameter)
	}

	dev := 1.0
	if ld := lrfd.RebarDevelopmentLength(lrfd.Bar5, cfg.Fc, g.Materials.RebarFy); dist < ld {
		dev = dist / ld
	}
	capacity := sec.Aps*fpx + sec.As*g.Materials.RebarFy*dev

	return shear.LongReinfResult{
		Applicable: true,
		Passed:     capacity >= demand,
		Demand:     demand,
		Capacity:   capacity,
		Fps:        fps,
		Fpx:        fpx,
	}, nil
}

func (m *Model) splittingZone() float64 { return lrfd.SplittingZoneFactor * m.props.Height }

func (m *Model) confinementZone() float64 { return lrfd.ConfinementZoneFactor * m.props.Height }
