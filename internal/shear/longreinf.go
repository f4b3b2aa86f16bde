package shear

import (
	"math"

	"github.com/pkg/errors"

	"github.com/WSDOT/PGSuper-sub013/internal/artifact"
	"github.com/WSDOT/PGSuper-sub013/internal/lrfd"
)

// DesignLongitudinalReinforcement checks the longitudinal reinforcement for
// shear between the support faces and, when it fails, computes the rebar
// or strand area that would satisfy it.
func (d *Designer) DesignLongitudinalReinforcement() (Outcome, error) {
	p := d.params
	if d.checker == nil {
		return Success, nil
	}
	L := p.GirderLength

	var ld float64
	if p.LongReinfMethod == AddRebar {
		ld = lrfd.RebarDevelopmentLength(lrfd.Bar5, d.cfg.Fc, p.RebarFy)
	}

	cfg := d.cfg
	cfg.Layout = d.layout.Clone()

	var as float64
	for _, ls := range lrfd.StrengthLimitStates(p.Permit) {
		for _, x := range d.stations {
			if x < p.FaceOfSupport[0]-tol || x > p.FaceOfSupport[1]+tol {
				continue
			}
			r, err := d.checker.CheckLongReinfShear(ls, x, cfg)
			if err != nil {
				return Fail, errors.Wrapf(err, "longitudinal reinforcement check at %.1f mm (%s)", x, ls)
			}
			if !r.Applicable || r.Passed {
				continue
			}

			dist := math.Min(x, L-x)
			deficit := r.Demand - r.Capacity
			switch p.LongReinfMethod {
			case AddRebar:
				if dist <= tol {
					d.reason = artifact.NoDevelopmentLengthForLongReinfShear
					return Fail, nil
				}
				dev := 1.0
				if dist < ld {
					dev = dist / ld
				}
				as = math.Max(as, deficit/p.RebarFy/dev)
			case AddStrands:
				if dist <= tol {
					d.reason = artifact.NoStrandDevelopmentLengthForLongReinfShear
					return Fail, nil
				}
				if p.Edition >= lrfd.Edition2007 && r.Fpx < p.RebarFy {
					d.reason = artifact.ConflictWithLongReinforcementShearSpec
					return Fail, nil
				}
				fps := r.Fps
				if fps <= 0 {
					fps = lrfd.DefaultFps
				}
				as = math.Max(as, deficit/fps)
			}
			d.log.Debug().Str("limit_state", ls.String()).Float64("x", x).
				Float64("deficit", deficit).Msg("longitudinal reinforcement for shear short")
		}
	}

	if as <= 0 {
		return Success, nil
	}
	if p.LongReinfMethod == AddRebar && !p.IncludeRebarForShear {
		d.reason = artifact.ConflictWithLongReinforcementShearSpec
		return Fail, nil
	}
	d.longReinfAs = as
	if p.LongReinfMethod == AddStrands {
		return RestartWithAdditionalStrands, nil
	}
	return RestartWithAdditionalLongRebar, nil
}
