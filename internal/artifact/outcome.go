package artifact

import "fmt"

// Outcome is the terminal state code of a girder design
type Outcome int

const (
	NotDesigned Outcome = iota
	Success
	TooManyStrandsReqd
	TooManyStirrupsReqd
	TooManyStirrupsReqdForHorizontalInterfaceShear
	TooManyStirrupsReqdForSplitting
	ShearExceedsMaxConcreteStrength
	NoDevelopmentLengthForLongReinfShear
	NoStrandDevelopmentLengthForLongReinfShear
	ConflictWithLongReinforcementShearSpec
	MaxIterExceeded
	DesignFailed
)

var outcomeNames = map[Outcome]string{
	NotDesigned:         "NotDesigned",
	Success:             "Success",
	TooManyStrandsReqd:  "TooManyStrandsReqd",
	TooManyStirrupsReqd: "TooManyStirrupsReqd",
	TooManyStirrupsReqdForHorizontalInterfaceShear: "TooManyStirrupsReqdForHorizontalInterfaceShear",
	TooManyStirrupsReqdForSplitting:                "TooManyStirrupsReqdForSplitting",
	ShearExceedsMaxConcreteStrength:                "ShearExceedsMaxConcreteStrength",
	NoDevelopmentLengthForLongReinfShear:           "NoDevelopmentLengthForLongReinfShear",
	NoStrandDevelopmentLengthForLongReinfShear:     "NoStrandDevelopmentLengthForLongReinfShear",
	ConflictWithLongReinforcementShearSpec:         "ConflictWithLongReinforcementShearSpec",
	MaxIterExceeded:                                "MaxIterExceeded",
	DesignFailed:                                   "DesignFailed",
}

var outcomeMessages = map[Outcome]string{
	NotDesigned:         "Design has not been run",
	Success:             "Design successful",
	TooManyStrandsReqd:  "Too many strands are required",
	TooManyStirrupsReqd: "Could not find a stirrup layout that satisfies the vertical shear demand. Try adding larger bars or more legs to the bar/spacing catalog",
	TooManyStirrupsReqdForHorizontalInterfaceShear: "Could not find a stirrup layout that satisfies the horizontal interface shear demand",
	TooManyStirrupsReqdForSplitting:                "Could not find a splitting reinforcement layout that satisfies the splitting demand",
	ShearExceedsMaxConcreteStrength:                "The concrete strength required for the shear stress limit exceeds the maximum allowed",
	NoDevelopmentLengthForLongReinfShear:           "Longitudinal reinforcement for shear could not be developed at the girder end. Try increasing the support width or strand count",
	NoStrandDevelopmentLengthForLongReinfShear:     "Additional strands for longitudinal reinforcement for shear could not be developed at the girder end",
	ConflictWithLongReinforcementShearSpec:         "Longitudinal reinforcement for shear requires mild steel, but the design criteria do not allow it to be used",
	MaxIterExceeded:                                "Design did not converge within the maximum number of iterations",
	DesignFailed:                                   "Design failed",
}

func (o Outcome) String() string {
	if s, ok := outcomeNames[o]; ok {
		return s
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Message returns the report text for the outcome
func (o Outcome) Message() string {
	if s, ok := outcomeMessages[o]; ok {
		return s
	}
	return o.String()
}

// Failed reports whether the outcome is a terminal failure
func (o Outcome) Failed() bool {
	return o != NotDesigned && o != Success
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Outcome) UnmarshalText(text []byte) error {
	for k, v := range outcomeNames {
		if v == string(text) {
			*o = k
			return nil
		}
	}
	return fmt.Errorf("unknown design outcome %q", string(text))
}
