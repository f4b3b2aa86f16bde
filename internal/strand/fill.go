package strand

// Filler answers which strand counts a strand pattern can place
type Filler interface {
	Reachable(n int) bool
	Max() int
}

// StepFill fills strand positions in fixed increments, e.g. pairs of
// strands placed symmetrically about the girder centerline.
type StepFill struct {
	Step     int
	MaxCount int
}

// Reachable reports whether n strands can be placed
func (f StepFill) Reachable(n int) bool {
	if n < 0 || n > f.MaxCount {
		return false
	}
	step := f.Step
	if step <= 0 {
		step = 1
	}
	return n%step == 0
}

// Max returns the largest number of strands the pattern holds
func (f StepFill) Max() int { return f.MaxCount }

// RoundUp returns the smallest reachable count not less than n
func RoundUp(f Filler, n int) (int, bool) {
	if n < 0 {
		n = 0
	}
	for ; n <= f.Max(); n++ {
		if f.Reachable(n) {
			return n, true
		}
	}
	return 0, false
}
