package strand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControllerConvergesOnRepeatedValue(t *testing.T) {
	c := NewController(StepFill{Step: 2, MaxCount: 60})
	c.Init(8)

	out, n := c.DoUpdate(10, 8)
	assert.Equal(t, ValueWasSet, out)
	assert.Equal(t, 10, n)
	assert.Equal(t, StateSetOnce, c.State())

	out, n = c.DoUpdate(10, 10)
	assert.Equal(t, Converged, out)
	assert.Equal(t, 10, n)
	assert.False(t, c.Forced())
	assert.Empty(t, c.Diagnostic())
}

func TestControllerTransitions(t *testing.T) {
	c := NewController(StepFill{Step: 2, MaxCount: 60})
	c.Init(0)

	steps := []struct {
		propose int
		out     Outcome
		value   int
		state   State
	}{
		{10, ValueWasSet, 10, StateSetOnce},
		{14, ValueWasSet, 14, StateSetIncrease},
		{18, ValueWasSet, 18, StateSetIncrease},
		{16, ValueWasSet, 16, StateSetDecrease},
		{12, ValueWasSet, 12, StateSetDecrease},
		{12, Converged, 12, StateSetDecrease},
	}
	prev := 0
	for i, s := range steps {
		out, n := c.DoUpdate(s.propose, prev)
		assert.Equal(t, s.out, out, "step %d", i)
		assert.Equal(t, s.value, n, "step %d", i)
		assert.Equal(t, s.state, c.State(), "step %d", i)
		prev = n
	}
}

func TestControllerAlternatingForcesHigherValue(t *testing.T) {
	c := NewController(StepFill{Step: 2, MaxCount: 60})
	c.Init(10)

	proposals := []int{10, 12}
	prev := 10
	var out Outcome
	var n int
	calls := 0
	for calls < 50 {
		p := proposals[calls%2]
		out, n = c.DoUpdate(p, prev)
		calls++
		if out != ValueWasSet {
			break
		}
		prev = n
	}

	require.Equal(t, Converged, out)
	assert.Equal(t, 12, n)
	assert.True(t, c.Forced())
	assert.Contains(t, c.Diagnostic(), "between 10 and 12")
	assert.LessOrEqual(t, calls, 2*RepeatBound+3)
}

func TestControllerProbesIntermediateCount(t *testing.T) {
	c := NewController(StepFill{Step: 1, MaxCount: 60})
	c.Init(10)

	prev := 10
	proposals := []int{10, 12}
	var out Outcome
	var n int
	for i := 0; i < 2*RepeatBound+3; i++ {
		out, n = c.DoUpdate(proposals[i%2], prev)
		prev = n
	}
	// the last decrease from 12 to 10 settles on 11 instead
	assert.Equal(t, ValueWasSet, out)
	assert.Equal(t, 11, n)
	assert.False(t, c.Forced())

	out, n = c.DoUpdate(11, 11)
	assert.Equal(t, Converged, out)
	assert.Equal(t, 11, n)
}

func TestControllerTerminatesOnAdversarialSequences(t *testing.T) {
	patterns := [][]int{
		{10, 12},
		{20, 30},
		{6, 8, 6, 10},
		{40, 38},
	}
	for _, pat := range patterns {
		c := NewController(StepFill{Step: 2, MaxCount: 60})
		c.Init(pat[0])
		prev := pat[0]
		done := false
		for i := 0; i < 200; i++ {
			out, n := c.DoUpdate(pat[i%len(pat)], prev)
			if out != ValueWasSet {
				done = true
				break
			}
			prev = n
		}
		assert.True(t, done, "pattern %v did not terminate", pat)
	}
}

func TestControllerRejectsUnfillableCounts(t *testing.T) {
	c := NewController(StepFill{Step: 2, MaxCount: 20})
	c.Init(4)

	out, n := c.DoUpdate(22, 4)
	assert.Equal(t, UpdateFailed, out)
	assert.Equal(t, 4, n)

	out, _ = c.DoUpdate(-2, 4)
	assert.Equal(t, UpdateFailed, out)
}

func TestControllerHistoryIsCapped(t *testing.T) {
	c := NewController(StepFill{Step: 1, MaxCount: 1000})
	c.Init(0)
	c.DoUpdate(1, 0)
	for i := 0; i < HistoryCap+10; i++ {
		hi := 100 + 2*i
		c.DoUpdate(hi, c.Value())
		c.DoUpdate(hi-1, hi)
	}
	assert.LessOrEqual(t, len(c.history), HistoryCap)
}

func TestRoundUp(t *testing.T) {
	f := StepFill{Step: 2, MaxCount: 10}
	n, ok := RoundUp(f, 7)
	require.True(t, ok)
	assert.Equal(t, 8, n)

	_, ok = RoundUp(f, 11)
	assert.False(t, ok)
}
