package planning

import (
	"errors"
	"fmt"
)

// ErrBrokenChain is returned by Result.Validate when consecutive segments do
// not join.
var ErrBrokenChain = errors.New("planning: segments do not chain")

// StartGoal tags a segment that does not end at any goal.
const StartGoal = -1

// PathSegment is a continuous motion ending at goal Goal.
type PathSegment struct {
	Goal int  `json:"goal"`
	Path Path `json:"path"`
}

// Result is an ordered multi-goal tour. The zero value is the empty tour.
type Result []PathSegment

// Empty reports whether no goal was reached.
func (r Result) Empty() bool { return len(r) == 0 }

// Goals lists the goal indices in visitation order.
func (r Result) Goals() []int {
	out := make([]int, len(r))
	for i, s := range r {
		out[i] = s.Goal
	}

	return out
}

// Path flattens the tour into a single path.
func (r Result) Path() Path {
	var out Path
	for _, s := range r {
		out = out.Concat(s.Path)
	}

	return out
}

// Length is the summed configuration-space length of all segments.
func (r Result) Length() float64 {
	var l float64
	for _, s := range r {
		l += s.Path.Length()
	}

	return l
}

// Cost scores every segment with obj and sums the result.
func (r Result) Cost(obj Objective) float64 {
	var c float64
	for _, s := range r {
		c += obj.PathCost(s.Path)
	}

	return c
}

// Validate checks that no segment is empty and that the end of segment i
// equals the start of segment i+1 within tol.
func (r Result) Validate(tol float64) error {
	for i, s := range r {
		if s.Path.Empty() {
			return fmt.Errorf("segment %d: %w: empty path", i, ErrBrokenChain)
		}
		if i > 0 && !r[i-1].Path.End().Equal(s.Path.Start(), tol) {
			return fmt.Errorf("segment %d: %w", i, ErrBrokenChain)
		}
	}

	return nil
}
