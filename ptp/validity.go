package ptp

import (
	"math"

	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/planning"
)

// Validity decides which states and motions are collision-free.
type Validity interface {
	IsValid(s planning.State) bool
	// CheckMotion reports whether the straight motion from a to b is valid.
	// Both endpoints are checked.
	CheckMotion(a, b planning.State) bool
}

// DefaultResolution is the motion discretisation step of StateChecker.
const DefaultResolution = 0.01

// StateChecker validates motions by sampling them every Resolution units.
type StateChecker struct {
	Valid      func(planning.State) bool
	Resolution float64
}

var _ Validity = StateChecker{}

// IsValid calls Valid; a nil Valid accepts everything.
func (c StateChecker) IsValid(s planning.State) bool {
	return c.Valid == nil || c.Valid(s)
}

// CheckMotion samples the segment including both endpoints.
func (c StateChecker) CheckMotion(a, b planning.State) bool {
	if len(a) != len(b) {
		return false
	}
	res := c.Resolution
	if res <= 0 {
		res = DefaultResolution
	}
	steps := int(math.Ceil(a.Distance(b) / res))
	for k := 0; k <= steps; k++ {
		t := 1.0
		if steps > 0 {
			t = float64(k) / float64(steps)
		}
		if !c.IsValid(planning.Interpolate(a, b, t)) {
			return false
		}
	}

	return true
}
