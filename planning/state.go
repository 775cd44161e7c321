package planning

import (
	"math"
)

// State is a robot configuration.
type State []float64

// Clone returns an independent copy.
func (s State) Clone() State {
	if s == nil {
		return nil
	}

	return append(State(nil), s...)
}

// Distance is the Euclidean distance in configuration space.
// States of different dimension are infinitely far apart.
func (s State) Distance(o State) float64 {
	if len(s) != len(o) {
		return math.Inf(1)
	}
	var sum float64
	for i := range s {
		d := s[i] - o[i]
		sum += d * d
	}

	return math.Sqrt(sum)
}

// Equal reports whether every coordinate differs by at most tol.
func (s State) Equal(o State, tol float64) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if math.Abs(s[i]-o[i]) > tol {
			return false
		}
	}

	return true
}

// Interpolate returns a + t*(b-a). a and b must share a dimension.
func Interpolate(a, b State, t float64) State {
	out := make(State, len(a))
	for i := range a {
		out[i] = a[i] + t*(b[i]-a[i])
	}

	return out
}
