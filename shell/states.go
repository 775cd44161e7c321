package shell

import (
	"math"
	"math/rand"

	"github.com/golang/geo/r3"

	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/planning"
)

// maxArcStep is the largest normal rotation between consecutive states when
// a path wraps around an edge or vertex.
const maxArcStep = math.Pi / 8

// GaussianSampleNear perturbs pt by isotropic Gaussian noise with the given
// standard deviation and projects the result back onto the surface.
func (s *ConvexHullShell) GaussianSampleNear(rng *rand.Rand, pt Point, stddev float64) Point {
	noise := r3.Vector{X: rng.NormFloat64(), Y: rng.NormFloat64(), Z: rng.NormFloat64()}.Mul(stddev)

	return s.Project(pt.Position.Add(noise))
}

// StateOnShell returns the configuration at the padded location of pt,
// approaching along the facet normal.
func (s *ConvexHullShell) StateOnShell(kin planning.Kinematics, pt Point) planning.State {
	return kin.StateAt(s.Offset(pt), s.planes[pt.Facet].Normal)
}

// PathOnShell converts the walk from a to b into a configuration path along
// the padded surface. Where the walk changes facet at a single position the
// tool swings around the edge at constant padding instead of cutting the
// corner.
func (s *ConvexHullShell) PathOnShell(kin planning.Kinematics, a, b Point) (planning.Path, error) {
	pts, err := s.Walk(a, b)
	if err != nil {
		return nil, err
	}
	path := planning.Path{s.StateOnShell(kin, pts[0])}
	for i := 1; i < len(pts); i++ {
		prev, cur := pts[i-1], pts[i]
		if prev.Facet != cur.Facet && prev.Position.Distance(cur.Position) <= s.eps {
			path = append(path, s.arcStates(kin, cur.Position, s.planes[prev.Facet].Normal, s.planes[cur.Facet].Normal)...)
		}
		path = append(path, s.StateOnShell(kin, cur))
	}

	return path.Compact(planning.JoinTolerance), nil
}

// arcStates returns the intermediate states swinging from normal n0 to n1
// around position p, excluding both ends.
func (s *ConvexHullShell) arcStates(kin planning.Kinematics, p, n0, n1 r3.Vector) []planning.State {
	angle := math.Acos(math.Max(-1, math.Min(1, n0.Dot(n1))))
	steps := int(math.Ceil(angle / maxArcStep))
	if steps < 2 {
		return nil
	}
	out := make([]planning.State, 0, steps-1)
	for k := 1; k < steps; k++ {
		t := float64(k) / float64(steps)
		n := n0.Mul(1 - t).Add(n1.Mul(t)).Normalize()
		out = append(out, kin.StateAt(p.Add(n.Mul(s.padding)), n))
	}

	return out
}
