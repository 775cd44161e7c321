package planning

import "github.com/golang/geo/r3"

// PointRobot is a free-flying point whose configuration is its position.
type PointRobot struct{}

var _ Kinematics = PointRobot{}

// EndEffector interprets the first three coordinates as x, y, z.
// Missing coordinates read as zero.
func (PointRobot) EndEffector(s State) r3.Vector {
	var v [3]float64
	copy(v[:], s)

	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}
}

// StateAt places the point at position; the approach direction is ignored.
func (PointRobot) StateAt(position, _ r3.Vector) State {
	return State{position.X, position.Y, position.Z}
}

// PathLength is the default objective: configuration-space path length.
// When Clearance is set, StateCost prefers samples with more clearance.
type PathLength struct {
	Clearance       func(State) float64
	ClearanceWeight float64
}

var _ Objective = PathLength{}

// PathCost returns the path length.
func (PathLength) PathCost(p Path) float64 { return p.Length() }

// StateCost returns -ClearanceWeight*Clearance(s), or 0 without a clearance function.
func (o PathLength) StateCost(s State) float64 {
	if o.Clearance == nil {
		return 0
	}

	return -o.ClearanceWeight * o.Clearance(s)
}
