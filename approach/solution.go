package approach

import (
	"fmt"
	"math/rand"

	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/planning"
)

// GoalApproach is one tour position: the visitation and the path reaching
// it from the previous position (or the start).
type GoalApproach struct {
	Visitation
	Path planning.Path
}

// Solution is a tour over a Table starting at a fixed configuration.
//
// Invariants (checked by Validate):
//   - every visitation exists in the table;
//   - no goal is visited twice;
//   - segment i starts at the state of visitation i-1 (the start for i == 0)
//     and ends at the state of visitation i.
type Solution struct {
	start    planning.State
	segments []GoalApproach
}

// NewSolution returns an empty tour from start.
func NewSolution(start planning.State) *Solution {
	return &Solution{start: start}
}

// Start returns the start configuration.
func (s *Solution) Start() planning.State { return s.start }

// Len returns the number of tour positions.
func (s *Solution) Len() int { return len(s.segments) }

// Segment returns position i.
func (s *Solution) Segment(i int) GoalApproach { return s.segments[i] }

// Visitations lists the visitations in tour order.
func (s *Solution) Visitations() []Visitation {
	out := make([]Visitation, len(s.segments))
	for i, ga := range s.segments {
		out[i] = ga.Visitation
	}

	return out
}

// LastState is the end of the tour, or the start when it is empty.
func (s *Solution) LastState() planning.State {
	if len(s.segments) == 0 {
		return s.start
	}

	return s.segments[len(s.segments)-1].Path.End()
}

// Append adds a position at the end of the tour.
func (s *Solution) Append(ga GoalApproach) {
	s.segments = append(s.segments, ga)
}

// Cost sums obj.PathCost over all segments.
func (s *Solution) Cost(obj planning.Objective) float64 {
	var c float64
	for _, ga := range s.segments {
		c += obj.PathCost(ga.Path)
	}

	return c
}

// Validate checks the tour invariants against table. Endpoint comparisons
// use tol. Violations wrap ErrBrokenInvariant.
func (s *Solution) Validate(table Table, tol float64) error {
	seen := make(map[int]bool, len(s.segments))
	prev := s.start
	for i, ga := range s.segments {
		if !table.Has(ga.Visitation) {
			return fmt.Errorf("%w: position %d references %+v", ErrBrokenInvariant, i, ga.Visitation)
		}
		if seen[ga.Target] {
			return fmt.Errorf("%w: goal %d visited twice", ErrBrokenInvariant, ga.Target)
		}
		seen[ga.Target] = true
		if ga.Path.Empty() {
			return fmt.Errorf("%w: position %d has no path", ErrBrokenInvariant, i)
		}
		if !ga.Path.Start().Equal(prev, tol) {
			return fmt.Errorf("%w: position %d does not start where %d ends", ErrBrokenInvariant, i, i-1)
		}
		target := table.State(ga.Visitation)
		if !ga.Path.End().Equal(target, tol) {
			return fmt.Errorf("%w: position %d does not reach its approach", ErrBrokenInvariant, i)
		}
		prev = target
	}

	return nil
}

// Result flattens the tour; every segment is tagged with its goal.
func (s *Solution) Result() planning.Result {
	out := make(planning.Result, len(s.segments))
	for i, ga := range s.segments {
		out[i] = planning.PathSegment{Goal: ga.Target, Path: ga.Path}
	}

	return out
}

// NewApproachAt is a re-planned tour position ready to overwrite Index.
type NewApproachAt struct {
	Index int
	GoalApproach
}

// IsImprovement reports whether the re-planned positions are strictly
// cheaper than the positions they overwrite.
func (s *Solution) IsImprovement(obj planning.Objective, repl []NewApproachAt) bool {
	var oldCost, newCost float64
	for _, r := range repl {
		oldCost += obj.PathCost(s.segments[r.Index].Path)
		newCost += obj.PathCost(r.Path)
	}

	return newCost < oldCost
}

// Apply overwrites the re-planned positions.
func (s *Solution) Apply(repl []NewApproachAt) {
	for _, r := range repl {
		s.segments[r.Index] = r.GoalApproach
	}
}

// RandomInitialSolution visits RandomInitialOrder(table, rng) from start.
// A goal whose connection from the current tail fails is dropped.
// The returned slice lists the dropped goals.
func RandomInitialSolution(ptp planning.PointToPoint, table Table, start planning.State, rng *rand.Rand) (*Solution, []int) {
	sol := NewSolution(start)
	var dropped []int
	for _, v := range RandomInitialOrder(table, rng) {
		path, ok := ptp.PlanToState(sol.LastState(), table.State(v))
		if !ok || path.Empty() {
			dropped = append(dropped, v.Target)
			continue
		}
		sol.Append(GoalApproach{Visitation: v, Path: path})
	}

	return sol, dropped
}
