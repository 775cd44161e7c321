package approach

import (
	"math/rand"
	"sort"

	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/planning"
)

// Visitation points into a Table: approach Approach of goal Target.
type Visitation struct {
	Target   int `json:"target"`
	Approach int `json:"approach"`
}

// Table holds, per goal, the candidate goal configurations. Row order is
// significant: Visitation.Approach indexes into it.
type Table [][]planning.State

// Has reports whether v references an existing entry.
func (t Table) Has(v Visitation) bool {
	return v.Target >= 0 && v.Target < len(t) && v.Approach >= 0 && v.Approach < len(t[v.Target])
}

// State returns the configuration v refers to. v must satisfy Has.
func (t Table) State(v Visitation) planning.State {
	return t[v.Target][v.Approach]
}

// TakeGoalSamples draws up to k samples from every goal, never more than
// the goal's MaxSampleCount. When validity is non-nil, invalid samples are
// discarded, so rows may end up shorter than k or empty.
func TakeGoalSamples(goals []planning.Goal, k int, rng *rand.Rand, validity planning.StateValidator) Table {
	table := make(Table, len(goals))
	for gi, g := range goals {
		n := k
		if m := g.MaxSampleCount(); m < n {
			n = m
		}
		row := make([]planning.State, 0, n)
		for s := 0; s < n; s++ {
			st := g.Sample(rng)
			if st == nil || (validity != nil && !validity.IsValid(st)) {
				continue
			}
			row = append(row, st)
		}
		table[gi] = row
	}

	return table
}

// KeepBest reduces every row to its keep lowest-cost entries by
// obj.StateCost. Ties keep their sampling order. Must not be called while a
// Solution references the table.
func KeepBest(obj planning.Objective, table Table, keep int) {
	if keep < 0 {
		keep = 0
	}
	for gi, row := range table {
		costs := make([]float64, len(row))
		for i, s := range row {
			costs[i] = obj.StateCost(s)
		}
		idx := make([]int, len(row))
		for i := range idx {
			idx[i] = i
		}
		sort.SliceStable(idx, func(a, b int) bool { return costs[idx[a]] < costs[idx[b]] })
		if len(idx) > keep {
			idx = idx[:keep]
		}
		pruned := make([]planning.State, len(idx))
		for i, j := range idx {
			pruned[i] = row[j]
		}
		table[gi] = pruned
	}
}

// RandomInitialOrder visits every goal with a non-empty row once, in a
// uniformly random order, with a uniformly random approach.
func RandomInitialOrder(table Table, rng *rand.Rand) []Visitation {
	out := make([]Visitation, 0, len(table))
	for gi, row := range table {
		if len(row) > 0 {
			out = append(out, Visitation{Target: gi, Approach: rng.Intn(len(row))})
		}
	}
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })

	return out
}

// MissingTargets returns, sorted, the goals of table not visited by sol.
// Only table-level visitations count; passing near a goal does not.
func MissingTargets(sol *Solution, table Table) []int {
	seen := make(map[int]bool, sol.Len())
	for _, ga := range sol.segments {
		seen[ga.Target] = true
	}
	var out []int
	for gi := range table {
		if !seen[gi] {
			out = append(out, gi)
		}
	}

	return out
}
