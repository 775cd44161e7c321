package approach

import (
	"fmt"

	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/planning"
)

// Replacement proposes new visitations for the inclusive position range
// [First, Last]; len(Visitations) == Last-First+1.
type Replacement struct {
	First       int
	Last        int
	Visitations []Visitation
}

// ReplacementsForSwap builds the replacements exchanging positions i and j
// of sol (0 <= i < j < sol.Len()).
//
// Adjacent positions yield one replacement over i..min(i+2, n-1): the swap
// itself plus the successor whose incoming connection changes. Otherwise
// each position is substituted independently together with its successor,
// giving two replacements.
func ReplacementsForSwap(sol *Solution, i, j int) ([]Replacement, error) {
	n := sol.Len()
	if i < 0 || j <= i || j >= n {
		return nil, fmt.Errorf("%w: swap (%d,%d) in tour of %d", ErrInvalidReplacement, i, j, n)
	}
	v := sol.Visitations()

	if j == i+1 {
		r := Replacement{First: i, Last: min(i+2, n-1), Visitations: []Visitation{v[j], v[i]}}
		if i+2 < n {
			r.Visitations = append(r.Visitations, v[i+2])
		}
		return []Replacement{r}, nil
	}

	first := Replacement{First: i, Last: i + 1, Visitations: []Visitation{v[j], v[i+1]}}
	second := Replacement{First: j, Last: min(j+1, n-1), Visitations: []Visitation{v[i]}}
	if j+1 < n {
		second.Visitations = append(second.Visitations, v[j+1])
	}

	return []Replacement{first, second}, nil
}

// ValidateReplacements checks a replacement set against a tour of n
// positions: ranges inside the tour, lengths matching, ordered by First and
// strictly non-overlapping.
func ValidateReplacements(reps []Replacement, n int) error {
	for k, r := range reps {
		if r.First < 0 || r.Last < r.First || r.Last >= n {
			return fmt.Errorf("%w: range [%d,%d] in tour of %d", ErrInvalidReplacement, r.First, r.Last, n)
		}
		if len(r.Visitations) != r.Last-r.First+1 {
			return fmt.Errorf("%w: %d visitations for range [%d,%d]", ErrInvalidReplacement, len(r.Visitations), r.First, r.Last)
		}
		if k > 0 && reps[k-1].Last >= r.First {
			return fmt.Errorf("%w: ranges %d and %d overlap or are unordered", ErrInvalidReplacement, k-1, k)
		}
	}

	return nil
}

// ComputeNewSegments re-plans the connections covered by reps. Each
// replacement chains from the state before its first position, taking
// earlier replacements into account. Any failed connection abandons the
// whole candidate (ok == false).
func ComputeNewSegments(ptp planning.PointToPoint, table Table, sol *Solution, reps []Replacement) ([]NewApproachAt, bool) {
	proposed := make(map[int]Visitation)
	var out []NewApproachAt
	for _, r := range reps {
		from := sol.Start()
		if r.First > 0 {
			prev, ok := proposed[r.First-1]
			if !ok {
				prev = sol.Segment(r.First - 1).Visitation
			}
			from = table.State(prev)
		}
		for k, v := range r.Visitations {
			to := table.State(v)
			path, ok := ptp.PlanToState(from, to)
			if !ok || path.Empty() {
				return nil, false
			}
			idx := r.First + k
			out = append(out, NewApproachAt{Index: idx, GoalApproach: GoalApproach{Visitation: v, Path: path}})
			proposed[idx] = v
			from = to
		}
	}

	return out, true
}
