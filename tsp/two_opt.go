// Package tsp - open 2-opt local search.
//
// OpenTwoOpt performs deterministic first-improvement 2-opt on an open path
// P[0..n-1] whose first vertex is fixed. A move (i,k), 1 ≤ i < k ≤ n−1,
// reverses P[i..k]:
//   - removed arcs: (P[i−1]→P[i]) and, when k < n−1, (P[k]→P[k+1]);
//   - added arcs:   (P[i−1]→P[k]) and, when k < n−1, (P[i]→P[k+1]).
//
// The k == n−1 case is the open-path "tail flip" and only changes one arc.
// For asymmetric instances the reversed interior arcs are re-priced, which
// makes a candidate O(k−i) instead of O(1).
//
// Complexity: O(iter·n²) symmetric, O(iter·n³) asymmetric worst case.
package tsp

import (
	"time"

	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/matrix"
)

// OpenTwoOpt improves init with first-improvement open 2-opt and returns the
// improved path and its cost. init must be a valid open path starting at
// opts.StartVertex.
func OpenTwoOpt(dist matrix.Matrix, init []int, opts Options) ([]int, float64, error) {
	n, err := validateAll(dist, opts)
	if err != nil {
		return nil, 0, err
	}
	if err = ValidateOpenPath(init, n, opts.StartVertex); err != nil {
		return nil, 0, err
	}
	cur := append([]int(nil), init...)
	ct := newCostTable(dist, n)
	var deadline time.Time
	if opts.TimeLimit > 0 {
		deadline = time.Now().Add(opts.TimeLimit)
	}
	cost, _ := twoOptOpen(ct, cur, opts, deadline)

	return cur, round1e9(cost), nil
}

// twoOptOpen improves cur in place. It returns the final (unrounded) cost and
// whether the deadline cut the search short.
func twoOptOpen(ct costTable, cur []int, opts Options, deadline time.Time) (float64, bool) {
	n := len(cur)
	cost := ct.pathCost(cur)
	if n < 3 {
		return cost, false
	}
	eps := opts.Eps
	useDeadline := !deadline.IsZero()

	var (
		step     int
		accepted int
		i, k     int
		a, b     int
		c, d     int
		delta    float64
	)
	// Check every 2048 candidate evaluations.
	checkDeadline := func() bool {
		step++
		if !useDeadline || (step&2047) != 0 {
			return false
		}

		return time.Now().After(deadline)
	}

	for {
		improved := false
		for i = 1; i <= n-2 && !improved; i++ {
			for k = i + 1; k <= n-1; k++ {
				if checkDeadline() {
					return cost, true
				}
				a, b, c = cur[i-1], cur[i], cur[k]
				delta = ct.at(a, c) - ct.at(a, b)
				if k < n-1 {
					d = cur[k+1]
					delta += ct.at(b, d) - ct.at(c, d)
				}
				if !opts.Symmetric {
					delta += reversedInteriorDelta(ct, cur, i, k)
				}
				if delta >= -eps {
					continue
				}
				reverseInPlace(cur, i, k)
				cost += delta
				accepted++
				improved = true
				if opts.TwoOptMaxIters > 0 && accepted >= opts.TwoOptMaxIters {
					return ct.pathCost(cur), false
				}

				break
			}
		}
		if !improved {
			break
		}
	}

	// Re-sum to shed accumulated delta drift.
	return ct.pathCost(cur), false
}

// reversedInteriorDelta is the cost change of traversing cur[i..k] backwards.
func reversedInteriorDelta(ct costTable, cur []int, i, k int) float64 {
	var delta float64
	for p := i; p < k; p++ {
		delta += ct.at(cur[p+1], cur[p]) - ct.at(cur[p], cur[p+1])
	}

	return delta
}
