package tsp

import (
	"time"

	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/matrix"
)

// SolveOpenPath validates inputs and routes to the chosen algorithm.
//
// Contracts:
//   - dist is a square matrix of finite non-negative costs, n >= 1.
//   - The result starts at opts.StartVertex and visits every vertex once.
//   - The heuristic honours opts.TimeLimit softly: when the deadline passes it
//     returns the best path found so far (never an error). The exact solver
//     cannot return a partial answer and reports ErrTimeLimit instead.
//
// Errors: sentinels from types.go.
//
// Complexity: validation O(n²); then per algorithm (see doc.go).
func SolveOpenPath(dist matrix.Matrix, opts Options) (PathResult, error) {
	n, err := validateAll(dist, opts)
	if err != nil {
		return PathResult{}, err
	}
	var deadline time.Time
	if opts.TimeLimit > 0 {
		deadline = time.Now().Add(opts.TimeLimit)
	}
	ct := newCostTable(dist, n)

	switch opts.Algo {
	case ExactHeldKarp:
		return heldKarpOpen(ct, opts.StartVertex, deadline)
	case NearestNeighborTwoOpt:
		return heuristicOpen(ct, opts, deadline), nil
	default: // Auto
		if n <= opts.ExactMaxN && n <= MaxExactN {
			return heldKarpOpen(ct, opts.StartVertex, deadline)
		}

		return heuristicOpen(ct, opts, deadline), nil
	}
}

// heuristicOpen runs nearest-neighbour + open 2-opt, then opts.Restarts
// seeded random restarts, keeping the cheapest path (first wins on ties).
func heuristicOpen(ct costTable, opts Options, deadline time.Time) PathResult {
	best := nearestNeighborPath(ct, opts.StartVertex)
	bestCost, timedOut := twoOptOpen(ct, best, opts, deadline)

	var (
		r    int
		cand []int
		c    float64
	)
	for r = 0; r < opts.Restarts && !timedOut; r++ {
		cand = randomOpenPath(ct.n, opts.StartVertex, restartRNG(opts.Seed, r))
		c, timedOut = twoOptOpen(ct, cand, opts, deadline)
		if c < bestCost-opts.Eps {
			best, bestCost = cand, c
		}
	}

	return PathResult{Order: best, Cost: round1e9(bestCost)}
}
