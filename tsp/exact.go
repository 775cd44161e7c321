package tsp

import (
	"math"
	"time"

	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/matrix"
)

// OpenHeldKarp solves the open-path TSP exactly.
//
// dp[mask][j] is the minimum cost of a path that starts at opts.StartVertex,
// visits exactly the vertices in mask and ends at j. The answer is the minimum
// over j of dp[full][j]; unlike the cycle variant no closing arc is added.
//
// Ties between equal-cost endpoints and predecessors resolve to the lowest
// index, so the result is deterministic.
//
// Complexity: O(n²·2ⁿ) time, O(n·2ⁿ) memory. n is capped at MaxExactN.
func OpenHeldKarp(dist matrix.Matrix, opts Options) (PathResult, error) {
	n, err := validateAll(dist, opts)
	if err != nil {
		return PathResult{}, err
	}
	var deadline time.Time
	if opts.TimeLimit > 0 {
		deadline = time.Now().Add(opts.TimeLimit)
	}

	return heldKarpOpen(newCostTable(dist, n), opts.StartVertex, deadline)
}

func heldKarpOpen(ct costTable, start int, deadline time.Time) (PathResult, error) {
	n := ct.n
	if n > MaxExactN {
		return PathResult{}, ErrTooLarge
	}
	if n == 1 {
		return PathResult{Order: []int{start}}, nil
	}

	full := (1 << n) - 1
	dp := make([]float64, (full+1)*n)
	parent := make([]int32, (full+1)*n)
	for idx := range dp {
		dp[idx] = math.Inf(1)
		parent[idx] = -1
	}
	dp[(1<<start)*n+start] = 0

	var (
		mask, j, k int
		prevMask   int
		cand, base float64
	)
	for mask = 1; mask <= full; mask++ {
		if mask&(1<<start) == 0 {
			continue
		}
		if !deadline.IsZero() && mask&1023 == 0 && time.Now().After(deadline) {
			return PathResult{}, ErrTimeLimit
		}
		for j = 0; j < n; j++ {
			if j == start || mask&(1<<j) == 0 {
				continue
			}
			prevMask = mask ^ (1 << j)
			for k = 0; k < n; k++ {
				if prevMask&(1<<k) == 0 {
					continue
				}
				base = dp[prevMask*n+k]
				if math.IsInf(base, 1) {
					continue
				}
				cand = base + ct.at(k, j)
				if cand < dp[mask*n+j] {
					dp[mask*n+j] = cand
					parent[mask*n+j] = int32(k)
				}
			}
		}
	}

	best, last := math.Inf(1), -1
	for j = 0; j < n; j++ {
		if j != start && dp[full*n+j] < best {
			best, last = dp[full*n+j], j
		}
	}
	if last < 0 {
		return PathResult{}, ErrIncompleteGraph
	}

	order := make([]int, n)
	mask, j = full, last
	for pos := n - 1; pos >= 1; pos-- {
		order[pos] = j
		p := int(parent[mask*n+j])
		mask ^= 1 << j
		j = p
	}
	order[0] = start

	return PathResult{Order: order, Cost: round1e9(best)}, nil
}
