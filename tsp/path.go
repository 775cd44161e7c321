// Open-path utilities shared by the exact and heuristic solvers.
//
// Provided helpers:
//   - ValidateOpenPath: enforce open Hamiltonian path invariants.
//   - PathCost: total cost of an open path.
//   - nearestNeighborPath: greedy construction from the start vertex.
//   - reverseInPlace: segment reversal (2-opt core).
package tsp

import (
	"math"

	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/matrix"
)

// roundScale controls final cost stabilization precision (1e-9).
const roundScale = 1e9

// round1e9 stabilizes a cost to 1e-9.
func round1e9(x float64) float64 {
	return math.Round(x*roundScale) / roundScale
}

// ValidateOpenPath checks that order visits each of 0..n-1 exactly once and
// starts at start.
//
// Complexity: O(n) time, O(n) space.
func ValidateOpenPath(order []int, n, start int) error {
	if n <= 0 || len(order) != n {
		return ErrDimensionMismatch
	}
	if order[0] != start {
		return ErrStartOutOfRange
	}
	seen := make([]bool, n)
	for _, v := range order {
		if v < 0 || v >= n || seen[v] {
			return ErrDimensionMismatch
		}
		seen[v] = true
	}

	return nil
}

// PathCost sums dist(order[i], order[i+1]) with strict validation of each edge.
// A single-vertex path costs 0.
//
// Complexity: O(n).
func PathCost(dist matrix.Matrix, order []int) (float64, error) {
	if dist == nil || len(order) == 0 {
		return 0, ErrDimensionMismatch
	}
	var (
		sum float64
		w   float64
		err error
		i   int
	)
	for i = 0; i+1 < len(order); i++ {
		if w, err = edgeCost(dist, order[i], order[i+1]); err != nil {
			return 0, err
		}
		sum += w
	}

	return round1e9(sum), nil
}

// edgeCost fetches dist(u,v) with sentinel mapping.
func edgeCost(m matrix.Matrix, u, v int) (float64, error) {
	w, err := m.At(u, v)
	if err != nil {
		return 0, ErrDimensionMismatch
	}
	switch {
	case math.IsNaN(w):
		return 0, ErrDimensionMismatch
	case math.IsInf(w, 0):
		return 0, ErrIncompleteGraph
	case w < 0:
		return 0, ErrNegativeWeight
	}

	return w, nil
}

// costTable is a prefetched n×n cost buffer removing interface indirection
// from hot loops. validateAll must have run on the source matrix.
type costTable struct {
	n int
	w []float64
}

func newCostTable(dist matrix.Matrix, n int) costTable {
	ct := costTable{n: n, w: make([]float64, n*n)}
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if i != j {
				ct.w[i*n+j], _ = dist.At(i, j)
			}
		}
	}

	return ct
}

func (ct costTable) at(u, v int) float64 { return ct.w[u*ct.n+v] }

func (ct costTable) pathCost(order []int) float64 {
	var sum float64
	for i := 0; i+1 < len(order); i++ {
		sum += ct.at(order[i], order[i+1])
	}

	return sum
}

// nearestNeighborPath greedily extends the path from start to the cheapest
// unvisited vertex; ties go to the lowest index.
//
// Complexity: O(n²).
func nearestNeighborPath(ct costTable, start int) []int {
	n := ct.n
	used := make([]bool, n)
	order := make([]int, 0, n)
	order = append(order, start)
	used[start] = true
	cur := start
	var (
		v, best int
		bestW   float64
	)
	for len(order) < n {
		best, bestW = -1, math.Inf(1)
		for v = 0; v < n; v++ {
			if !used[v] && ct.at(cur, v) < bestW {
				best, bestW = v, ct.at(cur, v)
			}
		}
		order = append(order, best)
		used[best] = true
		cur = best
	}

	return order
}

// reverseInPlace reverses order[i..k] inclusive.
func reverseInPlace(order []int, i, k int) {
	for i < k {
		order[i], order[k] = order[k], order[i]
		i++
		k--
	}
}
