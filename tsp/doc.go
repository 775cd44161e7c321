// Package tsp orders goals for a multi-goal tour by solving the open-path
// Travelling Salesman Problem: the path starts at a fixed vertex, visits every
// other vertex exactly once and does NOT return to the start.
//
// Algorithms (see Algorithm):
//
//   - ExactHeldKarp: dynamic programming over subsets.
//     Complexity: O(n²·2ⁿ) time, O(n·2ⁿ) memory. Limited to MaxExactN vertices.
//
//   - NearestNeighborTwoOpt: nearest-neighbour construction followed by
//     first-improvement open 2-opt, optionally repeated from seeded random
//     restarts. Complexity: O(iter·n²) per restart.
//
//   - Auto: ExactHeldKarp when n <= Options.ExactMaxN, heuristic otherwise.
//
// Conventions:
//   - The input is a square matrix.Matrix of non-negative finite costs;
//     dist(i,j) is the cost of travelling from i to j. The diagonal is ignored.
//   - Asymmetric matrices are supported; Options.Symmetric enables the cheaper
//     O(1) 2-opt delta.
//   - Results are deterministic for a fixed Options.Seed.
//   - Returned costs are rounded to 1e-9 to prevent cross-platform FP drift.
package tsp
