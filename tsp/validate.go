package tsp

import (
	"math"

	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/matrix"
)

// symTol is a structural tolerance for symmetry checks, independent of Options.Eps.
const symTol = 1e-9

// validateAll verifies Options and the cost matrix and returns n on success.
//
// Contract:
//   - dist is non-nil, square, n >= 1.
//   - off-diagonal entries are finite and non-negative.
//   - opts.StartVertex ∈ [0..n-1].
//
// Complexity: O(n²).
func validateAll(dist matrix.Matrix, opts Options) (int, error) {
	if err := validateOptions(opts); err != nil {
		return 0, err
	}
	n, err := validateDistMatrix(dist, opts.Symmetric)
	if err != nil {
		return 0, err
	}
	if opts.StartVertex < 0 || opts.StartVertex >= n {
		return 0, ErrStartOutOfRange
	}

	return n, nil
}

// validateOptions checks Options without referencing the matrix.
func validateOptions(opts Options) error {
	if opts.TimeLimit < 0 || opts.Eps < 0 || opts.Restarts < 0 || opts.TwoOptMaxIters < 0 || opts.ExactMaxN < 0 {
		return ErrDimensionMismatch
	}
	switch opts.Algo {
	case Auto, ExactHeldKarp, NearestNeighborTwoOpt:
		return nil
	default:
		return ErrUnsupportedAlgorithm
	}
}

// validateDistMatrix rejects nil, non-square, NaN, negative and infinite
// off-diagonal entries, and asymmetry when symmetric is requested.
//
// Complexity: O(n²).
func validateDistMatrix(dist matrix.Matrix, symmetric bool) (int, error) {
	if dist == nil {
		return 0, ErrDimensionMismatch
	}
	n := dist.Rows()
	if n != dist.Cols() {
		return 0, ErrNonSquare
	}
	if n <= 0 {
		return 0, ErrDimensionMismatch
	}

	var (
		i, j     int
		aij, aji float64
		err      error
	)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if i == j {
				continue
			}
			if aij, err = dist.At(i, j); err != nil {
				return 0, ErrDimensionMismatch
			}
			switch {
			case math.IsNaN(aij):
				return 0, ErrDimensionMismatch
			case math.IsInf(aij, 0):
				return 0, ErrIncompleteGraph
			case aij < 0:
				return 0, ErrNegativeWeight
			}
			if symmetric && j > i {
				if aji, err = dist.At(j, i); err != nil {
					return 0, ErrDimensionMismatch
				}
				if math.Abs(aij-aji) > symTol {
					return 0, ErrAsymmetry
				}
			}
		}
	}

	return n, nil
}
