package tsp

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Algorithm selects the open-path solver.
type Algorithm int

const (
	// Auto picks ExactHeldKarp for small instances and the heuristic otherwise.
	Auto Algorithm = iota
	// ExactHeldKarp runs the Held–Karp subset DP.
	ExactHeldKarp
	// NearestNeighborTwoOpt runs nearest-neighbour construction plus open 2-opt.
	NearestNeighborTwoOpt
)

// String returns the config spelling of the algorithm.
func (a Algorithm) String() string {
	switch a {
	case Auto:
		return "auto"
	case ExactHeldKarp:
		return "exact"
	case NearestNeighborTwoOpt:
		return "2opt"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// ParseAlgorithm is the inverse of Algorithm.String (case-insensitive).
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return Auto, nil
	case "exact", "heldkarp", "held-karp":
		return ExactHeldKarp, nil
	case "2opt", "two-opt", "nn2opt":
		return NearestNeighborTwoOpt, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, s)
	}
}

const (
	// DefaultEps is the strict improvement threshold for local search.
	DefaultEps = 1e-12

	// DefaultExactMaxN is the largest instance Auto hands to Held–Karp.
	DefaultExactMaxN = 12

	// MaxExactN caps ExactHeldKarp regardless of options (2ⁿ·n table).
	MaxExactN = 16
)

// Options configures SolveOpenPath. The zero value is not ready to use;
// start from DefaultOptions.
type Options struct {
	// Algo selects the solver.
	Algo Algorithm

	// StartVertex is the fixed first vertex of the path.
	StartVertex int

	// Symmetric declares dist(i,j) == dist(j,i); it is validated when set.
	Symmetric bool

	// ExactMaxN is the Auto threshold (inclusive).
	ExactMaxN int

	// Restarts is the number of additional seeded random restarts of 2-opt.
	Restarts int

	// Seed drives restarts; 0 maps to a fixed default stream.
	Seed int64

	// TimeLimit is a soft deadline for the whole solve; 0 means unlimited.
	TimeLimit time.Duration

	// Eps is the minimal strict improvement accepted by 2-opt (Δ < −Eps).
	Eps float64

	// TwoOptMaxIters bounds accepted 2-opt moves per run; 0 means unlimited.
	TwoOptMaxIters int
}

// DefaultOptions returns the recommended configuration.
func DefaultOptions() Options {
	return Options{
		Algo:      Auto,
		ExactMaxN: DefaultExactMaxN,
		Restarts:  4,
		Eps:       DefaultEps,
	}
}

// PathResult is an open Hamiltonian path.
type PathResult struct {
	// Order lists every vertex exactly once; Order[0] == Options.StartVertex.
	Order []int

	// Cost is the sum of dist(Order[i], Order[i+1]).
	Cost float64
}

// Sentinel errors. Callers match with errors.Is.
var (
	// ErrDimensionMismatch indicates malformed input shape or options.
	ErrDimensionMismatch = errors.New("tsp: dimension mismatch")

	// ErrNonSquare indicates that the cost matrix is not square.
	ErrNonSquare = errors.New("tsp: matrix is not square")

	// ErrNegativeWeight indicates a negative travel cost.
	ErrNegativeWeight = errors.New("tsp: negative weight")

	// ErrIncompleteGraph indicates a missing (infinite) connection.
	ErrIncompleteGraph = errors.New("tsp: incomplete distance matrix")

	// ErrAsymmetry indicates Options.Symmetric was set on an asymmetric matrix.
	ErrAsymmetry = errors.New("tsp: matrix is not symmetric")

	// ErrStartOutOfRange indicates StartVertex is not a vertex of the matrix.
	ErrStartOutOfRange = errors.New("tsp: start vertex out of range")

	// ErrUnsupportedAlgorithm indicates an unknown Algorithm value.
	ErrUnsupportedAlgorithm = errors.New("tsp: unsupported algorithm")

	// ErrTooLarge indicates an instance beyond MaxExactN for the exact solver.
	ErrTooLarge = errors.New("tsp: instance too large for exact solver")

	// ErrTimeLimit indicates the exact solver ran out of its time budget.
	ErrTimeLimit = errors.New("tsp: time limit exceeded")
)
