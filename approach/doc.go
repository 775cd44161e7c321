// Package approach implements the approach-table 2-opt tour strategy.
//
// The strategy works purely in configuration space. Every goal gets a row of
// sampled goal configurations (the approach Table), pruned to the best few
// by the objective. A random initial tour picks one approach per goal in a
// random order. A time-bounded local search then proposes swapping pairs of
// visitations, expressed as Replacements over contiguous ranges of the tour.
// It re-plans only the connections those ranges touch and accepts a proposal
// only when it strictly lowers the cost of the affected segments.
//
// The tour cost is therefore non-increasing. Every accepted change is
// re-validated with Solution.Validate; a violation is a defect and is
// returned as ErrBrokenInvariant.
//
// Goals dropped from the initial tour are tracked (MissingTargets) but not
// re-inserted; Options.MissingGoalPass is the extension point for that.
package approach
