package approach

import "errors"

var (
	// ErrInvalidReplacement is returned for replacement sets that are
	// unordered, overlapping, out of range or of mismatched length.
	ErrInvalidReplacement = errors.New("approach: invalid replacement")

	// ErrBrokenInvariant is returned when a tour stops chaining, references
	// a missing approach or visits a goal twice.
	ErrBrokenInvariant = errors.New("approach: tour invariant violated")

	// ErrInvalidOptions is returned by Plan for negative option values.
	ErrInvalidOptions = errors.New("approach: invalid options")
)
