package shell

import "errors"

var (
	// ErrNotWatertight is returned when some edge is not shared by exactly two facets.
	ErrNotWatertight = errors.New("shell: mesh is not watertight")

	// ErrDegenerateHull is returned for fewer than four non-coplanar points or
	// zero-area facets.
	ErrDegenerateHull = errors.New("shell: degenerate hull")

	// ErrWalkStalled is returned when a geodesic walk fails to reach its
	// target facet within the facet budget. It indicates a malformed shell.
	ErrWalkStalled = errors.New("shell: geodesic walk stalled")

	// ErrFacetOutOfRange is returned when a Point names a facet that does not exist.
	ErrFacetOutOfRange = errors.New("shell: facet index out of range")
)
