// Package matrix defines the small Matrix contract used for cost tables and
// a row-major Dense implementation of it.
//
// What & Why:
//
//	Tour ordering works on square tables of pairwise travel costs. The Matrix
//	interface keeps the solvers independent from how those costs are stored,
//	and Dense gives a cache-friendly flat backing slice for the common case.
//
// Complexity:
//
//	Rows() and Cols() run in O(1) time.
//	At() and Set() perform bounds checking in O(1) time, returning an error on invalid indices.
//	Clone() performs a deep copy in O(rows*cols) time, allocating new storage.
//	NewDenseFunc() calls the fill function exactly rows*cols times.
package matrix
