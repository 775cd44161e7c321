// Package geom provides the small set of 3D primitives the shell and the
// planners are built on: planes, segments, rays and triangles over r3.Vector.
//
// Conventions:
//   - Triangles are given as three corners (a, b, c) in counter-clockwise order
//     when viewed from the side their normal points to.
//   - TriangleEdge / TriangleVertex name the edges and corners of such a
//     triangle so mesh code can index neighbours without pointers.
//   - Functions never panic on degenerate input; degenerate cases are reported
//     through a boolean or fall back to the nearest well-defined answer.
//
// Complexity: every function here is O(1).
package geom
