// Package shell implements a convex "safety shell": a closed convex
// polyhedral surface around all obstacles used as a routing backbone
// between far-apart goals.
//
// The mesh is stored arena-style: vertices and facets live in slices and
// facets refer to their vertices and their three edge neighbours by index.
// There are no pointers between facets, so the cyclic adjacency graph needs
// no ownership rules.
//
// A Point is a (facet, position) pair on the unpadded surface. The same
// Euclidean position appears on two facets whenever a walk crosses an edge;
// the duplication is intended because each facet parameterises its own
// points. Offset lifts a point off the surface by the configured padding
// along its facet normal.
//
// Operations:
//   - Project: nearest surface point, R-tree guess refined by local descent.
//   - SignedDistance: O(n) exact distance, positive outside.
//   - Walk: cutting-plane geodesic walk between two surface points.
//   - PredictPathLength, GaussianSampleNear, StateOnShell, PathOnShell.
//
// Shells must be convex and watertight. ConvexHull / HullBuilder produce such
// meshes from arbitrary point clouds; New validates watertightness but cannot
// detect non-convex input.
package shell
