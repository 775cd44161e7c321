// Package scene generates synthetic orchard planning problems.
//
// A scene is a tree: a cylindrical trunk topped by a canopy of spherical
// leaves, modelled as a single sdfx signed distance field, plus apples
// placed in the free space of the canopy. The package supplies everything a
// planning run needs around the tour strategies: goal regions for the
// apples, a validity checker backed by the distance field, configuration
// space bounds, and the obstacle vertex cloud the convex shell is built
// around (marching cubes over the field).
package scene
