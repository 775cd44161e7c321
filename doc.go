// Package multigoal is a library for planning robot motions that visit many
// goal regions in one tour, such as the apples of a fruit tree.
//
// The module is organised bottom-up:
//
//	planning/   states, paths, goals, objectives and the capability interfaces
//	geom/       planes and triangles in 3D
//	matrix/     dense cost matrices
//	tsp/        open-path travelling salesman solvers (Held–Karp, 2-opt)
//	shell/      convex hull shells: projection, geodesic walks, shell states
//	ptp/        RRT-Connect point-to-point planner with path shortcutting
//	scene/      synthetic trees built from signed distance fields
//	shellpath/  tour strategy that travels over the shell between goals
//	approach/   approach-table 2-opt tour strategy
//	experiment/, config/, logging/ and cmd/multigoal: batch runs and tooling
//
// Tour strategies implement planning.MultiGoalPlanner and depend only on the
// planning.PointToPoint capability, so any single-goal planner can drive them.
package multigoal
