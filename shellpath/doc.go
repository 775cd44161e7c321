// Package shellpath implements the shell-based multi-goal tour strategy.
//
// Long-distance travel between goals is routed along the surface of a
// convex shell enclosing every obstacle. Only the short approach from the
// shell to each goal, and the first link from the start configuration, are
// planned by the point-to-point capability.
//
// A Plan call runs in four steps:
//
//  1. Approaches. Every goal's target is projected onto the shell and a path
//     is planned from the corresponding shell state to the goal region.
//     Optionally the shell end of each approach is slid along the surface
//     when a resampled exit gives a cheaper approach. Goals without an
//     approach are logged and dropped.
//  2. Ordering. An open-path TSP (fixed start, free end) over predicted
//     shell walk lengths orders the surviving approaches. Node 0 is the
//     projection of the start configuration's end effector.
//  3. First link. The start configuration is connected to the shell state
//     of the first approach. Failure yields an empty tour.
//  4. Retreat, move, probe. Every later goal is reached by reversing the
//     previous approach, walking the shell and following the next approach.
//     Segments are simplified when the point-to-point capability can do it.
//     A segment rejected by its motion validator drops that goal; the tour
//     continues from the last goal actually reached.
//
// Re-closing the order around a dropped goal is not attempted.
package shellpath
