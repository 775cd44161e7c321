// Package ptp is the reference point-to-point planning capability.
//
// Planner implements planning.PointToPoint with bidirectional RRT-Connect in
// a box-bounded R^n configuration space. Every query first tries a "lucky
// shot", the straight-line motion, before growing trees. Found paths are
// shortened by random shortcutting.
//
// Validity is consumed through the Validity interface; StateChecker adapts a
// plain state predicate by discretising motions at a fixed resolution.
//
// A Planner owns its random source and is not safe for concurrent use.
package ptp
