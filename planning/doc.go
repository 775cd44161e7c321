// Package planning holds the data model shared by the multi-goal tour
// strategies and the narrow capability contracts they consume.
//
// Data:
//   - State: a robot configuration.
//   - Path: an ordered sequence of states forming one continuous motion.
//   - PathSegment / Result: the tour handed back to callers, one segment per
//     visited goal, each tagged with the goal index it ends at.
//   - Params: a flat key/value parameter report for experiment logging.
//
// Capabilities (implemented elsewhere, consumed here):
//   - Goal: a sampleable goal region; Targeted adds a representative 3D point.
//   - PointToPoint: plans state→goal and state→state motions, false on failure.
//   - Objective: scores paths and states.
//   - Kinematics: maps between configurations and end-effector positions.
//   - Simplifier, MotionValidator, StateValidator: optional extras a
//     PointToPoint implementation may also satisfy.
//
// MultiGoalPlanner is the single interface both tour strategies implement.
//
// Goals are immutable during planning and owned by the caller; the only
// goal with mutable state, UnionSampler, owns its round-robin cursor
// explicitly and must not be shared between concurrent plans.
package planning
