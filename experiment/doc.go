// Package experiment runs multi-goal planners over generated orchards and
// records what they achieved.
//
// Every run builds its own scene and planners. Runs share only the
// collectors passed in through options, which are safe for concurrent use.
// Runner fans runs out over an errgroup bounded by the configured
// parallelism.
//
// A planner failure is part of the data: it is recorded on the Record and
// counted, and the batch continues. Only cancellation and storage failures
// abort a batch.
package experiment
