package shellpath

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/golang/geo/r3"
	"go.uber.org/zap"

	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/matrix"
	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/planning"
	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/shell"
	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/tsp"
)

// Name identifies the strategy in parameter reports and experiment output.
const Name = "ShellPathPlanner"

// ErrNilShell is returned by Plan when the planner was built without a surface.
var ErrNilShell = errors.New("shellpath: nil shell")

// Planner is the shell-based tour strategy. A Planner holds no per-plan
// state and may be reused sequentially; concurrent Plan calls need their
// own point-to-point instances.
type Planner struct {
	surface *shell.ConvexHullShell
	kin     planning.Kinematics

	objective    planning.Objective
	optimizeExit bool
	exitSamples  int
	exitStddev   float64
	tspOpts      tsp.Options
	seed         int64
	ptpReport    planning.ParameterReporter
	logger       *zap.Logger
}

var _ planning.MultiGoalPlanner = (*Planner)(nil)

// New returns a planner routing over surface. kin converts between shell
// points and configurations.
func New(surface *shell.ConvexHullShell, kin planning.Kinematics, opts ...Option) *Planner {
	p := &Planner{
		surface:     surface,
		kin:         kin,
		objective:   planning.PathLength{},
		exitSamples: DefaultExitSamples,
		exitStddev:  DefaultExitStddev,
		tspOpts:     tsp.DefaultOptions(),
		logger:      zap.NewNop(),
	}
	for _, o := range opts {
		o(p)
	}

	return p
}

// Name implements planning.MultiGoalPlanner.
func (p *Planner) Name() string { return Name }

// Parameters reports the planner configuration.
func (p *Planner) Parameters() planning.Params {
	out := planning.Params{
		"planner":                       Name,
		"apply_shellstate_optimization": p.optimizeExit,
		"exit_samples":                  p.exitSamples,
		"tsp_algo":                      p.tspOpts.Algo.String(),
	}
	if p.surface != nil {
		out["shell_padding"] = p.surface.Padding()
	}
	if p.ptpReport != nil {
		out.Merge("ptp", p.ptpReport.Parameters())
	}

	return out
}

// approach is a planned path from a shell state to one goal.
type approach struct {
	goal  int
	point shell.Point
	path  planning.Path
}

// Plan computes a tour visiting as many goals as possible.
//
// The result is empty (not an error) when no goal has an approach or the
// first link cannot be planned. Errors are returned for a failing shell walk
// (wrapping shell.ErrWalkStalled) and for ctx cancellation between steps.
func (p *Planner) Plan(ctx context.Context, ptp planning.PointToPoint, start planning.State, goals []planning.Goal) (planning.Result, error) {
	if p.surface == nil {
		return nil, ErrNilShell
	}
	rng := rand.New(rand.NewSource(p.seed))

	approaches, err := p.planApproaches(ctx, ptp, goals, rng)
	if err != nil {
		return nil, err
	}
	if len(approaches) == 0 {
		p.logger.Warn("no goal has an approach", zap.Int("goals", len(goals)))
		return planning.Result{}, nil
	}

	order, err := p.order(start, approaches)
	if err != nil {
		return nil, err
	}

	first := approaches[order[0]]
	toShell, ok := ptp.PlanToState(start, first.path.Start())
	if !ok {
		p.logger.Warn("first link failed", zap.Int("goal", first.goal), zap.String("reason", "start to shell"))
		return planning.Result{}, nil
	}
	result := planning.Result{{Goal: first.goal, Path: toShell.Concat(first.path)}}

	prev := first
	for _, idx := range order[1:] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next := approaches[idx]
		seg, err := p.retreatMoveProbe(ptp, prev, next)
		if err != nil {
			return nil, err
		}
		if mv, ok := ptp.(planning.MotionValidator); ok && !mv.ValidPath(seg) {
			p.logger.Warn("dropping goal", zap.Int("goal", next.goal), zap.String("reason", "invalid shell segment"))
			continue
		}
		result = append(result, planning.PathSegment{Goal: next.goal, Path: seg})
		prev = next
	}

	return result, nil
}

// planApproaches plans one approach per goal, dropping failures.
func (p *Planner) planApproaches(ctx context.Context, ptp planning.PointToPoint, goals []planning.Goal, rng *rand.Rand) ([]approach, error) {
	out := make([]approach, 0, len(goals))
	for gi, goal := range goals {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		a, ok := p.planApproach(ptp, gi, goal, rng)
		if !ok {
			p.logger.Warn("dropping goal", zap.Int("goal", gi), zap.String("reason", "no approach from shell"))
			continue
		}
		out = append(out, a)
	}

	return out, nil
}

func (p *Planner) planApproach(ptp planning.PointToPoint, gi int, goal planning.Goal, rng *rand.Rand) (approach, bool) {
	pt := p.surface.Project(p.target(goal, rng))
	path, ok := ptp.PlanToGoal(p.surface.StateOnShell(p.kin, pt), goal)
	if !ok || path.Empty() {
		return approach{}, false
	}
	a := approach{goal: gi, point: pt, path: path}
	if p.optimizeExit {
		a = p.slideExit(ptp, a, rng)
	}

	return a, true
}

// target is the workspace point projected onto the shell for goal.
func (p *Planner) target(goal planning.Goal, rng *rand.Rand) r3.Vector {
	if t, ok := goal.(planning.Targeted); ok {
		return t.Target()
	}

	return p.kin.EndEffector(goal.Sample(rng))
}

// slideExit tries gaussian resamples of the shell end of a and keeps the
// cheapest approach ending at the same goal state.
func (p *Planner) slideExit(ptp planning.PointToPoint, a approach, rng *rand.Rand) approach {
	best, bestCost := a, p.objective.PathCost(a.path)
	for k := 0; k < p.exitSamples; k++ {
		cand := p.surface.GaussianSampleNear(rng, a.point, p.exitStddev)
		path, ok := ptp.PlanToState(p.surface.StateOnShell(p.kin, cand), a.path.End())
		if !ok || path.Empty() {
			continue
		}
		if c := p.objective.PathCost(path); c < bestCost {
			best, bestCost = approach{goal: a.goal, point: cand, path: path}, c
		}
	}

	return best
}

// order solves the open-path TSP over predicted shell walk lengths and
// returns indices into approaches.
func (p *Planner) order(start planning.State, approaches []approach) ([]int, error) {
	n := len(approaches) + 1
	home := p.surface.Project(p.kin.EndEffector(start))
	pointOf := func(i int) shell.Point {
		if i == 0 {
			return home
		}
		return approaches[i-1].point
	}

	dist, err := matrix.NewDenseFunc(n, n, func(i, j int) (float64, error) {
		if i == j || j == 0 {
			return 0, nil
		}
		l, err := p.surface.PredictPathLength(pointOf(i), pointOf(j))
		if err != nil {
			return 0, fmt.Errorf("shellpath: predict %d->%d: %w", i, j, err)
		}

		return l, nil
	})
	if err != nil {
		return nil, err
	}

	opts := p.tspOpts
	opts.StartVertex = 0
	opts.Symmetric = false
	opts.Seed = p.seed
	res, err := tsp.SolveOpenPath(dist, opts)
	if err != nil {
		return nil, fmt.Errorf("shellpath: ordering: %w", err)
	}

	out := make([]int, 0, n-1)
	for _, v := range res.Order[1:] {
		out = append(out, v-1)
	}

	return out, nil
}

// retreatMoveProbe assembles the segment from prev's goal to next's goal:
// back out along prev's approach, walk the shell, follow next's approach.
func (p *Planner) retreatMoveProbe(ptp planning.PointToPoint, prev, next approach) (planning.Path, error) {
	move, err := p.surface.PathOnShell(p.kin, prev.point, next.point)
	if err != nil {
		return nil, fmt.Errorf("shellpath: goal %d to %d: %w", prev.goal, next.goal, err)
	}
	seg := prev.path.Reversed().Concat(move, next.path)
	if s, ok := ptp.(planning.Simplifier); ok {
		seg = s.Simplify(seg)
	}

	return seg, nil
}
