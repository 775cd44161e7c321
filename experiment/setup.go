package experiment

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/approach"
	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/config"
	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/planning"
	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/ptp"
	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/scene"
	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/shell"
	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/shellpath"
)

var (
	// ErrUnknownPlanner is returned for planner names NewPlanner does not build.
	ErrUnknownPlanner = errors.New("experiment: unknown planner")

	// ErrInvalidTour is returned by CheckTour.
	ErrInvalidTour = errors.New("experiment: invalid tour")
)

// chainTolerance is the joint-space gap accepted between segments.
const chainTolerance = 1e-6

// Planners lists the names NewPlanner accepts.
func Planners() []string { return []string{shellpath.Name, approach.Name} }

// Setup is everything one run plans against.
type Setup struct {
	Scene     *scene.Scene
	Kin       planning.Kinematics
	PTP       *ptp.Planner
	Objective planning.Objective
	Start     planning.State
	Goals     []planning.Goal
}

// NewSetup generates the scene for seed and a point-to-point planner over it.
func NewSetup(cfg config.Config, seed int64, logger *zap.Logger) (*Setup, error) {
	sc := cfg.Scene
	sc.Seed = seed
	s, err := scene.Generate(sc)
	if err != nil {
		return nil, err
	}
	kin := planning.PointRobot{}
	p, err := ptp.New(s.Bounds(cfg.PTP.Margin), s.Validity(kin), cfg.PTPOptions(seed), logger)
	if err != nil {
		return nil, err
	}

	return &Setup{
		Scene:     s,
		Kin:       kin,
		PTP:       p,
		Objective: planning.PathLength{},
		Start:     s.Start(cfg.PTP.Margin),
		Goals:     s.Goals(kin),
	}, nil
}

// NewPlanner builds the named tour planner for one run.
func NewPlanner(name string, cfg config.Config, s *Setup, logger *zap.Logger) (planning.MultiGoalPlanner, error) {
	seed := s.Scene.Config().Seed

	switch name {
	case shellpath.Name:
		verts, err := s.Scene.ObstacleVertices()
		if err != nil {
			return nil, err
		}
		surface, err := shell.HullBuilder{Padding: cfg.Shell.Padding}.Build(verts)
		if err != nil {
			return nil, fmt.Errorf("experiment: shell: %w", err)
		}
		tspOpts, err := cfg.TSPOptions()
		if err != nil {
			return nil, err
		}
		tspOpts.Seed = seed
		opts := []shellpath.Option{
			shellpath.WithLogger(logger),
			shellpath.WithObjective(s.Objective),
			shellpath.WithTSP(tspOpts),
			shellpath.WithSeed(seed),
			shellpath.WithPTPParameters(s.PTP),
		}
		if cfg.Shell.OptimizeExit {
			opts = append(opts, shellpath.WithExitOptimization(cfg.Shell.ExitSamples, cfg.Shell.ExitStddev))
		}

		return shellpath.New(surface, s.Kin, opts...), nil

	case approach.Name:
		opts := cfg.AT2OptOptions()
		opts.Seed = seed
		opts.Objective = s.Objective

		return approach.New(opts, approach.WithLogger(logger), approach.WithPTPParameters(s.PTP)), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlanner, name)
	}
}

// CheckTour verifies that res leaves from start as one continuous motion
// and that every segment ends inside its goal.
func CheckTour(res planning.Result, start planning.State, goals []planning.Goal) error {
	if res.Empty() {
		return nil
	}
	if !res[0].Path.Start().Equal(start, chainTolerance) {
		return fmt.Errorf("%w: tour does not begin at the start state", ErrInvalidTour)
	}
	if err := res.Validate(chainTolerance); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTour, err)
	}
	for i, seg := range res {
		if seg.Goal == planning.StartGoal {
			continue
		}
		if seg.Goal < 0 || seg.Goal >= len(goals) {
			return fmt.Errorf("%w: segment %d targets goal %d of %d", ErrInvalidTour, i, seg.Goal, len(goals))
		}
		if !goals[seg.Goal].Satisfied(seg.Path.End()) {
			return fmt.Errorf("%w: segment %d ends outside goal %d", ErrInvalidTour, i, seg.Goal)
		}
	}

	return nil
}
