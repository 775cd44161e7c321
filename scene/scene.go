package scene

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/golang/geo/r3"

	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/planning"
	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/ptp"
)

var (
	// ErrInvalidConfig is returned for non-positive sizes or counts.
	ErrInvalidConfig = errors.New("scene: invalid config")

	// ErrNoFreeSpace is returned when apples cannot be placed.
	ErrNoFreeSpace = errors.New("scene: no free space for apples")
)

// maxPlacementTries bounds rejection sampling per apple.
const maxPlacementTries = 1000

// Config describes a synthetic tree.
type Config struct {
	Seed int64 `koanf:"seed"`

	// Leaves and Apples are the number of leaf spheres and apples.
	Leaves int `koanf:"leaves"`
	Apples int `koanf:"apples"`

	CanopyRadius float64 `koanf:"canopy_radius"`
	TrunkHeight  float64 `koanf:"trunk_height"`
	TrunkRadius  float64 `koanf:"trunk_radius"`
	LeafRadius   float64 `koanf:"leaf_radius"`

	// AppleRadius is the radius of the goal region around every apple.
	AppleRadius float64 `koanf:"apple_radius"`

	// Clearance is the minimum distance the robot keeps from obstacles.
	Clearance float64 `koanf:"clearance"`

	// MeshCells is the marching cubes resolution along the longest axis.
	MeshCells int `koanf:"mesh_cells"`
}

// DefaultConfig returns a small tree suitable for quick experiments.
func DefaultConfig() Config {
	return Config{
		Seed:         1,
		Leaves:       40,
		Apples:       10,
		CanopyRadius: 1.0,
		TrunkHeight:  1.0,
		TrunkRadius:  0.08,
		LeafRadius:   0.12,
		AppleRadius:  0.05,
		Clearance:    0.02,
		MeshCells:    40,
	}
}

// Validate checks that every size and count is usable.
func (c Config) Validate() error {
	if c.Leaves < 0 || c.Apples < 0 || c.MeshCells <= 0 {
		return fmt.Errorf("%w: counts %d leaves, %d apples, %d cells", ErrInvalidConfig, c.Leaves, c.Apples, c.MeshCells)
	}
	if c.CanopyRadius <= 0 || c.TrunkHeight <= 0 || c.TrunkRadius <= 0 || c.LeafRadius <= 0 || c.AppleRadius <= 0 || c.Clearance < 0 {
		return fmt.Errorf("%w: sizes must be positive", ErrInvalidConfig)
	}

	return nil
}

// Scene is a generated tree with its apples.
type Scene struct {
	cfg       Config
	obstacles sdf.SDF3
	leaves    []r3.Vector
	apples    []r3.Vector
	canopy    r3.Vector
}

// Generate builds the tree described by cfg. The same config always yields
// the same scene.
func Generate(cfg Config) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	s := &Scene{cfg: cfg, canopy: r3.Vector{Z: cfg.TrunkHeight + cfg.CanopyRadius}}

	trunk, err := sdf.Cylinder3D(cfg.TrunkHeight+cfg.CanopyRadius, cfg.TrunkRadius, 0)
	if err != nil {
		return nil, fmt.Errorf("scene: trunk: %w", err)
	}
	solids := []sdf.SDF3{sdf.Transform3D(trunk, sdf.Translate3d(v3.Vec{Z: (cfg.TrunkHeight + cfg.CanopyRadius) / 2}))}

	for i := 0; i < cfg.Leaves; i++ {
		c := s.canopy.Add(randomInBall(rng, cfg.CanopyRadius-cfg.LeafRadius))
		leaf, err := sdf.Sphere3D(cfg.LeafRadius)
		if err != nil {
			return nil, fmt.Errorf("scene: leaf %d: %w", i, err)
		}
		solids = append(solids, sdf.Transform3D(leaf, sdf.Translate3d(toVec(c))))
		s.leaves = append(s.leaves, c)
	}
	s.obstacles = sdf.Union3D(solids...)

	margin := cfg.AppleRadius + cfg.Clearance
	for i := 0; i < cfg.Apples; i++ {
		placed := false
		for try := 0; try < maxPlacementTries && !placed; try++ {
			c := s.canopy.Add(randomInBall(rng, cfg.CanopyRadius))
			if s.Distance(c) > margin {
				s.apples = append(s.apples, c)
				placed = true
			}
		}
		if !placed {
			return nil, fmt.Errorf("%w: apple %d", ErrNoFreeSpace, i)
		}
	}

	return s, nil
}

// Config returns the generating configuration.
func (s *Scene) Config() Config { return s.cfg }

// Leaves returns the leaf centres.
func (s *Scene) Leaves() []r3.Vector { return s.leaves }

// Apples returns the apple centres.
func (s *Scene) Apples() []r3.Vector { return s.apples }

// CanopyCentre returns the centre of the canopy ball.
func (s *Scene) CanopyCentre() r3.Vector { return s.canopy }

// Distance is the signed distance from p to the nearest obstacle.
func (s *Scene) Distance(p r3.Vector) float64 {
	return s.obstacles.Evaluate(toVec(p))
}

// Goals returns one sphere goal per apple.
func (s *Scene) Goals(kin planning.Kinematics) []planning.Goal {
	out := make([]planning.Goal, len(s.apples))
	for i, a := range s.apples {
		out[i] = planning.SphereGoal{Center: a, Radius: s.cfg.AppleRadius, Kin: kin}
	}

	return out
}

// Validity checks that the end effector keeps the configured clearance.
// Motions are discretised at a fraction of the clearance.
func (s *Scene) Validity(kin planning.Kinematics) ptp.StateChecker {
	res := ptp.DefaultResolution
	if s.cfg.Clearance > 0 {
		res = math.Min(res, s.cfg.Clearance/2)
	}

	return ptp.StateChecker{
		Valid:      func(st planning.State) bool { return s.Distance(kin.EndEffector(st)) > s.cfg.Clearance },
		Resolution: res,
	}
}

// Clearance is the obstacle distance of the end effector, for use as
// planning.PathLength.Clearance.
func (s *Scene) Clearance(kin planning.Kinematics) func(planning.State) float64 {
	return func(st planning.State) float64 { return s.Distance(kin.EndEffector(st)) }
}

// Bounds is the configuration box of a point robot: the canopy box grown by
// margin on every side, from the ground up.
func (s *Scene) Bounds(margin float64) ptp.Bounds {
	r := s.cfg.CanopyRadius + margin
	c := s.canopy

	return ptp.Bounds{
		Lo: planning.State{c.X - r, c.Y - r, 0},
		Hi: planning.State{c.X + r, c.Y + r, c.Z + r},
	}
}

// Start is a configuration above the canopy, inside Bounds(margin).
func (s *Scene) Start(margin float64) planning.State {
	top := s.canopy.Add(r3.Vector{Z: s.cfg.CanopyRadius + margin/2})

	return planning.State{top.X, top.Y, top.Z}
}

// ObstacleVertices renders the canopy leaves with marching cubes and
// returns the distinct mesh vertices. The trunk is excluded so the shell
// wraps the canopy only.
func (s *Scene) ObstacleVertices() ([]r3.Vector, error) {
	leaves := make([]sdf.SDF3, 0, len(s.leaves))
	for _, c := range s.leaves {
		leaf, err := sdf.Sphere3D(s.cfg.LeafRadius)
		if err != nil {
			return nil, fmt.Errorf("scene: leaf: %w", err)
		}
		leaves = append(leaves, sdf.Transform3D(leaf, sdf.Translate3d(toVec(c))))
	}
	if len(leaves) == 0 {
		return nil, nil
	}

	tris := render.ToTriangles(sdf.Union3D(leaves...), render.NewMarchingCubesUniform(s.cfg.MeshCells))
	seen := make(map[r3.Vector]struct{}, len(tris))
	out := make([]r3.Vector, 0, len(tris))
	for _, t := range tris {
		for j := 0; j < 3; j++ {
			v := r3.Vector{X: t[j].X, Y: t[j].Y, Z: t[j].Z}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}

	return out, nil
}

// Describe reports the scene for experiment output.
func (s *Scene) Describe() planning.Params {
	return planning.Params{
		"seed":          s.cfg.Seed,
		"leaves":        len(s.leaves),
		"apples":        len(s.apples),
		"canopy_radius": s.cfg.CanopyRadius,
		"leaf_radius":   s.cfg.LeafRadius,
		"apple_radius":  s.cfg.AppleRadius,
		"clearance":     s.cfg.Clearance,
	}
}

func toVec(p r3.Vector) v3.Vec { return v3.Vec{X: p.X, Y: p.Y, Z: p.Z} }

func randomInBall(rng *rand.Rand, r float64) r3.Vector {
	for {
		v := r3.Vector{X: 2*rng.Float64() - 1, Y: 2*rng.Float64() - 1, Z: 2*rng.Float64() - 1}
		if v.Norm2() <= 1 {
			return v.Mul(r)
		}
	}
}
