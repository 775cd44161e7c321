package shell

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"

	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/planning"
)

// Builder produces a shell around a point cloud.
type Builder interface {
	planning.ParameterReporter
	Build(points []r3.Vector) (*ConvexHullShell, error)
}

// HullBuilder wraps the convex hull of the points in a shell.
type HullBuilder struct {
	Padding float64
}

var _ Builder = HullBuilder{}

// Build computes the convex hull of points and returns it as a shell.
func (b HullBuilder) Build(points []r3.Vector) (*ConvexHullShell, error) {
	verts, tris, err := ConvexHull(points)
	if err != nil {
		return nil, err
	}

	return New(verts, tris, WithPadding(b.Padding))
}

// Parameters reports the builder configuration.
func (b HullBuilder) Parameters() planning.Params {
	return planning.Params{"shell_builder": "convex_hull", "padding": b.Padding}
}

// BuildShell is shorthand for HullBuilder{Padding: padding}.Build(points).
func BuildShell(points []r3.Vector, padding float64) (*ConvexHullShell, error) {
	return HullBuilder{Padding: padding}.Build(points)
}

// hullFace is a working face of the incremental hull.
type hullFace struct {
	v      [3]int
	normal r3.Vector
	offset float64
	alive  bool
}

func (f *hullFace) distance(p r3.Vector) float64 {
	return f.normal.Dot(p) + f.offset
}

// ConvexHull computes the convex hull of points with the incremental
// (beneath-beyond) algorithm. Triangles are wound counter-clockwise seen
// from outside; only vertices on the hull are returned.
//
// Errors: ErrDegenerateHull when the points do not span three dimensions.
//
// Complexity: O(n·h) where h is the number of hull faces.
func ConvexHull(points []r3.Vector) ([]r3.Vector, [][3]int, error) {
	if len(points) < 4 {
		return nil, nil, fmt.Errorf("%w: %d points", ErrDegenerateHull, len(points))
	}
	eps := hullEps(points)

	seed, err := initialTetrahedron(points, eps)
	if err != nil {
		return nil, nil, err
	}

	var faces []hullFace
	edges := make(map[[2]int]int)
	addFace := func(a, b, c int) {
		n := points[b].Sub(points[a]).Cross(points[c].Sub(points[a])).Normalize()
		faces = append(faces, hullFace{v: [3]int{a, b, c}, normal: n, offset: -n.Dot(points[a]), alive: true})
		fi := len(faces) - 1
		edges[[2]int{a, b}] = fi
		edges[[2]int{b, c}] = fi
		edges[[2]int{c, a}] = fi
	}

	inner := points[seed[0]].Add(points[seed[1]]).Add(points[seed[2]]).Add(points[seed[3]]).Mul(0.25)
	for _, t := range [4][3]int{{0, 1, 2}, {0, 3, 1}, {0, 2, 3}, {1, 3, 2}} {
		a, b, c := seed[t[0]], seed[t[1]], seed[t[2]]
		n := points[b].Sub(points[a]).Cross(points[c].Sub(points[a]))
		if n.Dot(inner.Sub(points[a])) > 0 {
			b, c = c, b
		}
		addFace(a, b, c)
	}

	inSeed := map[int]bool{seed[0]: true, seed[1]: true, seed[2]: true, seed[3]: true}
	for pi, p := range points {
		if inSeed[pi] {
			continue
		}
		visible := make(map[int]bool)
		var order []int
		for fi := range faces {
			if faces[fi].alive && faces[fi].distance(p) > eps {
				visible[fi] = true
				order = append(order, fi)
			}
		}
		if len(order) == 0 {
			continue
		}

		var horizon [][2]int
		for _, fi := range order {
			v := faces[fi].v
			for k := 0; k < 3; k++ {
				u, w := v[k], v[(k+1)%3]
				if g, ok := edges[[2]int{w, u}]; ok && !visible[g] {
					horizon = append(horizon, [2]int{u, w})
				}
			}
		}
		for _, fi := range order {
			faces[fi].alive = false
			v := faces[fi].v
			for k := 0; k < 3; k++ {
				e := [2]int{v[k], v[(k+1)%3]}
				if edges[e] == fi {
					delete(edges, e)
				}
			}
		}
		for _, e := range horizon {
			addFace(e[0], e[1], pi)
		}
	}

	return compactHull(points, faces)
}

// compactHull drops dead faces and unused points.
func compactHull(points []r3.Vector, faces []hullFace) ([]r3.Vector, [][3]int, error) {
	remap := make(map[int]int)
	var (
		verts []r3.Vector
		tris  [][3]int
	)
	for _, f := range faces {
		if !f.alive {
			continue
		}
		var t [3]int
		for k, v := range f.v {
			idx, ok := remap[v]
			if !ok {
				idx = len(verts)
				remap[v] = idx
				verts = append(verts, points[v])
			}
			t[k] = idx
		}
		tris = append(tris, t)
	}
	if len(tris) < 4 {
		return nil, nil, fmt.Errorf("%w: %d faces", ErrDegenerateHull, len(tris))
	}

	return verts, tris, nil
}

// hullEps is a tolerance proportional to the extent of the cloud.
func hullEps(points []r3.Vector) float64 {
	var extent float64
	for _, p := range points {
		extent = math.Max(extent, math.Max(math.Abs(p.X), math.Max(math.Abs(p.Y), math.Abs(p.Z))))
	}

	return 1e-10 * math.Max(1, extent)
}

// initialTetrahedron picks four points spanning a non-degenerate volume:
// an extreme point, the point farthest from it, the point farthest from
// that line and the point farthest from that plane.
func initialTetrahedron(points []r3.Vector, eps float64) ([4]int, error) {
	var seed [4]int
	for i, p := range points {
		if p.X < points[seed[0]].X {
			seed[0] = i
		}
	}
	p0 := points[seed[0]]

	best := -1.0
	for i, p := range points {
		if d := p.Distance(p0); d > best {
			seed[1], best = i, d
		}
	}
	if best <= eps {
		return seed, fmt.Errorf("%w: all points coincide", ErrDegenerateHull)
	}
	dir := points[seed[1]].Sub(p0)

	best = -1
	for i, p := range points {
		if d := dir.Cross(p.Sub(p0)).Norm() / dir.Norm(); d > best {
			seed[2], best = i, d
		}
	}
	if best <= eps {
		return seed, fmt.Errorf("%w: points are collinear", ErrDegenerateHull)
	}
	n := dir.Cross(points[seed[2]].Sub(p0)).Normalize()

	best = -1
	for i, p := range points {
		if d := math.Abs(n.Dot(p.Sub(p0))); d > best {
			seed[3], best = i, d
		}
	}
	if best <= eps {
		return seed, fmt.Errorf("%w: points are coplanar", ErrDegenerateHull)
	}

	return seed, nil
}
