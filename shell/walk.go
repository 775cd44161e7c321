package shell

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"

	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/geom"
)

// cut is a point where the cutting plane meets a facet boundary.
type cut struct {
	pos    r3.Vector
	vertex int // mesh vertex index when the cut is at a corner, else -1
	edge   geom.TriangleEdge
}

// Relative sine tolerances for the walk's direction tests.
const (
	// collinearTol is the sine below which a cut counts as lying on the chord.
	collinearTol = 1e-9
	// spanTol is the sine a, b and the support point must exceed to span the
	// cutting plane.
	spanTol = 1e-6
)

// route is the cutting plane of a walk plus an in-plane frame at a: along
// is the unit chord toward b and side points toward the arc being followed.
type route struct {
	plane geom.Plane
	along r3.Vector
	side  r3.Vector
}

// exitCandidate is a cut leaving the start point, ranked by its angle from
// the chord.
type exitCandidate struct {
	facet int
	cut   cut
	angle float64
	ok    bool
}

// Walk computes a path across the surface from a to b.
//
// A cutting plane is laid through a, b and the support point (the midpoint
// of a and b projected back onto the hull). The plane meets the surface in a
// convex polygon that a and b split into two arcs; the walk follows the arc
// on the support point's side, one facet at a time until it reaches b's
// facet. Each facet transition emits the exit point on the old facet followed
// by the entry point on the new one.
//
// When the plane passes exactly through a vertex, the next facet is the one
// around that vertex whose far cut lands closest to b (ties: lowest index).
// Far cuts leading back along the edge just travelled are skipped.
//
// Returns exactly [a, b] when a and b lie on a common facet. The walk visits
// each facet at most once; exhausting them yields ErrWalkStalled.
//
// Complexity: O(k) facets visited, plus one Project for the support point.
func (s *ConvexHullShell) Walk(a, b Point) ([]Point, error) {
	if err := s.checkPoint(a); err != nil {
		return nil, err
	}
	if err := s.checkPoint(b); err != nil {
		return nil, err
	}
	if a.Facet == b.Facet || s.onFacet(a.Facet, b.Position) || s.onFacet(b.Facet, a.Position) ||
		a.Position.Distance(b.Position) <= s.eps || s.shareFacet(a, b) {
		return []Point{a, b}, nil
	}

	rt := s.cuttingPlane(a, b)

	out := []Point{a}
	visited := make(map[int]bool, 16)

	cur, exit, ok := s.firstExit(a, rt)
	if !ok {
		return nil, fmt.Errorf("%w: no exit from facet %d", ErrWalkStalled, a.Facet)
	}
	if cur != a.Facet {
		visited[a.Facet] = true
		out = append(out, Point{Facet: cur, Position: a.Position})
	}

	prev := a.Position
	for steps := 0; steps <= len(s.facets); steps++ {
		visited[cur] = true
		next, ok := s.crossInto(cur, exit, rt.plane, b, visited, prev)
		if !ok {
			return nil, fmt.Errorf("%w: no facet beyond %d", ErrWalkStalled, cur)
		}
		out = append(out, Point{Facet: cur, Position: exit.pos}, Point{Facet: next, Position: exit.pos})
		cur, prev = next, exit.pos

		if cur == b.Facet || s.onFacet(cur, b.Position) {
			return append(out, b), nil
		}

		exit, ok = s.nextExit(cur, exit.pos, rt.plane, b.Position)
		if !ok {
			return nil, fmt.Errorf("%w: no exit from facet %d", ErrWalkStalled, cur)
		}
	}

	return nil, fmt.Errorf("%w: exceeded %d facets", ErrWalkStalled, len(s.facets))
}

// shareFacet reports whether some facet around a contains both a and b.
func (s *ConvexHullShell) shareFacet(a, b Point) bool {
	for _, g := range s.ring(a.Facet) {
		if s.onFacet(g, a.Position) && s.onFacet(g, b.Position) {
			return true
		}
	}

	return false
}

// cuttingPlane returns the plane through a and b containing the support
// point, with the side of the chord the support point lies on. When the
// three are (nearly) collinear the plane contains the averaged facet normal
// instead and the walk follows the outward side.
func (s *ConvexHullShell) cuttingPlane(a, b Point) route {
	along := b.Position.Sub(a.Position).Normalize()
	support := s.Project(geom.Midpoint(a.Position, b.Position)).Position
	sa := support.Sub(a.Position)

	var ref, normal r3.Vector
	if sa.Norm() > s.eps {
		ref = sa.Normalize()
		normal = ref.Cross(along)
	}
	if normal.Norm() <= spanTol {
		ref = s.planes[a.Facet].Normal.Add(s.planes[b.Facet].Normal)
		normal = r3.Vector{}
		if ref.Norm() > spanTol {
			ref = ref.Normalize()
			normal = along.Cross(ref)
		}
		if normal.Norm() <= spanTol {
			ref = leastAlignedAxis(along)
			normal = along.Cross(ref)
		}
	}

	pl, _ := geom.PlaneFromNormal(normal, a.Position)
	side := pl.Normal.Cross(along)
	if side.Dot(ref) < 0 {
		side = side.Mul(-1)
	}

	return route{plane: pl, along: along, side: side}
}

// leastAlignedAxis returns the coordinate axis most orthogonal to v.
func leastAlignedAxis(v r3.Vector) r3.Vector {
	ax, ay, az := math.Abs(v.X), math.Abs(v.Y), math.Abs(v.Z)
	switch {
	case ax <= ay && ax <= az:
		return r3.Vector{X: 1}
	case ay <= az:
		return r3.Vector{Y: 1}
	default:
		return r3.Vector{Z: 1}
	}
}

// firstExit finds the facet to start on and the cut leaving it. Every facet
// containing a is considered, so a may sit on an edge or vertex.
//
// All cuts lie on the intersection polygon, which is convex and contains the
// chord, so a's neighbour on the followed arc is the cut making the widest
// angle with the chord on that side. A cut lying on the chord itself means
// the surface runs straight to b and wins outright.
func (s *ConvexHullShell) firstExit(a Point, rt route) (int, cut, bool) {
	candidates := []int{a.Facet}
	for _, g := range s.ring(a.Facet) {
		if g != a.Facet && s.onFacet(g, a.Position) {
			candidates = append(candidates, g)
		}
	}

	var straight, ahead, behind exitCandidate
	for _, f := range candidates {
		for _, c := range s.cuts(f, rt.plane) {
			d := c.pos.Sub(a.Position)
			n := d.Norm()
			if n <= s.eps {
				continue
			}
			x, y := d.Dot(rt.along), d.Dot(rt.side)
			if math.Abs(y) <= collinearTol*n {
				if x > 0 && !straight.ok {
					straight = exitCandidate{facet: f, cut: c, ok: true}
				}
				continue
			}
			angle := math.Atan2(y, x)
			if angle > 0 && (!ahead.ok || angle > ahead.angle) {
				ahead = exitCandidate{facet: f, cut: c, angle: angle, ok: true}
			}
			if angle < 0 && (!behind.ok || angle < behind.angle) {
				behind = exitCandidate{facet: f, cut: c, angle: angle, ok: true}
			}
		}
	}

	// The other arc also reaches b; it is only taken when the followed side
	// degenerated under the tolerances.
	for _, e := range [...]exitCandidate{straight, ahead, behind} {
		if e.ok {
			return e.facet, e.cut, true
		}
	}

	return 0, cut{}, false
}

// nextExit returns the cut leaving facet f other than the entry point.
// Several candidates only occur in degenerate configurations; the one closest
// to target wins.
func (s *ConvexHullShell) nextExit(f int, entry r3.Vector, cutting geom.Plane, target r3.Vector) (cut, bool) {
	var (
		best  cut
		found bool
		bestD float64
	)
	for _, c := range s.cuts(f, cutting) {
		if c.pos.Distance(entry) <= s.eps {
			continue
		}
		if d := c.pos.Distance(target); !found || d < bestD {
			best, bestD, found = c, d, true
		}
	}

	return best, found
}

// crossInto returns the facet entered when leaving cur through exit, having
// arrived in cur at prev.
func (s *ConvexHullShell) crossInto(cur int, exit cut, cutting geom.Plane, b Point, visited map[int]bool, prev r3.Vector) (int, bool) {
	if exit.vertex < 0 {
		next := s.facets[cur].Neighbours[exit.edge]
		return next, !visited[next]
	}

	ring := s.vertexFacets[exit.vertex]
	for _, g := range ring {
		if g == b.Facet {
			return g, true
		}
	}

	// The polygon turns by less than a half turn at the vertex, so a far cut
	// pointing straight back lies on the edge just travelled.
	dir := exit.pos.Sub(prev).Normalize()
	best, bestD := -1, math.Inf(1)
	for _, g := range ring {
		if visited[g] {
			continue
		}
		for _, c := range s.cuts(g, cutting) {
			if c.vertex == exit.vertex {
				continue
			}
			d := c.pos.Sub(exit.pos)
			if n := d.Norm(); n <= s.eps || (d.Dot(dir) < 0 && d.Cross(dir).Norm() <= collinearTol*n) {
				continue
			}
			if dist := c.pos.Distance(b.Position); dist < bestD-s.eps || (math.Abs(dist-bestD) <= s.eps && g < best) {
				best, bestD = g, dist
			}
		}
	}

	return best, best >= 0
}

// cuts lists the points where the plane meets the boundary of facet f:
// corners lying on the plane and strict edge crossings.
func (s *ConvexHullShell) cuts(f int, pl geom.Plane) []cut {
	fc := s.facets[f]
	ids := [3]int{fc.A, fc.B, fc.C}
	var d [3]float64
	for i, vi := range ids {
		d[i] = pl.SignedDistance(s.vertices[vi])
		if math.Abs(d[i]) <= s.eps {
			d[i] = 0
		}
	}

	out := make([]cut, 0, 3)
	for i, vi := range ids {
		if d[i] == 0 {
			out = append(out, cut{pos: s.vertices[vi], vertex: vi, edge: geom.TriangleVertex(i).Edges()[0]})
		}
	}
	for _, e := range geom.Edges {
		vs := e.Vertices()
		i, j := int(vs[0]), int(vs[1])
		if d[i] == 0 || d[j] == 0 || math.Signbit(d[i]) == math.Signbit(d[j]) {
			continue
		}
		t := d[i] / (d[i] - d[j])
		u, v := s.vertices[ids[i]], s.vertices[ids[j]]
		out = append(out, cut{pos: u.Add(v.Sub(u).Mul(t)), vertex: -1, edge: e})
	}

	return out
}

// PredictPathLength is the length of the Walk polyline from a to b.
func (s *ConvexHullShell) PredictPathLength(a, b Point) (float64, error) {
	pts, err := s.Walk(a, b)
	if err != nil {
		return 0, err
	}
	var l float64
	for i := 1; i < len(pts); i++ {
		l += pts[i-1].Position.Distance(pts[i].Position)
	}

	return l, nil
}
