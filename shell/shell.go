package shell

import (
	"fmt"
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"
	"github.com/golang/geo/r3"

	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/geom"
)

// DefaultPadding is the offset between the hull surface and padded shell points.
const DefaultPadding = 0.1

// relEps scales the geometric tolerance with the mesh size.
const relEps = 1e-9

// Facet is a triangle of the shell. Neighbours[e] is the facet across edge e
// (geom.EdgeAB, EdgeBC, EdgeCA).
type Facet struct {
	A, B, C    int
	Neighbours [3]int
}

// Vertex returns the vertex index of corner v.
func (f Facet) Vertex(v geom.TriangleVertex) int {
	switch v {
	case geom.VertexA:
		return f.A
	case geom.VertexB:
		return f.B
	default:
		return f.C
	}
}

// Point is a location on the (unpadded) shell surface.
type Point struct {
	Facet    int
	Position r3.Vector
}

// ConvexHullShell is an immutable convex, watertight triangle mesh with a
// facet-centroid index. It is safe for concurrent readers.
type ConvexHullShell struct {
	vertices     []r3.Vector
	facets       []Facet
	planes       []geom.Plane
	vertexFacets [][]int
	index        *rtreego.Rtree
	padding      float64
	eps          float64
}

// Option configures New.
type Option func(*ConvexHullShell)

// WithPadding sets the padding used by Offset and the state helpers.
func WithPadding(d float64) Option {
	return func(s *ConvexHullShell) { s.padding = d }
}

// centroidEntry is the rtreego payload for one facet.
type centroidEntry struct {
	facet int
	rect  rtreego.Rect
}

func (e centroidEntry) Bounds() rtreego.Rect { return e.rect }

// New builds a shell from a triangle soup over vertices.
//
// Facets are re-oriented so that normals point away from the vertex
// centroid, then matched into an adjacency structure.
//
// Errors: ErrDegenerateHull for fewer than four facets, bad indices or
// zero-area facets; ErrNotWatertight when some edge is not shared by exactly
// two facets.
//
// Complexity: O(n log n) in the number of facets.
func New(vertices []r3.Vector, triangles [][3]int, opts ...Option) (*ConvexHullShell, error) {
	if len(triangles) < 4 || len(vertices) < 4 {
		return nil, fmt.Errorf("%w: %d vertices, %d triangles", ErrDegenerateHull, len(vertices), len(triangles))
	}
	s := &ConvexHullShell{
		vertices: append([]r3.Vector(nil), vertices...),
		padding:  DefaultPadding,
	}
	for _, o := range opts {
		o(s)
	}

	var centre r3.Vector
	lo := r3.Vector{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	hi := lo.Mul(-1)
	for _, v := range s.vertices {
		centre = centre.Add(v)
		lo = r3.Vector{X: math.Min(lo.X, v.X), Y: math.Min(lo.Y, v.Y), Z: math.Min(lo.Z, v.Z)}
		hi = r3.Vector{X: math.Max(hi.X, v.X), Y: math.Max(hi.Y, v.Y), Z: math.Max(hi.Z, v.Z)}
	}
	centre = centre.Mul(1 / float64(len(s.vertices)))
	s.eps = relEps * math.Max(1, hi.Sub(lo).Norm())

	s.facets = make([]Facet, len(triangles))
	s.planes = make([]geom.Plane, len(triangles))
	for i, t := range triangles {
		for _, vi := range t {
			if vi < 0 || vi >= len(s.vertices) {
				return nil, fmt.Errorf("%w: triangle %d references vertex %d", ErrDegenerateHull, i, vi)
			}
		}
		f := Facet{A: t[0], B: t[1], C: t[2]}
		a, b, c := s.vertices[f.A], s.vertices[f.B], s.vertices[f.C]
		n := geom.TriangleNormal(a, b, c)
		if n.Norm2() == 0 {
			return nil, fmt.Errorf("%w: triangle %d has zero area", ErrDegenerateHull, i)
		}
		if n.Dot(geom.TriangleCentroid(a, b, c).Sub(centre)) < 0 {
			f.B, f.C = f.C, f.B
			n = n.Mul(-1)
		}
		s.facets[i] = f
		s.planes[i], _ = geom.PlaneFromNormal(n, a)
	}

	if err := s.matchFaces(); err != nil {
		return nil, err
	}
	s.buildVertexRings()
	s.buildIndex()

	return s, nil
}

// matchFaces fills Facet.Neighbours from the directed edge map.
// In a consistently oriented watertight mesh every directed edge u→v occurs
// once and its reverse v→u belongs to the neighbour.
func (s *ConvexHullShell) matchFaces() error {
	type edgeRef struct {
		facet int
		edge  geom.TriangleEdge
	}
	directed := make(map[[2]int]edgeRef, 3*len(s.facets))
	for fi, f := range s.facets {
		for _, e := range geom.Edges {
			vs := e.Vertices()
			key := [2]int{f.Vertex(vs[0]), f.Vertex(vs[1])}
			if _, dup := directed[key]; dup {
				return fmt.Errorf("%w: directed edge %v used twice", ErrNotWatertight, key)
			}
			directed[key] = edgeRef{facet: fi, edge: e}
		}
	}
	for key, ref := range directed {
		other, ok := directed[[2]int{key[1], key[0]}]
		if !ok {
			return fmt.Errorf("%w: edge %v has one facet", ErrNotWatertight, key)
		}
		s.facets[ref.facet].Neighbours[ref.edge] = other.facet
	}

	return nil
}

// buildVertexRings records the facets around every vertex, sorted by index.
func (s *ConvexHullShell) buildVertexRings() {
	s.vertexFacets = make([][]int, len(s.vertices))
	for fi, f := range s.facets {
		for _, v := range [3]int{f.A, f.B, f.C} {
			s.vertexFacets[v] = append(s.vertexFacets[v], fi)
		}
	}
}

// buildIndex bulk-loads the facet centroids into an R-tree.
func (s *ConvexHullShell) buildIndex() {
	objs := make([]rtreego.Spatial, len(s.facets))
	for i := range s.facets {
		c := s.FacetCentroid(i)
		objs[i] = centroidEntry{facet: i, rect: rtreego.Point{c.X, c.Y, c.Z}.ToRect(s.eps)}
	}
	s.index = rtreego.NewTree(3, 4, 16, objs...)
}

// NumFacets returns the number of facets.
func (s *ConvexHullShell) NumFacets() int { return len(s.facets) }

// NumVertices returns the number of vertices.
func (s *ConvexHullShell) NumVertices() int { return len(s.vertices) }

// Facet returns facet i.
func (s *ConvexHullShell) Facet(i int) Facet { return s.facets[i] }

// Vertex returns vertex i.
func (s *ConvexHullShell) Vertex(i int) r3.Vector { return s.vertices[i] }

// FacetNormal returns the outward unit normal of facet i.
func (s *ConvexHullShell) FacetNormal(i int) r3.Vector { return s.planes[i].Normal }

// FacetVertices returns the corner positions of facet i in winding order.
func (s *ConvexHullShell) FacetVertices(i int) [3]r3.Vector {
	f := s.facets[i]

	return [3]r3.Vector{s.vertices[f.A], s.vertices[f.B], s.vertices[f.C]}
}

// FacetCentroid returns the centroid of facet i.
func (s *ConvexHullShell) FacetCentroid(i int) r3.Vector {
	v := s.FacetVertices(i)

	return geom.TriangleCentroid(v[0], v[1], v[2])
}

// Padding returns the configured padding.
func (s *ConvexHullShell) Padding() float64 { return s.padding }

// Offset lifts pt off the surface by the padding along its facet normal.
// For every surface point SignedDistance(Offset(pt)) equals Padding().
func (s *ConvexHullShell) Offset(pt Point) r3.Vector {
	return pt.Position.Add(s.planes[pt.Facet].Normal.Mul(s.padding))
}

// closestOnFacet returns the closest point of facet f to p and its distance.
func (s *ConvexHullShell) closestOnFacet(f int, p r3.Vector) (r3.Vector, float64) {
	v := s.FacetVertices(f)
	q := geom.ClosestPointOnTriangle(p, v[0], v[1], v[2])

	return q, q.Distance(p)
}

// ring returns the facets sharing at least one vertex with facet f,
// including f itself, without duplicates and sorted.
func (s *ConvexHullShell) ring(f int) []int {
	fc := s.facets[f]
	seen := make(map[int]struct{}, 16)
	out := make([]int, 0, 16)
	for _, v := range [3]int{fc.A, fc.B, fc.C} {
		for _, g := range s.vertexFacets[v] {
			if _, ok := seen[g]; !ok {
				seen[g] = struct{}{}
				out = append(out, g)
			}
		}
	}
	sort.Ints(out)

	return out
}

// Project returns the surface point nearest to p.
//
// The facet-centroid R-tree supplies an initial guess which is refined by
// strict descent over the facets sharing a vertex with the current one.
// When the descent result fails the local optimality test (points inside the
// hull, far-side local minima) an exact O(n) scan is used instead. When the
// nearest point lies on an edge or vertex, the facet whose plane is furthest
// below p is reported, ties to the lowest index.
func (s *ConvexHullShell) Project(p r3.Vector) Point {
	cur := s.index.NearestNeighbor(rtreego.Point{p.X, p.Y, p.Z}).(centroidEntry).facet
	q, d := s.closestOnFacet(cur, p)
	for steps := 0; steps < len(s.facets); steps++ {
		best := -1
		for _, g := range s.ring(cur) {
			if g == cur {
				continue
			}
			if qg, dg := s.closestOnFacet(g, p); dg < d-s.eps {
				best, q, d = g, qg, dg
			}
		}
		if best < 0 {
			break
		}
		cur = best
	}

	if !s.locallyNearest(cur, q, p) {
		cur, q = s.projectExhaustive(p)
	}

	return Point{Facet: s.preferFacet(cur, q, p), Position: q}
}

// locallyNearest checks the first-order optimality condition of q as the
// point of the hull nearest to p: p−q must lie in the normal cone at q.
// The tangent cone at an edge or vertex is spanned by the corners of the
// incident facets; inside a facet it is the half-space below its plane.
// For a convex hull the local condition implies the global one. It fails for
// points inside the hull and for descent stuck in a far-side local minimum.
func (s *ConvexHullShell) locallyNearest(f int, q, p r3.Vector) bool {
	pq := p.Sub(q)
	incident := 0
	for _, g := range s.ring(f) {
		if !s.onFacet(g, q) {
			continue
		}
		incident++
		for _, v := range s.FacetVertices(g) {
			vq := v.Sub(q)
			if pq.Dot(vq) > s.eps*vq.Norm() {
				return false
			}
		}
	}

	return incident != 1 || s.planes[f].SignedDistance(p) >= -s.eps
}

// projectExhaustive scans every facet for the closest surface point.
func (s *ConvexHullShell) projectExhaustive(p r3.Vector) (int, r3.Vector) {
	best, bestD := 0, math.Inf(1)
	var bestQ r3.Vector
	for f := range s.facets {
		if q, d := s.closestOnFacet(f, p); d < bestD-s.eps {
			best, bestQ, bestD = f, q, d
		}
	}

	return best, bestQ
}

// preferFacet picks, among the facets around f that contain q, the one whose
// plane has the largest signed distance to p.
func (s *ConvexHullShell) preferFacet(f int, q, p r3.Vector) int {
	best, bestD := f, s.planes[f].SignedDistance(p)
	for _, g := range s.ring(f) {
		if g == f || !s.onFacet(g, q) {
			continue
		}
		if d := s.planes[g].SignedDistance(p); d > bestD+s.eps || (math.Abs(d-bestD) <= s.eps && g < best) {
			best, bestD = g, d
		}
	}

	return best
}

// onFacet reports whether x lies on the closed triangle of facet f.
func (s *ConvexHullShell) onFacet(f int, x r3.Vector) bool {
	if math.Abs(s.planes[f].SignedDistance(x)) > s.eps {
		return false
	}
	_, d := s.closestOnFacet(f, x)

	return d <= s.eps
}

// SignedDistance is the distance from p to the surface, positive outside
// and negative inside.
//
// Complexity: O(n).
func (s *ConvexHullShell) SignedDistance(p r3.Vector) float64 {
	maxPlane := math.Inf(-1)
	for _, pl := range s.planes {
		maxPlane = math.Max(maxPlane, pl.SignedDistance(p))
	}
	if maxPlane <= 0 {
		return maxPlane
	}
	best := math.Inf(1)
	for f := range s.facets {
		if _, d := s.closestOnFacet(f, p); d < best {
			best = d
		}
	}

	return best
}

// Contains reports whether p is inside or on the hull.
func (s *ConvexHullShell) Contains(p r3.Vector) bool {
	for _, pl := range s.planes {
		if pl.SignedDistance(p) > s.eps {
			return false
		}
	}

	return true
}

// checkPoint validates a caller-provided Point.
func (s *ConvexHullShell) checkPoint(pt Point) error {
	if pt.Facet < 0 || pt.Facet >= len(s.facets) {
		return fmt.Errorf("%w: %d", ErrFacetOutOfRange, pt.Facet)
	}

	return nil
}
