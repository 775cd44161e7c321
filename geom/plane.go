package geom

import (
	"math"

	"github.com/golang/geo/r3"
)

// degenerateTol is the squared-norm threshold below which a cross product is
// treated as zero (collinear input).
const degenerateTol = 1e-24

// Plane is the set of points x with Normal·x + Offset == 0.
// Normal is unit length for every Plane built by this package.
type Plane struct {
	Normal r3.Vector
	Offset float64
}

// PlaneFromPoints returns the plane through p1, p2 and p3.
// The normal follows (p1−p2)×(p3−p2). ok is false when the points are collinear.
func PlaneFromPoints(p1, p2, p3 r3.Vector) (Plane, bool) {
	n := p1.Sub(p2).Cross(p3.Sub(p2))
	if n.Norm2() < degenerateTol {
		return Plane{}, false
	}
	n = n.Normalize()

	return Plane{Normal: n, Offset: -p1.Dot(n)}, true
}

// PlaneFromNormal returns the plane with the given normal through point p.
// ok is false when normal is (close to) the zero vector.
func PlaneFromNormal(normal, p r3.Vector) (Plane, bool) {
	if normal.Norm2() < degenerateTol {
		return Plane{}, false
	}
	n := normal.Normalize()

	return Plane{Normal: n, Offset: -p.Dot(n)}, true
}

// SignedDistance is positive on the side the normal points to.
func (pl Plane) SignedDistance(p r3.Vector) float64 {
	return pl.Normal.Dot(p) + pl.Offset
}

// Project returns the orthogonal projection of p onto the plane.
func (pl Plane) Project(p r3.Vector) r3.Vector {
	return p.Sub(pl.Normal.Mul(pl.SignedDistance(p)))
}

// IntersectSegment intersects the plane with segment [u, v].
// It returns the parameter t in [0,1] and true when the segment strictly
// crosses the plane; touching endpoints are not reported.
func (pl Plane) IntersectSegment(u, v r3.Vector) (float64, bool) {
	du := pl.SignedDistance(u)
	dv := pl.SignedDistance(v)
	if du == 0 || dv == 0 || math.Signbit(du) == math.Signbit(dv) {
		return 0, false
	}

	return du / (du - dv), true
}

// Segment is the closed line segment between Start and End.
type Segment struct {
	Start, End r3.Vector
}

// ProjectionParameter returns t such that origin + t*dir is the orthogonal
// projection of p onto the line. A zero dir yields 0.
func ProjectionParameter(origin, dir, p r3.Vector) float64 {
	d2 := dir.Norm2()
	if d2 == 0 {
		return 0
	}

	return p.Sub(origin).Dot(dir) / d2
}

// ClosestPoint returns the point of the segment nearest to p.
func (s Segment) ClosestPoint(p r3.Vector) r3.Vector {
	dir := s.End.Sub(s.Start)
	t := ProjectionParameter(s.Start, dir, p)
	t = math.Max(0, math.Min(1, t))

	return s.Start.Add(dir.Mul(t))
}

// Length of the segment.
func (s Segment) Length() float64 {
	return s.Start.Distance(s.End)
}

// Ray is the half-line Origin + t*Direction, t >= 0.
type Ray struct {
	Origin, Direction r3.Vector
}

// ClosestPoint returns the point of the ray nearest to p.
func (r Ray) ClosestPoint(p r3.Vector) r3.Vector {
	t := math.Max(0, ProjectionParameter(r.Origin, r.Direction, p))

	return r.Origin.Add(r.Direction.Mul(t))
}

// ClosestPointInList returns the candidate closest to p.
// With no candidates p itself is returned.
func ClosestPointInList(p r3.Vector, candidates ...r3.Vector) r3.Vector {
	if len(candidates) == 0 {
		return p
	}
	best := candidates[0]
	bestD := best.Sub(p).Norm2()
	for _, c := range candidates[1:] {
		if d := c.Sub(p).Norm2(); d < bestD {
			best, bestD = c, d
		}
	}

	return best
}

// Midpoint of a and b.
func Midpoint(a, b r3.Vector) r3.Vector {
	return a.Add(b).Mul(0.5)
}
