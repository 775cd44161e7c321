package geom

import (
	"math"
	"math/rand"

	"github.com/golang/geo/r3"
)

// TriangleEdge names one edge of a triangle (a, b, c).
type TriangleEdge int

// TriangleVertex names one corner of a triangle (a, b, c).
type TriangleVertex int

const (
	EdgeAB TriangleEdge = iota
	EdgeBC
	EdgeCA
)

const (
	VertexA TriangleVertex = iota
	VertexB
	VertexC
)

// Edges lists the three edges in storage order.
var Edges = [3]TriangleEdge{EdgeAB, EdgeBC, EdgeCA}

// Vertices returns the two corners of the edge, in winding order.
func (e TriangleEdge) Vertices() [2]TriangleVertex {
	switch e {
	case EdgeAB:
		return [2]TriangleVertex{VertexA, VertexB}
	case EdgeBC:
		return [2]TriangleVertex{VertexB, VertexC}
	default:
		return [2]TriangleVertex{VertexC, VertexA}
	}
}

// Edges returns the two edges incident to the corner.
func (v TriangleVertex) Edges() [2]TriangleEdge {
	switch v {
	case VertexA:
		return [2]TriangleEdge{EdgeAB, EdgeCA}
	case VertexB:
		return [2]TriangleEdge{EdgeBC, EdgeAB}
	default:
		return [2]TriangleEdge{EdgeCA, EdgeBC}
	}
}

// TriangleNormal returns the unit normal of (a, b, c) following the
// right-hand rule, or the zero vector for a degenerate triangle.
func TriangleNormal(a, b, c r3.Vector) r3.Vector {
	return b.Sub(a).Cross(c.Sub(a)).Normalize()
}

// TriangleCentroid returns the centre of gravity of (a, b, c).
func TriangleCentroid(a, b, c r3.Vector) r3.Vector {
	return a.Add(b).Add(c).Mul(1.0 / 3.0)
}

// Barycentric returns the barycentric coordinates (alpha, beta, gamma) of the
// orthogonal projection of p onto the plane of (a, b, c), packed into X, Y, Z.
// The coordinates always sum to one. A degenerate triangle yields (1, 0, 0).
func Barycentric(p, a, b, c r3.Vector) r3.Vector {
	u := b.Sub(a)
	v := c.Sub(a)
	n := u.Cross(v)
	nn := n.Dot(n)
	if nn < degenerateTol {
		return r3.Vector{X: 1}
	}
	w := p.Sub(a)
	gamma := u.Cross(w).Dot(n) / nn
	beta := w.Cross(v).Dot(n) / nn

	return r3.Vector{X: 1 - gamma - beta, Y: beta, Z: gamma}
}

// FromBarycentric maps barycentric coordinates back to a point.
func FromBarycentric(bc, a, b, c r3.Vector) r3.Vector {
	return a.Mul(bc.X).Add(b.Mul(bc.Y)).Add(c.Mul(bc.Z))
}

// InsideBarycentric reports whether all coordinates are >= -tol.
func InsideBarycentric(bc r3.Vector, tol float64) bool {
	return bc.X >= -tol && bc.Y >= -tol && bc.Z >= -tol
}

// ClosestPointOnTriangle returns the point of the closed triangle (a, b, c)
// nearest to p.
func ClosestPointOnTriangle(p, a, b, c r3.Vector) r3.Vector {
	bc := Barycentric(p, a, b, c)
	if InsideBarycentric(bc, 0) {
		return FromBarycentric(bc, a, b, c)
	}

	return ClosestPointInList(p,
		Segment{a, b}.ClosestPoint(p),
		Segment{b, c}.ClosestPoint(p),
		Segment{c, a}.ClosestPoint(p),
	)
}

// UniformPointOnTriangle draws a point uniformly from the area of (a, b, c).
func UniformPointOnTriangle(rng *rand.Rand, a, b, c r3.Vector) r3.Vector {
	r1 := math.Sqrt(rng.Float64())
	r2 := rng.Float64()

	return a.Mul(1 - r1).Add(b.Mul(r1 * (1 - r2))).Add(c.Mul(r1 * r2))
}

// AwayFromVertices nudges p, assumed to lie on (a, b, c), out of any corner
// neighbourhood of radius margin toward the opposite edge midpoint. Points
// further than margin from every corner are returned unchanged.
func AwayFromVertices(p, a, b, c r3.Vector, margin float64) r3.Vector {
	m2 := margin * margin
	switch {
	case p.Sub(a).Norm2() < m2:
		return a.Add(Midpoint(b, c).Sub(a).Normalize().Mul(margin))
	case p.Sub(b).Norm2() < m2:
		return b.Add(Midpoint(c, a).Sub(b).Normalize().Mul(margin))
	case p.Sub(c).Norm2() < m2:
		return c.Add(Midpoint(a, b).Sub(c).Normalize().Mul(margin))
	default:
		return p
	}
}
