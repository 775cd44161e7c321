package geom_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/geom"
)

const epsTiny = 1e-12

func vecNear(t *testing.T, want, got r3.Vector, tol float64) {
	t.Helper()
	assert.InDeltaf(t, 0, want.Distance(got), tol, "want %v, got %v", want, got)
}

func TestPlaneFromPoints(t *testing.T) {
	pl, ok := geom.PlaneFromPoints(r3.Vector{X: 1}, r3.Vector{}, r3.Vector{Y: 1})
	require.True(t, ok)
	// (p1-p2)x(p3-p2) = X x Y = Z
	vecNear(t, r3.Vector{Z: 1}, pl.Normal, epsTiny)
	assert.InDelta(t, 2.0, pl.SignedDistance(r3.Vector{X: 5, Y: -3, Z: 2}), epsTiny)
	vecNear(t, r3.Vector{X: 5, Y: -3}, pl.Project(r3.Vector{X: 5, Y: -3, Z: 2}), epsTiny)

	_, ok = geom.PlaneFromPoints(r3.Vector{}, r3.Vector{X: 1}, r3.Vector{X: 2})
	assert.False(t, ok, "collinear points have no plane")
}

func TestPlaneIntersectSegment(t *testing.T) {
	pl, ok := geom.PlaneFromNormal(r3.Vector{Z: 2}, r3.Vector{Z: 1})
	require.True(t, ok)

	tt, hit := pl.IntersectSegment(r3.Vector{}, r3.Vector{Z: 4})
	require.True(t, hit)
	assert.InDelta(t, 0.25, tt, epsTiny)

	_, hit = pl.IntersectSegment(r3.Vector{Z: 2}, r3.Vector{Z: 4})
	assert.False(t, hit)
	_, hit = pl.IntersectSegment(r3.Vector{Z: 1}, r3.Vector{Z: 4})
	assert.False(t, hit, "touching endpoint is not a strict crossing")
}

func TestSegmentAndRayClosestPoint(t *testing.T) {
	s := geom.Segment{Start: r3.Vector{}, End: r3.Vector{X: 2}}
	vecNear(t, r3.Vector{X: 1}, s.ClosestPoint(r3.Vector{X: 1, Y: 5}), epsTiny)
	vecNear(t, r3.Vector{}, s.ClosestPoint(r3.Vector{X: -3, Y: 1}), epsTiny)
	vecNear(t, r3.Vector{X: 2}, s.ClosestPoint(r3.Vector{X: 9}), epsTiny)
	assert.InDelta(t, 2.0, s.Length(), epsTiny)

	r := geom.Ray{Origin: r3.Vector{}, Direction: r3.Vector{X: 1}}
	vecNear(t, r3.Vector{X: 9}, r.ClosestPoint(r3.Vector{X: 9, Y: 1}), epsTiny)
	vecNear(t, r3.Vector{}, r.ClosestPoint(r3.Vector{X: -9}), epsTiny)
}

func TestBarycentricRoundTrip(t *testing.T) {
	a, b, c := r3.Vector{}, r3.Vector{X: 1}, r3.Vector{Y: 1}
	p := r3.Vector{X: 0.2, Y: 0.3, Z: 7}

	bc := geom.Barycentric(p, a, b, c)
	assert.InDelta(t, 1.0, bc.X+bc.Y+bc.Z, epsTiny)
	assert.InDelta(t, 0.5, bc.X, epsTiny)
	assert.InDelta(t, 0.2, bc.Y, epsTiny)
	assert.InDelta(t, 0.3, bc.Z, epsTiny)
	vecNear(t, r3.Vector{X: 0.2, Y: 0.3}, geom.FromBarycentric(bc, a, b, c), epsTiny)
}

func TestClosestPointOnTriangle(t *testing.T) {
	a, b, c := r3.Vector{}, r3.Vector{X: 1}, r3.Vector{Y: 1}

	cases := []struct {
		name string
		p    r3.Vector
		want r3.Vector
	}{
		{"above interior", r3.Vector{X: 0.25, Y: 0.25, Z: 3}, r3.Vector{X: 0.25, Y: 0.25}},
		{"beyond corner a", r3.Vector{X: -1, Y: -1}, a},
		{"beyond hypotenuse", r3.Vector{X: 1, Y: 1}, r3.Vector{X: 0.5, Y: 0.5}},
		{"below edge ab", r3.Vector{X: 0.5, Y: -2, Z: 1}, r3.Vector{X: 0.5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			vecNear(t, tc.want, geom.ClosestPointOnTriangle(tc.p, a, b, c), 1e-9)
		})
	}
}

func TestTriangleNormalAndCentroid(t *testing.T) {
	a, b, c := r3.Vector{}, r3.Vector{X: 3}, r3.Vector{Y: 3}
	vecNear(t, r3.Vector{Z: 1}, geom.TriangleNormal(a, b, c), epsTiny)
	vecNear(t, r3.Vector{X: 1, Y: 1}, geom.TriangleCentroid(a, b, c), epsTiny)
}

func TestEdgeVertexTables(t *testing.T) {
	for _, e := range geom.Edges {
		vs := e.Vertices()
		for _, v := range vs {
			assert.Contains(t, v.Edges(), e, "edge %d must be incident to its vertex %d", e, v)
		}
	}
}

func TestUniformPointOnTriangleStaysInside(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	a, b, c := r3.Vector{}, r3.Vector{X: 2}, r3.Vector{Y: 2, Z: 1}
	for i := 0; i < 500; i++ {
		p := geom.UniformPointOnTriangle(rng, a, b, c)
		bc := geom.Barycentric(p, a, b, c)
		require.True(t, geom.InsideBarycentric(bc, 1e-9), "sample %d escaped: %v", i, bc)
		pl, _ := geom.PlaneFromPoints(a, b, c)
		require.Less(t, math.Abs(pl.SignedDistance(p)), 1e-9)
	}
}

func TestAwayFromVertices(t *testing.T) {
	a, b, c := r3.Vector{}, r3.Vector{X: 1}, r3.Vector{Y: 1}
	moved := geom.AwayFromVertices(r3.Vector{X: 1e-6}, a, b, c, 0.01)
	assert.InDelta(t, 0.01, moved.Norm(), 1e-12)

	p := r3.Vector{X: 0.3, Y: 0.3}
	assert.Equal(t, p, geom.AwayFromVertices(p, a, b, c, 0.01))
}
