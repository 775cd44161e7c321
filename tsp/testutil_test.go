// Package tsp_test provides lightweight testing helpers shared across *_test.go
// files in this package.
package tsp_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/matrix"
)

const (
	// epsTiny matches tsp.DefaultEps.
	epsTiny = 1e-12

	// seedDet is a deterministic seed for RNG-based components.
	seedDet = int64(7)
)

// testDense is a simple dense matrix with bounds-checked At/Set and deep Clone.
// It keeps the solvers honest about depending only on matrix.Matrix.
type testDense struct{ a [][]float64 }

var _ matrix.Matrix = testDense{}

func (m testDense) Rows() int { return len(m.a) }
func (m testDense) Cols() int {
	if len(m.a) == 0 {
		return 0
	}

	return len(m.a[0])
}
func (m testDense) At(i, j int) (float64, error) {
	if i < 0 || i >= m.Rows() || j < 0 || j >= m.Cols() {
		return 0, matrix.ErrIndexOutOfBounds
	}

	return m.a[i][j], nil
}
func (m testDense) Set(i, j int, v float64) error {
	if i < 0 || i >= m.Rows() || j < 0 || j >= m.Cols() {
		return matrix.ErrIndexOutOfBounds
	}
	m.a[i][j] = v

	return nil
}
func (m testDense) Clone() matrix.Matrix {
	cp := make([][]float64, len(m.a))
	for i := range m.a {
		cp[i] = append([]float64(nil), m.a[i]...)
	}

	return testDense{a: cp}
}

// Repeat runs fn n times. Useful for determinism checks.
func Repeat(t *testing.T, n int, fn func(t *testing.T)) {
	t.Helper()
	for i := 0; i < n; i++ {
		fn(t)
	}
}

// euclid builds a symmetric metric from 2D points with zero diagonal.
func euclid(pts [][2]float64) testDense {
	n := len(pts)
	a := make([][]float64, n)
	for i := range a {
		a[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := math.Hypot(pts[i][0]-pts[j][0], pts[i][1]-pts[j][1])
			a[i][j], a[j][i] = d, d
		}
	}

	return testDense{a: a}
}

// randomPoints draws n points in the unit square.
func randomPoints(n int, seed int64) [][2]float64 {
	rng := rand.New(rand.NewSource(seed))
	pts := make([][2]float64, n)
	for i := range pts {
		pts[i] = [2]float64{rng.Float64(), rng.Float64()}
	}

	return pts
}

// linePoints places n points on the x axis at 0, 1, ..., n-1 in a scrambled
// storage order so the optimal open path from the origin is non-trivial.
func linePoints(xs ...float64) [][2]float64 {
	pts := make([][2]float64, len(xs))
	for i, x := range xs {
		pts[i] = [2]float64{x, 0}
	}

	return pts
}
