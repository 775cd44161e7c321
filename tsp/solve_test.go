package tsp_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/matrix"
	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/tsp"
)

func opts(algo tsp.Algorithm) tsp.Options {
	o := tsp.DefaultOptions()
	o.Algo = algo
	o.Seed = seedDet

	return o
}

// On a line the optimal open path from the origin sweeps outward once;
// the cycle answer would differ because it pays to come back.
func TestOpenPathOnLine(t *testing.T) {
	dist := euclid(linePoints(0, 3, 1, 2, 4))
	for _, algo := range []tsp.Algorithm{tsp.ExactHeldKarp, tsp.NearestNeighborTwoOpt, tsp.Auto} {
		t.Run(algo.String(), func(t *testing.T) {
			res, err := tsp.SolveOpenPath(dist, opts(algo))
			require.NoError(t, err)
			assert.Equal(t, []int{0, 2, 3, 1, 4}, res.Order)
			assert.InDelta(t, 4.0, res.Cost, epsTiny)
		})
	}
}

func TestStartVertexIsHonoured(t *testing.T) {
	dist := euclid(linePoints(0, 1, 2, 3))
	o := opts(tsp.ExactHeldKarp)
	o.StartVertex = 1
	res, err := tsp.SolveOpenPath(dist, o)
	require.NoError(t, err)
	// From x=1 it is cheaper to go to 0 first and then sweep right: 1+3 = 4
	// versus 2+3 = 5 for going right first.
	assert.Equal(t, []int{1, 0, 2, 3}, res.Order)
	assert.InDelta(t, 4.0, res.Cost, epsTiny)
}

func TestHeuristicMatchesExactOnSmallInstances(t *testing.T) {
	for seed := int64(1); seed <= 6; seed++ {
		dist := euclid(randomPoints(9, seed))
		exact, err := tsp.SolveOpenPath(dist, opts(tsp.ExactHeldKarp))
		require.NoError(t, err)

		o := opts(tsp.NearestNeighborTwoOpt)
		o.Restarts = 32
		heur, err := tsp.SolveOpenPath(dist, o)
		require.NoError(t, err)

		require.NoError(t, tsp.ValidateOpenPath(heur.Order, 9, 0))
		assert.GreaterOrEqual(t, heur.Cost, exact.Cost-1e-9, "heuristic cannot beat the optimum")

		c, err := tsp.PathCost(dist, exact.Order)
		require.NoError(t, err)
		assert.InDelta(t, exact.Cost, c, 1e-9)
	}
}

func TestHeuristicDeterministicForSeed(t *testing.T) {
	dist := euclid(randomPoints(40, 3))
	o := opts(tsp.NearestNeighborTwoOpt)
	first, err := tsp.SolveOpenPath(dist, o)
	require.NoError(t, err)
	Repeat(t, 3, func(t *testing.T) {
		again, err := tsp.SolveOpenPath(dist, o)
		require.NoError(t, err)
		assert.Equal(t, first.Order, again.Order)
		assert.Equal(t, first.Cost, again.Cost)
	})
}

func TestAsymmetricTwoOptPricesReversal(t *testing.T) {
	// Going 1→2 is cheap, 2→1 is expensive, so direction matters.
	dist := testDense{a: [][]float64{
		{0, 1, 5},
		{1, 0, 1},
		{1, 100, 0},
	}}
	o := opts(tsp.NearestNeighborTwoOpt)
	res, err := tsp.SolveOpenPath(dist, o)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, res.Order)
	assert.InDelta(t, 2.0, res.Cost, epsTiny)
}

func TestOpenTwoOptNeverWorsens(t *testing.T) {
	dist := euclid(randomPoints(25, 11))
	init := make([]int, 25)
	for i := range init {
		init[i] = i
	}
	before, err := tsp.PathCost(dist, init)
	require.NoError(t, err)

	o := opts(tsp.NearestNeighborTwoOpt)
	o.Symmetric = true
	out, after, err := tsp.OpenTwoOpt(dist, init, o)
	require.NoError(t, err)
	require.NoError(t, tsp.ValidateOpenPath(out, 25, 0))
	assert.LessOrEqual(t, after, before)
	assert.Equal(t, 0, init[0], "input must not be mutated")
	assert.Equal(t, 24, init[24])
}

func TestSingleVertex(t *testing.T) {
	dist := testDense{a: [][]float64{{0}}}
	res, err := tsp.SolveOpenPath(dist, opts(tsp.Auto))
	require.NoError(t, err)
	assert.Equal(t, []int{0}, res.Order)
	assert.Zero(t, res.Cost)

	res, err = tsp.SolveOpenPath(dist, opts(tsp.NearestNeighborTwoOpt))
	require.NoError(t, err)
	assert.Equal(t, []int{0}, res.Order)
}

func TestTimeLimitReturnsBestSoFar(t *testing.T) {
	dist := euclid(randomPoints(150, 5))
	o := opts(tsp.NearestNeighborTwoOpt)
	o.Restarts = 1000
	o.TimeLimit = time.Millisecond
	res, err := tsp.SolveOpenPath(dist, o)
	require.NoError(t, err)
	require.NoError(t, tsp.ValidateOpenPath(res.Order, 150, 0))
}

func TestValidationErrors(t *testing.T) {
	dense, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	_, err = tsp.SolveOpenPath(dense, opts(tsp.Auto))
	assert.ErrorIs(t, err, tsp.ErrNonSquare)

	_, err = tsp.SolveOpenPath(nil, opts(tsp.Auto))
	assert.ErrorIs(t, err, tsp.ErrDimensionMismatch)

	neg := testDense{a: [][]float64{{0, -1}, {1, 0}}}
	_, err = tsp.SolveOpenPath(neg, opts(tsp.Auto))
	assert.ErrorIs(t, err, tsp.ErrNegativeWeight)

	inf := testDense{a: [][]float64{{0, math.Inf(1)}, {1, 0}}}
	_, err = tsp.SolveOpenPath(inf, opts(tsp.Auto))
	assert.ErrorIs(t, err, tsp.ErrIncompleteGraph)

	asym := testDense{a: [][]float64{{0, 2}, {1, 0}}}
	o := opts(tsp.Auto)
	o.Symmetric = true
	_, err = tsp.SolveOpenPath(asym, o)
	assert.ErrorIs(t, err, tsp.ErrAsymmetry)

	o = opts(tsp.Auto)
	o.StartVertex = 5
	_, err = tsp.SolveOpenPath(asym, o)
	assert.ErrorIs(t, err, tsp.ErrStartOutOfRange)

	_, err = tsp.SolveOpenPath(asym, opts(tsp.Algorithm(99)))
	assert.ErrorIs(t, err, tsp.ErrUnsupportedAlgorithm)

	_, err = tsp.OpenHeldKarp(euclid(randomPoints(tsp.MaxExactN+1, 1)), opts(tsp.ExactHeldKarp))
	assert.ErrorIs(t, err, tsp.ErrTooLarge)
}

func TestParseAlgorithm(t *testing.T) {
	for _, a := range []tsp.Algorithm{tsp.Auto, tsp.ExactHeldKarp, tsp.NearestNeighborTwoOpt} {
		got, err := tsp.ParseAlgorithm(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}
	_, err := tsp.ParseAlgorithm("christofides")
	assert.ErrorIs(t, err, tsp.ErrUnsupportedAlgorithm)
}

func TestValidateOpenPath(t *testing.T) {
	assert.NoError(t, tsp.ValidateOpenPath([]int{2, 0, 1}, 3, 2))
	assert.ErrorIs(t, tsp.ValidateOpenPath([]int{0, 0, 1}, 3, 0), tsp.ErrDimensionMismatch)
	assert.ErrorIs(t, tsp.ValidateOpenPath([]int{1, 0, 2}, 3, 0), tsp.ErrStartOutOfRange)
	assert.ErrorIs(t, tsp.ValidateOpenPath([]int{0, 1}, 3, 0), tsp.ErrDimensionMismatch)
}
