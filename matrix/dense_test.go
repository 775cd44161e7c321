// Package matrix_test contains unit tests for the Dense implementation
// of the Matrix interface in the matrix package.
package matrix_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/matrix"
)

// TestNewDenseInvalidDimensions ensures that NewDense rejects non-positive dimensions.
func TestNewDenseInvalidDimensions(t *testing.T) {
	_, err := matrix.NewDense(0, 5)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = matrix.NewDense(5, 0)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

// TestAtSetOutOfBounds ensures At() and Set() return ErrIndexOutOfBounds on invalid access.
func TestAtSetOutOfBounds(t *testing.T) {
	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)

	_, err = m.At(-1, 0)
	require.ErrorIs(t, err, matrix.ErrIndexOutOfBounds)
	_, err = m.At(0, 2)
	require.ErrorIs(t, err, matrix.ErrIndexOutOfBounds)
	require.ErrorIs(t, m.Set(2, 0, 1.23), matrix.ErrIndexOutOfBounds)
	require.ErrorIs(t, m.Set(0, -1, 4.56), matrix.ErrIndexOutOfBounds)
}

// TestSetGetClone validates Set/At and that Clone is independent of the source.
func TestSetGetClone(t *testing.T) {
	m, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	require.Equal(t, 2, m.Rows())
	require.Equal(t, 3, m.Cols())

	require.NoError(t, m.Set(1, 2, 7.89))
	val, err := m.At(1, 2)
	require.NoError(t, err)
	require.Equal(t, 7.89, val)

	cp := m.Clone()
	require.NoError(t, m.Set(1, 2, 0))
	val, err = cp.At(1, 2)
	require.NoError(t, err)
	require.Equal(t, 7.89, val, "clone must not alias the source")
	require.Equal(t, "[0, 0, 0]\n[0, 0, 0]\n", m.String())
}

func TestNewDenseFunc(t *testing.T) {
	m, err := matrix.NewDenseFunc(3, 3, func(i, j int) (float64, error) {
		return math.Abs(float64(i - j)), nil
	})
	require.NoError(t, err)
	v, err := m.At(0, 2)
	require.NoError(t, err)
	require.Equal(t, 2.0, v)

	boom := errors.New("boom")
	_, err = matrix.NewDenseFunc(2, 2, func(i, j int) (float64, error) {
		if i == 1 && j == 0 {
			return 0, boom
		}
		return 1, nil
	})
	require.ErrorIs(t, err, boom)
	require.Contains(t, err.Error(), "Dense.Fill(1,0)")
}

func TestValidators(t *testing.T) {
	require.ErrorIs(t, matrix.ValidateSquareNonNil(nil), matrix.ErrNilMatrix)

	rect, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	require.ErrorIs(t, matrix.ValidateSquareNonNil(rect), matrix.ErrNonSquare)

	sq, err := matrix.NewDense(2, 2)
	require.NoError(t, err)
	require.NoError(t, matrix.ValidateSquareNonNil(sq))
	require.NoError(t, matrix.ValidateFinite(sq))

	require.NoError(t, sq.Set(0, 1, math.Inf(1)))
	require.ErrorIs(t, matrix.ValidateFinite(sq), matrix.ErrNaNInf)
}
