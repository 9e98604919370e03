package seglap

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSparseCostMatrixAssembly(t *testing.T) {
	cells := []cell{
		{row: 1, col: 0, cost: 3},
		{row: 0, col: 1, cost: 2},
		{row: 0, col: 0, cost: 1},
	}
	m, err := newSparseCostMatrix(2, 2, cells)
	require.NoError(t, err)

	assert.Equal(t, 2, m.NumRows())
	assert.Equal(t, 2, m.NumCols())
	assert.Equal(t, 3, m.NumEntries())
	assert.Equal(t, 1.0, m.MinCost())

	start, end := m.rowRange(0)
	assert.Equal(t, []int{0, 1}, m.cols[start:end])
	assert.Equal(t, []float64{1, 2}, m.costs[start:end])
}

func TestSparseCostMatrixRejectsBadCells(t *testing.T) {
	_, err := newSparseCostMatrix(2, 2, []cell{{row: 2, col: 0, cost: 1}})
	assert.Error(t, err)

	_, err = newSparseCostMatrix(2, 2, []cell{{row: 0, col: 0, cost: math.Inf(1)}})
	assert.Error(t, err)

	_, err = newSparseCostMatrix(2, 2, []cell{
		{row: 0, col: 0, cost: 1},
		{row: 0, col: 0, cost: 2},
	})
	assert.Error(t, err)
}

func TestSparseCostMatrixSupport(t *testing.T) {
	full, err := newSparseCostMatrix(2, 2, []cell{
		{row: 0, col: 0, cost: 1},
		{row: 1, col: 1, cost: 1},
	})
	require.NoError(t, err)
	assert.True(t, full.hasFullSupport())

	emptyRow, err := newSparseCostMatrix(2, 2, []cell{
		{row: 0, col: 0, cost: 1},
		{row: 0, col: 1, cost: 1},
	})
	require.NoError(t, err)
	assert.False(t, emptyRow.hasFullSupport())

	emptyCol, err := newSparseCostMatrix(2, 2, []cell{
		{row: 0, col: 0, cost: 1},
		{row: 1, col: 0, cost: 1},
	})
	require.NoError(t, err)
	assert.False(t, emptyCol.hasFullSupport())
}

func TestSparseCostMatrixDense(t *testing.T) {
	m, err := newSparseCostMatrix(2, 3, []cell{
		{row: 0, col: 2, cost: 5},
		{row: 1, col: 0, cost: 7},
	})
	require.NoError(t, err)

	dense := m.Dense()
	rows, cols := dense.Dims()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 3, cols)
	assert.Equal(t, 5.0, dense.At(0, 2))
	assert.Equal(t, 7.0, dense.At(1, 0))
	assert.True(t, math.IsInf(dense.At(0, 0), 1))
	assert.True(t, math.IsInf(dense.At(1, 2), 1))
}
