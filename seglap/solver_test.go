package seglap

import (
	"math/rand"
	"testing"

	hungarian "github.com/arthurkushman/go-hungarian"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveSparseTinyMatrix(t *testing.T) {
	m, err := newSparseCostMatrix(2, 2, []cell{
		{row: 0, col: 0, cost: 2},
		{row: 0, col: 1, cost: 1},
		{row: 1, col: 0, cost: 4},
		{row: 1, col: 1, cost: 1},
	})
	require.NoError(t, err)

	rowAssign, err := solveSparse(m)
	require.NoError(t, err)
	// Optimum is 2+1=3, not the greedy 1+4=5.
	assert.Equal(t, []int{0, 1}, rowAssign)
	assert.InDelta(t, 3.0, assignmentCost(m, rowAssign), 1e-12)
}

func TestSolveSparseEmpty(t *testing.T) {
	m, err := newSparseCostMatrix(0, 0, nil)
	require.NoError(t, err)
	rowAssign, err := solveSparse(m)
	require.NoError(t, err)
	assert.Empty(t, rowAssign)
}

func TestSolveSparseRejectsRectangular(t *testing.T) {
	m, err := newSparseCostMatrix(1, 2, []cell{{row: 0, col: 0, cost: 1}, {row: 0, col: 1, cost: 1}})
	require.NoError(t, err)
	_, err = solveSparse(m)
	assert.Error(t, err)
}

func TestSolveSparseMissingSupport(t *testing.T) {
	m, err := newSparseCostMatrix(2, 2, []cell{
		{row: 0, col: 0, cost: 1},
		{row: 1, col: 0, cost: 1},
	})
	require.NoError(t, err)
	_, err = solveSparse(m)
	assert.Error(t, err)
}

func TestSolveSparseInfeasibleWithFullSupport(t *testing.T) {
	// Rows 0 and 1 both compete for column 0 with no way out.
	m, err := newSparseCostMatrix(3, 3, []cell{
		{row: 0, col: 0, cost: 1},
		{row: 1, col: 0, cost: 1},
		{row: 2, col: 1, cost: 1},
		{row: 2, col: 2, cost: 1},
	})
	require.NoError(t, err)
	_, err = solveSparse(m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no feasible assignment")
}

func TestSolveSparseDisconnectedBlocks(t *testing.T) {
	// Two independent 2x2 sub-problems in one matrix.
	m, err := newSparseCostMatrix(4, 4, []cell{
		{row: 0, col: 0, cost: 1},
		{row: 0, col: 1, cost: 5},
		{row: 1, col: 0, cost: 5},
		{row: 1, col: 1, cost: 1},
		{row: 2, col: 2, cost: 3},
		{row: 2, col: 3, cost: 1},
		{row: 3, col: 2, cost: 1},
		{row: 3, col: 3, cost: 3},
	})
	require.NoError(t, err)

	rowAssign, err := solveSparse(m)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 3, 2}, rowAssign)
	assert.InDelta(t, 4.0, assignmentCost(m, rowAssign), 1e-12)
}

func TestSolveSparseMatchesDenseOracle(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 20; trial++ {
		n := 3 + rng.Intn(5)
		dense := make([][]float64, n)
		cells := make([]cell, 0, n*n)
		for i := 0; i < n; i++ {
			dense[i] = make([]float64, n)
			for j := 0; j < n; j++ {
				cost := float64(1 + rng.Intn(100))
				dense[i][j] = cost
				cells = append(cells, cell{row: i, col: j, cost: cost})
			}
		}

		m, err := newSparseCostMatrix(n, n, cells)
		require.NoError(t, err)
		rowAssign, err := solveSparse(m)
		require.NoError(t, err)
		total := assignmentCost(m, rowAssign)

		oracle := hungarian.SolveMin(dense)
		oracleTotal := 0.0
		for _, row := range oracle {
			for _, value := range row {
				oracleTotal += value
			}
		}
		assert.InDeltaf(t, oracleTotal, total, 1e-9, "trial %d (n=%d)", trial, n)
	}
}

func TestSolveSparseDeterministicOnTies(t *testing.T) {
	cells := []cell{
		{row: 0, col: 0, cost: 1},
		{row: 0, col: 1, cost: 1},
		{row: 1, col: 0, cost: 1},
		{row: 1, col: 1, cost: 1},
	}
	var first []int
	for trial := 0; trial < 10; trial++ {
		m, err := newSparseCostMatrix(2, 2, append([]cell(nil), cells...))
		require.NoError(t, err)
		rowAssign, err := solveSparse(m)
		require.NoError(t, err)
		if first == nil {
			first = rowAssign
		} else {
			assert.Equal(t, first, rowAssign)
		}
	}
}
