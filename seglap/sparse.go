package seglap

import (
	"math"
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// cell is one finite entry of the sparse cost matrix
type cell struct {
	row  int
	col  int
	cost float64
}

// SparseCostMatrix stores only the finite, feasible entries of the
// assignment cost matrix in compressed row storage. Entries that are
// absent are understood as blocked (infinite cost).
type SparseCostMatrix struct {
	nRows, nCols int
	rowStart     []int
	cols         []int
	costs        []float64
}

// newSparseCostMatrix assembles a matrix from an unordered cell list.
// Cells are sorted by (row, col); duplicates, out-of-range indices and
// non-finite costs are rejected.
func newSparseCostMatrix(nRows, nCols int, cells []cell) (*SparseCostMatrix, error) {
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].row != cells[j].row {
			return cells[i].row < cells[j].row
		}
		return cells[i].col < cells[j].col
	})

	m := &SparseCostMatrix{
		nRows:    nRows,
		nCols:    nCols,
		rowStart: make([]int, nRows+1),
		cols:     make([]int, 0, len(cells)),
		costs:    make([]float64, 0, len(cells)),
	}
	for idx, c := range cells {
		if c.row < 0 || c.row >= nRows || c.col < 0 || c.col >= nCols {
			return nil, errors.Errorf("cell (%d,%d) out of the %dx%d matrix", c.row, c.col, nRows, nCols)
		}
		if math.IsInf(c.cost, 0) || math.IsNaN(c.cost) {
			return nil, errors.Errorf("cell (%d,%d) has a non-finite cost %v", c.row, c.col, c.cost)
		}
		if idx > 0 && cells[idx-1].row == c.row && cells[idx-1].col == c.col {
			return nil, errors.Errorf("duplicate cell (%d,%d)", c.row, c.col)
		}
		m.rowStart[c.row+1]++
		m.cols = append(m.cols, c.col)
		m.costs = append(m.costs, c.cost)
	}
	for i := 1; i <= nRows; i++ {
		m.rowStart[i] += m.rowStart[i-1]
	}
	return m, nil
}

// NumRows returns the number of rows
func (m *SparseCostMatrix) NumRows() int { return m.nRows }

// NumCols returns the number of columns
func (m *SparseCostMatrix) NumCols() int { return m.nCols }

// NumEntries returns the number of materialized cells
func (m *SparseCostMatrix) NumEntries() int { return len(m.costs) }

// MinCost returns the smallest materialized cost
func (m *SparseCostMatrix) MinCost() float64 {
	if len(m.costs) == 0 {
		return 0
	}
	return floats.Min(m.costs)
}

// rowRange returns the [start,end) slice bounds of row i in cols/costs
func (m *SparseCostMatrix) rowRange(i int) (int, int) {
	return m.rowStart[i], m.rowStart[i+1]
}

// hasFullSupport reports whether every row and every column holds at
// least one finite entry, which guarantees a feasible square assignment.
func (m *SparseCostMatrix) hasFullSupport() bool {
	colSeen := make([]bool, m.nCols)
	for i := 0; i < m.nRows; i++ {
		if m.rowStart[i] == m.rowStart[i+1] {
			return false
		}
	}
	for _, col := range m.cols {
		colSeen[col] = true
	}
	for _, seen := range colSeen {
		if !seen {
			return false
		}
	}
	return true
}

// Dense expands the matrix for inspection and tests. Blocked entries
// become +Inf. Never used on the solve path.
func (m *SparseCostMatrix) Dense() *mat.Dense {
	dense := mat.NewDense(m.nRows, m.nCols, nil)
	for i := 0; i < m.nRows; i++ {
		for j := 0; j < m.nCols; j++ {
			dense.Set(i, j, math.Inf(1))
		}
		start, end := m.rowRange(i)
		for k := start; k < end; k++ {
			dense.Set(i, m.cols[k], m.costs[k])
		}
	}
	return dense
}
