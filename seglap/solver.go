package seglap

import (
	"math"

	"github.com/pkg/errors"
)

// solveSparse computes a minimum-cost perfect matching of a square
// sparse cost matrix using shortest augmenting paths with dual
// potentials (the Jonker-Volgenant scheme), never touching blocked
// entries. Rows are processed in ascending index and column distance
// ties break toward the lower column index, so the result is
// deterministic.
//
// Returns rowAssign where rowAssign[i] is the column matched to row i.
// An error means no perfect matching exists, which for a properly
// assembled matrix (alternative and auxiliary blocks in place) signals
// an internal invariant violation rather than bad user input.
func solveSparse(m *SparseCostMatrix) ([]int, error) {
	if m.nRows != m.nCols {
		return nil, errors.Errorf("matrix is not square: %dx%d", m.nRows, m.nCols)
	}
	n := m.nRows
	if n == 0 {
		return []int{}, nil
	}
	if !m.hasFullSupport() {
		return nil, errors.New("matrix has an empty row or column; no feasible assignment exists")
	}

	inf := math.Inf(1)
	u := make([]float64, n) // Row potentials
	v := make([]float64, n) // Column potentials
	matchRow := make([]int, n)
	matchCol := make([]int, n)
	for i := range matchRow {
		matchRow[i] = -1
		matchCol[i] = -1
	}

	dist := make([]float64, n)
	prevCol := make([]int, n) // Previous column on the augmenting path
	done := make([]bool, n)

	for r := 0; r < n; r++ {
		for j := 0; j < n; j++ {
			dist[j] = inf
			prevCol[j] = -1
			done[j] = false
		}

		h := make(columnHeap, 0, n)
		start, end := m.rowRange(r)
		for k := start; k < end; k++ {
			j := m.cols[k]
			d := m.costs[k] - u[r] - v[j]
			if d < dist[j] {
				dist[j] = d
				h.Push(columnCandidate{dist: d, col: j})
			}
		}

		sink := -1
		var sinkDist float64
		for h.Len() > 0 {
			candidate := h.Pop()
			j := candidate.col
			if done[j] || candidate.dist > dist[j] {
				continue // Stale heap entry
			}
			done[j] = true
			if matchCol[j] < 0 {
				sink = j
				sinkDist = dist[j]
				break
			}
			// Relax through the row currently holding column j.
			i2 := matchCol[j]
			start2, end2 := m.rowRange(i2)
			for k := start2; k < end2; k++ {
				j2 := m.cols[k]
				if done[j2] {
					continue
				}
				nd := dist[j] + m.costs[k] - u[i2] - v[j2]
				if nd < dist[j2] {
					dist[j2] = nd
					prevCol[j2] = j
					h.Push(columnCandidate{dist: nd, col: j2})
				}
			}
		}
		if sink < 0 {
			return nil, errors.Errorf("no augmenting path for row %d; no feasible assignment exists", r)
		}

		// Update potentials so reduced costs stay non-negative.
		u[r] += sinkDist
		for j := 0; j < n; j++ {
			if done[j] && j != sink {
				v[j] += dist[j] - sinkDist
				u[matchCol[j]] += sinkDist - dist[j]
			}
		}

		// Augment along the found path.
		j := sink
		for j >= 0 {
			prev := prevCol[j]
			var i int
			if prev < 0 {
				i = r
			} else {
				i = matchCol[prev]
			}
			matchCol[j] = i
			matchRow[i] = j
			j = prev
		}
	}

	return matchRow, nil
}

// assignmentCost sums the materialized costs along an assignment
func assignmentCost(m *SparseCostMatrix, rowAssign []int) float64 {
	total := 0.0
	for i, j := range rowAssign {
		start, end := m.rowRange(i)
		for k := start; k < end; k++ {
			if m.cols[k] == j {
				total += m.costs[k]
				break
			}
		}
	}
	return total
}
