package seglap

import (
	"sort"

	"github.com/LdDl/seglap-go/trackgraph"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// assignedLink is one realized linking decision
type assignedLink struct {
	source *trackgraph.Object
	target *trackgraph.Object
	kind   eventKind
	cost   float64
}

// linkResult is the outcome of one assignment solve
type linkResult struct {
	links   []assignedLink
	altCost float64
}

// linkSegments turns the candidate list into the full block-structured
// sparse matrix and solves it:
//
//	[ linking costs    | termination (diag) ]
//	[ initiation (diag)| auxiliary          ]
//
// Rows are the unique candidate sources plus one alternative row per
// target; columns are the unique candidate targets plus one alternative
// column per source. The shared alternative cost is the configured
// percentile of all candidate costs scaled by the alternative linking
// cost factor; auxiliary cells carry the same value at the transposed
// positions of the linking block, so choosing a link over the double
// alternative requires its cost to undercut the alternative cost.
func linkSegments(candidates []candidate, cfg matrixConfig) (*linkResult, error) {
	if len(candidates) == 0 {
		return &linkResult{}, nil
	}

	costs := make([]float64, len(candidates))
	for i, c := range candidates {
		costs[i] = c.cost
	}
	if floats.Min(costs) < 0 {
		return nil, errors.New("negative candidate cost; the cost model must be non-negative")
	}
	altCost := percentile(costs, cfg.cutoffPercentile) * cfg.alternativeCostFactor

	sources, sourceIndex := uniqueObjects(candidates, func(c candidate) *trackgraph.Object { return c.source })
	targets, targetIndex := uniqueObjects(candidates, func(c candidate) *trackgraph.Object { return c.target })
	nSources := len(sources)
	nTargets := len(targets)
	dim := nSources + nTargets

	cells := make([]cell, 0, 2*len(candidates)+dim)
	for _, c := range candidates {
		i := sourceIndex[c.source.ID()]
		j := targetIndex[c.target.ID()]
		cells = append(cells, cell{row: i, col: j, cost: c.cost})
		// Auxiliary cell at the transposed position keeps the matrix
		// square-feasible whenever both alternatives are skipped.
		cells = append(cells, cell{row: nSources + j, col: nTargets + i, cost: altCost})
	}
	for i := 0; i < nSources; i++ {
		cells = append(cells, cell{row: i, col: nTargets + i, cost: altCost}) // termination
	}
	for j := 0; j < nTargets; j++ {
		cells = append(cells, cell{row: nSources + j, col: j, cost: altCost}) // initiation
	}

	matrix, err := newSparseCostMatrix(dim, dim, cells)
	if err != nil {
		return nil, errors.Wrap(err, "assembling the segment linking cost matrix")
	}
	if !matrix.hasFullSupport() {
		return nil, errors.New("cost matrix misses support on a row or column")
	}

	rowAssign, err := solveSparse(matrix)
	if err != nil {
		return nil, errors.Wrap(err, "solving the segment linking problem")
	}

	// Keep only assignments landing in the linking block.
	byPair := make(map[[2]int]candidate, len(candidates))
	for _, c := range candidates {
		byPair[[2]int{c.source.ID(), c.target.ID()}] = c
	}
	result := &linkResult{altCost: altCost}
	for i := 0; i < nSources; i++ {
		j := rowAssign[i]
		if j >= nTargets {
			continue // Terminated via the alternative column
		}
		c := byPair[[2]int{sources[i].ID(), targets[j].ID()}]
		result.links = append(result.links, assignedLink{
			source: c.source,
			target: c.target,
			kind:   c.kind,
			cost:   c.cost,
		})
	}
	return result, nil
}

// uniqueObjects collects the distinct objects selected by pick from the
// candidate list, sorted by ID, plus an ID-to-index lookup.
func uniqueObjects(candidates []candidate, pick func(candidate) *trackgraph.Object) ([]*trackgraph.Object, map[int]int) {
	seen := make(map[int]*trackgraph.Object)
	for _, c := range candidates {
		o := pick(c)
		seen[o.ID()] = o
	}
	out := make([]*trackgraph.Object, 0, len(seen))
	for _, o := range seen {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	index := make(map[int]int, len(out))
	for i, o := range out {
		index[o.ID()] = i
	}
	return out, index
}
