package seglap

import "github.com/LdDl/seglap-go/trackgraph"

// BranchingStats summarizes the topology of one linked track component.
type BranchingStats struct {
	ComponentID int
	Objects     int
	// Gaps counts links spanning more than one frame
	Gaps int
	// Splits counts objects with one predecessor and several successors
	Splits int
	// Merges counts objects with several predecessors and one successor
	Merges int
	// Complex counts objects with several predecessors and successors
	Complex int
}

// AnalyzeBranching computes branching statistics for the given
// components. Passing the component IDs from a trackgraph.ChangeEvent
// re-analyzes exactly the tracks a batch touched and nothing else.
func AnalyzeBranching(g *trackgraph.Graph, componentIDs []int) map[int]BranchingStats {
	out := make(map[int]BranchingStats, len(componentIDs))
	for _, componentID := range componentIDs {
		objects := g.ComponentObjects(componentID)
		if len(objects) == 0 {
			continue
		}
		stats := BranchingStats{ComponentID: componentID, Objects: len(objects)}
		for _, o := range objects {
			predecessors := 0
			successors := 0
			for _, neighbor := range g.Neighbors(o) {
				switch {
				case neighbor.Frame < o.Frame:
					predecessors++
				case neighbor.Frame > o.Frame:
					successors++
					// Counted from the earlier endpoint only, once per link.
					if neighbor.Frame-o.Frame > 1 {
						stats.Gaps++
					}
				}
			}
			switch {
			case predecessors > 1 && successors > 1:
				stats.Complex++
			case successors > 1:
				stats.Splits++
			case predecessors > 1:
				stats.Merges++
			}
		}
		out[componentID] = stats
	}
	return out
}
