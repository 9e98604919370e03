package seglap

import (
	"fmt"

	"github.com/LdDl/seglap-go/trackgraph"
)

// Segment is a maximal branch-free path of objects, ordered from the
// earliest frame (head) to the latest (tail). Segments are derived views
// recomputed per invocation; they own nothing.
type Segment struct {
	objects []*trackgraph.Object
}

// Head returns the earliest object of the segment
func (s *Segment) Head() *trackgraph.Object {
	return s.objects[0]
}

// Tail returns the latest object of the segment
func (s *Segment) Tail() *trackgraph.Object {
	return s.objects[len(s.objects)-1]
}

// Objects returns the ordered objects of the segment
func (s *Segment) Objects() []*trackgraph.Object {
	return s.objects
}

// Interior returns the objects strictly between head and tail
func (s *Segment) Interior() []*trackgraph.Object {
	if len(s.objects) < 3 {
		return nil
	}
	return s.objects[1 : len(s.objects)-1]
}

// Len returns the number of objects in the segment
func (s *Segment) Len() int {
	return len(s.objects)
}

// extractSegments decomposes the graph into maximal simple paths.
// Unconnected objects become one-node segments. A branch-free graph is
// the expected input; branching is tolerated with a warning and resolved
// by a deterministic path decomposition (lowest object ID first).
func extractSegments(g *trackgraph.Graph) ([]*Segment, []string) {
	objects := g.Objects()
	var warnings []string
	for _, o := range objects {
		if degree := g.Degree(o); degree > 2 {
			warnings = append(warnings, fmt.Sprintf("object %d has %d links; the graph is not branch-free", o.ID(), degree))
		}
	}

	visited := make(map[int]bool, len(objects))
	segments := make([]*Segment, 0)

	walk := func(start *trackgraph.Object) *Segment {
		path := []*trackgraph.Object{start}
		visited[start.ID()] = true
		current := start
		for {
			var next *trackgraph.Object
			for _, neighbor := range g.Neighbors(current) {
				if !visited[neighbor.ID()] {
					next = neighbor
					break
				}
			}
			if next == nil {
				break
			}
			visited[next.ID()] = true
			path = append(path, next)
			current = next
		}
		return orient(&Segment{objects: path})
	}

	// Path endpoints first, so every walk covers a full segment.
	for _, o := range objects {
		if !visited[o.ID()] && g.Degree(o) <= 1 {
			segments = append(segments, walk(o))
		}
	}
	// Leftovers are cycles or branch cores; decompose them consistently.
	for _, o := range objects {
		if !visited[o.ID()] {
			segments = append(segments, walk(o))
		}
	}
	return segments, warnings
}

// orient makes sure the segment runs from the earliest frame to the latest
func orient(s *Segment) *Segment {
	first := s.objects[0]
	last := s.objects[len(s.objects)-1]
	if first.Frame > last.Frame || (first.Frame == last.Frame && first.ID() > last.ID()) {
		for i, j := 0, len(s.objects)-1; i < j; i, j = i+1, j-1 {
			s.objects[i], s.objects[j] = s.objects[j], s.objects[i]
		}
	}
	return s
}
