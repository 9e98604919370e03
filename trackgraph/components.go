package trackgraph

import "sort"

// componentIndex keeps connected components keyed by stable integer
// identifiers. IDs are assigned once and survive edits: a merge keeps
// the smaller of the two IDs, a split keeps the old ID on the piece
// holding the lowest object ID. Consumers therefore never need a full
// graph traversal to scope their work.
type componentIndex struct {
	byMember map[int]int
	members  map[int]map[int]struct{}
	nextID   int
}

func newComponentIndex() *componentIndex {
	return &componentIndex{
		byMember: make(map[int]int),
		members:  make(map[int]map[int]struct{}),
		nextID:   1,
	}
}

func (ci *componentIndex) componentOf(objectID int) (int, bool) {
	comp, ok := ci.byMember[objectID]
	return comp, ok
}

// add registers a fresh one-member component and returns its ID
func (ci *componentIndex) add(objectID int) int {
	comp := ci.nextID
	ci.nextID++
	ci.byMember[objectID] = comp
	ci.members[comp] = map[int]struct{}{objectID: {}}
	return comp
}

// union merges the components of a and b, keeping the smaller ID.
// Returns the surviving component ID.
func (ci *componentIndex) union(a, b int) int {
	ca := ci.byMember[a]
	cb := ci.byMember[b]
	if ca == cb {
		return ca
	}
	keep, drop := ca, cb
	if cb < ca {
		keep, drop = cb, ca
	}
	for member := range ci.members[drop] {
		ci.byMember[member] = keep
		ci.members[keep][member] = struct{}{}
	}
	delete(ci.members, drop)
	return keep
}

// maybeSplit re-partitions the component of a after the a-b link was
// removed. Returns the affected component IDs (one when the component
// stayed connected, two or more otherwise).
func (ci *componentIndex) maybeSplit(a, b int, neighbors func(int) []int) []int {
	comp := ci.byMember[a]
	return ci.repartition(comp, neighbors)
}

// removeMember drops an object from its component and re-partitions the
// remainder. Must be called after the object's adjacency was cleared.
func (ci *componentIndex) removeMember(objectID int, neighbors func(int) []int) []int {
	comp, ok := ci.byMember[objectID]
	if !ok {
		return nil
	}
	delete(ci.byMember, objectID)
	delete(ci.members[comp], objectID)
	if len(ci.members[comp]) == 0 {
		delete(ci.members, comp)
		return []int{comp}
	}
	return ci.repartition(comp, neighbors)
}

// repartition walks the members of one component and reassigns IDs to
// any disconnected pieces. The piece holding the lowest object ID keeps
// the old component ID.
func (ci *componentIndex) repartition(comp int, neighbors func(int) []int) []int {
	remaining := make(map[int]struct{}, len(ci.members[comp]))
	for member := range ci.members[comp] {
		remaining[member] = struct{}{}
	}

	pieces := make([][]int, 0, 1)
	for len(remaining) > 0 {
		start := -1
		for member := range remaining {
			if start < 0 || member < start {
				start = member
			}
		}
		piece := []int{start}
		delete(remaining, start)
		queue := []int{start}
		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]
			for _, neighbor := range neighbors(current) {
				if _, ok := remaining[neighbor]; !ok {
					continue
				}
				delete(remaining, neighbor)
				piece = append(piece, neighbor)
				queue = append(queue, neighbor)
			}
		}
		pieces = append(pieces, piece)
	}

	if len(pieces) == 1 {
		return []int{comp}
	}

	// The piece with the lowest object ID keeps the old component ID.
	lowestPiece := 0
	lowestID := pieces[0][0]
	for idx, piece := range pieces {
		min := piece[0]
		for _, member := range piece {
			if member < min {
				min = member
			}
		}
		if min < lowestID {
			lowestID = min
			lowestPiece = idx
		}
	}

	affected := []int{comp}
	for idx, piece := range pieces {
		target := comp
		if idx != lowestPiece {
			target = ci.nextID
			ci.nextID++
			ci.members[target] = make(map[int]struct{}, len(piece))
			affected = append(affected, target)
		}
		for _, member := range piece {
			if target != comp {
				delete(ci.members[comp], member)
				ci.members[target][member] = struct{}{}
			}
			ci.byMember[member] = target
		}
	}
	return affected
}

// ComponentOf returns the stable ID of the component owning o
func (g *Graph) ComponentOf(o *Object) (int, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.components.componentOf(o.id)
}

// ComponentIDs returns the IDs of every live component, sorted
func (g *Graph) ComponentIDs() []int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]int, 0, len(g.components.members))
	for comp := range g.components.members {
		out = append(out, comp)
	}
	sort.Ints(out)
	return out
}

// ComponentObjects returns the objects of one component, sorted by ID
func (g *Graph) ComponentObjects(componentID int) []*Object {
	g.mu.RLock()
	defer g.mu.RUnlock()
	ids := make([]int, 0, len(g.components.members[componentID]))
	for member := range g.components.members[componentID] {
		ids = append(ids, member)
	}
	sort.Ints(ids)
	out := make([]*Object, 0, len(ids))
	for _, id := range ids {
		out = append(out, g.objects[id])
	}
	return out
}
