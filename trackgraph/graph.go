// Package trackgraph provides the mutable track container shared between
// tracking stages: an undirected weighted graph of detected objects, a
// connected-component index keyed by stable integer identifiers, and
// change events published to registered listeners after each batched edit.
package trackgraph

import (
	"errors"
	"sort"
	"sync"
)

// Sentinel errors for graph mutations.
var (
	// ErrNilObject indicates a nil object was passed to a mutation.
	ErrNilObject = errors.New("trackgraph: object is nil")

	// ErrObjectNotFound indicates the referenced object is not in the graph.
	ErrObjectNotFound = errors.New("trackgraph: object not found")

	// ErrLinkNotFound indicates the referenced link is not in the graph.
	ErrLinkNotFound = errors.New("trackgraph: link not found")

	// ErrDuplicateLink indicates a link between the two objects already exists.
	ErrDuplicateLink = errors.New("trackgraph: link already exists")

	// ErrSelfLoop indicates a link from an object to itself was attempted.
	ErrSelfLoop = errors.New("trackgraph: self-loop not allowed")

	// ErrNoBatch indicates a mutation was attempted outside BeginUpdate/EndUpdate.
	ErrNoBatch = errors.New("trackgraph: mutation outside an update batch")
)

// Link is an undirected weighted connection between two objects.
// The weight is the cost that produced the link.
type Link struct {
	a, b   *Object
	weight float64
}

// Endpoints returns both objects of the link, lowest ID first.
func (l *Link) Endpoints() (*Object, *Object) {
	if l.a.id <= l.b.id {
		return l.a, l.b
	}
	return l.b, l.a
}

// Weight returns the link weight
func (l *Link) Weight() float64 {
	return l.weight
}

// Graph is an undirected weighted graph of Objects and Links.
// All mutations must happen between BeginUpdate and EndUpdate; EndUpdate
// publishes a single ChangeEvent covering the whole batch. Queries are
// allowed at any time. All methods are safe for concurrent use.
type Graph struct {
	mu        sync.RWMutex
	objects   map[int]*Object
	adjacency map[int]map[int]*Link

	components *componentIndex
	listeners  []Listener

	inBatch bool
	batch   batchState
}

// batchState accumulates edits until EndUpdate fires the change event.
type batchState struct {
	affected       map[int]struct{}
	objectsAdded   int
	objectsRemoved int
	linksAdded     int
	linksRemoved   int
	objectsMoved   int
}

// NewGraph creates an empty track graph
func NewGraph() *Graph {
	return &Graph{
		objects:    make(map[int]*Object),
		adjacency:  make(map[int]map[int]*Link),
		components: newComponentIndex(),
	}
}

// BeginUpdate opens an edit batch. Batches do not nest.
func (g *Graph) BeginUpdate() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.inBatch = true
	g.batch = batchState{affected: make(map[int]struct{})}
}

// EndUpdate closes the current edit batch and publishes one ChangeEvent
// carrying the set of affected component identifiers to every listener.
func (g *Graph) EndUpdate() {
	g.mu.Lock()
	if !g.inBatch {
		g.mu.Unlock()
		return
	}
	g.inBatch = false
	event := newChangeEvent(g.batch)
	listeners := make([]Listener, len(g.listeners))
	copy(listeners, g.listeners)
	g.mu.Unlock()

	for _, listener := range listeners {
		listener(event)
	}
}

// AddObject inserts the object as a new one-node component
func (g *Graph) AddObject(o *Object) error {
	if o == nil {
		return ErrNilObject
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.inBatch {
		return ErrNoBatch
	}
	if _, ok := g.objects[o.id]; ok {
		return nil
	}
	g.objects[o.id] = o
	g.adjacency[o.id] = make(map[int]*Link)
	comp := g.components.add(o.id)
	g.batch.affected[comp] = struct{}{}
	g.batch.objectsAdded++
	return nil
}

// RemoveObject removes the object and every link attached to it
func (g *Graph) RemoveObject(o *Object) error {
	if o == nil {
		return ErrNilObject
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.inBatch {
		return ErrNoBatch
	}
	if _, ok := g.objects[o.id]; !ok {
		return ErrObjectNotFound
	}
	for neighborID := range g.adjacency[o.id] {
		delete(g.adjacency[neighborID], o.id)
		g.batch.linksRemoved++
	}
	delete(g.adjacency, o.id)
	delete(g.objects, o.id)
	for _, comp := range g.components.removeMember(o.id, g.neighborsLocked) {
		g.batch.affected[comp] = struct{}{}
	}
	g.batch.objectsRemoved++
	return nil
}

// AddLink connects two objects with the given weight and returns the link
func (g *Graph) AddLink(a, b *Object, weight float64) (*Link, error) {
	if a == nil || b == nil {
		return nil, ErrNilObject
	}
	if a.id == b.id {
		return nil, ErrSelfLoop
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.inBatch {
		return nil, ErrNoBatch
	}
	if _, ok := g.objects[a.id]; !ok {
		return nil, ErrObjectNotFound
	}
	if _, ok := g.objects[b.id]; !ok {
		return nil, ErrObjectNotFound
	}
	if _, ok := g.adjacency[a.id][b.id]; ok {
		return nil, ErrDuplicateLink
	}
	link := &Link{a: a, b: b, weight: weight}
	g.adjacency[a.id][b.id] = link
	g.adjacency[b.id][a.id] = link
	comp := g.components.union(a.id, b.id)
	g.batch.affected[comp] = struct{}{}
	g.batch.linksAdded++
	return link, nil
}

// RemoveLink removes the link between two objects
func (g *Graph) RemoveLink(a, b *Object) error {
	if a == nil || b == nil {
		return ErrNilObject
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.inBatch {
		return ErrNoBatch
	}
	if _, ok := g.adjacency[a.id][b.id]; !ok {
		return ErrLinkNotFound
	}
	delete(g.adjacency[a.id], b.id)
	delete(g.adjacency[b.id], a.id)
	for _, comp := range g.components.maybeSplit(a.id, b.id, g.neighborsLocked) {
		g.batch.affected[comp] = struct{}{}
	}
	g.batch.linksRemoved++
	return nil
}

// SetLinkWeight updates the weight of an existing link
func (g *Graph) SetLinkWeight(a, b *Object, weight float64) error {
	if a == nil || b == nil {
		return ErrNilObject
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.inBatch {
		return ErrNoBatch
	}
	link, ok := g.adjacency[a.id][b.id]
	if !ok {
		return ErrLinkNotFound
	}
	link.weight = weight
	comp, _ := g.components.componentOf(a.id)
	g.batch.affected[comp] = struct{}{}
	return nil
}

// MoveObject reassigns the object to another frame. Topology is
// unchanged but the owning component is reported as affected.
func (g *Graph) MoveObject(o *Object, frame int) error {
	if o == nil {
		return ErrNilObject
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.inBatch {
		return ErrNoBatch
	}
	if _, ok := g.objects[o.id]; !ok {
		return ErrObjectNotFound
	}
	o.Frame = frame
	comp, _ := g.components.componentOf(o.id)
	g.batch.affected[comp] = struct{}{}
	g.batch.objectsMoved++
	return nil
}

// Contains reports whether the object is part of the graph
func (g *Graph) Contains(o *Object) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.objects[o.id]
	return ok
}

// Objects returns every object in the graph, sorted by ID
func (g *Graph) Objects() []*Object {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]*Object, 0, len(g.objects))
	for _, o := range g.objects {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// Links returns every link in the graph, sorted by endpoint IDs
func (g *Graph) Links() []*Link {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]*Link, 0)
	for id, neighbors := range g.adjacency {
		for neighborID, link := range neighbors {
			if id < neighborID {
				out = append(out, link)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		ai, aj := out[i].Endpoints()
		bi, bj := out[j].Endpoints()
		if ai.id != bi.id {
			return ai.id < bi.id
		}
		return aj.id < bj.id
	})
	return out
}

// LinkBetween returns the link connecting two objects, if any
func (g *Graph) LinkBetween(a, b *Object) (*Link, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	link, ok := g.adjacency[a.id][b.id]
	return link, ok
}

// Neighbors returns the objects directly linked to o, sorted by ID
func (g *Graph) Neighbors(o *Object) []*Object {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.neighborObjectsLocked(o.id)
}

// Degree returns the number of links attached to o
func (g *Graph) Degree(o *Object) int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.adjacency[o.id])
}

// NumObjects returns the number of objects in the graph
func (g *Graph) NumObjects() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.objects)
}

// NumLinks returns the number of links in the graph
func (g *Graph) NumLinks() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n := 0
	for _, neighbors := range g.adjacency {
		n += len(neighbors)
	}
	return n / 2
}

func (g *Graph) neighborsLocked(id int) []int {
	out := make([]int, 0, len(g.adjacency[id]))
	for neighborID := range g.adjacency[id] {
		out = append(out, neighborID)
	}
	sort.Ints(out)
	return out
}

func (g *Graph) neighborObjectsLocked(id int) []*Object {
	ids := g.neighborsLocked(id)
	out := make([]*Object, 0, len(ids))
	for _, neighborID := range ids {
		out = append(out, g.objects[neighborID])
	}
	return out
}
