package trackgraph

import (
	"sort"

	"github.com/google/uuid"
)

// ChangeEvent describes one completed edit batch. The ComponentIDs set
// is the sole scope a reactive consumer needs to re-validate; everything
// outside it is guaranteed untouched by the batch.
type ChangeEvent struct {
	// EventID uniquely identifies the batch that produced this event
	EventID uuid.UUID
	// ComponentIDs lists the affected components, sorted
	ComponentIDs []int

	ObjectsAdded   int
	ObjectsRemoved int
	ObjectsMoved   int
	LinksAdded     int
	LinksRemoved   int
}

// Listener receives change events after each batched edit
type Listener func(ChangeEvent)

// Listen registers a listener for future change events
func (g *Graph) Listen(listener Listener) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.listeners = append(g.listeners, listener)
}

func newChangeEvent(batch batchState) ChangeEvent {
	// IDs merged away or emptied during the batch stay in the set so
	// consumers can drop any state keyed on them.
	ids := make([]int, 0, len(batch.affected))
	for comp := range batch.affected {
		ids = append(ids, comp)
	}
	sort.Ints(ids)
	return ChangeEvent{
		EventID:        uuid.New(),
		ComponentIDs:   ids,
		ObjectsAdded:   batch.objectsAdded,
		ObjectsRemoved: batch.objectsRemoved,
		ObjectsMoved:   batch.objectsMoved,
		LinksAdded:     batch.linksAdded,
		LinksRemoved:   batch.linksRemoved,
	}
}
