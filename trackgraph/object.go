package trackgraph

import (
	"math"
	"sync/atomic"
)

var objectIDCounter int64

// Object is a single detected entity: a position in space, an estimated
// radius, a frame index and a set of named numeric features.
// Identity is the pointer plus the ID assigned at construction time;
// two objects are never considered equal by value.
type Object struct {
	id       int
	X        float64
	Y        float64
	Z        float64
	Radius   float64
	Frame    int
	Features map[string]float64
}

// NewObject creates an Object at the given position and frame.
// IDs are assigned from a process-wide monotonic counter, so objects
// created later always carry larger IDs.
func NewObject(x, y, z, radius float64, frame int) *Object {
	return &Object{
		id:       int(atomic.AddInt64(&objectIDCounter, 1)),
		X:        x,
		Y:        y,
		Z:        z,
		Radius:   radius,
		Frame:    frame,
		Features: make(map[string]float64),
	}
}

// ID returns the object's identifier
func (o *Object) ID() int {
	return o.id
}

// FeatureValue returns the named feature value and whether it is set
func (o *Object) FeatureValue(name string) (float64, bool) {
	v, ok := o.Features[name]
	return v, ok
}

// SetFeature stores a named feature value on the object
func (o *Object) SetFeature(name string, value float64) {
	o.Features[name] = value
}

// SquaredDistanceTo returns the squared Euclidean distance between the
// positions of two objects.
func (o *Object) SquaredDistanceTo(other *Object) float64 {
	dx := o.X - other.X
	dy := o.Y - other.Y
	dz := o.Z - other.Z
	return dx*dx + dy*dy + dz*dz
}

// NormalizedDiffTo returns |a-b| / ((a+b)/2) for the named feature,
// or 0 when the feature is missing on either object or the mean is zero.
func (o *Object) NormalizedDiffTo(other *Object, feature string) float64 {
	a, okA := o.Features[feature]
	b, okB := other.Features[feature]
	if !okA || !okB {
		return 0
	}
	mean := (a + b) / 2.0
	if mean == 0 {
		return 0
	}
	return math.Abs(a-b) / math.Abs(mean)
}
