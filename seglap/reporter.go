package seglap

// Reporter receives best-effort progress and status updates during a
// solve. Progress fractions are in [0,1]. Implementations must not be
// relied on for correctness and may drop updates.
type Reporter interface {
	Progress(fraction float64)
	Status(message string)
}

// VoidReporter discards every update
type VoidReporter struct{}

// Progress discards the fraction
func (VoidReporter) Progress(float64) {}

// Status discards the message
func (VoidReporter) Status(string) {}

// scaledReporter forwards updates into a sub-range of a parent reporter,
// so a stage covering e.g. 0-90% of the work can report 0-1 locally.
type scaledReporter struct {
	parent Reporter
	offset float64
	scale  float64
}

// NewScaledReporter wraps parent so that local fraction f is reported
// as offset + scale*f. Status messages pass through unchanged.
func NewScaledReporter(parent Reporter, offset, scale float64) Reporter {
	return &scaledReporter{parent: parent, offset: offset, scale: scale}
}

func (r *scaledReporter) Progress(fraction float64) {
	if fraction < 0 {
		fraction = 0
	} else if fraction > 1 {
		fraction = 1
	}
	r.parent.Progress(r.offset + r.scale*fraction)
}

func (r *scaledReporter) Status(message string) {
	r.parent.Status(message)
}
