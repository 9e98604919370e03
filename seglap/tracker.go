package seglap

import (
	"runtime"
	"time"

	"github.com/LdDl/seglap-go/trackgraph"
)

const baseErrorMessage = "segment tracker: "

// SegmentTracker links track segments into full tracks by gap closing,
// splitting and merging. A tracker instance runs one linking problem
// from scratch per Process call; results and errors may be read
// repeatedly afterwards.
type SegmentTracker struct {
	graph    *trackgraph.Graph
	settings Settings
	reporter Reporter

	numThreads int

	state           State
	errorMessage    string
	warnings        []string
	assignmentCosts map[*trackgraph.Object]float64
	processingTime  time.Duration
}

// NewSegmentTracker creates a tracker over the given graph and settings.
// The worker count defaults to the available hardware parallelism.
func NewSegmentTracker(graph *trackgraph.Graph, settings Settings) *SegmentTracker {
	return &SegmentTracker{
		graph:      graph,
		settings:   settings,
		reporter:   VoidReporter{},
		numThreads: runtime.NumCPU(),
		state:      StateIdle,
	}
}

// SetReporter routes progress and status updates to r
func (t *SegmentTracker) SetReporter(r Reporter) {
	if r == nil {
		r = VoidReporter{}
	}
	t.reporter = r
}

// SetNumThreads bounds the worker count for matrix construction
func (t *SegmentTracker) SetNumThreads(n int) {
	if n < 1 {
		n = 1
	}
	t.numThreads = n
}

// NumThreads returns the configured worker count
func (t *SegmentTracker) NumThreads() int {
	return t.numThreads
}

// State returns the lifecycle stage of the current invocation
func (t *SegmentTracker) State() State {
	return t.state
}

// Result returns the shared graph, mutated with the solved links after
// a successful Process call.
func (t *SegmentTracker) Result() *trackgraph.Graph {
	return t.graph
}

// ErrorMessage returns the reason of the last failed Process call
func (t *SegmentTracker) ErrorMessage() string {
	return t.errorMessage
}

// Warnings returns non-fatal anomalies observed during the last solve,
// e.g. branching in a graph expected to be branch-free.
func (t *SegmentTracker) Warnings() []string {
	return t.warnings
}

// AssignmentCosts maps each linked source object to the realized cost
// of its link.
func (t *SegmentTracker) AssignmentCosts() map[*trackgraph.Object]float64 {
	return t.assignmentCosts
}

// ProcessingTime returns the wall-clock duration of the last solve
func (t *SegmentTracker) ProcessingTime() time.Duration {
	return t.processingTime
}

// Process validates the input, solves the segment linking problem and
// writes the resulting links into the graph. It returns false on
// failure; the reason is available via ErrorMessage. On invalid input
// the graph is guaranteed untouched.
func (t *SegmentTracker) Process() bool {
	t.state = StateValidating
	if t.graph == nil {
		return t.reject("the input graph is nil")
	}
	if err := validateSettings(t.settings); err != nil {
		return t.reject(err.Error())
	}

	start := time.Now()

	t.state = StateExtracting
	t.reporter.Progress(0)
	t.reporter.Status("Extracting track segments")
	segments, warnings := extractSegments(t.graph)
	t.warnings = warnings

	t.state = StateCostModeling
	t.reporter.Status("Building the segment linking cost matrix")
	cfg := newMatrixConfig(t.settings)
	t.state = StateMatrixBuilding
	candidates := buildCandidates(segments, cfg, t.numThreads, NewScaledReporter(t.reporter, 0, 0.9))

	t.state = StateSolving
	result, err := linkSegments(candidates, cfg)
	if err != nil {
		return t.fail(err.Error())
	}

	t.state = StateApplying
	t.reporter.Progress(0.9)
	t.reporter.Status("Creating links")
	t.assignmentCosts = make(map[*trackgraph.Object]float64, len(result.links))
	t.graph.BeginUpdate()
	for _, link := range result.links {
		if _, err := t.graph.AddLink(link.source, link.target, link.cost); err != nil {
			t.graph.EndUpdate()
			return t.fail("adding link: " + err.Error())
		}
		t.assignmentCosts[link.source] = link.cost
	}
	t.graph.EndUpdate()

	t.reporter.Progress(1)
	t.reporter.Status("")
	t.processingTime = time.Since(start)
	t.state = StateDone
	return true
}

func (t *SegmentTracker) reject(reason string) bool {
	t.state = StateRejected
	t.errorMessage = baseErrorMessage + reason
	return false
}

func (t *SegmentTracker) fail(reason string) bool {
	t.state = StateFailed
	t.errorMessage = baseErrorMessage + reason
	return false
}
