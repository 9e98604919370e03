package seglap

// State is the lifecycle stage of a single tracker invocation.
type State uint8

const (
	// StateIdle means Process has not been called yet
	StateIdle State = iota
	// StateValidating means settings are being checked
	StateValidating
	// StateRejected means settings or input were invalid; the graph is untouched
	StateRejected
	// StateExtracting means segments are being derived from the graph
	StateExtracting
	// StateCostModeling means candidate event costs are being computed
	StateCostModeling
	// StateMatrixBuilding means the sparse cost matrix is being assembled
	StateMatrixBuilding
	// StateSolving means the assignment problem is being solved
	StateSolving
	// StateApplying means solved links are being written into the graph
	StateApplying
	// StateDone means the solve completed; results may be read repeatedly
	StateDone
	// StateFailed means a stage after validation failed
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateRejected:
		return "rejected"
	case StateExtracting:
		return "extracting"
	case StateCostModeling:
		return "cost-modeling"
	case StateMatrixBuilding:
		return "matrix-building"
	case StateSolving:
		return "solving"
	case StateApplying:
		return "applying"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
