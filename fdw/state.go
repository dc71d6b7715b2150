package fdw

// State is the lifecycle position of a wrapper's current scan.
type State int

const (
	// StateIdle means no scan is open.
	StateIdle State = iota
	// StateFetching means BeginScan is waiting on the remote request.
	StateFetching
	// StateReady means rows are buffered and none has been read yet.
	StateReady
	// StateDraining means at least one buffered row has been read.
	StateDraining
	// StateFailed means the last BeginScan returned an error.
	StateFailed
)

// String returns the lowercase state name used in logs.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetching:
		return "fetching"
	case StateReady:
		return "ready"
	case StateDraining:
		return "draining"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
