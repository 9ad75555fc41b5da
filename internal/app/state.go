package app

// State represents the lifecycle state of a batch run.
type State int

const (
	StateIdle State = iota
	StateScanning
	StateRunning
	StateDone
	StateAborted
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateScanning:
		return "Scanning"
	case StateRunning:
		return "Running"
	case StateDone:
		return "Done"
	case StateAborted:
		return "Aborted"
	default:
		return "Unknown"
	}
}
