package command

// State is a command's lifecycle state.
type State uint8

const (
	StateIdle State = iota
	StateRunning
	StateCommitting
	StateCommitted
	StateCancelled
	StateFailed
)

var stateNames = [...]string{
	StateIdle:       "idle",
	StateRunning:    "running",
	StateCommitting: "committing",
	StateCommitted:  "committed",
	StateCancelled:  "cancelled",
	StateFailed:     "failed",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Terminal reports whether s ends a run.
func (s State) Terminal() bool {
	return s == StateCommitted || s == StateCancelled || s == StateFailed
}
