package framebench

import (
	"fmt"
)

type State int

const (
	StateIdle State = iota
	StateRunning
	StateCompleted
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateAborted:
		return "aborted"
	default:
		return fmt.Sprintf("unknown_state_%d", int(s))
	}
}

// IsFinal returns true if a run ended in this state.
func (s State) IsFinal() bool {
	return s == StateCompleted || s == StateAborted
}
