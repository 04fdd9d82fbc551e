package search

import "github.com/kilianp07/vrptw/core/model"

// State is the lifecycle of a Driver.
type State int32

const (
	StateInitial State = iota
	StateIterating
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateInitial:
		return "INITIAL"
	case StateIterating:
		return "ITERATING"
	case StateTerminated:
		return "TERMINATED"
	default:
		return "UNKNOWN"
	}
}

// Reason explains why a search stopped.
type Reason string

const (
	ReasonBudget            Reason = "budget"
	ReasonEmptyNeighborhood Reason = "empty_neighborhood"
	ReasonDeadline          Reason = "deadline"
	ReasonCancelled         Reason = "cancelled"
)

// Err maps the reason onto its sentinel error, or nil for a normal stop.
func (r Reason) Err() error {
	if r == ReasonEmptyNeighborhood {
		return model.ErrEmptyNeighborhood
	}
	return nil
}
