package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidConfiguration marks setup problems that must be rejected
	// before any search begins.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrInfeasibleAssignment is matched by InfeasibleAssignmentError.
	ErrInfeasibleAssignment = errors.New("infeasible assignment")
	// ErrEmptyNeighborhood indicates that no admissible move exists.
	ErrEmptyNeighborhood = errors.New("empty neighborhood")
)

// InfeasibleAssignmentError lists the customers that could not be placed in
// any vehicle. The accompanying solution is still usable.
type InfeasibleAssignmentError struct {
	IDs []int
}

func (e *InfeasibleAssignmentError) Error() string {
	ids := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		ids[i] = strconv.Itoa(id)
	}
	return fmt.Sprintf("%s: %d customer(s) unassigned [%s]", ErrInfeasibleAssignment, len(e.IDs), strings.Join(ids, ","))
}

func (e *InfeasibleAssignmentError) Is(target error) bool {
	return target == ErrInfeasibleAssignment
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, fmt.Sprintf(format, args...))
}
