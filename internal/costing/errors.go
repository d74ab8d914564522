package costing

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidFSRTier is returned when an assignment carries an unknown FSR tier.
	ErrInvalidFSRTier = errors.New("invalid fsr tier")
	// ErrMissingSystem is returned when an assignment has no resolved system snapshot.
	ErrMissingSystem = errors.New("assignment has no system")
	// ErrMissingAssignment is returned for a nil assignment.
	ErrMissingAssignment = errors.New("assignment is nil")
	// ErrInvalidGranularity is returned for an unknown period granularity.
	ErrInvalidGranularity = errors.New("invalid granularity")
	// ErrInvalidUnit is returned for an unknown duration unit.
	ErrInvalidUnit = errors.New("invalid duration unit")
)

// ComputationError reports a failed cost computation to the caller.
type ComputationError struct {
	Op    string // operation, e.g. "system_cost"
	ID    string // id of the offending record, if any
	Field string
	Value string
	Err   error
}

func (e *ComputationError) Error() string {
	var b strings.Builder
	b.WriteString("costing: ")
	b.WriteString(e.Op)
	if e.ID != "" {
		fmt.Fprintf(&b, " [%s]", e.ID)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, ": %s=%q", e.Field, e.Value)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ComputationError) Unwrap() error { return e.Err }
