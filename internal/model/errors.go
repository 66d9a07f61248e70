package model

import (
	"errors"
	"fmt"
)

// ErrInfeasible is returned when the solver proves that no assignment can
// satisfy every hard constraint. It is surfaced verbatim and never retried.
var ErrInfeasible = errors.New("no feasible room assignment exists")

// ErrUnbounded should never occur since every variable carries a finite
// lower bound and binaries an upper one; it indicates a broken model.
var ErrUnbounded = errors.New("allocation model is unbounded")

// ModelConsistencyError flags a solver or model-construction bug (e.g. an
// assignment indicator set that is not exactly one hot), never user error.
type ModelConsistencyError struct {
	Unit   string
	Reason string
}

func (err ModelConsistencyError) Error() string {
	return fmt.Sprintf("model consistency violated for unit %v: %v", err.Unit, err.Reason)
}

// ValidationError flags an extracted solution that failed the defensive
// re-check against recomputed penalties or hard constraints.
type ValidationError struct {
	Reason string
}

func (err ValidationError) Error() string {
	return fmt.Sprintf("solution validation failed: %v", err.Reason)
}

type ConfigError struct {
	Field  string
	Reason string
}

func (err ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %v %v", err.Field, err.Reason)
}
