package model

import (
	"context"
	"fmt"

	"github.com/edusched/roomalloc/internal/milp"
)

// Allocator computes one room allocation per run. Inputs are never mutated
// and runs share no state, so concurrent runs need no coordination. The
// solve is the only long-running step; bound it through the context.
type Allocator interface {
	Allocate(ctx context.Context, instance Instance) (*Allocation, error)
}

func NewAllocator(solver milp.Solver) Allocator {
	return &milpAllocator{solver: solver, splitter: NewSplitter()}
}

type milpAllocator struct {
	solver   milp.Solver
	splitter Splitter
}

func (allocator *milpAllocator) Allocate(ctx context.Context, instance Instance) (*Allocation, error) {
	if err := instance.Validate(); err != nil {
		return nil, err
	}

	units := allocator.splitter.Expand(instance)

	builder := newModelBuilder(units, instance.Rooms, instance.OccupancyCeiling, instance.Weights)
	model, err := builder.Build()
	if err != nil {
		return nil, err
	}

	solution, err := allocator.solver.Solve(ctx, model)
	if err != nil {
		return nil, fmt.Errorf("solver failed: %w", err)
	}

	switch solution.Status {
	case milp.StatusInfeasible:
		if slot, found := unassignableSlot(units, instance.Rooms); found {
			return nil, fmt.Errorf("%w: slot %d cannot host all of its units", ErrInfeasible, slot)
		}
		return nil, ErrInfeasible
	case milp.StatusUnbounded:
		return nil, ErrUnbounded
	}

	extractor := &solutionExtractor{
		units:   units,
		rooms:   instance.Rooms,
		alpha:   instance.OccupancyCeiling,
		weights: instance.Weights,
	}
	return extractor.Extract(solution)
}
