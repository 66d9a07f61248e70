package milp

import "context"

type Status int

const (
	// StatusOptimal means the solver proved optimality of the returned values.
	StatusOptimal Status = iota
	// StatusFeasible means the solver stopped early (e.g. on its time limit)
	// holding an incumbent that satisfies every constraint but is not proven
	// optimal.
	StatusFeasible
	StatusInfeasible
	StatusUnbounded
)

// Solution carries the solver's verdict. Values holds every variable the
// solver reported; variables it omitted solve to zero.
type Solution struct {
	Status    Status
	Objective float64
	Values    map[string]float64
}

func (s *Solution) Value(name string) float64 {
	return s.Values[name]
}

type Solver interface {
	// Solve runs the model through an external MILP engine and propagates its
	// status verbatim. A context deadline, when present, is forwarded as the
	// engine's time limit.
	Solve(ctx context.Context, model Model) (*Solution, error)
}
