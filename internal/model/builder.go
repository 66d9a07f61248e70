package model

import (
	"fmt"
	"slices"

	"github.com/edusched/roomalloc/internal/milp"
)

// Variable-name helpers shared by the builder and the extractor.
func assignVar(unit, room int) string { return fmt.Sprintf("x_%d_%d", unit, room) }
func distanceVar(unit int) string     { return fmt.Sprintf("y_%d", unit) }
func excessVar(unit, room int) string { return fmt.Sprintf("z_%d_%d", unit, room) }
func labViolationVar(unit int) string { return fmt.Sprintf("wlab_%d", unit) }
func regViolationVar(unit int) string { return fmt.Sprintf("wreg_%d", unit) }

type modelBuilder struct {
	units   []Unit
	rooms   []Room
	alpha   float64
	weights Weights
	bigM    float64
}

func newModelBuilder(units []Unit, rooms []Room, alpha float64, weights Weights) *modelBuilder {
	// The relaxation constant only has to dominate enrollment minus the
	// scaled capacity of any room, and capacities are non-negative, so the
	// largest enrollment is a safe instance-scaled choice.
	bigM := 1.0
	for _, unit := range units {
		if enrollment := float64(unit.Enrollment); enrollment > bigM {
			bigM = enrollment
		}
	}
	return &modelBuilder{units: units, rooms: rooms, alpha: alpha, weights: weights, bigM: bigM}
}

// Build translates the unit and room sets into the MILP. Infeasible units
// (e.g. a lab-only unit with every lab blocked) are not pre-filtered; the
// solver is the one to prove infeasibility.
func (builder *modelBuilder) Build() (milp.Model, error) {
	if err := builder.weights.Validate(); err != nil {
		return milp.Model{}, err
	}
	if builder.alpha <= 0 {
		return milp.Model{}, ConfigError{Field: "occupancyCeiling", Reason: "must be greater than zero"}
	}

	model := milp.Model{Name: "classroom_assignment"}
	model.Variables = builder.variables()

	model.Constraints = append(model.Constraints, builder.assignmentConstraints()...)
	model.Constraints = append(model.Constraints, builder.bookingConstraints()...)
	model.Constraints = append(model.Constraints, builder.infrastructureConstraints()...)
	model.Constraints = append(model.Constraints, builder.distanceConstraints()...)
	model.Constraints = append(model.Constraints, builder.capacityConstraints()...)
	model.Constraints = append(model.Constraints, builder.blockedRoomConstraints()...)

	model.Objective = builder.objective()
	return model, nil
}

func (builder *modelBuilder) variables() []milp.Variable {
	variables := make([]milp.Variable, 0, len(builder.units)*(2*len(builder.rooms)+3))
	for i := range builder.units {
		for j := range builder.rooms {
			variables = append(variables, milp.Variable{Name: assignVar(i, j), Kind: milp.Binary})
		}
	}
	for i := range builder.units {
		variables = append(variables, milp.Variable{Name: distanceVar(i), Kind: milp.Integer})
		variables = append(variables, milp.Variable{Name: labViolationVar(i), Kind: milp.Binary})
		variables = append(variables, milp.Variable{Name: regViolationVar(i), Kind: milp.Binary})
		for j := range builder.rooms {
			variables = append(variables, milp.Variable{Name: excessVar(i, j), Kind: milp.Integer})
		}
	}
	return variables
}

// Every unit lands in exactly one room.
func (builder *modelBuilder) assignmentConstraints() []milp.Constraint {
	constraints := make([]milp.Constraint, 0, len(builder.units))
	for i := range builder.units {
		terms := make([]milp.Term, 0, len(builder.rooms))
		for j := range builder.rooms {
			terms = append(terms, milp.Term{Coefficient: 1, Variable: assignVar(i, j)})
		}
		constraints = append(constraints, milp.Constraint{
			Name:  fmt.Sprintf("assign_%d", i),
			Terms: terms,
			Sense: milp.Equal,
			RHS:   1,
		})
	}
	return constraints
}

// A room hosts at most one unit per time slot.
func (builder *modelBuilder) bookingConstraints() []milp.Constraint {
	constraints := []milp.Constraint{}
	for j := range builder.rooms {
		for slot := 0; slot < SlotsPerWeek; slot++ {
			terms := []milp.Term{}
			for i, unit := range builder.units {
				if slices.Contains(unit.Slots, slot) {
					terms = append(terms, milp.Term{Coefficient: 1, Variable: assignVar(i, j)})
				}
			}
			if len(terms) < 2 { // A single binary term can never exceed 1
				continue
			}
			constraints = append(constraints, milp.Constraint{
				Name:  fmt.Sprintf("book_%d_%d", j, slot),
				Terms: terms,
				Sense: milp.LessEqual,
				RHS:   1,
			})
		}
	}
	return constraints
}

// The violation indicators are computed, not chosen: for a lab-requiring
// unit, wlab equals one minus its assignment mass over labs; for a regular
// unit, wreg equals its assignment mass over labs.
func (builder *modelBuilder) infrastructureConstraints() []milp.Constraint {
	labRooms := []int{}
	for j, room := range builder.rooms {
		if room.Lab {
			labRooms = append(labRooms, j)
		}
	}

	constraints := make([]milp.Constraint, 0, len(builder.units))
	for i, unit := range builder.units {
		if unit.RequiresLab {
			terms := []milp.Term{{Coefficient: 1, Variable: labViolationVar(i)}}
			for _, j := range labRooms {
				terms = append(terms, milp.Term{Coefficient: 1, Variable: assignVar(i, j)})
			}
			constraints = append(constraints, milp.Constraint{
				Name:  fmt.Sprintf("lab_%d", i),
				Terms: terms,
				Sense: milp.Equal,
				RHS:   1,
			})
			continue
		}

		terms := []milp.Term{{Coefficient: 1, Variable: regViolationVar(i)}}
		for _, j := range labRooms {
			terms = append(terms, milp.Term{Coefficient: -1, Variable: assignVar(i, j)})
		}
		constraints = append(constraints, milp.Constraint{
			Name:  fmt.Sprintf("reg_%d", i),
			Terms: terms,
			Sense: milp.Equal,
			RHS:   0,
		})
	}
	return constraints
}

// The distance variable is lower-bounded by the floor distance of every room
// the unit could land in, gated by the assignment indicator. With a positive
// weight the minimization pins it to the distance of the chosen room.
func (builder *modelBuilder) distanceConstraints() []milp.Constraint {
	constraints := []milp.Constraint{}
	for i, unit := range builder.units {
		for j, room := range builder.rooms {
			distance := floorDistance(unit, room)
			if distance == 0 {
				continue
			}
			constraints = append(constraints, milp.Constraint{
				Name: fmt.Sprintf("dist_%d_%d", i, j),
				Terms: []milp.Term{
					{Coefficient: 1, Variable: distanceVar(i)},
					{Coefficient: -float64(distance), Variable: assignVar(i, j)},
				},
				Sense: milp.GreaterEqual,
				RHS:   0,
			})
		}
	}
	return constraints
}

// z[i,j] >= enrollment - alpha*capacity - M*(1 - x[i,j]): when the unit is
// assigned to the room, z picks up the enrollment beyond the occupancy
// ceiling; otherwise the relaxation constant disables the bound. Over-ceiling
// assignments stay feasible and pay for the excess in the objective.
func (builder *modelBuilder) capacityConstraints() []milp.Constraint {
	constraints := []milp.Constraint{}
	for i, unit := range builder.units {
		for j, room := range builder.rooms {
			bound := float64(unit.Enrollment) - builder.alpha*float64(room.Capacity)
			if bound <= 0 {
				continue
			}
			constraints = append(constraints, milp.Constraint{
				Name: fmt.Sprintf("cap_%d_%d", i, j),
				Terms: []milp.Term{
					{Coefficient: 1, Variable: excessVar(i, j)},
					{Coefficient: -builder.bigM, Variable: assignVar(i, j)},
				},
				Sense: milp.GreaterEqual,
				RHS:   bound - builder.bigM,
			})
		}
	}
	return constraints
}

func (builder *modelBuilder) blockedRoomConstraints() []milp.Constraint {
	constraints := []milp.Constraint{}
	for j, room := range builder.rooms {
		if !room.Blocked {
			continue
		}
		terms := make([]milp.Term, 0, len(builder.units))
		for i := range builder.units {
			terms = append(terms, milp.Term{Coefficient: 1, Variable: assignVar(i, j)})
		}
		constraints = append(constraints, milp.Constraint{
			Name:  fmt.Sprintf("blocked_%d", j),
			Terms: terms,
			Sense: milp.Equal,
			RHS:   0,
		})
	}
	return constraints
}

func (builder *modelBuilder) objective() []milp.Term {
	terms := []milp.Term{}
	for i, unit := range builder.units {
		for j, room := range builder.rooms {
			if !floorMatches(unit, room) {
				terms = append(terms, milp.Term{
					Coefficient: builder.weights.FloorPreference * unit.FloorWeight,
					Variable:    assignVar(i, j),
				})
			}
		}
	}
	for i := range builder.units {
		terms = append(terms, milp.Term{Coefficient: builder.weights.LabViolation, Variable: labViolationVar(i)})
		terms = append(terms, milp.Term{Coefficient: builder.weights.RegularViolation, Variable: regViolationVar(i)})
		terms = append(terms, milp.Term{Coefficient: builder.weights.FloorDistance, Variable: distanceVar(i)})
		for j := range builder.rooms {
			terms = append(terms, milp.Term{Coefficient: builder.weights.CapacityExcess, Variable: excessVar(i, j)})
		}
	}
	return terms
}

// floorDistance is the gap between the room's floor and the unit's nearest
// preferred floor; zero when the unit has no preference.
func floorDistance(unit Unit, room Room) int {
	if len(unit.PreferredFloors) == 0 {
		return 0
	}
	best := -1
	for _, floor := range unit.PreferredFloors {
		distance := room.Floor - floor
		if distance < 0 {
			distance = -distance
		}
		if best < 0 || distance < best {
			best = distance
		}
	}
	return best
}

func floorMatches(unit Unit, room Room) bool {
	return floorDistance(unit, room) == 0
}
