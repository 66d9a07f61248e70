package model

import (
	"fmt"
	"math"
	"slices"

	"github.com/edusched/roomalloc/internal/milp"
)

// Assignment binds one schedulable unit to the room the solver chose for it.
type Assignment struct {
	Unit Unit
	Room Room
}

// PenaltyBreakdown carries the five weighted penalty sub-totals, recomputed
// from the extracted assignment rather than read off the solver's auxiliary
// variables.
type PenaltyBreakdown struct {
	FloorPreference  float64
	LabViolation     float64
	RegularViolation float64
	FloorDistance    float64
	CapacityExcess   float64
}

func (penalties PenaltyBreakdown) Total() float64 {
	return penalties.FloorPreference +
		penalties.LabViolation +
		penalties.RegularViolation +
		penalties.FloorDistance +
		penalties.CapacityExcess
}

// Allocation is the outcome of one run: a room per unit, the penalty
// breakdown, the overall weighted score and whether optimality was proven.
type Allocation struct {
	Assignments []Assignment
	Penalties   PenaltyBreakdown
	Score       float64
	Optimal     bool
}

// ByDiscipline groups assignments under the original discipline id, so a
// split discipline shows up with its two sub-sections side by side.
func (allocation Allocation) ByDiscipline() map[string][]Assignment {
	grouped := make(map[string][]Assignment)
	for _, assignment := range allocation.Assignments {
		grouped[assignment.Unit.DisciplineID] = append(grouped[assignment.Unit.DisciplineID], assignment)
	}
	return grouped
}

const objectiveTolerance = 1e-6

type solutionExtractor struct {
	units   []Unit
	rooms   []Room
	alpha   float64
	weights Weights
}

// Extract decodes the solver's variable values into an allocation and
// re-checks it defensively: indicators must be exactly one hot per unit,
// hard constraints must hold, and the recomputed score must agree with the
// solver-reported objective.
func (extractor *solutionExtractor) Extract(solution *milp.Solution) (*Allocation, error) {
	assignments := make([]Assignment, 0, len(extractor.units))
	for i, unit := range extractor.units {
		chosen := -1
		for j := range extractor.rooms {
			if solution.Value(assignVar(i, j)) > 0.5 {
				if chosen >= 0 {
					return nil, ModelConsistencyError{Unit: unit.Label(), Reason: "more than one assignment indicator is set"}
				}
				chosen = j
			}
		}
		if chosen < 0 {
			return nil, ModelConsistencyError{Unit: unit.Label(), Reason: "no assignment indicator is set"}
		}
		assignments = append(assignments, Assignment{Unit: unit, Room: extractor.rooms[chosen]})
	}

	if err := checkHardConstraints(assignments); err != nil {
		return nil, err
	}

	penalties := extractor.recomputePenalties(assignments)
	score := penalties.Total()
	if math.Abs(score-solution.Objective) > objectiveTolerance*math.Max(1, math.Abs(solution.Objective)) {
		return nil, ValidationError{Reason: fmt.Sprintf("recomputed score %v differs from solver objective %v", score, solution.Objective)}
	}

	return &Allocation{
		Assignments: assignments,
		Penalties:   penalties,
		Score:       score,
		Optimal:     solution.Status == milp.StatusOptimal,
	}, nil
}

func checkHardConstraints(assignments []Assignment) error {
	type booking struct {
		room string
		slot int
	}
	occupied := make(map[booking]string)

	for _, assignment := range assignments {
		if assignment.Room.Blocked {
			return ValidationError{Reason: fmt.Sprintf("unit %v is assigned to blocked room %v", assignment.Unit.Label(), assignment.Room.ID)}
		}
		for _, slot := range assignment.Unit.Slots {
			key := booking{room: assignment.Room.ID, slot: slot}
			if other, taken := occupied[key]; taken {
				return ValidationError{Reason: fmt.Sprintf("room %v hosts both %v and %v in slot %d", assignment.Room.ID, other, assignment.Unit.Label(), slot)}
			}
			occupied[key] = assignment.Unit.Label()
		}
	}
	return nil
}

func (extractor *solutionExtractor) recomputePenalties(assignments []Assignment) PenaltyBreakdown {
	penalties := PenaltyBreakdown{}
	for _, assignment := range assignments {
		unit, room := assignment.Unit, assignment.Room

		if !floorMatches(unit, room) {
			penalties.FloorPreference += extractor.weights.FloorPreference * unit.FloorWeight
		}
		if unit.RequiresLab && !room.Lab {
			penalties.LabViolation += extractor.weights.LabViolation
		}
		if !unit.RequiresLab && room.Lab {
			penalties.RegularViolation += extractor.weights.RegularViolation
		}
		penalties.FloorDistance += extractor.weights.FloorDistance * float64(floorDistance(unit, room))
		penalties.CapacityExcess += extractor.weights.CapacityExcess * capacityExcess(unit, room, extractor.alpha)
	}
	return penalties
}

// capacityExcess is the enrollment beyond the room's scaled capacity. The
// model's violation variable is integral, so a fractional ceiling rounds the
// realized excess up.
func capacityExcess(unit Unit, room Room, alpha float64) float64 {
	excess := float64(unit.Enrollment) - alpha*float64(room.Capacity)
	if excess <= 0 {
		return 0
	}
	return math.Ceil(excess - 1e-9)
}

// occupiesSlot is used by the diagnostics pass.
func occupiesSlot(unit Unit, slot int) bool {
	return slices.Contains(unit.Slots, slot)
}
