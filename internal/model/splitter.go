package model

import (
	"fmt"

	"github.com/samber/lo"
)

// Unit is a schedulable entity: an unsplit discipline or one of the two
// sub-sections of a split one. The model downstream is uniform over units
// and never needs to know which kind it is looking at.
type Unit struct {
	DisciplineID    string
	Name            string
	Section         string // "A" or "B" for sub-sections, empty otherwise
	Enrollment      int
	RequiresLab     bool
	PreferredFloors []int
	FloorWeight     float64
	Teacher         string // Distinct teacher backing a sub-section, empty when not split
	Slots           []int
}

// Label identifies the unit in outputs and error messages, e.g. "MAT101-A".
func (unit Unit) Label() string {
	if unit.Section == "" {
		return unit.DisciplineID
	}
	return fmt.Sprintf("%v-%v", unit.DisciplineID, unit.Section)
}

type SplitDecision struct {
	Split bool
	SizeA int
	SizeB int
}

// Splitter decides which disciplines are split into two balanced
// sub-sections and emits the flat unit list the model is built over. It
// never fails: an ineligible discipline simply stays a single unit.
type Splitter interface {
	Decide(discipline Discipline, threshold int) SplitDecision
	Expand(instance Instance) []Unit
}

func NewSplitter() Splitter {
	return &splitterImplementation{}
}

type splitterImplementation struct{}

// Decide authorizes a split only when the discipline's flag is set, it has
// at least its minimum count of distinct teachers, and its enrollment
// reaches the threshold. Eligibility uses integer division so that an
// enrollment of exactly threshold splits and threshold-1 does not.
func (splitter *splitterImplementation) Decide(discipline Discipline, threshold int) SplitDecision {
	minTeachers := discipline.MinSplitTeachers
	if minTeachers < 1 {
		minTeachers = 1
	}
	if threshold < 1 {
		threshold = 1
	}
	teachers := lo.Uniq(discipline.Teachers)

	eligible := discipline.SplitAuthorized &&
		len(teachers)/minTeachers >= 1 &&
		discipline.Enrollment/threshold >= 1
	if !eligible {
		return SplitDecision{}
	}

	half := discipline.Enrollment / 2
	return SplitDecision{Split: true, SizeA: half, SizeB: discipline.Enrollment - half}
}

func (splitter *splitterImplementation) Expand(instance Instance) []Unit {
	units := make([]Unit, 0, len(instance.Disciplines))
	for _, discipline := range instance.Disciplines {
		decision := splitter.Decide(discipline, instance.SplitThreshold)
		if !decision.Split {
			units = append(units, makeUnit(discipline, "", discipline.Enrollment, ""))
			continue
		}

		teachers := lo.Uniq(discipline.Teachers)
		teacherB := teachers[0]
		if len(teachers) > 1 {
			teacherB = teachers[1]
		}
		units = append(units,
			makeUnit(discipline, "A", decision.SizeA, teachers[0]),
			makeUnit(discipline, "B", decision.SizeB, teacherB),
		)
	}
	return units
}

func makeUnit(discipline Discipline, section string, enrollment int, teacher string) Unit {
	name := discipline.Name
	if section != "" {
		name = fmt.Sprintf("%v (Turma %v)", discipline.Name, section)
	}
	floorWeight := discipline.FloorWeight
	if floorWeight <= 0 {
		floorWeight = 1
	}
	return Unit{
		DisciplineID:    discipline.ID,
		Name:            name,
		Section:         section,
		Enrollment:      enrollment,
		RequiresLab:     discipline.RequiresLab,
		PreferredFloors: discipline.PreferredFloors,
		FloorWeight:     floorWeight,
		Teacher:         teacher,
		Slots:           discipline.Slots,
	}
}
