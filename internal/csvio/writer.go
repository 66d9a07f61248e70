package csvio

import (
	"fmt"
	"math"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/samber/lo"

	"github.com/edusched/roomalloc/internal/model"
)

// allocationRecord is one row of the allocation report.
type allocationRecord struct {
	Course     string  `csv:"course"`
	Discipline string  `csv:"discipline"`
	Section    string  `csv:"section"`
	ClassSize  int     `csv:"class_size"`
	Room       string  `csv:"room"`
	RoomType   string  `csv:"room_type"`
	Floor      int     `csv:"floor"`
	Capacity   int     `csv:"capacity"`
	Occupancy  float64 `csv:"occupancy_pct"`
	Mismatch   bool    `csv:"mismatch"`
}

// WriteAllocation writes the solved allocation as a CSV report, one row per
// schedulable unit (split sub-sections get their own rows).
func WriteAllocation(path string, allocation *model.Allocation) error {
	records := lo.Map(allocation.Assignments, func(assignment model.Assignment, _ int) *allocationRecord {
		unit, room := assignment.Unit, assignment.Room

		occupancy := 0.0
		if room.Capacity > 0 {
			occupancy = math.Round(float64(unit.Enrollment)/float64(room.Capacity)*1000) / 10
		}
		roomType := "sala"
		if room.Lab {
			roomType = "lab"
		}

		return &allocationRecord{
			Course:     unit.Label(),
			Discipline: unit.Name,
			Section:    unit.Section,
			ClassSize:  unit.Enrollment,
			Room:       room.ID,
			RoomType:   roomType,
			Floor:      room.Floor,
			Capacity:   room.Capacity,
			Occupancy:  occupancy,
			Mismatch:   unit.RequiresLab != room.Lab,
		}
	})

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create output file: %w", err)
	}
	defer file.Close()

	return gocsv.MarshalFile(&records, file)
}
