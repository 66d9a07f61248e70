// Package csvio reads scheduling instances from the courses/rooms CSV files
// and writes the allocation report back out.
package csvio

import (
	"fmt"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/samber/lo"

	"github.com/edusched/roomalloc/internal/model"
)

// disciplineRecord mirrors one row of the courses CSV.
type disciplineRecord struct {
	Course           string  `csv:"course"`
	Name             string  `csv:"name"`
	Day              string  `csv:"day"`
	Time             string  `csv:"time"`
	ClassSize        int     `csv:"class_size"`
	RequiresLab      int     `csv:"req"`
	PreferredFloor   int     `csv:"pref_floor"`
	FloorWeight      float64 `csv:"course_floor_pref"`
	SplitAuthorized  bool    `csv:"split_authorized"`
	MinSplitTeachers int     `csv:"min_split_teachers"`
	Professors       string  `csv:"assigned_professors"`
}

type roomRecord struct {
	Name      string `csv:"name"`
	Type      string `csv:"type"`
	Capacity  int    `csv:"capacity"`
	Floor     int    `csv:"floor"`
	IsBlocked bool   `csv:"is_blocked"`
}

// LoadDisciplines reads and parses the given csv file for course data. A
// non-positive pref_floor means no floor preference; assigned_professors is
// a comma-separated list.
func LoadDisciplines(path string) ([]model.Discipline, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open courses file: %w", err)
	}
	defer file.Close()

	records := []*disciplineRecord{}
	if err := gocsv.UnmarshalFile(file, &records); err != nil {
		return nil, fmt.Errorf("cannot parse courses file: %w", err)
	}

	disciplines := make([]model.Discipline, 0, len(records))
	for _, record := range records {
		slots, err := model.MeetingSlots(record.Day, record.Time)
		if err != nil {
			return nil, fmt.Errorf("course %v: %w", record.Course, err)
		}

		teachers := lo.FilterMap(strings.Split(record.Professors, ","), func(name string, _ int) (string, bool) {
			trimmed := strings.TrimSpace(name)
			return trimmed, trimmed != ""
		})

		floorWeight := record.FloorWeight
		if floorWeight <= 0 {
			floorWeight = 1
		}
		minSplitTeachers := record.MinSplitTeachers
		if minSplitTeachers < 1 {
			minSplitTeachers = 2
		}

		var preferred []int
		if record.PreferredFloor > 0 {
			preferred = []int{record.PreferredFloor}
		}

		disciplines = append(disciplines, model.Discipline{
			ID:               record.Course,
			Name:             record.Name,
			Day:              record.Day,
			Time:             record.Time,
			Enrollment:       record.ClassSize,
			RequiresLab:      record.RequiresLab == 1,
			PreferredFloors:  preferred,
			FloorWeight:      floorWeight,
			SplitAuthorized:  record.SplitAuthorized,
			MinSplitTeachers: minSplitTeachers,
			Teachers:         teachers,
			Slots:            slots,
		})
	}
	return disciplines, nil
}

// LoadRooms reads and parses the given csv file for room data. Room types
// follow the source data: "lab" for laboratories, "sala" for classrooms.
func LoadRooms(path string) ([]model.Room, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open rooms file: %w", err)
	}
	defer file.Close()

	records := []*roomRecord{}
	if err := gocsv.UnmarshalFile(file, &records); err != nil {
		return nil, fmt.Errorf("cannot parse rooms file: %w", err)
	}

	rooms := lo.Map(records, func(record *roomRecord, _ int) model.Room {
		return model.Room{
			ID:       record.Name,
			Lab:      strings.EqualFold(strings.TrimSpace(record.Type), "lab"),
			Capacity: record.Capacity,
			Floor:    record.Floor,
			Blocked:  record.IsBlocked,
		}
	})
	return rooms, nil
}
