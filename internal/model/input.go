package model

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
)

// Discipline is one course section together with everything an allocation
// run needs to know about it. Slots may be supplied directly or derived from
// Day/Time through the weekly grid.
type Discipline struct {
	ID               string   `mapstructure:"id"`
	Name             string   `mapstructure:"name"`
	Day              string   `mapstructure:"day"`
	Time             string   `mapstructure:"time"`
	Enrollment       int      `mapstructure:"enrollment"`
	RequiresLab      bool     `mapstructure:"requiresLab"`
	PreferredFloors  []int    `mapstructure:"preferredFloors"`
	FloorWeight      float64  `mapstructure:"floorWeight"` // Per-discipline multiplier on the floor-preference penalty
	SplitAuthorized  bool     `mapstructure:"splitAuthorized"`
	MinSplitTeachers int      `mapstructure:"minSplitTeachers"`
	Teachers         []string `mapstructure:"teachers"`
	Slots            []int    `mapstructure:"slots"`
}

type Room struct {
	ID       string `mapstructure:"id"`
	Lab      bool   `mapstructure:"lab"`
	Capacity int    `mapstructure:"capacity"`
	Floor    int    `mapstructure:"floor"`
	Blocked  bool   `mapstructure:"blocked"`
}

// Weights are the five objective penalty weights.
type Weights struct {
	FloorPreference  float64 `mapstructure:"floorPreference"`  // Off-preferred-floor assignment
	LabViolation     float64 `mapstructure:"labViolation"`     // Lab-requiring unit outside a lab
	RegularViolation float64 `mapstructure:"regularViolation"` // Regular unit occupying a lab
	FloorDistance    float64 `mapstructure:"floorDistance"`    // Floors between room and nearest preferred floor
	CapacityExcess   float64 `mapstructure:"capacityExcess"`   // Enrollment beyond the occupancy ceiling
}

func DefaultWeights() Weights {
	return Weights{
		FloorPreference:  10,
		LabViolation:     20,
		RegularViolation: 5,
		FloorDistance:    2,
		CapacityExcess:   15,
	}
}

// Validate rejects non-positive weights. The floor-distance and capacity
// variables are enforced only by lower bounds, and it is the minimization
// pressure of a strictly positive weight that pins them to the tight value;
// a weight of zero would let them settle anywhere.
func (weights Weights) Validate() error {
	checks := []struct {
		name  string
		value float64
	}{
		{"floorPreference", weights.FloorPreference},
		{"labViolation", weights.LabViolation},
		{"regularViolation", weights.RegularViolation},
		{"floorDistance", weights.FloorDistance},
		{"capacityExcess", weights.CapacityExcess},
	}
	for _, check := range checks {
		if check.value <= 0 {
			return ConfigError{Field: check.name, Reason: "weight must be strictly positive"}
		}
	}
	return nil
}

// Instance is the full input of one allocation run. It is read-only to every
// component: each run is a pure function of its instance.
type Instance struct {
	Disciplines      []Discipline `mapstructure:"disciplines"`
	Rooms            []Room       `mapstructure:"rooms"`
	OccupancyCeiling float64      `mapstructure:"occupancyCeiling"` // Allowed fraction of a room's capacity before the excess penalty kicks in
	SplitThreshold   int          `mapstructure:"splitThreshold"`   // Minimum enrollment for a discipline to become split-eligible
	Weights          Weights      `mapstructure:"weights"`
}

func (instance Instance) Validate() error {
	if instance.OccupancyCeiling <= 0 {
		return ConfigError{Field: "occupancyCeiling", Reason: "must be greater than zero"}
	}
	if instance.SplitThreshold < 1 {
		return ConfigError{Field: "splitThreshold", Reason: "must be at least 1"}
	}
	return instance.Weights.Validate()
}

func InstanceFromJson(file string) (Instance, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return Instance{}, err
	}
	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return Instance{}, err
	}

	var instance Instance
	if err := mapstructure.Decode(inputJson, &instance); err != nil {
		return Instance{}, err
	}

	for i := range instance.Disciplines {
		discipline := &instance.Disciplines[i]
		if discipline.FloorWeight <= 0 {
			discipline.FloorWeight = 1
		}
		if len(discipline.Slots) > 0 {
			continue
		}
		slots, err := MeetingSlots(discipline.Day, discipline.Time)
		if err != nil {
			return Instance{}, fmt.Errorf("discipline %v: %v", discipline.ID, err)
		}
		discipline.Slots = slots
	}

	return instance, nil
}
