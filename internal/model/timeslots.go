package model

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

const (
	SlotsPerDay  = 8
	SlotsPerWeek = 48
)

// The weekly grid covers the evening schedule, Monday through Saturday.
var dayBaseIndex = map[string]int{
	"Segunda": 0,
	"Terça":   8,
	"Quarta":  16,
	"Quinta":  24,
	"Sexta":   32,
	"Sábado":  40,
}

var timeIndex = map[string]int{
	"17h20": 0,
	"18h10": 1,
	"19h00": 2,
	"19h50": 3,
	"20h50": 4,
	"21h40": 5,
	"22h30": 6,
}

// The full evening block spans four slots; every other range spans two.
const fullEveningRange = "19h00-22h30"

// MeetingSlots translates a day and a time range (e.g. "Segunda",
// "19h00-20h50") into the occupied indexes of the weekly grid.
func MeetingSlots(day, timeRange string) ([]int, error) {
	base, ok := dayBaseIndex[day]
	if !ok {
		return nil, fmt.Errorf("unknown day: %v", day)
	}

	start, end, found := strings.Cut(timeRange, "-")
	if !found {
		return nil, fmt.Errorf("invalid time range: %v", timeRange)
	}
	startIndex, ok := timeIndex[start]
	if !ok {
		return nil, fmt.Errorf("unknown start time: %v", start)
	}
	if _, ok := timeIndex[end]; !ok {
		return nil, fmt.Errorf("unknown end time: %v", end)
	}

	length := 2
	if timeRange == fullEveningRange {
		length = 4
	}

	slots := make([]int, 0, length)
	for i := startIndex; i < startIndex+length && base+i < SlotsPerWeek; i++ {
		slots = append(slots, base+i)
	}
	return slots, nil
}

// SlotsConflict reports whether two slot sets overlap.
func SlotsConflict(a, b []int) bool {
	return lo.Some(a, b)
}
