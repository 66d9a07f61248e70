package model

import (
	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
	"github.com/samber/lo"
)

// unassignableSlot looks for a time slot whose concurrent units cannot all
// be matched to distinct admissible rooms, to give the caller something more
// actionable than a bare infeasibility verdict. A largest bipartite matching
// smaller than the number of concurrent units pins the slot down.
func unassignableSlot(units []Unit, rooms []Room) (int, bool) {
	roomsAny := lo.Map(rooms, func(room Room, _ int) any { return room })

	// Room kind and capacity are soft concerns; only a blocked room is
	// inadmissible outright.
	neighbors := func(unitAny any, roomAny any) (bool, error) {
		room := roomAny.(Room)
		return !room.Blocked, nil
	}

	for slot := 0; slot < SlotsPerWeek; slot++ {
		concurrent := lo.Filter(units, func(unit Unit, _ int) bool { return occupiesSlot(unit, slot) })
		if len(concurrent) == 0 {
			continue
		}

		unitsAny := lo.Map(concurrent, func(unit Unit, _ int) any { return unit })
		graph, err := bipartitegraph.NewBipartiteGraph(unitsAny, roomsAny, neighbors)
		if err != nil {
			return 0, false
		}

		if len(graph.LargestMatching()) < len(concurrent) {
			return slot, true
		}
	}
	return 0, false
}
