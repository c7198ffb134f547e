package query

import (
	"sort"

	"github.com/rcliao/cru-schedule/internal/model"
)

// CapacityGroup lists the rooms sharing the same capacity.
type CapacityGroup struct {
	Capacity int      `json:"capacity"`
	Rooms    []string `json:"rooms"`
}

// RoomsByCapacity takes each room's capacity to be the largest enrolment of
// any slot held in it, then groups rooms by that value, smallest first.
// Rooms within a group keep the order they were first seen in slots.
func RoomsByCapacity(slots []model.TimeSlot) []CapacityGroup {
	var order []string
	best := map[string]int{}
	for _, s := range slots {
		c, ok := best[s.Room]
		if !ok {
			order = append(order, s.Room)
		}
		if !ok || s.Capacity > c {
			best[s.Room] = s.Capacity
		}
	}

	index := map[int]int{}
	var groups []CapacityGroup
	for _, room := range order {
		c := best[room]
		i, ok := index[c]
		if !ok {
			i = len(groups)
			index[c] = i
			groups = append(groups, CapacityGroup{Capacity: c})
		}
		groups[i].Rooms = append(groups[i].Rooms, room)
	}

	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Capacity < groups[j].Capacity })
	return groups
}
