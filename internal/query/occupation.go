package query

import (
	"github.com/rcliao/cru-schedule/internal/model"
)

// RoomHours is the weekly occupied time of one room.
type RoomHours struct {
	Room  string  `json:"room"`
	Hours float64 `json:"occupied_hours"`
}

// OccupiedHours sums slot durations per room. Every room in rooms appears in
// the result, in the given order, even when it holds nothing.
func OccupiedHours(slots []model.TimeSlot, rooms []string) []RoomHours {
	total := make(map[string]float64, len(rooms))
	for _, s := range slots {
		total[s.Room] += s.Duration()
	}
	out := make([]RoomHours, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, RoomHours{Room: r, Hours: total[r]})
	}
	return out
}

// Booking is one slot held in a room, shaped for a weekly chart.
type Booking struct {
	Course   string  `json:"course"`
	Day      string  `json:"day"`
	Start    float64 `json:"bin_start"`
	End      float64 `json:"bin_end"`
	Students int     `json:"students"`
}

// RoomWeek lists every booking of room across courses, in course order.
// It returns nil when the room holds nothing.
func RoomWeek(courses []*model.Course, room string) []Booking {
	var out []Booking
	for _, c := range courses {
		for _, s := range c.Slots {
			if s.Room != room {
				continue
			}
			out = append(out, Booking{
				Course:   c.Name,
				Day:      s.Day.Name(),
				Start:    s.Start.Fraction(),
				End:      s.End.Fraction(),
				Students: s.Capacity,
			})
		}
	}
	return out
}
