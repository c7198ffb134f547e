// Package query answers read-only questions about a parsed schedule.
package query

import (
	"errors"
	"fmt"

	"github.com/rcliao/cru-schedule/internal/model"
)

// ErrInvalidWindow is returned for a window with an unknown day or an end
// that is not later than its start.
var ErrInvalidWindow = errors.New("invalid time window")

// Window is a time range on one day of the week.
type Window struct {
	Day   model.Day       `json:"day"`
	Start model.TimeOfDay `json:"start"`
	End   model.TimeOfDay `json:"end"`
}

// Validate checks the day code and that End is strictly after Start.
func (w Window) Validate() error {
	if !w.Day.Valid() {
		return fmt.Errorf("%w: unknown day %q", ErrInvalidWindow, w.Day)
	}
	if !w.End.After(w.Start) {
		return fmt.Errorf("%w: end %s is before start %s", ErrInvalidWindow, w.End, w.Start)
	}
	return nil
}

// Availability is the result of AvailableRooms.
type Availability struct {
	Window      Window   `json:"window"`
	Available   []string `json:"available"`
	Unavailable int      `json:"unavailable"`
	Total       int      `json:"total"`
}

// AvailableRooms returns the rooms free during w. For every room a synthetic
// slot covering w is built and checked, as the candidate, against each
// committed slot. Room order is preserved.
func AvailableRooms(slots []model.TimeSlot, rooms []string, w Window) (*Availability, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}

	res := &Availability{Window: w, Available: []string{}, Total: len(rooms)}
	for _, room := range rooms {
		candidate := model.TimeSlot{Day: w.Day, Start: w.Start, End: w.End, Room: room}
		free := true
		for _, s := range slots {
			if candidate.Overlaps(s) {
				free = false
				break
			}
		}
		if free {
			res.Available = append(res.Available, room)
		} else {
			res.Unavailable++
		}
	}
	return res, nil
}
