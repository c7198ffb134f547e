package cru

import (
	"fmt"

	"github.com/rcliao/cru-schedule/internal/model"
)

// MalformedLineError is a line the parser could not use.
type MalformedLineError struct {
	Source string
	Line   int
	Text   string
	Reason string
	Err    error
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("%s:%d: can't read line %q: %s", e.Source, e.Line, e.Text, e.Reason)
}

func (e *MalformedLineError) Unwrap() error { return e.Err }

// EmptyCourseDiscarded is reported when a course closes without any accepted slot.
type EmptyCourseDiscarded struct {
	Source string
	Line   int
	Course string
}

func (e *EmptyCourseDiscarded) Error() string {
	return fmt.Sprintf("%s:%d: course %s was discarded, it has no time slots", e.Source, e.Line, e.Course)
}

// OverlapConflict is reported when a slot collides with one accepted earlier.
// The earlier slot wins.
type OverlapConflict struct {
	Source   string
	Line     int
	Course   string
	Slot     model.TimeSlot
	Existing model.TimeSlot
}

func (e *OverlapConflict) Error() string {
	return fmt.Sprintf("%s:%d: overlap, %s %s can't be added because of %s",
		e.Source, e.Line, e.Course, e.Slot, e.Existing)
}
