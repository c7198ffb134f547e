package model

import (
	"encoding/json"
	"fmt"
)

// ExemptRoom is the remote/virtual room. Slots held there never overlap anything.
const ExemptRoom = "EXT1"

// Day is a CRU day code.
type Day string

const (
	Monday    Day = "L"
	Tuesday   Day = "MA"
	Wednesday Day = "ME"
	Thursday  Day = "J"
	Friday    Day = "V"
	Saturday  Day = "S"
	Sunday    Day = "D"
)

// Days lists the day codes in week order.
var Days = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var dayNames = map[Day]string{
	Monday:    "Monday",
	Tuesday:   "Tuesday",
	Wednesday: "Wednesday",
	Thursday:  "Thursday",
	Friday:    "Friday",
	Saturday:  "Saturday",
	Sunday:    "Sunday",
}

var dayICal = map[Day]string{
	Monday:    "MO",
	Tuesday:   "TU",
	Wednesday: "WE",
	Thursday:  "TH",
	Friday:    "FR",
	Saturday:  "SA",
	Sunday:    "SU",
}

// ParseDay validates a day code.
func ParseDay(s string) (Day, error) {
	d := Day(s)
	if !d.Valid() {
		return "", fmt.Errorf("invalid day %q (use one of L, MA, ME, J, V, S, D)", s)
	}
	return d, nil
}

func (d Day) Valid() bool {
	_, ok := dayNames[d]
	return ok
}

// Name returns the display name, or the raw code for unknown days.
func (d Day) Name() string {
	if n, ok := dayNames[d]; ok {
		return n
	}
	return string(d)
}

// ICal returns the RFC 5545 BYDAY code.
func (d Day) ICal() string {
	return dayICal[d]
}

// Category is the kind of teaching a slot is for.
type Category string

const (
	Lecture  Category = "lecture"
	Tutorial Category = "tutorial"
	Lab      Category = "lab"
)

// CategoryOf maps a slot kind code (C1, D2, T1...) to its category by first letter.
func CategoryOf(kind string) (Category, bool) {
	if kind == "" {
		return "", false
	}
	switch kind[0] {
	case 'C':
		return Lecture, true
	case 'D':
		return Tutorial, true
	case 'T':
		return Lab, true
	}
	return "", false
}

// TimeSlot is one weekly occurrence of a course.
type TimeSlot struct {
	Kind     string    `json:"kind"`
	Capacity int       `json:"capacity"`
	Day      Day       `json:"day"`
	Start    TimeOfDay `json:"start"`
	End      TimeOfDay `json:"end"`
	Group    string    `json:"group"`
	Room     string    `json:"room"`
}

// Overlaps reports whether s, taken as the candidate, collides with an existing slot.
//
// The interval test is asymmetric: s collides when its end falls in
// (other.Start, other.End] or its start falls in [other.Start, other.End).
// Back-to-back slots do not collide. Swapping receiver and argument can change
// the answer when one interval strictly contains the other.
func (s TimeSlot) Overlaps(other TimeSlot) bool {
	if s.Room == ExemptRoom {
		return false
	}
	if s.Room != other.Room || s.Day != other.Day {
		return false
	}
	start, end := s.Start.Fraction(), s.End.Fraction()
	os, oe := other.Start.Fraction(), other.End.Fraction()
	return (end > os && end <= oe) || (start >= os && start < oe)
}

// Duration is the slot length in fractional hours.
func (s TimeSlot) Duration() float64 {
	return s.End.Fraction() - s.Start.Fraction()
}

// Category returns the teaching category derived from Kind.
func (s TimeSlot) Category() Category {
	c, _ := CategoryOf(s.Kind)
	return c
}

func (s TimeSlot) String() string {
	return fmt.Sprintf("slot: kind=%s, enrolled=%d, group=%s on %s from %s to %s in %s",
		s.Kind, s.Capacity, s.Group, s.Day.Name(), s.Start, s.End, s.Room)
}

// UnmarshalJSON rejects unknown day codes.
func (d *Day) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDay(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
