// Package model defines the core schedule data types.
package model

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
)

// TimeOfDay is a wall-clock time with minute precision.
type TimeOfDay struct {
	hour   int
	minute int
}

// InvalidTimeError reports a time field that is malformed or out of range.
type InvalidTimeError struct {
	Text   string
	Reason string
}

func (e *InvalidTimeError) Error() string {
	return fmt.Sprintf("invalid time %q: %s", e.Text, e.Reason)
}

var timeRegex = regexp.MustCompile(`^([0-9]{1,2}):([0-9]{2})$`)

// NewTimeOfDay builds a TimeOfDay, rejecting hours outside 0-23 and minutes outside 0-59.
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 {
		return TimeOfDay{}, &InvalidTimeError{
			Text:   fmt.Sprintf("%d:%02d", hour, minute),
			Reason: "hour must be between 0 and 23",
		}
	}
	if minute < 0 || minute > 59 {
		return TimeOfDay{}, &InvalidTimeError{
			Text:   fmt.Sprintf("%d:%02d", hour, minute),
			Reason: "minutes must be between 0 and 59",
		}
	}
	return TimeOfDay{hour: hour, minute: minute}, nil
}

// MustTimeOfDay is like NewTimeOfDay but panics on invalid input.
func MustTimeOfDay(hour, minute int) TimeOfDay {
	t, err := NewTimeOfDay(hour, minute)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseTimeOfDay parses "H:MM" or "HH:MM".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	m := timeRegex.FindStringSubmatch(s)
	if m == nil {
		return TimeOfDay{}, &InvalidTimeError{Text: s, Reason: "expected H:MM or HH:MM"}
	}
	h, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	t, err := NewTimeOfDay(h, minute)
	if err != nil {
		return TimeOfDay{}, &InvalidTimeError{Text: s, Reason: err.(*InvalidTimeError).Reason}
	}
	return t, nil
}

func (t TimeOfDay) Hour() int   { return t.hour }
func (t TimeOfDay) Minute() int { return t.minute }

// Fraction returns the time as fractional hours (15:30 -> 15.5).
func (t TimeOfDay) Fraction() float64 {
	return float64(t.hour) + float64(t.minute)/60
}

// IsAtOrAfter reports whether t is the same time as other or later.
func (t TimeOfDay) IsAtOrAfter(other TimeOfDay) bool {
	return t.Fraction() >= other.Fraction()
}

// After reports whether t is strictly later than other.
func (t TimeOfDay) After(other TimeOfDay) bool {
	return t.Fraction() > other.Fraction()
}

// String formats as H:MM.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%d:%02d", t.hour, t.minute)
}

// ICal formats as HHMMSS for calendar export. Seconds are always 00.
func (t TimeOfDay) ICal() string {
	return fmt.Sprintf("%02d%02d00", t.hour, t.minute)
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
