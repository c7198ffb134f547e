package query

import (
	"errors"
	"fmt"

	"github.com/rcliao/cru-schedule/internal/model"
)

var (
	ErrCourseNotFound = errors.New("course not found")
	ErrInvalidRange   = errors.New("end time must be at or after start time")
)

// SearchParams filters the slots of one course. Zero values mean "any".
type SearchParams struct {
	Course     string
	Kind       string
	Capacity   *int
	Day        model.Day
	StartAfter *model.TimeOfDay // keep slots starting at or after
	EndBefore  *model.TimeOfDay // keep slots ending at or before
	Group      string
	Room       string
}

// SearchResult is a course name with its matching slots.
type SearchResult struct {
	Course string           `json:"course"`
	Slots  []model.TimeSlot `json:"slots"`
}

// Search returns the slots of the named course matching every given filter.
func Search(courses []*model.Course, p SearchParams) (*SearchResult, error) {
	if p.StartAfter != nil && p.EndBefore != nil && !p.EndBefore.IsAtOrAfter(*p.StartAfter) {
		return nil, fmt.Errorf("%w: %s < %s", ErrInvalidRange, p.EndBefore, p.StartAfter)
	}

	var course *model.Course
	for _, c := range courses {
		if c.Name == p.Course {
			course = c
			break
		}
	}
	if course == nil {
		return nil, fmt.Errorf("%w: %s", ErrCourseNotFound, p.Course)
	}

	res := &SearchResult{Course: course.Name, Slots: []model.TimeSlot{}}
	for _, s := range course.Slots {
		if p.matches(s) {
			res.Slots = append(res.Slots, s)
		}
	}
	return res, nil
}

func (p SearchParams) matches(s model.TimeSlot) bool {
	if p.Kind != "" && s.Kind != p.Kind {
		return false
	}
	if p.Capacity != nil && s.Capacity != *p.Capacity {
		return false
	}
	if p.Day != "" && s.Day != p.Day {
		return false
	}
	if p.StartAfter != nil && !s.Start.IsAtOrAfter(*p.StartAfter) {
		return false
	}
	if p.EndBefore != nil && !p.EndBefore.IsAtOrAfter(s.End) {
		return false
	}
	if p.Group != "" && s.Group != p.Group {
		return false
	}
	if p.Room != "" && s.Room != p.Room {
		return false
	}
	return true
}
