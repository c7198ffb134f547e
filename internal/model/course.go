package model

// Course is a named course and the time slots it owns, in the order they were accepted.
type Course struct {
	Name  string     `json:"name"`
	Slots []TimeSlot `json:"slots"`
}

// NewCourse returns an empty course.
func NewCourse(name string) *Course {
	return &Course{Name: name}
}

// AddTimeSlot appends a slot. Callers validate before adding.
func (c *Course) AddTimeSlot(s TimeSlot) {
	c.Slots = append(c.Slots, s)
}
