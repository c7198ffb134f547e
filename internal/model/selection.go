package model

import "time"

// Selection is a course slot picked for the personal calendar.
type Selection struct {
	ID        string    `json:"id"`
	Course    string    `json:"course"`
	Slot      TimeSlot  `json:"slot"`
	CreatedAt time.Time `json:"created_at"`
}
