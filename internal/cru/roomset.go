package cru

import "encoding/json"

// RoomSet is a set of room names that remembers insertion order.
type RoomSet struct {
	order []string
	seen  map[string]struct{}
}

// Add inserts room if it is not already present. It reports whether the room was new.
func (s *RoomSet) Add(room string) bool {
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[room]; ok {
		return false
	}
	s.seen[room] = struct{}{}
	s.order = append(s.order, room)
	return true
}

func (s *RoomSet) Has(room string) bool {
	_, ok := s.seen[room]
	return ok
}

func (s *RoomSet) Len() int { return len(s.order) }

// Items returns the rooms in first-seen order. The slice is a copy.
func (s *RoomSet) Items() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

func (s RoomSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Items())
}
