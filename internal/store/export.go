package store

import (
	"context"
	"errors"

	"github.com/rcliao/cru-schedule/internal/model"
)

// ExportAll returns all selections, optionally filtered by course.
func (s *SQLiteStore) ExportAll(ctx context.Context, course string) ([]model.Selection, error) {
	return s.List(ctx, ListParams{Course: course})
}

// Import stores selections from an export. Duplicates are skipped and
// reported in the second return value.
func (s *SQLiteStore) Import(ctx context.Context, selections []model.Selection) (imported, skipped int, err error) {
	for _, sel := range selections {
		_, err := s.Add(ctx, AddParams{Course: sel.Course, Slot: sel.Slot})
		if errors.Is(err, ErrDuplicateSelection) {
			skipped++
			continue
		}
		if err != nil {
			return imported, skipped, err
		}
		imported++
	}
	return imported, skipped, nil
}
