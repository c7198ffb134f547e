// Package store provides the selection storage interface and SQLite implementation.
package store

import (
	"context"
	"errors"

	"github.com/rcliao/cru-schedule/internal/model"
)

var (
	ErrSelectionNotFound  = errors.New("selection not found")
	ErrDuplicateSelection = errors.New("selection already exists")
)

// AddParams holds parameters for selecting a course slot.
type AddParams struct {
	Course string
	Slot   model.TimeSlot
}

// ListParams holds parameters for listing selections.
type ListParams struct {
	Course string
	Day    model.Day
	Limit  int // 0 means no limit
}

// Store defines the selection storage interface.
type Store interface {
	// Add stores a selection. Returns the created selection.
	Add(ctx context.Context, p AddParams) (*model.Selection, error)

	// List lists selections matching the given filters, oldest first.
	List(ctx context.Context, p ListParams) ([]model.Selection, error)

	// Rm deletes one selection by ID.
	Rm(ctx context.Context, id string) error

	// Clear deletes every selection and reports how many were removed.
	Clear(ctx context.Context) (int, error)

	// Close closes the store.
	Close() error
}
