package repository

import (
	"context"
	"errors"

	"bodybalance/internal/domain/entity"
)

// ErrWeightNotFound is returned when no weight entry exists for a date.
var ErrWeightNotFound = errors.New("weight entry not found")

// WeightRepository persists body-weight measurements, one per date.
type WeightRepository interface {
	// FindByDate retrieves the entry for a calendar date (yyyy-mm-dd).
	FindByDate(ctx context.Context, date string) (*entity.WeightEntry, error)

	// Upsert inserts the entry or replaces the existing one for its date.
	Upsert(ctx context.Context, entry *entity.WeightEntry) error

	// Delete removes the entry for a date. Deleting a missing date is not
	// an error.
	Delete(ctx context.Context, date string) error

	// All retrieves every local entry ordered by date ascending.
	All(ctx context.Context) ([]*entity.WeightEntry, error)

	// DeleteAll removes all entries. Used only by full data import/reset.
	DeleteAll(ctx context.Context) error
}
