package repository

import (
	"context"
	"errors"

	"bodybalance/internal/domain/entity"
)

// ErrMealEntryNotFound is returned when a meal entry does not exist.
var ErrMealEntryNotFound = errors.New("meal entry not found")

// MealEntryRepository persists logged consumption events.
type MealEntryRepository interface {
	// FindByID retrieves a single entry by its local key.
	FindByID(ctx context.Context, id uint) (*entity.MealEntry, error)

	// FindByLog retrieves all entries belonging to a daily log.
	FindByLog(ctx context.Context, dailyLogID uint) ([]*entity.MealEntry, error)

	// ListRecent retrieves entries ordered by LoggedAt descending,
	// at most limit rows. Used for the recent-foods overlay.
	ListRecent(ctx context.Context, limit int) ([]*entity.MealEntry, error)

	// Create persists a new entry and assigns its local key.
	Create(ctx context.Context, entry *entity.MealEntry) error

	// Update modifies an existing entry.
	Update(ctx context.Context, entry *entity.MealEntry) error

	// Delete removes a single entry.
	Delete(ctx context.Context, id uint) error

	// DeleteByLog removes every entry of a daily log. Used by the
	// wholesale day replacement during pull/merge.
	DeleteByLog(ctx context.Context, dailyLogID uint) error

	// DeleteAll removes all entries. Used only by full data import/reset.
	DeleteAll(ctx context.Context) error
}
