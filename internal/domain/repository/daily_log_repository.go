package repository

import (
	"context"
	"errors"

	"bodybalance/internal/domain/entity"
)

// ErrDailyLogNotFound is returned when no log exists for a date.
var ErrDailyLogNotFound = errors.New("daily log not found")

// DailyLogRepository persists per-date log aggregates.
type DailyLogRepository interface {
	// FindByID retrieves a log by its local key.
	FindByID(ctx context.Context, id uint) (*entity.DailyLog, error)

	// FindByDate retrieves the log for a calendar date (yyyy-mm-dd).
	FindByDate(ctx context.Context, date string) (*entity.DailyLog, error)

	// GetOrCreate retrieves the log for a date, creating an empty one if
	// none exists yet.
	GetOrCreate(ctx context.Context, date string) (*entity.DailyLog, error)

	// Update modifies an existing log.
	Update(ctx context.Context, log *entity.DailyLog) error

	// All retrieves every local log.
	All(ctx context.Context) ([]*entity.DailyLog, error)

	// DeleteAll removes all logs. Used only by full data import/reset.
	DeleteAll(ctx context.Context) error
}
