// Package sqlite contains the concrete implementation of the persistence
// layer using GORM and an embedded SQLite database. SQLite owns durability
// of all user data when offline; the remote store is only ever a derived
// projection of it.
package sqlite

import (
	"log/slog"

	"bodybalance/config"
	"bodybalance/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// New opens the embedded database and migrates the schema.
// This function is used as an Fx provider.
func New(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.Database.Path), &gorm.Config{
		Logger: newGormSlogLogger(logger, cfg),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite database")
	}

	if err := migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Open opens a database at an explicit path without config plumbing.
// Tests use it with shared-cache in-memory DSNs.
func Open(path string, logger *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: newGormSlogLogger(logger, nil),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite database")
	}

	if err := migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.UserProfileModel{},
		&model.FoodItemModel{},
		&model.DailyLogModel{},
		&model.MealEntryModel{},
		&model.WeightEntryModel{},
	)
	if err != nil {
		return errors.Wrap(err, "failed to migrate schema")
	}

	return nil
}
