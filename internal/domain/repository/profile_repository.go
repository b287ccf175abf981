// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"bodybalance/internal/domain/entity"
)

// ErrProfileNotFound is returned when no local profile exists yet.
var ErrProfileNotFound = errors.New("profile not found")

// ProfileRepository persists the singleton user profile.
type ProfileRepository interface {
	// Get retrieves the single local profile.
	Get(ctx context.Context) (*entity.UserProfile, error)

	// Save inserts the profile or updates the existing one in place,
	// preserving the at-most-one invariant.
	Save(ctx context.Context, profile *entity.UserProfile) error

	// DeleteAll removes all profiles. Used only by full data import/reset.
	DeleteAll(ctx context.Context) error
}
