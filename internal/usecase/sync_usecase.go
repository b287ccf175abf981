// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"bodybalance/internal/domain/entity"
)

// PushUsecase is the fire-and-forget upload pipeline. The single-item
// methods return immediately; the actual write runs on a detached goroutine
// and remote failures are logged and swallowed, never surfaced to the
// caller. PushAll is the synchronous bulk reconciliation used to seed an
// empty remote store.
//
// The identity is always passed explicitly; the pipeline never consults the
// session on its own.
type PushUsecase interface {
	// PushProfile uploads the profile document, stripping local-only fields.
	PushProfile(ctx context.Context, userID string, profile *entity.UserProfile)

	// PushDay uploads the full day document for a date. Missing local log
	// is a no-op.
	PushDay(ctx context.Context, userID, date string)

	// PushWeight uploads the weight document for the entry's date.
	PushWeight(ctx context.Context, userID string, entry *entity.WeightEntry)

	// DeleteWeight removes the remote weight document for a date.
	DeleteWeight(ctx context.Context, userID, date string)

	// PushFood uploads a user-authored food. Catalog foods are a no-op.
	PushFood(ctx context.Context, userID string, food *entity.FoodItem)

	// PushAll uploads the profile, every day, every weight entry and every
	// user-authored food, sequentially. Individual remote failures are
	// logged and skipped; only local read failures are returned.
	PushAll(ctx context.Context, userID string) error
}

// PullUsecase is the download-and-merge pipeline, run once per login.
type PullUsecase interface {
	// PullAll downloads all remote documents for the user and merges them
	// into the local store. It reports whether the remote store contained
	// any data. The merge is idempotent; it either applies fully or not at
	// all.
	PullAll(ctx context.Context, userID string) (bool, error)
}
