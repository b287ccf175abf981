package usecase

import (
	"context"

	"bodybalance/internal/domain/entity"
)

// DayExport is one daily log together with its entries.
type DayExport struct {
	Log     *entity.DailyLog    `json:"log"`
	Entries []*entity.MealEntry `json:"entries"`
}

// ExportSnapshot is a full JSON-serializable dump of the local store.
type ExportSnapshot struct {
	Version    int                   `json:"version"`
	ExportedAt string                `json:"exportedAt"`
	Profile    *entity.UserProfile   `json:"profile,omitempty"`
	Foods      []*entity.FoodItem    `json:"foods"`
	Days       []*DayExport          `json:"days"`
	Weights    []*entity.WeightEntry `json:"weights"`
}

// PortabilityUsecase defines full data export and import.
type PortabilityUsecase interface {
	// Export reads every collection into a snapshot.
	Export(ctx context.Context) (*ExportSnapshot, error)

	// Import wipes the local store and restores the snapshot inside a
	// single transaction, then reconciles the remote store when a session
	// is active.
	Import(ctx context.Context, snap *ExportSnapshot) error
}
