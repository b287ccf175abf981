package usecase

import (
	"context"
	"time"

	"bodybalance/internal/domain/entity"
)

// AddMealInput represents the input for logging a meal on a date.
type AddMealInput struct {
	Food      entity.FoodItem `json:"food"`
	MealType  entity.MealType `json:"mealType"`
	QuantityG float64         `json:"quantityG"`
	Quantity  float64         `json:"quantity"`
	Points    float64         `json:"points"`
	WaterMl   int             `json:"waterMl"`
	LoggedAt  time.Time       `json:"loggedAt"`
}

// UpdateMealInput represents the input for updating an existing meal entry.
type UpdateMealInput struct {
	MealType  *entity.MealType `json:"mealType,omitempty"`
	QuantityG *float64         `json:"quantityG,omitempty"`
	Quantity  *float64         `json:"quantity,omitempty"`
	Points    *float64         `json:"points,omitempty"`
}

// TrackerUsecase defines the local mutation and query surface of the
// tracker. Every mutation commits locally first, then triggers a
// fire-and-forget push for the active identity, if any. Mutations work fully
// offline.
type TrackerUsecase interface {
	// Meal logging
	AddMealEntry(ctx context.Context, date string, input *AddMealInput) (*entity.MealEntry, error)
	UpdateMealEntry(ctx context.Context, id uint, input *UpdateMealInput) (*entity.MealEntry, error)
	RemoveMealEntry(ctx context.Context, id uint) error
	CopyDayEntries(ctx context.Context, fromDate, toDate string) ([]*entity.MealEntry, error)

	// Water tracking. AddWater accepts negative amounts for undo; the
	// stored total never drops below zero. ClearEntryWater detaches an
	// entry's recorded water so a later delete does not subtract it again.
	AddWater(ctx context.Context, date string, ml int) (*entity.DailyLog, error)
	ResetWater(ctx context.Context, date string) (*entity.DailyLog, error)
	ClearEntryWater(ctx context.Context, id uint) error

	// Profile and weight
	SaveProfile(ctx context.Context, profile *entity.UserProfile) (*entity.UserProfile, error)
	UpdateWeight(ctx context.Context, weightKg float64) (*entity.UserProfile, error)
	LogWeight(ctx context.Context, date string, weightKg float64, note string) (*entity.WeightEntry, error)
	RemoveWeight(ctx context.Context, date string) error

	// Food library
	SaveCustomFood(ctx context.Context, food *entity.FoodItem) (*entity.FoodItem, error)
	ToggleFavorite(ctx context.Context, foodID uint) (*entity.FoodItem, error)

	// Queries
	GetProfile(ctx context.Context) (*entity.UserProfile, error)
	GetDailyLog(ctx context.Context, date string) (*entity.DailyLog, error)
	GetEntriesForDate(ctx context.Context, date string) ([]*entity.MealEntry, error)
	GetRecentFoods(ctx context.Context, limit int) ([]*entity.FoodItem, error)
	GetFavoriteFoods(ctx context.Context) ([]*entity.FoodItem, error)
	GetUserFoods(ctx context.Context) ([]*entity.FoodItem, error)
}
