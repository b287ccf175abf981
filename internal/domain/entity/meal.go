package entity

import "time"

// MealType is the slot a meal entry is logged under.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// MealEntry is a logged consumption event. The food definition is embedded
// as a denormalized snapshot so later edits to the definition never
// retroactively change historical logs.
type MealEntry struct {
	ID           uint     // Local auto-assigned key.
	DailyLogID   uint     // Owning DailyLog.
	FoodItem     FoodItem // Snapshot, not a live reference.
	MealType     MealType
	QuantityG    float64 // Amount in grams or millilitres.
	Quantity     float64 // Item count multiplier; defaults to 1.
	Points       float64 // Computed points for this entry.
	WaterMlAdded int     // Water credited by this entry (drinks); reversed on delete.
	LoggedAt     time.Time
}
