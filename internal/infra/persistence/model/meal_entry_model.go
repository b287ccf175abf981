package model

import "time"

// FoodSnapshotModel is the denormalized food definition embedded in a meal
// entry, serialized as a JSON column so historical logs never change when
// the definition is edited later.
type FoodSnapshotModel struct {
	Name          string         `json:"name"`
	Brand         string         `json:"brand"`
	Barcode       string         `json:"barcode"`
	Nutrition     NutritionModel `json:"nutrition"`
	PointsPer100g float64        `json:"pointsPer100g"`
	ServingSizeG  float64        `json:"servingSizeG"`
	Unit          string         `json:"unit"`
	IsZeroPoint   bool           `json:"isZeroPoint"`
	Source        string         `json:"source"`
}

// MealEntryModel is the GORM model for logged consumption events.
type MealEntryModel struct {
	ID           uint              `gorm:"primaryKey"`
	DailyLogID   uint              `gorm:"index;not null"`
	FoodItem     FoodSnapshotModel `gorm:"serializer:json"`
	MealType     string            `gorm:"index"`
	QuantityG    float64
	Quantity     float64
	Points       float64
	WaterMlAdded int
	LoggedAt     time.Time `gorm:"index"`
}

// TableName overrides the default table name.
func (MealEntryModel) TableName() string {
	return "meal_entries"
}
