package entity

import "time"

// FoodSource identifies where a food definition came from.
type FoodSource string

const (
	// SourceOpenFoodFacts marks items looked up in the remote catalog.
	SourceOpenFoodFacts FoodSource = "openfoodfacts"
	// SourceNevo marks items from the static national food table.
	SourceNevo FoodSource = "nevo"
	// SourceUser marks user-authored items. Only these are pushed to the
	// remote foods sub-collection.
	SourceUser FoodSource = "user"
)

// Unit is the measurement unit a food is quantified in.
type Unit string

const (
	UnitGram       Unit = "g"
	UnitMillilitre Unit = "ml"
)

// Nutrition holds nutritional values per 100 units (g or ml).
type Nutrition struct {
	Calories       float64 `json:"calories"`
	Protein        float64 `json:"protein"`
	Fat            float64 `json:"fat"`
	SaturatedFat   float64 `json:"saturatedFat"`
	UnsaturatedFat float64 `json:"unsaturatedFat"`
	Carbs          float64 `json:"carbs"`
	Sugar          float64 `json:"sugar"`
	AddedSugar     float64 `json:"addedSugar"`
	Fiber          float64 `json:"fiber"`
}

// FoodItem is a food or drink definition. Catalog lookups stay ephemeral
// until logged or favorited; user-authored items persist immediately.
type FoodItem struct {
	ID            uint       // Local auto-assigned key; 0 for unsaved items.
	Name          string
	Brand         string
	Barcode       string
	Nutrition     Nutrition // Per 100 units.
	PointsPer100g float64
	ServingSizeG  float64
	Unit          Unit // Defaults to grams when unknown.
	IsZeroPoint   bool
	IsFavorite    bool
	Source        FoodSource
	ImageURL      string // Local-only; not part of the remote shape.
	CreatedAt     time.Time
}
