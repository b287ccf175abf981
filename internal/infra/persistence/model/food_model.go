package model

import "time"

// NutritionModel holds nutritional values per 100 units, serialized as a
// JSON column. The keys match the remote document shape.
type NutritionModel struct {
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

// FoodItemModel is the GORM model for food and drink definitions.
type FoodItemModel struct {
	ID            uint   `gorm:"primaryKey"`
	Name          string `gorm:"index;not null"`
	Brand         string
	Barcode       string         `gorm:"index"`
	Nutrition     NutritionModel `gorm:"serializer:json"`
	PointsPer100g float64
	ServingSizeG  float64
	Unit          string
	IsZeroPoint   bool
	IsFavorite    bool   `gorm:"index"`
	Source        string `gorm:"index"`
	ImageURL      string
	CreatedAt     time.Time `gorm:"autoCreateTime:false"`
}

// TableName overrides the default table name.
func (FoodItemModel) TableName() string {
	return "food_items"
}
