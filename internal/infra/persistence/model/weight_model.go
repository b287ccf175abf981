package model

// WeightEntryModel is the GORM model for body-weight measurements.
type WeightEntryModel struct {
	ID       uint   `gorm:"primaryKey"`
	Date     string `gorm:"uniqueIndex;not null"`
	WeightKg float64
	Note     string
}

// TableName overrides the default table name.
func (WeightEntryModel) TableName() string {
	return "weight_entries"
}
