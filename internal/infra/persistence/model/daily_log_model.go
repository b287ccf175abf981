package model

// DailyLogModel is the GORM model for per-date log aggregates.
// The date string is the natural unique key.
type DailyLogModel struct {
	ID               uint   `gorm:"primaryKey"`
	Date             string `gorm:"uniqueIndex;not null"`
	TotalPointsUsed  float64
	WeeklyPointsUsed float64
	WaterMl          int
}

// TableName overrides the default table name.
func (DailyLogModel) TableName() string {
	return "daily_logs"
}
