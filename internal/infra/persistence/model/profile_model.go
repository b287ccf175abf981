// Package model contains the GORM persistence models. They are mapped to
// and from the pure domain entities by the repository implementations.
package model

import "time"

// UserProfileModel is the GORM model for the singleton user profile.
// Timestamps are managed by the application, not by GORM, because the
// UpdatedAt value drives last-writer-wins merging against the remote store.
type UserProfileModel struct {
	ID                 uint   `gorm:"primaryKey"`
	Name               string `gorm:"not null"`
	Gender             string
	DateOfBirth        string
	HeightCm           float64
	CurrentWeightKg    float64
	GoalWeightKg       float64
	ActivityLevel      string
	Goal               string
	DailyPointsBudget  float64
	WeeklyPointsBudget float64
	WaterGoalMl        int
	OnboardingComplete bool
	AIAPIKey           string    `gorm:"column:ai_api_key"`
	CreatedAt          time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime:false"`
}

// TableName overrides the default table name.
func (UserProfileModel) TableName() string {
	return "user_profiles"
}
