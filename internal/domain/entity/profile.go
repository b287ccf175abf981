// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// Gender is the biological sex used by the calorie model.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// ActivityLevel describes habitual physical activity, one of five buckets.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "veryActive"
)

// Goal is the user's weight goal mode.
type Goal string

const (
	GoalLose     Goal = "lose"
	GoalMaintain Goal = "maintain"
)

// UserProfile is the singleton profile record of the local database.
// At most one profile exists per installation; it is created when
// onboarding completes and only removed by a full data import or reset.
type UserProfile struct {
	ID                 uint          // Local auto-assigned key.
	Name               string        // Display name.
	Gender             Gender        // Used by the budget model.
	DateOfBirth        string        // ISO date (yyyy-mm-dd).
	HeightCm           float64       // Height in centimetres.
	CurrentWeightKg    float64       // Most recently logged body weight.
	GoalWeightKg       float64       // Target body weight.
	ActivityLevel      ActivityLevel // Habitual activity bucket.
	Goal               Goal          // Lose or maintain.
	DailyPointsBudget  float64       // Computed daily points budget.
	WeeklyPointsBudget float64       // Computed weekly reserve budget.
	WaterGoalMl        int           // Daily water goal in millilitres.
	OnboardingComplete bool          // Set once onboarding finishes.
	AIAPIKey           string        // Local-only secret; never synchronized.
	CreatedAt          time.Time
	UpdatedAt          time.Time // Drives last-writer-wins profile merging.
}
