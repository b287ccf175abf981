// Package service defines interfaces for external capabilities the
// application depends on, implemented by the infrastructure layer.
package service

import (
	"context"
	"errors"

	"bodybalance/internal/domain/entity"
)

// ErrDocumentNotFound is returned when a remote document does not exist.
var ErrDocumentNotFound = errors.New("remote document not found")

// ProfileDocument is the remote shape of the user profile, addressed as
// users/{identity}/profile/data. Local-only secrets are stripped before it
// is built. Timestamps travel as ISO-8601 strings.
type ProfileDocument struct {
	Name               string  `firestore:"name"`
	Gender             string  `firestore:"gender"`
	DateOfBirth        string  `firestore:"dateOfBirth"`
	HeightCm           float64 `firestore:"heightCm"`
	CurrentWeightKg    float64 `firestore:"currentWeightKg"`
	GoalWeightKg       float64 `firestore:"goalWeightKg"`
	ActivityLevel      string  `firestore:"activityLevel"`
	Goal               string  `firestore:"goal"`
	DailyPointsBudget  float64 `firestore:"dailyPointsBudget"`
	WeeklyPointsBudget float64 `firestore:"weeklyPointsBudget"`
	WaterGoalMl        int     `firestore:"waterGoalMl"`
	OnboardingComplete bool    `firestore:"onboardingComplete"`
	CreatedAt          string  `firestore:"createdAt"`
	UpdatedAt          string  `firestore:"updatedAt"`
}

// FoodSnapshot is the flattened, whitelisted food shape embedded in day
// documents. Missing units default to grams on both push and pull.
type FoodSnapshot struct {
	Name          string           `firestore:"name"`
	Brand         string           `firestore:"brand"`
	Barcode       string           `firestore:"barcode"`
	Nutrition     entity.Nutrition `firestore:"nutrition"`
	PointsPer100g float64          `firestore:"pointsPer100g"`
	ServingSizeG  float64          `firestore:"servingSizeG"`
	Unit          string           `firestore:"unit"`
	IsZeroPoint   bool             `firestore:"isZeroPoint"`
	Source        string           `firestore:"source"`
}

// MealDocument is one logged meal inside a day document.
type MealDocument struct {
	FoodItem  FoodSnapshot `firestore:"foodItem"`
	MealType  string       `firestore:"mealType"`
	QuantityG float64      `firestore:"quantityG"`
	Quantity  float64      `firestore:"quantity"`
	Points    float64      `firestore:"points"`
	LoggedAt  string       `firestore:"loggedAt"`
}

// DayDocument is the remote shape of one calendar day, addressed as
// users/{identity}/days/{date}. It carries the full entry array; writes
// replace the whole document (last-writer-wins at day granularity).
type DayDocument struct {
	Date             string         `firestore:"date"`
	TotalPointsUsed  float64        `firestore:"totalPointsUsed"`
	WeeklyPointsUsed float64        `firestore:"weeklyPointsUsed"`
	WaterMl          int            `firestore:"waterMl"`
	Meals            []MealDocument `firestore:"meals"`
	UpdatedAt        string         `firestore:"updatedAt"`
}

// WeightDocument is the remote shape of one weight measurement, addressed
// as users/{identity}/weight/{date}.
type WeightDocument struct {
	Date      string  `firestore:"date"`
	WeightKg  float64 `firestore:"weightKg"`
	Note      string  `firestore:"note"`
	UpdatedAt string  `firestore:"updatedAt"`
}

// FoodDocument is the remote shape of one user-authored food, addressed as
// users/{identity}/foods/{localId}.
type FoodDocument struct {
	Name          string           `firestore:"name"`
	Brand         string           `firestore:"brand"`
	Barcode       string           `firestore:"barcode"`
	Nutrition     entity.Nutrition `firestore:"nutrition"`
	PointsPer100g float64          `firestore:"pointsPer100g"`
	ServingSizeG  float64          `firestore:"servingSizeG"`
	Unit          string           `firestore:"unit"`
	IsZeroPoint   bool             `firestore:"isZeroPoint"`
	IsFavorite    bool             `firestore:"isFavorite"`
	Source        string           `firestore:"source"`
	CreatedAt     string           `firestore:"createdAt"`
	UpdatedAt     string           `firestore:"updatedAt"`
}

// RemoteStore is the per-user remote document store. Every Set is a full
// document overwrite; there are no cross-document transactions. The store
// is only read during session activation (pull) and written by
// fire-and-forget pushes.
type RemoteStore interface {
	// SetProfile overwrites the singleton profile document.
	SetProfile(ctx context.Context, userID string, doc *ProfileDocument) error

	// GetProfile retrieves the profile document, or ErrDocumentNotFound.
	GetProfile(ctx context.Context, userID string) (*ProfileDocument, error)

	// SetDay overwrites the day document for a date.
	SetDay(ctx context.Context, userID, date string, doc *DayDocument) error

	// ListDays retrieves all day documents for the user.
	ListDays(ctx context.Context, userID string) ([]*DayDocument, error)

	// SetWeight overwrites the weight document for a date.
	SetWeight(ctx context.Context, userID, date string, doc *WeightDocument) error

	// ListWeights retrieves all weight documents for the user.
	ListWeights(ctx context.Context, userID string) ([]*WeightDocument, error)

	// DeleteWeight removes the weight document for a date.
	DeleteWeight(ctx context.Context, userID, date string) error

	// SetFood overwrites the food document keyed by the local id.
	SetFood(ctx context.Context, userID string, localID uint, doc *FoodDocument) error

	// ListFoods retrieves all user-authored food documents.
	ListFoods(ctx context.Context, userID string) ([]*FoodDocument, error)
}
