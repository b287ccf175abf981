package usecase

import "context"

// DaySummary is one day inside a week summary.
type DaySummary struct {
	Date         string  `json:"date"`
	PointsUsed   float64 `json:"pointsUsed"`
	WaterMl      int     `json:"waterMl"`
	HasEntries   bool    `json:"hasEntries"`
	WithinBudget bool    `json:"withinBudget"`
}

// WeekSummary aggregates the previous completed Monday-to-Sunday week.
type WeekSummary struct {
	StartDate        string       `json:"startDate"`
	EndDate          string       `json:"endDate"`
	Days             []DaySummary `json:"days"`
	AvgPointsUsed    float64      `json:"avgPointsUsed"`
	DaysWithinBudget int          `json:"daysWithinBudget"`
	WaterGoalDays    int          `json:"waterGoalDays"`
	WeeklyOverage    float64      `json:"weeklyOverage"`
	BestDay          string       `json:"bestDay"`
	WeightChangeKg   *float64     `json:"weightChangeKg,omitempty"`
}

// ReportsUsecase defines read-only aggregations over local data.
type ReportsUsecase interface {
	// WeeklyPointsUsed sums the daily budget overages from the Monday of
	// the date's week through the date itself.
	WeeklyPointsUsed(ctx context.Context, date string) (float64, error)

	// GetWeekSummary summarizes the completed week preceding the date's
	// week.
	GetWeekSummary(ctx context.Context, date string) (*WeekSummary, error)

	// GetStreak counts consecutive days with at least one logged entry and
	// points within budget, walking back from the date (or the day before
	// when the date has no entries yet).
	GetStreak(ctx context.Context, date string) (int, error)
}
