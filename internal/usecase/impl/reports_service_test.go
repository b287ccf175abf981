package impl

import (
	"context"
	"testing"

	"bodybalance/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedReportProfile(t *testing.T, env *testEnv, budget float64) {
	t.Helper()

	_, err := env.tracker.SaveProfile(context.Background(), &entity.UserProfile{
		Name:              "Sam",
		DailyPointsBudget: budget,
		WaterGoalMl:       2000,
	})
	require.NoError(t, err)
}

func TestReportsService_WeeklyPointsUsed_SumsOverages(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seedReportProfile(t, env, 10)

	// Monday 2026-08-24 four over, Wednesday three over, Thursday under.
	_, err := env.tracker.AddMealEntry(ctx, "2026-08-24", mealInput("Feast", 14))
	require.NoError(t, err)
	_, err = env.tracker.AddMealEntry(ctx, "2026-08-26", mealInput("Pizza", 13))
	require.NoError(t, err)
	_, err = env.tracker.AddMealEntry(ctx, "2026-08-27", mealInput("Salad", 5))
	require.NoError(t, err)

	used, err := env.reports.WeeklyPointsUsed(ctx, "2026-08-27")
	require.NoError(t, err)
	assert.InDelta(t, 7.0, used, 0.001)

	// Days after the asked date do not count.
	used, err = env.reports.WeeklyPointsUsed(ctx, "2026-08-25")
	require.NoError(t, err)
	assert.InDelta(t, 4.0, used, 0.001)
}

func TestReportsService_WeeklyPointsUsed_NoProfile(t *testing.T) {
	env := newTestEnv(t)

	used, err := env.reports.WeeklyPointsUsed(context.Background(), "2026-08-27")
	require.NoError(t, err)
	assert.Zero(t, used)
}

func TestReportsService_GetWeekSummary(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seedReportProfile(t, env, 10)

	// The completed week before 2026-08-31 runs 2026-08-24 to 2026-08-30.
	_, err := env.tracker.AddMealEntry(ctx, "2026-08-24", mealInput("Feast", 14))
	require.NoError(t, err)
	_, err = env.tracker.AddMealEntry(ctx, "2026-08-25", mealInput("Salad", 6))
	require.NoError(t, err)
	_, err = env.tracker.AddWater(ctx, "2026-08-25", 2300)
	require.NoError(t, err)
	_, err = env.tracker.LogWeight(ctx, "2026-08-24", 81.0, "")
	require.NoError(t, err)
	_, err = env.tracker.LogWeight(ctx, "2026-08-30", 80.2, "")
	require.NoError(t, err)

	summary, err := env.reports.GetWeekSummary(ctx, "2026-08-31")
	require.NoError(t, err)

	assert.Equal(t, "2026-08-24", summary.StartDate)
	assert.Equal(t, "2026-08-30", summary.EndDate)
	require.Len(t, summary.Days, 7)

	assert.InDelta(t, 10.0, summary.AvgPointsUsed, 0.001) // (14+6)/2
	assert.Equal(t, 1, summary.DaysWithinBudget)
	assert.Equal(t, 1, summary.WaterGoalDays)
	assert.InDelta(t, 4.0, summary.WeeklyOverage, 0.001)
	assert.Equal(t, "2026-08-25", summary.BestDay)

	require.NotNil(t, summary.WeightChangeKg)
	assert.InDelta(t, -0.8, *summary.WeightChangeKg, 0.001)
}

func TestReportsService_GetStreak(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seedReportProfile(t, env, 10)

	for _, date := range []string{"2026-08-22", "2026-08-23", "2026-08-24"} {
		_, err := env.tracker.AddMealEntry(ctx, date, mealInput("Meal", 8))
		require.NoError(t, err)
	}

	// 2026-08-25 has nothing logged yet, so the walk starts the day before.
	streak, err := env.reports.GetStreak(ctx, "2026-08-25")
	require.NoError(t, err)
	assert.Equal(t, 3, streak)
}

func TestReportsService_GetStreak_BrokenByOverBudgetDay(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seedReportProfile(t, env, 10)

	_, err := env.tracker.AddMealEntry(ctx, "2026-08-23", mealInput("Blowout", 20))
	require.NoError(t, err)
	_, err = env.tracker.AddMealEntry(ctx, "2026-08-24", mealInput("Meal", 8))
	require.NoError(t, err)

	streak, err := env.reports.GetStreak(ctx, "2026-08-24")
	require.NoError(t, err)
	assert.Equal(t, 1, streak)
}
