package impl

import (
	"context"
	"testing"

	"bodybalance/internal/domain/entity"
	"bodybalance/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mealInput(name string, points float64) *usecase.AddMealInput {
	return &usecase.AddMealInput{
		Food:      entity.FoodItem{Name: name, PointsPer100g: points, Unit: entity.UnitGram},
		MealType:  entity.MealLunch,
		QuantityG: 100,
		Points:    points,
	}
}

func TestTrackerService_AddMealEntry_RecomputesTotals(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.tracker.AddMealEntry(ctx, "2026-08-24", mealInput("Oats", 4))
	require.NoError(t, err)

	entry, err := env.tracker.AddMealEntry(ctx, "2026-08-24", mealInput("Yogurt", 2.5))
	require.NoError(t, err)
	assert.NotZero(t, entry.ID)
	assert.EqualValues(t, 1, entry.Quantity)

	log, err := env.tracker.GetDailyLog(ctx, "2026-08-24")
	require.NoError(t, err)
	assert.InDelta(t, 6.5, log.TotalPointsUsed, 0.001)

	entries, err := env.tracker.GetEntriesForDate(ctx, "2026-08-24")
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestTrackerService_AddMealEntry_InvalidDate(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.tracker.AddMealEntry(context.Background(), "24-08-2026", mealInput("Oats", 4))
	require.Error(t, err)
}

func TestTrackerService_UpdateMealEntry_RecomputesTotals(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	entry, err := env.tracker.AddMealEntry(ctx, "2026-08-24", mealInput("Oats", 4))
	require.NoError(t, err)

	newPoints := 10.0
	updated, err := env.tracker.UpdateMealEntry(ctx, entry.ID, &usecase.UpdateMealInput{Points: &newPoints})
	require.NoError(t, err)
	assert.InDelta(t, 10.0, updated.Points, 0.001)

	log, err := env.tracker.GetDailyLog(ctx, "2026-08-24")
	require.NoError(t, err)
	assert.InDelta(t, 10.0, log.TotalPointsUsed, 0.001)
}

func TestTrackerService_RemoveMealEntry_ReversesWater(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	input := mealInput("Smoothie", 3)
	input.WaterMl = 250

	entry, err := env.tracker.AddMealEntry(ctx, "2026-08-24", input)
	require.NoError(t, err)

	log, err := env.tracker.GetDailyLog(ctx, "2026-08-24")
	require.NoError(t, err)
	assert.Equal(t, 250, log.WaterMl)

	require.NoError(t, env.tracker.RemoveMealEntry(ctx, entry.ID))

	log, err = env.tracker.GetDailyLog(ctx, "2026-08-24")
	require.NoError(t, err)
	assert.Equal(t, 0, log.WaterMl)
	assert.Zero(t, log.TotalPointsUsed)
}

func TestTrackerService_RemoveMealEntry_WaterNeverNegative(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	input := mealInput("Smoothie", 3)
	input.WaterMl = 250

	entry, err := env.tracker.AddMealEntry(ctx, "2026-08-24", input)
	require.NoError(t, err)

	// Drain the day below the entry's recorded contribution first.
	_, err = env.tracker.AddWater(ctx, "2026-08-24", -200)
	require.NoError(t, err)

	require.NoError(t, env.tracker.RemoveMealEntry(ctx, entry.ID))

	log, err := env.tracker.GetDailyLog(ctx, "2026-08-24")
	require.NoError(t, err)
	assert.Equal(t, 0, log.WaterMl)
}

func TestTrackerService_AddWater_ClampsAtZero(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	log, err := env.tracker.AddWater(ctx, "2026-08-24", 300)
	require.NoError(t, err)
	assert.Equal(t, 300, log.WaterMl)

	log, err = env.tracker.AddWater(ctx, "2026-08-24", -500)
	require.NoError(t, err)
	assert.Equal(t, 0, log.WaterMl)
}

func TestTrackerService_ResetWater_DetachesEntryWater(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	input := mealInput("Tea", 0)
	input.WaterMl = 200

	entry, err := env.tracker.AddMealEntry(ctx, "2026-08-24", input)
	require.NoError(t, err)

	log, err := env.tracker.ResetWater(ctx, "2026-08-24")
	require.NoError(t, err)
	assert.Equal(t, 0, log.WaterMl)

	// New water after the reset must survive deleting the old entry.
	_, err = env.tracker.AddWater(ctx, "2026-08-24", 500)
	require.NoError(t, err)
	require.NoError(t, env.tracker.RemoveMealEntry(ctx, entry.ID))

	log, err = env.tracker.GetDailyLog(ctx, "2026-08-24")
	require.NoError(t, err)
	assert.Equal(t, 500, log.WaterMl)
}

func TestTrackerService_ClearEntryWater(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	input := mealInput("Juice", 2)
	input.WaterMl = 330

	entry, err := env.tracker.AddMealEntry(ctx, "2026-08-24", input)
	require.NoError(t, err)
	require.NoError(t, env.tracker.ClearEntryWater(ctx, entry.ID))

	// The day keeps its water, the entry no longer claims any.
	require.NoError(t, env.tracker.RemoveMealEntry(ctx, entry.ID))

	log, err := env.tracker.GetDailyLog(ctx, "2026-08-24")
	require.NoError(t, err)
	assert.Equal(t, 330, log.WaterMl)
}

func TestTrackerService_WeeklyOverageCache(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.tracker.SaveProfile(ctx, &entity.UserProfile{Name: "Sam", DailyPointsBudget: 10})
	require.NoError(t, err)

	// Monday 4 over budget, Tuesday exactly on budget.
	_, err = env.tracker.AddMealEntry(ctx, "2026-08-24", mealInput("Feast", 14))
	require.NoError(t, err)
	_, err = env.tracker.AddMealEntry(ctx, "2026-08-25", mealInput("Dinner", 10))
	require.NoError(t, err)

	monday, err := env.tracker.GetDailyLog(ctx, "2026-08-24")
	require.NoError(t, err)
	assert.InDelta(t, 4.0, monday.WeeklyPointsUsed, 0.001)

	tuesday, err := env.tracker.GetDailyLog(ctx, "2026-08-25")
	require.NoError(t, err)
	assert.InDelta(t, 4.0, tuesday.WeeklyPointsUsed, 0.001)
}

func TestTrackerService_SaveCustomFood_ForcesUserSource(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	food, err := env.tracker.SaveCustomFood(ctx, &entity.FoodItem{Name: "Grandma's Soup", Source: entity.SourceNevo})
	require.NoError(t, err)
	assert.Equal(t, entity.SourceUser, food.Source)
	assert.NotZero(t, food.ID)

	_, err = env.tracker.SaveCustomFood(ctx, &entity.FoodItem{})
	require.Error(t, err)
}

func TestTrackerService_ToggleFavorite(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	food, err := env.tracker.SaveCustomFood(ctx, &entity.FoodItem{Name: "Apple"})
	require.NoError(t, err)

	toggled, err := env.tracker.ToggleFavorite(ctx, food.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsFavorite)

	favorites, err := env.tracker.GetFavoriteFoods(ctx)
	require.NoError(t, err)
	require.Len(t, favorites, 1)

	toggled, err = env.tracker.ToggleFavorite(ctx, food.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsFavorite)
}

func TestTrackerService_CopyDayEntries(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.tracker.AddMealEntry(ctx, "2026-08-24", mealInput("Oats", 4))
	require.NoError(t, err)
	_, err = env.tracker.AddMealEntry(ctx, "2026-08-24", mealInput("Yogurt", 2))
	require.NoError(t, err)

	copied, err := env.tracker.CopyDayEntries(ctx, "2026-08-24", "2026-08-25")
	require.NoError(t, err)
	assert.Len(t, copied, 2)

	log, err := env.tracker.GetDailyLog(ctx, "2026-08-25")
	require.NoError(t, err)
	assert.InDelta(t, 6.0, log.TotalPointsUsed, 0.001)

	// Copying from an empty date is a no-op.
	copied, err = env.tracker.CopyDayEntries(ctx, "2026-01-01", "2026-08-26")
	require.NoError(t, err)
	assert.Empty(t, copied)
}

func TestTrackerService_GetRecentFoods_UniqueByName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	saved, err := env.tracker.SaveCustomFood(ctx, &entity.FoodItem{Name: "Apple"})
	require.NoError(t, err)

	_, err = env.tracker.AddMealEntry(ctx, "2026-08-24", mealInput("apple", 1))
	require.NoError(t, err)
	_, err = env.tracker.AddMealEntry(ctx, "2026-08-24", mealInput("Apple", 1))
	require.NoError(t, err)
	_, err = env.tracker.AddMealEntry(ctx, "2026-08-24", mealInput("Bread", 3))
	require.NoError(t, err)

	foods, err := env.tracker.GetRecentFoods(ctx, 10)
	require.NoError(t, err)
	require.Len(t, foods, 2)

	// The library record backs the snapshot when names match.
	for _, food := range foods {
		if food.Name == "Apple" {
			assert.Equal(t, saved.ID, food.ID)
		}
	}
}

func TestTrackerService_OfflineMutationsSkipPush(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.tracker.AddMealEntry(ctx, "2026-08-24", mealInput("Oats", 4))
	require.NoError(t, err)

	env.dispatcher.Wait()

	days, err := env.remote.ListDays(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, days)
}

func TestTrackerService_MutationPushesDayWhenSignedIn(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.signIn("user-1")

	_, err := env.tracker.AddMealEntry(ctx, "2026-08-24", mealInput("Oats", 4))
	require.NoError(t, err)

	env.dispatcher.Wait()

	days, err := env.remote.ListDays(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, "2026-08-24", days[0].Date)
	assert.InDelta(t, 4.0, days[0].TotalPointsUsed, 0.001)
	require.Len(t, days[0].Meals, 1)
	assert.Equal(t, "Oats", days[0].Meals[0].FoodItem.Name)
}

func TestTrackerService_UpdateWeight_StampsProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	saved, err := env.tracker.SaveProfile(ctx, &entity.UserProfile{Name: "Sam", CurrentWeightKg: 82})
	require.NoError(t, err)

	updated, err := env.tracker.UpdateWeight(ctx, 80.5)
	require.NoError(t, err)
	assert.InDelta(t, 80.5, updated.CurrentWeightKg, 0.001)
	assert.False(t, updated.UpdatedAt.Before(saved.UpdatedAt))
}

func TestTrackerService_LogWeight_ReplacesSameDate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.tracker.LogWeight(ctx, "2026-08-24", 81.0, "")
	require.NoError(t, err)
	_, err = env.tracker.LogWeight(ctx, "2026-08-24", 80.2, "after run")
	require.NoError(t, err)

	entry, err := env.weights.FindByDate(ctx, "2026-08-24")
	require.NoError(t, err)
	assert.InDelta(t, 80.2, entry.WeightKg, 0.001)
	assert.Equal(t, "after run", entry.Note)
}

func TestTrackerService_RemoveWeight_DeletesRemoteToo(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.signIn("user-1")

	_, err := env.tracker.LogWeight(ctx, "2026-08-24", 81.0, "")
	require.NoError(t, err)
	env.dispatcher.Wait()

	remoteWeights, err := env.remote.ListWeights(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, remoteWeights, 1)

	require.NoError(t, env.tracker.RemoveWeight(ctx, "2026-08-24"))
	env.dispatcher.Wait()

	remoteWeights, err = env.remote.ListWeights(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, remoteWeights)
}
