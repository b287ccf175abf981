package impl

import (
	"context"
	"sync"
	"testing"
	"time"

	"bodybalance/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pushUser = "user-1"

func TestPushService_PushProfile_StripsLocalOnlyFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.push.PushProfile(ctx, pushUser, &entity.UserProfile{
		ID:        3,
		Name:      "Sam",
		AIAPIKey:  "sk-local-secret",
		UpdatedAt: time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC),
	})
	env.dispatcher.Wait()

	doc, err := env.remote.GetProfile(ctx, pushUser)
	require.NoError(t, err)
	assert.Equal(t, "Sam", doc.Name)
	assert.Equal(t, "2026-08-24T10:00:00Z", doc.UpdatedAt)
}

func TestPushService_PushProfile_DefaultsMissingUpdatedAt(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.push.PushProfile(ctx, pushUser, &entity.UserProfile{Name: "Sam"})
	env.dispatcher.Wait()

	doc, err := env.remote.GetProfile(ctx, pushUser)
	require.NoError(t, err)
	assert.NotEmpty(t, doc.UpdatedAt)
}

func TestPushService_PushDay_MissingLogIsNoOp(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.push.PushDay(ctx, pushUser, "2026-08-24")
	env.dispatcher.Wait()

	days, err := env.remote.ListDays(ctx, pushUser)
	require.NoError(t, err)
	assert.Empty(t, days)
}

func TestPushService_PushDay_FlattensSnapshots(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	input := mealInput("Oats", 4)
	input.Food.Unit = "" // unsanitized snapshot from an older record
	_, err := env.tracker.AddMealEntry(ctx, "2026-08-24", input)
	require.NoError(t, err)

	env.push.PushDay(ctx, pushUser, "2026-08-24")
	env.dispatcher.Wait()

	days, err := env.remote.ListDays(ctx, pushUser)
	require.NoError(t, err)
	require.Len(t, days, 1)
	require.Len(t, days[0].Meals, 1)

	meal := days[0].Meals[0]
	assert.Equal(t, "g", meal.FoodItem.Unit)
	assert.EqualValues(t, 1, meal.Quantity)
	assert.NotEmpty(t, days[0].UpdatedAt)
}

func TestPushService_PushFood_SkipsCatalogFoods(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.push.PushFood(ctx, pushUser, &entity.FoodItem{ID: 1, Name: "Catalog Item", Source: entity.SourceNevo})
	env.push.PushFood(ctx, pushUser, &entity.FoodItem{Name: "Unsaved", Source: entity.SourceUser})
	env.push.PushFood(ctx, pushUser, &entity.FoodItem{ID: 2, Name: "Mine", Source: entity.SourceUser})
	env.dispatcher.Wait()

	foods, err := env.remote.ListFoods(ctx, pushUser)
	require.NoError(t, err)
	require.Len(t, foods, 1)
	assert.Equal(t, "Mine", foods[0].Name)
}

func TestPushService_FireAndForgetSwallowsRemoteFailures(t *testing.T) {
	env := newTestEnvWithRemote(t, failingRemote{})
	ctx := context.Background()
	env.signIn(pushUser)

	var (
		mu       sync.Mutex
		reported []string
	)
	env.dispatcher.OnError(func(task string, err error) {
		assert.ErrorIs(t, err, errRemoteDown)

		mu.Lock()
		reported = append(reported, task)
		mu.Unlock()
	})

	// The mutation itself must succeed even though every push fails.
	_, err := env.tracker.AddMealEntry(ctx, "2026-08-24", mealInput("Oats", 4))
	require.NoError(t, err)
	_, err = env.tracker.LogWeight(ctx, "2026-08-24", 80, "")
	require.NoError(t, err)

	env.dispatcher.Wait()
	assert.Len(t, reported, 2)

	log, err := env.logs.FindByDate(ctx, "2026-08-24")
	require.NoError(t, err)
	assert.InDelta(t, 4.0, log.TotalPointsUsed, 0.001)
}

func TestPushService_PushAll_UploadsEverything(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.tracker.SaveProfile(ctx, &entity.UserProfile{Name: "Sam"})
	require.NoError(t, err)
	_, err = env.tracker.AddMealEntry(ctx, "2026-08-23", mealInput("Oats", 4))
	require.NoError(t, err)
	_, err = env.tracker.AddMealEntry(ctx, "2026-08-24", mealInput("Rice", 6))
	require.NoError(t, err)
	_, err = env.tracker.LogWeight(ctx, "2026-08-24", 80, "")
	require.NoError(t, err)
	_, err = env.tracker.SaveCustomFood(ctx, &entity.FoodItem{Name: "My Bread"})
	require.NoError(t, err)

	require.NoError(t, env.push.PushAll(ctx, pushUser))

	days, err := env.remote.ListDays(ctx, pushUser)
	require.NoError(t, err)
	assert.Len(t, days, 2)

	weights, err := env.remote.ListWeights(ctx, pushUser)
	require.NoError(t, err)
	assert.Len(t, weights, 1)

	foods, err := env.remote.ListFoods(ctx, pushUser)
	require.NoError(t, err)
	assert.Len(t, foods, 1)

	_, err = env.remote.GetProfile(ctx, pushUser)
	require.NoError(t, err)
}

func TestPushService_PushAll_ToleratesRemoteFailures(t *testing.T) {
	env := newTestEnvWithRemote(t, failingRemote{})
	ctx := context.Background()

	_, err := env.tracker.SaveProfile(ctx, &entity.UserProfile{Name: "Sam"})
	require.NoError(t, err)
	_, err = env.tracker.AddMealEntry(ctx, "2026-08-24", mealInput("Oats", 4))
	require.NoError(t, err)

	// Remote rejections are logged and skipped, never returned.
	require.NoError(t, env.push.PushAll(ctx, pushUser))
}
