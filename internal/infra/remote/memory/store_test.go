package memory

import (
	"context"
	"testing"

	"bodybalance/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_IsolatesUsers(t *testing.T) {
	store := New()
	ctx := context.Background()

	require.NoError(t, store.SetDay(ctx, "alice", "2026-08-24", &service.DayDocument{Date: "2026-08-24"}))

	days, err := store.ListDays(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, days)

	days, err = store.ListDays(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, days, 1)
}

func TestStore_GetProfileNotFound(t *testing.T) {
	store := New()

	_, err := store.GetProfile(context.Background(), "alice")
	require.ErrorIs(t, err, service.ErrDocumentNotFound)
}

func TestStore_SetOverwritesWholeDocument(t *testing.T) {
	store := New()
	ctx := context.Background()

	require.NoError(t, store.SetDay(ctx, "alice", "2026-08-24", &service.DayDocument{
		Date:  "2026-08-24",
		Meals: []service.MealDocument{{Points: 4}},
	}))
	require.NoError(t, store.SetDay(ctx, "alice", "2026-08-24", &service.DayDocument{Date: "2026-08-24", WaterMl: 500}))

	days, err := store.ListDays(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Empty(t, days[0].Meals)
	assert.Equal(t, 500, days[0].WaterMl)
}

func TestStore_DeleteWeightIsIdempotent(t *testing.T) {
	store := New()
	ctx := context.Background()

	require.NoError(t, store.DeleteWeight(ctx, "alice", "2026-08-24"))

	require.NoError(t, store.SetWeight(ctx, "alice", "2026-08-24", &service.WeightDocument{Date: "2026-08-24", WeightKg: 80}))
	require.NoError(t, store.DeleteWeight(ctx, "alice", "2026-08-24"))

	weights, err := store.ListWeights(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, weights)
}

func TestStore_ReturnsCopies(t *testing.T) {
	store := New()
	ctx := context.Background()

	require.NoError(t, store.SetProfile(ctx, "alice", &service.ProfileDocument{Name: "Sam"}))

	doc, err := store.GetProfile(ctx, "alice")
	require.NoError(t, err)
	doc.Name = "Mutated"

	fresh, err := store.GetProfile(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Sam", fresh.Name)
}
