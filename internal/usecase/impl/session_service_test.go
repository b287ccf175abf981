package impl

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"bodybalance/internal/domain/entity"
	"bodybalance/internal/domain/service"
	"bodybalance/internal/infra/remote/memory"
	"bodybalance/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessionService(env *testEnv, verifier service.TokenVerifier) usecase.SessionUsecase {
	return NewSessionService(verifier, env.sessions, env.pull, env.push, env.dispatcher, slog.New(slog.DiscardHandler))
}

func okVerifier(userID string) *fakeVerifier {
	return &fakeVerifier{identity: service.Identity{UserID: userID, Email: userID + "@example.com"}}
}

func TestSessionService_LoginRunsInitialSyncOnce(t *testing.T) {
	env := newTestEnv(t)
	svc := newTestSessionService(env, okVerifier("user-1"))

	var (
		mu     sync.Mutex
		states []usecase.ActivationState
	)
	unsubscribe := svc.Watch(func(state usecase.ActivationState) {
		mu.Lock()
		states = append(states, state)
		mu.Unlock()
	})
	defer unsubscribe()

	identity, err := svc.Login(context.Background(), "token")
	require.NoError(t, err)
	assert.Equal(t, "user-1", identity.UserID)

	env.dispatcher.Wait()
	assert.Equal(t, usecase.StateSynced, svc.State())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []usecase.ActivationState{
		usecase.StateActivating,
		usecase.StateSyncingInitial,
		usecase.StateSynced,
	}, states)

	current, signedIn := env.sessions.Current()
	assert.True(t, signedIn)
	assert.Equal(t, "user-1", current.UserID)
}

func TestSessionService_SecondLoginIsRejected(t *testing.T) {
	env := newTestEnv(t)
	svc := newTestSessionService(env, okVerifier("user-1"))

	_, err := svc.Login(context.Background(), "token")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "token")
	require.Error(t, err)

	env.dispatcher.Wait()
}

func TestSessionService_FailedVerificationResetsState(t *testing.T) {
	env := newTestEnv(t)
	svc := newTestSessionService(env, &fakeVerifier{err: errors.New("invalid token")})

	_, err := svc.Login(context.Background(), "bad-token")
	require.Error(t, err)
	assert.Equal(t, usecase.StateUnauthenticated, svc.State())

	_, signedIn := env.sessions.Current()
	assert.False(t, signedIn)
}

func TestSessionService_EmptyRemoteGetsSeededFromLocal(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.tracker.AddMealEntry(ctx, "2026-08-24", mealInput("Oats", 4))
	require.NoError(t, err)

	svc := newTestSessionService(env, okVerifier("user-1"))
	_, err = svc.Login(ctx, "token")
	require.NoError(t, err)
	env.dispatcher.Wait()

	days, err := env.remote.ListDays(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, "2026-08-24", days[0].Date)
}

func TestSessionService_RemoteDataIsPulledOnLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.remote.SetDay(ctx, "user-1", "2026-08-24", &service.DayDocument{
		Date:            "2026-08-24",
		TotalPointsUsed: 9,
		Meals:           []service.MealDocument{{FoodItem: service.FoodSnapshot{Name: "Remote Meal"}, Points: 9}},
	}))

	svc := newTestSessionService(env, okVerifier("user-1"))
	_, err := svc.Login(ctx, "token")
	require.NoError(t, err)
	env.dispatcher.Wait()

	log, err := env.logs.FindByDate(ctx, "2026-08-24")
	require.NoError(t, err)
	assert.InDelta(t, 9.0, log.TotalPointsUsed, 0.001)
}

func TestSessionService_UnreachableRemoteStillCompletesSync(t *testing.T) {
	env := newTestEnvWithRemote(t, failingRemote{})
	ctx := context.Background()

	_, err := env.tracker.AddMealEntry(ctx, "2026-08-24", mealInput("Oats", 4))
	require.NoError(t, err)

	svc := newTestSessionService(env, okVerifier("user-1"))
	_, err = svc.Login(ctx, "token")
	require.NoError(t, err)
	env.dispatcher.Wait()

	// The device keeps working on local data.
	assert.Equal(t, usecase.StateSynced, svc.State())

	log, err := env.logs.FindByDate(ctx, "2026-08-24")
	require.NoError(t, err)
	assert.InDelta(t, 4.0, log.TotalPointsUsed, 0.001)
}

func TestSessionService_LogoutRetainsLocalData(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.tracker.SaveProfile(ctx, &entity.UserProfile{Name: "Sam"})
	require.NoError(t, err)

	svc := newTestSessionService(env, okVerifier("user-1"))
	_, err = svc.Login(ctx, "token")
	require.NoError(t, err)
	env.dispatcher.Wait()

	require.NoError(t, svc.Logout(ctx))
	assert.Equal(t, usecase.StateUnauthenticated, svc.State())

	_, signedIn := env.sessions.Current()
	assert.False(t, signedIn)

	profile, err := env.profiles.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Sam", profile.Name)

	// A fresh login is possible after logout.
	_, err = svc.Login(ctx, "token")
	require.NoError(t, err)
	env.dispatcher.Wait()
	assert.Equal(t, usecase.StateSynced, svc.State())
}

func TestSessionService_LogoutDuringInitialSyncStaysUnauthenticated(t *testing.T) {
	remote := &gatedRemote{Store: memory.New(), gate: make(chan struct{})}
	env := newTestEnvWithRemote(t, remote)
	svc := newTestSessionService(env, okVerifier("user-1"))
	ctx := context.Background()

	_, err := svc.Login(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, usecase.StateSyncingInitial, svc.State())

	// Log out while the initial pull is still blocked on the remote.
	require.NoError(t, svc.Logout(ctx))
	assert.Equal(t, usecase.StateUnauthenticated, svc.State())

	close(remote.gate)
	env.dispatcher.Wait()

	// The stale sync completion must not resurrect the session.
	assert.Equal(t, usecase.StateUnauthenticated, svc.State())
	_, signedIn := env.sessions.Current()
	assert.False(t, signedIn)

	// A fresh login still works after the stale sync drained.
	_, err = svc.Login(ctx, "token")
	require.NoError(t, err)
	env.dispatcher.Wait()
	assert.Equal(t, usecase.StateSynced, svc.State())
}

func TestSessionService_LogoutWhenSignedOutIsNoOp(t *testing.T) {
	env := newTestEnv(t)
	svc := newTestSessionService(env, okVerifier("user-1"))

	require.NoError(t, svc.Logout(context.Background()))
	assert.Equal(t, usecase.StateUnauthenticated, svc.State())
}
