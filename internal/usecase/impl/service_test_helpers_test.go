package impl

import (
	"context"
	"log/slog"
	"testing"

	"bodybalance/config"
	"bodybalance/internal/domain/repository"
	"bodybalance/internal/domain/service"
	"bodybalance/internal/infra/persistence/sqlite"
	"bodybalance/internal/infra/remote/memory"
	"bodybalance/internal/infra/session"
	"bodybalance/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// testEnv wires the full local stack against an in-memory database and an
// in-memory remote store.
type testEnv struct {
	db         *gorm.DB
	remote     *memory.Store
	sessions   *session.Manager
	dispatcher *Dispatcher
	txManager  repository.TransactionManager

	profiles repository.ProfileRepository
	foods    repository.FoodRepository
	logs     repository.DailyLogRepository
	meals    repository.MealEntryRepository
	weights  repository.WeightRepository

	push        usecase.PushUsecase
	pull        usecase.PullUsecase
	tracker     usecase.TrackerUsecase
	reports     usecase.ReportsUsecase
	portability usecase.PortabilityUsecase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	return newTestEnvWithRemote(t, memory.New())
}

func newTestEnvWithRemote(t *testing.T, remote service.RemoteStore) *testEnv {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)

	// A unique shared-cache DSN keeps the schema visible across pooled
	// connections while isolating tests from each other.
	db, err := sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared", logger)
	require.NoError(t, err)

	env := &testEnv{
		db:         db,
		sessions:   session.NewManager(),
		dispatcher: NewDispatcher(logger),
		txManager:  sqlite.NewTransactionManager(db),
		profiles:   sqlite.NewProfileRepository(db),
		foods:      sqlite.NewFoodRepository(db),
		logs:       sqlite.NewDailyLogRepository(db),
		meals:      sqlite.NewMealEntryRepository(db),
		weights:    sqlite.NewWeightRepository(db),
	}

	if mem, ok := remote.(*memory.Store); ok {
		env.remote = mem
	}

	env.push = NewPushService(remote, env.dispatcher, env.profiles, env.logs, env.meals, env.weights, env.foods, logger)
	env.pull = NewPullService(remote, env.txManager, logger)
	env.tracker = NewTrackerService(env.txManager, env.sessions, env.push, logger)
	env.reports = NewReportsService(env.txManager, testConfig(), logger)
	env.portability = NewPortabilityService(env.txManager, env.sessions, env.push, env.dispatcher, logger)

	return env
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Sync = &config.SyncConfig{WaterGoalMl: 2000}

	return cfg
}

func (env *testEnv) signIn(userID string) {
	env.sessions.SignIn(service.Identity{UserID: userID, Email: userID + "@example.com"})
}

// --- Test Doubles ---

var errRemoteDown = errors.New("remote store unavailable")

// failingRemote rejects every call, standing in for an unreachable backend.
type failingRemote struct{}

func (failingRemote) SetProfile(context.Context, string, *service.ProfileDocument) error {
	return errRemoteDown
}

func (failingRemote) GetProfile(context.Context, string) (*service.ProfileDocument, error) {
	return nil, errRemoteDown
}

func (failingRemote) SetDay(context.Context, string, string, *service.DayDocument) error {
	return errRemoteDown
}

func (failingRemote) ListDays(context.Context, string) ([]*service.DayDocument, error) {
	return nil, errRemoteDown
}

func (failingRemote) SetWeight(context.Context, string, string, *service.WeightDocument) error {
	return errRemoteDown
}

func (failingRemote) ListWeights(context.Context, string) ([]*service.WeightDocument, error) {
	return nil, errRemoteDown
}

func (failingRemote) DeleteWeight(context.Context, string, string) error {
	return errRemoteDown
}

func (failingRemote) SetFood(context.Context, string, uint, *service.FoodDocument) error {
	return errRemoteDown
}

func (failingRemote) ListFoods(context.Context, string) ([]*service.FoodDocument, error) {
	return nil, errRemoteDown
}

// gatedRemote blocks GetProfile until the gate channel is released, letting
// tests hold a pull in flight. Closing the gate releases all calls.
type gatedRemote struct {
	*memory.Store
	gate chan struct{}
}

func (r *gatedRemote) GetProfile(ctx context.Context, userID string) (*service.ProfileDocument, error) {
	<-r.gate

	return r.Store.GetProfile(ctx, userID)
}

// fakeVerifier resolves any token to a fixed identity, or fails.
type fakeVerifier struct {
	identity service.Identity
	err      error
}

func (v *fakeVerifier) Verify(context.Context, string) (service.Identity, error) {
	if v.err != nil {
		return service.Identity{}, v.err
	}

	return v.identity, nil
}
