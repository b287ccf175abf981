package impl

import (
	"context"
	"log/slog"
	"sync"

	"bodybalance/internal/domain/service"
	"bodybalance/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// sessionService implements the SessionUsecase interface as an explicit
// state machine. Login only proceeds from the unauthenticated state, so the
// initial pull (and the conditional seeding push) runs exactly once per
// sign-in no matter how often identity notifications fire. The initial sync
// runs detached; Login never waits for remote traffic.
type sessionService struct {
	verifier   service.TokenVerifier
	sessions   service.SessionController
	pull       usecase.PullUsecase
	push       usecase.PushUsecase
	dispatcher *Dispatcher
	logger     *slog.Logger

	mu         sync.Mutex
	state      usecase.ActivationState
	activation string
	watchers   map[string]func(state usecase.ActivationState)
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(
	verifier service.TokenVerifier,
	sessions service.SessionController,
	pull usecase.PullUsecase,
	push usecase.PushUsecase,
	dispatcher *Dispatcher,
	logger *slog.Logger,
) usecase.SessionUsecase {
	return &sessionService{
		verifier:   verifier,
		sessions:   sessions,
		pull:       pull,
		push:       push,
		dispatcher: dispatcher,
		logger:     logger,
		state:      usecase.StateUnauthenticated,
		watchers:   make(map[string]func(state usecase.ActivationState)),
	}
}

// Login verifies the token, records the identity and starts the initial
// sync in the background.
func (srv *sessionService) Login(ctx context.Context, idToken string) (service.Identity, error) {
	if !srv.transition(usecase.StateUnauthenticated, usecase.StateActivating) {
		return service.Identity{}, errors.New("a session is already active")
	}

	identity, err := srv.verifier.Verify(ctx, idToken)
	if err != nil {
		srv.setState(usecase.StateUnauthenticated)

		return service.Identity{}, errors.Wrap(err, "failed to verify login token")
	}

	activationID := uuid.NewString()
	srv.logger.Info("Session activated", "userID", identity.UserID, "activationID", activationID)

	srv.sessions.SignIn(identity)
	srv.beginSync(activationID)

	srv.dispatcher.Go(ctx, "initial sync "+activationID, func(ctx context.Context) error {
		srv.initialSync(ctx, identity.UserID, activationID)

		return nil
	})

	return identity, nil
}

// initialSync pulls the remote store and, when it turns out to be empty,
// seeds it from local data. A failed pull is treated like an empty remote:
// the sync still completes and the device keeps working on local data.
func (srv *sessionService) initialSync(ctx context.Context, userID, activationID string) {
	found, err := srv.pull.PullAll(ctx, userID)
	if err != nil {
		srv.logger.Warn("Initial pull failed, continuing with local data", "activationID", activationID, "error", err)
		found = false
	}

	if !found {
		if err := srv.push.PushAll(ctx, userID); err != nil {
			srv.logger.Warn("Initial seeding push failed", "activationID", activationID, "error", err)
		}
	}

	if srv.completeSync(activationID) {
		srv.logger.Info("Initial sync finished", "activationID", activationID, "remoteHadData", found)
	} else {
		srv.logger.Info("Initial sync superseded, discarding completion", "activationID", activationID)
	}
}

// Logout clears the identity. Local data is retained.
func (srv *sessionService) Logout(_ context.Context) error {
	srv.mu.Lock()
	if srv.state == usecase.StateUnauthenticated {
		srv.mu.Unlock()

		return nil
	}
	srv.activation = ""
	srv.mu.Unlock()

	srv.sessions.SignOut()
	srv.setState(usecase.StateUnauthenticated)
	srv.logger.Info("Session deactivated")

	return nil
}

// State returns the current activation state.
func (srv *sessionService) State() usecase.ActivationState {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	return srv.state
}

// Watch registers a callback invoked on every state transition.
func (srv *sessionService) Watch(fn func(state usecase.ActivationState)) (unsubscribe func()) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	key := uuid.NewString()
	srv.watchers[key] = fn

	return func() {
		srv.mu.Lock()
		defer srv.mu.Unlock()

		delete(srv.watchers, key)
	}
}

// transition moves from an expected state to the next one atomically. It
// reports false when the machine is not in the expected state, which is the
// guard against concurrent or repeated logins.
func (srv *sessionService) transition(from, to usecase.ActivationState) bool {
	srv.mu.Lock()
	if srv.state != from {
		srv.mu.Unlock()

		return false
	}

	srv.state = to
	watchers := srv.watcherList()
	srv.mu.Unlock()

	for _, fn := range watchers {
		fn(to)
	}

	return true
}

// beginSync marks the activation the detached initial sync belongs to.
func (srv *sessionService) beginSync(activationID string) {
	srv.mu.Lock()
	srv.state = usecase.StateSyncingInitial
	srv.activation = activationID
	watchers := srv.watcherList()
	srv.mu.Unlock()

	for _, fn := range watchers {
		fn(usecase.StateSyncingInitial)
	}
}

// completeSync finishes the initial sync only while its activation is still
// the current one. A logout or a newer login while the sync was in flight
// leaves the state untouched, so a stale completion can never resurrect a
// session or block the next login.
func (srv *sessionService) completeSync(activationID string) bool {
	srv.mu.Lock()
	if srv.state != usecase.StateSyncingInitial || srv.activation != activationID {
		srv.mu.Unlock()

		return false
	}

	srv.state = usecase.StateSynced
	watchers := srv.watcherList()
	srv.mu.Unlock()

	for _, fn := range watchers {
		fn(usecase.StateSynced)
	}

	return true
}

func (srv *sessionService) setState(state usecase.ActivationState) {
	srv.mu.Lock()
	srv.state = state
	watchers := srv.watcherList()
	srv.mu.Unlock()

	for _, fn := range watchers {
		fn(state)
	}
}

// watcherList copies the watcher set so callbacks run outside the lock.
// Callers must hold the mutex.
func (srv *sessionService) watcherList() []func(state usecase.ActivationState) {
	watchers := make([]func(state usecase.ActivationState), 0, len(srv.watchers))
	for _, fn := range srv.watchers {
		watchers = append(watchers, fn)
	}

	return watchers
}
