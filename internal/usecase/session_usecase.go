package usecase

import (
	"context"

	"bodybalance/internal/domain/service"
)

// ActivationState is one phase of the login/sync lifecycle.
type ActivationState string

// Activation states. Login only proceeds from StateUnauthenticated, which
// guarantees the initial sync runs exactly once per sign-in.
const (
	StateUnauthenticated ActivationState = "unauthenticated"
	StateActivating      ActivationState = "activating"
	StateSyncingInitial  ActivationState = "syncing_initial"
	StateSynced          ActivationState = "synced"
)

// SessionUsecase drives the session activation state machine. Login verifies
// the token, records the identity and starts the initial sync in the
// background; it never blocks on remote traffic. Logout clears the identity
// but retains all local data.
type SessionUsecase interface {
	Login(ctx context.Context, idToken string) (service.Identity, error)
	Logout(ctx context.Context) error

	// State returns the current activation state.
	State() ActivationState

	// Watch registers a callback invoked on every state transition. The
	// returned function unsubscribes it.
	Watch(fn func(state ActivationState)) (unsubscribe func())
}
