package service

import "context"

// Identity is the authenticated remote identity a device syncs under.
type Identity struct {
	UserID string // Stable remote user id (Firebase UID).
	Email  string
}

// SessionProvider supplies the current authenticated identity, if any, and
// notifies subscribers on sign-in and sign-out. The sync pipelines never
// consult it directly; the session activation state machine passes the
// identity down explicitly.
type SessionProvider interface {
	// Current returns the active identity and whether one exists.
	Current() (Identity, bool)

	// OnChange registers a callback invoked on every identity transition.
	// The returned function unsubscribes the callback.
	OnChange(fn func(identity Identity, signedIn bool)) (unsubscribe func())
}

// SessionController extends SessionProvider with the transitions the
// session activation flow drives. Only the activation flow signs identities
// in and out; everything else observes through SessionProvider.
type SessionController interface {
	SessionProvider

	// SignIn records the identity and notifies subscribers.
	SignIn(identity Identity)

	// SignOut clears the identity and notifies subscribers.
	SignOut()
}

// TokenVerifier resolves a client-issued ID token to a verified identity.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (Identity, error)
}
