// Package session tracks the signed-in identity and fans out change
// notifications to subscribers.
package session

import (
	"sync"

	"bodybalance/internal/domain/service"

	"github.com/google/uuid"
)

// Manager implements service.SessionProvider. It holds the current identity
// behind a mutex and invokes subscriber callbacks synchronously on every
// sign-in and sign-out.
type Manager struct {
	mu          sync.Mutex
	current     service.Identity
	signedIn    bool
	subscribers map[string]func(identity service.Identity, signedIn bool)
}

// NewManager is the constructor for Manager.
func NewManager() *Manager {
	return &Manager{
		subscribers: make(map[string]func(identity service.Identity, signedIn bool)),
	}
}

// Current returns the active identity and whether one exists.
func (m *Manager) Current() (service.Identity, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.current, m.signedIn
}

// OnChange registers a callback invoked on every identity transition.
func (m *Manager) OnChange(fn func(identity service.Identity, signedIn bool)) (unsubscribe func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := uuid.NewString()
	m.subscribers[key] = fn

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()

		delete(m.subscribers, key)
	}
}

// SignIn records the identity and notifies subscribers.
func (m *Manager) SignIn(identity service.Identity) {
	m.mu.Lock()
	m.current = identity
	m.signedIn = true
	subs := m.snapshot()
	m.mu.Unlock()

	for _, fn := range subs {
		fn(identity, true)
	}
}

// SignOut clears the identity and notifies subscribers.
func (m *Manager) SignOut() {
	m.mu.Lock()
	m.current = service.Identity{}
	m.signedIn = false
	subs := m.snapshot()
	m.mu.Unlock()

	for _, fn := range subs {
		fn(service.Identity{}, false)
	}
}

// snapshot copies the subscriber set so callbacks run outside the lock.
func (m *Manager) snapshot() []func(identity service.Identity, signedIn bool) {
	subs := make([]func(identity service.Identity, signedIn bool), 0, len(m.subscribers))
	for _, fn := range m.subscribers {
		subs = append(subs, fn)
	}

	return subs
}
