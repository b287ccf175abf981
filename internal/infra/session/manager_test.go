package session

import (
	"testing"

	"bodybalance/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_SignInAndOut(t *testing.T) {
	mgr := NewManager()

	_, signedIn := mgr.Current()
	require.False(t, signedIn)

	mgr.SignIn(service.Identity{UserID: "uid-1", Email: "sam@example.com"})

	identity, signedIn := mgr.Current()
	require.True(t, signedIn)
	assert.Equal(t, "uid-1", identity.UserID)

	mgr.SignOut()

	identity, signedIn = mgr.Current()
	assert.False(t, signedIn)
	assert.Empty(t, identity.UserID)
}

func TestManager_NotifiesSubscribersUntilUnsubscribed(t *testing.T) {
	mgr := NewManager()

	var events []bool
	unsubscribe := mgr.OnChange(func(_ service.Identity, signedIn bool) {
		events = append(events, signedIn)
	})

	mgr.SignIn(service.Identity{UserID: "uid-1"})
	mgr.SignOut()

	unsubscribe()
	mgr.SignIn(service.Identity{UserID: "uid-2"})

	assert.Equal(t, []bool{true, false}, events)
}
