package view_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/mdineen/outgo/cmd/tui/internal/view"
	"github.com/mdineen/outgo/internal/auth"
)

func sessionWithUser(t *testing.T, email, password string) *auth.Session {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	stored := &auth.User{ID: uuid.New(), Email: email, PasswordHash: hash}

	repo := auth.NewMockRepository(ctrl)
	repo.EXPECT().
		GetUserByEmail(gomock.Any(), email).
		Return(stored, nil).
		AnyTimes()

	return auth.NewSession(auth.NewService(repo, []byte("test-secret"), time.Hour))
}

func nextChange(t *testing.T, g *view.Gate) view.AccountChangedMsg {
	t.Helper()

	msg, ok := g.Watch()().(view.AccountChangedMsg)
	require.True(t, ok)

	return msg
}

func TestGate_StartsPendingThenResolvesSignedOut(t *testing.T) {
	s := sessionWithUser(t, "user@example.com", "hunter22")

	g := view.NewGate(s)
	defer g.Close()

	assert.Equal(t, view.GatePending, g.State())

	// The session fires the subscription callback immediately, so the first
	// watched message carries the initial (signed out) state.
	msg := nextChange(t, g)
	assert.Nil(t, msg.Account)
	assert.Equal(t, view.GateSignedOut, g.Apply(msg))
}

func TestGate_SignInAndOutFlowThrough(t *testing.T) {
	s := sessionWithUser(t, "user@example.com", "hunter22")

	g := view.NewGate(s)
	defer g.Close()

	g.Apply(nextChange(t, g))

	acct, err := s.SignIn(context.Background(), "user@example.com", "hunter22")
	require.NoError(t, err)

	msg := nextChange(t, g)
	assert.Equal(t, acct, msg.Account)
	assert.Equal(t, view.GateSignedIn, g.Apply(msg))

	s.SignOut()

	msg = nextChange(t, g)
	assert.Nil(t, msg.Account)
	assert.Equal(t, view.GateSignedOut, g.Apply(msg))
}

func TestGate_CloseStopsDeliveries(t *testing.T) {
	s := sessionWithUser(t, "user@example.com", "hunter22")

	g := view.NewGate(s)
	g.Apply(nextChange(t, g))
	g.Close()

	_, err := s.SignIn(context.Background(), "user@example.com", "hunter22")
	require.NoError(t, err)

	// No subscription left; the state stays where Apply left it.
	assert.Equal(t, view.GateSignedOut, g.State())
}
