package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

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

func TestSession_SubscriberSeesCurrentStateImmediately(t *testing.T) {
	s := sessionWithUser(t, "user@example.com", "hunter22")

	var got []*auth.Account

	unsub := s.OnAccountChanged(func(a *auth.Account) {
		got = append(got, a)
	})
	defer unsub()

	// Signed out at subscription time: the callback fires once with nil.
	require.Len(t, got, 1)
	assert.Nil(t, got[0])
}

func TestSession_SignInAndOutNotifySubscribers(t *testing.T) {
	s := sessionWithUser(t, "user@example.com", "hunter22")

	var got []*auth.Account

	unsub := s.OnAccountChanged(func(a *auth.Account) {
		got = append(got, a)
	})
	defer unsub()

	acct, err := s.SignIn(context.Background(), "user@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, acct, s.CurrentAccount())

	s.SignOut()
	assert.Nil(t, s.CurrentAccount())

	require.Len(t, got, 3) // initial nil, signed in, signed out
	assert.Nil(t, got[0])
	assert.Equal(t, acct, got[1])
	assert.Nil(t, got[2])
}

func TestSession_FailedSignInLeavesStateUntouched(t *testing.T) {
	s := sessionWithUser(t, "user@example.com", "hunter22")

	notified := 0

	unsub := s.OnAccountChanged(func(*auth.Account) { notified++ })
	defer unsub()

	_, err := s.SignIn(context.Background(), "user@example.com", "wrong")
	assert.Error(t, err)
	assert.Nil(t, s.CurrentAccount())
	assert.Equal(t, 1, notified) // only the initial delivery
}

func TestSession_UnsubscribeStopsNotifications(t *testing.T) {
	s := sessionWithUser(t, "user@example.com", "hunter22")

	notified := 0
	unsub := s.OnAccountChanged(func(*auth.Account) { notified++ })
	unsub()

	_, err := s.SignIn(context.Background(), "user@example.com", "hunter22")
	require.NoError(t, err)

	assert.Equal(t, 1, notified)
}
