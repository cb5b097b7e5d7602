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

func newService(repo auth.Repository) *auth.Service {
	return auth.NewService(repo, []byte("test-secret"), time.Hour)
}

func TestService_SignUp(t *testing.T) {
	type args struct {
		email    string
		password string
	}

	type testCase struct {
		name     string
		args     args
		setup    func(m *auth.MockRepository)
		wantCode auth.ErrorCode
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{email: "User@Example.com", password: "hunter22"},
			setup: func(m *auth.MockRepository) {
				m.EXPECT().
					CreateUser(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, u *auth.User) error {
						// Email is normalized before it reaches the store.
						assert.Equal(t, "user@example.com", u.Email)
						assert.NotEmpty(t, u.PasswordHash)
						u.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name:     "InvalidEmail",
			args:     args{email: "not-an-email", password: "hunter22"},
			wantCode: auth.CodeInvalidEmail,
		},
		{
			name:     "WeakPassword",
			args:     args{email: "user@example.com", password: "short"},
			wantCode: auth.CodeWeakPassword,
		},
		{
			name: "EmailTaken",
			args: args{email: "user@example.com", password: "hunter22"},
			setup: func(m *auth.MockRepository) {
				m.EXPECT().
					CreateUser(gomock.Any(), gomock.Any()).
					Return(auth.ErrEmailTaken)
			},
			wantCode: auth.CodeEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := auth.NewMockRepository(ctrl)
			if tt.setup != nil {
				tt.setup(repo)
			}

			svc := newService(repo)
			got, err := svc.SignUp(context.Background(), tt.args.email, tt.args.password)

			if tt.wantCode != "" {
				var aerr *auth.Error
				require.ErrorAs(t, err, &aerr)
				assert.Equal(t, tt.wantCode, aerr.Code)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, "user@example.com", got.Email)
		})
	}
}

func TestService_SignIn(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)

	stored := &auth.User{ID: uuid.New(), Email: "user@example.com", PasswordHash: hash}

	type testCase struct {
		name     string
		email    string
		password string
		setup    func(m *auth.MockRepository)
		wantCode auth.ErrorCode
	}

	tests := []testCase{
		{
			name:     "Success",
			email:    "USER@example.com",
			password: "hunter22",
			setup: func(m *auth.MockRepository) {
				m.EXPECT().
					GetUserByEmail(gomock.Any(), "user@example.com").
					Return(stored, nil)
			},
		},
		{
			name:     "WrongPassword",
			email:    "user@example.com",
			password: "wrong",
			setup: func(m *auth.MockRepository) {
				m.EXPECT().
					GetUserByEmail(gomock.Any(), "user@example.com").
					Return(stored, nil)
			},
			wantCode: auth.CodeInvalidCredentials,
		},
		{
			name:     "UnknownEmail",
			email:    "nobody@example.com",
			password: "hunter22",
			setup: func(m *auth.MockRepository) {
				m.EXPECT().
					GetUserByEmail(gomock.Any(), "nobody@example.com").
					Return(nil, auth.ErrUserNotFound)
			},
			wantCode: auth.CodeUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := auth.NewMockRepository(ctrl)
			tt.setup(repo)

			svc := newService(repo)
			got, err := svc.SignIn(context.Background(), tt.email, tt.password)

			if tt.wantCode != "" {
				var aerr *auth.Error
				require.ErrorAs(t, err, &aerr)
				assert.Equal(t, tt.wantCode, aerr.Code)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, stored.ID, got.ID)
		})
	}
}

func TestService_TokenRoundTrip(t *testing.T) {
	svc := newService(nil)
	acct := &auth.Account{ID: uuid.New(), Email: "user@example.com"}

	token, err := svc.IssueToken(acct)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, acct.ID, got.ID)
	assert.Equal(t, acct.Email, got.Email)
}

func TestService_VerifyToken_RejectsGarbageAndWrongKey(t *testing.T) {
	svc := newService(nil)

	_, err := svc.VerifyToken("not-a-token")
	assert.Error(t, err)

	other := auth.NewService(nil, []byte("other-secret"), time.Hour)
	token, err := other.IssueToken(&auth.Account{ID: uuid.New()})
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	assert.Error(t, err)
}

func TestFriendly_TotalOverCodes(t *testing.T) {
	codes := []auth.ErrorCode{
		auth.CodeInvalidCredentials,
		auth.CodeUserNotFound,
		auth.CodeEmailTaken,
		auth.CodeWeakPassword,
		auth.CodeInvalidEmail,
		auth.CodeUnknown,
		auth.ErrorCode("auth/some-future-code"),
	}

	for _, code := range codes {
		assert.NotEmpty(t, auth.Friendly(code), "code %q must map to display text", code)
	}

	// Unmapped codes fall back to the generic message.
	assert.Equal(t, auth.Friendly(auth.CodeUnknown), auth.Friendly(auth.ErrorCode("auth/some-future-code")))
}
