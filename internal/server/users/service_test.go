package users

import (
	"context"
	"testing"
	"time"

	"github.com/akarpov/blogbox/internal/server/auth"
	"github.com/akarpov/blogbox/internal/server/config"
	"github.com/akarpov/blogbox/internal/shared"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	cfg := &config.Config{
		SecretKey:             "test-secret",
		TokenValidityDuration: time.Hour,
	}
	return NewService(NewInMemoryRepository(), cfg)
}

func TestSignupAndLogin(t *testing.T) {
	ctx := context.Background()
	s := newTestService()

	res, err := s.Signup(ctx, "Ann", "Ann@Example.com", "pass1234")
	require.NoError(t, err)
	require.NotEmpty(t, res.User.ID)
	require.Equal(t, "ann@example.com", res.User.Email)
	require.NotEmpty(t, res.Token)

	// token names the new user
	userID, err := auth.GetUserIDFromToken(res.Token, []byte("test-secret"))
	require.NoError(t, err)
	require.Equal(t, res.User.ID, userID)

	login, err := s.Login(ctx, "ann@example.com", "pass1234")
	require.NoError(t, err)
	require.Equal(t, res.User.ID, login.User.ID)
}

func TestSignupValidation(t *testing.T) {
	ctx := context.Background()
	s := newTestService()

	tests := []struct {
		name     string
		userName string
		email    string
		password string
	}{
		{"empty name", "", "a@example.com", "pw"},
		{"empty password", "Ann", "a@example.com", ""},
		{"bad email", "Ann", "not-an-email", "pw"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Signup(ctx, tc.userName, tc.email, tc.password)
			require.ErrorIs(t, err, shared.ErrorValidation)
		})
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	s := newTestService()

	_, err := s.Signup(ctx, "Ann", "ann@example.com", "pw1")
	require.NoError(t, err)

	_, err = s.Signup(ctx, "Other Ann", "ann@example.com", "pw2")
	require.ErrorIs(t, err, shared.ErrorEmailAlreadyExists)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	s := newTestService()

	_, err := s.Signup(ctx, "Ann", "ann@example.com", "correct")
	require.NoError(t, err)

	_, err = s.Login(ctx, "ann@example.com", "wrong")
	require.ErrorIs(t, err, shared.ErrorInvalidEmailPassword)

	_, err = s.Login(ctx, "nobody@example.com", "correct")
	require.ErrorIs(t, err, shared.ErrorInvalidEmailPassword)
}

func TestProfile(t *testing.T) {
	ctx := context.Background()
	s := newTestService()

	res, err := s.Signup(ctx, "Ann", "ann@example.com", "pw")
	require.NoError(t, err)

	user, err := s.Profile(ctx, res.User.ID)
	require.NoError(t, err)
	require.Equal(t, "Ann", user.Name)

	_, err = s.Profile(ctx, "missing-id")
	require.ErrorIs(t, err, shared.ErrorUnauthorized)
}
