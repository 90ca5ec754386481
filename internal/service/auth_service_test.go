package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"foolivery/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService() *AuthService {
	return NewAuthService(store.NewMemoryStore(), NewPasswordVerifier(bcrypt.MinCost))
}

func TestPasswordVerifier_RoundTrip(t *testing.T) {
	p := NewPasswordVerifier(bcrypt.MinCost)

	hash, err := p.Hash("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	assert.True(t, p.Verify("secret1", hash))
	assert.False(t, p.Verify("secret2", hash))
	assert.False(t, p.Verify("", hash))
	assert.False(t, p.Verify("secret1", "not-a-hash"))
}

func TestPasswordVerifier_SaltsEachHash(t *testing.T) {
	p := NewPasswordVerifier(bcrypt.MinCost)

	h1, err := p.Hash("secret1")
	require.NoError(t, err)
	h2, err := p.Hash("secret1")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}

func TestNewPasswordVerifier_ClampsCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewPasswordVerifier(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewPasswordVerifier(99).cost)
	assert.Equal(t, 12, NewPasswordVerifier(12).cost)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestAuthService()
	ctx := context.Background()

	user, err := svc.Register(ctx, &Credentials{Username: "alice", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "alice", user.Username)

	loggedIn, err := svc.Login(ctx, &Credentials{Username: "alice", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	byCase, err := svc.Login(ctx, &Credentials{Username: "ALICE", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, byCase.ID)
}

func TestRegister_DuplicateIgnoresCase(t *testing.T) {
	svc := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, &Credentials{Username: "alice", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &Credentials{Username: "Alice", Password: "another1"})
	assert.ErrorIs(t, err, ErrDuplicateUsername)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestRegister_Validation(t *testing.T) {
	svc := newTestAuthService()
	ctx := context.Background()

	tests := []struct {
		name  string
		creds Credentials
		field string
	}{
		{"short username", Credentials{Username: "al", Password: "secret1"}, "username"},
		{"long username", Credentials{Username: strings.Repeat("a", 51), Password: "secret1"}, "username"},
		{"short password", Credentials{Username: "alice", Password: "abc"}, "password"},
		{"missing password", Credentials{Username: "alice"}, "password"},
		{"multibyte password over 72 bytes", Credentials{Username: "alice", Password: strings.Repeat("é", 40)}, "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds := tt.creds
			_, err := svc.Register(ctx, &creds)
			require.Error(t, err)

			var serr *Error
			require.True(t, errors.As(err, &serr))
			assert.Equal(t, KindValidation, serr.Kind)
			assert.Contains(t, serr.Fields, tt.field)
			assert.NotErrorIs(t, err, ErrDuplicateUsername)
		})
	}
}

func TestRegister_MultibytePasswordWithinLimit(t *testing.T) {
	svc := newTestAuthService()
	ctx := context.Background()
	password := strings.Repeat("é", 36)

	_, err := svc.Register(ctx, &Credentials{Username: "carol", Password: password})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &Credentials{Username: "carol", Password: password})
	assert.NoError(t, err)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, &Credentials{Username: "alice", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &Credentials{Username: "alice", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, &Credentials{Username: "nobody", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, &Credentials{})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, KindUnauthenticated, KindOf(err))
}

func TestProfile(t *testing.T) {
	svc := newTestAuthService()
	ctx := context.Background()

	user, err := svc.Register(ctx, &Credentials{Username: "alice", Password: "secret1"})
	require.NoError(t, err)

	profile, err := svc.Profile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, *user, *profile)

	_, err = svc.Profile(ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Profile(ctx, 0)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.Equal(t, KindForbidden, KindOf(forbidden("nope")))
	assert.Equal(t, KindNotFound, KindOf(notFound("gone")))
	assert.ErrorIs(t, internal("Error retrieving order", errors.New("boom")), ErrInternal)
	assert.NotErrorIs(t, notFound("gone"), ErrInternal)
	assert.Equal(t, "not_found", KindNotFound.String())
}
