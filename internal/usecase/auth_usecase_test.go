package usecase

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"skill-directory/internal/domain"
	"skill-directory/internal/pkg/jwt"
	"skill-directory/internal/repository/repotest"
	ucauth "skill-directory/internal/usecase/auth"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type failingTokens struct{ jwt.Service }

func (failingTokens) IssueToken(uuid.UUID) (string, error) { return "", errors.New("signer down") }

func newAuthFixture(t *testing.T) (*Auth, *repotest.Store, *jwt.HMACService) {
	t.Helper()
	store := repotest.NewStore()
	hasher, err := ucauth.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)
	creds, err := ucauth.NewService(store.Users(), hasher)
	require.NoError(t, err)
	tokens, err := jwt.NewHMACService("test-secret", 0)
	require.NoError(t, err)
	return NewAuthUsecase(creds, store.Users(), tokens, log.New(io.Discard, "", 0)), store, tokens
}

func TestAuthLoginAndIdentify(t *testing.T) {
	a, _, _ := newAuthFixture(t)
	ctx := context.Background()

	u, err := a.Register(ctx, "moe", "moe_pw")
	require.NoError(t, err)

	token, err := a.Login(ctx, "moe", "moe_pw")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	for _, header := range []string{token, "Bearer " + token, "bearer " + token, "  " + token + "  "} {
		caller, err := a.IdentifyCaller(ctx, header)
		require.NoError(t, err, header)
		assert.Equal(t, u.ID, caller.ID)
		assert.Equal(t, "moe", caller.Username)
	}
}

func TestAuthLoginFailuresAreUnauthorized(t *testing.T) {
	a, store, _ := newAuthFixture(t)
	ctx := context.Background()
	_, err := a.Register(ctx, "moe", "moe_pw")
	require.NoError(t, err)

	_, err = a.Login(ctx, "moe", "wrong")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = a.Login(ctx, "curly", "moe_pw")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	store.Err = errors.New("db down")
	_, err = a.Login(ctx, "moe", "moe_pw")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthLoginIssueFailure(t *testing.T) {
	a, _, _ := newAuthFixture(t)
	ctx := context.Background()
	_, err := a.Register(ctx, "moe", "moe_pw")
	require.NoError(t, err)

	a.jwt = failingTokens{}
	_, err = a.Login(ctx, "moe", "moe_pw")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestIdentifyCallerRejects(t *testing.T) {
	a, store, tokens := newAuthFixture(t)
	ctx := context.Background()
	u, err := a.Register(ctx, "moe", "moe_pw")
	require.NoError(t, err)
	token, err := tokens.IssueToken(u.ID)
	require.NoError(t, err)

	other, err := jwt.NewHMACService("other-secret", 0)
	require.NoError(t, err)
	foreign, err := other.IssueToken(u.ID)
	require.NoError(t, err)

	ghost, err := tokens.IssueToken(uuid.New())
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing", header: ""},
		{name: "whitespace", header: "   "},
		{name: "bearer only", header: "Bearer "},
		{name: "other scheme", header: "Basic " + token},
		{name: "garbage", header: "not-a-token"},
		{name: "wrong secret", header: foreign},
		{name: "unknown user", header: ghost},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.IdentifyCaller(ctx, tt.header)
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
		})
	}

	t.Run("deleted user", func(t *testing.T) {
		store.Users().Delete(u.ID)
		_, err := a.IdentifyCaller(ctx, token)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestIdentifyCallerStorageFailureIsInternal(t *testing.T) {
	a, store, tokens := newAuthFixture(t)
	ctx := context.Background()
	u, err := a.Register(ctx, "moe", "moe_pw")
	require.NoError(t, err)
	token, err := tokens.IssueToken(u.ID)
	require.NoError(t, err)

	store.Err = errors.New("connection refused")
	_, err = a.IdentifyCaller(ctx, "Bearer "+token)
	assert.ErrorIs(t, err, domain.ErrInternal)
	assert.NotErrorIs(t, err, domain.ErrUnauthorized)

	store.Err = nil
	caller, err := a.IdentifyCaller(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, caller.ID)
}

func TestTokenFromAuthorization(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{in: "abc", want: "abc", wantOK: true},
		{in: "Bearer abc", want: "abc", wantOK: true},
		{in: "BEARER   abc ", want: "abc", wantOK: true},
		{in: "", wantOK: false},
		{in: "Bearer", want: "Bearer", wantOK: true},
		{in: "Token abc", wantOK: false},
		{in: "Bearer a b", wantOK: false},
	}
	for _, tt := range tests {
		got, ok := TokenFromAuthorization(tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
		if tt.wantOK {
			assert.Equal(t, tt.want, got, tt.in)
		}
	}
}
