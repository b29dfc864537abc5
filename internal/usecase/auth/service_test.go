package auth_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"skill-directory/internal/domain"
	"skill-directory/internal/repository/repotest"
	"skill-directory/internal/usecase/auth"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newService(t *testing.T) (*auth.Service, *repotest.Store) {
	t.Helper()
	store := repotest.NewStore()
	hasher, err := auth.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)
	svc, err := auth.NewService(store.Users(), hasher)
	require.NoError(t, err)
	return svc, store
}

func TestRegisterThenVerify(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "moe", "moe_pw")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, u.ID)
	assert.Equal(t, "moe", u.Username)
	assert.Empty(t, u.PasswordHash)

	stored, err := store.Users().GetByUsername(ctx, "moe")
	require.NoError(t, err)
	assert.NotEqual(t, "moe_pw", stored.PasswordHash)
	assert.True(t, strings.HasPrefix(stored.PasswordHash, "$2"))

	id, err := svc.VerifyCredentials(ctx, "moe", "moe_pw")
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)
}

func TestVerifyCredentialsFailuresAreUniform(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	_, err := svc.Register(ctx, "lucy", "lucy_pw")
	require.NoError(t, err)

	_, wrongPw := svc.VerifyCredentials(ctx, "lucy", "nope")
	_, unknown := svc.VerifyCredentials(ctx, "nobody", "lucy_pw")
	_, caseMismatch := svc.VerifyCredentials(ctx, "Lucy", "lucy_pw")

	for _, err := range []error{wrongPw, unknown, caseMismatch} {
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		assert.Equal(t, wrongPw.Error(), err.Error())
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	_, err := svc.Register(ctx, "larry", "a")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "larry", "b")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRegisterInvalidInput(t *testing.T) {
	svc, _ := newService(t)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "empty username", username: "", password: "pw"},
		{name: "blank username", username: "   ", password: "pw"},
		{name: "long username", username: strings.Repeat("x", auth.MaxUsernameLength+1), password: "pw"},
		{name: "empty password", username: "ethyl", password: ""},
		{name: "long password", username: "ethyl", password: strings.Repeat("p", auth.MaxPasswordBytes+1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.username, tt.password)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestRegisterStorageFailureIsInternal(t *testing.T) {
	svc, store := newService(t)
	store.Err = errors.New("connection reset")

	_, err := svc.Register(context.Background(), "moe", "moe_pw")
	assert.ErrorIs(t, err, domain.ErrInternal)

	_, err = svc.VerifyCredentials(context.Background(), "moe", "moe_pw")
	assert.ErrorIs(t, err, domain.ErrInternal)
	assert.NotErrorIs(t, err, domain.ErrUnauthorized)
}

func TestNewBcryptHasherRejectsCost(t *testing.T) {
	_, err := auth.NewBcryptHasher(bcrypt.MinCost - 1)
	assert.Error(t, err)
	_, err = auth.NewBcryptHasher(bcrypt.MaxCost + 1)
	assert.Error(t, err)
}

func TestBcryptHasherSaltsEachHash(t *testing.T) {
	h, err := auth.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.NoError(t, h.Compare(a, "same"))
	assert.NoError(t, h.Compare(b, "same"))
	assert.Error(t, h.Compare(a, "other"))

	_, err = h.Hash("")
	assert.ErrorIs(t, err, auth.ErrEmptyPassword)
}
