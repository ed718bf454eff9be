package auth_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sublitr/sublitr/auth"
)

type fakeUserLookup struct {
	users map[string]*auth.User
}

func (f *fakeUserLookup) GetByEmail(_ context.Context, email string) (*auth.User, error) {
	if u, ok := f.users[email]; ok {
		return u, nil
	}
	return nil, repository.NewRecordNotFound().
		WithMetadata(map[string]any{"email": email})
}

func newFakeUserLookup(t *testing.T, email, password string) *fakeUserLookup {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	return &fakeUserLookup{users: map[string]*auth.User{
		email: {
			ID:           uuid.New(),
			Email:        email,
			FirstName:    "Amy",
			LastName:     "Lin",
			Editor:       true,
			PasswordHash: hash,
		},
	}}
}

func TestUserProvider_VerifyIdentity(t *testing.T) {
	store := newFakeUserLookup(t, "amy@example.com", "sekretsekret")
	provider := auth.NewUserProvider(store)

	t.Run("valid credentials return identity snapshot", func(t *testing.T) {
		identity, err := provider.VerifyIdentity(context.Background(), "amy@example.com", "sekretsekret")
		require.NoError(t, err)

		assert.Equal(t, "amy@example.com", identity.Email)
		assert.Equal(t, "Amy", identity.FirstName)
		assert.True(t, identity.Editor)
		assert.False(t, identity.Admin)
		assert.NotEmpty(t, identity.ID)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		_, errWrongPassword := provider.VerifyIdentity(context.Background(), "amy@example.com", "wrong")
		_, errUnknownEmail := provider.VerifyIdentity(context.Background(), "nobody@example.com", "sekretsekret")

		require.Error(t, errWrongPassword)
		require.Error(t, errUnknownEmail)
		assert.ErrorIs(t, errWrongPassword, auth.ErrInvalidCredentials)
		assert.ErrorIs(t, errUnknownEmail, auth.ErrInvalidCredentials)
		assert.Equal(t, errWrongPassword.Error(), errUnknownEmail.Error())
	})
}
