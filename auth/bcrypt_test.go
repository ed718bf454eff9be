package auth_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sublitr/sublitr/auth"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	t.Run("hashes and verifies", func(t *testing.T) {
		hash, err := auth.HashPassword("correct horse battery")
		require.NoError(t, err)
		assert.NotEqual(t, "correct horse battery", hash)

		assert.NoError(t, auth.ComparePasswordAndHash("correct horse battery", hash))
	})

	t.Run("uses cost 10", func(t *testing.T) {
		hash, err := auth.HashPassword("some password")
		require.NoError(t, err)

		cost, err := bcrypt.Cost([]byte(hash))
		require.NoError(t, err)
		assert.Equal(t, 10, cost)
	})

	t.Run("same password yields different hashes", func(t *testing.T) {
		a, err := auth.HashPassword("repeatable")
		require.NoError(t, err)
		b, err := auth.HashPassword("repeatable")
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("rejects empty password", func(t *testing.T) {
		_, err := auth.HashPassword("")
		assert.ErrorIs(t, err, auth.ErrNoEmptyString)
	})

	t.Run("rejects passwords beyond bcrypt's 72 byte limit", func(t *testing.T) {
		_, err := auth.HashPassword(strings.Repeat("x", 73))
		assert.Error(t, err)
	})
}

func TestComparePasswordAndHash(t *testing.T) {
	hash, err := auth.HashPassword("the right one")
	require.NoError(t, err)

	t.Run("mismatch returns typed error", func(t *testing.T) {
		err := auth.ComparePasswordAndHash("the wrong one", hash)
		assert.ErrorIs(t, err, auth.ErrMismatchedHashAndPassword)
	})

	t.Run("empty password never matches", func(t *testing.T) {
		err := auth.ComparePasswordAndHash("", hash)
		assert.Error(t, err)
	})
}
