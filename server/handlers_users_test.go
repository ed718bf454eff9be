package server_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsersRoot(t *testing.T) {
	env := setupServer(t)

	resp := env.request(t, http.MethodGet, "/api/users", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["ok"])
}

func TestRegister(t *testing.T) {
	env := setupServer(t)

	valid := func() map[string]any {
		return map[string]any{
			"email":     "new@example.com",
			"firstName": "New",
			"lastName":  "User",
			"password":  "longenough",
		}
	}

	t.Run("creates the account", func(t *testing.T) {
		resp := env.request(t, http.MethodPost, "/api/users", "", valid())
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "new@example.com", body["email"])
		assert.Equal(t, "New", body["firstName"])
		assert.Equal(t, "User", body["lastName"])
		assert.Equal(t, false, body["admin"])
		assert.Equal(t, false, body["editor"])
		assert.NotEmpty(t, body["id"])
		assert.NotContains(t, body, "password")
		assert.NotContains(t, body, "passwordHash")

		// the new account can log in
		login := env.request(t, http.MethodPost, "/api/auth/login", "", map[string]any{
			"email":    "new@example.com",
			"password": "longenough",
		})
		assert.Equal(t, http.StatusOK, login.StatusCode)
	})

	validationCases := []struct {
		name     string
		mutate   func(map[string]any)
		message  string
		location string
	}{
		{
			name:     "missing field",
			mutate:   func(b map[string]any) { delete(b, "password") },
			message:  "Missing field",
			location: "password",
		},
		{
			name:     "non-string field",
			mutate:   func(b map[string]any) { b["firstName"] = 42 },
			message:  "Incorrect field type: expected string",
			location: "firstName",
		},
		{
			name:     "leading whitespace on email",
			mutate:   func(b map[string]any) { b["email"] = " padded@example.com" },
			message:  "Cannot start or end with whitespace",
			location: "email",
		},
		{
			name:     "trailing whitespace on password",
			mutate:   func(b map[string]any) { b["password"] = "longenough " },
			message:  "Cannot start or end with whitespace",
			location: "password",
		},
		{
			name:     "short password",
			mutate:   func(b map[string]any) { b["password"] = "seven77" },
			message:  "Must be at least 8 characters long",
			location: "password",
		},
		{
			name:     "password beyond 72 characters",
			mutate:   func(b map[string]any) { b["password"] = strings.Repeat("x", 73) },
			message:  "Can't be more than 72 characters long",
			location: "password",
		},
		{
			name:     "empty first name",
			mutate:   func(b map[string]any) { b["firstName"] = "" },
			message:  "Must be at least 1 characters long",
			location: "firstName",
		},
		{
			name:     "invalid email",
			mutate:   func(b map[string]any) { b["email"] = "not-an-email" },
			message:  "Invalid email address",
			location: "email",
		},
	}

	for _, tc := range validationCases {
		t.Run(tc.name, func(t *testing.T) {
			body := valid()
			tc.mutate(body)

			resp := env.request(t, http.MethodPost, "/api/users", "", body)
			require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

			out := decodeBody(t, resp)
			assert.Equal(t, float64(422), out["code"])
			assert.Equal(t, "ValidationError", out["reason"])
			assert.Equal(t, tc.message, out["message"])
			assert.Equal(t, tc.location, out["location"])
		})
	}

	t.Run("duplicate email", func(t *testing.T) {
		body := valid()
		body["email"] = "author@example.com"

		resp := env.request(t, http.MethodPost, "/api/users", "", body)
		require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

		out := decodeBody(t, resp)
		assert.Equal(t, "User with that email already exists", out["message"])
		assert.Equal(t, "email", out["location"])
	})
}

func TestUserUpdate(t *testing.T) {
	env := setupServer(t)
	ctx := context.Background()

	author, err := env.repos.Users().GetByEmail(ctx, "author@example.com")
	require.NoError(t, err)
	authorID := author.ID.String()

	t.Run("self can update profile fields", func(t *testing.T) {
		token := env.login(t, "author@example.com")

		resp := env.request(t, http.MethodPut, "/api/users/"+authorID, token, map[string]any{
			"firstName": "Amelia",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "Amelia", body["firstName"])
		assert.Equal(t, "Lin", body["lastName"])
	})

	t.Run("non-admin cannot set role flags", func(t *testing.T) {
		token := env.login(t, "author@example.com")

		resp := env.request(t, http.MethodPut, "/api/users/"+authorID, token, map[string]any{
			"admin": true,
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("admin can set role flags on others", func(t *testing.T) {
		token := env.login(t, "admin@example.com")

		resp := env.request(t, http.MethodPut, "/api/users/"+authorID, token, map[string]any{
			"editor": true,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, true, body["editor"])
	})

	t.Run("password change applies the registration length rules", func(t *testing.T) {
		token := env.login(t, "author@example.com")

		resp := env.request(t, http.MethodPut, "/api/users/"+authorID, token, map[string]any{
			"password": "short",
		})
		require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "Must be at least 8 characters long", body["message"])
		assert.Equal(t, "password", body["location"])

		resp = env.request(t, http.MethodPut, "/api/users/"+authorID, token, map[string]any{
			"password": strings.Repeat("x", 73),
		})
		require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

		body = decodeBody(t, resp)
		assert.Equal(t, "Can't be more than 72 characters long", body["message"])

		// a conforming password still goes through
		resp = env.request(t, http.MethodPut, "/api/users/"+authorID, token, map[string]any{
			"password": "newsekret",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		login := env.request(t, http.MethodPost, "/api/auth/login", "", map[string]any{
			"email":    "author@example.com",
			"password": "newsekret",
		})
		assert.Equal(t, http.StatusOK, login.StatusCode)
	})

	t.Run("third party cannot update someone else", func(t *testing.T) {
		token := env.login(t, "editor@example.com")

		resp := env.request(t, http.MethodPut, "/api/users/"+authorID, token, map[string]any{
			"firstName": "Hacked",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("requires auth", func(t *testing.T) {
		resp := env.request(t, http.MethodPut, "/api/users/"+authorID, "", map[string]any{
			"firstName": "Nope",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestUserDelete(t *testing.T) {
	t.Run("self delete", func(t *testing.T) {
		env := setupServer(t)
		user := env.seedUser(t, "doomed@example.com", "Doo", "Med", false, false)
		token := env.login(t, "doomed@example.com")

		resp := env.request(t, http.MethodDelete, "/api/users/"+user.ID.String(), token, nil)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("admin deletes a plain user", func(t *testing.T) {
		env := setupServer(t)
		user := env.seedUser(t, "doomed@example.com", "Doo", "Med", false, false)
		token := env.login(t, "admin@example.com")

		resp := env.request(t, http.MethodDelete, "/api/users/"+user.ID.String(), token, nil)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("third party cannot delete", func(t *testing.T) {
		env := setupServer(t)
		user := env.seedUser(t, "doomed@example.com", "Doo", "Med", false, false)
		token := env.login(t, "editor@example.com")

		resp := env.request(t, http.MethodDelete, "/api/users/"+user.ID.String(), token, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("deleting an admin account is forbidden for everyone else", func(t *testing.T) {
		env := setupServer(t)
		other := env.seedUser(t, "admin2@example.com", "Ad", "Min", true, false)
		token := env.login(t, "admin@example.com")

		resp := env.request(t, http.MethodDelete, "/api/users/"+other.ID.String(), token, nil)
		require.Equal(t, http.StatusForbidden, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "Cannot delete an admin account", body["message"])
	})

	t.Run("admin can delete own account", func(t *testing.T) {
		env := setupServer(t)
		admin := env.seedUser(t, "admin2@example.com", "Ad", "Min", true, false)
		token := env.login(t, "admin2@example.com")

		resp := env.request(t, http.MethodDelete, "/api/users/"+admin.ID.String(), token, nil)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("unknown user is 404", func(t *testing.T) {
		env := setupServer(t)
		token := env.login(t, "admin@example.com")

		resp := env.request(t, http.MethodDelete, "/api/users/c0ffee00-0000-0000-0000-000000000000", token, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
