package server_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createPublication(t *testing.T, env *testEnv, token, title string) map[string]any {
	t.Helper()

	resp := env.request(t, http.MethodPost, "/api/publications", token, map[string]any{
		"title":       title,
		"description": "peer reviewed",
		"image":       "fake image bytes",
		"contentType": "image/png",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decodeBody(t, resp)
}

func TestPublicationList(t *testing.T) {
	env := setupServer(t)
	adminToken := env.login(t, "admin@example.com")
	createPublication(t, env, adminToken, "Nature Quarterly")

	t.Run("public, no auth required", func(t *testing.T) {
		resp := env.request(t, http.MethodGet, "/api/publications", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		list := decodeList(t, resp)
		require.Len(t, list, 1)
		assert.Equal(t, "Nature Quarterly", list[0]["title"])
		assert.NotEmpty(t, list[0]["image"])
	})
}

func TestPublicationCreate(t *testing.T) {
	env := setupServer(t)

	t.Run("admin creates a publication", func(t *testing.T) {
		token := env.login(t, "admin@example.com")
		body := createPublication(t, env, token, "Nature Quarterly")

		assert.Equal(t, "Nature Quarterly", body["title"])
		assert.Equal(t, "peer reviewed", body["description"])
		assert.NotEmpty(t, body["id"])
		assert.Equal(t, 1, env.blobs.Len())
	})

	t.Run("editor cannot create", func(t *testing.T) {
		token := env.login(t, "editor@example.com")
		resp := env.request(t, http.MethodPost, "/api/publications", token, map[string]any{
			"title": "Sneaky Journal",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("requires auth", func(t *testing.T) {
		resp := env.request(t, http.MethodPost, "/api/publications", "", map[string]any{
			"title": "Anonymous Journal",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("missing title is a validation error", func(t *testing.T) {
		token := env.login(t, "admin@example.com")
		resp := env.request(t, http.MethodPost, "/api/publications", token, map[string]any{
			"description": "no title",
		})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})
}

func TestPublicationDelete(t *testing.T) {
	env := setupServer(t)
	adminToken := env.login(t, "admin@example.com")
	created := createPublication(t, env, adminToken, "Nature Quarterly")
	id := created["id"].(string)

	t.Run("editor cannot delete", func(t *testing.T) {
		token := env.login(t, "editor@example.com")
		resp := env.request(t, http.MethodDelete, "/api/publications/"+id, token, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("admin deletes and the blob goes with it", func(t *testing.T) {
		require.Equal(t, 1, env.blobs.Len())

		resp := env.request(t, http.MethodDelete, "/api/publications/"+id, adminToken, nil)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		assert.Equal(t, 0, env.blobs.Len())
	})

	t.Run("unknown id is 404", func(t *testing.T) {
		resp := env.request(t, http.MethodDelete, "/api/publications/"+id, adminToken, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
