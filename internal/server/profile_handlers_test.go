package server

import (
	"fmt"
	"testing"

	"github.com/sevensfive/DevHub/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func upsertProfile(t *testing.T, app *fiber.App, token, handle string) map[string]any {
	t.Helper()
	resp, body := doJSON(t, app, fiber.MethodPost, "/api/profiles/me/", fiber.Map{
		"handle": handle,
		"status": "Backend Developer",
		"skills": []string{"Go", "Postgres"},
	}, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, "upsert profile: %v", body)
	return body
}

func TestProfileLifecycle(t *testing.T) {
	app, _ := setupTestServer(t)
	token, userID := registerUser(t, app, "gopher")

	created := upsertProfile(t, app, token, "gopher")
	assert.Equal(t, float64(userID), created["user_id"])
	assert.Equal(t, []any{"Go", "Postgres"}, created["skills"])

	// Public lookup by handle.
	resp, body := doJSON(t, app, fiber.MethodGet, "/api/profiles/handle/gopher", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "gopher", body["handle"])

	// Upsert again replaces in place.
	resp, body = doJSON(t, app, fiber.MethodPost, "/api/profiles/me/", fiber.Map{
		"handle": "gopher",
		"status": "Staff Engineer",
		"skills": []string{"Go"},
	}, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Staff Engineer", body["status"])

	// Listing shows one profile.
	resp, body = doJSON(t, app, fiber.MethodGet, "/api/profiles/", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, body["profiles"].([]any), 1)

	// Delete own profile; the account survives.
	resp, _ = doJSON(t, app, fiber.MethodDelete, "/api/profiles/me/", nil, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, app, fiber.MethodGet, "/api/profiles/handle/gopher", nil, "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, fiber.MethodGet, "/api/users/me", nil, token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestProfileHandleConflict(t *testing.T) {
	app, _ := setupTestServer(t)
	aliceToken, _ := registerUser(t, app, "alice")
	bobToken, _ := registerUser(t, app, "bob")

	upsertProfile(t, app, aliceToken, "shared")

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/profiles/me/", fiber.Map{
		"handle": "shared",
		"status": "Dev",
		"skills": []string{"Go"},
	}, bobToken)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, models.CodeValidation, errorCode(body))
}

func TestProfileValidation(t *testing.T) {
	app, _ := setupTestServer(t)
	token, _ := registerUser(t, app, "gopher")

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/profiles/me/", fiber.Map{
		"handle": "gopher",
		"status": "Dev",
	}, token)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, models.CodeValidation, errorCode(body))
}

func TestProfileByUser(t *testing.T) {
	app, _ := setupTestServer(t)
	token, userID := registerUser(t, app, "gopher")
	upsertProfile(t, app, token, "gopher")

	resp, body := doJSON(t, app, fiber.MethodGet,
		"/api/profiles/user/"+itoa(userID), nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "gopher", body["handle"])

	resp, _ = doJSON(t, app, fiber.MethodGet, "/api/profiles/user/999", nil, "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func itoa(v uint) string {
	return fmt.Sprintf("%d", v)
}
