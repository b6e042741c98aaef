package middleware_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"quiz-master/internal/domain"
	"quiz-master/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"quiz not found", domain.NewQuizNotFoundError("x"), fiber.StatusNotFound, "QUIZ_NOT_FOUND"},
		{"session not found", domain.NewSessionNotFoundError("s"), fiber.StatusNotFound, "SESSION_NOT_FOUND"},
		{"invalid input", domain.NewInvalidInputError("bad"), fiber.StatusBadRequest, "INVALID_INPUT"},
		{"invalid state", domain.NewInvalidStateError("nope"), fiber.StatusConflict, "INVALID_STATE"},
		{"unauthorized", domain.NewUnauthorizedError("who"), fiber.StatusUnauthorized, "UNAUTHORIZED"},
		{"internal", domain.NewInternalError("db", errors.New("ORA-03113")), fiber.StatusInternalServerError, "INTERNAL_ERROR"},
		{"validation", domain.ValidationErrors{domain.NewMissingFieldError("answer")}, fiber.StatusBadRequest, "VALIDATION_ERROR"},
		{"fiber error", fiber.ErrMethodNotAllowed, fiber.StatusMethodNotAllowed, "HTTP_ERROR"},
		{"unknown", errors.New("boom"), fiber.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
			app.Get("/", func(c *fiber.Ctx) error { return tt.err })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			body, _ := io.ReadAll(resp.Body)
			var payload map[string]interface{}
			require.NoError(t, json.Unmarshal(body, &payload))
			assert.Equal(t, tt.wantCode, payload["code"])
		})
	}
}

func TestErrorHandler_HidesInternalMessage(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	app.Get("/", func(c *fiber.Ctx) error {
		return domain.NewInternalError("failed to query quiz_sets on host db-7", errors.New("ORA-03113"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	var payload middleware.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, "Internal server error", payload.Message)
}
