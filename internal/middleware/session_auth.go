package middleware

import (
	"errors"
	"strings"

	"quiz-master/internal/logger"
	"quiz-master/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	SessionIDKey        = "sessionID" // Key for storing the verified session id in fiber.Ctx locals
)

// SessionAuth requires a bearer token issued for the session named by the :id
// route parameter.
func SessionAuth(tokens service.TokenIssuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" {
			return unauthorized(c, "MISSING_AUTH_HEADER", "Authorization header is missing")
		}
		if !strings.HasPrefix(authHeader, BearerSchema) {
			return unauthorized(c, "INVALID_AUTH_SCHEME", "Authorization scheme is not Bearer")
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, BearerSchema))
		if tokenString == "" {
			return unauthorized(c, "EMPTY_TOKEN", "Token is empty")
		}

		claims, err := tokens.Verify(tokenString)
		if err != nil {
			logger.Get().Debug("Session token rejected", zap.String("path", c.Path()), zap.Error(err))
			if errors.Is(err, service.ErrSessionTokenExpired) {
				return unauthorized(c, "TOKEN_EXPIRED", "Session token has expired")
			}
			return unauthorized(c, "INVALID_TOKEN", "Session token is invalid")
		}

		if id := c.Params("id"); id != "" && id != claims.Subject {
			return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{
				Code:    "SESSION_MISMATCH",
				Message: "Token was not issued for this session",
				Status:  fiber.StatusForbidden,
			})
		}

		c.Locals(SessionIDKey, claims.Subject)
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
		Code:    code,
		Message: message,
		Status:  fiber.StatusUnauthorized,
	})
}
