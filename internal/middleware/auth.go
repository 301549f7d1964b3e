// Package middleware provides authentication, logging, rate limiting, and
// observability middleware for the application.
package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/sevensfive/DevHub/internal/auth"
	"github.com/sevensfive/DevHub/internal/models"
	"github.com/sevensfive/DevHub/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// identityKey is the Fiber local under which the verified identity is stored.
const identityKey = "identity"

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. Returns "" when the header is missing or malformed.
func BearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// RequireAuth returns a middleware that admits a request only if the
// presented token verifies. On success the decoded identity is attached to
// the request (locals "userID" and "identity", plus the request context for
// logging); on failure it short-circuits with 401 carrying the discriminated
// reason and the wrapped handler never runs.
func RequireAuth(ts *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := BearerToken(c)
		if token == "" {
			observability.AuthRejections.WithLabelValues("missing_token").Inc()
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization header required"))
		}

		identity, err := ts.Verify(token)
		if err != nil {
			observability.AuthRejections.WithLabelValues(rejectionReason(err)).Inc()
			return models.RespondWithError(c, models.HTTPStatus(err), err)
		}

		attachIdentity(c, identity)
		return c.Next()
	}
}

// OptionalAuth decodes an identity when a valid token happens to be present
// and passes anonymous requests through untouched. Read-only routes use it
// to personalize responses (e.g. the liked flag) without requiring login.
// Invalid tokens are treated as anonymous, not rejected: the route is public.
func OptionalAuth(ts *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token := BearerToken(c); token != "" {
			if identity, err := ts.Verify(token); err == nil {
				attachIdentity(c, identity)
			}
		}
		return c.Next()
	}
}

func attachIdentity(c *fiber.Ctx, identity *auth.Identity) {
	c.Locals("userID", identity.UserID)
	c.Locals(identityKey, identity)
	c.SetUserContext(context.WithValue(c.UserContext(), UserIDKey, identity.UserID))
}

// IdentityFromCtx returns the verified identity attached by RequireAuth or
// OptionalAuth, or nil for anonymous requests.
func IdentityFromCtx(c *fiber.Ctx) *auth.Identity {
	if v, ok := c.Locals(identityKey).(*auth.Identity); ok {
		return v
	}
	return nil
}

func rejectionReason(err error) string {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return strings.ToLower(appErr.Code)
	}
	return "unknown"
}
