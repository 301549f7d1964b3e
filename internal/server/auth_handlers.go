package server

import (
	"strings"
	"time"

	"github.com/sevensfive/DevHub/internal/auth"
	"github.com/sevensfive/DevHub/internal/middleware"
	"github.com/sevensfive/DevHub/internal/models"
	"github.com/sevensfive/DevHub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Register handles user registration
func (s *Server) Register(c *fiber.Ctx) error {
	var input service.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))

	creds, err := s.authService.Register(c.Context(), input)
	if err != nil {
		middleware.Logger.WarnContext(c.Context(), "registration failed",
			"error", err,
			"email", input.Email)
		return respondError(c, err)
	}

	middleware.Logger.InfoContext(c.Context(), "user registered",
		"user_id", creds.User.ID,
		"username", creds.User.Username)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": creds.Token,
		"user":  creds.User,
	})
}

// Login handles user authentication
func (s *Server) Login(c *fiber.Ctx) error {
	var input service.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	input.Email = strings.TrimSpace(strings.ToLower(input.Email))

	creds, err := s.authService.Login(c.Context(), input)
	if err != nil {
		middleware.Logger.WarnContext(c.Context(), "login failed",
			"error", err,
			"email", input.Email)
		return respondError(c, err)
	}

	middleware.Logger.InfoContext(c.Context(), "user logged in",
		"user_id", creds.User.ID)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"token": creds.Token,
		"user":  creds.User,
	})
}

// SessionState reports the state of the caller's bearer token without
// performing any lookups: absent, expired, or valid. It always answers 200
// so clients can poll it to drive their sign-in state.
func (s *Server) SessionState(c *fiber.Ctx) error {
	token := middleware.BearerToken(c)
	state := auth.EvaluateSession(token, time.Now())

	resp := fiber.Map{"state": state.String()}
	if state == auth.SessionValid {
		// The unverified state check says the token is not expired; only a
		// full verification proves it was signed by us.
		if identity, err := s.tokens.Verify(token); err != nil {
			resp["state"] = auth.SessionAbsent.String()
		} else {
			resp["user_id"] = identity.UserID
			resp["username"] = identity.Username
		}
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}
