package server

import (
	"strings"

	"github.com/sevensfive/DevHub/internal/models"
	"github.com/sevensfive/DevHub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetUsers returns a page of users
func (s *Server) GetUsers(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)

	users, err := s.userService.ListUsers(c.Context(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"users":  users,
		"limit":  limit,
		"offset": offset,
	})
}

// GetUser returns a single user by ID
func (s *Server) GetUser(c *fiber.Ctx) error {
	userID, ok := parseID(c, "id")
	if !ok {
		return nil
	}

	user, err := s.userService.GetUserByID(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(user)
}

// GetCurrentUser returns the authenticated user's own record
func (s *Server) GetCurrentUser(c *fiber.Ctx) error {
	user, err := s.userService.GetUserByID(c.Context(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(user)
}

// UpdateCurrentUser updates the authenticated user's username or avatar
func (s *Server) UpdateCurrentUser(c *fiber.Ctx) error {
	var body struct {
		Username string `json:"username"`
		Avatar   string `json:"avatar"`
	}
	if err := c.BodyParser(&body); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateUser(c.Context(), service.UpdateUserInput{
		UserID:   currentUserID(c),
		Username: strings.TrimSpace(body.Username),
		Avatar:   strings.TrimSpace(body.Avatar),
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(user)
}
