package server

import (
	"strings"

	"github.com/sevensfive/DevHub/internal/middleware"
	"github.com/sevensfive/DevHub/internal/models"
	"github.com/sevensfive/DevHub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetProfiles returns a page of developer profiles
func (s *Server) GetProfiles(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)

	profiles, err := s.profileService.ListProfiles(c.Context(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"profiles": profiles,
		"limit":    limit,
		"offset":   offset,
	})
}

// GetProfileByHandle returns the profile with the given public handle
func (s *Server) GetProfileByHandle(c *fiber.Ctx) error {
	handle := strings.TrimSpace(c.Params("handle"))
	if handle == "" {
		return respondError(c, models.NewValidationError("Invalid handle"))
	}

	profile, err := s.profileService.GetProfileByHandle(c.Context(), handle)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(profile)
}

// GetProfileByUser returns the profile belonging to a given user
func (s *Server) GetProfileByUser(c *fiber.Ctx) error {
	userID, ok := parseID(c, "userId")
	if !ok {
		return nil
	}

	profile, err := s.profileService.GetProfileByUserID(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(profile)
}

// GetMyProfile returns the authenticated user's own profile
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	profile, err := s.profileService.GetProfileByUserID(c.Context(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(profile)
}

// UpsertMyProfile creates or replaces the authenticated user's profile
func (s *Server) UpsertMyProfile(c *fiber.Ctx) error {
	var body struct {
		Handle         string   `json:"handle"`
		Status         string   `json:"status"`
		Company        string   `json:"company"`
		Website        string   `json:"website"`
		Location       string   `json:"location"`
		Skills         []string `json:"skills"`
		Bio            string   `json:"bio"`
		GithubUsername string   `json:"github_username"`
		Youtube        string   `json:"youtube"`
		Twitter        string   `json:"twitter"`
		Linkedin       string   `json:"linkedin"`
	}
	if err := c.BodyParser(&body); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileService.UpsertProfile(c.Context(), service.UpsertProfileInput{
		UserID:         currentUserID(c),
		Handle:         strings.TrimSpace(body.Handle),
		Status:         strings.TrimSpace(body.Status),
		Company:        body.Company,
		Website:        body.Website,
		Location:       body.Location,
		Skills:         body.Skills,
		Bio:            body.Bio,
		GithubUsername: body.GithubUsername,
		Youtube:        body.Youtube,
		Twitter:        body.Twitter,
		Linkedin:       body.Linkedin,
	})
	if err != nil {
		return respondError(c, err)
	}

	middleware.Logger.InfoContext(c.Context(), "profile upserted",
		"user_id", profile.UserID,
		"handle", profile.Handle)

	return c.Status(fiber.StatusOK).JSON(profile)
}

// DeleteMyProfile removes the authenticated user's profile
func (s *Server) DeleteMyProfile(c *fiber.Ctx) error {
	if err := s.profileService.DeleteProfile(c.Context(), currentUserID(c)); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Profile deleted"})
}
