package server

import (
	"strings"

	"github.com/sevensfive/DevHub/internal/middleware"
	"github.com/sevensfive/DevHub/internal/models"
	"github.com/sevensfive/DevHub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles post creation
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var body struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&body); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		UserID: currentUserID(c),
		Text:   strings.TrimSpace(body.Text),
	})
	if err != nil {
		return respondError(c, err)
	}

	middleware.Logger.InfoContext(c.Context(), "post created",
		"post_id", post.ID,
		"user_id", post.UserID)

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPosts returns the feed, newest first. Anonymous callers get liked=false
// on every post; authenticated callers get their own liked flags.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)

	posts, err := s.postService.ListPosts(c.Context(), service.ListPostsInput{
		Limit:         limit,
		Offset:        offset,
		CurrentUserID: currentUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"posts":  posts,
		"limit":  limit,
		"offset": offset,
	})
}

// GetPost returns a single post with its likes and comments
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, ok := parseID(c, "id")
	if !ok {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), postID, currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(post)
}

// GetUserPosts returns all posts authored by a given user
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	userID, ok := parseID(c, "id")
	if !ok {
		return nil
	}
	limit, offset := parsePagination(c)

	posts, err := s.postService.GetUserPosts(c.Context(), userID, limit, offset, currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"posts": posts})
}

// DeletePost handles post deletion; only the author may delete a post.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, ok := parseID(c, "id")
	if !ok {
		return nil
	}

	err := s.postService.DeletePost(c.Context(), service.DeletePostInput{
		UserID: currentUserID(c),
		PostID: postID,
	})
	if err != nil {
		return respondError(c, err)
	}

	middleware.Logger.InfoContext(c.Context(), "post deleted",
		"post_id", postID)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Post deleted"})
}

// LikePost records a like for the authenticated user. Liking a post twice
// answers 409 ALREADY_LIKED; the stored state is unchanged.
func (s *Server) LikePost(c *fiber.Ctx) error {
	postID, ok := parseID(c, "id")
	if !ok {
		return nil
	}

	post, err := s.postService.LikePost(c.Context(), currentUserID(c), postID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(post)
}

// UnlikePost removes the authenticated user's like. Unliking a post that was
// never liked answers 409 NOT_LIKED.
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	postID, ok := parseID(c, "id")
	if !ok {
		return nil
	}

	post, err := s.postService.UnlikePost(c.Context(), currentUserID(c), postID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(post)
}
