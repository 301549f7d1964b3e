package server

import (
	"strings"

	"github.com/sevensfive/DevHub/internal/middleware"
	"github.com/sevensfive/DevHub/internal/models"
	"github.com/sevensfive/DevHub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateComment adds a comment to a post
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, ok := parseID(c, "id")
	if !ok {
		return nil
	}

	var body struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&body); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.CreateComment(c.Context(), service.CreateCommentInput{
		UserID: currentUserID(c),
		PostID: postID,
		Text:   strings.TrimSpace(body.Text),
	})
	if err != nil {
		return respondError(c, err)
	}

	middleware.Logger.InfoContext(c.Context(), "comment created",
		"comment_id", comment.ID,
		"post_id", postID)

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// GetComments returns all comments on a post, newest first
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, ok := parseID(c, "id")
	if !ok {
		return nil
	}

	comments, err := s.commentService.ListComments(c.Context(), postID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"comments": comments})
}

// DeleteComment removes a comment. The comment's author and the post's author
// may delete it; anyone else gets 403.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	postID, ok := parseID(c, "id")
	if !ok {
		return nil
	}
	commentID, ok := parseID(c, "commentId")
	if !ok {
		return nil
	}

	comment, err := s.commentService.DeleteComment(c.Context(), service.DeleteCommentInput{
		RequesterID: currentUserID(c),
		PostID:      postID,
		CommentID:   commentID,
	})
	if err != nil {
		return respondError(c, err)
	}

	middleware.Logger.InfoContext(c.Context(), "comment deleted",
		"comment_id", comment.ID,
		"post_id", postID)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Comment deleted",
		"comment": comment,
	})
}
