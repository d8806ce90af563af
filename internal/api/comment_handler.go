package api

import (
	"errors"
	"net/http"

	"github.com/comment-moderation-api/internal/models"
	"github.com/comment-moderation-api/internal/service"
	"github.com/comment-moderation-api/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// CommentHandler handles comment and reply endpoints
type CommentHandler struct {
	svc service.CommentService
	log zerolog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(svc service.CommentService, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		svc: svc,
		log: log.With().Str("handler", "comments").Logger(),
	}
}

// ListComments handles GET /api/comments/:articleId
// The status query parameter filters by moderation state, default approved
func (h *CommentHandler) ListComments(c *gin.Context) {
	ctx := c.Request.Context()
	articleID := c.Param("articleId")

	status := models.CommentStatus(c.DefaultQuery("status", string(models.StatusApproved)))
	if status != models.StatusApproved && status != models.StatusPending {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be one of: approved, pending"})
		return
	}

	comments, err := h.svc.List(ctx, articleID, status)
	if err != nil {
		h.log.Error().Err(err).Str("article_id", articleID).Msg("Failed to load comments")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load comments"})
		return
	}

	c.JSON(http.StatusOK, comments)
}

// ListPending handles GET /api/pending/:articleId
func (h *CommentHandler) ListPending(c *gin.Context) {
	ctx := c.Request.Context()
	articleID := c.Param("articleId")

	comments, err := h.svc.List(ctx, articleID, models.StatusPending)
	if err != nil {
		h.log.Error().Err(err).Str("article_id", articleID).Msg("Failed to load pending comments")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load comments"})
		return
	}

	c.JSON(http.StatusOK, comments)
}

// CreateComment handles POST /api/comments/:articleId
// The new comment is stored pending moderation and is not broadcast
func (h *CommentHandler) CreateComment(c *gin.Context) {
	ctx := c.Request.Context()
	articleID := c.Param("articleId")

	var sub models.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if verrs := validation.ValidateSubmission(&sub); len(verrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": verrs[0].Error()})
		return
	}

	comment, err := h.svc.Create(ctx, articleID, &sub)
	if err != nil {
		h.log.Error().Err(err).Str("article_id", articleID).Msg("Failed to post comment")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post comment"})
		return
	}

	c.JSON(http.StatusOK, models.PendingResponse{
		Message: models.PendingMessage,
		ID:      comment.ID,
		Status:  comment.Status,
	})
}

// CreateReply handles POST /api/comments/:articleId/reply/:commentId
// Replies skip moderation and are broadcast immediately
func (h *CommentHandler) CreateReply(c *gin.Context) {
	ctx := c.Request.Context()
	articleID := c.Param("articleId")
	commentID := c.Param("commentId")

	var sub models.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if verrs := validation.ValidateSubmission(&sub); len(verrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": verrs[0].Error()})
		return
	}

	reply, err := h.svc.Reply(ctx, articleID, commentID, &sub)
	if err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
			return
		}
		h.log.Error().Err(err).
			Str("article_id", articleID).
			Str("comment_id", commentID).
			Msg("Failed to post reply")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post reply"})
		return
	}

	c.JSON(http.StatusOK, reply)
}
