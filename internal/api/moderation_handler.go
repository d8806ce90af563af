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

// ModerationHandler handles the bot's approve/decline callback
type ModerationHandler struct {
	svc service.CommentService
	log zerolog.Logger
}

// NewModerationHandler creates a new ModerationHandler
func NewModerationHandler(svc service.CommentService, log zerolog.Logger) *ModerationHandler {
	return &ModerationHandler{
		svc: svc,
		log: log.With().Str("handler", "moderation").Logger(),
	}
}

// Moderate handles POST /api/moderate. The route is guarded by the shared
// secret middleware; this handler only sees authenticated requests.
func (h *ModerationHandler) Moderate(c *gin.Context) {
	ctx := c.Request.Context()

	var req models.ModerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	if verrs := validation.ValidateModeration(&req); len(verrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	status, err := h.svc.Moderate(ctx, &req)
	if err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
			return
		}
		h.log.Error().Err(err).
			Str("article_id", req.ArticleID).
			Str("comment_id", req.ID).
			Msg("Moderation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "status": status})
}
