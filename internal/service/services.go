package service

import (
	"context"
	"errors"

	"github.com/comment-moderation-api/internal/models"
)

// ErrCommentNotFound is returned when a comment id does not exist within
// the article's collection. An article with no stored comments yields the
// same error, since no id can match an empty collection.
var ErrCommentNotFound = errors.New("comment not found")

// CommentService defines the interface for comment operations
type CommentService interface {
	// List returns the article's comments with the given effective status,
	// preserving insertion order
	List(ctx context.Context, articleID string, status models.CommentStatus) ([]models.Comment, error)

	// Create stores a new comment in pending state and queues the
	// moderation-bot notification. The comment is not broadcast.
	Create(ctx context.Context, articleID string, sub *models.Submission) (*models.Comment, error)

	// Reply appends a reply to an existing comment and broadcasts it
	// immediately; replies are never moderated
	Reply(ctx context.Context, articleID, commentID string, sub *models.Submission) (*models.Reply, error)

	// Moderate applies the bot's decision. Approve flips the comment to
	// approved, stamps approvedAt and broadcasts it; decline removes the
	// comment entirely. Returns the resulting status ("approved" or
	// "declined").
	Moderate(ctx context.Context, req *models.ModerationRequest) (string, error)
}
