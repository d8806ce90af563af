package store

import (
	"context"
	"errors"

	"github.com/comment-moderation-api/internal/models"
)

// ErrCorruptData is returned when an article's file exists but cannot be
// parsed. A missing file is not an error; it reads as an empty collection.
var ErrCorruptData = errors.New("comment data is corrupt")

// MutateFunc transforms an article's comment collection. Returning an error
// aborts the update without writing.
type MutateFunc func(comments []models.Comment) ([]models.Comment, error)

// CommentStore defines the interface for per-article comment persistence
type CommentStore interface {
	// Read loads the full ordered comment collection for an article.
	// An article with no stored file yields an empty slice and no error.
	Read(ctx context.Context, articleID string) ([]models.Comment, error)

	// Write replaces an article's comment collection
	Write(ctx context.Context, articleID string, comments []models.Comment) error

	// Update applies mutate to an article's collection and persists the
	// result. The read-modify-write cycle is serialized per article, so
	// concurrent updates to the same article never lose writes.
	Update(ctx context.Context, articleID string, mutate MutateFunc) ([]models.Comment, error)
}
