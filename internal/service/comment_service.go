package service

import (
	"context"
	"time"

	"github.com/comment-moderation-api/internal/idgen"
	"github.com/comment-moderation-api/internal/models"
	"github.com/comment-moderation-api/internal/realtime"
	"github.com/comment-moderation-api/internal/store"
	"github.com/comment-moderation-api/internal/webhook"
	"github.com/rs/zerolog"
)

// commentService is the concrete implementation of CommentService
type commentService struct {
	store       store.CommentStore
	broadcaster realtime.Broadcaster
	notifier    webhook.Notifier
	ids         *idgen.Generator
	log         zerolog.Logger
}

// New creates a CommentService
func New(st store.CommentStore, broadcaster realtime.Broadcaster, notifier webhook.Notifier, log zerolog.Logger) CommentService {
	return &commentService{
		store:       st,
		broadcaster: broadcaster,
		notifier:    notifier,
		ids:         idgen.New(),
		log:         log.With().Str("component", "comments").Logger(),
	}
}

// List returns the article's comments with the given effective status
func (s *commentService) List(ctx context.Context, articleID string, status models.CommentStatus) ([]models.Comment, error) {
	comments, err := s.store.Read(ctx, articleID)
	if err != nil {
		return nil, err
	}

	filtered := make([]models.Comment, 0, len(comments))
	for _, c := range comments {
		if c.EffectiveStatus() == status {
			filtered = append(filtered, c)
		}
	}

	s.log.Debug().
		Str("article_id", articleID).
		Str("status", string(status)).
		Int("count", len(filtered)).
		Msg("Comments listed")

	return filtered, nil
}

// Create stores a new pending comment and queues the moderation callback
func (s *commentService) Create(ctx context.Context, articleID string, sub *models.Submission) (*models.Comment, error) {
	comment := models.Comment{
		ID:        s.ids.Next(),
		ArticleID: articleID,
		Author:    sub.Author,
		Email:     sub.Email,
		Website:   sub.Website,
		Content:   sub.Content,
		Date:      time.Now().UTC(),
		Status:    models.StatusPending,
		Replies:   []models.Reply{},
	}

	_, err := s.store.Update(ctx, articleID, func(comments []models.Comment) ([]models.Comment, error) {
		return append(comments, comment), nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("comment_id", comment.ID).
		Str("article_id", articleID).
		Str("author", comment.Author).
		Msg("Comment queued for moderation")

	// Best-effort; the comment stays pending if the bot is unreachable
	s.notifier.NotifyNewComment(comment)

	return &comment, nil
}

// Reply appends a reply to an existing comment and broadcasts it
func (s *commentService) Reply(ctx context.Context, articleID, commentID string, sub *models.Submission) (*models.Reply, error) {
	reply := models.Reply{
		ID:      s.ids.Next(),
		Author:  sub.Author,
		Email:   sub.Email,
		Website: sub.Website,
		Content: sub.Content,
		Date:    time.Now().UTC(),
	}

	_, err := s.store.Update(ctx, articleID, func(comments []models.Comment) ([]models.Comment, error) {
		for i := range comments {
			if comments[i].ID == commentID {
				comments[i].Replies = append(comments[i].Replies, reply)
				return comments, nil
			}
		}
		return nil, ErrCommentNotFound
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("reply_id", reply.ID).
		Str("comment_id", commentID).
		Str("article_id", articleID).
		Msg("Reply posted")

	s.broadcaster.Broadcast(articleID, realtime.NewReplyEvent(articleID, commentID, reply))

	return &reply, nil
}

// Moderate applies the bot's approve/decline decision
func (s *commentService) Moderate(ctx context.Context, req *models.ModerationRequest) (string, error) {
	var approved *models.Comment

	_, err := s.store.Update(ctx, req.ArticleID, func(comments []models.Comment) ([]models.Comment, error) {
		idx := -1
		for i := range comments {
			if comments[i].ID == req.ID {
				idx = i
				break
			}
		}
		if idx == -1 {
			return nil, ErrCommentNotFound
		}

		if req.Action == models.ActionApprove {
			now := time.Now().UTC()
			comments[idx].Status = models.StatusApproved
			comments[idx].ApprovedAt = &now
			c := comments[idx]
			approved = &c
			return comments, nil
		}

		// Decline removes the comment entirely; no tombstone is kept
		return append(comments[:idx], comments[idx+1:]...), nil
	})
	if err != nil {
		return "", err
	}

	if req.Action == models.ActionApprove {
		s.log.Info().
			Str("comment_id", req.ID).
			Str("article_id", req.ArticleID).
			Msg("Comment approved")
		s.broadcaster.Broadcast(req.ArticleID, realtime.NewCommentEvent(req.ArticleID, *approved))
		return string(models.StatusApproved), nil
	}

	s.log.Info().
		Str("comment_id", req.ID).
		Str("article_id", req.ArticleID).
		Msg("Comment declined and removed")
	return "declined", nil
}
