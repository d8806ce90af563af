package mocks

import (
	"context"

	"github.com/comment-moderation-api/internal/models"
	"github.com/comment-moderation-api/internal/service"
)

// MockCommentService is a mock implementation of CommentService
type MockCommentService struct {
	ListFunc     func(ctx context.Context, articleID string, status models.CommentStatus) ([]models.Comment, error)
	CreateFunc   func(ctx context.Context, articleID string, sub *models.Submission) (*models.Comment, error)
	ReplyFunc    func(ctx context.Context, articleID, commentID string, sub *models.Submission) (*models.Reply, error)
	ModerateFunc func(ctx context.Context, req *models.ModerationRequest) (string, error)

	Comments        map[string][]models.Comment
	CreatedComments []*models.Comment
	CreatedReplies  []*models.Reply
	ModerationCalls []*models.ModerationRequest
}

// Verify interface compliance
var _ service.CommentService = (*MockCommentService)(nil)

func NewMockCommentService() *MockCommentService {
	return &MockCommentService{
		Comments: make(map[string][]models.Comment),
	}
}

func (m *MockCommentService) List(ctx context.Context, articleID string, status models.CommentStatus) ([]models.Comment, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, articleID, status)
	}
	filtered := make([]models.Comment, 0)
	for _, c := range m.Comments[articleID] {
		if c.EffectiveStatus() == status {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

func (m *MockCommentService) Create(ctx context.Context, articleID string, sub *models.Submission) (*models.Comment, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, articleID, sub)
	}
	comment := &models.Comment{
		ID:        "test-comment-id",
		ArticleID: articleID,
		Author:    sub.Author,
		Email:     sub.Email,
		Website:   sub.Website,
		Content:   sub.Content,
		Status:    models.StatusPending,
		Replies:   []models.Reply{},
	}
	m.CreatedComments = append(m.CreatedComments, comment)
	return comment, nil
}

func (m *MockCommentService) Reply(ctx context.Context, articleID, commentID string, sub *models.Submission) (*models.Reply, error) {
	if m.ReplyFunc != nil {
		return m.ReplyFunc(ctx, articleID, commentID, sub)
	}
	reply := &models.Reply{
		ID:      "test-reply-id",
		Author:  sub.Author,
		Email:   sub.Email,
		Website: sub.Website,
		Content: sub.Content,
	}
	m.CreatedReplies = append(m.CreatedReplies, reply)
	return reply, nil
}

func (m *MockCommentService) Moderate(ctx context.Context, req *models.ModerationRequest) (string, error) {
	m.ModerationCalls = append(m.ModerationCalls, req)
	if m.ModerateFunc != nil {
		return m.ModerateFunc(ctx, req)
	}
	if req.Action == models.ActionApprove {
		return string(models.StatusApproved), nil
	}
	return "declined", nil
}
