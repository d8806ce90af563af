package mocks

import (
	"context"
	"sync"

	"github.com/comment-moderation-api/internal/models"
	"github.com/comment-moderation-api/internal/realtime"
	"github.com/comment-moderation-api/internal/store"
	"github.com/comment-moderation-api/internal/webhook"
)

// MockCommentStore is an in-memory mock implementation of CommentStore
type MockCommentStore struct {
	mu       sync.Mutex
	Data     map[string][]models.Comment
	ReadErr  error
	WriteErr error
}

// Verify interface compliance
var _ store.CommentStore = (*MockCommentStore)(nil)

func NewMockCommentStore() *MockCommentStore {
	return &MockCommentStore{
		Data: make(map[string][]models.Comment),
	}
}

func (m *MockCommentStore) Read(ctx context.Context, articleID string) ([]models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	comments := make([]models.Comment, len(m.Data[articleID]))
	copy(comments, m.Data[articleID])
	return comments, nil
}

func (m *MockCommentStore) Write(ctx context.Context, articleID string, comments []models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.Data[articleID] = comments
	return nil
}

func (m *MockCommentStore) Update(ctx context.Context, articleID string, mutate store.MutateFunc) ([]models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	comments := make([]models.Comment, len(m.Data[articleID]))
	copy(comments, m.Data[articleID])

	updated, err := mutate(comments)
	if err != nil {
		return nil, err
	}
	if m.WriteErr != nil {
		return nil, m.WriteErr
	}
	m.Data[articleID] = updated
	return updated, nil
}

// MockBroadcaster records broadcast events
type MockBroadcaster struct {
	mu     sync.Mutex
	Events []realtime.Event
}

// Verify interface compliance
var _ realtime.Broadcaster = (*MockBroadcaster)(nil)

func NewMockBroadcaster() *MockBroadcaster {
	return &MockBroadcaster{}
}

func (m *MockBroadcaster) Broadcast(articleID string, event realtime.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, event)
}

func (m *MockBroadcaster) EventCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Events)
}

// MockNotifier records moderation notifications
type MockNotifier struct {
	mu       sync.Mutex
	Notified []models.Comment
}

// Verify interface compliance
var _ webhook.Notifier = (*MockNotifier)(nil)

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) NotifyNewComment(comment models.Comment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Notified = append(m.Notified, comment)
}

func (m *MockNotifier) NotifiedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Notified)
}
