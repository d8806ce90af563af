package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/comment-moderation-api/internal/mocks"
	"github.com/comment-moderation-api/internal/models"
	"github.com/comment-moderation-api/internal/realtime"
	"github.com/comment-moderation-api/internal/service"
	"github.com/rs/zerolog"
)

func setupService() (service.CommentService, *mocks.MockCommentStore, *mocks.MockBroadcaster, *mocks.MockNotifier) {
	st := mocks.NewMockCommentStore()
	broadcaster := mocks.NewMockBroadcaster()
	notifier := mocks.NewMockNotifier()
	svc := service.New(st, broadcaster, notifier, zerolog.Nop())
	return svc, st, broadcaster, notifier
}

func TestCreate_StoresPendingAndNotifies(t *testing.T) {
	svc, st, broadcaster, notifier := setupService()
	ctx := context.Background()

	comment, err := svc.Create(ctx, "42", &models.Submission{Author: "A", Content: "hi"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if comment.Status != models.StatusPending {
		t.Errorf("Expected pending status, got %s", comment.Status)
	}
	if comment.ArticleID != "42" {
		t.Errorf("Expected articleId 42, got %s", comment.ArticleID)
	}
	if comment.ID == "" {
		t.Error("Expected a generated id")
	}
	if comment.Replies == nil || len(comment.Replies) != 0 {
		t.Errorf("Expected empty replies, got %v", comment.Replies)
	}

	stored := st.Data["42"]
	if len(stored) != 1 || stored[0].ID != comment.ID {
		t.Errorf("Expected the comment to be persisted, got %v", stored)
	}

	// New comments are never broadcast before approval
	if broadcaster.EventCount() != 0 {
		t.Errorf("Expected no broadcasts, got %d", broadcaster.EventCount())
	}

	// The moderation bot is notified once
	if notifier.NotifiedCount() != 1 {
		t.Errorf("Expected 1 moderation notification, got %d", notifier.NotifiedCount())
	}
}

func TestCreate_VisibleInPendingFilterOnly(t *testing.T) {
	svc, _, _, _ := setupService()
	ctx := context.Background()

	comment, err := svc.Create(ctx, "42", &models.Submission{Author: "A", Content: "hi"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	pending, err := svc.List(ctx, "42", models.StatusPending)
	if err != nil {
		t.Fatalf("List pending failed: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != comment.ID {
		t.Errorf("Expected the new comment in the pending filter, got %v", pending)
	}

	approved, err := svc.List(ctx, "42", models.StatusApproved)
	if err != nil {
		t.Fatalf("List approved failed: %v", err)
	}
	if len(approved) != 0 {
		t.Errorf("New comment must not appear in the approved filter, got %v", approved)
	}
}

func TestCreate_UniqueIDs(t *testing.T) {
	svc, _, _, _ := setupService()
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		comment, err := svc.Create(ctx, "42", &models.Submission{Author: "A", Content: "hi"})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if seen[comment.ID] {
			t.Fatalf("Duplicate id generated: %s", comment.ID)
		}
		seen[comment.ID] = true
	}
}

func TestModerate_Approve(t *testing.T) {
	svc, st, broadcaster, _ := setupService()
	ctx := context.Background()

	comment, _ := svc.Create(ctx, "42", &models.Submission{Author: "A", Content: "hi"})

	status, err := svc.Moderate(ctx, &models.ModerationRequest{
		ArticleID: "42",
		ID:        comment.ID,
		Action:    models.ActionApprove,
	})
	if err != nil {
		t.Fatalf("Moderate failed: %v", err)
	}
	if status != "approved" {
		t.Errorf("Expected status 'approved', got %s", status)
	}

	stored := st.Data["42"]
	if len(stored) != 1 {
		t.Fatalf("Expected 1 stored comment, got %d", len(stored))
	}
	if stored[0].Status != models.StatusApproved {
		t.Errorf("Expected stored status approved, got %s", stored[0].Status)
	}
	if stored[0].ApprovedAt == nil {
		t.Error("Expected approvedAt to be set")
	}

	// Exactly one newComment broadcast
	if broadcaster.EventCount() != 1 {
		t.Fatalf("Expected 1 broadcast, got %d", broadcaster.EventCount())
	}
	if broadcaster.Events[0].Event != realtime.EventNewComment {
		t.Errorf("Expected newComment event, got %s", broadcaster.Events[0].Event)
	}

	approved, _ := svc.List(ctx, "42", models.StatusApproved)
	if len(approved) != 1 {
		t.Errorf("Approved comment should appear in the approved filter, got %v", approved)
	}
}

func TestModerate_Decline(t *testing.T) {
	svc, st, broadcaster, _ := setupService()
	ctx := context.Background()

	comment, _ := svc.Create(ctx, "42", &models.Submission{Author: "A", Content: "spam"})

	status, err := svc.Moderate(ctx, &models.ModerationRequest{
		ArticleID: "42",
		ID:        comment.ID,
		Action:    models.ActionDecline,
	})
	if err != nil {
		t.Fatalf("Moderate failed: %v", err)
	}
	if status != "declined" {
		t.Errorf("Expected status 'declined', got %s", status)
	}

	// Removed entirely, no tombstone
	if len(st.Data["42"]) != 0 {
		t.Errorf("Declined comment must be deleted, got %v", st.Data["42"])
	}

	pending, _ := svc.List(ctx, "42", models.StatusPending)
	approved, _ := svc.List(ctx, "42", models.StatusApproved)
	if len(pending) != 0 || len(approved) != 0 {
		t.Error("Declined comment must be absent from both filters")
	}

	// Declines are never broadcast
	if broadcaster.EventCount() != 0 {
		t.Errorf("Expected no broadcasts, got %d", broadcaster.EventCount())
	}
}

func TestModerate_CommentNotFound(t *testing.T) {
	svc, _, _, _ := setupService()

	_, err := svc.Moderate(context.Background(), &models.ModerationRequest{
		ArticleID: "42",
		ID:        "missing",
		Action:    models.ActionApprove,
	})
	if !errors.Is(err, service.ErrCommentNotFound) {
		t.Errorf("Expected ErrCommentNotFound, got %v", err)
	}
}

func TestReply_AppendsInOrderAndBroadcasts(t *testing.T) {
	svc, st, broadcaster, _ := setupService()
	ctx := context.Background()

	comment, _ := svc.Create(ctx, "42", &models.Submission{Author: "A", Content: "hi"})

	r1, err := svc.Reply(ctx, "42", comment.ID, &models.Submission{Author: "B", Content: "first"})
	if err != nil {
		t.Fatalf("Reply failed: %v", err)
	}
	r2, err := svc.Reply(ctx, "42", comment.ID, &models.Submission{Author: "C", Content: "second"})
	if err != nil {
		t.Fatalf("Reply failed: %v", err)
	}

	replies := st.Data["42"][0].Replies
	if len(replies) != 2 {
		t.Fatalf("Expected 2 replies, got %d", len(replies))
	}
	if replies[0].ID != r1.ID || replies[1].ID != r2.ID {
		t.Errorf("Replies out of order: got [%s, %s], want [%s, %s]",
			replies[0].ID, replies[1].ID, r1.ID, r2.ID)
	}

	// Each reply is broadcast immediately, no moderation gate
	if broadcaster.EventCount() != 2 {
		t.Fatalf("Expected 2 broadcasts, got %d", broadcaster.EventCount())
	}
	for _, ev := range broadcaster.Events {
		if ev.Event != realtime.EventNewReply {
			t.Errorf("Expected newReply event, got %s", ev.Event)
		}
	}
}

func TestReply_UnknownComment(t *testing.T) {
	svc, _, _, _ := setupService()
	ctx := context.Background()

	svc.Create(ctx, "42", &models.Submission{Author: "A", Content: "hi"})

	_, err := svc.Reply(ctx, "42", "missing", &models.Submission{Author: "B", Content: "??"})
	if !errors.Is(err, service.ErrCommentNotFound) {
		t.Errorf("Expected ErrCommentNotFound, got %v", err)
	}
}

func TestReply_UnknownArticle(t *testing.T) {
	svc, _, _, _ := setupService()

	// An article with no stored comments behaves like a missing comment id
	_, err := svc.Reply(context.Background(), "no-such-article", "1", &models.Submission{Author: "B", Content: "??"})
	if !errors.Is(err, service.ErrCommentNotFound) {
		t.Errorf("Expected ErrCommentNotFound, got %v", err)
	}
}

func TestList_StoreFailurePropagates(t *testing.T) {
	svc, st, _, _ := setupService()

	st.ReadErr = errors.New("corrupt file")

	_, err := svc.List(context.Background(), "42", models.StatusApproved)
	if err == nil {
		t.Error("Expected store failure to propagate")
	}
}
