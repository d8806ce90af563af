package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/comment-moderation-api/internal/config"
	"github.com/comment-moderation-api/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (CommentStore, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := NewFileStore(&config.StoreConfig{DataDir: dir}, zerolog.Nop())
	require.NoError(t, err)
	return s, dir
}

func sampleComments() []models.Comment {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	approvedAt := now.Add(time.Hour)
	return []models.Comment{
		{
			ID:         "1000",
			ArticleID:  "42",
			Author:     "Alice",
			Email:      "alice@example.com",
			Website:    "https://alice.example.com",
			Content:    "first!",
			Date:       now,
			Status:     models.StatusApproved,
			ApprovedAt: &approvedAt,
			Replies: []models.Reply{
				{ID: "1001", Author: "Bob", Content: "welcome", Date: now.Add(time.Minute)},
				{ID: "1002", Author: "Carol", Content: "hello", Date: now.Add(2 * time.Minute)},
			},
		},
		{
			ID:        "2000",
			ArticleID: "42",
			Author:    "Dave",
			Content:   "still pending",
			Date:      now.Add(3 * time.Minute),
			Status:    models.StatusPending,
			Replies:   []models.Reply{},
		},
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	want := sampleComments()
	require.NoError(t, s.Write(ctx, "42", want))

	got, err := s.Read(ctx, "42")
	require.NoError(t, err)
	require.Len(t, got, len(want))

	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.Equal(t, want[i].Author, got[i].Author)
		assert.Equal(t, want[i].Email, got[i].Email)
		assert.Equal(t, want[i].Website, got[i].Website)
		assert.Equal(t, want[i].Content, got[i].Content)
		assert.Equal(t, want[i].Status, got[i].Status)
		assert.True(t, want[i].Date.Equal(got[i].Date), "date mismatch at %d", i)
		require.Len(t, got[i].Replies, len(want[i].Replies))
		for j := range want[i].Replies {
			assert.Equal(t, want[i].Replies[j].ID, got[i].Replies[j].ID)
			assert.Equal(t, want[i].Replies[j].Content, got[i].Replies[j].Content)
		}
	}

	if want[0].ApprovedAt != nil {
		require.NotNil(t, got[0].ApprovedAt)
		assert.True(t, want[0].ApprovedAt.Equal(*got[0].ApprovedAt))
	}
	assert.Nil(t, got[1].ApprovedAt)
}

func TestFileStore_MissingFileReadsEmpty(t *testing.T) {
	s, _ := newTestStore(t)

	got, err := s.Read(context.Background(), "never-written")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFileStore_CorruptFileSurfacesError(t *testing.T) {
	s, dir := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "comments_42.json"), []byte("{not json"), 0644))

	_, err := s.Read(ctx, "42")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCorruptData))

	// Corruption also blocks updates instead of clobbering the file
	_, err = s.Update(ctx, "42", func(c []models.Comment) ([]models.Comment, error) {
		return c, nil
	})
	assert.True(t, errors.Is(err, ErrCorruptData))
}

func TestFileStore_NilWritesEmptyArray(t *testing.T) {
	s, dir := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Write(ctx, "42", nil))

	data, err := os.ReadFile(filepath.Join(dir, "comments_42.json"))
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestFileStore_ArticleIDCannotEscapeDataDir(t *testing.T) {
	s, dir := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Write(ctx, "../evil", []models.Comment{}))

	// The escaped id stays a single filename inside the data dir
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	parent, err := os.ReadDir(filepath.Dir(dir))
	require.NoError(t, err)
	for _, e := range parent {
		assert.NotEqual(t, "evil.json", e.Name())
	}
}

func TestFileStore_UpdateAbortsWithoutWriting(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Write(ctx, "42", sampleComments()))

	boom := errors.New("mutate rejected")
	_, err := s.Update(ctx, "42", func(c []models.Comment) ([]models.Comment, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := s.Read(ctx, "42")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestFileStore_ConcurrentUpdatesLoseNothing(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	const writers = 20
	var wg sync.WaitGroup
	wg.Add(writers)

	for i := 0; i < writers; i++ {
		go func(n int) {
			defer wg.Done()
			_, err := s.Update(ctx, "42", func(comments []models.Comment) ([]models.Comment, error) {
				return append(comments, models.Comment{
					ID:        "id-" + string(rune('a'+n)),
					ArticleID: "42",
					Author:    "writer",
					Content:   "c",
					Replies:   []models.Reply{},
				}), nil
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	got, err := s.Read(ctx, "42")
	require.NoError(t, err)
	assert.Len(t, got, writers)
}

func TestFileStore_NoTempFilesLeftBehind(t *testing.T) {
	s, dir := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Write(ctx, "42", sampleComments()))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
