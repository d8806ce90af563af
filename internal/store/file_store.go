package store

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/comment-moderation-api/internal/config"
	"github.com/comment-moderation-api/internal/models"
	"github.com/rs/zerolog"
)

// fileStore is the concrete implementation of CommentStore backed by one
// JSON file per article under a data directory
type fileStore struct {
	dataDir string
	log     zerolog.Logger

	// Per-article locks serializing read-modify-write cycles
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewFileStore creates a file-backed comment store, creating the data
// directory if necessary
func NewFileStore(cfg *config.StoreConfig, log zerolog.Logger) (CommentStore, error) {
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s := &fileStore{
		dataDir: cfg.DataDir,
		log:     log.With().Str("component", "store").Logger(),
		locks:   make(map[string]*sync.Mutex),
	}

	s.log.Info().Str("data_dir", cfg.DataDir).Msg("Comment store initialized")
	return s, nil
}

// filePath returns the storage path for an article. The article id is
// escaped so ids containing path separators cannot leave the data dir.
func (s *fileStore) filePath(articleID string) string {
	return filepath.Join(s.dataDir, fmt.Sprintf("comments_%s.json", url.PathEscape(articleID)))
}

// lockFor returns the mutex serializing mutations for one article
func (s *fileStore) lockFor(articleID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[articleID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[articleID] = l
	}
	return l
}

// Read loads an article's comment collection
func (s *fileStore) Read(ctx context.Context, articleID string) ([]models.Comment, error) {
	return s.read(articleID)
}

// read is the lock-free load used both directly and under an update lock
func (s *fileStore) read(articleID string) ([]models.Comment, error) {
	data, err := os.ReadFile(s.filePath(articleID))
	if os.IsNotExist(err) {
		// No comments yet for this article
		return []models.Comment{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read comments for article %s: %w", articleID, err)
	}

	var comments []models.Comment
	if err := json.Unmarshal(data, &comments); err != nil {
		// A present but unparsable file is surfaced, not treated as empty,
		// so corruption never silently discards a thread
		s.log.Error().Err(err).Str("article_id", articleID).Msg("Failed to parse comment file")
		return nil, fmt.Errorf("article %s: %w", articleID, ErrCorruptData)
	}

	if comments == nil {
		comments = []models.Comment{}
	}
	return comments, nil
}

// Write replaces an article's comment collection under the article lock
func (s *fileStore) Write(ctx context.Context, articleID string, comments []models.Comment) error {
	lock := s.lockFor(articleID)
	lock.Lock()
	defer lock.Unlock()

	return s.write(articleID, comments)
}

// write serializes and atomically replaces the article's file. The rename
// guarantees readers never observe a partial write.
func (s *fileStore) write(articleID string, comments []models.Comment) error {
	if comments == nil {
		comments = []models.Comment{}
	}

	data, err := json.MarshalIndent(comments, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize comments for article %s: %w", articleID, err)
	}

	path := s.filePath(articleID)
	tmp, err := os.CreateTemp(s.dataDir, "comments_*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace comment file: %w", err)
	}

	return nil
}

// Update applies mutate under the article's lock and persists the result
func (s *fileStore) Update(ctx context.Context, articleID string, mutate MutateFunc) ([]models.Comment, error) {
	lock := s.lockFor(articleID)
	lock.Lock()
	defer lock.Unlock()

	comments, err := s.read(articleID)
	if err != nil {
		return nil, err
	}

	updated, err := mutate(comments)
	if err != nil {
		return nil, err
	}

	if err := s.write(articleID, updated); err != nil {
		return nil, err
	}

	return updated, nil
}
