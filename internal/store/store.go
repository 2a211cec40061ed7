// Package store persists the chat state as a single JSON snapshot on disk.
package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lumibyte/lumichat/internal/metrics"
	"github.com/lumibyte/lumichat/internal/models"
)

// Store owns the session list and per-session message histories. All access
// goes through View and Update, which serialize on a single mutex; Update
// flushes the full snapshot to disk before returning. A failed flush is
// logged and swallowed: the in-memory mutation stands and the caller still
// sees success, with the next mutation retrying the write.
type Store struct {
	mu     sync.Mutex
	path   string
	logger *zap.Logger
	data   models.Snapshot
}

// Open loads the snapshot at path, or initializes one. A missing file is
// seeded with the sample dataset and persisted immediately; an unreadable or
// unparseable file is logged and replaced in memory by empty collections,
// leaving the file on disk untouched so the corruption stays diagnosable.
func Open(path string, logger *zap.Logger) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	s := &Store{path: path, logger: logger}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		s.data = seedSnapshot()
		s.save()
	case err != nil:
		logger.Error("failed to read snapshot, starting empty",
			zap.Error(err),
			zap.String("path", path))
	default:
		if err := json.Unmarshal(raw, &s.data); err != nil {
			logger.Error("failed to parse snapshot, starting empty",
				zap.Error(err),
				zap.String("path", path))
			s.data = models.Snapshot{}
		}
	}

	if s.data.Sessions == nil {
		s.data.Sessions = []models.Session{}
	}
	if s.data.Conversations == nil {
		s.data.Conversations = map[string][]models.Message{}
	}

	return s, nil
}

// View runs fn with read access to the snapshot. fn must not retain the
// snapshot or any of its slices past the call; copy what escapes.
func (s *Store) View(fn func(*models.Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.data)
}

// Update runs fn with write access to the snapshot and flushes the result to
// disk. If fn returns an error nothing is saved and the error is passed
// through; fn must leave the snapshot unmodified on that path.
func (s *Store) Update(fn func(*models.Snapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(&s.data); err != nil {
		return err
	}
	s.save()
	return nil
}

func (s *Store) save() {
	if err := s.write(); err != nil {
		metrics.SnapshotSaveFailuresTotal.Inc()
		s.logger.Error("failed to save snapshot",
			zap.Error(err),
			zap.String("path", s.path))
	}
}

// write replaces the snapshot file atomically via a temp file and rename.
func (s *Store) write() error {
	tmp := s.path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&s.data); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	return os.Rename(tmp, s.path)
}

func seedSnapshot() models.Snapshot {
	now := time.Now().UTC()
	return models.Snapshot{
		Sessions: []models.Session{
			{ID: "session-1", Title: "Project planning ideas", CreatedAt: now},
			{ID: "session-2", Title: "API design notes", CreatedAt: now},
		},
		Conversations: map[string][]models.Message{
			"session-1": {{
				ID:        uuid.NewString(),
				Sender:    models.SenderBot,
				Text:      "Welcome! Ask me anything about project planning.",
				Timestamp: now,
			}},
			"session-2": {{
				ID:        uuid.NewString(),
				Sender:    models.SenderBot,
				Text:      "API design ideas: REST vs GraphQL — ask a specific question.",
				Timestamp: now,
			}},
		},
	}
}
