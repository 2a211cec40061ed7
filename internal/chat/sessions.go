// Package chat implements the session and conversation services on top of
// the snapshot store.
package chat

import (
	"crypto/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lumibyte/lumichat/internal/models"
	"github.com/lumibyte/lumichat/internal/store"
)

const defaultTitle = "New Chat"

const sessionIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// newSessionID returns a short id of the form sess-xxxxxxx.
func newSessionID() string {
	buf := make([]byte, 7)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms.
		panic(err)
	}
	for i, b := range buf {
		buf[i] = sessionIDAlphabet[int(b)%len(sessionIDAlphabet)]
	}
	return "sess-" + string(buf)
}

func newMessage(sender, text string) models.Message {
	return models.Message{
		ID:        uuid.NewString(),
		Sender:    sender,
		Text:      text,
		Timestamp: time.Now().UTC(),
	}
}

type SessionService struct {
	store  *store.Store
	logger *zap.Logger
}

func NewSessionService(st *store.Store, logger *zap.Logger) *SessionService {
	return &SessionService{store: st, logger: logger}
}

// List returns all sessions in stored order (newest first), each annotated
// with the timestamp of its most recent message, falling back to CreatedAt
// for empty or missing conversations.
func (s *SessionService) List() []models.SessionSummary {
	var out []models.SessionSummary
	s.store.View(func(snap *models.Snapshot) {
		out = make([]models.SessionSummary, 0, len(snap.Sessions))
		for _, sess := range snap.Sessions {
			updated := sess.CreatedAt
			if conv := snap.Conversations[sess.ID]; len(conv) > 0 {
				updated = conv[len(conv)-1].Timestamp
			}
			out = append(out, models.SessionSummary{Session: sess, Updated: updated})
		}
	})
	return out
}

// Create allocates a new session at the front of the list, seeds its
// conversation with a single bot welcome message and persists. It never
// fails.
func (s *SessionService) Create() models.Session {
	sess := models.Session{
		ID:        newSessionID(),
		Title:     defaultTitle,
		CreatedAt: time.Now().UTC(),
	}
	s.store.Update(func(snap *models.Snapshot) error {
		snap.Sessions = append([]models.Session{sess}, snap.Sessions...)
		snap.Conversations[sess.ID] = []models.Message{
			newMessage(models.SenderBot, "New session created. How can I help?"),
		}
		return nil
	})
	s.logger.Debug("created session", zap.String("id", sess.ID))
	return sess
}

// Rename overwrites the title of an existing session. Title validation is the
// wire layer's job; an unknown id yields ErrNotFound with no state change.
func (s *SessionService) Rename(id, title string) (models.Session, error) {
	var out models.Session
	err := s.store.Update(func(snap *models.Snapshot) error {
		for i := range snap.Sessions {
			if snap.Sessions[i].ID == id {
				snap.Sessions[i].Title = title
				out = snap.Sessions[i]
				return nil
			}
		}
		return ErrNotFound
	})
	if err != nil {
		return models.Session{}, err
	}
	return out, nil
}

// Delete removes a session and discards its conversation. Deleting an absent
// id is a no-op, not an error; the return value reports whether the session
// existed so the wire layer can answer 404 on unknown ids.
func (s *SessionService) Delete(id string) bool {
	existed := false
	s.store.Update(func(snap *models.Snapshot) error {
		kept := snap.Sessions[:0]
		for _, sess := range snap.Sessions {
			if sess.ID == id {
				existed = true
				continue
			}
			kept = append(kept, sess)
		}
		snap.Sessions = kept
		delete(snap.Conversations, id)
		return nil
	})
	return existed
}
