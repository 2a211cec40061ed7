package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lumibyte/lumichat/internal/answer"
	"github.com/lumibyte/lumichat/internal/metrics"
	"github.com/lumibyte/lumichat/internal/models"
	"github.com/lumibyte/lumichat/internal/store"
)

type ConversationService struct {
	store  *store.Store
	gen    answer.Generator
	logger *zap.Logger
}

func NewConversationService(st *store.Store, gen answer.Generator, logger *zap.Logger) *ConversationService {
	return &ConversationService{store: st, gen: gen, logger: logger}
}

// Messages returns the ordered history for a session, or ErrNotFound if no
// conversation exists for that id. A present-but-empty conversation is legal
// and yields an empty slice.
func (c *ConversationService) Messages(id string) ([]models.Message, error) {
	var out []models.Message
	found := false
	c.store.View(func(snap *models.Snapshot) {
		conv, ok := snap.Conversations[id]
		if !ok {
			return
		}
		found = true
		out = append([]models.Message{}, conv...)
	})
	if !found {
		return nil, ErrNotFound
	}
	return out, nil
}

// Post appends a user message and the generated bot reply to the
// conversation as one unit and persists. A blank question is rejected before
// any mutation; the generator also runs before mutation so a generator
// failure leaves no partial effects. Posting to an unknown id springs both
// the conversation and its session record into existence.
func (c *ConversationService) Post(ctx context.Context, id, question string) (models.Message, []models.Message, error) {
	if strings.TrimSpace(question) == "" {
		return models.Message{}, nil, ErrEmptyQuestion
	}

	ans, err := c.gen.Answer(ctx, question)
	if err != nil {
		return models.Message{}, nil, fmt.Errorf("failed to generate answer: %w", err)
	}

	userMsg := newMessage(models.SenderUser, question)
	botMsg := newMessage(models.SenderBot, ans.Text)
	botMsg.Structured = ans.Structured

	var history []models.Message
	c.store.Update(func(snap *models.Snapshot) error {
		if _, ok := snap.Conversations[id]; !ok {
			snap.Conversations[id] = []models.Message{
				newMessage(models.SenderBot, "Starting a new conversation."),
			}
			if !hasSession(snap.Sessions, id) {
				snap.Sessions = append([]models.Session{{
					ID:        id,
					Title:     defaultTitle,
					CreatedAt: time.Now().UTC(),
				}}, snap.Sessions...)
			}
		}
		snap.Conversations[id] = append(snap.Conversations[id], userMsg, botMsg)
		history = append([]models.Message{}, snap.Conversations[id]...)
		return nil
	})

	metrics.ChatExchangesTotal.Inc()
	c.logger.Debug("posted message",
		zap.String("session", id),
		zap.Int("history", len(history)))
	return botMsg, history, nil
}

// AddFeedback appends a feedback entry to a message. The value is stored as
// an open string; repeated feedback accumulates. Returns the updated message.
func (c *ConversationService) AddFeedback(id, messageID, value string) (models.Message, error) {
	var out models.Message
	err := c.store.Update(func(snap *models.Snapshot) error {
		conv, ok := snap.Conversations[id]
		if !ok {
			return ErrNotFound
		}
		for i := range conv {
			if conv[i].ID == messageID {
				conv[i].Feedback = append(conv[i].Feedback, models.Feedback{
					ID:    uuid.NewString(),
					At:    time.Now().UTC(),
					Value: value,
				})
				out = conv[i]
				return nil
			}
		}
		return ErrMessageNotFound
	})
	if err != nil {
		return models.Message{}, err
	}
	return out, nil
}

func hasSession(sessions []models.Session, id string) bool {
	for _, s := range sessions {
		if s.ID == id {
			return true
		}
	}
	return false
}
