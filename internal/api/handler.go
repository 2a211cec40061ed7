// Package api adapts HTTP+JSON requests onto the chat services.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/lumibyte/lumichat/internal/chat"
	"github.com/lumibyte/lumichat/internal/models"
)

type Handler struct {
	sessions *chat.SessionService
	convs    *chat.ConversationService
	logger   *zap.Logger
}

func NewHandler(sessions *chat.SessionService, convs *chat.ConversationService, logger *zap.Logger) *Handler {
	return &Handler{
		sessions: sessions,
		convs:    convs,
		logger:   logger,
	}
}

// Register wires the API routes onto the router.
func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/api/sessions", h.ListSessions).Methods(http.MethodGet)
	r.HandleFunc("/api/new-chat", h.NewChat).Methods(http.MethodGet)
	r.HandleFunc("/api/session/{id}", h.GetSession).Methods(http.MethodGet)
	r.HandleFunc("/api/session/{id}", h.RenameSession).Methods(http.MethodPut)
	r.HandleFunc("/api/session/{id}", h.DeleteSession).Methods(http.MethodDelete)
	r.HandleFunc("/api/session/{id}/feedback", h.AddFeedback).Methods(http.MethodPost)
	r.HandleFunc("/api/chat/{id}", h.PostChat).Methods(http.MethodPost)
}

type renameRequest struct {
	Title string `json:"title"`
}

type chatRequest struct {
	Question string `json:"question"`
}

type feedbackRequest struct {
	MessageID string `json:"messageId"`
	Feedback  string `json:"feedback"`
}

type sessionResponse struct {
	ID       string           `json:"id"`
	Messages []models.Message `json:"messages"`
}

type chatResponse struct {
	Text       string             `json:"text"`
	Structured *models.Structured `json:"structured,omitempty"`
	Messages   []models.Message   `json:"messages"`
}

func (h *Handler) ListSessions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.sessions.List())
}

func (h *Handler) NewChat(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.sessions.Create())
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	messages, err := h.convs.Messages(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{ID: id, Messages: messages})
}

func (h *Handler) PostChat(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req chatRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	botMsg, messages, err := h.convs.Post(r.Context(), id, req.Question)
	switch {
	case errors.Is(err, chat.ErrEmptyQuestion):
		writeError(w, http.StatusBadRequest, "Question is required")
		return
	case err != nil:
		h.logger.Error("failed to answer question",
			zap.Error(err),
			zap.String("session", id))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		Text:       botMsg.Text,
		Structured: botMsg.Structured,
		Messages:   messages,
	})
}

func (h *Handler) RenameSession(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req renameRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		writeError(w, http.StatusBadRequest, "Title is required")
		return
	}

	session, err := h.sessions.Rename(id, title)
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !h.sessions.Delete(id) {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) AddFeedback(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req feedbackRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.MessageID == "" || req.Feedback == "" {
		writeError(w, http.StatusBadRequest, "messageId and feedback are required")
		return
	}

	message, err := h.convs.AddFeedback(id, req.MessageID, req.Feedback)
	if err != nil {
		writeError(w, http.StatusNotFound, "Session or message not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"message": message,
	})
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "Lumibyte mock API running")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decodeJSON(body io.ReadCloser, dest any) error {
	defer body.Close()
	return json.NewDecoder(body).Decode(dest)
}
