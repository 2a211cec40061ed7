package models

import "time"

const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// Structured is the tabular payload attached to generated answers: a header
// row plus data rows whose lengths match the header.
type Structured struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// Feedback is a single feedback entry recorded against a message. Entries are
// append-only; repeated feedback accumulates rather than overwriting.
type Feedback struct {
	ID    string    `json:"id"`
	At    time.Time `json:"at"`
	Value string    `json:"feedback"`
}

type Message struct {
	ID         string      `json:"id"`
	Sender     string      `json:"sender"` // user or bot
	Text       string      `json:"text"`
	Timestamp  time.Time   `json:"timestamp"`
	Structured *Structured `json:"structured,omitempty"`
	Feedback   []Feedback  `json:"feedback,omitempty"`
}

type Session struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}

// SessionSummary is a Session annotated with its derived last-activity time:
// the timestamp of the newest message in its conversation, or CreatedAt when
// the conversation is empty or missing.
type SessionSummary struct {
	Session
	Updated time.Time `json:"updated"`
}

// Snapshot is the full persisted state: the ordered session list (newest
// first) and the per-session message histories, keyed by session id.
type Snapshot struct {
	Sessions      []Session            `json:"sessions"`
	Conversations map[string][]Message `json:"conversations"`
}
