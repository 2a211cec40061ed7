// Package answer produces bot replies to user questions. The Generator
// interface is the seam where a real answering backend plugs in; the rest of
// the system only ever sees text plus an optional table.
package answer

import (
	"context"

	"github.com/lumibyte/lumichat/internal/models"
)

// Answer is a generated reply: display text and an optional tabular payload.
type Answer struct {
	Text       string
	Structured *models.Structured
}

type Generator interface {
	Answer(ctx context.Context, question string) (Answer, error)
}
