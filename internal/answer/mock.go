package answer

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/lumibyte/lumichat/internal/models"
)

// Mock is the default generator: deterministic, side-effect free, and never
// failing. It echoes the question and attaches a fixed-shape metrics table.
type Mock struct{}

func (Mock) Answer(_ context.Context, question string) (Answer, error) {
	words := len(strings.Fields(question))
	return Answer{
		Text: fmt.Sprintf("Mock answer for: \"%s\"", question),
		Structured: &models.Structured{
			Headers: []string{"Metric", "Value"},
			Rows: [][]string{
				{"Question Length", strconv.Itoa(len(question))},
				{"Words", strconv.Itoa(words)},
				{"Confidence", "0.85 (mock)"},
			},
		},
	}, nil
}
