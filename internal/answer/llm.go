package answer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// LLM answers questions through an OpenAI-compatible completion endpoint.
// It returns plain text with no structured payload; swapping it in for the
// mock touches nothing outside this package.
type LLM struct {
	llm llms.LLM
}

func NewLLM(baseURL, token, model string) (*LLM, error) {
	client, err := openai.New(
		openai.WithToken(token),
		openai.WithBaseURL(baseURL),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, err
	}
	return &LLM{llm: client}, nil
}

func (l *LLM) Answer(ctx context.Context, question string) (Answer, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	completion, err := llms.GenerateFromSinglePrompt(ctx, l.llm, question)
	if err != nil {
		return Answer{}, fmt.Errorf("failed to generate completion: %w", err)
	}

	return Answer{Text: strings.TrimSpace(completion)}, nil
}
