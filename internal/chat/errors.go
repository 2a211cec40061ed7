package chat

import "errors"

var (
	ErrNotFound        = errors.New("session not found")
	ErrMessageNotFound = errors.New("message not found")
	ErrEmptyQuestion   = errors.New("question is required")
)
