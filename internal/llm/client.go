package llm

import (
	"context"
	"errors"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ErrMissingCredentials is returned by the factory when the selected
// provider has no credentials configured.
var ErrMissingCredentials = errors.New("llm credentials are not configured")

type Message struct {
	Role    string
	Content string
}

type Response struct {
	Content          string
	Model            string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Sampling holds the fixed generation parameters sent with every request.
type Sampling struct {
	Temperature     float32
	MaxOutputTokens int
}

type Client interface {
	Generate(ctx context.Context, messages []Message) (Response, error)
}
