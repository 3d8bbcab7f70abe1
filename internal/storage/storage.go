package storage

import "time"

// Failure kinds recorded with a turn.
const (
	FailureNone                 = ""
	FailureConfigurationMissing = "configuration_missing"
	FailureGenerationFailed     = "generation_failed"
)

// Event represents one completed turn: the user's message and the reply
// (or advisory) that was appended for it.
// Events are expected to be appended in chronological order.
type Event struct {
	Timestamp         time.Time `json:"timestamp"`
	SessionID         string    `json:"session_id"`
	UserMessage       string    `json:"user_message"`
	AssistantResponse string    `json:"assistant_response"`
	IsError           bool      `json:"is_error,omitempty"`
	FailureKind       string    `json:"failure_kind,omitempty"`
	Model             string    `json:"model,omitempty"`
	PromptTokens      int       `json:"prompt_tokens,omitempty"`
	CompletionTokens  int       `json:"completion_tokens,omitempty"`
	TotalTokens       int       `json:"total_tokens,omitempty"`
	LatencyMS         int64     `json:"latency_ms,omitempty"`
}

// Recorder abstracts the turn journal. It is write-mostly diagnostics and is
// never used to restore a conversation.
// LoadInteractions should return events in chronological order.
// Implementations must be safe for concurrent use.
type Recorder interface {
	AppendInteraction(event Event) error
	LoadInteractions() ([]Event, error)
}
