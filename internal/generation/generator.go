package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"neural-uplink/internal/history"
	"neural-uplink/internal/llm"
)

var (
	// ErrConfigurationMissing means no client is configured; no request was made.
	ErrConfigurationMissing = errors.New("generation configuration missing")
	// ErrGenerationFailed covers transport, remote, timeout and empty-payload failures.
	ErrGenerationFailed = errors.New("generation failed")
)

const (
	DefaultAssistantName = "ManitAI"
	DefaultTimeout       = 30 * time.Second
)

type Result struct {
	Text             string
	Model            string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	Latency          time.Duration
}

// Generator turns a conversation plus a new user line into one request to
// an llm.Client. It never retries and never caches.
type Generator struct {
	client            llm.Client
	systemInstruction string
	assistantName     string
	timeout           time.Duration
	log               logrus.FieldLogger
	now               func() time.Time
}

type Option func(*Generator)

func WithSystemInstruction(s string) Option {
	return func(g *Generator) { g.systemInstruction = s }
}

func WithAssistantName(name string) Option {
	return func(g *Generator) {
		if name != "" {
			g.assistantName = name
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(g *Generator) {
		if d > 0 {
			g.timeout = d
		}
	}
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(g *Generator) {
		if l != nil {
			g.log = l
		}
	}
}

// New creates a Generator. A nil client is allowed and makes every call
// fail with ErrConfigurationMissing.
func New(client llm.Client, opts ...Option) *Generator {
	g := &Generator{
		client:            client,
		systemInstruction: DefaultSystemInstruction,
		assistantName:     DefaultAssistantName,
		timeout:           DefaultTimeout,
		log:               logrus.StandardLogger(),
		now:               time.Now,
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Configured reports whether a client is available.
func (g *Generator) Configured() bool {
	return g.client != nil
}

func (g *Generator) Generate(ctx context.Context, prior []history.Message, newUserText string) (Result, error) {
	if g.client == nil {
		return Result{}, ErrConfigurationMissing
	}
	if strings.TrimSpace(newUserText) == "" {
		return Result{}, fmt.Errorf("%w: empty user text", ErrGenerationFailed)
	}

	prompt := BuildPrompt(g.systemInstruction, g.assistantName, prior, newUserText)

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := g.now()
	resp, err := g.client.Generate(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}})
	latency := g.now().Sub(start)
	if err != nil {
		g.log.WithError(err).WithField("latency", latency).Warn("generation request failed")
		return Result{}, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	text := strings.TrimSpace(resp.Content)
	if text == "" {
		g.log.WithField("model", resp.Model).Warn("generation returned empty text")
		return Result{}, fmt.Errorf("%w: empty response", ErrGenerationFailed)
	}

	g.log.WithFields(logrus.Fields{
		"model":             resp.Model,
		"latency":           latency,
		"prompt_tokens":     resp.PromptTokens,
		"completion_tokens": resp.CompletionTokens,
		"total_tokens":      resp.TotalTokens,
	}).Debug("generation completed")

	return Result{
		Text:             text,
		Model:            resp.Model,
		PromptTokens:     resp.PromptTokens,
		CompletionTokens: resp.CompletionTokens,
		TotalTokens:      resp.TotalTokens,
		Latency:          latency,
	}, nil
}
