// Package session owns one chat conversation: it guards submissions with a
// two-state machine, forwards each turn to a generator, appends the reply
// or an advisory, and hands the newest reply to the reveal stage.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"neural-uplink/internal/generation"
	"neural-uplink/internal/history"
	"neural-uplink/internal/reveal"
	"neural-uplink/internal/storage"
)

const (
	AdvisoryConfigurationMissing = "System Error: Neural Link Disconnected (Missing API Key). Please configure the environment."
	AdvisoryGenerationFailed     = "Error: Cognitive overload. Please try again later."
	DemoModeNotice               = "Demo Mode: API Key required in environment for real responses."
	DefaultGreeting              = "Greetings. I am Manit's digital consciousness. Ask me about his RAG architectures, fine-tuning experience, or why he's the perfect fit for your team."
)

type State int

const (
	StateIdle State = iota
	StateAwaitingResponse
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingResponse:
		return "awaiting_response"
	default:
		return "unknown"
	}
}

// Generator produces the reply for one turn.
type Generator interface {
	Generate(ctx context.Context, prior []history.Message, newUserText string) (generation.Result, error)
}

// Controller is a single chat session. Create it with New and release it
// with Dispose.
type Controller struct {
	id       string
	gen      Generator
	store    *history.Store
	stage    *reveal.Stage
	recorder storage.Recorder
	log      logrus.FieldLogger
	observer Observer
	now      func() time.Time
	greeting string

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	state    State
	input    string
	inflight chan struct{}
	disposed bool
}

type Option func(*Controller)

func WithGreeting(text string) Option {
	return func(c *Controller) {
		if strings.TrimSpace(text) != "" {
			c.greeting = text
		}
	}
}

// WithStage supplies the reveal stage; its observer is replaced by the
// controller's.
func WithStage(s *reveal.Stage) Option {
	return func(c *Controller) {
		if s != nil {
			c.stage = s
		}
	}
}

func WithRecorder(r storage.Recorder) Option {
	return func(c *Controller) { c.recorder = r }
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

func WithObserver(o Observer) Option {
	return func(c *Controller) { c.observer = o }
}

func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates an idle session seeded with the greeting and starts the
// greeting's reveal.
func New(gen Generator, opts ...Option) *Controller {
	c := &Controller{
		id:       uuid.NewString(),
		gen:      gen,
		store:    history.NewStore(),
		log:      logrus.StandardLogger(),
		now:      time.Now,
		greeting: DefaultGreeting,
	}
	for _, o := range opts {
		o(c)
	}
	if c.stage == nil {
		c.stage = reveal.NewStage()
	}
	c.log = c.log.WithField("session_id", c.id)
	c.ctx, c.cancel = context.WithCancel(context.Background())
	c.stage.SetObserver(c.forwardFrame)

	greeting := history.NewMessage(history.RoleModel, c.greeting, c.now())
	c.store.Append(greeting)
	c.stage.Start(greeting.ID, greeting.Content)
	return c
}

func (c *Controller) ID() string { return c.id }

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Busy() bool { return c.State() == StateAwaitingResponse }

// Messages returns a copy of the conversation in insertion order.
func (c *Controller) Messages() []history.Message { return c.store.Snapshot() }

// Reveal returns the reveal of the newest model message.
func (c *Controller) Reveal() *reveal.Reveal { return c.stage.Current() }

// Configured reports whether the generator can reach a provider. Generators
// that do not say are assumed configured.
func (c *Controller) Configured() bool {
	if g, ok := c.gen.(interface{ Configured() bool }); ok {
		return g.Configured()
	}
	return true
}

func (c *Controller) SetInput(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.input = text
}

func (c *Controller) Input() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.input
}

// Submit places text in the input buffer and sends it.
func (c *Controller) Submit(text string) bool {
	c.mu.Lock()
	if c.disposed || c.state != StateIdle {
		c.mu.Unlock()
		return false
	}
	c.input = text
	c.mu.Unlock()
	return c.Send()
}

// Send submits the input buffer. It reports false, and changes nothing,
// when the trimmed buffer is empty, a reply is pending, or the session is
// disposed.
func (c *Controller) Send() bool {
	c.mu.Lock()
	if c.disposed || c.state != StateIdle {
		c.mu.Unlock()
		return false
	}
	text := strings.TrimSpace(c.input)
	if text == "" {
		c.mu.Unlock()
		return false
	}

	prior := c.store.Snapshot()
	c.store.Append(history.NewMessage(history.RoleUser, text, c.now()))
	userMsg, _ := c.store.Last()
	c.input = ""
	c.state = StateAwaitingResponse
	done := make(chan struct{})
	c.inflight = done
	c.mu.Unlock()

	c.log.WithField("chars", len(text)).Info("turn submitted")
	c.notify(Event{Kind: EventMessageAppended, Message: userMsg})
	c.notify(Event{Kind: EventStateChanged, State: StateAwaitingResponse})

	go c.await(prior, userMsg, done)
	return true
}

// Wait blocks until no reply is pending.
func (c *Controller) Wait() {
	c.mu.Lock()
	ch := c.inflight
	c.mu.Unlock()
	if ch != nil {
		<-ch
	}
}

// Dispose aborts a pending reply, stops the active reveal and waits for
// background work. Late replies are dropped. Safe to call more than once.
func (c *Controller) Dispose() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.disposed = true
	ch := c.inflight
	c.mu.Unlock()

	c.cancel()
	if ch != nil {
		<-ch
	}
	c.stage.Stop()
	c.log.Debug("session disposed")
}

func (c *Controller) await(prior []history.Message, userMsg history.Message, done chan struct{}) {
	defer close(done)

	res, err := c.gen.Generate(c.ctx, prior, userMsg.Content)

	reply := history.NewMessage(history.RoleModel, res.Text, c.now())
	failure := storage.FailureNone
	switch {
	case err == nil:
	case errors.Is(err, generation.ErrConfigurationMissing):
		reply.Content = AdvisoryConfigurationMissing
		reply.IsError = true
		failure = storage.FailureConfigurationMissing
		c.log.Warn("generation skipped: credentials are not configured")
	default:
		reply.Content = AdvisoryGenerationFailed
		reply.IsError = true
		failure = storage.FailureGenerationFailed
		c.log.WithError(err).Error("generation failed")
	}

	c.mu.Lock()
	if c.disposed {
		c.state = StateIdle
		c.inflight = nil
		c.mu.Unlock()
		c.log.Debug("dropping reply for disposed session")
		return
	}
	c.store.Append(reply)
	reply, _ = c.store.Last()
	c.mu.Unlock()

	c.record(userMsg, reply, res, failure)
	c.notify(Event{Kind: EventMessageAppended, Message: reply})
	c.stage.Start(reply.ID, reply.Content)

	c.mu.Lock()
	c.state = StateIdle
	c.inflight = nil
	c.mu.Unlock()
	c.notify(Event{Kind: EventStateChanged, State: StateIdle})
}

func (c *Controller) record(userMsg, reply history.Message, res generation.Result, failure string) {
	if c.recorder == nil {
		return
	}
	ev := storage.Event{
		Timestamp:         reply.Timestamp,
		SessionID:         c.id,
		UserMessage:       userMsg.Content,
		AssistantResponse: reply.Content,
		IsError:           reply.IsError,
		FailureKind:       failure,
		Model:             res.Model,
		PromptTokens:      res.PromptTokens,
		CompletionTokens:  res.CompletionTokens,
		TotalTokens:       res.TotalTokens,
		LatencyMS:         res.Latency.Milliseconds(),
	}
	if err := c.recorder.AppendInteraction(ev); err != nil {
		c.log.WithError(err).Warn("failed to record turn")
	}
}
