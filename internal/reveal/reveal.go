// Package reveal paces the display of a finished message as a growing
// prefix, one tick at a time, the way a typewriter would print it.
package reveal

import (
	"sync"
	"time"
)

const (
	DefaultInterval     = 20 * time.Millisecond
	DefaultCharsPerTick = 1
)

// Frame is one step of a reveal. Revealed and Total count runes.
type Frame struct {
	ID       string
	Revealed int
	Total    int
	Text     string
	Done     bool
}

// Observer is notified of every frame, including the initial empty one.
// It runs on the reveal goroutine and must not call back into the Stage.
type Observer func(Frame)

type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type TickerFunc func(d time.Duration) Ticker

type stdTicker struct{ t *time.Ticker }

func (s stdTicker) C() <-chan time.Time { return s.t.C }
func (s stdTicker) Stop()               { s.t.Stop() }

func NewStdTicker(d time.Duration) Ticker {
	return stdTicker{t: time.NewTicker(d)}
}

// Stage runs at most one reveal at a time. Starting a reveal supersedes the
// active one; a superseded reveal never emits another frame and never
// completes.
type Stage struct {
	interval  time.Duration
	perTick   int
	newTicker TickerFunc
	observer  Observer

	mu      sync.Mutex
	current *Reveal

	// emitMu orders frame delivery across reveals, so no frame of a
	// superseded reveal is delivered after its successor's first frame.
	emitMu sync.Mutex
}

type Option func(*Stage)

func WithInterval(d time.Duration) Option {
	return func(s *Stage) {
		if d > 0 {
			s.interval = d
		}
	}
}

func WithCharsPerTick(n int) Option {
	return func(s *Stage) {
		if n > 0 {
			s.perTick = n
		}
	}
}

func WithTicker(f TickerFunc) Option {
	return func(s *Stage) {
		if f != nil {
			s.newTicker = f
		}
	}
}

func WithObserver(o Observer) Option {
	return func(s *Stage) { s.observer = o }
}

func NewStage(opts ...Option) *Stage {
	s := &Stage{
		interval:  DefaultInterval,
		perTick:   DefaultCharsPerTick,
		newTicker: NewStdTicker,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// SetObserver replaces the frame observer for subsequent frames.
func (s *Stage) SetObserver(o Observer) {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()
	s.observer = o
}

// Start begins revealing text under id and returns the new reveal.
func (s *Stage) Start(id, text string) *Reveal {
	r := &Reveal{
		id:      id,
		runes:   []rune(text),
		perTick: s.perTick,
		cancel:  make(chan struct{}),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}

	s.emitMu.Lock()
	s.mu.Lock()
	prev := s.current
	s.current = r
	s.mu.Unlock()
	if prev != nil {
		prev.Cancel()
	}
	first := r.frame()
	s.emit(first)
	s.emitMu.Unlock()

	if first.Done {
		r.finish()
		close(r.stopped)
		return r
	}

	go s.run(r, s.newTicker(s.interval))
	return r
}

// Current returns the active or most recently finished reveal, or nil.
func (s *Stage) Current() *Reveal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Stop cancels the active reveal and waits for its goroutine to exit.
func (s *Stage) Stop() {
	s.mu.Lock()
	r := s.current
	s.mu.Unlock()
	if r == nil {
		return
	}
	r.Cancel()
	<-r.stopped
}

func (s *Stage) run(r *Reveal, t Ticker) {
	defer close(r.stopped)
	defer t.Stop()
	for {
		select {
		case <-r.cancel:
			return
		case <-t.C():
			s.emitMu.Lock()
			if r.Canceled() {
				s.emitMu.Unlock()
				return
			}
			f := r.advance()
			s.emit(f)
			s.emitMu.Unlock()
			if f.Done {
				r.finish()
				return
			}
		}
	}
}

func (s *Stage) emit(f Frame) {
	if s.observer != nil {
		s.observer(f)
	}
}

// Reveal is the state of one message being revealed.
type Reveal struct {
	id      string
	perTick int

	mu       sync.RWMutex
	runes    []rune
	revealed int
	ticks    int

	cancelOnce sync.Once
	cancel     chan struct{}
	doneOnce   sync.Once
	done       chan struct{}
	stopped    chan struct{}
}

func (r *Reveal) ID() string { return r.id }

func (r *Reveal) Total() int { return len(r.runes) }

func (r *Reveal) Revealed() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.revealed
}

// Ticks is the number of ticks consumed so far.
func (r *Reveal) Ticks() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ticks
}

// Text returns the revealed prefix.
func (r *Reveal) Text() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return string(r.runes[:r.revealed])
}

func (r *Reveal) Complete() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}

// Done is closed once the full text has been revealed. It is never closed
// for a canceled reveal.
func (r *Reveal) Done() <-chan struct{} { return r.done }

// Cancel stops the reveal. It is safe to call more than once.
func (r *Reveal) Cancel() {
	r.cancelOnce.Do(func() { close(r.cancel) })
}

func (r *Reveal) Canceled() bool {
	select {
	case <-r.cancel:
		return true
	default:
		return false
	}
}

func (r *Reveal) advance() Frame {
	r.mu.Lock()
	r.ticks++
	r.revealed += r.perTick
	if r.revealed > len(r.runes) {
		r.revealed = len(r.runes)
	}
	r.mu.Unlock()
	return r.frame()
}

func (r *Reveal) frame() Frame {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return Frame{
		ID:       r.id,
		Revealed: r.revealed,
		Total:    len(r.runes),
		Text:     string(r.runes[:r.revealed]),
		Done:     r.revealed == len(r.runes),
	}
}

func (r *Reveal) finish() {
	r.doneOnce.Do(func() { close(r.done) })
}
