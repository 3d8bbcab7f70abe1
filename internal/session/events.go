package session

import (
	"neural-uplink/internal/history"
	"neural-uplink/internal/reveal"
)

type EventKind int

const (
	EventMessageAppended EventKind = iota
	EventStateChanged
	EventRevealFrame
)

// Event tells the presentation layer that something changed. Only the
// field matching Kind is set.
type Event struct {
	Kind    EventKind
	Message history.Message
	State   State
	Frame   reveal.Frame
}

// Observer is called outside the controller's lock. Reveal frames arrive
// on the reveal goroutine; the observer must not block for long and must
// not call Dispose.
type Observer func(Event)

func (c *Controller) notify(ev Event) {
	if c.observer != nil {
		c.observer(ev)
	}
}

func (c *Controller) forwardFrame(f reveal.Frame) {
	c.notify(Event{Kind: EventRevealFrame, Frame: f})
}
