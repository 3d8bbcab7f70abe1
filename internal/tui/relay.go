package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"neural-uplink/internal/session"
)

// changedMsg asks the model to re-read the session.
type changedMsg struct{}

// Relay turns session events into redraw requests. Events are coalesced:
// the view always renders from the controller, so only the fact that
// something changed matters. Observe never blocks, which keeps it safe to
// call from inside Update (Submit notifies synchronously).
type Relay struct {
	dirty chan struct{}
}

func NewRelay() *Relay {
	return &Relay{dirty: make(chan struct{}, 1)}
}

// Observe is a session.Observer.
func (r *Relay) Observe(session.Event) {
	select {
	case r.dirty <- struct{}{}:
	default:
	}
}

// wait is re-armed after every changedMsg.
func (r *Relay) wait() tea.Cmd {
	return func() tea.Msg {
		<-r.dirty
		return changedMsg{}
	}
}
