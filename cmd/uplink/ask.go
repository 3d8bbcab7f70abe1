package main

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"neural-uplink/internal/session"
)

func newAskCmd() *cobra.Command {
	var instant bool
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask one question and type the reply to stdout",
		Example: `  uplink ask "What is your stack?"
  uplink ask --instant "Tell me about RAG"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			tw := newTypewriter(cmd.OutOrStdout())
			perTick := 0
			if instant {
				perTick = 1 << 20
			}
			ctrl := a.newSession(tw.observe, perTick)
			defer ctrl.Dispose()
			tw.skip(ctrl.Messages()[0].ID)

			if !ctrl.Submit(strings.Join(args, " ")) {
				return fmt.Errorf("question is empty")
			}
			ctrl.Wait()
			<-tw.done

			msgs := ctrl.Messages()
			if msgs[len(msgs)-1].IsError {
				return errReplyFailed
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&instant, "instant", false, "Print the reply at once instead of typing it out")
	return cmd
}

// typewriter prints the first revealed message after the greeting, one
// frame delta at a time.
type typewriter struct {
	w    io.Writer
	done chan struct{}

	mu       sync.Mutex
	greeting string
	id       string
	printed  int
}

func newTypewriter(w io.Writer) *typewriter {
	return &typewriter{w: w, done: make(chan struct{})}
}

func (t *typewriter) skip(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.greeting = id
}

func (t *typewriter) observe(ev session.Event) {
	if ev.Kind != session.EventRevealFrame {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	f := ev.Frame
	if t.greeting == "" || f.ID == t.greeting {
		return
	}
	if t.id == "" {
		t.id = f.ID
	}
	if f.ID != t.id || t.printed < 0 {
		return
	}
	runes := []rune(f.Text)
	if len(runes) > t.printed {
		fmt.Fprint(t.w, string(runes[t.printed:]))
		t.printed = len(runes)
	}
	if f.Done {
		fmt.Fprintln(t.w)
		t.printed = -1
		close(t.done)
	}
}
