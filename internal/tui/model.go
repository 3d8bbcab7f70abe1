// Package tui is the terminal host for a chat session.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"neural-uplink/internal/history"
	"neural-uplink/internal/session"
)

const (
	BusyText    = "Computing tensor operations..."
	revealBlock = "█"

	headerHeight = 1
	statusHeight = 1
	inputHeight  = 3
)

type Model struct {
	ctrl          *session.Controller
	relay         *Relay
	assistantName string
	demo          bool

	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model

	width  int
	height int
	ready  bool
}

// New builds the model. relay must be the observer the controller was
// created with.
func New(ctrl *session.Controller, relay *Relay, assistantName string) Model {
	ti := textinput.New()
	ti.Placeholder = "Ask about RAG, fine-tuning, or the stack..."
	ti.CharLimit = 2000
	ti.Prompt = "> "
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(colorAccent))

	if assistantName == "" {
		assistantName = "Assistant"
	}

	return Model{
		ctrl:          ctrl,
		relay:         relay,
		assistantName: assistantName,
		demo:          !ctrl.Configured(),
		input:         ti,
		spinner:       sp,
		viewport:      viewport.New(80, 20),
		width:         80,
		height:        24,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.relay.wait())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.ready = true
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.ctrl.Busy() {
				return m, nil
			}
			if m.ctrl.Submit(m.input.Value()) {
				m.input.Reset()
				m.refresh()
				return m, m.spinner.Tick
			}
			return m, nil
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		if m.ctrl.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case changedMsg:
		m.refresh()
		return m, m.relay.wait()

	case spinner.TickMsg:
		if !m.ctrl.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) resize() {
	vh := m.height - headerHeight - statusHeight - inputHeight
	if m.demo {
		vh--
	}
	if vh < 3 {
		vh = 3
	}
	m.viewport.Width = m.width
	m.viewport.Height = vh
	m.input.Width = m.width - 8
}

// refresh re-renders the transcript and pins it to the bottom.
func (m *Model) refresh() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

func (m Model) renderTranscript() string {
	msgs := m.ctrl.Messages()
	r := m.ctrl.Reveal()
	width := m.width - 2
	if width < 10 {
		width = 10
	}

	var b strings.Builder
	for i, msg := range msgs {
		if i > 0 {
			b.WriteString("\n")
		}
		label := userLabelStyle.Render("You")
		if msg.Role == history.RoleModel {
			label = modelLabelStyle.Render(m.assistantName)
		}
		b.WriteString(label)
		b.WriteString("\n")

		body := msg.Content
		revealing := false
		// only the newest model message is ever partially shown
		if r != nil && r.ID() == msg.ID && !r.Complete() {
			body = r.Text()
			revealing = true
		}
		style := bodyStyle
		if msg.IsError {
			style = errorBodyStyle
		}
		if revealing {
			body += cursorStyle.Render(revealBlock)
		}
		b.WriteString(style.Width(width).Render(body))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("NEURAL UPLINK // " + m.assistantName))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if m.ctrl.Busy() {
		b.WriteString(statusStyle.Render(m.spinner.View() + " " + BusyText))
	} else {
		b.WriteString(statusStyle.Render("enter send · pgup/pgdn scroll · esc quit"))
	}
	b.WriteString("\n")
	b.WriteString(inputBoxStyle.Width(m.width - 2).Render(m.input.View()))
	if m.demo {
		b.WriteString("\n")
		b.WriteString(demoStyle.Render(session.DemoModeNotice))
	}
	return b.String()
}

// Run drives the program until the user quits, then disposes the session.
func Run(ctrl *session.Controller, relay *Relay, assistantName string, opts ...tea.ProgramOption) error {
	defer ctrl.Dispose()
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	_, err := tea.NewProgram(New(ctrl, relay, assistantName), opts...).Run()
	return err
}
