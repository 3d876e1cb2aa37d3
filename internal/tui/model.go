// Package tui is the terminal user interface: a prompt field, a submit
// control and a read-only output area.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/metalagman/ideagpt/internal/shell"
	"github.com/rs/zerolog/log"
)

const (
	// Title is shown at the top of the screen.
	Title = "IdeaGpt - Powered by GPT"
	// SubmitLabel is the text of the submit control.
	SubmitLabel = "Send to GPT"

	promptLabel  = "Enter your prompt:"
	promptHeight = 5
	minWidth     = 30
	minOutput    = 3
)

type focus int

const (
	focusPrompt focus = iota
	focusSubmit
	focusOutput
	focusCount
)

// completionMsg carries the text to show once a submitted prompt finishes.
type completionMsg struct {
	output string
	sent   bool
	failed bool
}

// Option configures a Model.
type Option func(*Model)

// WithMarkdown renders successful output as markdown.
func WithMarkdown(enabled bool) Option {
	return func(m *Model) {
		m.markdown.enabled = enabled
	}
}

// Model is the bubbletea model of the prompt window.
type Model struct {
	ctx       context.Context
	completer shell.Completer

	prompt   textarea.Model
	output   viewport.Model
	spinner  spinner.Model
	markdown markdown

	focus   focus
	pending bool
	result  string
	failed  bool
	width   int
	height  int
}

// New creates the prompt window model.
func New(ctx context.Context, c shell.Completer, opts ...Option) Model {
	ta := textarea.New()
	ta.Placeholder = "Give me a startup idea..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(promptHeight)
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.BlurredStyle.CursorLine = lipgloss.NewStyle()
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("enter", "ctrl+m"))
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	m := Model{
		ctx:       ctx,
		completer: c,
		prompt:    ta,
		output:    viewport.New(80, minOutput),
		spinner:   sp,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.resize(80, 24)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case completionMsg:
		m.pending = false
		if msg.sent {
			m.setResult(msg.output, msg.failed)
		}
		return m, nil
	case spinner.TickMsg:
		if !m.pending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.updateFocused(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "ctrl+s", "alt+enter":
		return m.submit()
	case "tab":
		return m, m.setFocus((m.focus + 1) % focusCount)
	case "shift+tab":
		return m, m.setFocus((m.focus + focusCount - 1) % focusCount)
	case "enter", " ":
		if m.focus == focusSubmit {
			return m.submit()
		}
	}
	return m.updateFocused(msg)
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusPrompt:
		m.prompt, cmd = m.prompt.Update(msg)
	case focusOutput:
		m.output, cmd = m.output.Update(msg)
	}
	return m, cmd
}

func (m *Model) setFocus(f focus) tea.Cmd {
	m.focus = f
	if f == focusPrompt {
		return m.prompt.Focus()
	}
	m.prompt.Blur()
	return nil
}

// submit sends the prompt unless it is empty or another one is in flight.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.pending {
		return m, nil
	}
	prompt := m.prompt.Value()
	if prompt == "" {
		return m, nil
	}

	m.pending = true
	log.Debug().Int("prompt_len", len(prompt)).Msg("submitting prompt")

	ctx, c := m.ctx, m.completer
	send := func() tea.Msg {
		o := shell.Send(ctx, c, prompt)
		return completionMsg{output: o.Output, sent: o.Sent, failed: o.Failed}
	}
	return m, tea.Batch(m.spinner.Tick, send)
}

func (m *Model) setResult(text string, failed bool) {
	m.result = text
	m.failed = failed
	m.refreshOutput()
	m.output.GotoTop()
}

func (m *Model) refreshOutput() {
	text := m.result
	if m.failed {
		text = errorStyle.Width(m.output.Width).Render(text)
	} else {
		text = m.markdown.render(text)
		text = lipgloss.NewStyle().Width(m.output.Width).Render(text)
	}
	m.output.SetContent(text)
}

func (m *Model) resize(width, height int) {
	m.width = max(width, minWidth)
	m.height = height

	inner := m.width - 2 // border
	m.prompt.SetWidth(inner)
	m.output.Width = inner

	// title, label, prompt box, button line, status line, output border
	used := 1 + 1 + (promptHeight + 2) + 1 + 1 + 2
	m.output.Height = max(height-used, minOutput)

	m.markdown.resize(inner)
	m.refreshOutput()
}

// Pending reports whether a prompt is in flight.
func (m Model) Pending() bool {
	return m.pending
}

// Output returns the text currently shown in the output area, unstyled.
func (m Model) Output() string {
	return m.result
}

// Failed reports whether the output area shows an error line.
func (m Model) Failed() bool {
	return m.failed
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(Title))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(promptLabel))
	b.WriteString("\n")
	b.WriteString(m.border(focusPrompt).Render(m.prompt.View()))
	b.WriteString("\n")

	switch {
	case m.pending:
		b.WriteString(buttonBusyStyle.Render(SubmitLabel))
	case m.focus == focusSubmit:
		b.WriteString(buttonFocusedStyle.Render(SubmitLabel))
	default:
		b.WriteString(buttonStyle.Render(SubmitLabel))
	}
	b.WriteString("\n")

	if m.pending {
		b.WriteString(m.spinner.View() + " " + dimStyle.Render("waiting for completion..."))
	} else {
		b.WriteString(dimStyle.Render("ctrl+s send • tab focus • esc quit"))
	}
	b.WriteString("\n")
	b.WriteString(m.border(focusOutput).Render(m.output.View()))

	return b.String()
}

func (m Model) border(f focus) lipgloss.Style {
	if m.focus == f {
		return focusedBorder
	}
	return blurredBorder
}

// Run starts the prompt window and blocks until the user quits.
func Run(ctx context.Context, c shell.Completer, opts ...Option) error {
	p := tea.NewProgram(New(ctx, c, opts...), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
