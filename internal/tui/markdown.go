package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog/log"
)

// markdown renders completion text for the terminal. A nil renderer passes
// text through untouched.
type markdown struct {
	enabled  bool
	width    int
	renderer *glamour.TermRenderer
}

func (m *markdown) resize(width int) {
	if !m.enabled || width <= 0 || width == m.width {
		return
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		log.Warn().Err(err).Msg("markdown renderer unavailable, showing raw text")
		m.renderer = nil
		return
	}
	m.width = width
	m.renderer = r
}

func (m *markdown) render(text string) string {
	if m.renderer == nil {
		return text
	}
	out, err := m.renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}
