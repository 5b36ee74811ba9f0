package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// RenderMarkdown renders markdown for a terminal of the given width. When
// styled is false the plain "notty" style is used, which suits pipes and
// tests. Rendering errors fall back to the raw text.
func RenderMarkdown(md string, width int, styled bool) string {
	style := "notty"
	if styled {
		style = "dark"
	}
	if width <= 0 {
		width = MinTerminalWidth
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}
