package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/wcagdemo/internal/catalog"
)

// CaseOptions controls detailed case output.
type CaseOptions struct {
	Width           int
	ShowExplanation bool
	StyledMarkdown  bool
	SideBySideMin   int // Minimum width for side-by-side examples; 0 always stacks
}

// RenderCaseLine renders a one-line summary:
//
//	2.1.2  A   No keyboard trap  operable
func RenderCaseLine(c *catalog.Case) string {
	return fmt.Sprintf("%-7s %s %s  %s",
		CriterionStyle.Render(c.Criterion),
		LevelStyle.Render(c.Level),
		NameStyle.Render(c.Name),
		PillarStyle(c.Pillar).Render(string(c.Pillar)),
	)
}

// RenderCaseList renders cases grouped under pillar headings, in the
// order they are given.
func RenderCaseList(cases []*catalog.Case) string {
	var b strings.Builder
	var current catalog.Pillar
	for _, c := range cases {
		if c.Pillar != current {
			if current != "" {
				b.WriteByte('\n')
			}
			current = c.Pillar
			b.WriteString(PillarStyle(c.Pillar).Bold(true).Render(c.Pillar.Title()))
			b.WriteByte('\n')
		}
		b.WriteString("  " + RenderCaseLine(c) + "\n")
	}
	return b.String()
}

// RenderCase renders a full case: header, description, both examples and
// optionally the explanation.
func RenderCase(c *catalog.Case, opts CaseOptions) string {
	width := opts.Width
	if width <= 0 {
		width = MinTerminalWidth
	}

	params := map[string]string{
		"Criterion": c.Criterion,
		"Principle": c.Pillar.Title(),
	}
	if c.Level != "" {
		params["Level"] = c.Level
	}
	if c.Demo != "" {
		params["Demo"] = c.Demo
	}

	sections := []string{
		RenderHeader(c.Name, c.ID, params, width),
		DescriptionStyle.Width(width - 2).PaddingLeft(1).Render(c.Description),
		RenderExamples(c, width, opts.SideBySideMin > 0 && width >= opts.SideBySideMin),
	}
	if opts.ShowExplanation && c.Explanation != "" {
		sections = append(sections, RenderMarkdown(c.Explanation, width-2, opts.StyledMarkdown))
	}
	return strings.Join(sections, "\n\n")
}

// RenderExamples renders the inaccessible and accessible snippets, either
// stacked or side by side.
func RenderExamples(c *catalog.Case, width int, sideBySide bool) string {
	boxWidth := width
	if sideBySide {
		boxWidth = width / 2
	}
	before := renderSnippet("Inaccessible", c.Inaccessible, boxWidth, false)
	after := renderSnippet("Accessible", c.Accessible, boxWidth, true)
	if sideBySide {
		return lipgloss.JoinHorizontal(lipgloss.Top, before, after)
	}
	return lipgloss.JoinVertical(lipgloss.Left, before, after)
}

func renderSnippet(label, code string, width int, accessible bool) string {
	marker, title := FailureMarker, ErrorTitleStyle
	if accessible {
		marker, title = SuccessMarker, SuccessTitleStyle
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		title.Render(marker+" "+label),
		HighlightHTML(strings.TrimSpace(code)),
	)
	return SnippetBoxStyle(width, accessible).Render(body)
}

// RenderFocusStep renders one line of a focus trap trace:
//
//	  3  Shift+Tab   wrapped  ▶ button#dlg-close "Close"
func RenderFocusStep(n int, key string, shift bool, action, focused string) string {
	if shift {
		key = "Shift+" + key
	}
	note := action
	if note == "" || note == "none" {
		note = "native"
	}
	return fmt.Sprintf("%3d  %-11s %s %s %s",
		n, key,
		StepNoteStyle.Render(fmt.Sprintf("%-8s", note)),
		FocusStyle.Render(FocusMarker),
		focused,
	)
}
