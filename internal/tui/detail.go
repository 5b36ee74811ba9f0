package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/wcagdemo/internal/catalog"
	"github.com/muurk/wcagdemo/internal/ui"
	"github.com/muurk/wcagdemo/internal/urls"
)

// detailKeyMap defines key bindings for the detail screen
type detailKeyMap struct {
	Scroll  key.Binding
	Demo    key.Binding
	Back    key.Binding
	Quit    key.Binding
	hasDemo bool
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k detailKeyMap) ShortHelp() []key.Binding {
	if k.hasDemo {
		return []key.Binding{k.Scroll, k.Demo, k.Back, k.Quit}
	}
	return []key.Binding{k.Scroll, k.Back, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k detailKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DetailModel shows one case with both examples.
type DetailModel struct {
	Viewport viewport.Model
	Keys     detailKeyMap

	c               *catalog.Case
	demo            Screen
	showExplanation bool
	width           int
}

// NewDetailModel creates the detail screen for c. demo is the screen
// registered for the case, or empty.
func NewDetailModel(c *catalog.Case, demo Screen, showExplanation bool) DetailModel {
	m := DetailModel{
		Viewport:        viewport.New(MinTerminalWidth, 20),
		c:               c,
		demo:            demo,
		showExplanation: showExplanation,
		Keys: detailKeyMap{
			Scroll: key.NewBinding(
				key.WithKeys("up", "down", "pgup", "pgdown"),
				key.WithHelp("↑/↓", "scroll"),
			),
			Demo: key.NewBinding(
				key.WithKeys("o"),
				key.WithHelp("o", "open demo"),
			),
			Back: key.NewBinding(
				key.WithKeys("esc", "left", "h"),
				key.WithHelp("esc/←", "back"),
			),
			Quit:    quitBinding,
			hasDemo: demo != "",
		},
	}
	m.render()
	return m
}

// Case returns the displayed case.
func (m DetailModel) Case() *catalog.Case {
	return m.c
}

// SetSize resizes the viewport and re-renders for the new width.
func (m *DetailModel) SetSize(width, height int) {
	m.width = contentWidth(width)
	m.Viewport.Width = m.width
	m.Viewport.Height = contentHeight(height)
	m.render()
}

func (m *DetailModel) render() {
	if m.c == nil {
		return
	}
	width := m.width
	if width == 0 {
		width = contentWidth(MinTerminalWidth)
	}
	body := ui.RenderCase(m.c, ui.CaseOptions{
		Width:           width,
		ShowExplanation: m.showExplanation,
		StyledMarkdown:  true,
		SideBySideMin:   SideBySideWidth - 6,
	})
	ref := ui.DescriptionStyle.PaddingLeft(1).Render("Reference: " + urls.Criterion(m.c.Criterion))
	m.Viewport.SetContent(body + "\n\n" + ref)
}

// Update handles detail input.
func (m DetailModel) Update(msg tea.Msg) (DetailModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.Keys.Quit):
			return m, tea.Quit
		case key.Matches(keyMsg, m.Keys.Back):
			return m, goBack
		case key.Matches(keyMsg, m.Keys.Demo):
			if m.demo == "" || m.c == nil {
				return m, nil
			}
			return m, transition(m.demo, m.c.ID)
		}
	}
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	return m, cmd
}

// View renders the viewport.
func (m DetailModel) View() string {
	return m.Viewport.View()
}
