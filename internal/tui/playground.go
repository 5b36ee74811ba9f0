package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/muurk/wcagdemo/internal/catalog"
	"github.com/muurk/wcagdemo/internal/dom"
	"github.com/muurk/wcagdemo/internal/focustrap"
	"github.com/muurk/wcagdemo/internal/logging"
	"github.com/muurk/wcagdemo/internal/ui"
)

// PlaygroundBoundary is the id of the element the playground traps focus in.
const PlaygroundBoundary = "dialog"

// Ids of the controls placed around the trapped dialog.
const (
	OutsideBefore = "outside-before"
	OutsideAfter  = "outside-after"
)

const (
	maxLogLines     = 50
	visibleLogLines = 8
)

const defaultDialog = `<div id="dialog" role="dialog" aria-modal="true" aria-labelledby="pg-title">
  <h2 id="pg-title">Edit profile</h2>
  <input id="pg-name" type="text" placeholder="Display name">
  <button type="button" id="pg-save">Save</button>
  <button type="button" id="pg-close" aria-label="Close">Close</button>
</div>`

// ErrNoBoundary is returned when the playground document has no dialog
// element to trap focus in.
var ErrNoBoundary = errors.New("playground document has no #" + PlaygroundBoundary + " element")

// flushMsg runs the trap's deferred rescans.
type flushMsg struct{}

func flush() tea.Msg { return flushMsg{} }

// playgroundKeyMap defines key bindings for the focus trap playground
type playgroundKeyMap struct {
	Tab     key.Binding
	Arrows  key.Binding
	Mode    key.Binding
	Add     key.Binding
	Disable key.Binding
	Escape  key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k playgroundKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Arrows, k.Mode, k.Add, k.Disable, k.Escape, k.Back, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k playgroundKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Arrows, k.Mode},
		{k.Add, k.Disable, k.Escape},
		{k.Back, k.Quit},
	}
}

func newPlaygroundKeyMap() playgroundKeyMap {
	return playgroundKeyMap{
		Tab: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab/⇧tab", "move focus"),
		),
		Arrows: key.NewBinding(
			key.WithKeys("up", "down"),
			key.WithHelp("↑/↓", "step (arrow mode)"),
		),
		Mode: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "toggle mode"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add button"),
		),
		Disable: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "toggle aria-disabled"),
		),
		Escape: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "focus outside"),
		),
		Back: backBinding,
		Quit: quitBinding,
	}
}

// PlaygroundModel hosts a focus trap over a dialog snippet and traces
// every key it handles.
type PlaygroundModel struct {
	Keys   playgroundKeyMap
	Width  int
	Height int

	c      *catalog.Case
	doc    *dom.Document
	trap   *focustrap.Trap
	queue  *focustrap.Queue
	logger *zap.Logger

	log    []string
	steps  int
	added  int
	status string
}

// PlaygroundHTML returns the playground document for c: the case's
// accessible snippet as the dialog, between two outside controls. A
// snippet without a #dialog element is wrapped in one. A nil case uses a
// built-in dialog.
func PlaygroundHTML(c *catalog.Case) string {
	dialog := defaultDialog
	if c != nil {
		snippet := c.Example(catalog.VariantAccessible)
		if strings.Contains(snippet, `id="`+PlaygroundBoundary+`"`) {
			dialog = snippet
		} else {
			dialog = `<div id="` + PlaygroundBoundary + `" role="dialog" aria-modal="true">` + snippet + `</div>`
		}
	}
	return `<button type="button" id="` + OutsideBefore + `">Before the dialog</button>` + "\n" +
		dialog + "\n" +
		`<a href="#after" id="` + OutsideAfter + `">After the dialog</a>`
}

// NewPlaygroundModel builds the playground document for c and attaches a
// trap to its dialog. The trap's first scan is deferred until the command
// returned by Init runs.
func NewPlaygroundModel(c *catalog.Case, mode focustrap.Mode, logger *zap.Logger) (PlaygroundModel, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	doc, err := dom.ParseString(PlaygroundHTML(c))
	if err != nil {
		return PlaygroundModel{}, fmt.Errorf("failed to build playground: %w", err)
	}
	host := doc.ElementByID(PlaygroundBoundary)
	if host == nil {
		return PlaygroundModel{}, ErrNoBoundary
	}

	queue := &focustrap.Queue{}
	trap := focustrap.New(dom.TrapHost(host), doc.TrapDocument(),
		focustrap.WithScheduler(queue),
		focustrap.WithLogger(logger),
	)
	trap.Configure(PlaygroundBoundary, mode)

	return PlaygroundModel{
		Keys:   newPlaygroundKeyMap(),
		Width:  MinTerminalWidth,
		Height: 24,
		c:      c,
		doc:    doc,
		trap:   trap,
		queue:  queue,
		logger: logger,
		status: "Press Tab to move focus",
	}, nil
}

// Init schedules the deferred rescan.
func (m PlaygroundModel) Init() tea.Cmd {
	return flush
}

// Mode returns the trap's navigation mode.
func (m PlaygroundModel) Mode() focustrap.Mode {
	if m.trap == nil {
		return focustrap.ModeTab
	}
	return m.trap.Mode()
}

// Document returns the playground document.
func (m PlaygroundModel) Document() *dom.Document {
	return m.doc
}

// Trap returns the playground's focus trap.
func (m PlaygroundModel) Trap() *focustrap.Trap {
	return m.trap
}

// Log returns the recorded focus steps, oldest first.
func (m PlaygroundModel) Log() []string {
	return m.log
}

// Close detaches the trap. It is safe on a zero PlaygroundModel.
func (m PlaygroundModel) Close() {
	if m.trap != nil {
		m.trap.Detach()
	}
}

// Update handles playground input.
func (m PlaygroundModel) Update(msg tea.Msg) (PlaygroundModel, tea.Cmd) {
	if m.doc == nil {
		return m, nil
	}

	switch msg := msg.(type) {
	case flushMsg:
		n := m.queue.Flush()
		m.logger.Debug("flushed deferred rescans", zap.Int("tasks", n))
		// Behave like a modal opening: focus its first control.
		if m.doc.ActiveElement() == nil {
			if focusable := m.trap.Focusable(); len(focusable) > 0 {
				m.doc.Focus(dom.FromTrap(focusable[0]))
			}
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			m.handleTrapKey(focustrap.KeyTab, false)
		case "shift+tab":
			m.handleTrapKey(focustrap.KeyTab, true)
		case "up":
			m.handleTrapKey(focustrap.KeyArrowUp, false)
		case "down":
			m.handleTrapKey(focustrap.KeyArrowDown, false)
		default:
			switch {
			case key.Matches(msg, m.Keys.Quit):
				return m, tea.Quit
			case key.Matches(msg, m.Keys.Back):
				return m, goBack
			case key.Matches(msg, m.Keys.Mode):
				mode := m.trap.Mode().Toggle()
				m.trap.Configure(m.trap.BoundaryID(), mode)
				m.status = "Mode: " + mode.String()
				return m, flush
			case key.Matches(msg, m.Keys.Add):
				m.addButton()
			case key.Matches(msg, m.Keys.Disable):
				m.toggleDisabled()
			case key.Matches(msg, m.Keys.Escape):
				m.doc.Focus(m.doc.ElementByID(OutsideBefore))
				m.status = "Focus moved outside the dialog; the next Tab pulls it back"
			}
		}
	}
	return m, nil
}

// handleTrapKey offers a key to the trap. An unhandled Tab moves focus the
// way a browser would.
func (m *PlaygroundModel) handleTrapKey(k string, shift bool) {
	before := m.doc.ActiveElement()
	res := m.trap.HandleKeyDown(focustrap.KeyEvent{Key: k, Shift: shift})
	if !res.Handled && k == focustrap.KeyTab {
		m.doc.Focus(m.doc.NextTabStop(shift))
	}
	after := m.doc.ActiveElement()

	m.steps++
	m.log = append(m.log, ui.RenderFocusStep(m.steps, k, shift, res.Action.String(), after.String()))
	if len(m.log) > maxLogLines {
		m.log = m.log[len(m.log)-maxLogLines:]
	}
	m.status = ""

	logging.LogKeyEvent("playground", k, shift, res.Action.String())
	if before != after {
		logging.LogFocusMove("playground", before.String(), after.String())
	}
}

func (m *PlaygroundModel) addButton() {
	dialog := m.doc.ElementByID(m.trap.BoundaryID())
	candidates := m.doc.FocusableDescendants(dialog)
	if len(candidates) == 0 {
		m.status = "Nothing to insert after"
		return
	}
	m.added++
	id := fmt.Sprintf("added-%d", m.added)
	fragment := fmt.Sprintf(`<button type="button" id="%s">Added %d</button>`, id, m.added)
	if _, err := m.doc.InsertAfter(candidates[0], fragment); err != nil {
		m.status = err.Error()
		return
	}
	m.logger.Debug("inserted button", zap.String("id", id))
	m.status = "Inserted #" + id + "; the trap picks it up on the next key"
}

func (m *PlaygroundModel) toggleDisabled() {
	el := m.doc.ActiveElement()
	if el == nil {
		m.status = "Nothing is focused"
		return
	}
	if v, _ := el.Attr("aria-disabled"); v == "true" {
		el.RemoveAttr("aria-disabled")
		m.status = el.String() + " enabled"
		return
	}
	el.SetAttr("aria-disabled", "true")
	m.status = el.String() + " disabled"
}

// View renders the document, the trap state and the latest focus steps.
func (m PlaygroundModel) View() string {
	if m.doc == nil {
		return ""
	}
	var b strings.Builder

	title := "Focus trap playground"
	if m.c != nil {
		title += ": " + m.c.Criterion + " " + m.c.Name
	}
	b.WriteString(RenderTitle(title))
	b.WriteString("\n")
	b.WriteString(RenderSubtitle(fmt.Sprintf("mode %s • %s • boundary #%s • %d trapped",
		m.trap.Mode(), m.trap.State(), m.trap.BoundaryID(), len(m.trap.Focusable()))))
	b.WriteString("\n\n")

	boundary := m.doc.ElementByID(m.trap.BoundaryID())
	active := m.doc.ActiveElement()
	var before, inside, after []string
	seenBoundary := false
	for _, el := range m.doc.FocusableDescendants(m.doc.Root()) {
		line := renderControl(el, el == active)
		switch {
		case boundary != nil && boundary.Contains(el):
			inside = append(inside, line)
			seenBoundary = true
		case seenBoundary:
			after = append(after, line)
		default:
			before = append(before, line)
		}
	}

	width := contentWidth(m.Width)
	sections := append([]string{}, before...)
	if len(inside) > 0 {
		sections = append(sections, BoundaryStyle.Width(width-4).Render(strings.Join(inside, "\n")))
	}
	sections = append(sections, after...)
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, sections...))
	b.WriteString("\n\n")

	lines := m.log
	if len(lines) > visibleLogLines {
		lines = lines[len(lines)-visibleLogLines:]
	}
	if len(lines) == 0 {
		b.WriteString(LogStyle.Render("No keys yet"))
	} else {
		b.WriteString(strings.Join(lines, "\n"))
	}
	if m.status != "" {
		b.WriteString("\n\n")
		b.WriteString(StatusStyle.Render(m.status))
	}
	return b.String()
}

func renderControl(el *dom.Element, focused bool) string {
	text := el.String()
	switch {
	case focused:
		return FocusedStyle.Render(ui.FocusMarker + " " + text)
	case el.Disabled():
		return "  " + DisabledStyle.Render(text)
	default:
		return "  " + text
	}
}
