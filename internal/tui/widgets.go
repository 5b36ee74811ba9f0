package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/muurk/wcagdemo/internal/dom"
	"github.com/muurk/wcagdemo/internal/focustrap"
	"github.com/muurk/wcagdemo/internal/ui"
	"github.com/muurk/wcagdemo/internal/widgets"
)

// WidgetsBoundary is the id of the element holding the screen's controls.
const WidgetsBoundary = "widgets"

// Control ids on the widgets screen.
const (
	idTerms       = "terms"
	idStepPrev    = "step-prev"
	idStepNext    = "step-next"
	idWeekPrev    = "week-prev"
	idWeekNext    = "week-next"
	idCombo       = "combo"
	idTooltip     = "tooltip"
	idDirectOnly  = "direct-only"
	idOverlay     = "overlay"
	dayIDPrefix   = "day-"
	openIDPrefix  = "open-"
	closeIDSuffix = "-close"
)

// Destinations offered by the combo box and the destination dialog.
var Destinations = []string{
	"Amsterdam", "Barcelona", "Berlin", "Lisbon", "London",
	"Madrid", "Paris", "Porto", "Rome", "Vienna",
}

const widgetsHTML = `<div id="widgets">
  <input type="checkbox" id="terms" aria-checked="false" aria-label="Accept the terms">
  <button type="button" id="step-prev">Previous step</button>
  <button type="button" id="step-next">Next step</button>
  <button type="button" id="week-prev" aria-label="Previous week">‹</button>
  <button type="button" id="day-0">Mon</button>
  <button type="button" id="day-1">Tue</button>
  <button type="button" id="day-2">Wed</button>
  <button type="button" id="day-3">Thu</button>
  <button type="button" id="day-4">Fri</button>
  <button type="button" id="day-5">Sat</button>
  <button type="button" id="day-6">Sun</button>
  <button type="button" id="week-next" aria-label="Next week">›</button>
  <button type="button" id="open-destination" aria-haspopup="dialog">Destination</button>
  <button type="button" id="open-passengers" aria-haspopup="dialog">Passengers</button>
  <button type="button" id="open-other" aria-haspopup="dialog">Other filters</button>
  <button type="button" id="combo">Search destinations</button>
  <button type="button" id="tooltip" aria-label="Help">?</button>
</div>
<div id="overlay"></div>`

// dialogHTML returns the markup appended to the overlay when d opens.
func dialogHTML(d widgets.Dialog, f *widgets.DestinationFilter) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<div id="%s" role="dialog" aria-modal="true" aria-label="%s">`, dialogID(d), dialogTitle(d))
	switch d {
	case widgets.DialogDestination:
		fmt.Fprintf(&b, `<input type="text" id="%s" placeholder="Where to?">`, widgets.FocusDestinationInput)
		fmt.Fprintf(&b, `<button type="button" id="%s">Close</button>`, dialogID(d)+closeIDSuffix)
	case widgets.DialogPassengers:
		for _, p := range widgets.Passengers {
			fmt.Fprintf(&b, `<button type="button" id="%s" aria-label="Fewer %s" aria-disabled="%s">-</button>`,
				widgets.CounterButtonID(p, false), p, f.DecreaseAriaDisabled(p))
			fmt.Fprintf(&b, `<button type="button" id="%s" aria-label="More %s">+</button>`,
				widgets.CounterButtonID(p, true), p)
		}
		fmt.Fprintf(&b, `<button type="button" id="%s">Done</button>`, dialogID(d)+closeIDSuffix)
	default:
		fmt.Fprintf(&b, `<button type="button" id="%s">Close</button>`, widgets.FocusOtherClose)
		fmt.Fprintf(&b, `<input type="checkbox" id="%s" aria-label="Direct flights only">`, idDirectOnly)
	}
	b.WriteString(`</div>`)
	return b.String()
}

func dialogID(d widgets.Dialog) string {
	return "dialog-" + string(d)
}

func dialogTitle(d widgets.Dialog) string {
	switch d {
	case widgets.DialogDestination:
		return "Destination"
	case widgets.DialogPassengers:
		return "Passengers"
	default:
		return "Other filters"
	}
}

// destinationReadyMsg fires ReadyDelay after the destination dialog opens.
type destinationReadyMsg struct {
	gen int
}

// widgetsKeyMap defines key bindings for the widgets screen
type widgetsKeyMap struct {
	Tab      key.Binding
	Activate key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k widgetsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Activate, k.Back, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k widgetsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// WidgetsModel demonstrates keyboard operable controls. Tab cycles the
// controls through a focus trap over the screen's markup; open dialogs
// move the trap boundary to the dialog.
type WidgetsModel struct {
	Keys   widgetsKeyMap
	Width  int
	Height int

	doc    *dom.Document
	trap   *focustrap.Trap
	logger *zap.Logger

	terms   *widgets.Checkbox
	direct  *widgets.Checkbox
	stepper *widgets.Stepper
	week    *widgets.WeekCalendar
	filter  *widgets.DestinationFilter
	combo   *widgets.ComboBox
	tooltip *widgets.Tooltip

	open   widgets.Dialog
	opener string

	search   textinput.Model
	spinner  spinner.Model
	progress progress.Model
	status   string
}

// NewWidgetsModel builds the widgets screen. A nil clock uses time.Now.
func NewWidgetsModel(clock func() time.Time, logger *zap.Logger) (WidgetsModel, error) {
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	doc, err := dom.ParseString(widgetsHTML)
	if err != nil {
		return WidgetsModel{}, fmt.Errorf("failed to build widgets: %w", err)
	}

	trap := focustrap.New(dom.TrapHost(doc.ElementByID(WidgetsBoundary)), doc.TrapDocument(),
		focustrap.WithLogger(logger))
	trap.Configure(WidgetsBoundary, focustrap.ModeTab)

	search := textinput.New()
	search.Placeholder = "Type a city"
	search.CharLimit = 40
	search.Width = 24

	m := WidgetsModel{
		Keys: widgetsKeyMap{
			Tab: key.NewBinding(
				key.WithKeys("tab", "shift+tab"),
				key.WithHelp("tab/⇧tab", "next/previous control"),
			),
			Activate: key.NewBinding(
				key.WithKeys("enter", " "),
				key.WithHelp("enter/space", "activate"),
			),
			Back: key.NewBinding(
				key.WithKeys("esc"),
				key.WithHelp("esc", "close/back"),
			),
			Quit: quitBinding,
		},
		Width:    MinTerminalWidth,
		Height:   24,
		doc:      doc,
		trap:     trap,
		logger:   logger,
		terms:    widgets.NewCheckbox(idTerms, "Accept the terms"),
		direct:   widgets.NewCheckbox(idDirectOnly, "Direct flights only"),
		stepper:  widgets.NewStepper(),
		week:     widgets.NewWeekCalendar(clock),
		filter:   widgets.NewDestinationFilter(),
		combo:    widgets.NewComboBox(Destinations...),
		tooltip:  widgets.NewTooltip("Use Tab to move between controls and Enter or Space to activate them."),
		search:   search,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
	m.terms.Required = true
	m.tooltip.Clickable = true

	doc.Focus(doc.ElementByID(idTerms))
	m.syncFocus()
	return m, nil
}

// Init has nothing to start; timers begin when a dialog opens.
func (m WidgetsModel) Init() tea.Cmd {
	return nil
}

// Document returns the screen's control markup.
func (m WidgetsModel) Document() *dom.Document {
	return m.doc
}

// Filter returns the destination filter state.
func (m WidgetsModel) Filter() *widgets.DestinationFilter {
	return m.filter
}

// OpenDialog returns the open dialog, or "".
func (m WidgetsModel) OpenDialog() widgets.Dialog {
	return m.open
}

// Focused returns the id of the focused control, or "".
func (m WidgetsModel) Focused() string {
	if el := m.doc.ActiveElement(); el != nil {
		return el.ID()
	}
	return ""
}

// Update handles widgets input.
func (m WidgetsModel) Update(msg tea.Msg) (WidgetsModel, tea.Cmd) {
	if m.doc == nil {
		return m, nil
	}

	switch msg := msg.(type) {
	case destinationReadyMsg:
		if m.filter.MarkReady(msg.gen) {
			m.status = "Destinations loaded"
		}
		return m, nil

	case spinner.TickMsg:
		if m.open != widgets.DialogDestination || m.filter.Ready() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.combo.Editing() {
			return m.updateSearch(msg)
		}
		switch msg.String() {
		case "tab":
			m.moveFocus(false)
			return m, nil
		case "shift+tab":
			m.moveFocus(true)
			return m, nil
		}
		switch {
		case key.Matches(msg, m.Keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.Keys.Back):
			if m.open != "" {
				m.closeDialog()
				return m, nil
			}
			return m, goBack
		case key.Matches(msg, m.Keys.Activate):
			return m.activate(msg.String())
		}
	}
	return m, nil
}

func (m WidgetsModel) updateSearch(msg tea.KeyMsg) (WidgetsModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.combo.Clickable() {
			m.combo.Clear()
			m.search.SetValue("")
			return m, nil
		}
		m.exitSearch()
		return m, nil
	case "enter":
		if matches := m.combo.Matches(); m.combo.Clickable() && len(matches) > 0 {
			m.status = "Selected " + matches[0]
		}
		m.exitSearch()
		return m, nil
	case "tab", "shift+tab":
		m.exitSearch()
		m.moveFocus(msg.String() == "shift+tab")
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.combo.SetInput(m.search.Value())
	return m, cmd
}

func (m *WidgetsModel) exitSearch() {
	m.combo.Exit()
	m.search.Blur()
}

// moveFocus offers Tab to the trap and falls back to native order.
func (m *WidgetsModel) moveFocus(backward bool) {
	res := m.trap.HandleKeyDown(focustrap.KeyEvent{Key: focustrap.KeyTab, Shift: backward})
	if !res.Handled {
		m.doc.Focus(m.doc.NextTabStop(backward))
	}
	m.logger.Debug("widgets focus",
		zap.Stringer("action", res.Action),
		zap.String("focused", m.Focused()),
	)
	m.syncFocus()
}

func (m *WidgetsModel) syncFocus() {
	m.terms.Blur()
	m.direct.Blur()
	switch m.Focused() {
	case idTerms:
		m.terms.Focus()
	case idDirectOnly:
		m.direct.Focus()
	}
}

// activate runs the focused control's action for Enter or Space.
func (m WidgetsModel) activate(pressed string) (WidgetsModel, tea.Cmd) {
	id := m.Focused()
	switch {
	case id == idTerms:
		m.toggleCheckbox(m.terms)
	case id == idDirectOnly:
		m.toggleCheckbox(m.direct)
	case id == idStepPrev:
		m.stepper.Previous()
	case id == idStepNext:
		m.stepper.Next()
	case id == idWeekPrev:
		m.week.PreviousWeek()
	case id == idWeekNext:
		m.week.NextWeek()
	case strings.HasPrefix(id, dayIDPrefix):
		var i int
		if _, err := fmt.Sscanf(id, dayIDPrefix+"%d", &i); err == nil && i >= 0 && i < 7 {
			m.week.Select(m.week.Days()[i].Date)
		}
	case id == idCombo:
		if m.combo.KeyDown(comboKey(pressed)) {
			m.search.SetValue(m.combo.Input())
			cmd := m.search.Focus()
			return m, cmd
		}
	case id == idTooltip:
		m.tooltip.KeyDown(comboKey(pressed))
	case strings.HasPrefix(id, openIDPrefix):
		return m.openDialog(widgets.Dialog(strings.TrimPrefix(id, openIDPrefix)))
	case id == widgets.FocusOtherClose || strings.HasSuffix(id, closeIDSuffix):
		m.closeDialog()
	default:
		for _, p := range widgets.Passengers {
			switch id {
			case widgets.CounterButtonID(p, true):
				m.filter.Increase(p)
			case widgets.CounterButtonID(p, false):
				m.filter.Decrease(p)
			default:
				continue
			}
			m.syncCounters()
		}
	}
	return m, nil
}

// comboKey maps a bubbletea key to the DOM key name the widgets expect.
func comboKey(pressed string) string {
	if pressed == "enter" {
		return "Enter"
	}
	return pressed
}

func (m *WidgetsModel) toggleCheckbox(c *widgets.Checkbox) {
	if !c.Toggle() {
		return
	}
	if el := m.doc.ElementByID(c.ID); el != nil {
		el.SetAttr("aria-checked", c.AriaChecked())
	}
}

func (m WidgetsModel) openDialog(d widgets.Dialog) (WidgetsModel, tea.Cmd) {
	if m.open != "" {
		m.closeDialog()
	}
	opener := m.Focused()
	target := m.filter.Open(d)
	if _, err := m.doc.AppendHTML(m.doc.ElementByID(idOverlay), dialogHTML(d, m.filter)); err != nil {
		m.filter.Close(d)
		m.status = err.Error()
		return m, nil
	}
	m.open = d
	m.opener = opener
	m.trap.Configure(dialogID(d), focustrap.ModeTab)
	m.doc.Focus(m.doc.ElementByID(target))
	m.syncFocus()
	m.status = dialogTitle(d) + " dialog open"

	if d != widgets.DialogDestination {
		return m, nil
	}
	gen := m.filter.Generation()
	ready := tea.Tick(widgets.ReadyDelay, func(time.Time) tea.Msg {
		return destinationReadyMsg{gen: gen}
	})
	return m, tea.Batch(ready, m.spinner.Tick)
}

func (m *WidgetsModel) closeDialog() {
	if m.open == "" {
		return
	}
	if el := m.doc.ElementByID(dialogID(m.open)); el != nil {
		_ = m.doc.Remove(el)
	}
	m.filter.Close(m.open)
	m.status = dialogTitle(m.open) + " dialog closed"
	m.open = ""
	m.trap.Configure(WidgetsBoundary, focustrap.ModeTab)
	m.doc.Focus(m.doc.ElementByID(m.opener))
	m.syncFocus()
}

func (m *WidgetsModel) syncCounters() {
	for _, p := range widgets.Passengers {
		if el := m.doc.ElementByID(widgets.CounterButtonID(p, false)); el != nil {
			el.SetAttr("aria-disabled", m.filter.DecreaseAriaDisabled(p))
		}
	}
}

// View renders every control, the open dialog and a status line.
func (m WidgetsModel) View() string {
	if m.doc == nil {
		return ""
	}
	width := contentWidth(m.Width)
	var b strings.Builder

	b.WriteString(RenderTitle("Keyboard operable widgets"))
	b.WriteString("\n")

	b.WriteString(m.control(idTerms, checkboxLabel(m.terms)))
	b.WriteString("\n\n")

	b.WriteString(m.renderStepper(width))
	b.WriteString("\n\n")

	b.WriteString(m.renderWeek())
	b.WriteString("\n\n")

	passengers := "Passengers"
	if n := m.filter.Total(); n > 0 {
		passengers = fmt.Sprintf("Passengers (%d)", n)
	}
	b.WriteString(strings.Join([]string{
		m.control(openIDPrefix+string(widgets.DialogDestination), "Destination"),
		m.control(openIDPrefix+string(widgets.DialogPassengers), passengers),
		m.control(openIDPrefix+string(widgets.DialogOther), "Other filters"),
	}, "  "))
	b.WriteString("\n\n")

	b.WriteString(m.renderCombo())
	b.WriteString("\n")
	b.WriteString(m.control(idTooltip, "?"))
	if m.tooltip.Visible() {
		b.WriteString("  " + LogStyle.Render(m.tooltip.Text))
	}

	if m.open != "" {
		b.WriteString("\n\n")
		b.WriteString(DialogStyle.Width(width - 4).Render(m.renderDialog()))
	}
	if m.status != "" {
		b.WriteString("\n\n")
		b.WriteString(StatusStyle.Render(m.status))
	}
	return b.String()
}

// control renders a control label with its focus and disabled state.
func (m WidgetsModel) control(id, label string) string {
	el := m.doc.ElementByID(id)
	switch {
	case el == nil:
		return label
	case el == m.doc.ActiveElement():
		return FocusedStyle.Render(ui.FocusMarker + " " + label)
	case el.Disabled():
		return DisabledStyle.Render("[" + label + "]")
	default:
		return "[" + label + "]"
	}
}

func checkboxLabel(c *widgets.Checkbox) string {
	mark := " "
	if c.Checked {
		mark = "x"
	}
	label := fmt.Sprintf("[%s] %s", mark, c.Label)
	if c.Required {
		label += " *"
	}
	return label
}

func (m WidgetsModel) renderStepper(width int) string {
	steps := m.stepper.Steps()
	parts := make([]string, len(steps))
	for i, s := range steps {
		title := s.Title
		if len(title) > 16 {
			title = title[:15] + "…"
		}
		switch m.stepper.Status(i) {
		case widgets.StepComplete:
			parts[i] = StatusStyle.Render(ui.SuccessMarker + " " + title)
		case widgets.StepCurrent:
			parts[i] = FocusedStyle.Render(s.Icon + " " + title)
		default:
			parts[i] = LogStyle.Render(title)
		}
	}
	m.progress.Width = width - 4
	done := 0.0
	if len(steps) > 1 {
		done = float64(m.stepper.Active()) / float64(len(steps)-1)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		strings.Join(parts, " › "),
		m.progress.ViewAs(done),
		m.control(idStepPrev, "Previous step")+"  "+m.control(idStepNext, "Next step"),
	)
}

func (m WidgetsModel) renderWeek() string {
	days := m.week.Days()
	cells := make([]string, 0, len(days)+2)
	cells = append(cells, m.control(idWeekPrev, "‹"))
	for i, d := range days {
		label := d.Date.Format("Mon 2")
		if d.Selected {
			label = "(" + label + ")"
		}
		if m.week.IsToday(d.Date) {
			label += "•"
		}
		cells = append(cells, m.control(fmt.Sprintf("%s%d", dayIDPrefix, i), label))
	}
	cells = append(cells, m.control(idWeekNext, "›"))
	return m.week.Start().Format("January 2006") + "\n" + strings.Join(cells, " ")
}

func (m WidgetsModel) renderCombo() string {
	if !m.combo.Editing() {
		label := "Search destinations"
		if in := m.combo.Input(); in != "" {
			label = in
		}
		return m.control(idCombo, label)
	}
	matches := m.combo.Matches()
	if len(matches) > 5 {
		matches = matches[:5]
	}
	return m.search.View() + "\n" + LogStyle.Render(strings.Join(matches, ", "))
}

func (m WidgetsModel) renderDialog() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(dialogTitle(m.open)))
	b.WriteString("\n")
	switch m.open {
	case widgets.DialogDestination:
		b.WriteString(m.control(widgets.FocusDestinationInput, "Where to? ________"))
		b.WriteString("\n")
		if m.filter.Ready() {
			b.WriteString(strings.Join(Destinations, ", "))
		} else {
			b.WriteString(m.spinner.View() + " Loading destinations")
		}
		b.WriteString("\n")
		b.WriteString(m.control(dialogID(m.open)+closeIDSuffix, "Close"))
	case widgets.DialogPassengers:
		for _, p := range widgets.Passengers {
			fmt.Fprintf(&b, "%-9s %s %2d %s\n", p,
				m.control(widgets.CounterButtonID(p, false), "-"),
				m.filter.Count(p),
				m.control(widgets.CounterButtonID(p, true), "+"))
		}
		b.WriteString(m.control(dialogID(m.open)+closeIDSuffix, "Done"))
	default:
		b.WriteString(m.control(widgets.FocusOtherClose, "Close"))
		b.WriteString("\n")
		b.WriteString(m.control(idDirectOnly, checkboxLabel(m.direct)))
	}
	return b.String()
}
