package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/wcagdemo/internal/catalog"
	"github.com/muurk/wcagdemo/internal/ui"
)

// catalogKeyMap defines key bindings for the catalog screen
type catalogKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Toggle     key.Binding
	Open       key.Binding
	Filter     key.Binding
	Pillar     key.Binding
	Playground key.Binding
	Widgets    key.Binding
	Quit       key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k catalogKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Open, k.Filter, k.Pillar, k.Playground, k.Widgets, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k catalogKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.Open},
		{k.Filter, k.Pillar, k.Playground, k.Widgets, k.Quit},
	}
}

// caseItem wraps a Case for use with bubbles/list
type caseItem struct {
	c *catalog.Case
}

func (i caseItem) FilterValue() string { return i.c.FilterValue() }

// caseDelegate renders a case as a title line plus, when expanded, its
// description.
type caseDelegate struct {
	expanded *catalog.Toggles
	width    int
}

func (d caseDelegate) Height() int                               { return 2 }
func (d caseDelegate) Spacing() int                              { return 0 }
func (d caseDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d caseDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ci, ok := item.(caseItem)
	if !ok {
		return
	}
	c := ci.c
	open := d.expanded.IsOpen(c.ID)

	arrow := "▸"
	if open {
		arrow = "▾"
	}
	title := fmt.Sprintf("%s %-7s %-3s %s", arrow, c.Criterion, c.Level, c.Name)
	if index == m.Index() {
		title = SelectedMenuItemStyle.Render("→ " + title)
	} else {
		title = MenuItemStyle.Render(title)
	}
	badge := ui.PillarStyle(c.Pillar).Render(" " + string(c.Pillar))

	second := ""
	if open {
		width := d.width - 8
		if width < 20 {
			width = 20
		}
		desc := strings.Join(strings.Fields(c.Description), " ")
		if len(desc) > width {
			desc = desc[:width-1] + "…"
		}
		second = lipgloss.NewStyle().PaddingLeft(8).Foreground(SubtleColor).Render(desc)
	}
	fmt.Fprint(w, title+badge+"\n"+second)
}

// CatalogModel is the case list screen.
type CatalogModel struct {
	List     list.Model
	Keys     catalogKeyMap
	Status   string
	catalog  *catalog.Catalog
	expanded *catalog.Toggles
	pillar   catalog.Pillar
	width    int
}

// NewCatalogModel builds the list and selects lastCase if present.
func NewCatalogModel(cat *catalog.Catalog, expanded *catalog.Toggles, lastCase string) CatalogModel {
	delegate := caseDelegate{expanded: expanded, width: MinTerminalWidth}
	l := list.New(nil, delegate, MinTerminalWidth, 20)
	l.Title = "WCAG success criteria"
	l.Styles.Title = TitleStyle
	l.SetShowHelp(false)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	// Left/right are ours: → opens a case.
	l.KeyMap.NextPage.SetKeys("pgdown")
	l.KeyMap.PrevPage.SetKeys("pgup")

	m := CatalogModel{
		List:     l,
		catalog:  cat,
		expanded: expanded,
		Keys: catalogKeyMap{
			Up: key.NewBinding(
				key.WithKeys("up", "k"),
				key.WithHelp("↑/k", "move up"),
			),
			Down: key.NewBinding(
				key.WithKeys("down", "j"),
				key.WithHelp("↓/j", "move down"),
			),
			Toggle: key.NewBinding(
				key.WithKeys("enter", " "),
				key.WithHelp("enter", "expand"),
			),
			Open: key.NewBinding(
				key.WithKeys("right", "l"),
				key.WithHelp("→", "details"),
			),
			Filter: key.NewBinding(
				key.WithKeys("/"),
				key.WithHelp("/", "filter"),
			),
			Pillar: key.NewBinding(
				key.WithKeys("p"),
				key.WithHelp("p", "principle"),
			),
			Playground: key.NewBinding(
				key.WithKeys("t"),
				key.WithHelp("t", "trap playground"),
			),
			Widgets: key.NewBinding(
				key.WithKeys("w"),
				key.WithHelp("w", "widgets"),
			),
			Quit: quitBinding,
		},
	}
	m.refresh()
	m.selectID(lastCase)
	return m
}

// Init implements the screen contract; the list needs no startup command.
func (m CatalogModel) Init() tea.Cmd {
	return nil
}

// SetSize resizes the list.
func (m *CatalogModel) SetSize(width, height int) {
	m.width = width
	m.List.SetSize(contentWidth(width), contentHeight(height))
	m.List.SetDelegate(caseDelegate{expanded: m.expanded, width: contentWidth(width)})
}

// SetCatalog replaces the cases, keeping the selection when possible.
func (m *CatalogModel) SetCatalog(cat *catalog.Catalog) {
	selected := ""
	if c := m.Selected(); c != nil {
		selected = c.ID
	}
	m.catalog = cat
	m.refresh()
	m.selectID(selected)
}

// Pillar returns the active principle filter; empty means all.
func (m CatalogModel) Pillar() catalog.Pillar {
	return m.pillar
}

// Selected returns the highlighted case.
func (m CatalogModel) Selected() *catalog.Case {
	if ci, ok := m.List.SelectedItem().(caseItem); ok {
		return ci.c
	}
	return nil
}

func (m *CatalogModel) refresh() {
	cases := m.catalog.ByPillar(m.pillar)
	items := make([]list.Item, len(cases))
	for i, c := range cases {
		items[i] = caseItem{c: c}
	}
	m.List.SetItems(items)
	if m.pillar == "" {
		m.List.Title = "WCAG success criteria"
	} else {
		m.List.Title = "WCAG success criteria · " + m.pillar.Title()
	}
}

func (m *CatalogModel) selectID(id string) {
	if id == "" {
		return
	}
	for i, item := range m.List.Items() {
		if ci, ok := item.(caseItem); ok && ci.c.ID == id {
			m.List.Select(i)
			return
		}
	}
}

// nextPillar cycles all → perceivable → ... → robust → all.
func nextPillar(p catalog.Pillar) catalog.Pillar {
	if p == "" {
		return catalog.Pillars[0]
	}
	for i, known := range catalog.Pillars {
		if known == p && i+1 < len(catalog.Pillars) {
			return catalog.Pillars[i+1]
		}
	}
	return ""
}

// Update handles catalog input.
func (m CatalogModel) Update(msg tea.Msg) (CatalogModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	// While the filter prompt is open every key belongs to it.
	if !ok || m.List.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.List, cmd = m.List.Update(msg)
		return m, cmd
	}

	m.Status = ""
	switch {
	case key.Matches(keyMsg, m.Keys.Quit):
		return m, tea.Quit
	case key.Matches(keyMsg, m.Keys.Toggle):
		if c := m.Selected(); c != nil {
			m.expanded.Toggle(c.ID)
		}
		return m, nil
	case key.Matches(keyMsg, m.Keys.Open):
		if c := m.Selected(); c != nil {
			return m, transition(ScreenDetail, c.ID)
		}
		return m, nil
	case key.Matches(keyMsg, m.Keys.Pillar):
		m.pillar = nextPillar(m.pillar)
		m.refresh()
		return m, nil
	case key.Matches(keyMsg, m.Keys.Playground):
		id := ""
		if c := m.Selected(); c != nil && c.Demo == DemoFocusTrap {
			id = c.ID
		}
		return m, transition(ScreenPlayground, id)
	case key.Matches(keyMsg, m.Keys.Widgets):
		return m, transition(ScreenWidgets, "")
	}

	var cmd tea.Cmd
	m.List, cmd = m.List.Update(msg)
	return m, cmd
}

// View renders the list and a status line.
func (m CatalogModel) View() string {
	view := m.List.View()
	if m.Status != "" {
		view += "\n" + StatusStyle.Render(m.Status)
	}
	return view
}
