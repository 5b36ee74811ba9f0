package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/muurk/wcagdemo/internal/catalog"
	"github.com/muurk/wcagdemo/internal/focustrap"
	"github.com/muurk/wcagdemo/internal/logging"
)

// Screen represents the current active screen in the application
type Screen string

const (
	ScreenCatalog    Screen = "catalog"
	ScreenDetail     Screen = "detail"
	ScreenPlayground Screen = "playground"
	ScreenWidgets    Screen = "widgets"
)

// Demo names used in the cases file.
const (
	DemoFocusTrap = "focus-trap"
	DemoWidgets   = "widgets"
)

// Messages for screen transitions
type screenTransitionMsg struct {
	screen Screen
	caseID string
}

type goBackMsg struct{}

// CatalogReloadedMsg delivers a reloaded cases file to the running program.
type CatalogReloadedMsg struct {
	Catalog *catalog.Catalog
	Err     error
}

func transition(screen Screen, caseID string) tea.Cmd {
	return func() tea.Msg { return screenTransitionMsg{screen: screen, caseID: caseID} }
}

func goBack() tea.Msg { return goBackMsg{} }

// Options configures a new AppModel.
type Options struct {
	Catalog          *catalog.Catalog
	Mode             focustrap.Mode
	ShowExplanations bool
	Expanded         []string
	LastCase         string
}

// AppModel is the top-level coordinator model that manages screen transitions
type AppModel struct {
	// Current screen state
	CurrentScreen  Screen
	PreviousScreen Screen

	// Screen models
	CatalogModel    CatalogModel
	DetailModel     DetailModel
	PlaygroundModel PlaygroundModel
	WidgetsModel    WidgetsModel

	// Shared application state
	Catalog          *catalog.Catalog
	Expanded         *catalog.Toggles
	Demos            *catalog.Registry[Screen]
	Mode             focustrap.Mode
	ShowExplanations bool
	LastCase         string
	LastError        error

	// UI state
	Width  int
	Height int
	Help   help.Model
}

// NewAppModel creates the application model starting at the catalog.
func NewAppModel(opts Options) AppModel {
	cat := opts.Catalog
	if cat == nil {
		cat = catalog.Default()
	}
	m := AppModel{
		CurrentScreen:    ScreenCatalog,
		Catalog:          cat,
		Expanded:         catalog.NewToggles(opts.Expanded...),
		Demos:            registerDemos(cat),
		Mode:             opts.Mode,
		ShowExplanations: opts.ShowExplanations,
		LastCase:         opts.LastCase,
		Width:            MinTerminalWidth,
		Height:           24,
		Help:             help.New(),
	}
	m.CatalogModel = NewCatalogModel(cat, m.Expanded, opts.LastCase)
	return m
}

// registerDemos maps each case's accessible template key to the screen
// that demonstrates it interactively.
func registerDemos(cat *catalog.Catalog) *catalog.Registry[Screen] {
	reg := catalog.NewRegistry[Screen]()
	for _, c := range cat.All() {
		switch c.Demo {
		case DemoFocusTrap:
			reg.Register(c.AccessibleKey(), ScreenPlayground)
		case DemoWidgets:
			reg.Register(c.AccessibleKey(), ScreenWidgets)
		}
	}
	return reg
}

// Init initializes the application
func (m AppModel) Init() tea.Cmd {
	return m.CatalogModel.Init()
}

// Update handles all messages and routes them to the appropriate screen
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.CatalogModel.SetSize(msg.Width, msg.Height)
		m.DetailModel.SetSize(msg.Width, msg.Height)
		m.PlaygroundModel.Width, m.PlaygroundModel.Height = msg.Width, msg.Height
		m.WidgetsModel.Width, m.WidgetsModel.Height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		// Global quit handler
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case screenTransitionMsg:
		return m.transitionTo(msg.screen, msg.caseID)

	case goBackMsg:
		return m.goBack()

	case CatalogReloadedMsg:
		if msg.Err != nil {
			m.LastError = msg.Err
			m.CatalogModel.Status = "cases file not reloaded: " + msg.Err.Error()
			return m, nil
		}
		m.LastError = nil
		m.Catalog = msg.Catalog
		m.Demos = registerDemos(msg.Catalog)
		m.CatalogModel.SetCatalog(msg.Catalog)
		m.CatalogModel.Status = "cases file reloaded"
		return m, nil
	}

	return m.updateCurrentScreen(msg)
}

// updateCurrentScreen routes updates to the currently active screen
func (m AppModel) updateCurrentScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.CurrentScreen {
	case ScreenCatalog:
		m.CatalogModel, cmd = m.CatalogModel.Update(msg)
		if c := m.CatalogModel.Selected(); c != nil {
			m.LastCase = c.ID
		}
	case ScreenDetail:
		m.DetailModel, cmd = m.DetailModel.Update(msg)
	case ScreenPlayground:
		m.PlaygroundModel, cmd = m.PlaygroundModel.Update(msg)
		m.Mode = m.PlaygroundModel.Mode()
	case ScreenWidgets:
		m.WidgetsModel, cmd = m.WidgetsModel.Update(msg)
	}

	return m, cmd
}

// transitionTo transitions to a new screen
func (m AppModel) transitionTo(screen Screen, caseID string) (tea.Model, tea.Cmd) {
	var c *catalog.Case
	if caseID != "" {
		found, err := m.Catalog.Get(caseID)
		if err != nil {
			m.LastError = err
			return m, nil
		}
		c = found
		m.LastCase = caseID
	}

	var cmd tea.Cmd
	switch screen {
	case ScreenCatalog:
		m.CatalogModel.SetSize(m.Width, m.Height)

	case ScreenDetail:
		if c == nil {
			return m, nil
		}
		demo, _ := m.Demos.Get(c.AccessibleKey())
		m.DetailModel = NewDetailModel(c, demo, m.ShowExplanations)
		m.DetailModel.SetSize(m.Width, m.Height)

	case ScreenPlayground:
		pg, err := NewPlaygroundModel(c, m.Mode, logging.Named("playground"))
		if err != nil {
			m.LastError = err
			m.CatalogModel.Status = err.Error()
			return m, nil
		}
		m.PlaygroundModel.Close()
		m.PlaygroundModel = pg
		m.PlaygroundModel.Width, m.PlaygroundModel.Height = m.Width, m.Height
		cmd = m.PlaygroundModel.Init()

	case ScreenWidgets:
		wm, err := NewWidgetsModel(nil, logging.Named("widgets"))
		if err != nil {
			m.LastError = err
			m.CatalogModel.Status = err.Error()
			return m, nil
		}
		m.WidgetsModel = wm
		m.WidgetsModel.Width, m.WidgetsModel.Height = m.Width, m.Height
		cmd = m.WidgetsModel.Init()
	}

	logging.Debug("screen transition",
		zap.String("from", string(m.CurrentScreen)),
		zap.String("to", string(screen)),
		zap.String("case", caseID),
	)
	m.PreviousScreen = m.CurrentScreen
	m.CurrentScreen = screen
	return m, cmd
}

// goBack returns to the previous screen
func (m AppModel) goBack() (tea.Model, tea.Cmd) {
	switch m.CurrentScreen {
	case ScreenCatalog:
		return m, tea.Quit
	case ScreenDetail:
		m.CurrentScreen, m.PreviousScreen = ScreenCatalog, ScreenDetail
		return m, nil
	case ScreenPlayground, ScreenWidgets:
		if m.CurrentScreen == ScreenPlayground {
			m.PlaygroundModel.Close()
		}
		m.PreviousScreen = m.CurrentScreen
		if m.LastCase != "" && m.DetailModel.Case() != nil {
			m.CurrentScreen = ScreenDetail
		} else {
			m.CurrentScreen = ScreenCatalog
		}
		return m, nil
	default:
		return m, tea.Quit
	}
}

// View renders the current screen
func (m AppModel) View() string {
	var content string
	var keys help.KeyMap
	switch m.CurrentScreen {
	case ScreenCatalog:
		content, keys = m.CatalogModel.View(), m.CatalogModel.Keys
	case ScreenDetail:
		content, keys = m.DetailModel.View(), m.DetailModel.Keys
	case ScreenPlayground:
		content, keys = m.PlaygroundModel.View(), m.PlaygroundModel.Keys
	case ScreenWidgets:
		content, keys = m.WidgetsModel.View(), m.WidgetsModel.Keys
	default:
		return "Unknown screen"
	}
	if m.LastError != nil && m.CurrentScreen != ScreenCatalog {
		content = ErrorStyle.Render("✗ "+m.LastError.Error()) + "\n\n" + content
	}
	return RenderApplicationContainer(content, m.Help.View(keys), m.Width, m.Height)
}

// Session returns the state to persist: expanded case ids and the last
// selected case.
func (m AppModel) Session() (expanded []string, lastCase string) {
	return m.Expanded.IDs(), m.LastCase
}

// quitBinding is shared by every screen.
var quitBinding = key.NewBinding(
	key.WithKeys("q"),
	key.WithHelp("q", "quit"),
)

var backBinding = key.NewBinding(
	key.WithKeys("esc"),
	key.WithHelp("esc", "back"),
)
