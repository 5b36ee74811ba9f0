package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/muurk/wcagdemo/internal/catalog"
	"github.com/muurk/wcagdemo/internal/config"
	"github.com/muurk/wcagdemo/internal/logging"
)

// Run starts the interactive demo over cat. When the config names a cases
// file, edits to it are pushed into the running program. The session and
// trap mode are saved back to cfg on a clean exit.
func Run(cfg *config.Config, cat *catalog.Catalog) error {
	if cfg == nil {
		cfg = config.New()
	}
	model := NewAppModel(Options{
		Catalog:          cat,
		Mode:             cfg.Preferences.TrapMode,
		ShowExplanations: cfg.Preferences.ShowExplanations,
		Expanded:         cfg.Session.Expanded,
		LastCase:         cfg.Session.LastCase,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())

	if path := cfg.Preferences.CasesFile; path != "" {
		w, err := catalog.Watch(path, func(c *catalog.Catalog, err error) {
			p.Send(CatalogReloadedMsg{Catalog: c, Err: err})
		}, logging.Named("catalog"))
		if err != nil {
			logging.Warn("cases file will not be reloaded", zap.String("path", path), zap.Error(err))
		} else {
			defer w.Close()
		}
	}

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("demo error: %w", err)
	}

	app, ok := final.(AppModel)
	if !ok {
		return nil
	}
	app.PlaygroundModel.Close()
	expanded, lastCase := app.Session()
	cfg.RememberSession(expanded, lastCase)
	cfg.Preferences.TrapMode = app.Mode
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	logging.Debug("session saved", zap.Int("expanded", len(expanded)), zap.String("last_case", lastCase))
	return nil
}
