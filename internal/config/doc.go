// Package config provides user configuration management for wcagdemo.
//
// This package manages a YAML configuration file holding demo preferences,
// defaults for the serve command and UI state restored between sessions.
// The file follows OS-specific conventions for its location.
//
// # Configuration File Location
//
//   - Linux: $XDG_CONFIG_HOME/wcagdemo/config.yaml or $HOME/.config/wcagdemo/config.yaml
//   - macOS: $HOME/.config/wcagdemo/config.yaml
//   - Windows: %LOCALAPPDATA%\wcagdemo\config.yaml
//
// The --config flag overrides the location through SetPath.
//
// # File Format
//
//	version: 1
//	preferences:
//	  trap_mode: tab_and_arrow_keys
//	  show_explanations: true
//	server:
//	  host: 127.0.0.1
//	  port: 8470
//	  advertise: false
//	session:
//	  expanded: [wcag-2-1-2]
//	  last_case: wcag-2-1-2
//
// # Usage Example
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cfg.Preferences.TrapMode = focustrap.ModeTabAndArrowKeys
//	if err := cfg.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// The global config uses sync.Once for safe initialization across
// goroutines. Saves are serialized by a mutex and written atomically.
package config
