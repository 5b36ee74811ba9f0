// Wcagdemo is a keyboard accessibility demo for WCAG success criteria.
//
// It browses a catalog of WCAG cases, each with an inaccessible and an
// accessible example, and lets you drive a focus trap over the examples'
// markup from the keyboard. The same trap is available to browsers and
// scripts through the serve command.
//
// Usage:
//
//	wcagdemo [command] [flags]
//
// Running without arguments launches the interactive demo.
// See 'wcagdemo --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/wcagdemo/internal/catalog"
	"github.com/muurk/wcagdemo/internal/config"
	"github.com/muurk/wcagdemo/internal/logging"
	"github.com/muurk/wcagdemo/internal/tui"
	"github.com/muurk/wcagdemo/internal/version"
)

func main() {
	err := rootCmd.Execute()
	logging.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Global flags
var (
	logLevel   string
	configPath string
	casesPath  string
)

var rootCmd = &cobra.Command{
	Use:   "wcagdemo",
	Short: "WCAG keyboard accessibility demo",
	Long: `An interactive demo of WCAG success criteria, focused on keyboard access.

Browse cases with a failing and a passing example each, open the focus trap
playground to feel how a modal dialog should keep Tab inside itself, and try
keyboard operable widgets built the accessible way.

If no command is specified, the interactive demo launches automatically.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logging.Initialize(logLevel); err != nil {
			return err
		}
		if configPath != "" {
			config.SetPath(configPath)
		}
		return nil
	},
	RunE: runDemo,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); silent when unset")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/wcagdemo/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&casesPath, "cases", "", "Cases file replacing the embedded catalog")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		info := version.Get()
		fmt.Printf("wcagdemo %s (commit: %s)\n", info.Version, info.Commit)
		if info.Date != "" {
			fmt.Printf("built:    %s\n", info.Date)
		}
		fmt.Printf("go:       %s %s\n", info.GoVersion, info.Platform)
	},
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if casesPath != "" {
		cfg.Preferences.CasesFile = casesPath
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	return tui.Run(cfg, cat)
}

// loadCatalog loads the cases file named by --cases or the config, or the
// embedded catalog when neither is set.
func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	path := casesPath
	if path == "" && cfg != nil {
		path = cfg.Preferences.CasesFile
	}
	if path == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.LoadFile(path)
	if err != nil {
		return nil, err
	}
	logging.Debug("catalog loaded", zap.String("path", path), zap.Int("cases", cat.Len()))
	return cat, nil
}
