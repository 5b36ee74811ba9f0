package config

import (
	"net"
	"strconv"

	"github.com/muurk/wcagdemo/internal/focustrap"
)

// CurrentVersion is the only config file version this build reads.
const CurrentVersion = 1

// Default server settings.
const (
	DefaultHost     = "127.0.0.1"
	DefaultPort     = 8470
	DefaultInstance = "wcagdemo"
)

// Config represents the entire user configuration file.
type Config struct {
	Version     int          `yaml:"version"`
	Preferences *Preferences `yaml:"preferences,omitempty"`
	Server      *Server      `yaml:"server,omitempty"`
	Session     *Session     `yaml:"session,omitempty"`

	// path is where the config was loaded from and where Save writes.
	path string
}

// Preferences holds demo behaviour the user can change.
type Preferences struct {
	TrapMode         focustrap.Mode `yaml:"trap_mode"`            // Keys the playground trap intercepts
	ShowExplanations bool           `yaml:"show_explanations"`    // Show the explanation under each case
	CasesFile        string         `yaml:"cases_file,omitempty"` // Custom cases file replacing the embedded catalog
}

// Server holds defaults for the serve command.
type Server struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	Advertise bool   `yaml:"advertise"`          // Register the server over mDNS
	Instance  string `yaml:"instance,omitempty"` // mDNS instance name
}

// Session is UI state restored on the next launch.
type Session struct {
	Expanded []string `yaml:"expanded,omitempty"`  // Expanded case ids
	LastCase string   `yaml:"last_case,omitempty"` // Case selected when the TUI closed
}

// New creates a Config with default values.
func New() *Config {
	c := &Config{Version: CurrentVersion}
	c.applyDefaults()
	return c
}

// applyDefaults fills sections missing from an older or hand-written file.
func (c *Config) applyDefaults() {
	if c.Preferences == nil {
		c.Preferences = &Preferences{
			TrapMode:         focustrap.ModeTab,
			ShowExplanations: true,
		}
	}
	if c.Server == nil {
		c.Server = &Server{}
	}
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.Instance == "" {
		c.Server.Instance = DefaultInstance
	}
	if c.Session == nil {
		c.Session = &Session{}
	}
}

// Path returns the file this config is saved to. Empty means the default
// location.
func (c *Config) Path() string {
	return c.path
}

// Addr returns the server listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// RememberSession records UI state to restore on the next launch.
func (c *Config) RememberSession(expanded []string, lastCase string) {
	c.Session.Expanded = append([]string(nil), expanded...)
	c.Session.LastCase = lastCase
}
