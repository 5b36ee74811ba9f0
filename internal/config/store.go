package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	appName    = "wcagdemo"
	configFile = "config.yaml"
)

// ErrUnsupportedVersion is returned for config files written by a newer or
// unknown version.
var ErrUnsupportedVersion = errors.New("unsupported config version")

var (
	// Global config instance (loaded lazily)
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigErr  error

	// overridePath replaces the default location when set by --config.
	overridePath string

	// Mutex for thread-safe file operations
	fileMutex sync.Mutex
)

// GetConfigDir returns the OS-appropriate configuration directory:
//   - Linux: $XDG_CONFIG_HOME/wcagdemo or $HOME/.config/wcagdemo
//   - macOS: $HOME/.config/wcagdemo
//   - Windows: %LOCALAPPDATA%\wcagdemo
func GetConfigDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			return filepath.Join(localAppData, appName), nil
		}
		userProfile := os.Getenv("USERPROFILE")
		if userProfile == "" {
			return "", fmt.Errorf("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
		}
		return filepath.Join(userProfile, "AppData", "Local", appName), nil

	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		return filepath.Join(homeDir, ".config", appName), nil

	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		return filepath.Join(homeDir, ".config", appName), nil
	}
}

// GetConfigPath returns the full path to the configuration file, honouring
// SetPath.
func GetConfigPath() (string, error) {
	if overridePath != "" {
		return overridePath, nil
	}
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, configFile), nil
}

// SetPath makes Load and Save use path instead of the default location.
// It must be called before the first Load.
func SetPath(path string) {
	overridePath = path
}

// Load loads the global configuration. A missing file yields defaults.
// Thread-safe - multiple calls return the same instance.
func Load() (*Config, error) {
	globalConfigOnce.Do(func() {
		var path string
		path, globalConfigErr = GetConfigPath()
		if globalConfigErr != nil {
			globalConfigErr = fmt.Errorf("failed to get config path: %w", globalConfigErr)
			return
		}
		globalConfig, globalConfigErr = LoadFrom(path)
	})
	return globalConfig, globalConfigErr
}

// LoadFrom reads the config at path. A missing file yields defaults bound
// to path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		c := New()
		c.path = path
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if c.Version != CurrentVersion {
		return nil, fmt.Errorf("%w: %d (expected %d)", ErrUnsupportedVersion, c.Version, CurrentVersion)
	}
	c.applyDefaults()
	c.path = path
	return &c, nil
}

// Reload discards the global instance and reads it again from disk.
func Reload() (*Config, error) {
	fileMutex.Lock()
	globalConfigOnce = sync.Once{}
	fileMutex.Unlock()
	return Load()
}

// Save writes the config atomically to its path, or to the default
// location when it has none.
func (c *Config) Save() error {
	fileMutex.Lock()
	defer fileMutex.Unlock()

	path := c.path
	if path == "" {
		var err error
		if path, err = GetConfigPath(); err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	header := []byte(`# wcagdemo configuration file
#
# trap_mode is "tab" or "tab_and_arrow_keys".
# cases_file replaces the embedded WCAG catalog and is reloaded on change.
#
# Location: ` + path + `

`)
	data = append(header, data...)

	// Write to a temporary file first, then rename over the old one.
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary config file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save config file: %w", err)
	}
	c.path = path
	return nil
}

// SaveGlobal saves the global instance.
func SaveGlobal() error {
	c, err := Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	return c.Save()
}

// CreateDefault writes a default config to path, or to the default
// location when path is empty. An existing file is left alone unless
// force is set.
func CreateDefault(path string, force bool) (string, error) {
	if path == "" {
		var err error
		if path, err = GetConfigPath(); err != nil {
			return "", err
		}
	}
	if _, err := os.Stat(path); err == nil && !force {
		return path, fmt.Errorf("config file already exists: %s", path)
	}
	c := New()
	c.path = path
	return path, c.Save()
}
