package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"testing"

	"github.com/muurk/wcagdemo/internal/focustrap"
)

func TestGetConfigDir(t *testing.T) {
	if runtime.GOOS != "windows" && runtime.GOOS != "darwin" {
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	}
	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}
	if filepath.Base(configDir) != "wcagdemo" {
		t.Errorf("GetConfigDir() = %v, should end in wcagdemo", configDir)
	}
	if runtime.GOOS == "linux" && configDir != filepath.Join("/tmp/xdg", "wcagdemo") {
		t.Errorf("GetConfigDir() = %v, want XDG_CONFIG_HOME/wcagdemo", configDir)
	}
}

func TestGetConfigPathOverride(t *testing.T) {
	defer SetPath("")

	SetPath("/etc/wcagdemo.yaml")
	got, err := GetConfigPath()
	if err != nil || got != "/etc/wcagdemo.yaml" {
		t.Errorf("GetConfigPath() = %v, %v, want override", got, err)
	}

	SetPath("")
	got, err = GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}
	if filepath.Base(got) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with config.yaml, got: %v", got)
	}
}

func TestNew(t *testing.T) {
	c := New()
	if c.Version != CurrentVersion {
		t.Errorf("New().Version = %v, want %v", c.Version, CurrentVersion)
	}
	if c.Preferences.TrapMode != focustrap.ModeTab || !c.Preferences.ShowExplanations {
		t.Errorf("New().Preferences = %+v", c.Preferences)
	}
	if got := c.Addr(); got != "127.0.0.1:8470" {
		t.Errorf("Addr() = %v, want 127.0.0.1:8470", got)
	}
}

func TestLoadFromMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	c, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if c.Path() != path || c.Server == nil || c.Session == nil {
		t.Errorf("LoadFrom(missing) = %+v", c)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	c, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	c.Preferences.TrapMode = focustrap.ModeTabAndArrowKeys
	c.Server.Port = 9000
	c.RememberSession([]string{"wcag-2-1-2", "wcag-1-1-1"}, "wcag-2-1-2")
	if err := c.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file should be renamed away")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "trap_mode: tab_and_arrow_keys") {
		t.Errorf("saved file does not name the trap mode:\n%s", data)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if loaded.Preferences.TrapMode != focustrap.ModeTabAndArrowKeys {
		t.Errorf("TrapMode = %v, want tab_and_arrow_keys", loaded.Preferences.TrapMode)
	}
	if loaded.Server.Port != 9000 || loaded.Server.Host != DefaultHost {
		t.Errorf("Server = %+v", loaded.Server)
	}
	if !reflect.DeepEqual(loaded.Session.Expanded, []string{"wcag-2-1-2", "wcag-1-1-1"}) {
		t.Errorf("Expanded = %v", loaded.Session.Expanded)
	}
	if loaded.Session.LastCase != "wcag-2-1-2" {
		t.Errorf("LastCase = %v", loaded.Session.LastCase)
	}
}

func TestLoadFromErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{"future version", "version: 2\n", ErrUnsupportedVersion},
		{"missing version", "preferences: {}\n", ErrUnsupportedVersion},
		{"unknown mode", "version: 1\npreferences:\n  trap_mode: sideways\n", focustrap.ErrUnknownMode},
		{"invalid yaml", "version: [\n", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.data), 0600); err != nil {
				t.Fatal(err)
			}
			_, err := LoadFrom(path)
			if err == nil {
				t.Fatal("LoadFrom() should fail")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadFrom() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	got, err := CreateDefault(path, false)
	if err != nil || got != path {
		t.Fatalf("CreateDefault() = %v, %v", got, err)
	}
	if _, err := CreateDefault(path, false); err == nil {
		t.Error("CreateDefault() should refuse to overwrite")
	}
	if _, err := CreateDefault(path, true); err != nil {
		t.Errorf("CreateDefault(force) error = %v", err)
	}
}
