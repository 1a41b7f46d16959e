// Package config handles loading and saving devquest configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/devquest/config.yaml
//   - Data:    ~/.local/share/devquest/ (default dataset location)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const appName = "devquest"

// Theme preference values. ThemeAuto follows the terminal background.
const (
	ThemeAuto  = "auto"
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// UIConfig holds UI preference settings.
type UIConfig struct {
	Theme string `yaml:"theme,omitempty"` // auto, dark, light
}

// PreviewConfig controls overview previews.
type PreviewConfig struct {
	ShowDelay time.Duration `yaml:"show_delay,omitempty"`
	HideDelay time.Duration `yaml:"hide_delay,omitempty"`
	// Timeout bounds a remote document fetch. Zero disables the timeout.
	Timeout           time.Duration `yaml:"timeout,omitempty"`
	MaxBytes          int64         `yaml:"max_bytes,omitempty"`
	RewriteAssetPaths bool          `yaml:"rewrite_asset_paths,omitempty"`
}

// Config is the top-level configuration for dq.
type Config struct {
	// Dataset is a dataset file or a directory searched for one.
	Dataset string `yaml:"dataset,omitempty"`
	// Docs is the directory or http(s) URL documents are resolved against.
	// Empty means "htmls" next to the dataset.
	Docs    string        `yaml:"docs,omitempty"`
	UI      UIConfig      `yaml:"ui,omitempty"`
	Preview PreviewConfig `yaml:"preview,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		UI: UIConfig{
			Theme: ThemeAuto,
		},
		Preview: PreviewConfig{
			ShowDelay: 500 * time.Millisecond,
			HideDelay: 200 * time.Millisecond,
			MaxBytes:  10 * 1024 * 1024,
		},
	}
}

// ConfigDir returns the XDG config directory for devquest.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

// DataDir returns the XDG data directory for devquest.
func DataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", appName)
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	cfg.Dataset = expandHome(cfg.Dataset)
	if !isURL(cfg.Docs) {
		cfg.Docs = expandHome(cfg.Docs)
	}
	return cfg, nil
}

// Validate rejects settings the UI cannot honour.
func (c Config) Validate() error {
	switch strings.ToLower(c.UI.Theme) {
	case "", ThemeAuto, ThemeDark, ThemeLight:
	default:
		return fmt.Errorf("invalid ui.theme %q (want auto, dark or light)", c.UI.Theme)
	}
	if c.Preview.ShowDelay < 0 || c.Preview.HideDelay < 0 || c.Preview.Timeout < 0 {
		return fmt.Errorf("preview delays and timeout must not be negative")
	}
	if c.Preview.MaxBytes < 0 {
		return fmt.Errorf("preview.max_bytes must not be negative")
	}
	return nil
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// DatasetPath returns the configured dataset location, falling back to the
// working directory.
func (c Config) DatasetPath() string {
	if c.Dataset != "" {
		return c.Dataset
	}
	return "."
}

// DocsLocation returns where documents live for a dataset loaded from
// datasetFile.
func (c Config) DocsLocation(datasetFile string) string {
	if c.Docs != "" {
		return c.Docs
	}
	return filepath.Join(filepath.Dir(datasetFile), "htmls")
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
