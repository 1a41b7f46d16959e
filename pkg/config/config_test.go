package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.UI.Theme != ThemeAuto {
		t.Errorf("expected default theme 'auto', got %q", cfg.UI.Theme)
	}
	if cfg.Preview.ShowDelay != 500*time.Millisecond {
		t.Errorf("expected show delay 500ms, got %v", cfg.Preview.ShowDelay)
	}
	if cfg.Preview.HideDelay != 200*time.Millisecond {
		t.Errorf("expected hide delay 200ms, got %v", cfg.Preview.HideDelay)
	}
	if cfg.Preview.Timeout != 0 {
		t.Errorf("expected no fetch timeout by default, got %v", cfg.Preview.Timeout)
	}
	if cfg.Preview.RewriteAssetPaths {
		t.Error("asset path rewriting should be off by default")
	}
}

func TestLoadFrom_NonExistent(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if cfg.UI.Theme != ThemeAuto {
		t.Errorf("expected default config, got theme %q", cfg.UI.Theme)
	}
}

func TestLoadFrom_ValidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
dataset: ~/quests/tutorials.csv
docs: https://example.com/htmls

ui:
  theme: light

preview:
  show_delay: 300ms
  timeout: 5s
  rewrite_asset_paths: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, "quests/tutorials.csv"); cfg.Dataset != want {
		t.Errorf("expected expanded dataset %q, got %q", want, cfg.Dataset)
	}
	if cfg.Docs != "https://example.com/htmls" {
		t.Errorf("docs URL changed: %q", cfg.Docs)
	}
	if cfg.UI.Theme != ThemeLight {
		t.Errorf("expected light theme, got %q", cfg.UI.Theme)
	}
	if cfg.Preview.ShowDelay != 300*time.Millisecond {
		t.Errorf("expected show delay 300ms, got %v", cfg.Preview.ShowDelay)
	}
	// Unset keys keep their defaults.
	if cfg.Preview.HideDelay != 200*time.Millisecond {
		t.Errorf("expected default hide delay, got %v", cfg.Preview.HideDelay)
	}
	if cfg.Preview.Timeout != 5*time.Second {
		t.Errorf("expected timeout 5s, got %v", cfg.Preview.Timeout)
	}
	if !cfg.Preview.RewriteAssetPaths {
		t.Error("expected rewrite_asset_paths to be enabled")
	}
}

func TestLoadFrom_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("ui: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoadFrom_InvalidTheme(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("ui:\n  theme: solarized\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Error("expected error for unknown theme")
	}
}

func TestValidate_Negative(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Preview.Timeout = -time.Second
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative timeout")
	}
	cfg = DefaultConfig()
	cfg.Preview.MaxBytes = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative max_bytes")
	}
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "config.yaml")

	cfg := DefaultConfig()
	cfg.Dataset = "/data/tutorials.db"
	cfg.Docs = "/data/htmls"
	cfg.UI.Theme = ThemeDark
	cfg.Preview.Timeout = 2 * time.Second

	if err := SaveTo(cfg, path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if got != cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, cfg)
	}
}

func TestDatasetAndDocsLocation(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.DatasetPath() != "." {
		t.Errorf("DatasetPath() = %q", cfg.DatasetPath())
	}
	if got := cfg.DocsLocation(filepath.Join("data", "tutorials.csv")); got != filepath.Join("data", "htmls") {
		t.Errorf("DocsLocation() = %q", got)
	}
	cfg.Docs = "https://example.com/docs"
	if got := cfg.DocsLocation("whatever.csv"); got != cfg.Docs {
		t.Errorf("configured docs ignored: %q", got)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir")
	}
	if got := expandHome("~/x"); got != filepath.Join(home, "x") {
		t.Errorf("expandHome(~/x) = %q", got)
	}
	if got := expandHome("/abs"); got != "/abs" {
		t.Errorf("expandHome(/abs) = %q", got)
	}
}

func TestConfigDir_XDGOverride(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	if got := ConfigDir(); got != "/custom/config/devquest" {
		t.Errorf("ConfigDir() = %q", got)
	}
	if got := ConfigPath(); got != "/custom/config/devquest/config.yaml" {
		t.Errorf("ConfigPath() = %q", got)
	}
}

func TestDataDir_XDGOverride(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/custom/data")
	if got := DataDir(); got != "/custom/data/devquest" {
		t.Errorf("DataDir() = %q", got)
	}
}
