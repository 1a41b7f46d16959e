package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/devquest/internal/datasource"
	"github.com/vanderheijden86/devquest/pkg/catalog"
	"github.com/vanderheijden86/devquest/pkg/config"
	"github.com/vanderheijden86/devquest/pkg/debug"
	"github.com/vanderheijden86/devquest/pkg/preview"
)

// env is everything a command needs after config and dataset loading.
type env struct {
	cfg     config.Config
	source  datasource.DataSource
	records []catalog.Record
	theme   catalog.Theme
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig() (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFrom(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return cfg, err
	}

	if datasetFlag != "" {
		cfg.Dataset = datasetFlag
	}
	if docsFlag != "" {
		cfg.Docs = docsFlag
	}
	if themeFlag != "" {
		cfg.UI.Theme = themeFlag
	}
	return cfg, cfg.Validate()
}

// loadEnv loads config and the dataset. A dataset that yields no records is
// reported as an error.
func loadEnv() (*env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	debug.Dump("config", cfg)

	start := time.Now()
	records, source, err := datasource.LoadRecords(cfg.DatasetPath())
	if err != nil {
		return nil, fmt.Errorf("loading dataset: %w", err)
	}
	debug.LogTiming("dq: dataset load", time.Since(start))
	debug.Log("dq: loaded %d records from %s", len(records), source)

	return &env{
		cfg:     cfg,
		source:  source,
		records: records,
		theme:   resolveTheme(cfg.UI.Theme, lipgloss.HasDarkBackground),
	}, nil
}

// fetcher returns the document fetcher for the loaded dataset.
func (e *env) fetcher() (preview.Fetcher, error) {
	location := e.cfg.DocsLocation(e.source.Path)
	f, err := preview.NewFetcher(location, preview.HTTPConfig{
		Timeout:  e.cfg.Preview.Timeout,
		MaxBytes: e.cfg.Preview.MaxBytes,
		// Identifies dq to documentation servers.
		UserAgent: "devquest-dq",
	})
	if err != nil {
		return nil, fmt.Errorf("documents location %s: %w", location, err)
	}
	return f, nil
}

// resolveTheme maps a theme preference onto a catalog theme. "auto" asks
// hasDark, which inspects the terminal background.
func resolveTheme(pref string, hasDark func() bool) catalog.Theme {
	switch strings.ToLower(pref) {
	case config.ThemeDark:
		return catalog.ThemeDark
	case config.ThemeLight:
		return catalog.ThemeLight
	}
	if hasDark == nil || hasDark() {
		return catalog.ThemeDark
	}
	return catalog.ThemeLight
}
