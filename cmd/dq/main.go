// Command dq browses a catalog of programming tutorials in the terminal and
// previews the overview section of each tutorial document.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/vanderheijden86/devquest/internal/datasource"
	"github.com/vanderheijden86/devquest/pkg/catalog"
	"github.com/vanderheijden86/devquest/pkg/config"
	"github.com/vanderheijden86/devquest/pkg/debug"
	"github.com/vanderheijden86/devquest/pkg/preview"
	"github.com/vanderheijden86/devquest/pkg/ui"
	"github.com/vanderheijden86/devquest/pkg/version"
	"github.com/vanderheijden86/devquest/pkg/watcher"
)

// Global flags shared by every command.
var (
	configPath  string
	datasetFlag string
	docsFlag    string
	themeFlag   string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "dq",
	Short: "Browse programming tutorials and preview their overviews",
	Long: `dq lists the tutorials of a devquest dataset (tutorials.csv, .tsv or .db),
filters them by category and search query, and previews the "Overview"
section of each tutorial document when the cursor rests on a row.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			debug.SetEnabled(true)
		}
	},
	RunE: runTUI,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the dq version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "dq %s\n", version.String())
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/devquest/config.yaml)")
	pf.StringVarP(&datasetFlag, "dataset", "d", "", "Dataset file or directory (overrides config)")
	pf.StringVar(&docsFlag, "docs", "", "Documents directory or http(s) URL (overrides config)")
	pf.StringVar(&themeFlag, "theme", "", "Colour theme: auto, dark or light (overrides config)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging (DQ_DEBUG_FILE or stderr)")

	rootCmd.AddCommand(versionCmd, listCmd, previewCmd, initCmd)
}

func main() {
	defer debug.Close()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runTUI(cmd *cobra.Command, args []string) error {
	if debug.Enabled() && os.Getenv("DQ_DEBUG_FILE") == "" {
		// stderr belongs to the TUI.
		logDir := config.DataDir()
		if err := os.MkdirAll(logDir, 0o755); err == nil {
			_ = debug.SetOutputFile(filepath.Join(logDir, "debug.log"))
		}
	}

	env, err := loadEnv()
	if err != nil {
		return err
	}

	store := catalog.NewStore(env.theme)
	store.Load(env.records)

	fetcher, err := env.fetcher()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()

	sink := preview.NewLatestSink()
	svc := preview.NewService(fetcher, sink, preview.Options{
		RewriteAssetPaths: env.cfg.Preview.RewriteAssetPaths,
	})
	hover := preview.NewHover(ctx, svc, preview.HoverConfig{
		ShowDelay: env.cfg.Preview.ShowDelay,
		HideDelay: env.cfg.Preview.HideDelay,
	})
	defer hover.Stop()

	// Live reload is best effort; the browser works without it.
	w, err := watcher.NewWatcher(env.source.Path, watcher.WithOnError(func(err error) {
		debug.Log("watcher: %v", err)
	}))
	if err == nil {
		if err := w.Start(); err != nil {
			debug.Log("watcher: not watching %s: %v", env.source.Path, err)
			w = nil
		} else {
			defer w.Stop()
		}
	} else {
		w = nil
	}

	source := env.source
	m := ui.NewModel(ui.Options{
		Store:   store,
		Hover:   hover,
		Sink:    sink,
		Fetcher: fetcher,
		Watcher: w,
		Reload: func() ([]catalog.Record, error) {
			return datasource.LoadFromSource(source)
		},
		DatasetName: filepath.Base(source.Path),
	})

	if err := runTUIProgram(m); err != nil {
		return fmt.Errorf("running dq: %w", err)
	}
	return nil
}

func runTUIProgram(m ui.Model) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
	)

	runDone := make(chan struct{})
	defer close(runDone)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	// Optional auto-quit for automated tests: set DQ_TUI_AUTOCLOSE_MS.
	if v := os.Getenv("DQ_TUI_AUTOCLOSE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			go func() {
				timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
				defer timer.Stop()

				select {
				case <-runDone:
					return
				case <-timer.C:
				}

				p.Quit()
			}()
		}
	}

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted) {
		return nil
	}
	return err
}

// commandContext returns the command's context, or Background when the
// command runs outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
