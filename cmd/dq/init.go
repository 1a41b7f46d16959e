package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vanderheijden86/devquest/pkg/config"
)

var initDefaults bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file interactively",
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initDefaults, "defaults", false, "Write the current settings without prompting")
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if !initDefaults {
		if err := configForm(&cfg).Run(); err != nil {
			return err
		}
	}
	cfg.UI.Theme = strings.ToLower(cfg.UI.Theme)
	if err := cfg.Validate(); err != nil {
		return err
	}

	path := configPath
	if path == "" {
		path = config.ConfigPath()
	}
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	if err := config.SaveTo(cfg, path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

// isTerminal checks if stdin is connected to a terminal
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// configForm builds the form that edits cfg in place.
func configForm(cfg *config.Config) *huh.Form {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Dataset").
				Description("tutorials.csv, .tsv or .db file, or a directory containing one").
				Placeholder(".").
				Value(&cfg.Dataset),
			huh.NewInput().
				Title("Documents").
				Description("Directory or http(s) URL of the tutorial pages (empty: htmls/ next to the dataset)").
				Value(&cfg.Docs),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Theme").
				Options(
					huh.NewOption("Follow the terminal", config.ThemeAuto),
					huh.NewOption("Dark", config.ThemeDark),
					huh.NewOption("Light", config.ThemeLight),
				).
				Value(&cfg.UI.Theme),
			huh.NewConfirm().
				Title("Rewrite relative asset paths?").
				Description("Strip one leading ../ from image sources before extracting overviews").
				Value(&cfg.Preview.RewriteAssetPaths),
		),
	).WithTheme(huh.ThemeDracula())
	if !isTerminal() {
		form = form.WithAccessible(true)
	}
	return form
}
