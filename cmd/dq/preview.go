package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vanderheijden86/devquest/pkg/catalog"
	"github.com/vanderheijden86/devquest/pkg/preview"
)

var (
	previewPlain bool
	previewWidth int
)

var previewCmd = &cobra.Command{
	Use:   "preview <topic|document>",
	Short: "Print the overview of one tutorial",
	Long: `Print the "Overview" section of a tutorial document. The argument is a
topic from the dataset (case-insensitive) or a document reference such as
"goroutines.html".`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().BoolVar(&previewPlain, "plain", false, "Print markdown without terminal styling")
	previewCmd.Flags().IntVarP(&previewWidth, "width", "w", 80, "Wrap width")
}

func runPreview(cmd *cobra.Command, args []string) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}
	fetcher, err := env.fetcher()
	if err != nil {
		return err
	}

	ref := documentRef(env.records, args[0])
	d := fetchPreview(cmd, fetcher, ref, env.cfg.Preview.RewriteAssetPaths)
	if err := writePreview(cmd.OutOrStdout(), d, previewWidth, env.theme == catalog.ThemeDark, previewPlain); err != nil {
		return err
	}
	if d.State == preview.StateError {
		return d.Err
	}
	return nil
}

// documentRef returns the document of the record whose topic matches arg,
// or arg itself.
func documentRef(records []catalog.Record, arg string) string {
	for _, r := range records {
		if strings.EqualFold(r.Topic, arg) {
			return r.Filename
		}
	}
	return arg
}

// fetchPreview runs one request through the preview service and returns the
// final display.
func fetchPreview(cmd *cobra.Command, f preview.Fetcher, ref string, rewrite bool) preview.Display {
	sink := preview.NewLatestSink()
	svc := preview.NewService(f, sink, preview.Options{RewriteAssetPaths: rewrite})
	svc.RequestPreview(commandContext(cmd), preview.Target(ref), ref)
	svc.Wait()
	return sink.Latest()
}

func writePreview(w io.Writer, d preview.Display, width int, dark, plain bool) error {
	r := preview.NewRenderer(width, dark)
	text := r.Render(d)
	if plain {
		text = r.Text(d)
	}
	_, err := fmt.Fprintln(w, text)
	return err
}
