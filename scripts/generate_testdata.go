//go:build ignore

// generate_testdata.go creates sample tutorial datasets for benchmarking and
// manual testing.
// Usage: go run scripts/generate_testdata.go
//
// Creates:
//   testdata/datasets/small/   (100 tutorials)
//   testdata/datasets/medium/  (1000 tutorials)
//   testdata/datasets/large/   (10000 tutorials)
//
// Each directory holds tutorials.csv and an htmls/ directory of documents.
// Run dq against one with: dq --dataset testdata/datasets/medium
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vanderheijden86/devquest/pkg/testutil"
)

type datasetSpec struct {
	name string
	size int
}

var datasets = []datasetSpec{
	{"small", 100},
	{"medium", 1000},
	{"large", 10000},
}

func main() {
	outputDir := "testdata/datasets"

	for _, ds := range datasets {
		fmt.Printf("Generating %s dataset (%d tutorials)...\n", ds.name, ds.size)

		gen := testutil.New(testutil.GeneratorConfig{
			Seed:            int64(ds.size), // Reproducible per-size
			NoOverviewRatio: 0.1,
			MissingDocRatio: 0.05,
		})
		dir := filepath.Join(outputDir, ds.name)
		written, err := gen.WriteDataset(dir, gen.Records(ds.size))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", dir, err)
			os.Exit(1)
		}

		fmt.Printf("  Written %s (%d with overview, %d missing documents)\n",
			written.Path, len(written.WithOverview), len(written.Missing))
	}

	fmt.Println("\nDone! Sample datasets created in", outputDir)
}
