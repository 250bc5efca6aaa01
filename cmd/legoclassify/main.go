// legoclassify runs the classification core over a directory of
// extractor-produced page JSON files and writes one Page element plus one
// ClassificationReport per page. It is the reference host for the core —
// PDF parsing itself stays out of scope and is assumed to have already
// produced the page JSON this command reads.
//
// Usage:
//
//	legoclassify classify --in ./pages --out ./out [--config legoclassify.yaml]
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// .env is optional local-dev convenience, loaded into the process
	// environment; no command reads an environment variable from it, and a
	// missing file is not an error.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "legoclassify",
	Short: "Classify extracted LEGO instruction-page blocks into a structured page model",
	Long: `legoclassify runs the rule-based classification core over page JSON
produced by an external block extractor, and emits one Page element and
one ClassificationReport per page.`,
}

func init() {
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(serveMetricsCmd)
	rootCmd.AddCommand(validateConfigCmd)
}
