package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tsawler/legoclassify"
	"github.com/tsawler/legoclassify/block"
	"github.com/tsawler/legoclassify/classifiers"
	"github.com/tsawler/legoclassify/config"
	"github.com/tsawler/legoclassify/logging"
	"github.com/tsawler/legoclassify/metrics"
)

var (
	inDir      string
	outDir     string
	configPath string
	logLevel   string
	logPretty  bool
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify every page JSON file in a directory",
	RunE:  runClassify,
}

func init() {
	classifyCmd.Flags().StringVar(&inDir, "in", "", "directory of page JSON files (required)")
	classifyCmd.Flags().StringVar(&outDir, "out", "", "directory to write page_NNNN.json/report_NNNN.json pairs into (required)")
	classifyCmd.Flags().StringVar(&configPath, "config", "", "path to a SolverConfig YAML file (defaults to config.DefaultSolverConfig)")
	classifyCmd.Flags().StringVar(&logLevel, "log-level", "info", "zerolog level: debug, info, warn, error")
	classifyCmd.Flags().BoolVar(&logPretty, "log-pretty", false, "use zerolog's human-readable console writer instead of JSON")
	_ = classifyCmd.MarkFlagRequired("in")
	_ = classifyCmd.MarkFlagRequired("out")
}

func runClassify(cmd *cobra.Command, args []string) error {
	log := logging.New(logging.Options{Level: logLevel, Pretty: logPretty})
	metrics.Init()

	cfg := config.DefaultSolverConfig()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	pages, err := loadPages(inDir, log)
	if err != nil {
		return err
	}
	if len(pages) == 0 {
		return fmt.Errorf("legoclassify: no page JSON files found in %s", inDir)
	}

	engine, err := legoclassify.NewWithLogger(classifiers.All(), cfg, log)
	if err != nil {
		return fmt.Errorf("legoclassify: constructing engine: %w", err)
	}

	results := engine.ClassifyDocument(context.Background(), pages)

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("legoclassify: creating output dir: %w", err)
	}

	for i, res := range results {
		idx := pages[i].Index()
		if res.Err != nil {
			log.Error().Int("page", idx).Err(res.Err).Msg("page classification returned an error")
			continue
		}
		if err := writeJSON(filepath.Join(outDir, fmt.Sprintf("page_%04d.json", idx)), res.Page); err != nil {
			return err
		}
		if err := writeJSON(filepath.Join(outDir, fmt.Sprintf("report_%04d.json", idx)), res.Report); err != nil {
			return err
		}
	}

	log.Info().Int("pages", len(pages)).Str("out", outDir).Msg("classification complete")
	return nil
}

// loadPages reads every *.json file in dir as wire-format page data
// (block.DecodePageData), sorted by filename so page order is deterministic
// regardless of directory iteration order.
func loadPages(dir string, log zerolog.Logger) ([]*block.PageData, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("legoclassify: reading %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	pages := make([]*block.PageData, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("legoclassify: reading %s: %w", name, err)
		}
		pd, dropped, err := block.DecodePageData(data)
		if err != nil {
			return nil, fmt.Errorf("legoclassify: decoding %s: %w", name, err)
		}
		for _, d := range dropped {
			log.Warn().Str("file", name).Int("block", d.ID).Str("reason", d.Reason).Msg("dropped invalid block")
		}
		pages = append(pages, pd)
	}
	return pages, nil
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("legoclassify: marshaling %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("legoclassify: writing %s: %w", path, err)
	}
	return nil
}
