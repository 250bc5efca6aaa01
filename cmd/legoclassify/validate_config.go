package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tsawler/legoclassify/config"
)

var validateConfigPath string

var validateConfigCmd = &cobra.Command{
	Use:   "validate-config",
	Short: "Load and validate a SolverConfig YAML file without running classification",
	RunE:  runValidateConfig,
}

func init() {
	validateConfigCmd.Flags().StringVar(&validateConfigPath, "config", "", "path to a SolverConfig YAML file (required)")
	_ = validateConfigCmd.MarkFlagRequired("config")
}

func runValidateConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(validateConfigPath)
	if err != nil {
		return err
	}
	fmt.Printf("%s is valid:\n", validateConfigPath)
	fmt.Printf("  use_solver: %v\n", cfg.UseSolver)
	fmt.Printf("  solver_labels: %v\n", cfg.SolverLabels)
	fmt.Printf("  unconsumed_penalty: %v\n", cfg.UnconsumedPenalty)
	fmt.Printf("  per_page_timeout: %v\n", cfg.PerPageTimeout)
	fmt.Printf("  build_retry_budget: %v\n", cfg.BuildRetryBudget)
	return nil
}
