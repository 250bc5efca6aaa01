// Package config holds the host-supplied SolverConfig plus the YAML loading
// and validation around it, following a Config-struct-plus-Default
// constructor idiom with go-playground/validator struct tags for
// per-field checks.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// allLabelsSentinel is the SolverLabels value meaning "every declared
// label", spelled ALL.
const allLabelsSentinel = "ALL"

// SolverConfig is the host-supplied control surface for one pipeline run.
// Labels outside SolverLabels fall back to greedy highest-score-first
// selection respecting block exclusivity rather than going through the
// constraint solver.
type SolverConfig struct {
	// UseSolver toggles the constraint solver entirely; false runs every
	// label through the greedy fallback.
	UseSolver bool `yaml:"use_solver" validate:"-"`

	// SolverLabels lists which labels participate in the solver when
	// UseSolver is true. A single entry of "ALL" (the default) covers the
	// full label set.
	SolverLabels []string `yaml:"solver_labels" validate:"required,min=1"`

	// UnconsumedPenalty is λ in the solver's objective, the per-block
	// reward for explaining more of the page.
	UnconsumedPenalty float64 `yaml:"unconsumed_penalty" validate:"gt=0"`

	// PerPageTimeout bounds one page's solver invocation.
	PerPageTimeout time.Duration `yaml:"per_page_timeout" validate:"gt=0"`

	// BuildRetryBudget bounds how many times the engine re-solves after a
	// BuildFailed before giving up on the page.
	BuildRetryBudget int `yaml:"build_retry_budget" validate:"gte=0"`
}

// DefaultSolverConfig returns the default: the full label set through the
// solver, a few-second per-page timeout, a retry budget of 3, and an
// unconsumed-block penalty of 0.05 per block (50 once scaled to the solver's
// ×1000 integer weights), a placeholder value not tuned against real
// documents.
func DefaultSolverConfig() SolverConfig {
	return SolverConfig{
		UseSolver:         true,
		SolverLabels:      []string{allLabelsSentinel},
		UnconsumedPenalty: 0.05,
		PerPageTimeout:    5 * time.Second,
		BuildRetryBudget:  3,
	}
}

// UsesSolverFor reports whether label should go through the constraint
// solver under this configuration, rather than the greedy fallback.
func (c SolverConfig) UsesSolverFor(label string) bool {
	if !c.UseSolver {
		return false
	}
	for _, l := range c.SolverLabels {
		if l == allLabelsSentinel || l == label {
			return true
		}
	}
	return false
}

var validate = validator.New()

// Validate checks the struct tags above (e.g. a length-0 SolverLabels is
// rejected, while ALL alongside other entries is accepted). It runs no
// checks beyond those tags.
func (c SolverConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: invalid solver config: %w", err)
	}
	return nil
}

// Load reads a SolverConfig from a YAML file, filling in defaults for any
// field the document doesn't set by unmarshaling onto DefaultSolverConfig
// rather than a zero value, then validating.
func Load(path string) (SolverConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SolverConfig{}, fmt.Errorf("config: reading %s: %w", path, err)
	}

	cfg := DefaultSolverConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SolverConfig{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return SolverConfig{}, err
	}
	return cfg, nil
}
