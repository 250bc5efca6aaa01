package config

import "testing"

func TestDefaultSolverConfigValidates(t *testing.T) {
	cfg := DefaultSolverConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got: %v", err)
	}
}

func TestUsesSolverForAllSentinel(t *testing.T) {
	cfg := DefaultSolverConfig()
	if !cfg.UsesSolverFor("page_number") {
		t.Error("expected ALL sentinel to cover every label")
	}
}

func TestUsesSolverForExplicitLabelList(t *testing.T) {
	cfg := DefaultSolverConfig()
	cfg.SolverLabels = []string{"step", "step_number"}
	if !cfg.UsesSolverFor("step") {
		t.Error("expected explicitly listed label to use the solver")
	}
	if cfg.UsesSolverFor("page_number") {
		t.Error("expected unlisted label to fall back to greedy selection")
	}
}

func TestUsesSolverForDisabled(t *testing.T) {
	cfg := DefaultSolverConfig()
	cfg.UseSolver = false
	if cfg.UsesSolverFor("step") {
		t.Error("expected UseSolver=false to disable the solver for every label")
	}
}

func TestValidateRejectsEmptySolverLabels(t *testing.T) {
	cfg := DefaultSolverConfig()
	cfg.SolverLabels = nil
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for empty solver_labels")
	}
}

func TestValidateRejectsNonPositiveTimeout(t *testing.T) {
	cfg := DefaultSolverConfig()
	cfg.PerPageTimeout = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for zero per_page_timeout")
	}
}
