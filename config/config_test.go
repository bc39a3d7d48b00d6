package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewDefaults(t *testing.T) {
	c := New()
	if c.Weight != 5.0 {
		t.Fatalf("expected default weight 5.0, got %v", c.Weight)
	}
	if c.Decay != 0.75 {
		t.Fatalf("expected default decay 0.75, got %v", c.Decay)
	}
	if c.NoveltyMaxMemoryMB != 600 {
		t.Fatalf("expected default novelty memory cap 600, got %v", c.NoveltyMaxMemoryMB)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aptk.yaml")
	body := "weight: 3.5\ndecay: 0.9\ntime_budget_seconds: 2.5\nnovelty_max_arity: 3\nnovelty_max_memory_mb: 200\nverbose: true\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Weight != 3.5 {
		t.Fatalf("expected weight 3.5, got %v", c.Weight)
	}
	if c.TimeBudget != 2500*time.Millisecond {
		t.Fatalf("expected time budget 2.5s, got %v", c.TimeBudget)
	}
	if c.NoveltyMaxArity != 3 {
		t.Fatalf("expected novelty max arity 3, got %v", c.NoveltyMaxArity)
	}
	if !c.Verbose {
		t.Fatalf("expected verbose true")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/aptk.yaml"); err == nil {
		t.Fatalf("expected an error for a missing config file")
	}
}
