// Package config holds the tuning knobs for a search run: engine weight
// and decay, the wall-clock time budget, the novelty heuristic's memory
// cap, and the ambient logger every other package is handed. Mirrors the
// teacher's config package (a single flat struct plus a constructor) and
// its loading pattern, expanded with a YAML loader for deployments that
// don't want to wire these up via Go struct literals.
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config tunes a search engine run. New returns sensible defaults; a
// hand-built struct literal should set every field it relies on.
type Config struct {
	Logger *log.Logger

	// Weight is the dual-queue engine's initial W; 1.0 degenerates to
	// unweighted A*.
	Weight float64

	// Decay is the per-solution multiplicative decay applied to Weight,
	// floored at 1.0.
	Decay float64

	// TimeBudget bounds wall-clock search time; zero means unbounded.
	TimeBudget time.Duration

	// NoveltyMaxArity is the width heuristic's requested max tuple size
	// before any memory-budget downgrade.
	NoveltyMaxArity int

	// NoveltyMaxMemoryMB bounds the novelty heuristic's per-arity table
	// size; see heuristic.DefaultNoveltyMemoryMB for the original's
	// default.
	NoveltyMaxMemoryMB int

	Verbose bool
}

// New returns a Config with the original toolkit's defaults: W=5.0,
// decay=0.75, novelty arity 2 bounded at 600MB, no time budget.
func New() *Config {
	return &Config{
		Logger:             log.New(os.Stdout, "", log.Ldate|log.Ltime),
		Weight:             5.0,
		Decay:              0.75,
		NoveltyMaxArity:    2,
		NoveltyMaxMemoryMB: 600,
	}
}

// yamlConfig mirrors Config's tunable fields for unmarshaling; Logger is
// never sourced from YAML.
type yamlConfig struct {
	Weight             float64 `yaml:"weight"`
	Decay              float64 `yaml:"decay"`
	TimeBudgetSeconds  float64 `yaml:"time_budget_seconds"`
	NoveltyMaxArity    int     `yaml:"novelty_max_arity"`
	NoveltyMaxMemoryMB int     `yaml:"novelty_max_memory_mb"`
	Verbose            bool    `yaml:"verbose"`
}

// Load reads a YAML config file at path, starting from New's defaults for
// any field the file omits.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	c := New()
	y := yamlConfig{
		Weight:             c.Weight,
		Decay:              c.Decay,
		NoveltyMaxArity:    c.NoveltyMaxArity,
		NoveltyMaxMemoryMB: c.NoveltyMaxMemoryMB,
	}
	if err := yaml.Unmarshal(data, &y); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	c.Weight = y.Weight
	c.Decay = y.Decay
	c.TimeBudget = time.Duration(y.TimeBudgetSeconds * float64(time.Second))
	c.NoveltyMaxArity = y.NoveltyMaxArity
	c.NoveltyMaxMemoryMB = y.NoveltyMaxMemoryMB
	c.Verbose = y.Verbose
	return c, nil
}
