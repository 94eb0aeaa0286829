// Package config loads spec.md §6's "Configuration (enumerated options
// recognised by the core)" from YAML, the way the teacher's
// internal/config package loads codeNERD's settings: a DefaultConfig()
// baseline, a thin yaml.v3 Load, environment overrides for the knobs an
// operator most often wants to flip without editing a file.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"mimir/internal/matchtree"
	"mimir/internal/search"
)

// SearchMode selects which applicable-action generator backs a search:
// lifted (spec.md §4.4, no precompute) or grounded (§4.6, match-tree
// precompute). Not named as its own knob in spec.md §6, but implied by
// "initialises a lifted A* (or BrFS) search" in §6's CLI description —
// grounded mode is the match-tree-index path the rest of §4.5/§4.6 wires
// up, and both modes have to be selectable from the same config surface.
type SearchMode string

const (
	ModeLifted   SearchMode = "lifted"
	ModeGrounded SearchMode = "grounded"
)

// Algorithm selects the top-level search algorithm spec.md §4.9 names.
type Algorithm string

const (
	AlgorithmBrFS Algorithm = "brfs"
	AlgorithmAStar Algorithm = "astar"
	AlgorithmIW   Algorithm = "iw"
	AlgorithmSIW  Algorithm = "siw"
)

// MatchTreeConfig mirrors internal/matchtree.Config with yaml tags, since
// that package has no ecosystem-serialization dependency of its own.
type MatchTreeConfig struct {
	SplitMetric           string `yaml:"split_metric"`
	SplitStrategy         string `yaml:"split_strategy"`
	OptimizationDirection string `yaml:"optimization_direction"`
	MaxNumNodes           int    `yaml:"max_num_nodes"`
	OutputDotFile         string `yaml:"output_dot_file,omitempty"`
}

// Resolve converts the yaml-facing MatchTreeConfig into matchtree.Config.
func (c MatchTreeConfig) Resolve() (matchtree.Config, error) {
	out := matchtree.DefaultConfig()
	switch c.SplitMetric {
	case "", "GINI":
		out.SplitMetric = matchtree.Gini
	case "FREQUENCY":
		out.SplitMetric = matchtree.Frequency
	case "INFORMATION_GAIN":
		out.SplitMetric = matchtree.InformationGain
	default:
		return out, fmt.Errorf("config: unknown split_metric %q", c.SplitMetric)
	}
	switch c.SplitStrategy {
	case "", "HYBRID":
		out.SplitStrategy = matchtree.Hybrid
	case "STATIC":
		out.SplitStrategy = matchtree.Static
	case "DYNAMIC":
		out.SplitStrategy = matchtree.Dynamic
	default:
		return out, fmt.Errorf("config: unknown split_strategy %q", c.SplitStrategy)
	}
	switch c.OptimizationDirection {
	case "", "MAX":
		out.OptimizationDirection = matchtree.Max
	case "MIN":
		out.OptimizationDirection = matchtree.Min
	default:
		return out, fmt.Errorf("config: unknown optimization_direction %q", c.OptimizationDirection)
	}
	if c.MaxNumNodes > 0 {
		out.MaxNumNodes = c.MaxNumNodes
	}
	return out, nil
}

// IWConfig mirrors internal/search.IWConfig with yaml tags.
type IWConfig struct {
	MaxArity          int `yaml:"max_arity"`
	InitialTableAtoms int `yaml:"initial_table_atoms"`
}

func (c IWConfig) Resolve() search.IWConfig {
	return search.IWConfig{MaxArity: c.MaxArity, InitialTableAtoms: c.InitialTableAtoms}
}

// LimitsConfig mirrors internal/search.LimitsConfig with yaml tags.
type LimitsConfig struct {
	MaxNumStates int   `yaml:"max_num_states"`
	MaxTimeMs    int64 `yaml:"max_time_in_ms"`
	StopIfGoal   bool  `yaml:"stop_if_goal"`
}

func (c LimitsConfig) Resolve() search.LimitsConfig {
	return search.LimitsConfig{MaxNumStates: c.MaxNumStates, MaxTimeMs: c.MaxTimeMs, StopIfGoal: c.StopIfGoal}
}

// SIWConfig inherits IWConfig plus the goal-counter strategy knob (spec.md
// §6: "SIW: inherits IW config plus {goal_counter_strategy}"). The counter
// strategy is named but not specified beyond search.ProblemGoalCounter, so
// this is the only implementation "counter" can currently select.
type SIWConfig struct {
	IWConfig           `yaml:",inline"`
	GoalCounterStrategy string `yaml:"goal_counter_strategy"`
}

// Config is the full set of options the core recognises.
type Config struct {
	Mode      SearchMode `yaml:"mode"`
	Algorithm Algorithm  `yaml:"algorithm"`

	MatchTree MatchTreeConfig `yaml:"match_tree"`
	IW        IWConfig        `yaml:"iw"`
	SIW       SIWConfig       `yaml:"siw"`
	Limits    LimitsConfig    `yaml:"limits"`

	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns spec.md §6's defaults: grounded mode with lifted
// A* as the fallback entry point, IW max_arity 6 / initial_table_atoms 64,
// an unbounded-but-stop-on-goal BrFS/A* limits block.
func DefaultConfig() *Config {
	return &Config{
		Mode:      ModeGrounded,
		Algorithm: AlgorithmAStar,
		MatchTree: MatchTreeConfig{
			SplitMetric:           "GINI",
			SplitStrategy:         "HYBRID",
			OptimizationDirection: "MAX",
			MaxNumNodes:           1_000_000,
		},
		IW: IWConfig{MaxArity: 6, InitialTableAtoms: 64},
		SIW: SIWConfig{
			IWConfig:            IWConfig{MaxArity: 6, InitialTableAtoms: 64},
			GoalCounterStrategy: "counter",
		},
		Limits: LimitsConfig{MaxNumStates: 0, MaxTimeMs: 0, StopIfGoal: true},
		LogLevel: "info",
	}
}

// Load reads path as YAML over DefaultConfig, falling back to pure
// defaults if the file does not exist — the teacher's config.Load does
// the same rather than treating a missing file as an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes c as YAML to path.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// applyEnvOverrides lets an operator flip the handful of knobs most often
// tuned per invocation without a config file, mirroring the teacher's
// applyEnvOverrides for its LLM provider/API-key settings.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("MIMIR_MAX_TIME_MS"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Limits.MaxTimeMs = n
		}
	}
	if v := os.Getenv("MIMIR_MAX_ARITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.IW.MaxArity = n
			c.SIW.MaxArity = n
		}
	}
	if v := os.Getenv("MIMIR_MODE"); v != "" {
		c.Mode = SearchMode(v)
	}
	if v := os.Getenv("MIMIR_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}
