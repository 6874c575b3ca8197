// Package config provides configuration loading and access for the solver.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/knapsack/fitness"
	"github.com/pthm-cable/knapsack/ga"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all run configuration parameters.
type Config struct {
	Run       RunConfig       `yaml:"run"`
	Knapsack  KnapsackConfig  `yaml:"knapsack"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// RunConfig holds generational loop parameters.
type RunConfig struct {
	Cycles         int   `yaml:"cycles"`
	PopulationSize int   `yaml:"population_size"`
	Seed           int64 `yaml:"seed"` // 0 = time-based
}

// KnapsackConfig holds the problem definition.
type KnapsackConfig struct {
	WeightCap float64        `yaml:"weight_cap"`
	Items     []fitness.Item `yaml:"items"` // Indexed by genome bit
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	LogEvery       int `yaml:"log_every"`
	HallOfFameSize int `yaml:"hall_of_fame_size"`
}

// DerivedConfig holds values built from the loaded config.
type DerivedConfig struct {
	Params ga.Params         // Run section as loop parameters
	Table  fitness.CostTable // Knapsack items as an immutable table
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Defaults returns the embedded default configuration.
func Defaults() (*Config, error) {
	return Load("")
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	var data []byte
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}
	return Parse(data)
}

// Parse merges YAML data over the embedded defaults and validates the result.
// Keys missing from data keep their default values.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if len(data) > 0 {
		// Unmarshal into same struct - only overwrites fields present in data
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks the loaded values without touching Derived.
func (c *Config) Validate() error {
	_, err := c.validate()
	return err
}

// validate checks every section and returns the cost table built while
// checking the knapsack items.
func (c *Config) validate() (fitness.CostTable, error) {
	if err := c.params().Validate(); err != nil {
		return fitness.CostTable{}, fmt.Errorf("run: %w", err)
	}
	if c.Knapsack.WeightCap <= 0 {
		return fitness.CostTable{}, fmt.Errorf("knapsack: weight_cap %v must be positive", c.Knapsack.WeightCap)
	}
	table, err := fitness.NewCostTable(c.Knapsack.Items)
	if err != nil {
		return fitness.CostTable{}, fmt.Errorf("knapsack: %w", err)
	}
	if c.Telemetry.LogEvery < 0 {
		return fitness.CostTable{}, fmt.Errorf("telemetry: log_every %d must not be negative", c.Telemetry.LogEvery)
	}
	if c.Telemetry.HallOfFameSize < 0 {
		return fitness.CostTable{}, fmt.Errorf("telemetry: hall_of_fame_size %d must not be negative", c.Telemetry.HallOfFameSize)
	}
	return table, nil
}

func (c *Config) params() ga.Params {
	return ga.Params{
		Cycles:         c.Run.Cycles,
		PopulationSize: c.Run.PopulationSize,
	}
}

// computeDerived validates the config and builds derived values.
func (c *Config) computeDerived() error {
	table, err := c.validate()
	if err != nil {
		return err
	}
	c.Derived.Params = c.params()
	c.Derived.Table = table
	return nil
}

// Evaluator returns a fitness evaluator for the configured knapsack.
func (c *Config) Evaluator() *fitness.Evaluator {
	return fitness.NewEvaluator(c.Derived.Table, c.Knapsack.WeightCap)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
