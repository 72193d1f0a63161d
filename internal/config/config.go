package config

import (
	"fmt"
	"runtime"
	"time"

	"github.com/spf13/viper"
)

// Config is the tool-wide configuration, loadable from a YAML file, the
// environment (DRIFTSCAN_ prefix) and flags.
type Config struct {
	Extract ExtractConfig `mapstructure:"extract"`
	Diff    DiffConfig    `mapstructure:"diff"`
	Cost    CostConfig    `mapstructure:"cost"`
	Output  OutputConfig  `mapstructure:"output"`
	Workers WorkersConfig `mapstructure:"workers"`
}

// ExtractConfig controls document extraction.
type ExtractConfig struct {
	// Strict aborts extraction on descriptors whose address cannot be
	// computed. Lenient mode collects them separately instead.
	Strict bool `mapstructure:"strict"`
}

// DiffConfig controls the structural diff of snapshot comparisons.
type DiffConfig struct {
	// OrderSensitive reports sequence mismatches index-by-index instead of
	// as a multiset. Plan comparisons are always order-sensitive.
	OrderSensitive bool `mapstructure:"order_sensitive"`
}

// CostConfig controls the external cost provider.
type CostConfig struct {
	Binary  string        `mapstructure:"binary"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Format  string `mapstructure:"format"`
	NoColor bool   `mapstructure:"no_color"`
}

// WorkersConfig controls parallel classification.
type WorkersConfig struct {
	// Count of 0 means one worker per CPU.
	Count int `mapstructure:"count"`
	// Threshold is the address count above which classification fans out.
	Threshold int `mapstructure:"threshold"`
}

// WorkerCount resolves the configured count, defaulting to the host CPUs.
func (w WorkersConfig) WorkerCount() int {
	if w.Count > 0 {
		return w.Count
	}
	return runtime.NumCPU()
}

// Load reads configuration from the given file, or from the default search
// paths when path is empty. A missing config file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("DRIFTSCAN")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("driftscan")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.driftscan")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// no config file found, defaults apply
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("extract.strict", true)
	v.SetDefault("diff.order_sensitive", false)
	v.SetDefault("cost.binary", "infracost")
	v.SetDefault("cost.timeout", 2*time.Minute)
	v.SetDefault("output.format", "summary")
	v.SetDefault("output.no_color", false)
	v.SetDefault("workers.count", 0)
	v.SetDefault("workers.threshold", 200)
}
