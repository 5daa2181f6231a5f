package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/etnz/pme"
	"gopkg.in/yaml.v3"
)

// Config holds the tool settings read from the optional pme.yaml file.
// Command-line flags override it.
type Config struct {
	// Benchmark is the EODHD ticker of the benchmark index.
	Benchmark string `yaml:"benchmark"`
	// Records is the path of the fund records file.
	Records string `yaml:"records"`
	// Index is the path of the benchmark levels file.
	Index string `yaml:"index"`
	// Provider configures an alternative JSON endpoint for benchmarks EODHD
	// does not carry.
	Provider *pme.Provider `yaml:"provider,omitempty"`
}

// LoadConfig reads the settings file, or returns the defaults when there is
// none.
func LoadConfig() (Config, error) {
	cfg := Config{
		Benchmark: "GSPC.INDX",
		Records:   "records.jsonl",
		Index:     "benchmark.jsonl",
	}
	content, err := os.ReadFile(*configFile)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid settings file %q: %w", *configFile, err)
	}
	return cfg, nil
}

// override returns the flag value when set, the config value otherwise.
func override(flagValue, cfgValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return cfgValue
}
