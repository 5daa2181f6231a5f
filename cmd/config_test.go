package cmd

import (
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	// No settings file: the defaults apply.
	missing := "no-such-pme.yaml"
	oldConfigFile := configFile
	configFile = &missing
	defer func() { configFile = oldConfigFile }()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Benchmark != "GSPC.INDX" {
		t.Errorf("Benchmark = %q, want GSPC.INDX", cfg.Benchmark)
	}
	if cfg.Records != "records.jsonl" {
		t.Errorf("Records = %q, want records.jsonl", cfg.Records)
	}
	if cfg.Index != "benchmark.jsonl" {
		t.Errorf("Index = %q, want benchmark.jsonl", cfg.Index)
	}
	if cfg.Provider != nil {
		t.Errorf("Provider = %v, want nil", cfg.Provider)
	}
}

func TestLoadConfig_File(t *testing.T) {
	path := writeTempFile(t, "pme.yaml", `benchmark: STOXX50E.INDX
records: funds.jsonl
provider:
  url: https://example.com/levels?from={from}&to={to}
  dates: $.data[*].date
  levels: $.data[*].close
`)
	oldConfigFile := configFile
	configFile = &path
	defer func() { configFile = oldConfigFile }()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Benchmark != "STOXX50E.INDX" {
		t.Errorf("Benchmark = %q, want STOXX50E.INDX", cfg.Benchmark)
	}
	if cfg.Records != "funds.jsonl" {
		t.Errorf("Records = %q, want funds.jsonl", cfg.Records)
	}
	// Unset keys keep their defaults.
	if cfg.Index != "benchmark.jsonl" {
		t.Errorf("Index = %q, want benchmark.jsonl", cfg.Index)
	}
	if cfg.Provider == nil || cfg.Provider.Dates != "$.data[*].date" {
		t.Errorf("Provider = %+v, want the configured endpoint", cfg.Provider)
	}

	bad := writeTempFile(t, "pme.yaml", "benchmark: [")
	configFile = &bad
	if _, err := LoadConfig(); err == nil {
		t.Errorf("LoadConfig() expected an error on invalid yaml")
	}
}

func TestOverride(t *testing.T) {
	if got := override("flag", "cfg"); got != "flag" {
		t.Errorf("override(flag, cfg) = %q, want flag", got)
	}
	if got := override("", "cfg"); got != "cfg" {
		t.Errorf("override(\"\", cfg) = %q, want cfg", got)
	}
}
