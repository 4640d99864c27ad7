package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/bank2ledger/internal/importer"
	"github.com/cleared-dev/bank2ledger/internal/ledger"
)

// Config represents a bank2ledger.yaml file. Every field is optional; keys
// that are absent keep their Default value.
type Config struct {
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
}

// InputConfig describes the bank export.
type InputConfig struct {
	DateFormat string `yaml:"date_format"` // Go layout, e.g. "01/02/2006"
	Encoding   string `yaml:"encoding"`
	Reverse    bool   `yaml:"reverse"`
}

// OutputConfig describes the generated journal.
type OutputConfig struct {
	DateFormat     string `yaml:"date_format"`
	OffsetAccount  string `yaml:"offset_account"`
	Commodity      string `yaml:"commodity,omitempty"`
	Precision      int32  `yaml:"precision"`
	ExplicitOffset bool   `yaml:"explicit_offset"`
	AssertBalance  bool   `yaml:"assert_balance"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	opts := importer.DefaultOptions()
	f := ledger.DefaultFormat()
	return &Config{
		Input: InputConfig{
			DateFormat: opts.DateFormat,
			Encoding:   opts.Encoding,
		},
		Output: OutputConfig{
			DateFormat:    f.DateFormat,
			OffsetAccount: f.OffsetAccount,
			Precision:     f.Precision,
		},
	}
}

// Load reads a YAML config file from disk on top of Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that would otherwise only fail mid-run.
func (c *Config) Validate() error {
	if _, err := importer.LookupEncoding(c.Input.Encoding); err != nil {
		return err
	}
	if c.Output.Precision < 0 {
		return fmt.Errorf("output precision must not be negative, got %d", c.Output.Precision)
	}
	if c.Output.OffsetAccount != "" {
		if err := ledger.ValidateAccount(c.Output.OffsetAccount); err != nil {
			return fmt.Errorf("offset account: %w", err)
		}
	}
	return nil
}

// ImportOptions returns the reader settings.
func (c *Config) ImportOptions() importer.Options {
	return importer.Options{
		DateFormat: c.Input.DateFormat,
		Encoding:   c.Input.Encoding,
		Reverse:    c.Input.Reverse,
	}
}

// LedgerFormat returns the writer settings.
func (c *Config) LedgerFormat() ledger.Format {
	f := ledger.Format{
		DateFormat:     c.Output.DateFormat,
		OffsetAccount:  c.Output.OffsetAccount,
		Commodity:      c.Output.Commodity,
		Precision:      c.Output.Precision,
		ExplicitOffset: c.Output.ExplicitOffset,
		AssertBalance:  c.Output.AssertBalance,
	}
	if f.DateFormat == "" {
		f.DateFormat = ledger.DefaultDateFormat
	}
	return f
}
