// Package config loads the coach configuration from an HCL file, falling
// back to defaults when the file is absent.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the complete coach configuration
type Config struct {
	Simulation SimulationConfig `hcl:"simulation,block"`
	Bankroll   BankrollConfig   `hcl:"bankroll,block"`
	Advice     AdviceConfig     `hcl:"advice,block"`
}

// SimulationConfig contains equity simulation defaults
type SimulationConfig struct {
	Iterations int   `hcl:"iterations,optional"`
	Opponents  int   `hcl:"opponents,optional"`
	Workers    int   `hcl:"workers,optional"`
	Seed       int64 `hcl:"seed,optional"`
}

// BankrollConfig contains ledger settings
type BankrollConfig struct {
	Start      float64 `hcl:"start,optional"`
	LedgerPath string  `hcl:"ledger_path,optional"`
}

// AdviceConfig selects and tunes the advice generator
type AdviceConfig struct {
	Provider  string `hcl:"provider,optional"` // "bedrock" or "rules"
	Model     string `hcl:"model,optional"`
	Region    string `hcl:"region,optional"`
	MaxTokens int    `hcl:"max_tokens,optional"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Simulation: SimulationConfig{
			Iterations: 10000,
			Opponents:  1,
			Workers:    1,
		},
		Bankroll: BankrollConfig{
			Start:      1000,
			LedgerPath: "pokercoach-ledger.json",
		},
		Advice: AdviceConfig{
			Provider:  "rules",
			Model:     "anthropic.claude-instant-v1",
			MaxTokens: 400,
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	// Pointer blocks so a file may declare any subset of them.
	var raw struct {
		Simulation *SimulationConfig `hcl:"simulation,block"`
		Bankroll   *BankrollConfig   `hcl:"bankroll,block"`
		Advice     *AdviceConfig     `hcl:"advice,block"`
	}
	diags = gohcl.DecodeBody(file.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	var cfg Config
	if raw.Simulation != nil {
		cfg.Simulation = *raw.Simulation
	}
	if raw.Bankroll != nil {
		cfg.Bankroll = *raw.Bankroll
	}
	if raw.Advice != nil {
		cfg.Advice = *raw.Advice
	}

	// Overlay defaults for anything unset.
	defaults := Default()
	if cfg.Simulation.Iterations == 0 {
		cfg.Simulation.Iterations = defaults.Simulation.Iterations
	}
	if cfg.Simulation.Opponents == 0 {
		cfg.Simulation.Opponents = defaults.Simulation.Opponents
	}
	if cfg.Simulation.Workers == 0 {
		cfg.Simulation.Workers = defaults.Simulation.Workers
	}
	if cfg.Bankroll.Start == 0 {
		cfg.Bankroll.Start = defaults.Bankroll.Start
	}
	if cfg.Bankroll.LedgerPath == "" {
		cfg.Bankroll.LedgerPath = defaults.Bankroll.LedgerPath
	}
	if cfg.Advice.Provider == "" {
		cfg.Advice.Provider = defaults.Advice.Provider
	}
	if cfg.Advice.Model == "" {
		cfg.Advice.Model = defaults.Advice.Model
	}
	if cfg.Advice.MaxTokens == 0 {
		cfg.Advice.MaxTokens = defaults.Advice.MaxTokens
	}
	return &cfg, nil
}
