// Package config loads the advisor's HCL configuration file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/fairdeck/gtoadvisor/internal/game"
	"github.com/fairdeck/gtoadvisor/internal/solver"
)

// Config represents the complete application configuration.
type Config struct {
	Training    TrainingSettings    `hcl:"training,block"`
	Abstraction AbstractionSettings `hcl:"abstraction,block"`
	Advisor     AdvisorSettings     `hcl:"advisor,block"`
}

// TrainingSettings controls the CFR trainer.
type TrainingSettings struct {
	Iterations         int    `hcl:"iterations,optional"`
	Seed               int64  `hcl:"seed,optional"`
	SmallBlind         int    `hcl:"small_blind,optional"`
	BigBlind           int    `hcl:"big_blind,optional"`
	StartingStack      int    `hcl:"starting_stack,optional"`
	CheckpointPath     string `hcl:"checkpoint_path,optional"`
	CheckpointMinutes  int    `hcl:"checkpoint_minutes,optional"`
	ProgressIterations int    `hcl:"progress_iterations,optional"`
}

// AbstractionSettings controls how states collapse into info sets.
type AbstractionSettings struct {
	MaxRaisesPerStreet int `hcl:"max_raises_per_street,optional"`
	MaxHistoryTokens   int `hcl:"max_history_tokens,optional"`
}

// AdvisorSettings controls live advice queries.
type AdvisorSettings struct {
	EquitySamples int `hcl:"equity_samples,optional"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Training: TrainingSettings{
			Iterations:        10_000,
			Seed:              1,
			SmallBlind:        5,
			BigBlind:          10,
			StartingStack:     1000,
			CheckpointPath:    "gtoadvisor-checkpoint.json",
			CheckpointMinutes: 5,
		},
		Abstraction: AbstractionSettings{
			MaxRaisesPerStreet: 2,
		},
		Advisor: AdvisorSettings{
			EquitySamples: 10_000,
		},
	}
}

// Load reads an HCL config file. A missing file yields the defaults;
// fields absent from the file fall back to their defaults too.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	def := Default()
	if cfg.Training.Iterations == 0 {
		cfg.Training.Iterations = def.Training.Iterations
	}
	if cfg.Training.Seed == 0 {
		cfg.Training.Seed = def.Training.Seed
	}
	if cfg.Training.SmallBlind == 0 {
		cfg.Training.SmallBlind = def.Training.SmallBlind
	}
	if cfg.Training.BigBlind == 0 {
		cfg.Training.BigBlind = def.Training.BigBlind
	}
	if cfg.Training.StartingStack == 0 {
		cfg.Training.StartingStack = def.Training.StartingStack
	}
	if cfg.Training.CheckpointPath == "" {
		cfg.Training.CheckpointPath = def.Training.CheckpointPath
	}
	if cfg.Training.CheckpointMinutes == 0 {
		cfg.Training.CheckpointMinutes = def.Training.CheckpointMinutes
	}
	if cfg.Abstraction.MaxRaisesPerStreet == 0 {
		cfg.Abstraction.MaxRaisesPerStreet = def.Abstraction.MaxRaisesPerStreet
	}
	if cfg.Advisor.EquitySamples == 0 {
		cfg.Advisor.EquitySamples = def.Advisor.EquitySamples
	}

	return &cfg, nil
}

// Validate checks the configuration for contradictions.
func (c *Config) Validate() error {
	if c.Training.Iterations <= 0 {
		return fmt.Errorf("training iterations must be positive, got %d", c.Training.Iterations)
	}
	if c.Training.SmallBlind <= 0 {
		return fmt.Errorf("small blind must be positive, got %d", c.Training.SmallBlind)
	}
	if c.Training.BigBlind <= c.Training.SmallBlind {
		return fmt.Errorf("big blind %d must be greater than small blind %d", c.Training.BigBlind, c.Training.SmallBlind)
	}
	if c.Training.StartingStack < c.Training.BigBlind {
		return fmt.Errorf("starting stack %d cannot cover the big blind %d", c.Training.StartingStack, c.Training.BigBlind)
	}
	if c.Abstraction.MaxRaisesPerStreet <= 0 {
		return fmt.Errorf("max raises per street must be positive, got %d", c.Abstraction.MaxRaisesPerStreet)
	}
	if c.Abstraction.MaxHistoryTokens < 0 {
		return fmt.Errorf("max history tokens cannot be negative, got %d", c.Abstraction.MaxHistoryTokens)
	}
	if c.Advisor.EquitySamples <= 0 {
		return fmt.Errorf("equity samples must be positive, got %d", c.Advisor.EquitySamples)
	}
	return nil
}

// SolverConfig translates the file settings into the trainer's config.
func (c *Config) SolverConfig() solver.Config {
	return solver.Config{
		Seed: c.Training.Seed,
		Rules: game.Rules{
			SmallBlind: c.Training.SmallBlind,
			BigBlind:   c.Training.BigBlind,
			Stack:      c.Training.StartingStack,
			MaxRaises:  c.Abstraction.MaxRaisesPerStreet,
		},
		MaxHistory:      c.Abstraction.MaxHistoryTokens,
		CheckpointPath:  c.Training.CheckpointPath,
		CheckpointEvery: time.Duration(c.Training.CheckpointMinutes) * time.Minute,
		ProgressEvery:   c.Training.ProgressIterations,
	}
}
