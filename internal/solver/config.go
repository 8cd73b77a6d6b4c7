package solver

import (
	"errors"
	"time"

	"github.com/fairdeck/gtoadvisor/internal/game"
)

// Config aggregates the parameters that control CFR training.
type Config struct {
	// Seed drives every chance event. Each iteration derives its deck
	// from Seed and the iteration number, so resumed runs replay the
	// same deal sequence they would have seen uninterrupted.
	Seed int64

	// Rules fix the blinds, stacks and raise cap of the trained game.
	Rules game.Rules

	// MaxHistory truncates betting histories to their most recent
	// tokens when building info set keys. Zero keeps full histories;
	// the raise cap already bounds them.
	MaxHistory int

	// CheckpointPath, when set, enables interval checkpointing.
	CheckpointPath  string
	CheckpointEvery time.Duration

	// ProgressEvery controls how often the progress callback fires, in
	// iterations. Zero picks a sensible default per run.
	ProgressEvery int
}

// Validate ensures the training parameters are safe to use.
func (c Config) Validate() error {
	if c.Rules.SmallBlind <= 0 {
		return errors.New("small blind must be > 0")
	}
	if c.Rules.BigBlind <= c.Rules.SmallBlind {
		return errors.New("big blind must be greater than small blind")
	}
	if c.Rules.Stack < c.Rules.BigBlind {
		return errors.New("starting stack must cover the big blind")
	}
	if c.Rules.MaxRaises <= 0 {
		return errors.New("raise cap must be > 0")
	}
	if c.MaxHistory < 0 {
		return errors.New("max history cannot be negative")
	}
	if c.CheckpointEvery < 0 {
		return errors.New("checkpoint interval cannot be negative")
	}
	if c.ProgressEvery < 0 {
		return errors.New("progress interval cannot be negative")
	}
	return nil
}

// DefaultConfig returns a configuration for local experimentation.
func DefaultConfig() Config {
	return Config{
		Seed:            1,
		Rules:           game.DefaultRules(),
		CheckpointEvery: 5 * time.Minute,
	}
}
