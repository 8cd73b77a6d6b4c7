package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadOverridesAndBackfills(t *testing.T) {
	path := filepath.Join(t.TempDir(), "advisor.hcl")
	content := `
training {
  iterations     = 500
  seed           = 99
  small_blind    = 1
  big_blind      = 2
  starting_stack = 200
}

abstraction {
  max_raises_per_street = 1
  max_history_tokens    = 16
}

advisor {
  equity_samples = 2000
}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 500, cfg.Training.Iterations)
	assert.Equal(t, int64(99), cfg.Training.Seed)
	assert.Equal(t, 1, cfg.Training.SmallBlind)
	assert.Equal(t, 2000, cfg.Advisor.EquitySamples)
	// Unset fields fall back to defaults.
	assert.Equal(t, Default().Training.CheckpointPath, cfg.Training.CheckpointPath)
	assert.Equal(t, Default().Training.CheckpointMinutes, cfg.Training.CheckpointMinutes)
}

func TestLoadRejectsMalformedHCL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.hcl")
	require.NoError(t, os.WriteFile(path, []byte("training {"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidateCatchesContradictions(t *testing.T) {
	cfg := Default()
	cfg.Training.BigBlind = cfg.Training.SmallBlind
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Training.StartingStack = 1
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Advisor.EquitySamples = 0
	// Load would backfill this, but a hand-built config must not pass.
	assert.Error(t, cfg.Validate())
}

func TestSolverConfigTranslation(t *testing.T) {
	cfg := Default()
	sc := cfg.SolverConfig()

	assert.Equal(t, cfg.Training.Seed, sc.Seed)
	assert.Equal(t, cfg.Training.SmallBlind, sc.Rules.SmallBlind)
	assert.Equal(t, cfg.Training.BigBlind, sc.Rules.BigBlind)
	assert.Equal(t, cfg.Training.StartingStack, sc.Rules.Stack)
	assert.Equal(t, cfg.Abstraction.MaxRaisesPerStreet, sc.Rules.MaxRaises)
	assert.Equal(t, 5*time.Minute, sc.CheckpointEvery)
	assert.NoError(t, sc.Validate())
}
