package solver

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/coder/quartz"

	"github.com/fairdeck/gtoadvisor/internal/fileutil"
)

const checkpointFileVersion = 1

type checkpointSnapshot struct {
	Version   int                       `json:"version"`
	Iteration int64                     `json:"iteration"`
	Seed      int64                     `json:"seed"`
	Config    Config                    `json:"config"`
	Regrets   map[string]regretSnapshot `json:"regrets"`
}

type regretSnapshot struct {
	RegretSum   []float64 `json:"regret_sum"`
	StrategySum []float64 `json:"strategy_sum"`
	Normalising float64   `json:"normalising"`
}

// SaveCheckpoint writes the trainer state to path. The write is atomic,
// so a reader (or a crash) never observes a half-written table.
func (t *Trainer) SaveCheckpoint(path string) error {
	snap := checkpointSnapshot{
		Version:   checkpointFileVersion,
		Iteration: t.iteration.Load(),
		Seed:      t.cfg.Seed,
		Config:    t.cfg,
		Regrets:   make(map[string]regretSnapshot),
	}
	for key, entry := range t.regrets.Entries() {
		snap.Regrets[key] = entry.snapshot()
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode checkpoint: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create checkpoint dir: %w", err)
	}
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("write checkpoint: %w", err)
	}
	return nil
}

// LoadTrainerFromCheckpoint restores a trainer from a saved checkpoint.
// The restored trainer continues the deal sequence where it left off.
func LoadTrainerFromCheckpoint(path string) (*Trainer, error) {
	return loadTrainer(path, quartz.NewReal())
}

// LoadTrainerFromCheckpointWithClock is the test seam for interval
// checkpointing on restored trainers.
func LoadTrainerFromCheckpointWithClock(path string, clock quartz.Clock) (*Trainer, error) {
	return loadTrainer(path, clock)
}

func loadTrainer(path string, clock quartz.Clock) (*Trainer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var snap checkpointSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode checkpoint: %w", err)
	}
	if snap.Version != checkpointFileVersion {
		return nil, errors.New("unsupported checkpoint version")
	}
	if err := snap.Config.Validate(); err != nil {
		return nil, fmt.Errorf("checkpoint config invalid: %w", err)
	}

	trainer, err := newTrainer(snap.Config, clock)
	if err != nil {
		return nil, err
	}
	trainer.cfg.Seed = snap.Seed
	trainer.iteration.Store(snap.Iteration)
	for key, entrySnap := range snap.Regrets {
		shard := trainer.regrets.shardFor(key)
		shard.mu.Lock()
		shard.entries[key] = newRegretEntryFromSnapshot(entrySnap)
		shard.mu.Unlock()
	}
	return trainer, nil
}
