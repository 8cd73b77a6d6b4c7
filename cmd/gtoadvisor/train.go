package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/fairdeck/gtoadvisor/internal/config"
	"github.com/fairdeck/gtoadvisor/internal/solver"
)

// TrainCmd runs CFR self-play. Interrupting with Ctrl-C stops after the
// iteration in flight; with checkpointing configured the run resumes
// from where it stopped.
type TrainCmd struct {
	Iterations int    `short:"i" help:"Iterations to run (overrides config)"`
	Seed       int64  `help:"Random seed (overrides config)"`
	Checkpoint string `help:"Checkpoint path (overrides config)"`
	Resume     bool   `help:"Resume from the checkpoint instead of starting fresh"`
}

func (c *TrainCmd) Run(cli *CLI) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "train",
	})

	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}
	if c.Seed != 0 {
		cfg.Training.Seed = c.Seed
	}
	if c.Checkpoint != "" {
		cfg.Training.CheckpointPath = c.Checkpoint
	}
	if c.Iterations > 0 {
		cfg.Training.Iterations = c.Iterations
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	solverCfg := cfg.SolverConfig()
	var trainer *solver.Trainer
	if c.Resume {
		trainer, err = solver.LoadTrainerFromCheckpoint(solverCfg.CheckpointPath)
		if err != nil {
			return err
		}
		logger.Info("resumed from checkpoint",
			"path", solverCfg.CheckpointPath,
			"iteration", trainer.Iteration(),
			"info_sets", trainer.Regrets().Size())
	} else {
		trainer, err = solver.NewTrainer(solverCfg)
		if err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("training",
		"iterations", cfg.Training.Iterations,
		"seed", solverCfg.Seed,
		"small_blind", solverCfg.Rules.SmallBlind,
		"big_blind", solverCfg.Rules.BigBlind,
		"stack", solverCfg.Rules.Stack)

	err = trainer.Run(ctx, cfg.Training.Iterations, func(p solver.Progress) {
		logger.Info("progress",
			"iteration", p.Iteration,
			"info_sets", p.InfoSets,
			"elapsed", p.Elapsed)
	})
	if errors.Is(err, context.Canceled) {
		logger.Warn("interrupted, saving state",
			"iteration", trainer.Iteration())
		if solverCfg.CheckpointPath != "" {
			if saveErr := trainer.SaveCheckpoint(solverCfg.CheckpointPath); saveErr != nil {
				return saveErr
			}
			logger.Info("checkpoint written", "path", solverCfg.CheckpointPath)
		}
		return nil
	}
	if err != nil {
		return err
	}

	logger.Info("training complete",
		"iteration", trainer.Iteration(),
		"info_sets", trainer.Regrets().Size())
	return nil
}
