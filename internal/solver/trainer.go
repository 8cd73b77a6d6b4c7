package solver

import (
	"context"
	"fmt"
	rand "math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/coder/quartz"

	"github.com/fairdeck/gtoadvisor/internal/game"
	"github.com/fairdeck/gtoadvisor/internal/randutil"
	"github.com/fairdeck/gtoadvisor/poker"
)

// Progress is emitted periodically during a training run.
type Progress struct {
	Iteration int
	InfoSets  int
	Elapsed   time.Duration
}

// Trainer runs counterfactual regret minimisation self-play over the
// simplified heads-up game. One iteration deals a random hand and
// traverses the full betting tree once per player, accumulating regret
// and strategy sums. Training is resumable: iterations performed across
// separate Run calls add up to the same table a single longer run would
// produce.
type Trainer struct {
	cfg       Config
	bucket    *BucketMapper
	regrets   *RegretTable
	iteration atomic.Int64
	clock     quartz.Clock
}

// NewTrainer constructs a trainer from a validated config.
func NewTrainer(cfg Config) (*Trainer, error) {
	return newTrainer(cfg, quartz.NewReal())
}

// NewTrainerWithClock is NewTrainer with an injectable clock so tests
// can drive checkpoint intervals without sleeping.
func NewTrainerWithClock(cfg Config, clock quartz.Clock) (*Trainer, error) {
	return newTrainer(cfg, clock)
}

func newTrainer(cfg Config, clock quartz.Clock) (*Trainer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return &Trainer{
		cfg:     cfg,
		bucket:  NewBucketMapper(cfg.MaxHistory),
		regrets: NewRegretTable(),
		clock:   clock,
	}, nil
}

// Iteration returns how many iterations have completed so far, across
// all Run calls and any restored checkpoint.
func (t *Trainer) Iteration() int64 {
	return t.iteration.Load()
}

// Regrets exposes the live table. The advisor shares it so advice
// reflects training as it progresses.
func (t *Trainer) Regrets() *RegretTable {
	return t.regrets
}

// Config returns the trainer's configuration.
func (t *Trainer) Config() Config {
	return t.cfg
}

// Run executes n further CFR iterations. Cancelling the context stops
// cleanly after the iteration in flight; completed work is kept (and
// checkpointed, when configured) so the run can be resumed.
func (t *Trainer) Run(ctx context.Context, n int, progress func(Progress)) error {
	if n <= 0 {
		return fmt.Errorf("solver: iteration count must be > 0, got %d", n)
	}
	batch := t.cfg.ProgressEvery
	if batch <= 0 {
		batch = n / 100
		if batch == 0 {
			batch = 1
		}
	}

	start := t.clock.Now()
	lastCheckpoint := start
	checkpointing := t.cfg.CheckpointPath != "" && t.cfg.CheckpointEvery > 0

	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		iter := t.iteration.Add(1)
		if err := t.singleIteration(iter); err != nil {
			return err
		}

		if checkpointing && t.clock.Since(lastCheckpoint) >= t.cfg.CheckpointEvery {
			if err := t.SaveCheckpoint(t.cfg.CheckpointPath); err != nil {
				return err
			}
			lastCheckpoint = t.clock.Now()
		}

		if progress != nil && (i+1)%batch == 0 {
			progress(Progress{
				Iteration: int(iter),
				InfoSets:  t.regrets.Size(),
				Elapsed:   t.clock.Since(start),
			})
		}
	}

	if checkpointing {
		if err := t.SaveCheckpoint(t.cfg.CheckpointPath); err != nil {
			return err
		}
	}
	return nil
}

// singleIteration deals one random hand and traverses it from each
// player's perspective. The deck derives from the seed and the global
// iteration number, so a resumed run sees the deals an uninterrupted
// run would have.
func (t *Trainer) singleIteration(iter int64) error {
	rng := randutil.New(t.cfg.Seed + iter)
	order := shuffledOrder(rng)

	for target := 0; target < 2; target++ {
		deck, err := poker.NewDeck(order)
		if err != nil {
			return err
		}
		h, err := game.NewHandState(deck, t.cfg.Rules)
		if err != nil {
			return err
		}
		if _, err := t.traverse(h, target, 1.0, 1.0); err != nil {
			return err
		}
	}
	return nil
}

// traverse walks the betting tree below h and returns the expected
// utility for the target player. Chance (the deal) was sampled once
// per iteration; both players' decision nodes are expanded in full.
// reachMine is the target's own reach probability, reachOther the
// opponent's; regrets are weighted by the opponent's reach and strategy
// sums by the player's own, per standard CFR.
func (t *Trainer) traverse(h *game.HandState, target int, reachMine, reachOther float64) (float64, error) {
	if h.IsComplete() {
		return h.Utility(target), nil
	}

	player := h.ActivePlayer()
	legal := h.LegalActions()
	key := t.bucket.Key(h, player)
	entry := t.regrets.Get(key, len(legal))
	strategy := entry.Strategy()
	if len(strategy) > len(legal) {
		// Key collision under history trimming merged nodes with
		// different action counts; renormalise over what is legal here.
		strategy = renormalize(strategy[:len(legal)])
	}

	utils := make([]float64, len(legal))
	nodeUtil := 0.0
	for i, action := range legal {
		child := h.Clone()
		if err := child.Apply(action); err != nil {
			return 0, fmt.Errorf("solver: traversal applied %s at %s: %w", action, key, err)
		}

		var err error
		if player == target {
			utils[i], err = t.traverse(child, target, reachMine*strategy[i], reachOther)
		} else {
			utils[i], err = t.traverse(child, target, reachMine, reachOther*strategy[i])
		}
		if err != nil {
			return 0, err
		}
		nodeUtil += strategy[i] * utils[i]
	}

	if player == target {
		regrets := make([]float64, len(legal))
		for i := range legal {
			regrets[i] = (utils[i] - nodeUtil) * reachOther
		}
		entry.Update(regrets, strategy, reachMine)
	}
	return nodeUtil, nil
}

func renormalize(strat []float64) []float64 {
	total := 0.0
	for _, v := range strat {
		total += v
	}
	if total <= 0 {
		v := 1.0 / float64(len(strat))
		for i := range strat {
			strat[i] = v
		}
		return strat
	}
	for i := range strat {
		strat[i] /= total
	}
	return strat
}

// shuffledOrder produces a full random deck order for one chance
// sample.
func shuffledOrder(rng *rand.Rand) []poker.Card {
	order := poker.AllCards()
	rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	return order
}
