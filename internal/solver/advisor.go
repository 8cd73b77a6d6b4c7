package solver

import (
	rand "math/rand/v2"

	"github.com/fairdeck/gtoadvisor/internal/equity"
	"github.com/fairdeck/gtoadvisor/internal/game"
	"github.com/fairdeck/gtoadvisor/poker"
)

// Advisor answers live strategy queries against a regret table. It
// only reads: querying a situation the table has never seen returns a
// uniform distribution rather than creating an entry.
type Advisor struct {
	table  *RegretTable
	bucket *BucketMapper
}

// NewAdvisor builds an advisor over the given table, typically a
// trainer's live table or one restored from a checkpoint.
func NewAdvisor(table *RegretTable, maxHistory int) *Advisor {
	return &Advisor{table: table, bucket: NewBucketMapper(maxHistory)}
}

// KeyFor maps a live hand state to the info set key training used.
func (a *Advisor) KeyFor(h *game.HandState, player int) InfoSetKey {
	return a.bucket.Key(h, player)
}

// GetStrategy returns the trained average strategy for the key over n
// actions, or uniform when the key is unknown. An untrained situation
// has no evidence favouring any action, so no action is ruled out.
func (a *Advisor) GetStrategy(key InfoSetKey, n int) []float64 {
	entry, ok := a.table.Lookup(key)
	if !ok {
		return uniform(n)
	}
	strat := entry.AverageStrategy()
	if len(strat) == n {
		return strat
	}
	if len(strat) > n {
		return renormalize(strat[:n])
	}
	return uniform(n)
}

func uniform(n int) []float64 {
	strat := make([]float64, n)
	v := 1.0 / float64(n)
	for i := range strat {
		strat[i] = v
	}
	return strat
}

// AdviceRequest describes one live decision point.
type AdviceRequest struct {
	Key     InfoSetKey
	Hole    [2]poker.Card
	Board   []poker.Card
	Actions []game.Action // legal actions, in game order
	Pot     int
	ToCall  int
	Stack   int
	Samples int
	Rng     *rand.Rand // nil for the parallel time-seeded path
}

// AdviceResult is the advisor's full answer for one decision.
type AdviceResult struct {
	Equity       float64
	EVPerAction  map[game.Action]float64
	Distribution map[game.Action]float64
	Recommended  game.Action
}

// GetAdvice estimates equity against a random opponent range, scores
// each legal action by expected value, and pairs that with the trained
// strategy distribution. The recommendation is the EV-maximising
// action; on ties the cheaper action wins, since paying more for the
// same expectation only adds variance.
func (a *Advisor) GetAdvice(req AdviceRequest) AdviceResult {
	if len(req.Actions) == 0 {
		return AdviceResult{}
	}
	eq := equity.Estimate(req.Hole[:], req.Board, equity.RandomRange{}, req.Samples, req.Rng)

	evs := make(map[game.Action]float64, len(req.Actions))
	best := req.Actions[0]
	bestEV, bestCost := 0.0, 0
	for i, action := range req.Actions {
		cost := actionCost(action, req)
		ev := actionEV(action, eq, req.Pot, cost)
		evs[action] = ev
		if i == 0 || ev > bestEV || (ev == bestEV && cost < bestCost) {
			best, bestEV, bestCost = action, ev, cost
		}
	}

	strat := a.GetStrategy(req.Key, len(req.Actions))
	dist := make(map[game.Action]float64, len(req.Actions))
	for i, action := range req.Actions {
		dist[action] = strat[i]
	}

	return AdviceResult{
		Equity:       eq,
		EVPerAction:  evs,
		Distribution: dist,
		Recommended:  best,
	}
}

// actionCost is the chips the action puts in beyond what is already
// committed.
func actionCost(action game.Action, req AdviceRequest) int {
	switch action {
	case game.ActionCall:
		return req.ToCall
	case game.ActionRaiseSmall:
		return req.ToCall + req.Pot/2
	case game.ActionRaiseBig:
		return req.ToCall + req.Pot
	case game.ActionAllIn:
		return req.Stack
	default:
		return 0
	}
}

// actionEV scores an action as win probability times the current pot
// minus the chips risked. Aggressive actions get a small win bump for
// the times the opponent folds; the ladder is deliberately coarse, the
// trained distribution carries the nuance.
func actionEV(action game.Action, eq float64, pot, cost int) float64 {
	win := eq
	switch action {
	case game.ActionFold:
		return 0
	case game.ActionRaiseSmall:
		win += 0.05
	case game.ActionRaiseBig:
		win += 0.10
	case game.ActionAllIn:
		win += 0.15
	}
	if win > 1 {
		win = 1
	}
	return win*float64(pot) - float64(cost)
}
