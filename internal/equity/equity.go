// Package equity estimates win probability for a hole-card pair against
// an opponent range, by exact enumeration when the unknowns are few and
// Monte Carlo sampling otherwise. Ties count as fractional wins.
package equity

import (
	rand "math/rand/v2"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fairdeck/gtoadvisor/internal/randutil"
	"github.com/fairdeck/gtoadvisor/poker"
)

// parallelThreshold is the sample count above which the unseeded path
// fans out across workers.
const parallelThreshold = 2000

// enumerationBudget caps combos x runouts for the exact path.
const enumerationBudget = 200_000

type tally struct {
	wins  float64
	valid int
}

// Estimate returns the hero's equity in [0, 1]. A non-nil rng gives a
// fully deterministic estimate for reproducible tests; with a nil rng
// the work is split across CPUs with time-derived seeds.
//
// Degenerate inputs recover locally rather than failing: malformed
// hole/board sizes yield 0, and a range with no live combos yields 1
// (an opponent with no possible holding cannot win the pot).
func Estimate(hole []poker.Card, board []poker.Card, opponent Range, samples int, rng *rand.Rand) float64 {
	if len(hole) != 2 || len(board) > 5 || samples <= 0 {
		return 0
	}

	known := poker.NewHand(hole...)
	for _, c := range board {
		known.AddCard(c)
	}
	available := availableCards(known)

	if enum, ok := opponent.(Enumerable); ok {
		if eq, done := enumerate(hole, board, enum, available); done {
			return eq
		}
	}

	if rng != nil || samples < parallelThreshold {
		if rng == nil {
			rng = randutil.New(time.Now().UnixNano())
		}
		t := simulate(hole, board, opponent, available, samples, rng)
		return finish(t)
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > samples/500 {
		workers = samples / 500
	}
	if workers < 1 {
		workers = 1
	}

	results := make([]tally, workers)
	var g errgroup.Group
	base := time.Now().UnixNano()
	per := samples / workers
	for w := 0; w < workers; w++ {
		n := per
		if w == workers-1 {
			n = samples - per*(workers-1)
		}
		seed := base + int64(w)*0x9e3779b9
		slot := w
		g.Go(func() error {
			results[slot] = simulate(hole, board, opponent, available, n, randutil.New(seed))
			return nil
		})
	}
	// Workers only write their own slot and never return errors.
	_ = g.Wait()

	var total tally
	for _, r := range results {
		total.wins += r.wins
		total.valid += r.valid
	}
	return finish(total)
}

func finish(t tally) float64 {
	if t.valid == 0 {
		// Nothing the opponent range could hold: hero wins by default.
		return 1
	}
	return t.wins / float64(t.valid)
}

func availableCards(known poker.Hand) []poker.Card {
	out := make([]poker.Card, 0, poker.DeckSize)
	for _, c := range poker.AllCards() {
		if !known.HasCard(c) {
			out = append(out, c)
		}
	}
	return out
}

// simulate runs the Monte Carlo loop: draw an opponent combo, complete
// the board from what remains, score both 7-card hands.
func simulate(hole, board []poker.Card, opponent Range, available []poker.Card, samples int, rng *rand.Rand) tally {
	var t tally
	heroBase := poker.NewHand(hole...)
	needed := 5 - len(board)

	scratch := make([]poker.Card, len(available))
	for i := 0; i < samples; i++ {
		oppHole, ok := opponent.SampleHand(available, rng)
		if !ok {
			continue
		}

		// Partial Fisher-Yates over the cards the opponent didn't take.
		n := 0
		for _, c := range available {
			if c != oppHole[0] && c != oppHole[1] {
				scratch[n] = c
				n++
			}
		}
		if n < needed {
			continue
		}
		runout := scratch[:n]
		for k := 0; k < needed; k++ {
			j := k + rng.IntN(n-k)
			runout[k], runout[j] = runout[j], runout[k]
		}

		boardHand := poker.NewHand(board...)
		for k := 0; k < needed; k++ {
			boardHand.AddCard(runout[k])
		}

		hero := poker.Evaluate7(heroBase | boardHand)
		opp := poker.Evaluate7(poker.NewHand(oppHole[0], oppHole[1]) | boardHand)

		t.valid++
		switch poker.CompareHands(hero, opp) {
		case 1:
			t.wins++
		case 0:
			t.wins += 0.5
		}
	}
	return t
}

// enumerate walks every live combo and every runout when that fits the
// budget. Returns done=false when sampling should be used instead.
func enumerate(hole, board []poker.Card, opponent Enumerable, available []poker.Card) (float64, bool) {
	combos := opponent.Combos(available)
	if len(combos) == 0 {
		return 1, true
	}

	needed := 5 - len(board)
	if needed > 2 {
		return 0, false
	}
	remaining := len(available) - 2
	cost := len(combos) * runoutCount(remaining, needed)
	if cost > enumerationBudget {
		return 0, false
	}

	heroBase := poker.NewHand(hole...)
	boardBase := poker.NewHand(board...)
	var t tally

	score := func(oppHand, finalBoard poker.Hand) {
		hero := poker.Evaluate7(heroBase | finalBoard)
		opp := poker.Evaluate7(oppHand | finalBoard)
		t.valid++
		switch poker.CompareHands(hero, opp) {
		case 1:
			t.wins++
		case 0:
			t.wins += 0.5
		}
	}

	for _, combo := range combos {
		oppHand := poker.NewHand(combo[0], combo[1])
		rest := make([]poker.Card, 0, len(available))
		for _, c := range available {
			if c != combo[0] && c != combo[1] {
				rest = append(rest, c)
			}
		}
		switch needed {
		case 0:
			score(oppHand, boardBase)
		case 1:
			for _, c := range rest {
				score(oppHand, boardBase|poker.Hand(c))
			}
		case 2:
			for i := 0; i < len(rest); i++ {
				for j := i + 1; j < len(rest); j++ {
					score(oppHand, boardBase|poker.Hand(rest[i])|poker.Hand(rest[j]))
				}
			}
		}
	}
	return finish(t), true
}

func runoutCount(remaining, needed int) int {
	switch needed {
	case 0:
		return 1
	case 1:
		return remaining
	default:
		return remaining * (remaining - 1) / 2
	}
}
