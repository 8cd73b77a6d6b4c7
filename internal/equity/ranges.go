package equity

import (
	rand "math/rand/v2"

	"github.com/fairdeck/gtoadvisor/poker"
)

// Range models the opponent's possible hole cards. SampleHand draws one
// combo from whatever is still available in the deck.
type Range interface {
	SampleHand(available []poker.Card, rng *rand.Rand) ([2]poker.Card, bool)
}

// Enumerable ranges can list every combo they contain, which unlocks
// exact enumeration instead of sampling when the unknowns are few.
type Enumerable interface {
	Range
	Combos(available []poker.Card) [][2]poker.Card
}

// RandomRange is any two cards.
type RandomRange struct{}

func (RandomRange) SampleHand(available []poker.Card, rng *rand.Rand) ([2]poker.Card, bool) {
	if len(available) < 2 {
		return [2]poker.Card{}, false
	}
	i := rng.IntN(len(available))
	j := rng.IntN(len(available) - 1)
	if j >= i {
		j++
	}
	return [2]poker.Card{available[i], available[j]}, true
}

// TightRange keeps only strong starting hands: big pairs, big aces,
// broadway, and premium suited connectors.
type TightRange struct{}

func (TightRange) SampleHand(available []poker.Card, rng *rand.Rand) ([2]poker.Card, bool) {
	for attempt := 0; attempt < 200; attempt++ {
		hand, ok := RandomRange{}.SampleHand(available, rng)
		if !ok {
			return hand, false
		}
		if isTightHand(hand) {
			return hand, true
		}
	}
	// A board can consume so many high cards that no tight combo
	// remains; fall back to any two.
	return RandomRange{}.SampleHand(available, rng)
}

// LooseRange plays most hands but folds the true junk.
type LooseRange struct{}

func (LooseRange) SampleHand(available []poker.Card, rng *rand.Rand) ([2]poker.Card, bool) {
	for attempt := 0; attempt < 50; attempt++ {
		hand, ok := RandomRange{}.SampleHand(available, rng)
		if !ok {
			return hand, false
		}
		if isTightHand(hand) || poker.CategorizeHoleCards(hand[0], hand[1]) != poker.CategoryTrash || rng.Float64() < 0.5 {
			return hand, true
		}
	}
	return RandomRange{}.SampleHand(available, rng)
}

// ExplicitRange is a fixed list of combos, e.g. from a range string the
// transport collaborator parsed.
type ExplicitRange struct {
	Hands [][2]poker.Card
}

func (r ExplicitRange) SampleHand(available []poker.Card, rng *rand.Rand) ([2]poker.Card, bool) {
	live := r.Combos(available)
	if len(live) == 0 {
		return [2]poker.Card{}, false
	}
	return live[rng.IntN(len(live))], true
}

// Combos returns the combos whose cards are all still available.
func (r ExplicitRange) Combos(available []poker.Card) [][2]poker.Card {
	pool := poker.NewHand(available...)
	live := make([][2]poker.Card, 0, len(r.Hands))
	for _, h := range r.Hands {
		if pool.HasCard(h[0]) && pool.HasCard(h[1]) {
			live = append(live, h)
		}
	}
	return live
}

func isTightHand(hand [2]poker.Card) bool {
	r1, r2 := hand[0].Rank(), hand[1].Rank()
	suited := hand[0].Suit() == hand[1].Suit()

	if r1 == r2 && r1 >= poker.Ten {
		return true
	}
	if r1 >= poker.Jack && r2 >= poker.Jack {
		return true
	}
	if suited {
		gap := int(r1) - int(r2)
		if gap < 0 {
			gap = -gap
		}
		if gap <= 1 && r1 >= poker.Nine && r2 >= poker.Nine {
			return true
		}
	}
	if (r1 == poker.Ace && r2 >= poker.Ten) || (r2 == poker.Ace && r1 >= poker.Ten) {
		return true
	}
	return false
}
