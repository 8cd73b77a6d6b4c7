package poker

import "fmt"

// Deck is an ordered run of 52 cards consumed from the front. The order
// comes from outside (the fairness protocol owns shuffling); once built
// a deck is never re-ordered mid-hand.
type Deck struct {
	cards [DeckSize]Card
	next  int
}

// NewDeck builds a deck from an explicit card order. The order must be
// a permutation of the full 52 cards.
func NewDeck(order []Card) (*Deck, error) {
	if len(order) != DeckSize {
		return nil, fmt.Errorf("poker: deck order has %d cards, want %d", len(order), DeckSize)
	}
	var seen Hand
	d := &Deck{}
	for i, c := range order {
		if c.Rank() > 12 || seen.HasCard(c) {
			return nil, fmt.Errorf("poker: deck order is not a permutation (position %d)", i)
		}
		seen.AddCard(c)
		d.cards[i] = c
	}
	return d, nil
}

// Deal removes and returns the next n cards. Returns nil when fewer
// than n remain.
func (d *Deck) Deal(n int) []Card {
	if d.next+n > DeckSize {
		return nil
	}
	cards := make([]Card, n)
	copy(cards, d.cards[d.next:d.next+n])
	d.next += n
	return cards
}

// DealOne removes and returns the next card, or 0 when exhausted.
func (d *Deck) DealOne() Card {
	if d.next >= DeckSize {
		return 0
	}
	c := d.cards[d.next]
	d.next++
	return c
}

// Remaining returns the number of undealt cards.
func (d *Deck) Remaining() int {
	return DeckSize - d.next
}

// Order returns the full deal order, dealt cards included.
func (d *Deck) Order() []Card {
	out := make([]Card, DeckSize)
	copy(out, d.cards[:])
	return out
}
