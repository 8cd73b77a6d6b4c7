package poker

import (
	"encoding/json"
	"fmt"
	"math/bits"
	"strings"
)

// Card is a single playing card stored as one set bit in a uint64.
// Bit position = suit*13 + rank, so bitwise operations on groups of
// cards stay cheap throughout the evaluator and equity loops.
type Card uint64

// Hand is a set of cards: the union of their bits. A Hand carries no
// ordering, which is exactly what hand evaluation wants.
type Hand uint64

// Suit constants.
const (
	Clubs uint8 = iota
	Diamonds
	Hearts
	Spades
)

// Rank constants (0-12 for deuce through ace).
const (
	Two uint8 = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

const (
	// DeckSize is the number of cards in a standard deck.
	DeckSize = 52

	rankBits = 13
	rankMask = 0x1FFF
)

const (
	rankChars = "23456789TJQKA"
	suitChars = "cdhs"
)

// NewCard builds a card from its rank and suit.
func NewCard(rank, suit uint8) Card {
	return Card(1) << (suit*rankBits + rank)
}

// bitPosition returns the bit index (0-51) of the card, or 255 when the
// value does not hold exactly one bit.
func (c Card) bitPosition() uint8 {
	if bits.OnesCount64(uint64(c)) != 1 {
		return 255
	}
	return uint8(bits.TrailingZeros64(uint64(c)))
}

// Rank returns the card's rank (0-12), or 255 for an invalid card.
func (c Card) Rank() uint8 {
	pos := c.bitPosition()
	if pos == 255 {
		return 255
	}
	return pos % rankBits
}

// Suit returns the card's suit (0-3), or 255 for an invalid card.
func (c Card) Suit() uint8 {
	pos := c.bitPosition()
	if pos == 255 {
		return 255
	}
	return pos / rankBits
}

// String renders the card in the usual two-character notation ("As", "7d").
func (c Card) String() string {
	rank, suit := c.Rank(), c.Suit()
	if rank > 12 || suit > 3 {
		return "??"
	}
	return string(rankChars[rank]) + string(suitChars[suit])
}

// ParseCard parses two-character notation like "As" or "td".
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("invalid card %q", s)
	}
	rank := strings.IndexByte(rankChars, upperRank(s[0]))
	if rank < 0 {
		return 0, fmt.Errorf("invalid rank %q", s[0])
	}
	suit := strings.IndexByte(suitChars, lowerSuit(s[1]))
	if suit < 0 {
		return 0, fmt.Errorf("invalid suit %q", s[1])
	}
	return NewCard(uint8(rank), uint8(suit)), nil
}

// ParseCards parses concatenated card notation such as "AsKdQh". Spaces
// are ignored so board strings can be written either way.
func ParseCards(s string) ([]Card, error) {
	s = strings.ReplaceAll(s, " ", "")
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("odd-length card string %q", s)
	}
	cards := make([]Card, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		c, err := ParseCard(s[i : i+2])
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MarshalJSON encodes the card in two-character notation, keeping deck
// orders in proof bundles human-readable.
func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes two-character notation.
func (c *Card) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseCard(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MustParseCards parses card notation and panics on error. Test helper.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

func upperRank(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

func lowerSuit(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b - 'A' + 'a'
	}
	return b
}

// NewHand combines cards into a hand.
func NewHand(cards ...Card) Hand {
	var h Hand
	for _, c := range cards {
		h |= Hand(c)
	}
	return h
}

// AddCard adds a card to the hand.
func (h *Hand) AddCard(c Card) {
	*h |= Hand(c)
}

// HasCard reports whether the hand contains the card.
func (h Hand) HasCard(c Card) bool {
	return h&Hand(c) != 0
}

// CountCards returns the number of cards in the hand.
func (h Hand) CountCards() int {
	return bits.OnesCount64(uint64(h))
}

// GetSuitMask returns the 13-bit rank mask for one suit.
func (h Hand) GetSuitMask(suit uint8) uint16 {
	return uint16(uint64(h)>>(suit*rankBits)) & rankMask
}

// GetRankMask returns the union of all suit masks.
func (h Hand) GetRankMask() uint16 {
	var mask uint16
	for suit := uint8(0); suit < 4; suit++ {
		mask |= h.GetSuitMask(suit)
	}
	return mask
}

// Cards expands the hand back into individual cards, lowest bit first.
func (h Hand) Cards() []Card {
	cards := make([]Card, 0, h.CountCards())
	v := uint64(h)
	for v != 0 {
		low := v & -v
		cards = append(cards, Card(low))
		v &^= low
	}
	return cards
}

// String renders the hand as concatenated card notation.
func (h Hand) String() string {
	var sb strings.Builder
	for _, c := range h.Cards() {
		sb.WriteString(c.String())
	}
	return sb.String()
}

// AllCards returns the 52 cards of a standard deck in canonical order
// (clubs deuce first, spades ace last).
func AllCards() []Card {
	cards := make([]Card, 0, DeckSize)
	for suit := uint8(0); suit < 4; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			cards = append(cards, NewCard(rank, suit))
		}
	}
	return cards
}
