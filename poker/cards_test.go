package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCardRoundTrip(t *testing.T) {
	for _, c := range AllCards() {
		parsed, err := ParseCard(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}
}

func TestParseCardRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "A", "Ax", "1s", "AsKs"} {
		_, err := ParseCard(s)
		assert.Error(t, err, "expected error for %q", s)
	}
}

func TestParseCardsIgnoresSpaces(t *testing.T) {
	a, err := ParseCards("As Kd Qh")
	require.NoError(t, err)
	b, err := ParseCards("AsKdQh")
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, 3)
}

func TestHandBitsetOperations(t *testing.T) {
	cards := MustParseCards("AsKdQh")
	h := NewHand(cards...)

	assert.Equal(t, 3, h.CountCards())
	for _, c := range cards {
		assert.True(t, h.HasCard(c))
	}
	assert.False(t, h.HasCard(MustParseCards("2c")[0]))

	// Adding a duplicate changes nothing.
	h.AddCard(cards[0])
	assert.Equal(t, 3, h.CountCards())
}

func TestHandCardsRoundTrip(t *testing.T) {
	cards := MustParseCards("2c7dJhAs")
	h := NewHand(cards...)
	assert.ElementsMatch(t, cards, h.Cards())
}

func TestAllCardsDistinct(t *testing.T) {
	all := AllCards()
	require.Len(t, all, DeckSize)
	assert.Equal(t, DeckSize, NewHand(all...).CountCards())
}

func TestCardRankSuit(t *testing.T) {
	c := NewCard(Ace, Spades)
	assert.Equal(t, Ace, c.Rank())
	assert.Equal(t, Spades, c.Suit())
	assert.Equal(t, "As", c.String())

	var invalid Card
	assert.Equal(t, uint8(255), invalid.Rank())
	assert.Equal(t, "??", invalid.String())
}
