package poker

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rank(t *testing.T, cards string) HandRank {
	t.Helper()
	hr, err := Evaluate(MustParseCards(cards))
	require.NoError(t, err, "evaluating %s", cards)
	return hr
}

func TestEvaluateCategories(t *testing.T) {
	tests := []struct {
		name  string
		cards string
		want  HandType
	}{
		{"royal flush", "AsKsQsJsTs2h3d", StraightFlush},
		{"straight flush", "9h8h7h6h5h2c2d", StraightFlush},
		{"wheel straight flush", "Ah2h3h4h5h9c9d", StraightFlush},
		{"four of a kind", "9c9d9h9s2c3c4c", FourOfAKind},
		{"full house", "KcKdKh2s2c7d8h", FullHouse},
		{"two trips make full house", "KcKdKh2s2c2d8h", FullHouse},
		{"flush", "As9s7s5s2sKh3d", Flush},
		{"straight", "9c8d7h6s5c2c2d", Straight},
		{"wheel straight", "AcKd2h3s4c5d9h", Straight},
		{"trips", "QcQdQh9s5c3d2h", ThreeOfAKind},
		{"two pair", "JcJd8h8s5c3d2h", TwoPair},
		{"pair", "TcTd9h7s5c3d2h", Pair},
		{"high card", "AcQd9h7s5c3d2h", HighCard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rank(t, tt.cards).Type())
		})
	}
}

func TestStraightFlushBeatsFourOfAKind(t *testing.T) {
	sf := rank(t, "AsKsQsJsTs2h3h")
	quads := rank(t, "9c9d9h9s2c3c4c")
	assert.Equal(t, 1, CompareHands(sf, quads))
}

func TestWheelIsLowestStraight(t *testing.T) {
	wheel := rank(t, "Ac2d3h4s5c9h9d")
	sixHigh := rank(t, "2c3d4h5s6cTh9d")
	aceHigh := rank(t, "AcKdQhJsTc2h3d")

	require.Equal(t, Straight, wheel.Type())
	require.Equal(t, Straight, sixHigh.Type())
	assert.Equal(t, 1, CompareHands(sixHigh, wheel), "6-high straight must beat the wheel")
	assert.Equal(t, 1, CompareHands(aceHigh, sixHigh))
}

func TestAceLowStraightDoesNotWrap(t *testing.T) {
	// Q-K-A-2-3 is not a straight.
	hr := rank(t, "QcKdAh2s3c9h7d")
	assert.NotEqual(t, Straight, hr.Type())
}

func TestKickersBreakTies(t *testing.T) {
	// Same pair of aces, king kicker vs queen kicker.
	kingKicker := rank(t, "AcAdKh9s5c3d2h")
	queenKicker := rank(t, "AcAdQh9s5c3d2h")
	assert.Equal(t, 1, CompareHands(kingKicker, queenKicker))

	// Identical five-card hands from different kicker noise tie.
	a := rank(t, "AcAdKh9s5c3d2h")
	b := rank(t, "AcAdKh9s5c3s2d")
	assert.Equal(t, 0, CompareHands(a, b))
}

func TestEvaluateOrderIndependent(t *testing.T) {
	cards := MustParseCards("AsKsQsJsTs2h3h")
	want, err := Evaluate(cards)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		rng.Shuffle(len(cards), func(a, b int) { cards[a], cards[b] = cards[b], cards[a] })
		got, err := Evaluate(cards)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestEvaluateFiveAndSixCards(t *testing.T) {
	five := rank(t, "AcAdKhQs5c")
	assert.Equal(t, Pair, five.Type())

	six := rank(t, "AcAdKhQs5c5d")
	assert.Equal(t, TwoPair, six.Type())
}

func TestEvaluateInvalidCardSets(t *testing.T) {
	_, err := Evaluate(MustParseCards("AcAd"))
	assert.ErrorIs(t, err, ErrInvalidCardSet)

	_, err = Evaluate(MustParseCards("AcAcKhQs5c"))
	assert.ErrorIs(t, err, ErrInvalidCardSet)

	_, err = Evaluate(MustParseCards("2c3c4c5c6c7c8c9c"))
	assert.ErrorIs(t, err, ErrInvalidCardSet)
}

func TestEvaluateTotalOrderTransitive(t *testing.T) {
	a := rank(t, "AsKsQsJsTs3h2d") // royal flush
	b := rank(t, "KcKdKh2s2c7d8h") // full house
	c := rank(t, "TcTd9h7s5c3d2h") // pair

	require.Equal(t, 1, CompareHands(a, b))
	require.Equal(t, 1, CompareHands(b, c))
	assert.Equal(t, 1, CompareHands(a, c))
}

func TestFullHouseUsesBestTrip(t *testing.T) {
	// Aces full of kings beats kings full of aces.
	acesFull := rank(t, "AcAdAhKsKc2d3h")
	kingsFull := rank(t, "KcKdKhAsAc2d3h")
	assert.Equal(t, 1, CompareHands(acesFull, kingsFull))
}

func BenchmarkEvaluate7(b *testing.B) {
	rng := rand.New(rand.NewSource(42))
	all := AllCards()
	hands := make([]Hand, 1000)
	for i := range hands {
		rng.Shuffle(len(all), func(a, b int) { all[a], all[b] = all[b], all[a] })
		hands[i] = NewHand(all[:7]...)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Evaluate7(hands[i%len(hands)])
	}
}
