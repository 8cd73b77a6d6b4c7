package equity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairdeck/gtoadvisor/internal/randutil"
	"github.com/fairdeck/gtoadvisor/poker"
)

func TestEstimateKnownMatchups(t *testing.T) {
	tests := []struct {
		name     string
		hole     string
		board    string
		opponent Range
		min, max float64
	}{
		{"pocket aces preflop vs random", "AsAd", "", RandomRange{}, 0.75, 0.92},
		{"72o preflop vs random", "7h2c", "", RandomRange{}, 0.25, 0.42},
		{"big draw on flop vs random", "AsKs", "QsJs2h", RandomRange{}, 0.60, 0.85},
		{"weak holding on high flop", "2h3c", "AsKdQh", RandomRange{}, 0.08, 0.30},
		{"set of aces vs tight", "AhAc", "Ad7s2c", TightRange{}, 0.80, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := randutil.New(1)
			eq := Estimate(poker.MustParseCards(tt.hole), poker.MustParseCards(tt.board), tt.opponent, 20_000, rng)
			assert.GreaterOrEqual(t, eq, tt.min)
			assert.LessOrEqual(t, eq, tt.max)
		})
	}
}

func TestEstimateIsDeterministicWithSeed(t *testing.T) {
	hole := poker.MustParseCards("JhTh")
	board := poker.MustParseCards("9h8c2d")

	a := Estimate(hole, board, RandomRange{}, 5_000, randutil.New(42))
	b := Estimate(hole, board, RandomRange{}, 5_000, randutil.New(42))
	assert.Equal(t, a, b)

	c := Estimate(hole, board, RandomRange{}, 5_000, randutil.New(43))
	assert.NotEqual(t, a, c, "different seeds should wander differently")
}

func TestMirroredHandsConvergeToHalf(t *testing.T) {
	if testing.Short() {
		t.Skip("needs a large sample count")
	}
	// AKs in spades vs a range of exactly AKs in hearts: pure coinflip
	// modulo board suits, must sit near 0.5.
	hole := poker.MustParseCards("AsKs")
	mirror := poker.MustParseCards("AhKh")
	opp := ExplicitRange{Hands: [][2]poker.Card{{mirror[0], mirror[1]}}}

	eq := Estimate(hole, nil, opp, 50_000, randutil.New(7))
	assert.InDelta(t, 0.5, eq, 0.02)
}

func TestEnumerationOnRiver(t *testing.T) {
	// Full board, single opponent combo: exact result, no sampling.
	hole := poker.MustParseCards("AsAd")
	board := poker.MustParseCards("2c7d9hJsQc")
	opp := poker.MustParseCards("KhKd")

	eq := Estimate(hole, board, ExplicitRange{Hands: [][2]poker.Card{{opp[0], opp[1]}}}, 100, nil)
	assert.Equal(t, 1.0, eq)

	eqLosing := Estimate(opp, board, ExplicitRange{Hands: [][2]poker.Card{{hole[0], hole[1]}}}, 100, nil)
	assert.Equal(t, 0.0, eqLosing)
}

func TestEnumerationCountsTiesAsHalf(t *testing.T) {
	// Board plays for both: guaranteed chop.
	hole := poker.MustParseCards("2c3d")
	board := poker.MustParseCards("AsKsQsJsTs")
	opp := poker.MustParseCards("2h3h")

	eq := Estimate(hole, board, ExplicitRange{Hands: [][2]poker.Card{{opp[0], opp[1]}}}, 100, nil)
	assert.Equal(t, 0.5, eq)
}

func TestImpossibleRangeIsDegenerateWin(t *testing.T) {
	hole := poker.MustParseCards("AsAd")
	// Opponent's only combo uses the hero's cards.
	opp := ExplicitRange{Hands: [][2]poker.Card{{hole[0], hole[1]}}}
	eq := Estimate(hole, nil, opp, 1_000, randutil.New(1))
	assert.Equal(t, 1.0, eq)
}

func TestMalformedInputsReturnZero(t *testing.T) {
	assert.Zero(t, Estimate(poker.MustParseCards("As"), nil, RandomRange{}, 100, randutil.New(1)))
	assert.Zero(t, Estimate(poker.MustParseCards("AsAd"), poker.MustParseCards("2c3c4c5c6c7c"), RandomRange{}, 100, randutil.New(1)))
	assert.Zero(t, Estimate(poker.MustParseCards("AsAd"), nil, RandomRange{}, 0, randutil.New(1)))
}

func TestExplicitRangeFiltersDeadCards(t *testing.T) {
	cards := poker.MustParseCards("AsAdKhKc")
	r := ExplicitRange{Hands: [][2]poker.Card{
		{cards[0], cards[1]},
		{cards[2], cards[3]},
	}}

	available := []poker.Card{cards[2], cards[3]}
	live := r.Combos(available)
	require.Len(t, live, 1)
	assert.Equal(t, [2]poker.Card{cards[2], cards[3]}, live[0])
}

func TestParallelPathStaysInRange(t *testing.T) {
	// Unseeded path fans out across workers; the value is stochastic
	// but must stay in a sane band for a dominant hand.
	eq := Estimate(poker.MustParseCards("AsAd"), nil, RandomRange{}, 10_000, nil)
	assert.Greater(t, eq, 0.7)
	assert.Less(t, eq, 1.0)
}
