package poker

import (
	"errors"
	"math/bits"
)

// HandRank is the strength of a poker hand. Lower values are stronger;
// rank 0 is a royal flush and rank 7461 the worst high card. Every
// distinct 5-card hand class maps to a distinct rank, so comparing two
// HandRanks resolves kickers exactly.
type HandRank uint16

// HandType enumerates hand categories from weakest to strongest.
type HandType uint8

const (
	HighCard HandType = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// ErrInvalidCardSet is returned when the evaluator is handed fewer than
// five cards, more than seven, or duplicates. Callers dealing from a
// verified deck should never trigger it.
var ErrInvalidCardSet = errors.New("poker: hand must contain 5 to 7 distinct cards")

// Class sizes for each category of distinct 5-card hands.
const (
	straightFlushCount = 10
	fourOfAKindCount   = 13 * 12
	fullHouseCount     = 13 * 12
	flushCount         = 1277
	straightCount      = 10
	threeOfAKindCount  = 13 * 66
	twoPairCount       = 78 * 11
	onePairCount       = 13 * 220
	highCardCount      = 1277
)

const (
	baseStraightFlush = 0
	baseFourOfAKind   = baseStraightFlush + straightFlushCount
	baseFullHouse     = baseFourOfAKind + fourOfAKindCount
	baseFlush         = baseFullHouse + fullHouseCount
	baseStraight      = baseFlush + flushCount
	baseThreeOfAKind  = baseStraight + straightCount
	baseTwoPair       = baseThreeOfAKind + threeOfAKindCount
	baseOnePair       = baseTwoPair + twoPairCount
	baseHighCard      = baseOnePair + onePairCount

	// RankCount is the total number of distinct hand classes.
	RankCount = baseHighCard + highCardCount
)

// Type returns the category a rank falls in.
func (hr HandRank) Type() HandType {
	switch {
	case hr < baseFourOfAKind:
		return StraightFlush
	case hr < baseFullHouse:
		return FourOfAKind
	case hr < baseFlush:
		return FullHouse
	case hr < baseStraight:
		return Flush
	case hr < baseThreeOfAKind:
		return Straight
	case hr < baseTwoPair:
		return ThreeOfAKind
	case hr < baseOnePair:
		return TwoPair
	case hr < baseHighCard:
		return Pair
	default:
		return HighCard
	}
}

func (t HandType) String() string {
	switch t {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

func (hr HandRank) String() string {
	return hr.Type().String()
}

// CompareHands returns 1 if a beats b, -1 if b beats a, and 0 on a tie.
func CompareHands(a, b HandRank) int {
	switch {
	case a < b:
		return 1
	case a > b:
		return -1
	default:
		return 0
	}
}

// Evaluate ranks the best 5-card hand contained in 5 to 7 distinct
// cards. Duplicate cards collapse in the bitset, which is how they are
// detected.
func Evaluate(cards []Card) (HandRank, error) {
	hand := NewHand(cards...)
	if n := hand.CountCards(); n != len(cards) || n < 5 || n > 7 {
		return 0, ErrInvalidCardSet
	}
	return evaluateUnchecked(hand), nil
}

// Evaluate7 ranks a 7-card hand without validation. Hot path for
// equity sampling and showdown scoring where the deck guarantees
// distinct cards.
func Evaluate7(hand Hand) HandRank {
	return evaluateUnchecked(hand)
}

func evaluateUnchecked(hand Hand) HandRank {
	var suitMasks [4]uint16
	var ranks uint16
	for suit := uint8(0); suit < 4; suit++ {
		mask := hand.GetSuitMask(suit)
		suitMasks[suit] = mask
		ranks |= mask
	}
	return rankMasks(suitMasks, ranks)
}

func rankMasks(suitMasks [4]uint16, ranks uint16) HandRank {
	// Flushes first: at most one suit can hold five of up to seven cards.
	for _, suitMask := range suitMasks {
		if bits.OnesCount16(suitMask) < 5 {
			continue
		}
		if high := straightHigh(suitMask); high > 0 {
			return HandRank(baseStraightFlush + straightFlushCount - 1 - int(straightOrdinal(high)))
		}
		top := topRanks(suitMask, 5)
		idx := adjustNonStraight(comboIndex13of5[maskOfRanks(top)])
		return HandRank(baseFlush + flushCount - 1 - int(idx))
	}

	s0, s1, s2, s3 := suitMasks[0], suitMasks[1], suitMasks[2], suitMasks[3]
	quadsMask := s0 & s1 & s2 & s3
	tripOrBetter := (s0 & s1 & s2) | (s0 & s1 & s3) | (s0 & s2 & s3) | (s1 & s2 & s3)
	tripsMask := tripOrBetter &^ quadsMask
	pairsMask := ((s0 & s1) | (s0 & s2) | (s0 & s3) | (s1 & s2) | (s1 & s3) | (s2 & s3)) &^ tripOrBetter

	if quad := topRank(quadsMask); quad >= 0 {
		q := uint8(quad)
		kicker := bestKicker(ranks, []uint8{q})
		idx := uint16(q)*12 + uint16(rankOrdinal(kicker, []uint8{q}))
		return HandRank(baseFourOfAKind + fourOfAKindCount - 1 - int(idx))
	}

	if trip := topRank(tripsMask); trip >= 0 {
		t := uint8(trip)
		// A second trip rank supplies the pair half of a full house.
		pairCandidates := pairsMask | (tripsMask &^ (1 << trip))
		if pair := topRank(pairCandidates); pair >= 0 {
			p := uint8(pair)
			idx := uint16(t)*12 + uint16(rankOrdinal(p, []uint8{t}))
			return HandRank(baseFullHouse + fullHouseCount - 1 - int(idx))
		}
	}

	if high := straightHigh(ranks); high > 0 {
		return HandRank(baseStraight + straightCount - 1 - int(straightOrdinal(high)))
	}

	if trip := topRank(tripsMask); trip >= 0 {
		t := uint8(trip)
		kickers := topKickers(ranks, []uint8{t}, 2)
		idx := uint16(t)*66 + comboIndex12of2[maskOfOrdinals(kickers, []uint8{t})]
		return HandRank(baseThreeOfAKind + threeOfAKindCount - 1 - int(idx))
	}

	if p1 := topRank(pairsMask); p1 >= 0 {
		high := uint8(p1)
		if p2 := topRank(pairsMask &^ (1 << p1)); p2 >= 0 {
			low := uint8(p2)
			pairIdx := comboIndex13of2[(uint16(1)<<low)|(uint16(1)<<high)]
			kicker := bestKicker(ranks, []uint8{high, low})
			idx := pairIdx*11 + uint16(rankOrdinal(kicker, []uint8{high, low}))
			return HandRank(baseTwoPair + twoPairCount - 1 - int(idx))
		}
		kickers := topKickers(ranks, []uint8{high}, 3)
		idx := uint16(high)*220 + comboIndex12of3[maskOfOrdinals(kickers, []uint8{high})]
		return HandRank(baseOnePair + onePairCount - 1 - int(idx))
	}

	top := topRanks(ranks, 5)
	idx := adjustNonStraight(comboIndex13of5[maskOfRanks(top)])
	return HandRank(baseHighCard + highCardCount - 1 - int(idx))
}

// straightHigh returns the high-card rank of the best straight in the
// rank mask, or 0 when there is none. The wheel reports 3 (five-high),
// which only wins when no higher straight exists.
func straightHigh(mask uint16) uint8 {
	mask &= rankMask
	seq := mask & (mask >> 1) & (mask >> 2) & (mask >> 3) & (mask >> 4)
	if seq != 0 {
		return uint8(bits.Len16(seq)-1) + 4
	}
	const wheel = 0x100F // A-2-3-4-5
	if mask&wheel == wheel {
		return 3
	}
	return 0
}

// straightOrdinal maps a straight's high rank to its ascending index:
// wheel is 0, ace-high is 9.
func straightOrdinal(high uint8) uint16 {
	if high == 3 {
		return 0
	}
	return uint16(high - 3)
}

// topRank returns the highest set rank in the mask, or -1 when empty.
func topRank(mask uint16) int {
	if mask == 0 {
		return -1
	}
	return bits.Len16(mask) - 1
}

// bestKicker returns the highest rank present after removing used ranks.
func bestKicker(mask uint16, used []uint8) uint8 {
	available := mask &^ maskOfRanks(used)
	if available == 0 {
		return 0
	}
	return uint8(bits.Len16(available) - 1)
}

// topKickers returns the n highest ranks excluding used ones, in
// descending order.
func topKickers(mask uint16, used []uint8, n int) []uint8 {
	available := mask &^ maskOfRanks(used)
	kickers := make([]uint8, 0, n)
	for len(kickers) < n && available != 0 {
		top := uint8(bits.Len16(available) - 1)
		kickers = append(kickers, top)
		available &^= 1 << top
	}
	return kickers
}

func topRanks(mask uint16, n int) []uint8 {
	return topKickers(mask, nil, n)
}

func maskOfRanks(ranks []uint8) uint16 {
	var mask uint16
	for _, r := range ranks {
		mask |= 1 << r
	}
	return mask
}

// rankOrdinal compresses a rank into the 0..11 space that remains after
// removing the excluded ranks.
func rankOrdinal(rank uint8, excludes []uint8) uint8 {
	var offset uint8
	for _, ex := range excludes {
		if ex < rank {
			offset++
		}
	}
	return rank - offset
}

func maskOfOrdinals(ranks, excludes []uint8) uint16 {
	var mask uint16
	for _, r := range ranks {
		mask |= 1 << rankOrdinal(r, excludes)
	}
	return mask
}

// Combination indices in colexicographic order, keyed directly by rank
// bitmask so lookup is a single array read. Colex compares the highest
// card first, which is exactly how hands of the same category compare,
// so a larger index always means a stronger card set.
var comboIndex13of5 = func() [1 << 13]uint16 {
	var table [1 << 13]uint16
	var idx uint16
	for e := 4; e <= 12; e++ {
		for d := 3; d < e; d++ {
			for c := 2; c < d; c++ {
				for b := 1; b < c; b++ {
					for a := 0; a < b; a++ {
						table[(1<<a)|(1<<b)|(1<<c)|(1<<d)|(1<<e)] = idx
						idx++
					}
				}
			}
		}
	}
	return table
}()

var comboIndex13of2 = func() [1 << 13]uint16 {
	var table [1 << 13]uint16
	var idx uint16
	for b := 1; b <= 12; b++ {
		for a := 0; a < b; a++ {
			table[(1<<a)|(1<<b)] = idx
			idx++
		}
	}
	return table
}()

var comboIndex12of2 = func() [1 << 12]uint16 {
	var table [1 << 12]uint16
	var idx uint16
	for b := 1; b <= 11; b++ {
		for a := 0; a < b; a++ {
			table[(1<<a)|(1<<b)] = idx
			idx++
		}
	}
	return table
}()

var comboIndex12of3 = func() [1 << 12]uint16 {
	var table [1 << 12]uint16
	var idx uint16
	for c := 2; c <= 11; c++ {
		for b := 1; b < c; b++ {
			for a := 0; a < b; a++ {
				table[(1<<a)|(1<<b)|(1<<c)] = idx
				idx++
			}
		}
	}
	return table
}()

// straightComboIndices lists, in ascending order, the 5-of-13 combo
// indices that form straights. Flush and high-card indexing skips them.
var straightComboIndices = func() [10]uint16 {
	var arr [10]uint16
	arr[0] = comboIndex13of5[(1<<0)|(1<<1)|(1<<2)|(1<<3)|(1<<12)] // wheel
	i := 1
	for high := 4; high <= 12; high++ {
		var mask uint16
		for r := high - 4; r <= high; r++ {
			mask |= 1 << r
		}
		arr[i] = comboIndex13of5[mask]
		i++
	}
	// Insertion sort keeps this free of a sort import for 10 values.
	for i := 1; i < len(arr); i++ {
		v := arr[i]
		j := i - 1
		for j >= 0 && arr[j] > v {
			arr[j+1] = arr[j]
			j--
		}
		arr[j+1] = v
	}
	return arr
}()

func adjustNonStraight(idx uint16) uint16 {
	var adjust uint16
	for _, s := range straightComboIndices {
		if idx > s {
			adjust++
		} else {
			break
		}
	}
	return idx - adjust
}
