package poker

// HoleCategory is a coarse preflop strength tier for two hole cards.
// The CFR abstraction keys on these tiers, so the mapping must be
// deterministic and total.
type HoleCategory uint8

const (
	CategoryTrash HoleCategory = iota
	CategoryWeak
	CategoryMedium
	CategoryStrong
	CategoryPremium
)

func (c HoleCategory) String() string {
	switch c {
	case CategoryPremium:
		return "Premium"
	case CategoryStrong:
		return "Strong"
	case CategoryMedium:
		return "Medium"
	case CategoryWeak:
		return "Weak"
	default:
		return "Trash"
	}
}

// CategorizeHoleCards tiers a starting hand:
// Premium (JJ+, AK), Strong (TT, AQ, AJ), Medium (77-99, suited
// broadway), Weak (22-66, suited connectors), Trash otherwise.
func CategorizeHoleCards(a, b Card) HoleCategory {
	low, high := a.Rank(), b.Rank()
	if low > high {
		low, high = high, low
	}
	suited := a.Suit() == b.Suit()
	pair := low == high

	if pair && low >= Jack {
		return CategoryPremium
	}
	if high == Ace && low == King {
		return CategoryPremium
	}

	if pair && low == Ten {
		return CategoryStrong
	}
	if high == Ace && (low == Queen || low == Jack) {
		return CategoryStrong
	}

	if pair && low >= Seven {
		return CategoryMedium
	}
	if suited && low >= Ten {
		return CategoryMedium
	}

	if pair {
		return CategoryWeak
	}
	if suited && high-low <= 2 {
		return CategoryWeak
	}

	return CategoryTrash
}
