package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorizeHoleCards(t *testing.T) {
	tests := []struct {
		cards string
		want  HoleCategory
	}{
		{"AsAd", CategoryPremium},
		{"JcJd", CategoryPremium},
		{"AsKd", CategoryPremium},
		{"AsKs", CategoryPremium},
		{"TcTd", CategoryStrong},
		{"AhQc", CategoryStrong},
		{"AdJh", CategoryStrong},
		{"8c8d", CategoryMedium},
		{"KsQs", CategoryMedium},
		{"5c5d", CategoryWeak},
		{"7h8h", CategoryWeak},
		{"7h9h", CategoryWeak},
		{"7h2c", CategoryTrash},
		{"KdQc", CategoryTrash},
	}

	for _, tt := range tests {
		t.Run(tt.cards, func(t *testing.T) {
			cards := MustParseCards(tt.cards)
			assert.Equal(t, tt.want, CategorizeHoleCards(cards[0], cards[1]))
		})
	}
}

func TestCategorizeIsSymmetric(t *testing.T) {
	a := MustParseCards("AsKd")
	assert.Equal(t, CategorizeHoleCards(a[0], a[1]), CategorizeHoleCards(a[1], a[0]))
}
