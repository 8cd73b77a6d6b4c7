package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeckRequiresFullPermutation(t *testing.T) {
	_, err := NewDeck(AllCards()[:51])
	assert.Error(t, err)

	dup := AllCards()
	dup[1] = dup[0]
	_, err = NewDeck(dup)
	assert.Error(t, err)

	d, err := NewDeck(AllCards())
	require.NoError(t, err)
	assert.Equal(t, DeckSize, d.Remaining())
}

func TestDeckDealsFromFront(t *testing.T) {
	order := AllCards()
	d, err := NewDeck(order)
	require.NoError(t, err)

	first := d.Deal(2)
	require.Len(t, first, 2)
	assert.Equal(t, order[0], first[0])
	assert.Equal(t, order[1], first[1])

	assert.Equal(t, order[2], d.DealOne())
	assert.Equal(t, DeckSize-3, d.Remaining())
}

func TestDeckRefusesOverdraw(t *testing.T) {
	d, err := NewDeck(AllCards())
	require.NoError(t, err)

	d.Deal(50)
	assert.Nil(t, d.Deal(3))
	assert.Equal(t, 2, d.Remaining())
}

func TestDeckOrderIsStable(t *testing.T) {
	order := AllCards()
	d, err := NewDeck(order)
	require.NoError(t, err)

	d.Deal(10)
	assert.Equal(t, order, d.Order(), "dealing must not disturb the recorded order")
}
