package fairness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairdeck/gtoadvisor/poker"
)

func TestNewServerSeedIsFreshAndSized(t *testing.T) {
	a, err := NewServerSeed()
	require.NoError(t, err)
	b, err := NewServerSeed()
	require.NoError(t, err)

	assert.Len(t, a, serverSeedBytes*2)
	assert.NotEqual(t, a, b)
}

func TestRevealIsDeterministic(t *testing.T) {
	seeds := []struct{ server, client string }{
		{"aaaa", "bbbb"},
		{"0011223344", "client-entropy"},
		{"s", ""},
	}
	for _, s := range seeds {
		first := ShuffledOrder(s.server, s.client)
		second := ShuffledOrder(s.server, s.client)
		assert.Equal(t, first, second)
	}
}

func TestShuffledOrderIsPermutation(t *testing.T) {
	for _, client := range []string{"a", "b", "c", "d", "e"} {
		order := ShuffledOrder("fixed-server-seed", client)
		require.Len(t, order, poker.DeckSize)
		assert.Equal(t, poker.DeckSize, poker.NewHand(order...).CountCards(),
			"client seed %q produced duplicates", client)
	}
}

func TestDifferentSeedsProduceDifferentOrders(t *testing.T) {
	base := ShuffledOrder("server", "client")
	assert.NotEqual(t, base, ShuffledOrder("server", "client2"))
	assert.NotEqual(t, base, ShuffledOrder("server2", "client"))
}

func TestDealStateMachine(t *testing.T) {
	d := NewDeal()
	assert.Equal(t, StateUncommitted, d.State())

	// Reveal before commit is a protocol violation.
	_, _, err := d.Reveal("client")
	assert.ErrorIs(t, err, ErrProtocolViolation)

	commitment, err := d.Commit("server-seed")
	require.NoError(t, err)
	assert.Equal(t, StateCommitted, d.State())
	assert.NotEmpty(t, commitment.Digest)

	// Double commit is refused.
	_, err = d.Commit("another-seed")
	assert.ErrorIs(t, err, ErrProtocolViolation)

	deck, proof, err := d.Reveal("client-seed")
	require.NoError(t, err)
	assert.Equal(t, StateRevealed, d.State())
	assert.Equal(t, poker.DeckSize, deck.Remaining())
	assert.Equal(t, commitment, proof.Commitment)

	// Reveal is terminal.
	_, _, err = d.Reveal("client-seed")
	assert.ErrorIs(t, err, ErrProtocolViolation)
}

func TestVerifyAcceptsHonestProof(t *testing.T) {
	d := NewDeal()
	_, err := d.Commit("server-seed")
	require.NoError(t, err)
	_, proof, err := d.Reveal("client-seed")
	require.NoError(t, err)

	assert.True(t, Verify(proof.Commitment, proof.ServerSeed, proof.ClientSeed, proof.DeckOrder))
	assert.True(t, VerifyProof(proof))
}

func TestVerifyRejectsTampering(t *testing.T) {
	commitment := Commit("server-seed")
	order := ShuffledOrder("server-seed", "client-seed")

	// Wrong server seed (single character flipped).
	assert.False(t, Verify(commitment, "server-seeD", "client-seed", order))

	// Wrong client seed changes the derived order.
	assert.False(t, Verify(commitment, "server-seed", "client-seeX", order))

	// Swapped cards in the claimed order.
	tampered := append([]poker.Card(nil), order...)
	tampered[0], tampered[1] = tampered[1], tampered[0]
	assert.False(t, Verify(commitment, "server-seed", "client-seed", tampered))

	// Wrong protocol version.
	badVersion := commitment
	badVersion.Version = "fairdeck/v0"
	assert.False(t, Verify(badVersion, "server-seed", "client-seed", order))

	assert.True(t, Verify(commitment, "server-seed", "client-seed", order))
}

func TestDealsAreIndependent(t *testing.T) {
	a, b := NewDeal(), NewDeal()
	assert.NotEqual(t, a.ID(), b.ID())

	_, err := a.Commit("seed-a")
	require.NoError(t, err)
	assert.Equal(t, StateUncommitted, b.State())
}
