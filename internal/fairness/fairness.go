// Package fairness implements the commit-reveal dealing protocol. The
// server commits to a secret seed before the client contributes its
// own; the combined seeds deterministically shuffle the deck, so any
// party can re-derive the order afterwards and verify no one cheated.
package fairness

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/fairdeck/gtoadvisor/poker"
)

// Version tags the digest construction so future protocol revisions
// cannot be replayed against old commitments.
const Version = "fairdeck/v1"

const serverSeedBytes = 32

// ErrProtocolViolation is returned when reveal is attempted without a
// prior commitment, or a second time for the same hand. A hand hitting
// this must be voided, never silently continued.
var ErrProtocolViolation = errors.New("fairness: protocol violation")

// Commitment is the published digest of the server seed. Immutable once
// created for a hand.
type Commitment struct {
	Digest  string `json:"digest"`
	Version string `json:"version"`
}

// ProofBundle carries everything a third party needs to re-verify a
// hand: both seeds, the original commitment, and the derived order.
type ProofBundle struct {
	ServerSeed     string       `json:"server_seed"`
	ClientSeed     string       `json:"client_seed"`
	Commitment     Commitment   `json:"commitment"`
	CombinedDigest string       `json:"combined_digest"`
	DeckOrder      []poker.Card `json:"deck_order"`
}

// State tracks the per-hand protocol progression. There is no
// transition that skips Committed.
type State uint8

const (
	StateUncommitted State = iota
	StateCommitted
	StateRevealed
)

func (s State) String() string {
	switch s {
	case StateUncommitted:
		return "uncommitted"
	case StateCommitted:
		return "committed"
	case StateRevealed:
		return "revealed"
	default:
		return "unknown"
	}
}

// NewServerSeed draws a fresh seed from the system CSPRNG. Server seeds
// must never be derived from anything the client supplied.
func NewServerSeed() (string, error) {
	buf := make([]byte, serverSeedBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("fairness: generate server seed: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// Commit produces the one-way digest published before any client input
// is accepted.
func Commit(serverSeed string) Commitment {
	sum := sha256.Sum256([]byte(Version + ":" + serverSeed))
	return Commitment{Digest: hex.EncodeToString(sum[:]), Version: Version}
}

// Deal owns the protocol state for a single hand. Deals are not safe
// for concurrent use and must not be shared across hands; every hand
// gets its own.
type Deal struct {
	id         uuid.UUID
	state      State
	serverSeed string
	clientSeed string
	commitment Commitment
	deck       *poker.Deck
}

// NewDeal creates a fresh, uncommitted deal.
func NewDeal() *Deal {
	return &Deal{id: uuid.New()}
}

// ID identifies the deal for hand records and settlement.
func (d *Deal) ID() uuid.UUID { return d.id }

// State returns the current protocol state.
func (d *Deal) State() State { return d.state }

// Commit locks in the server seed and publishes its digest. Committing
// twice for the same hand is a protocol violation.
func (d *Deal) Commit(serverSeed string) (Commitment, error) {
	if d.state != StateUncommitted {
		return Commitment{}, fmt.Errorf("%w: commit in state %s", ErrProtocolViolation, d.state)
	}
	d.serverSeed = serverSeed
	d.commitment = Commit(serverSeed)
	d.state = StateCommitted
	return d.commitment, nil
}

// Commitment returns the published commitment, if any.
func (d *Deal) Commitment() (Commitment, bool) {
	if d.state == StateUncommitted {
		return Commitment{}, false
	}
	return d.commitment, true
}

// Reveal combines the committed server seed with the client seed,
// derives the deck, and returns it with the proof the collaborators
// need. Terminal for the hand.
func (d *Deal) Reveal(clientSeed string) (*poker.Deck, ProofBundle, error) {
	switch d.state {
	case StateUncommitted:
		return nil, ProofBundle{}, fmt.Errorf("%w: reveal without commit", ErrProtocolViolation)
	case StateRevealed:
		return nil, ProofBundle{}, fmt.Errorf("%w: already revealed", ErrProtocolViolation)
	}

	order := ShuffledOrder(d.serverSeed, clientSeed)
	deck, err := poker.NewDeck(order)
	if err != nil {
		return nil, ProofBundle{}, err
	}

	d.clientSeed = clientSeed
	d.deck = deck
	d.state = StateRevealed

	return deck, ProofBundle{
		ServerSeed:     d.serverSeed,
		ClientSeed:     clientSeed,
		Commitment:     d.commitment,
		CombinedDigest: combinedDigest(d.serverSeed, clientSeed),
		DeckOrder:      order,
	}, nil
}

// Verify recomputes the commitment digest and the deck order and checks
// both against the claims. Any single-bit change to either seed flips
// the result.
func Verify(commitment Commitment, serverSeed, clientSeed string, claimedOrder []poker.Card) bool {
	want := Commit(serverSeed)
	if commitment.Version != want.Version {
		return false
	}
	if subtle.ConstantTimeCompare([]byte(commitment.Digest), []byte(want.Digest)) != 1 {
		return false
	}
	order := ShuffledOrder(serverSeed, clientSeed)
	if len(claimedOrder) != len(order) {
		return false
	}
	for i := range order {
		if order[i] != claimedOrder[i] {
			return false
		}
	}
	return true
}

// VerifyProof checks a full proof bundle.
func VerifyProof(p ProofBundle) bool {
	if p.CombinedDigest != combinedDigest(p.ServerSeed, p.ClientSeed) {
		return false
	}
	return Verify(p.Commitment, p.ServerSeed, p.ClientSeed, p.DeckOrder)
}

func combinedDigest(serverSeed, clientSeed string) string {
	sum := sha256.Sum256([]byte(serverSeed + ":" + clientSeed))
	return hex.EncodeToString(sum[:])
}
