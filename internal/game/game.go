// Package game implements a simplified heads-up hold'em hand: blinds,
// four betting streets with a capped raise ladder, and terminal payoffs
// by fold or showdown. The CFR engine traverses these hands as its game
// tree, and live play drives them with a fairness-protocol deck.
package game

import (
	"errors"
	"fmt"

	"github.com/fairdeck/gtoadvisor/poker"
)

// Street is the betting round within a hand.
type Street uint8

const (
	StreetPreflop Street = iota
	StreetFlop
	StreetTurn
	StreetRiver
	StreetShowdown
)

func (s Street) String() string {
	switch s {
	case StreetPreflop:
		return "preflop"
	case StreetFlop:
		return "flop"
	case StreetTurn:
		return "turn"
	case StreetRiver:
		return "river"
	case StreetShowdown:
		return "showdown"
	default:
		return "unknown"
	}
}

// Action is one move in the betting abstraction.
type Action uint8

const (
	ActionFold Action = iota
	ActionCheck
	ActionCall
	ActionRaiseSmall // half pot
	ActionRaiseBig   // full pot
	ActionAllIn

	actionCount = 6
)

// ActionCount is the size of the action space.
const ActionCount = int(actionCount)

// Actions lists the full action space in canonical order.
func Actions() []Action {
	return []Action{ActionFold, ActionCheck, ActionCall, ActionRaiseSmall, ActionRaiseBig, ActionAllIn}
}

func (a Action) String() string {
	switch a {
	case ActionFold:
		return "fold"
	case ActionCheck:
		return "check"
	case ActionCall:
		return "call"
	case ActionRaiseSmall:
		return "raise-small"
	case ActionRaiseBig:
		return "raise-big"
	case ActionAllIn:
		return "all-in"
	default:
		return "unknown"
	}
}

// Token is the single-character encoding used in betting history keys.
func (a Action) Token() byte {
	switch a {
	case ActionFold:
		return 'f'
	case ActionCheck:
		return 'x'
	case ActionCall:
		return 'c'
	case ActionRaiseSmall:
		return 'r'
	case ActionRaiseBig:
		return 'R'
	case ActionAllIn:
		return 'a'
	default:
		return '?'
	}
}

// ErrIllegalAction is returned when an action is not legal at the
// current decision point. Training treats this as a modeling bug and
// fails loudly.
var ErrIllegalAction = errors.New("game: illegal action")

type playerState struct {
	hole      [2]poker.Card
	stack     int
	committed int // this street
	total     int // whole hand
	folded    bool
	allIn     bool
	acted     bool // this street
}

// HandState is a heads-up hand in progress. Player 0 is the button and
// posts the small blind; player 1 posts the big blind. Not safe for
// concurrent use.
type HandState struct {
	players    [2]playerState
	board      []poker.Card
	street     Street
	active     int // -1 when the hand is over
	currentBet int
	history    []byte
	raises     int
	maxRaises  int
	bigBlind   int
	winner     int // -1 until someone wins by fold
	deck       *poker.Deck
}

// Rules carries the fixed parameters of a hand.
type Rules struct {
	SmallBlind int
	BigBlind   int
	Stack      int
	MaxRaises  int // raise cap per street; bounds the history string
}

// DefaultRules returns the blinds and stack used by training.
func DefaultRules() Rules {
	return Rules{SmallBlind: 5, BigBlind: 10, Stack: 1000, MaxRaises: 2}
}

// NewHandState deals a fresh hand from the deck: two hole cards per
// player, blinds posted, button to act.
func NewHandState(deck *poker.Deck, rules Rules) (*HandState, error) {
	if rules.SmallBlind <= 0 || rules.BigBlind <= rules.SmallBlind || rules.Stack < rules.BigBlind {
		return nil, fmt.Errorf("game: invalid rules %+v", rules)
	}
	if deck.Remaining() < 9 {
		return nil, errors.New("game: deck too short for a hand")
	}

	h := &HandState{
		street:    StreetPreflop,
		active:    0,
		maxRaises: rules.MaxRaises,
		bigBlind:  rules.BigBlind,
		winner:    -1,
		deck:      deck,
	}
	for i := range h.players {
		cards := deck.Deal(2)
		h.players[i] = playerState{hole: [2]poker.Card{cards[0], cards[1]}, stack: rules.Stack}
	}

	h.post(0, rules.SmallBlind)
	h.post(1, rules.BigBlind)
	h.currentBet = rules.BigBlind
	return h, nil
}

func (h *HandState) post(p, amount int) {
	if amount > h.players[p].stack {
		amount = h.players[p].stack
	}
	h.players[p].stack -= amount
	h.players[p].committed += amount
	h.players[p].total += amount
	if h.players[p].stack == 0 {
		h.players[p].allIn = true
	}
}

// Street returns the current betting round.
func (h *HandState) Street() Street { return h.street }

// ActivePlayer returns whose turn it is, or -1 when the hand is over.
func (h *HandState) ActivePlayer() int { return h.active }

// Board returns the community cards dealt so far.
func (h *HandState) Board() []poker.Card {
	return append([]poker.Card(nil), h.board...)
}

// HoleCards returns a player's private cards.
func (h *HandState) HoleCards(player int) [2]poker.Card {
	return h.players[player].hole
}

// Pot returns the total chips committed by both players.
func (h *HandState) Pot() int {
	return h.players[0].total + h.players[1].total
}

// ToCall returns what the player owes to continue.
func (h *HandState) ToCall(player int) int {
	return h.currentBet - h.players[player].committed
}

// Stack returns a player's remaining chips.
func (h *HandState) Stack(player int) int {
	return h.players[player].stack
}

// History returns the betting history token string, with streets
// separated by '/'.
func (h *HandState) History() string {
	return string(h.history)
}

// IsComplete reports whether the hand has reached a terminal state.
func (h *HandState) IsComplete() bool {
	return h.winner >= 0 || h.street == StreetShowdown
}

// LegalActions returns the actions available to the active player.
func (h *HandState) LegalActions() []Action {
	if h.IsComplete() || h.active < 0 {
		return nil
	}
	p := &h.players[h.active]
	toCall := h.ToCall(h.active)

	actions := make([]Action, 0, actionCount)
	if toCall > 0 {
		actions = append(actions, ActionFold, ActionCall)
	} else {
		actions = append(actions, ActionCheck)
	}
	canRaise := h.raises < h.maxRaises && !h.players[1-h.active].allIn && p.stack > toCall
	if canRaise {
		actions = append(actions, ActionRaiseSmall, ActionRaiseBig, ActionAllIn)
	}
	return actions
}

func (h *HandState) isLegal(a Action) bool {
	for _, la := range h.LegalActions() {
		if la == a {
			return true
		}
	}
	return false
}

// Apply executes the active player's action, advancing streets (and
// dealing board cards) as betting rounds close.
func (h *HandState) Apply(a Action) error {
	if h.IsComplete() || h.active < 0 {
		return fmt.Errorf("%w: hand is complete", ErrIllegalAction)
	}
	if !h.isLegal(a) {
		return fmt.Errorf("%w: %s with %s to call %d", ErrIllegalAction, a, h.street, h.ToCall(h.active))
	}

	p := h.active
	opp := 1 - p
	toCall := h.ToCall(p)

	switch a {
	case ActionFold:
		h.players[p].folded = true
		h.winner = opp
		h.history = append(h.history, a.Token())
		h.active = -1
		return nil
	case ActionCheck:
		// Nothing to pay.
	case ActionCall:
		h.post(p, toCall)
	case ActionRaiseSmall:
		h.raiseBy(p, toCall, max(h.bigBlind, h.Pot()/2))
	case ActionRaiseBig:
		h.raiseBy(p, toCall, max(h.bigBlind, h.Pot()))
	case ActionAllIn:
		h.post(p, h.players[p].stack)
		if h.players[p].committed > h.currentBet {
			h.currentBet = h.players[p].committed
			h.raises++
		}
	}

	h.players[p].acted = true
	h.history = append(h.history, a.Token())

	// Street closes when the opponent owes nothing and has already
	// acted (or cannot act). The big blind's preflop option falls out
	// of the acted flag: blinds are posts, not actions.
	oppDone := h.players[opp].allIn || (h.players[opp].committed == h.currentBet && h.players[opp].acted)
	if h.players[p].allIn && h.players[p].committed < h.currentBet {
		// Short all-in call: no further action possible.
		oppDone = true
	}
	if oppDone {
		h.advanceStreet()
	} else {
		h.active = opp
	}
	return nil
}

func (h *HandState) raiseBy(p, toCall, raise int) {
	amount := toCall + raise
	if amount >= h.players[p].stack {
		amount = h.players[p].stack
	}
	h.post(p, amount)
	if h.players[p].committed > h.currentBet {
		h.currentBet = h.players[p].committed
		h.raises++
	}
}

func (h *HandState) advanceStreet() {
	for {
		if h.street == StreetRiver {
			h.street = StreetShowdown
			h.active = -1
			return
		}
		h.street++
		switch h.street {
		case StreetFlop:
			h.board = append(h.board, h.deck.Deal(3)...)
		case StreetTurn, StreetRiver:
			h.board = append(h.board, h.deck.DealOne())
		}
		h.history = append(h.history, '/')

		h.currentBet = 0
		h.raises = 0
		for i := range h.players {
			h.players[i].committed = 0
			h.players[i].acted = false
		}

		// With a player all-in there is no more betting; run the board
		// out to showdown.
		if h.players[0].allIn || h.players[1].allIn {
			continue
		}
		// Big blind acts first on every postflop street heads-up.
		h.active = 1
		return
	}
}

// Utility returns the hand's chip outcome for the player, relative to
// their starting stack. Only valid on complete hands. Uncalled bet
// portions are refunded before settling.
func (h *HandState) Utility(player int) float64 {
	opp := 1 - player
	matched := min(h.players[player].total, h.players[opp].total)

	if h.winner >= 0 {
		if h.winner == player {
			return float64(matched)
		}
		return float64(-matched)
	}

	// Showdown.
	switch poker.CompareHands(h.showdownRank(player), h.showdownRank(opp)) {
	case 1:
		return float64(matched)
	case -1:
		return float64(-matched)
	default:
		return 0
	}
}

// ShowdownRank evaluates a player's best hand against the full board.
func (h *HandState) showdownRank(player int) poker.HandRank {
	hand := poker.NewHand(h.players[player].hole[0], h.players[player].hole[1])
	for _, c := range h.board {
		hand.AddCard(c)
	}
	return poker.Evaluate7(hand)
}

// Winner returns the showdown or fold winner (-1 for a chop). Only
// valid on complete hands.
func (h *HandState) Winner() int {
	if h.winner >= 0 {
		return h.winner
	}
	switch poker.CompareHands(h.showdownRank(0), h.showdownRank(1)) {
	case 1:
		return 0
	case -1:
		return 1
	default:
		return -1
	}
}

// Clone deep-copies the hand, including the remaining deck, so tree
// traversal can branch without mutating the parent node.
func (h *HandState) Clone() *HandState {
	clone := *h
	clone.board = append([]poker.Card(nil), h.board...)
	clone.history = append([]byte(nil), h.history...)
	deckCopy := *h.deck
	clone.deck = &deckCopy
	return &clone
}
