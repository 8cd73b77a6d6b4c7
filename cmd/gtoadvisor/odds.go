package main

import (
	"fmt"
	rand "math/rand/v2"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/fairdeck/gtoadvisor/internal/equity"
	"github.com/fairdeck/gtoadvisor/internal/randutil"
	"github.com/fairdeck/gtoadvisor/poker"
)

var (
	oddsHandStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	oddsWinStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	oddsLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))
)

// OddsCmd estimates equity for a hand against an opponent range.
type OddsCmd struct {
	Hand     string `arg:"" help:"Hero hole cards, e.g. 'AsKd'"`
	Board    string `short:"b" help:"Community cards dealt so far, e.g. 'Td7s8h'"`
	Opponent string `short:"o" enum:"random,tight,loose" default:"random" help:"Opponent range model"`
	Samples  int    `short:"n" default:"100000" help:"Monte Carlo sample count"`
	Seed     *int64 `help:"Random seed for reproducible results"`
}

func (c *OddsCmd) Run(cli *CLI) error {
	hole, err := poker.ParseCards(c.Hand)
	if err != nil {
		return fmt.Errorf("parse hand: %w", err)
	}
	if len(hole) != 2 {
		return fmt.Errorf("hand must contain exactly 2 cards, got %d", len(hole))
	}

	var board []poker.Card
	if c.Board != "" {
		board, err = poker.ParseCards(c.Board)
		if err != nil {
			return fmt.Errorf("parse board: %w", err)
		}
		if len(board) > 5 {
			return fmt.Errorf("board cannot have more than 5 cards")
		}
	}

	known := poker.NewHand(hole...)
	if known.CountCards() != 2 {
		return fmt.Errorf("hand %s repeats a card", c.Hand)
	}
	for _, card := range board {
		if known.HasCard(card) {
			return fmt.Errorf("duplicate card %s between hand and board", card)
		}
		known.AddCard(card)
	}

	var opponent equity.Range
	switch c.Opponent {
	case "tight":
		opponent = equity.TightRange{}
	case "loose":
		opponent = equity.LooseRange{}
	default:
		opponent = equity.RandomRange{}
	}

	var rng *rand.Rand
	if c.Seed != nil {
		rng = randutil.New(*c.Seed)
	}

	start := time.Now()
	eq := equity.Estimate(hole, board, opponent, c.Samples, rng)
	elapsed := time.Since(start)

	fmt.Printf("%s %s\n", oddsLabelStyle.Render("hand:"), oddsHandStyle.Render(c.Hand))
	if c.Board != "" {
		fmt.Printf("%s %s\n", oddsLabelStyle.Render("board:"), oddsHandStyle.Render(c.Board))
	}
	fmt.Printf("%s %s vs %s range\n",
		oddsLabelStyle.Render("equity:"),
		oddsWinStyle.Render(fmt.Sprintf("%.2f%%", eq*100)),
		c.Opponent)
	fmt.Printf("%s %d samples in %s\n", oddsLabelStyle.Render("work:"), c.Samples, elapsed.Round(time.Millisecond))
	return nil
}
