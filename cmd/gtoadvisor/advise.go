package main

import (
	"fmt"
	rand "math/rand/v2"
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/fairdeck/gtoadvisor/internal/config"
	"github.com/fairdeck/gtoadvisor/internal/game"
	"github.com/fairdeck/gtoadvisor/internal/randutil"
	"github.com/fairdeck/gtoadvisor/internal/solver"
	"github.com/fairdeck/gtoadvisor/poker"
)

var (
	adviseActionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("10"))

	adviseLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("12"))

	adviseDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
)

// AdviseCmd answers one live decision from a trained checkpoint.
type AdviseCmd struct {
	Hand       string `arg:"" help:"Hero hole cards, e.g. 'AsKd'"`
	Board      string `short:"b" help:"Community cards dealt so far"`
	History    string `help:"Betting history tokens so far, e.g. 'cx/r'"`
	Pot        int    `help:"Current pot size" default:"15"`
	ToCall     int    `help:"Chips owed to continue" default:"0"`
	Stack      int    `help:"Hero's remaining stack" default:"1000"`
	Checkpoint string `help:"Checkpoint path (overrides config)"`
	Seed       *int64 `help:"Random seed for reproducible equity"`
}

func (c *AdviseCmd) Run(cli *CLI) error {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}
	if c.Checkpoint != "" {
		cfg.Training.CheckpointPath = c.Checkpoint
	}

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
	}

	table := solver.NewRegretTable()
	maxHistory := cfg.Abstraction.MaxHistoryTokens
	if trainer, loadErr := solver.LoadTrainerFromCheckpoint(cfg.Training.CheckpointPath); loadErr == nil {
		table = trainer.Regrets()
		maxHistory = trainer.Config().MaxHistory
	} else {
		fmt.Println(adviseDimStyle.Render("no checkpoint loaded; advice uses uniform strategy"))
	}
	advisor := solver.NewAdvisor(table, maxHistory)

	var rng *rand.Rand
	if c.Seed != nil {
		rng = randutil.New(*c.Seed)
	}

	key := solver.InfoSetKey{
		Street:  streetForBoard(len(board)),
		Bucket:  poker.CategorizeHoleCards(hole[0], hole[1]),
		History: c.History,
	}
	result := advisor.GetAdvice(solver.AdviceRequest{
		Key:     key,
		Hole:    [2]poker.Card{hole[0], hole[1]},
		Board:   board,
		Actions: legalFor(c.ToCall),
		Pot:     c.Pot,
		ToCall:  c.ToCall,
		Stack:   c.Stack,
		Samples: cfg.Advisor.EquitySamples,
		Rng:     rng,
	})

	fmt.Printf("%s %s\n", adviseLabelStyle.Render("situation:"), key)
	fmt.Printf("%s %.2f%%\n", adviseLabelStyle.Render("equity:"), result.Equity*100)
	fmt.Printf("%s %s\n", adviseLabelStyle.Render("recommended:"), adviseActionStyle.Render(result.Recommended.String()))
	fmt.Println(adviseLabelStyle.Render("per action:"))

	actions := make([]game.Action, 0, len(result.EVPerAction))
	for action := range result.EVPerAction {
		actions = append(actions, action)
	}
	sort.Slice(actions, func(i, j int) bool { return actions[i] < actions[j] })
	for _, action := range actions {
		marker := " "
		if action == result.Recommended {
			marker = "*"
		}
		fmt.Printf("  %s %-12s EV %+8.1f  play %5.1f%%\n",
			marker, action, result.EVPerAction[action], result.Distribution[action]*100)
	}
	return nil
}

// streetForBoard infers the street from how much board is out.
func streetForBoard(n int) game.Street {
	switch {
	case n == 0:
		return game.StreetPreflop
	case n <= 3:
		return game.StreetFlop
	case n == 4:
		return game.StreetTurn
	default:
		return game.StreetRiver
	}
}

// legalFor picks the advisable action set for the spot: facing a bet
// you can fold, call or raise; otherwise check or raise.
func legalFor(toCall int) []game.Action {
	if toCall > 0 {
		return []game.Action{game.ActionFold, game.ActionCall, game.ActionRaiseSmall, game.ActionRaiseBig, game.ActionAllIn}
	}
	return []game.Action{game.ActionCheck, game.ActionRaiseSmall, game.ActionRaiseBig, game.ActionAllIn}
}
