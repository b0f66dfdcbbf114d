package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pokerlab/pokercoach/internal/advice"
	"github.com/pokerlab/pokercoach/internal/coach"
	"github.com/pokerlab/pokercoach/internal/equity"
	"github.com/pokerlab/pokercoach/internal/session"
	"github.com/pokerlab/pokercoach/internal/tui"
)

type PlayCmd struct {
	Players  int     `help:"Number of players at the table" default:"6"`
	Position string  `help:"Your position" enum:"Small Blind,Big Blind,Early,Middle,Late" default:"Middle"`
	Pot      float64 `help:"Starting pot size" default:"100"`
}

func (c *PlayCmd) Run(cli *Context) error {
	ledger, err := session.LoadLedger(cli.Config.Bankroll.LedgerPath, cli.Config.Bankroll.Start)
	if err != nil {
		return err
	}

	advisor := buildAdvisor(cli)

	ch := coach.New(equity.New(), advisor, ledger, cli.Logger, coach.Options{
		Iterations: cli.Config.Simulation.Iterations,
		Workers:    cli.Config.Simulation.Workers,
		Seed:       cli.Config.Simulation.Seed,
	})

	model := tui.New(ch, cli.Logger, c.Players, c.Position, c.Pot)
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// buildAdvisor picks the configured advice backend, falling back to the
// deterministic rule engine whenever Bedrock is unavailable so the coach
// keeps working offline.
func buildAdvisor(cli *Context) advice.Generator {
	if cli.Config.Advice.Provider == "bedrock" {
		b, err := advice.NewBedrock(context.Background(), advice.BedrockConfig{
			Region:    cli.Config.Advice.Region,
			ModelID:   cli.Config.Advice.Model,
			MaxTokens: cli.Config.Advice.MaxTokens,
		})
		if err == nil {
			return b
		}
		cli.Logger.Warn("bedrock unavailable, using rule-based advice", "err", err)
	}
	return advice.Rules{}
}
