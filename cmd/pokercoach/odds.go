package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/pokerlab/pokercoach/internal/deck"
	"github.com/pokerlab/pokercoach/internal/equity"
	"github.com/pokerlab/pokercoach/internal/evaluator"
	"github.com/pokerlab/pokercoach/internal/statistics"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	handStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	winStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	tieStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	loseStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	faintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

type OddsCmd struct {
	Hand       string        `arg:"" help:"Hole cards, e.g. 'Ah Ks'" required:""`
	Board      string        `short:"b" help:"Known community cards, e.g. '7d Jc 2h'"`
	Opponents  int           `short:"o" help:"Number of opponents" default:"1"`
	Iterations int           `short:"i" help:"Number of Monte Carlo iterations" default:"100000"`
	Seed       int64         `help:"Random seed for reproducible results"`
	Workers    int           `short:"w" help:"Parallel workers" default:"1"`
	Timeout    time.Duration `help:"Wall-clock budget; partial results are reported"`
}

func (c *OddsCmd) Run(cli *Context) error {
	hand, err := deck.ParseCards(c.Hand)
	if err != nil {
		return err
	}
	var board []deck.Card
	if c.Board != "" {
		if board, err = deck.ParseCards(c.Board); err != nil {
			return err
		}
	}

	start := time.Now()
	res, err := equity.Simulate(context.Background(), equity.Request{
		Hand:       hand,
		Board:      board,
		Opponents:  c.Opponents,
		Iterations: c.Iterations,
		Seed:       c.Seed,
		Workers:    c.Workers,
		Deadline:   c.Timeout,
	})
	if err != nil {
		return err
	}
	duration := time.Since(start)

	if len(board) > 0 {
		fmt.Printf("%s\n%s\n\n", headerStyle.Render("board"), formatCards(board))
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		headerStyle.Render("hand"),
		headerStyle.Render("win"),
		headerStyle.Render("tie"),
		headerStyle.Render("lose"))
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		handStyle.Render(formatCards(hand)),
		winStyle.Render(fmt.Sprintf("%.2f%%", res.WinPct)),
		tieStyle.Render(fmt.Sprintf("%.2f%%", res.TiePct)),
		loseStyle.Render(fmt.Sprintf("%.2f%%", res.LosePct)))
	w.Flush()

	rate := statistics.FromPercents(res.WinPct, res.TiePct, res.Iterations)
	lo, hi := rate.ConfidenceInterval95()
	fmt.Printf("\n%s\n", faintStyle.Render(fmt.Sprintf("95%% CI [%.2f%%, %.2f%%]", lo, hi)))

	if len(board) >= 3 {
		cards := append(append([]deck.Card{}, hand...), board...)
		eval, err := evaluator.Evaluate(cards)
		if err != nil {
			return err
		}
		fmt.Printf("current hand: %s (score %d)\n", handStyle.Render(eval.Class.String()), eval.Score)
	}

	fmt.Printf("\n%d opponents, %d iterations in %v\n",
		res.Opponents, res.Iterations, duration.Truncate(time.Millisecond))
	return nil
}

func formatCards(cards []deck.Card) string {
	out := ""
	for i, card := range cards {
		if i > 0 {
			out += " "
		}
		if card.IsRed() {
			out += loseStyle.Render(card.Pretty())
		} else {
			out += card.Pretty()
		}
	}
	return out
}
