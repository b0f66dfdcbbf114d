// Package coach orchestrates one coached hand: it advances the session
// stage by stage, runs the equity simulation with the accumulated board,
// evaluates current hand strength and asks a Generator for advice.
package coach

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pokerlab/pokercoach/internal/advice"
	"github.com/pokerlab/pokercoach/internal/deck"
	"github.com/pokerlab/pokercoach/internal/equity"
	"github.com/pokerlab/pokercoach/internal/evaluator"
	"github.com/pokerlab/pokercoach/internal/session"
	"github.com/pokerlab/pokercoach/internal/statistics"
)

// Options configures a Coach.
type Options struct {
	Iterations int
	Workers    int
	Seed       int64
	Deadline   time.Duration
}

// Coach drives coached hands against the simulator and advice generator.
type Coach struct {
	sim     *equity.Simulator
	advisor advice.Generator
	ledger  *session.Ledger
	logger  *log.Logger
	opts    Options
}

// New creates a Coach. The ledger may be nil when settlement bookkeeping is
// not wanted (e.g. one-shot CLI runs).
func New(sim *equity.Simulator, advisor advice.Generator, ledger *session.Ledger, logger *log.Logger, opts Options) *Coach {
	if opts.Iterations <= 0 {
		opts.Iterations = 10000
	}
	return &Coach{
		sim:     sim,
		advisor: advisor,
		ledger:  ledger,
		logger:  logger.WithPrefix("coach"),
		opts:    opts,
	}
}

// StageReport is what the workflow layer displays after each stage.
type StageReport struct {
	Stage     session.Stage
	Result    equity.Result
	WinRate   statistics.WinRate
	Strength  string // label of the current best hand, when a board is out
	Advice    string
	AdviceErr error // advice failures never fail the stage
	EV        []statistics.EVPoint
}

// Start begins a hand from the player's hole card input and reports the
// pre-flop spot.
func (c *Coach) Start(ctx context.Context, handText, position string, numPlayers int, pot float64) (*session.Session, *StageReport, error) {
	s, err := session.New(handText, position, numPlayers, pot)
	if err != nil {
		return nil, nil, err
	}
	report, err := c.report(ctx, s)
	if err != nil {
		return nil, nil, err
	}
	return s, report, nil
}

// AdvanceFlop reveals the flop and reports the new spot.
func (c *Coach) AdvanceFlop(ctx context.Context, s *session.Session, boardText string, pot float64) (*StageReport, error) {
	if err := s.AddFlop(boardText); err != nil {
		return nil, err
	}
	s.SetPot(pot)
	return c.report(ctx, s)
}

// AdvanceTurn reveals the turn card and reports the new spot.
func (c *Coach) AdvanceTurn(ctx context.Context, s *session.Session, cardText string, pot float64) (*StageReport, error) {
	if err := s.AddTurn(cardText); err != nil {
		return nil, err
	}
	s.SetPot(pot)
	return c.report(ctx, s)
}

// AdvanceRiver reveals the river card and reports the new spot.
func (c *Coach) AdvanceRiver(ctx context.Context, s *session.Session, cardText string, pot float64) (*StageReport, error) {
	if err := s.AddRiver(cardText); err != nil {
		return nil, err
	}
	s.SetPot(pot)
	return c.report(ctx, s)
}

// Settle records the hand outcome in the ledger and tears the session down.
func (c *Coach) Settle(s *session.Session, outcome session.Outcome, delta float64) (session.Record, error) {
	rec := session.Record{
		ID:            s.ID(),
		Hand:          s.HandText(),
		Outcome:       outcome,
		BankrollDelta: delta,
	}
	s.Settle()
	if c.ledger != nil {
		if err := c.ledger.Append(rec); err != nil {
			return session.Record{}, err
		}
		c.logger.Info("hand settled", "id", rec.ID, "outcome", rec.Outcome, "bankroll", c.ledger.Bankroll)
	}
	return rec, nil
}

// Bankroll returns the current bankroll, or 0 without a ledger
func (c *Coach) Bankroll() float64 {
	if c.ledger == nil {
		return 0
	}
	return c.ledger.Bankroll
}

func (c *Coach) report(ctx context.Context, s *session.Session) (*StageReport, error) {
	stage := s.Stage()

	res, err := c.sim.Simulate(ctx, equity.Request{
		Hand:       s.Hand(),
		Board:      s.Board(),
		Opponents:  s.Opponents(),
		Iterations: c.opts.Iterations,
		Seed:       c.opts.Seed,
		Workers:    c.opts.Workers,
		Deadline:   c.opts.Deadline,
	})
	if err != nil {
		return nil, err
	}
	s.RecordResult(stage, res)
	c.logger.Debug("simulated stage",
		"stage", stage, "win", res.WinPct, "tie", res.TiePct, "iterations", res.Iterations)

	report := &StageReport{
		Stage:   stage,
		Result:  res,
		WinRate: statistics.FromPercents(res.WinPct, res.TiePct, res.Iterations),
		EV:      statistics.EVCurve(res.WinPct, statistics.DefaultPots()),
	}

	if len(s.Board()) >= 3 {
		cards := append(append([]deck.Card{}, s.Hand()...), s.Board()...)
		if eval, err := evaluator.Evaluate(cards); err == nil {
			report.Strength = eval.Class.String()
		}
	}

	if c.advisor != nil {
		spot := advice.Context{
			CardsText:  s.HandText(),
			BoardText:  deck.FormatCards(s.Board()),
			Position:   s.Position(),
			NumPlayers: s.NumPlayers(),
			Stage:      stage,
			WinPct:     res.WinPct,
			PotSize:    s.Pot(),
		}
		text, err := c.advisor.Generate(ctx, spot)
		if err != nil {
			c.logger.Warn("advice generation failed", "stage", stage, "err", err)
			report.AdviceErr = err
		} else {
			report.Advice = text
		}
	}
	return report, nil
}
