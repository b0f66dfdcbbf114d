// Package equity estimates showdown win probability by Monte Carlo
// simulation: each trial completes the board from a fresh deck, deals the
// opponents, evaluates every 7-card hand and tallies win/tie/loss.
package equity

import (
	"context"
	"fmt"
	rand "math/rand/v2"
	"time"

	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/pokerlab/pokercoach/internal/deck"
	"github.com/pokerlab/pokercoach/internal/evaluator"
	"github.com/pokerlab/pokercoach/internal/randutil"
)

// InvalidConfigError reports a simulation request that can never run:
// non-positive counts or a malformed hand or board.
type InvalidConfigError struct {
	Field  string
	Reason string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Request describes one equity simulation.
type Request struct {
	Hand       []deck.Card // exactly two hole cards
	Board      []deck.Card // 0, 3, 4 or 5 known community cards
	Opponents  int
	Iterations int
	Seed       int64         // 0 derives a seed from the wall clock
	Workers    int           // <=1 runs sequentially
	Deadline   time.Duration // 0 means no deadline
}

// Result aggregates the trial outcomes. Percentages are taken over the
// completed iteration count, and LosePct is derived from the other two so
// the three always close to 100.
type Result struct {
	WinPct     float64
	TiePct     float64
	LosePct    float64
	Iterations int
	Opponents  int
}

// Simulator runs equity simulations. The zero value is not usable; call New.
type Simulator struct {
	clock quartz.Clock
}

// Option configures a Simulator
type Option func(*Simulator)

// WithClock substitutes the clock used for deadline checks (tests pass a
// quartz mock).
func WithClock(clock quartz.Clock) Option {
	return func(s *Simulator) { s.clock = clock }
}

// New creates a Simulator
func New(opts ...Option) *Simulator {
	s := &Simulator{clock: quartz.NewReal()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Simulate runs a simulation with a default Simulator
func Simulate(ctx context.Context, req Request) (Result, error) {
	return New().Simulate(ctx, req)
}

// Simulate validates the request eagerly, then runs the trials. Context
// cancellation or an elapsed deadline stops between trials and returns the
// partial aggregate with the completed iteration count; a partial Monte
// Carlo estimate is still valid, just wider.
func (s *Simulator) Simulate(ctx context.Context, req Request) (Result, error) {
	if err := validate(req); err != nil {
		return Result{}, err
	}

	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var deadlineAt time.Time
	if req.Deadline > 0 {
		deadlineAt = s.clock.Now().Add(req.Deadline)
	}

	var wins, ties, done int
	if req.Workers <= 1 {
		var err error
		wins, ties, done, err = s.runTrials(ctx, req, randutil.New(seed), req.Iterations, deadlineAt)
		if err != nil {
			return Result{}, err
		}
	} else {
		// Fan out over workers with independent RNG streams and decks.
		// The reduction is a commutative sum, so merge order is free.
		rngs := randutil.Streams(seed, req.Workers)
		type partial struct{ wins, ties, done int }
		partials := make([]partial, req.Workers)

		g, gctx := errgroup.WithContext(ctx)
		per := req.Iterations / req.Workers
		extra := req.Iterations % req.Workers
		for w := 0; w < req.Workers; w++ {
			iters := per
			if w < extra {
				iters++
			}
			rng := rngs[w]
			idx := w
			g.Go(func() error {
				w, t, d, err := s.runTrials(gctx, req, rng, iters, deadlineAt)
				partials[idx] = partial{wins: w, ties: t, done: d}
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return Result{}, err
		}
		for _, p := range partials {
			wins += p.wins
			ties += p.ties
			done += p.done
		}
	}

	res := Result{Iterations: done, Opponents: req.Opponents}
	if done > 0 {
		res.WinPct = 100 * float64(wins) / float64(done)
		res.TiePct = 100 * float64(ties) / float64(done)
		res.LosePct = 100 - res.WinPct - res.TiePct
	}
	return res, nil
}

func (s *Simulator) runTrials(ctx context.Context, req Request, rng *rand.Rand, iterations int, deadlineAt time.Time) (wins, ties, done int, err error) {
	known := make([]deck.Card, 0, len(req.Hand)+len(req.Board))
	known = append(known, req.Hand...)
	known = append(known, req.Board...)

	hand := make([]deck.Card, 7)
	copy(hand, req.Hand)

	for i := 0; i < iterations; i++ {
		select {
		case <-ctx.Done():
			return wins, ties, done, nil
		default:
		}
		if !deadlineAt.IsZero() && s.clock.Now().After(deadlineAt) {
			return wins, ties, done, nil
		}

		d, err := deck.New(known, rng)
		if err != nil {
			return wins, ties, done, err
		}

		fill, err := d.Draw(5 - len(req.Board))
		if err != nil {
			return wins, ties, done, err
		}
		copy(hand[2:], req.Board)
		copy(hand[2+len(req.Board):], fill)

		user, err := evaluator.Evaluate(hand)
		if err != nil {
			return wins, ties, done, err
		}

		best := user.Score
		bestShared := false
		opp := make([]deck.Card, 7)
		copy(opp[2:], hand[2:])
		for o := 0; o < req.Opponents; o++ {
			hole, err := d.Draw(2)
			if err != nil {
				// Should be unreachable given the precondition; a
				// misconfigured caller still gets the typed error.
				return wins, ties, done, err
			}
			copy(opp[:2], hole)
			res, err := evaluator.Evaluate(opp)
			if err != nil {
				return wins, ties, done, err
			}
			switch res.Score.Compare(best) {
			case 1:
				best = res.Score
				bestShared = false
			case 0:
				bestShared = true
			}
		}

		if user.Score == best {
			if bestShared {
				ties++
			} else {
				wins++
			}
		}
		done++
	}
	return wins, ties, done, nil
}

func validate(req Request) error {
	if len(req.Hand) != 2 {
		return &InvalidConfigError{Field: "hand", Reason: fmt.Sprintf("must contain exactly 2 cards, got %d", len(req.Hand))}
	}
	switch len(req.Board) {
	case 0, 3, 4, 5:
	default:
		return &InvalidConfigError{Field: "board", Reason: fmt.Sprintf("must contain 0, 3, 4 or 5 cards, got %d", len(req.Board))}
	}
	if req.Opponents < 1 {
		return &InvalidConfigError{Field: "opponents", Reason: "must be at least 1"}
	}
	if req.Iterations < 1 {
		return &InvalidConfigError{Field: "iterations", Reason: "must be at least 1"}
	}

	var seen deck.CardSet
	for _, card := range append(append([]deck.Card{}, req.Hand...), req.Board...) {
		if seen.Contains(card) {
			return &deck.DuplicateCardError{Card: card}
		}
		seen.Add(card)
	}

	// Every trial would fail identically, so refuse before running any.
	if known := 2 + len(req.Board); known+2*req.Opponents > 52 {
		return &deck.InsufficientCardsError{
			Requested: (5 - len(req.Board)) + 2*req.Opponents,
			Remaining: 52 - known,
		}
	}
	return nil
}
