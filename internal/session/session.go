// Package session owns the state of one coached hand from pre-flop to
// settlement. A Session is created per hand and passed explicitly through
// the stage transitions; there is no ambient shared state.
package session

import (
	"fmt"

	"github.com/pokerlab/pokercoach/internal/deck"
	"github.com/pokerlab/pokercoach/internal/equity"
	"github.com/pokerlab/pokercoach/internal/handid"
)

// Stage identifies a point in the betting-round workflow.
type Stage int

const (
	PreFlop Stage = iota
	Flop
	Turn
	River
	Settled
)

// String returns the display name of the stage
func (s Stage) String() string {
	switch s {
	case PreFlop:
		return "Pre-flop"
	case Flop:
		return "Flop"
	case Turn:
		return "Turn"
	case River:
		return "River"
	case Settled:
		return "Settled"
	default:
		return "Unknown"
	}
}

// WrongStageError reports a transition attempted out of order.
type WrongStageError struct {
	Current  Stage
	Expected Stage
}

func (e *WrongStageError) Error() string {
	return fmt.Sprintf("hand is at %s, expected %s", e.Current, e.Expected)
}

// Session holds one hand in progress. The board only ever grows (3, then 4,
// then 5 cards) within the hand's lifecycle.
type Session struct {
	id         string
	hand       []deck.Card
	handText   string
	board      []deck.Card
	known      deck.CardSet
	stage      Stage
	pot        float64
	numPlayers int
	position   string
	results    map[Stage]equity.Result
}

// New starts a hand from the player's two-card input text.
func New(handText, position string, numPlayers int, pot float64) (*Session, error) {
	if numPlayers < 2 {
		return nil, fmt.Errorf("need at least 2 players, got %d", numPlayers)
	}
	hand, err := deck.ParseCards(handText)
	if err != nil {
		return nil, err
	}
	if len(hand) != 2 {
		return nil, fmt.Errorf("hand must contain exactly 2 cards, got %d", len(hand))
	}
	return &Session{
		id:         handid.Generate(),
		hand:       hand,
		handText:   deck.FormatCards(hand),
		known:      deck.NewCardSet(hand),
		stage:      PreFlop,
		pot:        pot,
		numPlayers: numPlayers,
		position:   position,
		results:    make(map[Stage]equity.Result),
	}, nil
}

// ID returns the hand identifier used for the ledger record
func (s *Session) ID() string { return s.id }

// Stage returns the current workflow stage
func (s *Session) Stage() Stage { return s.stage }

// Hand returns the player's hole cards
func (s *Session) Hand() []deck.Card { return s.hand }

// HandText returns the canonical text of the hole cards
func (s *Session) HandText() string { return s.handText }

// Board returns the community cards revealed so far
func (s *Session) Board() []deck.Card { return s.board }

// Pot returns the current pot size
func (s *Session) Pot() float64 { return s.pot }

// SetPot updates the pot size for the current stage
func (s *Session) SetPot(pot float64) { s.pot = pot }

// NumPlayers returns the number of players at the table
func (s *Session) NumPlayers() int { return s.numPlayers }

// Opponents returns the number of opponents simulated against
func (s *Session) Opponents() int { return s.numPlayers - 1 }

// Position returns the player's table position label
func (s *Session) Position() string { return s.position }

// AddFlop reveals the three flop cards and moves the hand to the flop.
func (s *Session) AddFlop(text string) error {
	if s.stage != PreFlop {
		return &WrongStageError{Current: s.stage, Expected: PreFlop}
	}
	cards, err := s.parseBoardCards(text, 3)
	if err != nil {
		return err
	}
	s.board = append(s.board, cards...)
	s.stage = Flop
	return nil
}

// AddTurn reveals the turn card.
func (s *Session) AddTurn(text string) error {
	if s.stage != Flop {
		return &WrongStageError{Current: s.stage, Expected: Flop}
	}
	cards, err := s.parseBoardCards(text, 1)
	if err != nil {
		return err
	}
	s.board = append(s.board, cards...)
	s.stage = Turn
	return nil
}

// AddRiver reveals the river card.
func (s *Session) AddRiver(text string) error {
	if s.stage != Turn {
		return &WrongStageError{Current: s.stage, Expected: Turn}
	}
	cards, err := s.parseBoardCards(text, 1)
	if err != nil {
		return err
	}
	s.board = append(s.board, cards...)
	s.stage = River
	return nil
}

// Settle marks the hand finished. Further transitions fail.
func (s *Session) Settle() {
	s.stage = Settled
}

// RecordResult stores the simulation result computed at a stage
func (s *Session) RecordResult(stage Stage, res equity.Result) {
	s.results[stage] = res
}

// Result returns the simulation result recorded at a stage
func (s *Session) Result(stage Stage) (equity.Result, bool) {
	res, ok := s.results[stage]
	return res, ok
}

func (s *Session) parseBoardCards(text string, want int) ([]deck.Card, error) {
	cards, err := deck.ParseCards(text)
	if err != nil {
		return nil, err
	}
	if len(cards) != want {
		return nil, fmt.Errorf("expected %d card(s), got %d", want, len(cards))
	}
	// Validate the whole input before touching the known set, so a rejected
	// transition leaves no partial state behind and the input can be retried.
	for _, card := range cards {
		if s.known.Contains(card) {
			return nil, &deck.DuplicateCardError{Card: card}
		}
	}
	for _, card := range cards {
		s.known.Add(card)
	}
	return cards, nil
}
