// Package advice produces play recommendations for a coached hand. Two
// independent collaborators implement the same narrow interface: a remote
// text-generation call (Bedrock) and a deterministic rule engine. The
// equity core never depends on either succeeding.
package advice

import (
	"context"
	"fmt"

	"github.com/pokerlab/pokercoach/internal/session"
)

// Context carries everything a generator needs about the current spot.
type Context struct {
	CardsText  string
	BoardText  string
	Position   string
	NumPlayers int
	Stage      session.Stage
	WinPct     float64
	PotSize    float64
}

// Generator turns a spot into free-form advice text. Implementations may be
// slow or fail; callers must treat the result as optional.
type Generator interface {
	Generate(ctx context.Context, spot Context) (string, error)
}

// Prompt builds the stage-specific coaching prompt sent to the text model.
func Prompt(spot Context) string {
	switch spot.Stage {
	case session.PreFlop:
		return fmt.Sprintf(
			"You are an aggressive Game Theory Optimal (GTO) poker coach with deep knowledge of exploitative and optimal strategies. "+
				"The user holds %s in %s position at a %d-handed table. The pre-flop win rate is %.2f%%. "+
				"Given this, provide a technically grounded recommendation to Raise, Call, Bluff, or Fold. "+
				"Justify the action using GTO concepts such as hand range dominance, position equity, fold equity, and expected value (EV). "+
				"Also evaluate if this is a good spot for a bluff based on the user's image and position.",
			spot.CardsText, spot.Position, spot.NumPlayers, spot.WinPct)
	case session.Flop:
		return fmt.Sprintf(
			"User has %s in %s position. Pot after flop is %.2f. Flop is %s. Win chance: %.2f%%. "+
				"Provide a technically sound recommendation to Raise, Call, or Fold. "+
				"Justify with concepts like range interaction, board texture, fold equity, and expected value. "+
				"Is this a spot for semi-bluffing based on the board dynamics?",
			spot.CardsText, spot.Position, spot.PotSize, spot.BoardText, spot.WinPct)
	case session.Turn:
		return fmt.Sprintf(
			"User has %s on turn. Board: %s. Pot: $%.2f. Win %%: %.2f%%. "+
				"Provide a detailed technical recommendation using hand strength vs range, pot odds, and bluff equity. "+
				"Should the user semi-bluff or slowplay?",
			spot.CardsText, spot.BoardText, spot.PotSize, spot.WinPct)
	default:
		return fmt.Sprintf(
			"User's hand: %s. Final board: %s. Final pot size is %.2f. Win %%: %.2f%%. "+
				"Provide a technical recommendation for post-river play. Consider opponent ranges, bet sizing, bluff catching, "+
				"and whether this is a profitable bluff spot. Justify using GTO principles and EV calculations.",
			spot.CardsText, spot.BoardText, spot.PotSize, spot.WinPct)
	}
}
