package advice

import (
	"context"
	"fmt"

	"github.com/pokerlab/pokercoach/internal/session"
)

// Action is a deterministic play recommendation.
type Action string

const (
	Raise     Action = "Raise"
	Call      Action = "Call"
	Bluff     Action = "Bluff"
	Fold      Action = "Fold"
	AllIn     Action = "All-in"
	CheckFold Action = "Check/Fold"
)

// Rules is a deterministic threshold-based recommender. It is independently
// callable and also serves as the offline fallback when no text-generation
// backend is configured.
type Rules struct{}

// Recommend maps a spot to an action by win-rate thresholds per stage.
func (Rules) Recommend(spot Context) Action {
	win := spot.WinPct
	switch spot.Stage {
	case session.PreFlop:
		// Baseline expectation is half the pot-odds break-even rate.
		potOdds := 1.0 / float64(spot.NumPlayers+1)
		evThreshold := 0.5 * potOdds * 100
		switch {
		case win > 60:
			return Raise
		case win > evThreshold:
			return Call
		case win > 15:
			return Bluff
		default:
			return Fold
		}
	case session.Flop:
		switch {
		case win > 60:
			return Raise
		case win > 30:
			return Call
		default:
			return Fold
		}
	case session.Turn:
		switch {
		case win > 70:
			return Raise
		case win > 35:
			return Call
		default:
			return Fold
		}
	default: // river and later
		switch {
		case win > 85:
			return AllIn
		case win > 60:
			return Raise
		case win < 20:
			return Bluff
		default:
			return CheckFold
		}
	}
}

// Generate implements Generator with a one-line deterministic summary.
func (r Rules) Generate(_ context.Context, spot Context) (string, error) {
	return fmt.Sprintf("Recommended action: %s (%s, win rate %.2f%%, pot $%.2f).",
		r.Recommend(spot), spot.Stage, spot.WinPct, spot.PotSize), nil
}
