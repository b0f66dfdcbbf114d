// Package statistics provides the error bounds and expected-value figures
// derived from simulation results.
package statistics

import "math"

// WinRate summarises binomial trial counts for a simulated win percentage.
type WinRate struct {
	Wins   int
	Ties   int
	Trials int
}

// FromPercents reconstructs trial counts from result percentages
func FromPercents(winPct, tiePct float64, trials int) WinRate {
	return WinRate{
		Wins:   int(math.Round(winPct / 100 * float64(trials))),
		Ties:   int(math.Round(tiePct / 100 * float64(trials))),
		Trials: trials,
	}
}

// WinPct returns the win percentage
func (w WinRate) WinPct() float64 {
	if w.Trials == 0 {
		return 0
	}
	return 100 * float64(w.Wins) / float64(w.Trials)
}

// StdError returns the standard error of the win percentage
func (w WinRate) StdError() float64 {
	if w.Trials == 0 {
		return 0
	}
	p := float64(w.Wins) / float64(w.Trials)
	return 100 * math.Sqrt(p*(1-p)/float64(w.Trials))
}

// ConfidenceInterval95 returns the 95% confidence interval for the win
// percentage, clamped to [0, 100].
func (w WinRate) ConfidenceInterval95() (float64, float64) {
	pct := w.WinPct()
	margin := 1.96 * w.StdError()
	return math.Max(0, pct-margin), math.Min(100, pct+margin)
}

// EVPoint is one point on the expected-value-vs-pot curve.
type EVPoint struct {
	Pot float64
	EV  float64
}

// EVCurve computes expected value across pot sizes for a given win
// percentage, assuming a call of half the pot when behind.
func EVCurve(winPct float64, pots []float64) []EVPoint {
	p := winPct / 100
	points := make([]EVPoint, len(pots))
	for i, pot := range pots {
		points[i] = EVPoint{Pot: pot, EV: p*pot - (1-p)*pot/2}
	}
	return points
}

// DefaultPots returns the standard pot sizes charted by the coach
func DefaultPots() []float64 {
	pots := make([]float64, 0, 10)
	for pot := 10.0; pot <= 100; pot += 10 {
		pots = append(pots, pot)
	}
	return pots
}
