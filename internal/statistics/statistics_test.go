package statistics

import (
	"math"
	"testing"
)

func TestWinPct(t *testing.T) {
	tests := []struct {
		name string
		rate WinRate
		want float64
	}{
		{"even split", WinRate{Wins: 500, Trials: 1000}, 50},
		{"all wins", WinRate{Wins: 100, Trials: 100}, 100},
		{"no wins", WinRate{Wins: 0, Trials: 100}, 0},
		{"no trials", WinRate{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rate.WinPct(); got != tt.want {
				t.Errorf("WinPct() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestFromPercentsRoundTrip(t *testing.T) {
	rate := FromPercents(85.3, 0.5, 10000)
	if rate.Wins != 8530 {
		t.Errorf("wins = %d, want 8530", rate.Wins)
	}
	if rate.Ties != 50 {
		t.Errorf("ties = %d, want 50", rate.Ties)
	}
	if got := rate.WinPct(); math.Abs(got-85.3) > 0.01 {
		t.Errorf("round-trip WinPct() = %f, want 85.3", got)
	}
}

func TestStdError(t *testing.T) {
	// p=0.5 over 10000 trials: sqrt(0.25/10000) = 0.005, so 0.5 in percent.
	rate := WinRate{Wins: 5000, Trials: 10000}
	if got := rate.StdError(); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("StdError() = %f, want 0.5", got)
	}

	if got := (WinRate{}).StdError(); got != 0 {
		t.Errorf("zero trials StdError() = %f, want 0", got)
	}

	// Certainty has no sampling error.
	if got := (WinRate{Wins: 100, Trials: 100}).StdError(); got != 0 {
		t.Errorf("p=1 StdError() = %f, want 0", got)
	}
}

func TestConfidenceInterval95(t *testing.T) {
	rate := WinRate{Wins: 5000, Trials: 10000}
	lo, hi := rate.ConfidenceInterval95()
	if math.Abs(lo-49.02) > 1e-9 || math.Abs(hi-50.98) > 1e-9 {
		t.Errorf("interval = [%f, %f], want [49.02, 50.98]", lo, hi)
	}

	// Near the boundary the interval clamps rather than escaping [0, 100].
	lo, hi = WinRate{Wins: 1, Trials: 20}.ConfidenceInterval95()
	if lo < 0 || hi > 100 {
		t.Errorf("interval [%f, %f] escapes [0, 100]", lo, hi)
	}
	lo, hi = WinRate{Wins: 19, Trials: 20}.ConfidenceInterval95()
	if lo < 0 || hi > 100 {
		t.Errorf("interval [%f, %f] escapes [0, 100]", lo, hi)
	}
}

func TestEVCurve(t *testing.T) {
	points := EVCurve(50, []float64{100})
	if len(points) != 1 {
		t.Fatalf("got %d points, want 1", len(points))
	}
	// Coin flip: win 100 half the time, pay 50 the other half.
	if math.Abs(points[0].EV-25) > 1e-9 {
		t.Errorf("EV at 50%% on 100 pot = %f, want 25", points[0].EV)
	}

	// Break-even sits at one third equity.
	points = EVCurve(100.0/3, []float64{60})
	if math.Abs(points[0].EV) > 1e-9 {
		t.Errorf("EV at break-even equity = %f, want 0", points[0].EV)
	}

	// Losing hands chart negative.
	points = EVCurve(10, []float64{100})
	if points[0].EV >= 0 {
		t.Errorf("EV at 10%% = %f, want negative", points[0].EV)
	}
}

func TestDefaultPots(t *testing.T) {
	pots := DefaultPots()
	if len(pots) != 10 {
		t.Fatalf("got %d pots, want 10", len(pots))
	}
	if pots[0] != 10 || pots[9] != 100 {
		t.Errorf("pots span [%f, %f], want [10, 100]", pots[0], pots[9])
	}
}
