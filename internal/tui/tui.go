// Package tui implements the interactive staged hand walkthrough: hole card
// entry, per-stage board and pot entry, win percentages with advice, and
// settlement into the ledger.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"

	"github.com/pokerlab/pokercoach/internal/coach"
	"github.com/pokerlab/pokercoach/internal/deck"
	"github.com/pokerlab/pokercoach/internal/session"
)

type phase int

const (
	phaseHand phase = iota
	phasePot
	phaseCards
	phaseBusy
	phaseOutcome
	phaseDelta
	phaseDone
)

// Model is the Bubble Tea model for a coached hand
type Model struct {
	coach  *coach.Coach
	logger *log.Logger

	numPlayers int
	position   string
	pot        float64

	sess    *session.Session
	report  *coach.StageReport
	outcome session.Outcome

	phase phase
	input textinput.Model
	spin  spinner.Model
	err   error

	width int
}

// reportMsg delivers the result of a stage simulation
type reportMsg struct {
	sess   *session.Session // set when a new hand was started
	report *coach.StageReport
	err    error
}

// New creates the TUI model
func New(c *coach.Coach, logger *log.Logger, numPlayers int, position string, pot float64) *Model {
	ti := textinput.New()
	ti.Placeholder = "e.g. 'Ah 10s'"
	ti.Prompt = "> "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.CharLimit = 40
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))

	return &Model{
		coach:      c,
		logger:     logger.WithPrefix("tui"),
		numPlayers: numPlayers,
		position:   position,
		pot:        pot,
		phase:      phaseHand,
		input:      ti,
		spin:       sp,
		width:      80,
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.phase == phaseDone {
				return m, tea.Quit
			}
			if m.phase != phaseBusy {
				return m.submit()
			}
			return m, nil
		}

	case reportMsg:
		if msg.err != nil {
			m.logger.Warn("stage input rejected", "err", msg.err)
			m.err = msg.err
			// Back to the prompt that produced the error.
			if m.sess == nil {
				m.phase = phaseHand
			} else {
				m.phase = phaseCards
			}
			return m, nil
		}
		if msg.sess != nil {
			m.sess = msg.sess
		}
		m.report = msg.report
		m.logger.Debug("stage reported",
			"stage", m.report.Stage, "win", m.report.Result.WinPct)
		if m.report.Stage == session.River {
			m.phase = phaseOutcome
			m.input.Placeholder = "Won, Lost or Folded"
		} else {
			m.phase = phasePot
			m.input.Placeholder = fmt.Sprintf("pot size before the %s", m.nextStage())
		}
		m.input.SetValue("")
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) submit() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())
	m.err = nil

	switch m.phase {
	case phaseHand:
		m.phase = phaseBusy
		return m, tea.Batch(m.spin.Tick, func() tea.Msg {
			sess, report, err := m.coach.Start(context.Background(), value, m.position, m.numPlayers, m.pot)
			if err != nil {
				return reportMsg{err: err}
			}
			return reportMsg{sess: sess, report: report}
		})

	case phasePot:
		if value != "" {
			pot, err := strconv.ParseFloat(value, 64)
			if err != nil {
				m.err = fmt.Errorf("invalid pot size %q", value)
				return m, nil
			}
			m.pot = pot
		}
		m.phase = phaseCards
		m.input.SetValue("")
		if m.nextStage() == session.Flop {
			m.input.Placeholder = "flop cards, e.g. '7d Jc 2h'"
		} else {
			m.input.Placeholder = fmt.Sprintf("%s card, e.g. 'Qc'", m.nextStage())
		}
		return m, nil

	case phaseCards:
		m.phase = phaseBusy
		next := m.nextStage()
		return m, tea.Batch(m.spin.Tick, func() tea.Msg {
			var (
				report *coach.StageReport
				err    error
			)
			ctx := context.Background()
			switch next {
			case session.Flop:
				report, err = m.coach.AdvanceFlop(ctx, m.sess, value, m.pot)
			case session.Turn:
				report, err = m.coach.AdvanceTurn(ctx, m.sess, value, m.pot)
			default:
				report, err = m.coach.AdvanceRiver(ctx, m.sess, value, m.pot)
			}
			return reportMsg{report: report, err: err}
		})

	case phaseOutcome:
		outcome, err := session.ParseOutcome(value)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.outcome = outcome
		m.phase = phaseDelta
		m.input.SetValue("")
		m.input.Placeholder = "bankroll change for this hand, e.g. -25"
		return m, nil

	case phaseDelta:
		delta, err := strconv.ParseFloat(value, 64)
		if err != nil {
			m.err = fmt.Errorf("invalid amount %q", value)
			return m, nil
		}
		if _, err := m.coach.Settle(m.sess, m.outcome, delta); err != nil {
			m.err = err
			return m, nil
		}
		m.phase = phaseDone
		return m, nil
	}
	return m, nil
}

// nextStage returns the stage the next card input will reveal
func (m *Model) nextStage() session.Stage {
	if m.sess == nil {
		return session.PreFlop
	}
	switch m.sess.Stage() {
	case session.PreFlop:
		return session.Flop
	case session.Flop:
		return session.Turn
	default:
		return session.River
	}
}

// View implements tea.Model
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("♠ Poker Coach") + "\n\n")

	if m.sess != nil {
		b.WriteString(fmt.Sprintf("%s  %s\n",
			StageStyle.Render(m.sess.Stage().String()),
			renderCards(m.sess.Hand())))
		if len(m.sess.Board()) > 0 {
			b.WriteString(fmt.Sprintf("Board: %s\n", renderCards(m.sess.Board())))
		}
		b.WriteString(fmt.Sprintf("Pot: $%.2f  Players: %d  Position: %s\n",
			m.pot, m.numPlayers, m.position))
		b.WriteString("\n")
	}

	if m.report != nil {
		b.WriteString(m.renderReport())
	}

	switch m.phase {
	case phaseBusy:
		b.WriteString(m.spin.View() + " simulating...\n")
	case phaseDone:
		b.WriteString(WinStyle.Render(fmt.Sprintf("Hand logged. Bankroll: $%.2f", m.coach.Bankroll())) + "\n")
		b.WriteString(HintStyle.Render("press enter to quit") + "\n")
	default:
		b.WriteString(m.prompt() + "\n")
		b.WriteString(m.input.View() + "\n")
	}

	if m.err != nil {
		b.WriteString("\n" + ErrorStyle.Render("Error: "+m.err.Error()) + "\n")
	}
	b.WriteString("\n" + HintStyle.Render("esc to quit") + "\n")
	return b.String()
}

func (m *Model) prompt() string {
	switch m.phase {
	case phaseHand:
		return "Enter your pre-flop hand:"
	case phasePot:
		return fmt.Sprintf("Pot size before the %s (enter to keep $%.2f):", m.nextStage(), m.pot)
	case phaseCards:
		if m.nextStage() == session.Flop {
			return "Enter the flop:"
		}
		return fmt.Sprintf("Enter the %s card:", strings.ToLower(m.nextStage().String()))
	case phaseOutcome:
		return "Did you win the hand? (Won/Lost/Folded):"
	case phaseDelta:
		return "Change in bankroll for this hand:"
	default:
		return ""
	}
}

func (m *Model) renderReport() string {
	var b strings.Builder
	r := m.report

	lo, hi := r.WinRate.ConfidenceInterval95()
	b.WriteString(fmt.Sprintf("%s  win %s  tie %.2f%%  lose %.2f%%\n",
		StageStyle.Render(r.Stage.String()+" odds:"),
		WinStyle.Render(fmt.Sprintf("%.2f%%", r.Result.WinPct)),
		r.Result.TiePct, r.Result.LosePct))
	b.WriteString(HintStyle.Render(fmt.Sprintf("95%% CI [%.2f%%, %.2f%%] over %d iterations",
		lo, hi, r.Result.Iterations)) + "\n")
	if r.Strength != "" {
		b.WriteString(fmt.Sprintf("Current hand: %s\n", CardStyle.Render(r.Strength)))
	}

	if r.Advice != "" {
		b.WriteString(AdviceStyle.Width(min(m.width-2, 78)).Render(r.Advice) + "\n")
	} else if r.AdviceErr != nil {
		b.WriteString(HintStyle.Render("advice unavailable: "+r.AdviceErr.Error()) + "\n")
	}

	if len(r.EV) > 0 {
		values := make([]float64, len(r.EV))
		for i, p := range r.EV {
			values[i] = p.EV
		}
		b.WriteString("\n" + HintStyle.Render("expected value by pot size ($10-$100)") + "\n")
		b.WriteString(asciigraph.Plot(values, asciigraph.Height(6), asciigraph.Width(min(m.width-10, 60))) + "\n")
	}
	b.WriteString("\n")
	return b.String()
}

func renderCards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, card := range cards {
		if card.IsRed() {
			parts[i] = RedCardStyle.Render(card.Pretty())
		} else {
			parts[i] = CardStyle.Render(card.Pretty())
		}
	}
	return strings.Join(parts, " ")
}
