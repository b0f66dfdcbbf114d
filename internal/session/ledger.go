package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Outcome is the player-reported result of a settled hand.
type Outcome string

const (
	Won    Outcome = "Won"
	Lost   Outcome = "Lost"
	Folded Outcome = "Folded"
)

// ParseOutcome maps user input to an Outcome
func ParseOutcome(text string) (Outcome, error) {
	switch Outcome(text) {
	case Won, Lost, Folded:
		return Outcome(text), nil
	default:
		return "", fmt.Errorf("unknown outcome %q (want Won, Lost or Folded)", text)
	}
}

// Record is one settled hand in the ledger.
type Record struct {
	ID            string    `json:"id"`
	Hand          string    `json:"hand"`
	Outcome       Outcome   `json:"outcome"`
	BankrollDelta float64   `json:"bankroll_delta"`
	SettledAt     time.Time `json:"settled_at"`
}

// Ledger accumulates settlement records and the running bankroll, persisted
// as JSON after every append.
type Ledger struct {
	path     string
	Bankroll float64  `json:"bankroll"`
	Records  []Record `json:"records"`
}

// LoadLedger reads the ledger at path, or starts a fresh one with the given
// bankroll when the file does not exist yet.
func LoadLedger(path string, startingBankroll float64) (*Ledger, error) {
	l := &Ledger{path: path, Bankroll: startingBankroll}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return l, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	if err := json.Unmarshal(data, l); err != nil {
		return nil, fmt.Errorf("decode ledger: %w", err)
	}
	return l, nil
}

// Append records a settled hand, applies its bankroll delta and persists.
func (l *Ledger) Append(rec Record) error {
	if rec.SettledAt.IsZero() {
		rec.SettledAt = time.Now()
	}
	l.Records = append(l.Records, rec)
	l.Bankroll += rec.BankrollDelta
	if err := l.save(); err != nil {
		// Keep memory and disk in agreement when the write fails.
		l.Records = l.Records[:len(l.Records)-1]
		l.Bankroll -= rec.BankrollDelta
		return err
	}
	return nil
}

func (l *Ledger) save() error {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	return writeFileAtomic(l.path, data, 0o644)
}

// writeFileAtomic writes via a temp file and rename so readers never observe
// a partially written ledger.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)
	tmp, err := os.CreateTemp(dir, filepath.Base(filename)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if tmp != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	tmp = nil

	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("set permissions: %w", err)
	}
	// Same-directory rename keeps the swap atomic on POSIX filesystems.
	if err := os.Rename(tmpPath, filename); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
