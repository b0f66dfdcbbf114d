package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLedgerFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	l, err := LoadLedger(path, 1000)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, l.Bankroll)
	assert.Empty(t, l.Records)

	// Nothing is written until the first append.
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestAppendPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	l, err := LoadLedger(path, 1000)
	require.NoError(t, err)

	require.NoError(t, l.Append(Record{ID: "h1", Hand: "Ah Ks", Outcome: Won, BankrollDelta: 150}))
	require.NoError(t, l.Append(Record{ID: "h2", Hand: "7h 2c", Outcome: Folded, BankrollDelta: -10}))
	assert.Equal(t, 1140.0, l.Bankroll)

	reloaded, err := LoadLedger(path, 0)
	require.NoError(t, err)
	assert.Equal(t, 1140.0, reloaded.Bankroll)
	require.Len(t, reloaded.Records, 2)
	assert.Equal(t, "h1", reloaded.Records[0].ID)
	assert.Equal(t, Won, reloaded.Records[0].Outcome)
	assert.Equal(t, 150.0, reloaded.Records[0].BankrollDelta)
	assert.False(t, reloaded.Records[0].SettledAt.IsZero())
	assert.Equal(t, Folded, reloaded.Records[1].Outcome)
}

func TestAppendKeepsExplicitTimestamp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	l, err := LoadLedger(path, 0)
	require.NoError(t, err)

	at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	require.NoError(t, l.Append(Record{ID: "h1", Hand: "Ah Ks", Outcome: Lost, BankrollDelta: -40, SettledAt: at}))

	reloaded, err := LoadLedger(path, 0)
	require.NoError(t, err)
	require.Len(t, reloaded.Records, 1)
	assert.True(t, reloaded.Records[0].SettledAt.Equal(at))
}

func TestLedgerFileIsValidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	l, err := LoadLedger(path, 500)
	require.NoError(t, err)
	require.NoError(t, l.Append(Record{ID: "h1", Hand: "Ah Ks", Outcome: Won, BankrollDelta: 25}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 525.0, decoded["bankroll"])
}

func TestLoadLedgerRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := LoadLedger(path, 1000)
	assert.Error(t, err)
}

func TestAppendLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ledger.json")
	l, err := LoadLedger(path, 0)
	require.NoError(t, err)
	require.NoError(t, l.Append(Record{ID: "h1", Hand: "Ah Ks", Outcome: Won, BankrollDelta: 5}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ledger.json", entries[0].Name())
}

func TestAppendRollsBackOnWriteError(t *testing.T) {
	// A ledger path inside a missing directory makes every save fail.
	path := filepath.Join(t.TempDir(), "missing", "ledger.json")
	l, err := LoadLedger(path, 1000)
	require.NoError(t, err)

	err = l.Append(Record{ID: "h1", Hand: "Ah Ks", Outcome: Won, BankrollDelta: 150})
	require.Error(t, err)
	assert.Equal(t, 1000.0, l.Bankroll)
	assert.Empty(t, l.Records)
}

func TestParseOutcome(t *testing.T) {
	for _, text := range []string{"Won", "Lost", "Folded"} {
		out, err := ParseOutcome(text)
		require.NoError(t, err)
		assert.Equal(t, Outcome(text), out)
	}
	_, err := ParseOutcome("won")
	assert.Error(t, err)
	_, err = ParseOutcome("")
	assert.Error(t, err)
}
