package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/robinvdvleuten/ledger/loader"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	assert.NoError(t, os.WriteFile(path, []byte("file: main.ledger\nrecover: true\n"), 0o644))

	cfg, err := LoadConfig(path)
	assert.NoError(t, err)
	assert.Equal(t, "main.ledger", cfg.File)
	assert.True(t, cfg.Recover)
	assert.False(t, cfg.Telemetry)
}

func TestLoadConfigMissingExplicitPath(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigRejectsBadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	assert.NoError(t, os.WriteFile(path, []byte("file: [unclosed"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestJournalFilePrefersArgument(t *testing.T) {
	g := &Globals{}
	g.config = &Config{File: "from-config.ledger"}
	g.configOnce.Do(func() {})

	got, err := journalFile(g, "from-arg.ledger")
	assert.NoError(t, err)
	assert.Equal(t, "from-arg.ledger", got)

	got, err = journalFile(g, "")
	assert.NoError(t, err)
	assert.Equal(t, "from-config.ledger", got)
}

func TestJournalFileWithoutAnySource(t *testing.T) {
	g := &Globals{}
	g.config = &Config{}
	g.configOnce.Do(func() {})

	_, err := journalFile(g, "")
	assert.Error(t, err)
}

func TestCollectStats(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.ledger")
	source := `P 2023-01-01 EUR 1.10 USD

2023-04-10 Supermarket
    Expenses:Food  20 EUR
    Assets:Cash
`
	assert.NoError(t, os.WriteFile(path, []byte(source), 0o644))

	j, err := loader.Load(context.Background(), path)
	assert.NoError(t, err)

	stats := collectStats(j)
	// master, Expenses, Food, Assets, Cash
	assert.Equal(t, 5, stats.Accounts)
	assert.Equal(t, 1, stats.Transactions)
	assert.Equal(t, 2, stats.Postings)
	assert.Equal(t, 2, stats.Commodities)
	assert.Equal(t, 1, stats.PricePoints)
}
