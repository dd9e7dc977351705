package loader_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/robinvdvleuten/ledger/journal"
	"github.com/robinvdvleuten/ledger/loader"
	"github.com/robinvdvleuten/ledger/parser"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSingleFile(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "main.ledger", `2023-04-10 Supermarket
    Expenses  20 EUR
    Assets
`)

	j, err := loader.Load(context.Background(), main)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(j.Xacts()))
	assert.Equal(t, journal.XactFinalized, j.Xacts()[0].State())
}

func TestLoadFollowsIncludes(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "books")
	assert.NoError(t, os.Mkdir(sub, 0o755))

	writeFile(t, sub, "2023.ledger", `2023-01-01 Opening
    Assets:Cash  100 EUR
    Equity
`)
	writeFile(t, dir, "prices.ledger", "P 2023-01-01 EUR 1.10 USD\n")
	main := writeFile(t, dir, "main.ledger", `include books/2023.ledger
include prices.ledger

2023-02-01 Coffee
    Expenses  3 EUR
    Assets:Cash
`)

	j, err := loader.Load(context.Background(), main)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(j.Xacts()))

	eur, ok := j.Commodities.Find("EUR")
	assert.True(t, ok)
	usd, ok := j.Commodities.Find("USD")
	assert.True(t, ok)

	when, err := journal.ParseDate("2023-01-02")
	assert.NoError(t, err)
	_, ok = j.Commodities.History.DirectPrice(eur, usd, when)
	assert.True(t, ok)
}

func TestLoadNestedIncludesResolveRelatively(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "books")
	assert.NoError(t, os.Mkdir(sub, 0o755))

	// inner.ledger is included by books/outer.ledger using a path relative
	// to books/, not to the top-level file.
	writeFile(t, sub, "inner.ledger", `2023-01-01 Inner
    Expenses  1 EUR
    Assets
`)
	writeFile(t, sub, "outer.ledger", "include inner.ledger\n")
	main := writeFile(t, dir, "main.ledger", "include books/outer.ledger\n")

	j, err := loader.Load(context.Background(), main)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(j.Xacts()))
}

func TestLoadMissingInclude(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "main.ledger", "include missing.ledger\n")

	_, err := loader.Load(context.Background(), main)
	assert.Error(t, err)

	var perr *parser.ParseError
	assert.True(t, errors.As(err, &perr))
	assert.Equal(t, parser.IncludeNotFound, perr.Kind)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := loader.Load(context.Background(), filepath.Join(t.TempDir(), "nope.ledger"))
	assert.Error(t, err)
}

func TestLoadRecoverMode(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "main.ledger", `frobnicate

2023-05-01 Good
    Expenses  20 EUR
    Assets
`)

	j, err := loader.New(loader.WithRecover()).Load(context.Background(), main)
	assert.Error(t, err)
	assert.Equal(t, 1, len(j.Xacts()))
}
