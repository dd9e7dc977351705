package journal

import (
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"
)

func TestPoolInternsSymbols(t *testing.T) {
	p := NewPool()

	usd := p.FindOrCreate("USD")
	eur := p.FindOrCreate("EUR")
	assert.NotEqual(t, usd, eur)
	assert.Equal(t, usd, p.FindOrCreate("USD"))
	assert.Equal(t, 2, p.Len())

	assert.Equal(t, "USD", p.Get(usd).Symbol)

	found, ok := p.Find("EUR")
	assert.True(t, ok)
	assert.Equal(t, eur, found)

	_, ok = p.Find("GBP")
	assert.False(t, ok)
}

func TestPoolEmptySymbolIsNoCommodity(t *testing.T) {
	p := NewPool()

	assert.Equal(t, NoCommodity, p.FindOrCreate(""))
	assert.Equal(t, 0, p.Len())
	assert.Zero(t, p.Get(NoCommodity))
}

func TestPoolQuotedSymbols(t *testing.T) {
	p := NewPool()

	quoted := p.FindOrCreate(`"MUTF 2020"`)
	assert.Equal(t, "MUTF 2020", p.Get(quoted).Symbol)

	// Quoted and bare spellings of the same symbol intern to one commodity.
	bare := p.FindOrCreate("MUTF 2020")
	assert.Equal(t, quoted, bare)
	assert.Equal(t, 1, p.Len())
}

func TestPoolAddPrice(t *testing.T) {
	p := NewPool()
	when := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)

	rate := NewAmount(decimal.RequireFromString("1.12"), p.FindOrCreate("USD"))
	assert.NoError(t, p.AddPrice("EUR", when, rate))

	eur, _ := p.Find("EUR")
	usd, _ := p.Find("USD")

	point, ok := p.History.DirectPrice(eur, usd, when)
	assert.True(t, ok)
	assert.Equal(t, "1.12", point.Rate.String())
}

func TestPoolAddPriceWithoutCommodity(t *testing.T) {
	p := NewPool()
	rate := NewAmount(decimal.NewFromInt(2), NoCommodity)

	assert.Error(t, p.AddPrice("EUR", time.Now(), rate))
}
