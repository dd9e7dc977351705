package journal

import (
	"fmt"
	"strings"
	"time"
)

// Pool interns commodity symbols and records their exchange rates. Each
// distinct symbol maps to exactly one CommodityIndex; the empty symbol maps
// to NoCommodity and never enters the pool.
type Pool struct {
	symbols map[string]CommodityIndex

	// History is the price graph over the pooled commodities.
	History *History
}

// NewPool creates an empty commodity pool.
func NewPool() *Pool {
	return &Pool{
		symbols: make(map[string]CommodityIndex),
		History: NewHistory(),
	}
}

// normalizeSymbol strips a surrounding pair of double quotes, which the
// ledger syntax uses to write symbols containing spaces. The quotes are not
// part of the symbol; embedded spaces are preserved.
func normalizeSymbol(symbol string) string {
	if len(symbol) >= 2 && strings.HasPrefix(symbol, `"`) && strings.HasSuffix(symbol, `"`) {
		return symbol[1 : len(symbol)-1]
	}
	return symbol
}

// FindOrCreate interns a symbol and returns its index, creating the
// commodity on first sight. An empty symbol yields NoCommodity.
func (p *Pool) FindOrCreate(symbol string) CommodityIndex {
	symbol = normalizeSymbol(symbol)
	if symbol == "" {
		return NoCommodity
	}
	if i, ok := p.symbols[symbol]; ok {
		return i
	}
	i := p.History.AddCommodity(&Commodity{Symbol: symbol})
	p.symbols[symbol] = i
	return i
}

// Find returns the index of an already-interned symbol.
func (p *Pool) Find(symbol string) (CommodityIndex, bool) {
	i, ok := p.symbols[normalizeSymbol(symbol)]
	return i, ok
}

// Get returns the commodity at the given index, or nil for NoCommodity.
func (p *Pool) Get(i CommodityIndex) *Commodity {
	if i == NoCommodity {
		return nil
	}
	return p.History.Commodity(i)
}

// Len returns the number of interned commodities.
func (p *Pool) Len() int {
	return len(p.symbols)
}

// AddPrice records that one unit of commodity was worth rate at the given
// moment. Both commodities are interned on demand.
func (p *Pool) AddPrice(symbol string, when time.Time, rate Amount) error {
	from := p.FindOrCreate(symbol)
	if rate.Commodity == NoCommodity {
		return fmt.Errorf("price for %q has no commodity", symbol)
	}
	return p.History.AddPrice(from, rate.Commodity, PricePoint{When: when, Rate: rate.Quantity})
}
