package journal

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"
)

func TestBalanceAccumulatesPerCommodity(t *testing.T) {
	b := NewBalance()
	b.Add(NewAmount(decimal.NewFromInt(25), 0))
	b.Add(NewAmount(decimal.NewFromInt(-5), 0))
	b.Add(NewAmount(decimal.NewFromInt(30), 1))

	assert.Equal(t, 2, b.Len())

	usd, ok := b.Find(0)
	assert.True(t, ok)
	assert.Equal(t, "20", usd.Quantity.String())

	eur, ok := b.Find(1)
	assert.True(t, ok)
	assert.Equal(t, "30", eur.Quantity.String())

	_, ok = b.Find(2)
	assert.False(t, ok)
}

func TestBalanceKeepsFirstSeenOrder(t *testing.T) {
	b := NewBalance()
	b.Add(NewAmount(decimal.NewFromInt(1), 2))
	b.Add(NewAmount(decimal.NewFromInt(1), 0))
	b.Add(NewAmount(decimal.NewFromInt(1), 2))
	b.Add(NewAmount(decimal.NewFromInt(1), 1))

	entries := b.Amounts()
	assert.Equal(t, 3, len(entries))
	assert.Equal(t, CommodityIndex(2), entries[0].Commodity)
	assert.Equal(t, CommodityIndex(0), entries[1].Commodity)
	assert.Equal(t, CommodityIndex(1), entries[2].Commodity)
	assert.Equal(t, "2", entries[0].Quantity.String())
}

func TestBalanceIsZero(t *testing.T) {
	b := NewBalance()
	assert.True(t, b.IsZero())

	b.Add(NewAmount(decimal.NewFromInt(25), 0))
	assert.False(t, b.IsZero())

	b.Sub(NewAmount(decimal.NewFromInt(25), 0))
	assert.True(t, b.IsZero())
	assert.Equal(t, 1, b.Len())
}

func TestBalanceMergeAndInverse(t *testing.T) {
	a := NewBalance()
	a.Add(NewAmount(decimal.NewFromInt(10), 0))
	a.Add(NewAmount(decimal.NewFromInt(5), 1))

	b := NewBalance()
	b.Add(NewAmount(decimal.NewFromInt(-4), 0))

	a.Merge(b)
	got, _ := a.Find(0)
	assert.Equal(t, "6", got.Quantity.String())

	a.Merge(a.Inverse())
	assert.True(t, a.IsZero())
}
