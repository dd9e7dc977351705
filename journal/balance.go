package journal

import (
	"strconv"
	"strings"
)

// Balance is a multi-commodity accumulator: at most one entry per commodity
// key, including NoCommodity. Entries keep first-seen order so that elided
// posting inference is deterministic.
type Balance struct {
	amounts []Amount
}

// NewBalance creates an empty balance.
func NewBalance() *Balance {
	return &Balance{}
}

// Add folds an amount into the balance. An existing entry for the amount's
// commodity is mutated in place; otherwise a new entry is appended.
func (b *Balance) Add(amount Amount) {
	for i := range b.amounts {
		if b.amounts[i].Commodity == amount.Commodity {
			b.amounts[i] = b.amounts[i].Add(amount)
			return
		}
	}
	b.amounts = append(b.amounts, amount)
}

// Sub folds the inverse of an amount into the balance.
func (b *Balance) Sub(amount Amount) {
	b.Add(amount.Inverse())
}

// Merge adds every entry of another balance into this one.
func (b *Balance) Merge(other *Balance) {
	if other == nil {
		return
	}
	for _, amount := range other.amounts {
		b.Add(amount)
	}
}

// Find returns the entry for a commodity, if present.
func (b *Balance) Find(commodity CommodityIndex) (Amount, bool) {
	for _, amount := range b.amounts {
		if amount.Commodity == commodity {
			return amount, true
		}
	}
	return Amount{}, false
}

// Inverse returns a new balance with every entry negated.
func (b *Balance) Inverse() *Balance {
	inv := &Balance{amounts: make([]Amount, len(b.amounts))}
	for i, amount := range b.amounts {
		inv.amounts[i] = amount.Inverse()
	}
	return inv
}

// Amounts returns a copy of the entries in first-seen order.
func (b *Balance) Amounts() []Amount {
	out := make([]Amount, len(b.amounts))
	copy(out, b.amounts)
	return out
}

// Len returns the number of commodity entries.
func (b *Balance) Len() int {
	return len(b.amounts)
}

// IsZero reports whether every entry is zero (or the balance is empty).
func (b *Balance) IsZero() bool {
	for _, amount := range b.amounts {
		if !amount.IsZero() {
			return false
		}
	}
	return true
}

// String renders the balance for error messages, e.g. "-5 @0, 30 @1".
// Commodity symbols live in the pool, so only indices are shown here;
// callers with a journal should format entries themselves.
func (b *Balance) String() string {
	if len(b.amounts) == 0 {
		return "(empty)"
	}
	var parts []string
	for _, amount := range b.amounts {
		s := amount.Quantity.String()
		if amount.Commodity != NoCommodity {
			s += " @" + strconv.Itoa(int(amount.Commodity))
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}
