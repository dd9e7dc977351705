package journal

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// UnbalancedError reports a transaction whose postings do not sum to zero
// and that offers no single elided posting to absorb the difference.
type UnbalancedError struct {
	Payee    string
	Residual *Balance
}

func (e *UnbalancedError) Error() string {
	return fmt.Sprintf("transaction %q does not balance", e.Payee)
}

// DoubleElisionError reports a transaction with more than one posting
// missing its amount; only one posting may be elided.
type DoubleElisionError struct {
	Payee string
}

func (e *DoubleElisionError) Error() string {
	return fmt.Sprintf("transaction %q elides more than one posting amount", e.Payee)
}

// Finalize validates and completes a transaction: it infers the amount of an
// elided posting, infers costs between exactly two commodities when no costs
// were written, records implied exchange rates, and verifies that the
// postings balance to zero. A posting's contribution to the balance is its
// cost when one is present, otherwise its amount.
//
// On success the transaction is marked finalized; on failure it is marked
// rejected and the returned error is either *DoubleElisionError or
// *UnbalancedError. Finalizing the same transaction twice is a programming
// error and panics.
func (j *Journal) Finalize(xi XactIndex) error {
	x := j.xacts[xi]
	if x.state != XactOpen {
		panic("journal: transaction finalized twice")
	}

	bal := NewBalance()
	var empty []*Post
	sawCost := false

	for _, pi := range x.Posts {
		p := j.posts[pi]
		switch {
		case p.Cost != nil:
			sawCost = true
			bal.Add(*p.Cost)
		case p.Amount != nil:
			bal.Add(*p.Amount)
		default:
			empty = append(empty, p)
		}
	}

	if len(empty) > 1 {
		x.state = XactRejected
		return &DoubleElisionError{Payee: x.Payee}
	}

	// Two commodities and no written costs: treat the transaction as an
	// exchange and derive per-unit costs from the amount ratio. The first
	// commodity's postings are valued in the second.
	if len(empty) == 0 && !sawCost && bal.Len() == 2 {
		entries := bal.Amounts()
		top, other := entries[0], entries[1]
		if !top.Quantity.IsZero() && !other.Quantity.IsZero() {
			bal = NewBalance()
			for _, pi := range x.Posts {
				p := j.posts[pi]
				if p.Amount.Commodity == top.Commodity {
					// Multiply before dividing so a single posting per
					// commodity cancels the other side exactly.
					p.Cost = &Amount{
						Quantity:  p.Amount.Quantity.Mul(other.Quantity.Abs()).Div(top.Quantity.Abs()),
						Commodity: other.Commodity,
					}
					bal.Add(*p.Cost)
				} else {
					bal.Add(*p.Amount)
				}
			}
		}
	}

	// A single elided posting absorbs the inverse of the running balance.
	// With several commodities outstanding the first entry fills the elided
	// posting and each further commodity materializes a synthetic posting on
	// the same account. With nothing to absorb the posting becomes zero, so
	// a finalized transaction never carries a nil amount.
	if len(empty) == 1 {
		p := empty[0]
		entries := bal.Amounts()
		if len(entries) == 0 {
			zero := NewAmount(decimal.Zero, NoCommodity)
			p.Amount = &zero
		}
		for n, entry := range entries {
			inverse := entry.Inverse()
			if n == 0 {
				p.Amount = &inverse
				bal.Add(inverse)
				continue
			}
			extra := &Post{
				Account: p.Account,
				Xact:    p.Xact,
				Amount:  &inverse,
			}
			j.AddPost(extra)
			bal.Add(inverse)
		}
	}

	// Postings bought at a cost imply an exchange rate; record it so later
	// conversions can use it.
	for _, pi := range x.Posts {
		p := j.posts[pi]
		if p.Cost == nil || p.Amount == nil || p.Amount.Quantity.IsZero() {
			continue
		}
		if p.Amount.Commodity == NoCommodity || p.Cost.Commodity == NoCommodity {
			continue
		}
		if p.Amount.Commodity == p.Cost.Commodity {
			continue
		}
		perUnit := p.Cost.Quantity.Div(p.Amount.Quantity).Abs()
		err := j.Commodities.History.AddPrice(p.Amount.Commodity, p.Cost.Commodity, PricePoint{
			When: x.Date,
			Rate: perUnit,
		})
		if err != nil {
			x.state = XactRejected
			return err
		}
	}

	if !bal.IsZero() {
		x.state = XactRejected
		return &UnbalancedError{Payee: x.Payee, Residual: bal}
	}

	x.state = XactFinalized
	return nil
}
