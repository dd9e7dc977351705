package journal

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is an arbitrary-precision signed quantity paired with an optional
// commodity. Amounts with different commodities never mix implicitly;
// cross-commodity arithmetic is a programming error, not user input error.
type Amount struct {
	Quantity  decimal.Decimal
	Commodity CommodityIndex
}

// NewAmount creates an amount in the given commodity.
// Pass NoCommodity for a bare quantity.
func NewAmount(quantity decimal.Decimal, commodity CommodityIndex) Amount {
	return Amount{Quantity: quantity, Commodity: commodity}
}

// ParseQuantity converts a scanned quantity token into a decimal value.
// Thousands separators (",") are stripped before conversion; the decimal
// point is ".". The scanner does not normalize separators, so this is the
// single place where "25,000.01" becomes a number.
func ParseQuantity(s string) (decimal.Decimal, error) {
	normalized := strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid quantity %q: %w", s, err)
	}
	return d, nil
}

// CommodityMismatchError reports arithmetic across incompatible commodities.
// It signals a bug in account/commodity resolution upstream, so Amount
// arithmetic panics with it instead of returning it.
type CommodityMismatchError struct {
	Left, Right CommodityIndex
}

func (e *CommodityMismatchError) Error() string {
	return fmt.Sprintf("commodity mismatch: cannot combine commodity %d with %d", e.Left, e.Right)
}

// Add returns the sum of two amounts in the same commodity.
// Panics with *CommodityMismatchError when the commodities differ.
func (a Amount) Add(other Amount) Amount {
	if a.Commodity != other.Commodity {
		panic(&CommodityMismatchError{Left: a.Commodity, Right: other.Commodity})
	}
	return Amount{Quantity: a.Quantity.Add(other.Quantity), Commodity: a.Commodity}
}

// Sub returns the difference of two amounts in the same commodity.
// Panics with *CommodityMismatchError when the commodities differ.
func (a Amount) Sub(other Amount) Amount {
	if a.Commodity != other.Commodity {
		panic(&CommodityMismatchError{Left: a.Commodity, Right: other.Commodity})
	}
	return Amount{Quantity: a.Quantity.Sub(other.Quantity), Commodity: a.Commodity}
}

// Mul multiplies the quantities. The result carries the receiver's
// commodity unless the receiver has none, in which case it adopts the
// other operand's commodity (used when applying a per-unit price).
func (a Amount) Mul(other Amount) Amount {
	commodity := a.Commodity
	if commodity == NoCommodity {
		commodity = other.Commodity
	}
	return Amount{Quantity: a.Quantity.Mul(other.Quantity), Commodity: commodity}
}

// Div divides the quantities. The result carries the receiver's commodity
// unless the receiver has none, in which case it adopts the divisor's.
func (a Amount) Div(other Amount) Amount {
	commodity := a.Commodity
	if commodity == NoCommodity {
		commodity = other.Commodity
	}
	return Amount{Quantity: a.Quantity.Div(other.Quantity), Commodity: commodity}
}

// Abs returns the amount with a positive quantity.
func (a Amount) Abs() Amount {
	return Amount{Quantity: a.Quantity.Abs(), Commodity: a.Commodity}
}

// Inverse returns the amount with the opposite sign.
func (a Amount) Inverse() Amount {
	return Amount{Quantity: a.Quantity.Neg(), Commodity: a.Commodity}
}

// IsZero reports whether the quantity is zero.
func (a Amount) IsZero() bool {
	return a.Quantity.IsZero()
}
