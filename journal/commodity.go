package journal

import (
	"time"

	"github.com/shopspring/decimal"
)

// CommodityIndex identifies a commodity by its node index in the price
// history graph. Commodities are referenced by index everywhere outside the
// pool; the index stays valid for the lifetime of the journal.
type CommodityIndex int

// NoCommodity marks an amount without a commodity (a bare quantity such as
// "20"). It is a valid state, not an error.
const NoCommodity CommodityIndex = -1

// Commodity represents a unit of value (currency or asset symbol).
// It is immutable once created and owned by the Pool.
type Commodity struct {
	Symbol string
}

// PricePoint is a single observed exchange rate at a moment in time.
// The rate converts one unit of the source commodity into the target
// commodity of the edge it belongs to.
type PricePoint struct {
	When time.Time
	Rate decimal.Decimal
}
