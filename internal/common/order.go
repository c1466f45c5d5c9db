package common

import "github.com/shopspring/decimal"

// Order is a resting limit order. It is owned exclusively by the price
// level queue it sits in; everything else holds only its id.
type Order struct {
	ID       uint64          // Feed-supplied or engine-assigned id
	Price    decimal.Decimal // Resting price level
	Size     uint64          // Remaining resting quantity
	Side     Side            // Order side
	Sequence uint64          // Arrival counter, the time-priority tie-break
}
