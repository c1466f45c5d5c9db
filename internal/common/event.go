package common

import "github.com/shopspring/decimal"

// Event is one inbound order-flow message, either replayed from a feed or
// injected manually by a caller. Price is meaningful for NewLimit and
// Execute only; market orders carry no price.
type Event struct {
	Kind    EventKind
	OrderID uint64
	Price   decimal.Decimal
	Size    uint64
	Side    Side
}
