package common

// Side is the side of the book an order belongs to.
type Side int

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	}
	return "unknown"
}

// Opposite returns the side an aggressive order matches against.
func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

// EventKind classifies an inbound order-flow message.
type EventKind int

const (
	// NewLimit posts an order to buy or sell at a specified price or
	// better. Limit orders may rest on the order book until filled.
	NewLimit EventKind = iota
	// NewMarket is an instruction to buy or sell immediately against
	// whatever liquidity is resting. Market orders never rest; any
	// unfilled remainder is discarded.
	NewMarket
	// Cancel removes a resting order entirely.
	Cancel
	// Delete is equivalent to Cancel on the book; the kinds are kept
	// distinct so the audit trail preserves the feed's distinction.
	Delete
	// Execute reports a trade that already happened upstream. It only
	// trims the referenced resting order and logs the execution.
	Execute
	// Halt is a trading-halt marker. It never mutates the book; pausing
	// is the caller's concern.
	Halt
)

func (k EventKind) String() string {
	switch k {
	case NewLimit:
		return "new_limit"
	case NewMarket:
		return "new_market"
	case Cancel:
		return "cancel"
	case Delete:
		return "delete"
	case Execute:
		return "execute"
	case Halt:
		return "halt"
	}
	return "unknown"
}
