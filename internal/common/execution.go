package common

import "github.com/shopspring/decimal"

// Fill is one slice of liquidity consumed from a resting order during a
// sweep. The book reports fills; the engine turns them into execution
// records once it knows the taker and the global sequence.
type Fill struct {
	MakerID uint64
	Price   decimal.Decimal
	Size    uint64
}

// ExecutionRecord is one entry of the append-only execution log. Price is
// always the resting order's price: the taker gets the maker's price, not
// its own limit.
type ExecutionRecord struct {
	TakerID  uint64          // Aggressor id, or the message id for replayed executions
	Price    decimal.Decimal // Maker's resting price
	Size     uint64          // Quantity traded
	Side     Side            // Taker's side
	Sequence uint64          // Global record counter
}
