package common

import "github.com/shopspring/decimal"

// DepthLevel is one rung of a depth profile. Size is cumulative resting
// quantity from the best level down to and including this one.
type DepthLevel struct {
	Price decimal.Decimal
	Size  uint64
}

// Snapshot is a point-in-time sample of the top of book, optionally with a
// depth profile per side. Snapshots are append-only and ordered by Step.
type Snapshot struct {
	Step    uint64
	BestBid decimal.Decimal
	HasBid  bool
	BestAsk decimal.Decimal
	HasAsk  bool
	Bids    []DepthLevel
	Asks    []DepthLevel
}
