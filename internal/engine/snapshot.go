package engine

import (
	"huginn/internal/book"
	"huginn/internal/common"
)

// SnapshotRecorder samples the top of book into an append-only history.
// Cadence is the caller's choice; Capture never mutates the book.
type SnapshotRecorder struct {
	book        *book.Book
	depthLevels int
	history     []common.Snapshot
}

// NewSnapshotRecorder records snapshots of b. With depthLevels > 0 each
// snapshot also carries up to that many cumulative depth rungs per side.
func NewSnapshotRecorder(b *book.Book, depthLevels int) *SnapshotRecorder {
	return &SnapshotRecorder{book: b, depthLevels: depthLevels}
}

// Capture appends and returns a snapshot tagged with the caller-supplied
// step ordinal.
func (r *SnapshotRecorder) Capture(step uint64) common.Snapshot {
	snap := common.Snapshot{Step: step}
	snap.BestBid, snap.HasBid = r.book.BestBid()
	snap.BestAsk, snap.HasAsk = r.book.BestAsk()
	if r.depthLevels > 0 {
		snap.Bids = r.book.Depth(common.Buy, r.depthLevels)
		snap.Asks = r.book.Depth(common.Sell, r.depthLevels)
	}
	r.history = append(r.history, snap)
	return snap
}

// History is the ordered snapshot history.
func (r *SnapshotRecorder) History() []common.Snapshot {
	return r.history
}
