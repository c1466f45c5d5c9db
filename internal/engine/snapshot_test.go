package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"huginn/internal/common"
	"huginn/internal/engine"
)

func TestSnapshotEmptyBook(t *testing.T) {
	eng := engine.New()
	recorder := engine.NewSnapshotRecorder(eng.Book(), 0)

	snap := recorder.Capture(0)
	assert.False(t, snap.HasBid)
	assert.False(t, snap.HasAsk)
	assert.Nil(t, snap.Bids)
	assert.Nil(t, snap.Asks)
}

func TestSnapshotWithDepth(t *testing.T) {
	eng := engine.New()
	recorder := engine.NewSnapshotRecorder(eng.Book(), 2)

	mustApply(t, eng, limitEvent(1, common.Buy, "10.00", 5))
	mustApply(t, eng, limitEvent(2, common.Buy, "9.50", 3))
	mustApply(t, eng, limitEvent(3, common.Buy, "9.00", 8))
	mustApply(t, eng, limitEvent(4, common.Sell, "10.50", 4))

	snap := recorder.Capture(7)
	assert.Equal(t, uint64(7), snap.Step)
	require.True(t, snap.HasBid)
	assert.True(t, snap.BestBid.Equal(dec("10.00")))
	require.True(t, snap.HasAsk)
	assert.True(t, snap.BestAsk.Equal(dec("10.50")))

	require.Len(t, snap.Bids, 2, "depth is capped at the configured levels")
	assert.Equal(t, uint64(5), snap.Bids[0].Size)
	assert.Equal(t, uint64(8), snap.Bids[1].Size)
	require.Len(t, snap.Asks, 1)
	assert.Equal(t, uint64(4), snap.Asks[0].Size)
}

func TestSnapshotHistoryOrdered(t *testing.T) {
	eng := engine.New()
	recorder := engine.NewSnapshotRecorder(eng.Book(), 0)

	recorder.Capture(0)
	mustApply(t, eng, limitEvent(1, common.Buy, "10.00", 5))
	recorder.Capture(5)
	mustApply(t, eng, common.Event{Kind: common.Cancel, OrderID: 1})
	recorder.Capture(10)

	history := recorder.History()
	require.Len(t, history, 3)
	assert.False(t, history[0].HasBid)
	assert.True(t, history[1].HasBid)
	assert.False(t, history[2].HasBid, "earlier snapshots are never rewritten")
	assert.Equal(t, uint64(0), history[0].Step)
	assert.Equal(t, uint64(5), history[1].Step)
	assert.Equal(t, uint64(10), history[2].Step)
}

func TestSnapshotCaptureIsPureRead(t *testing.T) {
	eng := engine.New()
	recorder := engine.NewSnapshotRecorder(eng.Book(), 3)
	mustApply(t, eng, limitEvent(1, common.Buy, "10.00", 5))

	before := eng.Depth(common.Buy, 3)
	recorder.Capture(1)
	recorder.Capture(2)
	assert.Equal(t, before, eng.Depth(common.Buy, 3))
	assert.Equal(t, 1, eng.Book().RestingOrders())
}
