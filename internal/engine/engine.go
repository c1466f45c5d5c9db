package engine

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"huginn/internal/book"
	"huginn/internal/common"
)

// Outcome is what applying one event did. Executions holds only the
// records this event produced; the full log lives on the engine.
type Outcome struct {
	Kind         common.EventKind
	TakerID      uint64
	Filled       uint64
	Remaining    uint64
	Executions   []common.ExecutionRecord
	UnknownOrder bool
	Halted       bool
}

// Engine applies order-flow events to a single-symbol book and owns the
// append-only execution log. One event is fully applied, sweeps included,
// before the next is accepted; the same event sequence always reproduces
// the same log and snapshots.
type Engine struct {
	book       *book.Book
	executions []common.ExecutionRecord

	seq     uint64 // execution record counter
	arrival uint64 // resting-order arrival counter
	nextID  uint64 // engine-assigned injection ids, counting down

	unknownOrders uint64
	invalidEvents uint64
	halts         uint64
}

func New() *Engine {
	return &Engine{
		book: book.New(),
		// Injection ids grow down from the top of the range so they can
		// never collide with feed-assigned ids.
		nextID: math.MaxUint64,
	}
}

// Apply runs one event against the book. The returned error is non-nil
// only for invalid events; the event is rejected and the book untouched.
// Unknown-order conditions are reported on the Outcome, not as errors.
func (e *Engine) Apply(ev common.Event) (Outcome, error) {
	out := Outcome{Kind: ev.Kind, TakerID: ev.OrderID}

	switch ev.Kind {
	case common.NewLimit:
		if ev.Size == 0 {
			e.invalidEvents++
			return out, fmt.Errorf("%w: limit order %d has zero size", common.ErrInvalidEvent, ev.OrderID)
		}
		if !ev.Price.IsPositive() {
			e.invalidEvents++
			return out, fmt.Errorf("%w: limit order %d has no price", common.ErrInvalidEvent, ev.OrderID)
		}
		return e.applyLimit(ev, out)

	case common.NewMarket:
		if ev.Size == 0 {
			e.invalidEvents++
			return out, fmt.Errorf("%w: market order %d has zero size", common.ErrInvalidEvent, ev.OrderID)
		}
		// Market orders never rest; whatever the sweep leaves is dropped.
		var fills []common.Fill
		out.Filled, out.Remaining, fills = e.book.Sweep(ev.Side, nil, ev.Size)
		out.Executions = e.record(ev.OrderID, ev.Side, fills)
		return out, nil

	case common.Cancel, common.Delete:
		if err := e.book.Cancel(ev.OrderID); err != nil {
			e.unknownOrders++
			out.UnknownOrder = true
		}
		return out, nil

	case common.Execute:
		if ev.Size == 0 {
			e.invalidEvents++
			return out, fmt.Errorf("%w: execute of order %d has zero size", common.ErrInvalidEvent, ev.OrderID)
		}
		// The trade happened upstream: trim the resting order and log a
		// record built from the message itself.
		if err := e.book.Reduce(ev.OrderID, ev.Size); err != nil {
			e.unknownOrders++
			out.UnknownOrder = true
			return out, nil
		}
		e.seq++
		rec := common.ExecutionRecord{
			TakerID:  ev.OrderID,
			Price:    ev.Price,
			Size:     ev.Size,
			Side:     ev.Side,
			Sequence: e.seq,
		}
		e.executions = append(e.executions, rec)
		out.Filled = ev.Size
		out.Executions = []common.ExecutionRecord{rec}
		return out, nil

	case common.Halt:
		e.halts++
		out.Halted = true
		return out, nil
	}

	e.invalidEvents++
	return out, fmt.Errorf("%w: unrecognised kind %d", common.ErrInvalidEvent, ev.Kind)
}

// applyLimit sweeps the crossing portion, if any, then rests the
// remainder. Replayed and injected limit orders share this path.
func (e *Engine) applyLimit(ev common.Event, out Outcome) (Outcome, error) {
	remaining := ev.Size
	if e.book.Crosses(ev.Side, ev.Price) {
		limit := ev.Price
		var fills []common.Fill
		out.Filled, remaining, fills = e.book.Sweep(ev.Side, &limit, ev.Size)
		out.Executions = e.record(ev.OrderID, ev.Side, fills)
	}
	out.Remaining = remaining
	if remaining == 0 {
		return out, nil
	}

	e.arrival++
	err := e.book.RestingAdd(&common.Order{
		ID:       ev.OrderID,
		Price:    ev.Price,
		Size:     remaining,
		Side:     ev.Side,
		Sequence: e.arrival,
	})
	return out, err
}

// record appends one execution per fill to the log, stamping taker and
// sequence, and returns the slice added for this event.
func (e *Engine) record(takerID uint64, side common.Side, fills []common.Fill) []common.ExecutionRecord {
	if len(fills) == 0 {
		return nil
	}
	records := make([]common.ExecutionRecord, 0, len(fills))
	for _, fill := range fills {
		e.seq++
		rec := common.ExecutionRecord{
			TakerID:  takerID,
			Price:    fill.Price,
			Size:     fill.Size,
			Side:     side,
			Sequence: e.seq,
		}
		e.executions = append(e.executions, rec)
		records = append(records, rec)
	}
	return records
}

// SubmitLimit injects a limit order outside the replayed feed. An id of
// zero asks the engine to assign one.
func (e *Engine) SubmitLimit(side common.Side, price decimal.Decimal, size uint64, id uint64) (Outcome, error) {
	if id == 0 {
		id = e.assignID()
	}
	return e.Apply(common.Event{
		Kind:    common.NewLimit,
		OrderID: id,
		Price:   price,
		Size:    size,
		Side:    side,
	})
}

// SubmitMarket injects a market order. An id of zero asks the engine to
// assign one.
func (e *Engine) SubmitMarket(side common.Side, size uint64, id uint64) (Outcome, error) {
	if id == 0 {
		id = e.assignID()
	}
	return e.Apply(common.Event{
		Kind:    common.NewMarket,
		OrderID: id,
		Size:    size,
		Side:    side,
	})
}

func (e *Engine) assignID() uint64 {
	id := e.nextID
	e.nextID--
	return id
}

// Book exposes the underlying book read surface, e.g. for snapshotting.
func (e *Engine) Book() *book.Book {
	return e.book
}

func (e *Engine) BestBid() (decimal.Decimal, bool) {
	return e.book.BestBid()
}

func (e *Engine) BestAsk() (decimal.Decimal, bool) {
	return e.book.BestAsk()
}

func (e *Engine) Depth(side common.Side, levels int) []common.DepthLevel {
	return e.book.Depth(side, levels)
}

// ExecutionLog is the full ordered execution history.
func (e *Engine) ExecutionLog() []common.ExecutionRecord {
	return e.executions
}

// UnknownOrders counts cancels, deletes and executes that referenced ids
// no longer resting.
func (e *Engine) UnknownOrders() uint64 {
	return e.unknownOrders
}

// InvalidEvents counts events rejected before touching the book.
func (e *Engine) InvalidEvents() uint64 {
	return e.invalidEvents
}

// Halts counts trading-halt markers seen.
func (e *Engine) Halts() uint64 {
	return e.halts
}
