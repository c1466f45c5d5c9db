package book

import (
	"fmt"

	"github.com/shopspring/decimal"

	"huginn/internal/common"
)

// Book owns both ladders and the order index. It exposes the order
// lifecycle (add, reduce, cancel) and the sweep primitive; deciding when
// to sweep is the engine's job.
type Book struct {
	bids  *Ladder
	asks  *Ladder
	index OrderIndex
}

func New() *Book {
	return &Book{
		bids:  NewLadder(common.Buy),
		asks:  NewLadder(common.Sell),
		index: NewOrderIndex(),
	}
}

func (b *Book) ladder(side common.Side) *Ladder {
	if side == common.Buy {
		return b.bids
	}
	return b.asks
}

// RestingAdd posts a limit order at the back of its price level and
// indexes it. It never matches: the caller either guarantees the order
// does not cross, or posts only the remainder left over from a sweep.
func (b *Book) RestingAdd(order *common.Order) error {
	if order.Size == 0 {
		return fmt.Errorf("%w: order %d has zero size", common.ErrInvalidEvent, order.ID)
	}
	if !order.Price.IsPositive() {
		return fmt.Errorf("%w: order %d has no price", common.ErrInvalidEvent, order.ID)
	}
	b.ladder(order.Side).AddAtBack(order)
	b.index.Put(order.ID, order.Side, order.Price)
	return nil
}

// Reduce trims a resting order by amount, removing it (and its level)
// when exhausted. Returns ErrUnknownOrder when the id is not resting,
// which is expected for replayed messages referencing filled orders.
func (b *Book) Reduce(orderID uint64, amount uint64) error {
	side, price, ok := b.index.Get(orderID)
	if !ok {
		return common.ErrUnknownOrder
	}
	removed, found := b.ladder(side).Reduce(price, orderID, amount)
	if !found {
		// Stale index entry; drop it rather than leave it dangling.
		b.index.Remove(orderID)
		return common.ErrUnknownOrder
	}
	if removed {
		b.index.Remove(orderID)
	}
	return nil
}

// Cancel removes a resting order entirely, whatever its remaining size.
func (b *Book) Cancel(orderID uint64) error {
	side, price, ok := b.index.Get(orderID)
	if !ok {
		return common.ErrUnknownOrder
	}
	b.index.Remove(orderID)
	if _, found := b.ladder(side).RemoveOrder(price, orderID); !found {
		return common.ErrUnknownOrder
	}
	return nil
}

// Crosses reports whether a limit order on side at price would match
// immediately against the opposite best.
func (b *Book) Crosses(side common.Side, price decimal.Decimal) bool {
	best, ok := b.ladder(side.Opposite()).BestPrice()
	if !ok {
		return false
	}
	if side == common.Buy {
		return price.GreaterThanOrEqual(best)
	}
	return price.LessThanOrEqual(best)
}

// Sweep consumes resting liquidity on the opposite side of an aggressive
// order, walking levels best-first. A nil limit sweeps until liquidity or
// size runs out (market order); otherwise the walk stops at the first
// level strictly worse than limit. Within a level orders are consumed
// strictly in arrival order. Each maker touched yields one fill priced at
// the maker's level.
func (b *Book) Sweep(side common.Side, limit *decimal.Decimal, size uint64) (filled, remaining uint64, fills []common.Fill) {
	opposite := b.ladder(side.Opposite())
	remaining = size
	for remaining > 0 {
		level, ok := opposite.BestLevel()
		if !ok {
			break
		}
		if limit != nil {
			if side == common.Buy && level.Price.GreaterThan(*limit) {
				break
			}
			if side == common.Sell && level.Price.LessThan(*limit) {
				break
			}
		}

		// Consume the level front-to-back; earlier arrivals fill first.
		consumed := 0
		for _, maker := range level.Orders {
			matchQty := min(remaining, maker.Size)
			maker.Size -= matchQty
			remaining -= matchQty
			fills = append(fills, common.Fill{
				MakerID: maker.ID,
				Price:   level.Price,
				Size:    matchQty,
			})
			if maker.Size == 0 {
				consumed++
				b.index.Remove(maker.ID)
			}
			if remaining == 0 {
				break
			}
		}

		// Slice off the consumed prefix; drop the level if nothing is left.
		if consumed == len(level.Orders) {
			opposite.DeleteLevel(level)
		} else if consumed > 0 {
			level.Orders = level.Orders[consumed:]
		}
	}
	return size - remaining, remaining, fills
}

// BestBid is the highest resting bid price, if any.
func (b *Book) BestBid() (decimal.Decimal, bool) {
	return b.bids.BestPrice()
}

// BestAsk is the lowest resting ask price, if any.
func (b *Book) BestAsk() (decimal.Decimal, bool) {
	return b.asks.BestPrice()
}

// Depth returns up to levels rungs of cumulative resting size on side,
// ordered best-first. Empty slice when the side is empty.
func (b *Book) Depth(side common.Side, levels int) []common.DepthLevel {
	return b.ladder(side).Depth(levels)
}

// RestingSize is the total resting quantity on side.
func (b *Book) RestingSize(side common.Side) uint64 {
	return b.ladder(side).RestingSize()
}

// RestingOrders is the number of ids currently indexed.
func (b *Book) RestingOrders() int {
	return b.index.Len()
}
