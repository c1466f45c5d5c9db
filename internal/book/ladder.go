package book

import (
	"github.com/shopspring/decimal"
	"github.com/tidwall/btree"

	"huginn/internal/common"
)

// PriceLevel holds the resting orders at a single price, sorted by time
// added as they will be push-back'd. Every order in the queue has a
// positive size; an exhausted level is removed from its ladder at once.
type PriceLevel struct {
	Price  decimal.Decimal
	Orders []*common.Order
}

// TotalSize is the resting quantity across the whole level.
func (level *PriceLevel) TotalSize() uint64 {
	var total uint64
	for _, order := range level.Orders {
		total += order.Size
	}
	return total
}

// Ladder is one side's price levels, kept ordered so that Min is always
// the best level: greatest price first for bids, least first for asks.
type Ladder struct {
	side   common.Side
	levels *btree.BTreeG[*PriceLevel]
}

func NewLadder(side common.Side) *Ladder {
	var less func(a, b *PriceLevel) bool
	if side == common.Buy {
		// Sorted greatest first.
		less = func(a, b *PriceLevel) bool {
			return a.Price.GreaterThan(b.Price)
		}
	} else {
		// Sorted least first.
		less = func(a, b *PriceLevel) bool {
			return a.Price.LessThan(b.Price)
		}
	}
	return &Ladder{
		side:   side,
		levels: btree.NewBTreeG(less),
	}
}

// BestPrice is the maximum resting price for a bid ladder and the minimum
// for an ask ladder. The second return is false when the side is empty.
func (l *Ladder) BestPrice() (decimal.Decimal, bool) {
	level, ok := l.levels.Min()
	if !ok {
		return decimal.Decimal{}, false
	}
	return level.Price, true
}

// BestLevel exposes the best level for sweep loops. Mutations to the
// returned level are visible in the ladder.
func (l *Ladder) BestLevel() (*PriceLevel, bool) {
	return l.levels.MinMut()
}

// DeleteLevel drops an exhausted level from the ladder.
func (l *Ladder) DeleteLevel(level *PriceLevel) {
	l.levels.Delete(level)
}

// AddAtBack appends an order at the tail of its price level's queue,
// creating the level if it does not exist yet. Arrival order is time
// priority, so the back of the queue is the only legal insertion point.
func (l *Ladder) AddAtBack(order *common.Order) {
	// Comparator only looks at the price, so a bare level works as the
	// search key.
	level, ok := l.levels.GetMut(&PriceLevel{Price: order.Price})
	if ok {
		level.Orders = append(level.Orders, order)
		return
	}
	l.levels.Set(&PriceLevel{
		Price:  order.Price,
		Orders: []*common.Order{order},
	})
}

// Reduce decrements a specific resting order's size by amount, removing
// the order when it reaches zero and the level when it empties. The scan
// is confined to the single price level. The first return reports whether
// the order left the book entirely; the second whether it was found.
func (l *Ladder) Reduce(price decimal.Decimal, orderID uint64, amount uint64) (removed bool, found bool) {
	level, ok := l.levels.GetMut(&PriceLevel{Price: price})
	if !ok {
		return false, false
	}
	for i, order := range level.Orders {
		if order.ID != orderID {
			continue
		}
		if amount < order.Size {
			order.Size -= amount
			return false, true
		}
		order.Size = 0
		level.Orders = append(level.Orders[:i], level.Orders[i+1:]...)
		if len(level.Orders) == 0 {
			l.levels.Delete(level)
		}
		return true, true
	}
	return false, false
}

// RemoveOrder deletes a resting order outright, returning the size it had
// left. Used for cancels once the price is known from the index.
func (l *Ladder) RemoveOrder(price decimal.Decimal, orderID uint64) (uint64, bool) {
	level, ok := l.levels.GetMut(&PriceLevel{Price: price})
	if !ok {
		return 0, false
	}
	for i, order := range level.Orders {
		if order.ID != orderID {
			continue
		}
		size := order.Size
		level.Orders = append(level.Orders[:i], level.Orders[i+1:]...)
		if len(level.Orders) == 0 {
			l.levels.Delete(level)
		}
		return size, true
	}
	return 0, false
}

// Depth walks levels best-first and accumulates resting size, stopping
// after the requested number of levels or ladder exhaustion.
func (l *Ladder) Depth(levels int) []common.DepthLevel {
	if levels <= 0 {
		return nil
	}
	out := make([]common.DepthLevel, 0, levels)
	var cumulative uint64
	l.levels.Scan(func(level *PriceLevel) bool {
		cumulative += level.TotalSize()
		out = append(out, common.DepthLevel{Price: level.Price, Size: cumulative})
		return len(out) < levels
	})
	return out
}

// RestingSize is the total quantity resting on this side.
func (l *Ladder) RestingSize() uint64 {
	var total uint64
	l.levels.Scan(func(level *PriceLevel) bool {
		total += level.TotalSize()
		return true
	})
	return total
}

// Levels returns every level in price-priority order.
func (l *Ladder) Levels() []*PriceLevel {
	return l.levels.Items()
}
