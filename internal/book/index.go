package book

import (
	"github.com/shopspring/decimal"

	"huginn/internal/common"
)

type location struct {
	side  common.Side
	price decimal.Decimal
}

// OrderIndex maps a resting order id to the side and price level it sits
// at, so cancels route straight to the right level instead of scanning
// both ladders. An id is present exactly while the order rests with a
// positive size.
type OrderIndex map[uint64]location

func NewOrderIndex() OrderIndex {
	return make(OrderIndex)
}

func (idx OrderIndex) Put(id uint64, side common.Side, price decimal.Decimal) {
	idx[id] = location{side: side, price: price}
}

func (idx OrderIndex) Get(id uint64) (common.Side, decimal.Decimal, bool) {
	loc, ok := idx[id]
	return loc.side, loc.price, ok
}

func (idx OrderIndex) Remove(id uint64) {
	delete(idx, id)
}

func (idx OrderIndex) Len() int {
	return len(idx)
}
