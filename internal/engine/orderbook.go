package engine

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tidwall/btree"

	"vidar/internal/common"
)

var ErrOrderNotFound = errors.New("order not found")

// PriceLevel holds the resting orders at a single price, sorted by arrival
// as they are appended. Within a level the slice order and the sequence
// order coincide: the engine only ever appends with a fresh sequence.
type PriceLevel struct {
	price  decimal.Decimal
	orders []*common.Order
}

type priceLevels = btree.BTreeG[*PriceLevel]

// Book holds the resting orders of one side. Bids iterate highest price
// first, asks lowest price first; either way the best level is the tree
// minimum. Every order in the book has Visible() > 0: fully consumed
// orders are removed on the spot, never left behind as dead entries.
type Book struct {
	side   common.Side
	levels *priceLevels
	index  map[string]*PriceLevel
}

func NewBook(side common.Side) *Book {
	var less func(a, b *PriceLevel) bool
	if side == common.Buy {
		// Sorted greatest first.
		less = func(a, b *PriceLevel) bool { return a.price.Cmp(b.price) > 0 }
	} else {
		// Sorted least first.
		less = func(a, b *PriceLevel) bool { return a.price.Cmp(b.price) < 0 }
	}
	return &Book{
		side:   side,
		levels: btree.NewBTreeG(less),
		index:  make(map[string]*PriceLevel),
	}
}

// Len reports the number of resting orders across all levels.
func (b *Book) Len() int {
	return len(b.index)
}

// PeekBest returns the highest-priority resting order without removing it,
// or nil when the book holds no liquidity.
func (b *Book) PeekBest() *common.Order {
	level, ok := b.levels.Min()
	if !ok {
		return nil
	}
	return level.orders[0]
}

// PopBest removes and returns the highest-priority resting order, or nil
// when the book is empty.
func (b *Book) PopBest() *common.Order {
	level, ok := b.levels.MinMut()
	if !ok {
		return nil
	}
	order := level.orders[0]
	level.orders = level.orders[1:]
	if len(level.orders) == 0 {
		b.levels.Delete(level)
	}
	delete(b.index, order.ID)
	return order
}

// Insert adds a resting order at the back of its price level, creating the
// level if this price has no liquidity yet.
func (b *Book) Insert(order *common.Order) {
	level, ok := b.levels.GetMut(&PriceLevel{price: order.Price})
	if !ok {
		level = &PriceLevel{price: order.Price}
		b.levels.Set(level)
	}
	level.orders = append(level.orders, order)
	b.index[order.ID] = level
}

// Remove withdraws an order by identity, wherever it sits in the book.
// An unknown id is ErrOrderNotFound; the engine only ever removes ids it
// knows to be present, so under normal operation that path is a caller bug.
func (b *Book) Remove(id string) (*common.Order, error) {
	level, ok := b.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, id)
	}
	var removed *common.Order
	for i, order := range level.orders {
		if order.ID == id {
			removed = order
			level.orders = append(level.orders[:i], level.orders[i+1:]...)
			break
		}
	}
	if len(level.orders) == 0 {
		b.levels.Delete(level)
	}
	delete(b.index, id)
	return removed, nil
}

// Walk visits every resting order in priority order.
func (b *Book) Walk(fn func(*common.Order)) {
	b.levels.Scan(func(level *PriceLevel) bool {
		for _, order := range level.orders {
			fn(order)
		}
		return true
	})
}
