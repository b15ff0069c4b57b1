package engine

import (
	"github.com/shopspring/decimal"

	"vidar/internal/common"
)

// FlatPriceLevel is a copied-out view of one price level, used by the book
// dump and by tests to compare whole-book state.
type FlatPriceLevel struct {
	Price  decimal.Decimal
	Orders []*common.Order
}

// Levels returns every price level in priority order. The contained orders
// are live book entries and must be treated as read-only.
func (b *Book) Levels() []FlatPriceLevel {
	out := make([]FlatPriceLevel, 0, b.levels.Len())
	b.levels.Scan(func(level *PriceLevel) bool {
		out = append(out, FlatPriceLevel{
			Price:  level.price,
			Orders: append([]*common.Order(nil), level.orders...),
		})
		return true
	})
	return out
}
