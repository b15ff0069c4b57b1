package common

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Trade records a single cross between an incoming order and a resting one.
// It is immutable once emitted. Price improvement always goes to the
// incoming side, so Price is the resting order's limit price.
type Trade struct {
	RestingID  string          // Maker, already in the book
	IncomingID string          // Taker, the order being submitted
	TakerSide  Side            // Side of the incoming order
	Price      decimal.Decimal // Execution price, the resting order's price
	Quantity   uint64          // Executed quantity
	Sequence   uint64          // Submission sequence that produced it
}

// BuyID returns the identifier of the buying party.
func (t Trade) BuyID() string {
	if t.TakerSide == Buy {
		return t.IncomingID
	}
	return t.RestingID
}

// SellID returns the identifier of the selling party.
func (t Trade) SellID() string {
	if t.TakerSide == Sell {
		return t.IncomingID
	}
	return t.RestingID
}

// String renders the trade line: the incoming (aggressor) order first, the
// resting order second, then the resting price and the executed quantity.
func (t Trade) String() string {
	return fmt.Sprintf("trade %s, %s, %s, %d", t.IncomingID, t.RestingID, t.Price, t.Quantity)
}
