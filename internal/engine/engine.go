package engine

import (
	"vidar/internal/common"
)

// Engine matches incoming orders against resting liquidity for a single
// instrument. It owns both books and the arrival counter; nothing else
// mutates them. Processing is strictly one order at a time, which is what
// makes price-time priority and the trade stream deterministic. Callers
// that want many instruments run one Engine per instrument.
type Engine struct {
	bids *Book
	asks *Book
	seq  uint64
}

func New() *Engine {
	return &Engine{
		bids: NewBook(common.Buy),
		asks: NewBook(common.Sell),
	}
}

// Bids exposes the resting buy side, best price first.
func (e *Engine) Bids() *Book { return e.bids }

// Asks exposes the resting sell side, best price first.
func (e *Engine) Asks() *Book { return e.asks }

// Submit admits one order, crosses it against the opposite book while
// prices allow, and rests any remainder in its own book. It returns the
// trades produced, in execution order; an empty slice means no cross
// occurred, which is a normal outcome and not an error.
//
// An incoming iceberg order aggresses with its full remaining quantity.
// The display cap only takes effect once the remainder rests.
func (e *Engine) Submit(order *common.Order) []common.Trade {
	e.seq++
	order.Sequence = e.seq

	own, opposite := e.bids, e.asks
	if order.Side == common.Sell {
		own, opposite = e.asks, e.bids
	}

	var trades []common.Trade
	for order.Quantity > 0 {
		resting := opposite.PeekBest()
		if resting == nil || !crosses(order, resting) {
			break
		}

		qty := min(order.Quantity, resting.Visible())
		order.Fill(qty)
		resting.Fill(qty)

		trades = append(trades, common.Trade{
			RestingID:  resting.ID,
			IncomingID: order.ID,
			TakerSide:  order.Side,
			Price:      resting.Price,
			Quantity:   qty,
			Sequence:   order.Sequence,
		})

		switch {
		case resting.Quantity == 0:
			// Fully consumed, drop it before looking at the next entry.
			opposite.PopBest()
		case resting.NeedsReveal():
			// The visible slice is gone but hidden reserve remains.
			// Reveal the next slice now, before any further crossing
			// check, and requeue it as if it had just arrived: it goes
			// to the back of its price level under a fresh sequence.
			opposite.PopBest()
			resting.Reveal()
			e.seq++
			resting.Sequence = e.seq
			opposite.Insert(resting)
		}
	}

	if order.Quantity > 0 {
		order.Reveal()
		own.Insert(order)
	}
	return trades
}

// crosses reports whether an incoming order's price is compatible with the
// best resting order on the opposite book: a buy must bid at least the ask
// price, a sell must ask at most the bid price.
func crosses(incoming, resting *common.Order) bool {
	if incoming.Side == common.Buy {
		return incoming.Price.Cmp(resting.Price) >= 0
	}
	return incoming.Price.Cmp(resting.Price) <= 0
}

// Cancel withdraws a resting order from whichever book holds it. Unknown
// ids return ErrOrderNotFound.
func (e *Engine) Cancel(id string) error {
	if _, err := e.bids.Remove(id); err == nil {
		return nil
	}
	_, err := e.asks.Remove(id)
	return err
}
