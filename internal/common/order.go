package common

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Order is the unit of work submitted to the engine. The submitter assigns
// the ID; the engine assigns Sequence on admission and mutates Quantity as
// fills occur. Peak is only meaningful for iceberg orders.
type Order struct {
	ID       string          // Submitter-assigned identifier
	Side     Side            // Order side
	Kind     Kind            // Regular or iceberg
	Price    decimal.Decimal // Limit price
	Quantity uint64          // Remaining quantity, visible plus hidden
	Peak     uint64          // Display cap for iceberg orders
	Sequence uint64          // Arrival counter, the time-priority tie-breaker

	visible uint64 // Current visible slice while resting (iceberg only)
}

// Visible reports the quantity the book may match against right now. For a
// regular order that is everything left; for an iceberg order it is the
// current slice only.
func (o *Order) Visible() uint64 {
	if o.Kind == Iceberg {
		return o.visible
	}
	return o.Quantity
}

// Hidden reports the reserve an iceberg order has not yet revealed.
func (o *Order) Hidden() uint64 {
	if o.Kind == Iceberg {
		return o.Quantity - o.visible
	}
	return 0
}

// Fill consumes qty from the order. The caller guarantees qty does not
// exceed the remaining quantity; for a resting order it also never exceeds
// the visible slice.
func (o *Order) Fill(qty uint64) {
	o.Quantity -= qty
	if o.Kind == Iceberg && o.visible > 0 {
		if qty >= o.visible {
			o.visible = 0
		} else {
			o.visible -= qty
		}
		if o.visible > o.Quantity {
			o.visible = o.Quantity
		}
	}
}

// Reveal exposes the next slice before the order rests in the book. For a
// regular order this is a no-op.
func (o *Order) Reveal() {
	if o.Kind != Iceberg {
		return
	}
	o.visible = min(o.Peak, o.Quantity)
}

// NeedsReveal reports whether an iceberg order has exhausted its visible
// slice while still holding hidden reserve.
func (o *Order) NeedsReveal() bool {
	return o.Kind == Iceberg && o.visible == 0 && o.Quantity > 0
}

func (o *Order) String() string {
	return fmt.Sprintf("%s | %s | %d | %s", o.ID, o.Side, o.Visible(), o.Price)
}
