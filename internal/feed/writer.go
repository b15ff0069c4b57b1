package feed

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"vidar/internal/common"
	"vidar/internal/engine"
)

// Writer encodes trade events and book snapshots for the output stream.
type Writer struct {
	w io.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteTrades prints one line per (aggressor, resting, price) triple, the
// incoming order's id first. The engine reports every cross individually;
// repeated crossings of the same pair at the same price within one
// submission happen when an iceberg replenishes mid-sweep, and those
// collapse into a single line with the quantities summed, in
// first-crossing order. The line itself is Trade.String.
func (w *Writer) WriteTrades(trades []common.Trade) error {
	type key struct {
		incoming, resting, price string
	}
	var order []key
	totals := make(map[key]*common.Trade)
	for _, t := range trades {
		k := key{t.IncomingID, t.RestingID, t.Price.String()}
		if agg, seen := totals[k]; seen {
			agg.Quantity += t.Quantity
		} else {
			agg := t
			totals[k] = &agg
			order = append(order, k)
		}
	}
	for _, k := range order {
		if _, err := fmt.Fprintln(w.w, totals[k]); err != nil {
			return fmt.Errorf("writing trade: %w", err)
		}
	}
	return nil
}

// WriteBook prints the two-column book snapshot, buyers beside sellers in
// priority order. Iceberg rows show only their visible slice.
func (w *Writer) WriteBook(bids, asks *engine.Book) error {
	var buys, sells []*common.Order
	bids.Walk(func(o *common.Order) { buys = append(buys, o) })
	asks.Walk(func(o *common.Order) { sells = append(sells, o) })

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-19s  Sellers\n", "Buyers"))
	for i := 0; i < len(buys) || i < len(sells); i++ {
		buyVol, buyPrice := "", ""
		if i < len(buys) {
			buyVol = groupDigits(buys[i].Visible())
			buyPrice = buys[i].Price.String()
		}
		sellVol, sellPrice := "", ""
		if i < len(sells) {
			sellVol = groupDigits(sells[i].Visible())
			sellPrice = sells[i].Price.String()
		}
		sb.WriteString(fmt.Sprintf("%-11s %-5s | %-11s %-11s\n", buyVol, buyPrice, sellPrice, sellVol))
	}

	if _, err := io.WriteString(w.w, sb.String()); err != nil {
		return fmt.Errorf("writing book: %w", err)
	}
	return nil
}

// groupDigits renders n with comma separators, e.g. 1234567 -> "1,234,567".
func groupDigits(n uint64) string {
	s := strconv.FormatUint(n, 10)
	if len(s) <= 3 {
		return s
	}
	var sb strings.Builder
	lead := len(s) % 3
	if lead == 0 {
		lead = 3
	}
	sb.WriteString(s[:lead])
	for i := lead; i < len(s); i += 3 {
		sb.WriteByte(',')
		sb.WriteString(s[i : i+3])
	}
	return sb.String()
}
