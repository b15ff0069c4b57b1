package feed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"vidar/internal/common"
)

var (
	ErrFieldCount = errors.New("record needs 4 or 5 fields")
	ErrBadSide    = errors.New("side must be B or S")
	ErrBadPrice   = errors.New("price must be a positive decimal")
	ErrBadQty     = errors.New("quantity must be a positive integer")
	ErrBadPeak    = errors.New("peak must be a positive integer no larger than the quantity")
)

// Reader decodes order records from a comma-separated stream, one per line:
//
//	id,side,price,quantity[,peak]
//
// A fifth field marks an iceberg order with that peak. A blank id gets a
// generated uuid. Validation happens here so that the engine can trust
// every record it is handed.
type Reader struct {
	csv *csv.Reader
}

func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return &Reader{csv: cr}
}

// Next returns the next well-formed order, io.EOF once the stream is
// drained, or a decode error for the offending record. Callers may skip a
// bad record and call Next again.
func (r *Reader) Next() (*common.Order, error) {
	fields, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("reading record: %w", err)
	}
	return ParseRecord(fields)
}

// Skippable reports whether err only spoiled a single record, so that a
// caller may log it and move on to the next one. I/O failures are not
// skippable: retrying the stream would loop forever.
func Skippable(err error) bool {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return true
	}
	for _, sentinel := range []error{ErrFieldCount, ErrBadSide, ErrBadPrice, ErrBadQty, ErrBadPeak} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// ParseRecord decodes a single already-split record.
func ParseRecord(fields []string) (*common.Order, error) {
	if len(fields) != 4 && len(fields) != 5 {
		return nil, fmt.Errorf("%w, got %d", ErrFieldCount, len(fields))
	}

	order := &common.Order{ID: strings.TrimSpace(fields[0])}
	if order.ID == "" {
		order.ID = uuid.NewString()
	}

	switch strings.TrimSpace(fields[1]) {
	case "B":
		order.Side = common.Buy
	case "S":
		order.Side = common.Sell
	default:
		return nil, fmt.Errorf("%w, got %q", ErrBadSide, fields[1])
	}

	price, err := decimal.NewFromString(strings.TrimSpace(fields[2]))
	if err != nil || price.Sign() <= 0 {
		return nil, fmt.Errorf("%w, got %q", ErrBadPrice, fields[2])
	}
	order.Price = price

	qty, err := strconv.ParseUint(strings.TrimSpace(fields[3]), 10, 64)
	if err != nil || qty == 0 {
		return nil, fmt.Errorf("%w, got %q", ErrBadQty, fields[3])
	}
	order.Quantity = qty

	if len(fields) == 5 {
		peak, err := strconv.ParseUint(strings.TrimSpace(fields[4]), 10, 64)
		if err != nil || peak == 0 || peak > qty {
			return nil, fmt.Errorf("%w, got %q", ErrBadPeak, fields[4])
		}
		order.Kind = common.Iceberg
		order.Peak = peak
	}

	return order, nil
}
