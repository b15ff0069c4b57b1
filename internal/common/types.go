package common

type Side int

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	if s == Buy {
		return "B"
	}
	return "S"
}

type Kind int

const (
	// Regular orders expose their full remaining quantity to the book.
	Regular Kind = iota
	// Iceberg orders expose at most their peak quantity at a time; the
	// rest stays hidden until the visible slice is consumed.
	Iceberg
)
