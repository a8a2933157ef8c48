package catalog

// Selection tracks the product and quantity chosen in a detail view
// before the item is added to a cart. The quantity never drops below
// one; decrementing at one is a no-op.
type Selection struct {
	Product  Product
	Quantity int
}

// NewSelection starts a selection for the given product with quantity 1.
func NewSelection(p Product) *Selection {
	return &Selection{Product: p, Quantity: 1}
}

// Inc increases the selected quantity by one.
func (s *Selection) Inc() {
	s.Quantity++
}

// Dec decreases the selected quantity by one, flooring at one.
func (s *Selection) Dec() {
	if s.Quantity > 1 {
		s.Quantity--
	}
}
