package catalog

import (
	"sort"
)

// Product represents a single item on the bakery menu. Products are
// externally authored content: every field except Title may be absent.
type Product struct {
	Title       string
	Price       string // formatted, e.g. "$12.00"; empty means "Price upon request"
	MainImage   string
	Image1      string
	Image2      string
	Description string
	VideoURL    string
	IsNew       bool
	Order       int
	Available   bool
}

// Images returns the product's non-empty image URLs, main image first.
func (p Product) Images() []string {
	imgs := make([]string, 0, 3)
	for _, img := range []string{p.MainImage, p.Image1, p.Image2} {
		if img != "" {
			imgs = append(imgs, img)
		}
	}
	return imgs
}

// Store holds the filtered, sorted product list for one storefront.
// It is immutable after construction; index-based lookups are stable
// for the lifetime of the process.
type Store struct {
	products []Product
}

// NewStore builds a Store from externally loaded products: unavailable
// products are dropped and the rest are sorted by their Order field.
// The sort is stable, so products sharing an Order value keep their
// original relative order.
func NewStore(products []Product) *Store {
	kept := make([]Product, 0, len(products))
	for _, p := range products {
		if p.Available {
			kept = append(kept, p)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Order < kept[j].Order
	})
	return &Store{products: kept}
}

// List returns all available products in display order.
func (s *Store) List() []Product {
	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out
}

// ByIndex returns the product at the given display index.
// It reports false when the index is out of range.
func (s *Store) ByIndex(i int) (Product, bool) {
	if i < 0 || i >= len(s.products) {
		return Product{}, false
	}
	return s.products[i], true
}

// Len returns the number of available products.
func (s *Store) Len() int {
	return len(s.products)
}
