package cart

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ovenbird/bakehouse/internal/domain/catalog"
)

// LineItem is one entry in a cart. The Title doubles as the line's
// unique key: a cart never holds two lines with the same title. Price
// and Image are copied from the product at add time and are not
// re-synced if the catalog changes afterwards.
type LineItem struct {
	Title    string `json:"title"`
	Price    string `json:"price,omitempty"`
	Quantity int    `json:"quantity"`
	Image    string `json:"image,omitempty"`
}

// Subtotal returns parsed price times quantity. A missing or
// unparseable price counts as zero.
func (li LineItem) Subtotal() decimal.Decimal {
	return catalog.ParsePrice(li.Price).Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Store persists the serialized line items of one cart under a key.
//
// Contract: Load returns an empty slice and nil error when nothing is
// stored under the key OR when the stored data is malformed — a cart
// that cannot be read is indistinguishable from no cart, and must
// never fail a page load. Save overwrites the full cart.
type Store interface {
	Load(ctx context.Context, key string) ([]LineItem, error)
	Save(ctx context.Context, key string, items []LineItem) error
}
