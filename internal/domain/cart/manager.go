package cart

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/ovenbird/bakehouse/internal/domain/catalog"
)

// ErrInvalidQuantity is returned when Add is called with a quantity
// of zero or less.
var ErrInvalidQuantity = errors.New("quantity must be greater than 0")

// Manager is the single source of truth for one cart's contents within
// a session. Every mutation synchronously writes the full cart back to
// the Store before observers are notified; the in-memory state and the
// persisted state never diverge between operations.
//
// Manager is not safe for concurrent use. Callers serialize access the
// same way a browser event loop does: one operation runs to completion
// before the next starts. Across sessions the Store is last-writer-wins.
type Manager struct {
	store Store
	key   string
	items []LineItem

	onCount  func(count int)
	onRender func(items []LineItem)
}

// NewManager creates a Manager for the cart stored under key.
// Call Load before the first mutation to hydrate persisted state.
func NewManager(store Store, key string) *Manager {
	return &Manager{store: store, key: key}
}

// OnCountChange registers the badge-count observer, invoked after every
// mutation with the new item count.
func (m *Manager) OnCountChange(fn func(count int)) {
	m.onCount = fn
}

// OnRender registers the render observer, invoked after every mutation
// with a snapshot of the cart. It always fires after the count observer.
func (m *Manager) OnRender(fn func(items []LineItem)) {
	m.onRender = fn
}

// Load hydrates the cart from the Store. It never fails the caller:
// absent or unreadable persisted state degrades to an empty cart.
func (m *Manager) Load(ctx context.Context) {
	items, err := m.store.Load(ctx, m.key)
	if err != nil {
		items = nil
	}
	m.items = items
}

// Add merges qty units of the product into the cart: an existing line
// with the same title has its quantity incremented, otherwise a new
// line is appended with the price and image copied from the product.
func (m *Manager) Add(ctx context.Context, p catalog.Product, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}

	merged := false
	for i := range m.items {
		if m.items[i].Title == p.Title {
			m.items[i].Quantity += qty
			merged = true
			break
		}
	}
	if !merged {
		m.items = append(m.items, LineItem{
			Title:    p.Title,
			Price:    p.Price,
			Quantity: qty,
			Image:    p.MainImage,
		})
	}

	return m.commit(ctx)
}

// UpdateQuantity adds delta to the quantity of the line at index i.
// A resulting quantity of zero or less removes the line, shifting
// later lines down one index. An out-of-range index is a no-op.
func (m *Manager) UpdateQuantity(ctx context.Context, i, delta int) error {
	if i < 0 || i >= len(m.items) {
		return nil
	}

	m.items[i].Quantity += delta
	if m.items[i].Quantity <= 0 {
		m.items = append(m.items[:i], m.items[i+1:]...)
	}

	return m.commit(ctx)
}

// Remove deletes the line at index i unconditionally.
// An out-of-range index is a no-op.
func (m *Manager) Remove(ctx context.Context, i int) error {
	if i < 0 || i >= len(m.items) {
		return nil
	}

	m.items = append(m.items[:i], m.items[i+1:]...)

	return m.commit(ctx)
}

// Clear empties the cart. Asking the user to confirm first is the
// caller's concern.
func (m *Manager) Clear(ctx context.Context) error {
	m.items = nil

	return m.commit(ctx)
}

// Total returns the sum of line subtotals. Lines without a parseable
// price contribute zero.
func (m *Manager) Total() decimal.Decimal {
	total := decimal.Zero
	for _, li := range m.items {
		total = total.Add(li.Subtotal())
	}
	return total
}

// ItemCount returns the sum of all line quantities.
func (m *Manager) ItemCount() int {
	count := 0
	for _, li := range m.items {
		count += li.Quantity
	}
	return count
}

// Items returns a snapshot of the cart in insertion order.
func (m *Manager) Items() []LineItem {
	out := make([]LineItem, len(m.items))
	copy(out, m.items)
	return out
}

// commit persists the cart and then notifies observers, count first.
func (m *Manager) commit(ctx context.Context) error {
	if err := m.store.Save(ctx, m.key, m.items); err != nil {
		return errors.Wrap(err, "save cart")
	}
	if m.onCount != nil {
		m.onCount(m.ItemCount())
	}
	if m.onRender != nil {
		m.onRender(m.Items())
	}
	return nil
}
