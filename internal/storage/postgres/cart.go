package postgres

import (
	"context"
	"encoding/json"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/ovenbird/bakehouse/internal/domain/cart"
)

var _ cart.Store = (*CartStore)(nil)

// CartStore implements cart.Store backed by PostgreSQL. Each session's
// cart is one row; the line items live in a JSONB column and the whole
// cart is overwritten on every save, matching the Manager's
// full-serialization contract.
type CartStore struct {
	pool *pgxpool.Pool
}

// NewCartStore returns a CartStore that uses the given pool.
func NewCartStore(pool *pgxpool.Pool) *CartStore {
	return &CartStore{pool: pool}
}

// Load reads the cart stored for key. A missing row loads as an empty
// cart, and so does a row whose JSON no longer unmarshals: a cart that
// cannot be read must never fail the caller.
func (s *CartStore) Load(ctx context.Context, key string) ([]cart.LineItem, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT items FROM carts WHERE session_id = $1`, key,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "load cart %q", key)
	}

	var items []cart.LineItem
	if err := json.Unmarshal(raw, &items); err != nil {
		zctx.From(ctx).Debug("Stored cart is malformed, treating as empty",
			zap.String("session_id", key),
			zap.Error(err),
		)
		return nil, nil
	}
	return items, nil
}

// Save overwrites the full cart for key.
func (s *CartStore) Save(ctx context.Context, key string, items []cart.LineItem) error {
	if items == nil {
		items = []cart.LineItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return errors.Wrapf(err, "marshal cart %q", key)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO carts (session_id, items, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (session_id)
		DO UPDATE SET items = EXCLUDED.items, updated_at = now()`,
		key, raw,
	)
	if err != nil {
		return errors.Wrapf(err, "save cart %q", key)
	}
	return nil
}

// Sessions returns every session ID that currently has a stored cart,
// used to warm the session registry on startup.
func (s *CartStore) Sessions(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT session_id FROM carts`)
	if err != nil {
		return nil, errors.Wrap(err, "list cart sessions")
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, errors.Wrap(err, "scan session id")
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
