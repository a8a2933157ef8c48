// Package handler exposes the storefront over HTTP: content sections,
// the product catalog, per-session carts, and checkout submission.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ovenbird/bakehouse/internal/content"
	"github.com/ovenbird/bakehouse/internal/domain/cart"
	"github.com/ovenbird/bakehouse/internal/domain/catalog"
	"github.com/ovenbird/bakehouse/internal/domain/checkout"
	"github.com/ovenbird/bakehouse/internal/session"
)

// SessionCookie is the cookie carrying the visitor's session ID.
const SessionCookie = "bakehouse_session"

// sessionTTL is how long the session cookie lives. Carts outlive the
// page session by design; this bounds how long.
const sessionTTL = 30 * 24 * time.Hour

// Handler holds the storefront's request-facing dependencies.
type Handler struct {
	bundle    *content.Bundle
	catalog   *catalog.Store
	carts     cart.Store
	sessions  *session.Registry
	submitter checkout.Submitter
}

// New constructs a Handler over the loaded content bundle.
func New(
	bundle *content.Bundle,
	store *catalog.Store,
	carts cart.Store,
	sessions *session.Registry,
	submitter checkout.Submitter,
) *Handler {
	return &Handler{
		bundle:    bundle,
		catalog:   store,
		carts:     carts,
		sessions:  sessions,
		submitter: submitter,
	}
}

// Routes returns the chi router for the /api surface.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/content/hero", h.getHero)
	r.Get("/content/about", h.getAbout)
	r.Get("/content/baker", h.getBaker)

	r.Get("/products", h.listProducts)
	r.Get("/products/{index}", h.getProduct)

	r.Get("/cart", h.getCart)
	r.Post("/cart/items", h.addCartItem)
	r.Patch("/cart/items/{index}", h.updateCartItem)
	r.Delete("/cart/items/{index}", h.removeCartItem)
	r.Delete("/cart", h.clearCart)

	r.Post("/checkout", h.submitCheckout)

	return r
}

// sessionManager resolves the request's cart: a known session cookie
// hydrates the stored cart; anything else gets a fresh session (and
// cookie) with an empty cart. The bloom-backed registry lets requests
// with stale or fabricated cookies skip the storage lookup.
func (h *Handler) sessionManager(ctx context.Context, w http.ResponseWriter, r *http.Request) *cart.Manager {
	id := ""
	if c, err := r.Cookie(SessionCookie); err == nil {
		id = c.Value
	}

	known := h.sessions.Known(id)
	if !known {
		id = h.sessions.Issue()
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    id,
			Path:     "/",
			MaxAge:   int(sessionTTL.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	m := cart.NewManager(h.carts, id)
	if known {
		m.Load(ctx)
	}
	return m
}
