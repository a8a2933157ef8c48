package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/ovenbird/bakehouse/internal/domain/cart"
	"github.com/ovenbird/bakehouse/internal/domain/catalog"
)

// cartLineResponse is one cart line plus its derived subtotal.
type cartLineResponse struct {
	Title        string `json:"title"`
	Price        string `json:"price,omitempty"`
	DisplayPrice string `json:"displayPrice"`
	Quantity     int    `json:"quantity"`
	Image        string `json:"image,omitempty"`
	Subtotal     string `json:"subtotal"`
}

type cartResponse struct {
	Items []cartLineResponse `json:"items"`
	Count int                `json:"count"`
	Total string             `json:"total"`
}

func toCartResponse(m *cart.Manager) cartResponse {
	items := m.Items()
	out := make([]cartLineResponse, len(items))
	for i, li := range items {
		out[i] = cartLineResponse{
			Title:        li.Title,
			Price:        li.Price,
			DisplayPrice: catalog.DisplayPrice(li.Price),
			Quantity:     li.Quantity,
			Image:        li.Image,
			Subtotal:     "$" + li.Subtotal().StringFixed(2),
		}
	}
	return cartResponse{
		Items: out,
		Count: m.ItemCount(),
		Total: "$" + m.Total().StringFixed(2),
	}
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	m := h.sessionManager(r.Context(), w, r)
	writeJSON(w, http.StatusOK, toCartResponse(m))
}

// addCartItemRequest addresses a catalog product by display index.
// Quantity defaults to 1 when omitted.
type addCartItemRequest struct {
	Index    int
	Quantity int
	hasIndex bool
}

func decodeAddCartItem(data []byte) (addCartItemRequest, error) {
	req := addCartItemRequest{Quantity: 1}
	d := jx.DecodeBytes(data)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "index":
			n, err := d.Int()
			if err != nil {
				return errors.Wrap(err, "index")
			}
			req.Index = n
			req.hasIndex = true
		case "quantity":
			n, err := d.Int()
			if err != nil {
				return errors.Wrap(err, "quantity")
			}
			req.Quantity = n
		default:
			return d.Skip()
		}
		return nil
	}); err != nil {
		return req, err
	}
	if !req.hasIndex {
		return req, errors.New("index is required")
	}
	return req, nil
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	data, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "cannot read request body")
		return
	}
	req, err := decodeAddCartItem(data)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, ok := h.catalog.ByIndex(req.Index)
	if !ok {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}

	ctx := r.Context()
	m := h.sessionManager(ctx, w, r)
	if err := m.Add(ctx, p, req.Quantity); err != nil {
		if errors.Is(err, cart.ErrInvalidQuantity) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		zctx.From(ctx).Error("add cart item", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "cannot update cart")
		return
	}
	writeJSON(w, http.StatusOK, toCartResponse(m))
}

// updateCartItem applies a quantity delta to the line at the given
// position. A delta that drops the quantity to zero or below removes
// the line; a position past the end of the cart changes nothing.
func (h *Handler) updateCartItem(w http.ResponseWriter, r *http.Request) {
	i, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "index must be an integer")
		return
	}

	data, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "cannot read request body")
		return
	}
	delta, err := decodeDelta(data)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	m := h.sessionManager(ctx, w, r)
	if err := m.UpdateQuantity(ctx, i, delta); err != nil {
		zctx.From(ctx).Error("update cart item", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "cannot update cart")
		return
	}
	writeJSON(w, http.StatusOK, toCartResponse(m))
}

func decodeDelta(data []byte) (int, error) {
	var (
		delta    int
		hasDelta bool
	)
	d := jx.DecodeBytes(data)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		if key != "delta" {
			return d.Skip()
		}
		n, err := d.Int()
		if err != nil {
			return errors.Wrap(err, "delta")
		}
		delta = n
		hasDelta = true
		return nil
	}); err != nil {
		return 0, err
	}
	if !hasDelta {
		return 0, errors.New("delta is required")
	}
	return delta, nil
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	i, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "index must be an integer")
		return
	}

	ctx := r.Context()
	m := h.sessionManager(ctx, w, r)
	if err := m.Remove(ctx, i); err != nil {
		zctx.From(ctx).Error("remove cart item", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "cannot update cart")
		return
	}
	writeJSON(w, http.StatusOK, toCartResponse(m))
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	m := h.sessionManager(ctx, w, r)
	if err := m.Clear(ctx); err != nil {
		zctx.From(ctx).Error("clear cart", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "cannot update cart")
		return
	}
	writeJSON(w, http.StatusOK, toCartResponse(m))
}
