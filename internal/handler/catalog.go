package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ovenbird/bakehouse/internal/domain/catalog"
)

// productResponse is one catalog entry as served to the page. Index is
// included because cart mutations address products by display index.
type productResponse struct {
	Index        int      `json:"index"`
	Title        string   `json:"title"`
	Price        string   `json:"price,omitempty"`
	DisplayPrice string   `json:"displayPrice"`
	Images       []string `json:"images,omitempty"`
	Description  string   `json:"description,omitempty"`
	VideoURL     string   `json:"videoUrl,omitempty"`
	IsNew        bool     `json:"isNew,omitempty"`
}

func toProductResponse(i int, p catalog.Product) productResponse {
	return productResponse{
		Index:        i,
		Title:        p.Title,
		Price:        p.Price,
		DisplayPrice: catalog.DisplayPrice(p.Price),
		Images:       p.Images(),
		Description:  p.Description,
		VideoURL:     p.VideoURL,
		IsNew:        p.IsNew,
	}
}

func (h *Handler) listProducts(w http.ResponseWriter, _ *http.Request) {
	products := h.catalog.List()
	out := make([]productResponse, len(products))
	for i, p := range products {
		out[i] = toProductResponse(i, p)
	}

	body := map[string]any{"products": out}
	if _, failed := h.bundle.SectionErrs["products"]; failed {
		body["error"] = "Unable to load products. Please try again later."
	}
	writeJSON(w, http.StatusOK, body)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	i, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "index must be an integer")
		return
	}
	p, ok := h.catalog.ByIndex(i)
	if !ok {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(i, p))
}
