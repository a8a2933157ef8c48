package handler

import "net/http"

// The content endpoints serve whatever loaded at startup; sections
// that failed to load already hold their fallback copy, so these never
// error.

func (h *Handler) getHero(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.bundle.Hero)
}

func (h *Handler) getAbout(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.bundle.About)
}

func (h *Handler) getBaker(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.bundle.Baker)
}
