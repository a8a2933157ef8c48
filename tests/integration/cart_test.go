//go:build integration

package integration

import (
	"net/http"
	"testing"
)

func TestCart_AddAndMerge(t *testing.T) {
	client := newSessionClient(t)

	resp := doJSON(t, client, http.MethodPost, "/api/cart/items", `{"index":0,"quantity":2}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doJSON(t, client, http.MethodPost, "/api/cart/items", `{"index":0}`)
	defer resp.Body.Close()

	cart := decodeJSON[cartResponse](t, resp)
	if len(cart.Items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(cart.Items))
	}
	if cart.Items[0].Quantity != 3 {
		t.Errorf("quantity: got %d, want 3", cart.Items[0].Quantity)
	}
	if cart.Total != "$12.00" {
		t.Errorf("total: got %q, want $12.00", cart.Total)
	}
}

func TestCart_SurvivesNewRequest(t *testing.T) {
	client := newSessionClient(t)

	resp := doJSON(t, client, http.MethodPost, "/api/cart/items", `{"index":1}`)
	resp.Body.Close()

	// The cart is keyed by the session cookie, so a fresh GET sees it.
	resp = doGet(t, client, "/api/cart")
	defer resp.Body.Close()

	cart := decodeJSON[cartResponse](t, resp)
	if cart.Count != 1 {
		t.Fatalf("count: got %d, want 1", cart.Count)
	}
	if cart.Items[0].Title != "Sourdough Loaf" {
		t.Errorf("title: got %q", cart.Items[0].Title)
	}
}

func TestCart_UpdateAndRemove(t *testing.T) {
	client := newSessionClient(t)

	doJSON(t, client, http.MethodPost, "/api/cart/items", `{"index":0,"quantity":2}`).Body.Close()
	doJSON(t, client, http.MethodPost, "/api/cart/items", `{"index":2}`).Body.Close()

	// Dropping the first line to zero removes it and shifts the rest.
	resp := doJSON(t, client, http.MethodPatch, "/api/cart/items/0", `{"delta":-2}`)
	defer resp.Body.Close()

	cart := decodeJSON[cartResponse](t, resp)
	if len(cart.Items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(cart.Items))
	}
	if cart.Items[0].Title != "Cardamom Bun" {
		t.Errorf("title: got %q", cart.Items[0].Title)
	}

	// Past-the-end positions change nothing.
	resp = doJSON(t, client, http.MethodPatch, "/api/cart/items/7", `{"delta":-1}`)
	defer resp.Body.Close()

	cart = decodeJSON[cartResponse](t, resp)
	if cart.Count != 1 {
		t.Errorf("count after no-op: got %d, want 1", cart.Count)
	}
}

func TestCart_InvalidQuantity(t *testing.T) {
	client := newSessionClient(t)

	resp := doJSON(t, client, http.MethodPost, "/api/cart/items", `{"index":0,"quantity":0}`)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
}

func TestCart_Clear(t *testing.T) {
	client := newSessionClient(t)

	doJSON(t, client, http.MethodPost, "/api/cart/items", `{"index":0,"quantity":4}`).Body.Close()

	resp := doJSON(t, client, http.MethodDelete, "/api/cart", "")
	defer resp.Body.Close()

	cart := decodeJSON[cartResponse](t, resp)
	if cart.Count != 0 {
		t.Errorf("count: got %d, want 0", cart.Count)
	}
	if cart.Total != "$0.00" {
		t.Errorf("total: got %q, want $0.00", cart.Total)
	}
}
