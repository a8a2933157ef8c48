package checkout

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPSubmitter_PostsFormEncoded(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		got = map[string]string{}
		for k := range r.PostForm {
			got[k] = r.PostForm.Get(k)
		}
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := NewHTTPSubmitter(srv.URL, srv.Client())
	err := s.Submit(context.Background(), Submission{
		ID:          "sub-1",
		Form:        validForm(),
		CartSummary: "Croissant x2 @ $4.00 each = $8.00",
		Total:       "$8.00",
	})
	require.NoError(t, err)

	assert.Equal(t, "sub-1", got["submission_id"])
	assert.Equal(t, "Ada", got["name"])
	assert.Equal(t, "Croissant x2 @ $4.00 each = $8.00", got["order_summary"])
	assert.Equal(t, "$8.00", got["order_total"])
}

func TestHTTPSubmitter_Non2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	s := NewHTTPSubmitter(srv.URL, srv.Client())
	err := s.Submit(context.Background(), Submission{Form: validForm()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
