package checkout

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-faster/errors"
)

// HTTPSubmitter posts submissions form-encoded to an external ordering
// endpoint. Any 2xx response counts as acknowledgement; no response
// body is consumed beyond draining it.
type HTTPSubmitter struct {
	endpoint string
	client   *http.Client
}

// NewHTTPSubmitter creates a submitter targeting the given endpoint.
// A nil client falls back to one with a 15s timeout.
func NewHTTPSubmitter(endpoint string, client *http.Client) *HTTPSubmitter {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &HTTPSubmitter{endpoint: endpoint, client: client}
}

// Submit delivers one submission. It is a single attempt: the caller
// decides whether the user retries.
func (s *HTTPSubmitter) Submit(ctx context.Context, sub Submission) error {
	form := url.Values{
		"submission_id": {sub.ID},
		"name":          {sub.Form.Name},
		"email":         {sub.Form.Email},
		"phone":         {sub.Form.Phone},
		"pickup_date":   {sub.Form.PickupDate},
		"pickup_time":   {sub.Form.PickupTime},
		"instructions":  {sub.Form.Instructions},
		"order_summary": {sub.CartSummary},
		"order_total":   {sub.Total},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "post order")
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.Errorf("ordering endpoint returned %s", resp.Status)
	}
	return nil
}
