package checkout

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ovenbird/bakehouse/internal/domain/cart"
	"github.com/ovenbird/bakehouse/internal/domain/catalog"
)

// State is the position of one checkout instance in its lifecycle.
type State int

const (
	// Browsing is the initial state: the cart is shown and editable.
	Browsing State = iota
	// FormEntry means the checkout form is open. The flow returns here
	// after a failed submission so the user can retry.
	FormEntry
	// Submitting means a submission is in flight.
	Submitting
	// Success is terminal for this checkout instance: the order was
	// acknowledged and the cart has been cleared.
	Success
)

// String implements fmt.Stringer for log output.
func (s State) String() string {
	switch s {
	case Browsing:
		return "browsing"
	case FormEntry:
		return "form_entry"
	case Submitting:
		return "submitting"
	case Success:
		return "success"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Form holds the customer fields of the checkout form. All fields
// except Instructions are required.
type Form struct {
	Name         string
	Email        string
	Phone        string
	PickupDate   string
	PickupTime   string
	Instructions string
}

// MissingFieldError reports a required form field that was left empty.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("required field %s is missing", e.Field)
}

// Validate checks that every required field is present.
func (f Form) Validate() error {
	required := []struct {
		name, value string
	}{
		{"name", f.Name},
		{"email", f.Email},
		{"phone", f.Phone},
		{"pickup_date", f.PickupDate},
		{"pickup_time", f.PickupTime},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &MissingFieldError{Field: r.name}
		}
	}
	return nil
}

// Submission is the payload of one order submission. It is derived
// from the cart at submission time and exists only for the duration of
// a single attempt.
type Submission struct {
	ID          string
	Form        Form
	CartSummary string
	Total       string
}

// Submitter delivers a Submission to the ordering endpoint. One call
// is one attempt; the flow never retries on its own.
type Submitter interface {
	Submit(ctx context.Context, sub Submission) error
}

// Summarize renders the line-by-line cart summary used in submissions,
// one line per cart item:
//
//	<title> x<qty> @ <price> each = $<subtotal>
//
// Items without a price show the catalog placeholder and a zero
// subtotal.
func Summarize(items []cart.LineItem) string {
	lines := make([]string, len(items))
	for i, li := range items {
		lines[i] = fmt.Sprintf("%s x%d @ %s each = $%s",
			li.Title, li.Quantity,
			catalog.DisplayPrice(li.Price),
			li.Subtotal().StringFixed(2),
		)
	}
	return strings.Join(lines, "\n")
}

// FormatTotal renders a cart total for display and submission.
func FormatTotal(total decimal.Decimal) string {
	return "$" + total.StringFixed(2)
}
