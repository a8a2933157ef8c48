package checkout

import (
	"context"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/ovenbird/bakehouse/internal/domain/cart"
)

// DefaultReturnDelay is how long a successful checkout shows its
// confirmation before the flow returns to Browsing.
const DefaultReturnDelay = 3 * time.Second

// Sentinel errors for flow misuse.
var (
	ErrEmptyCart  = errors.New("cart is empty")
	ErrNotInForm  = errors.New("checkout form is not open")
	ErrSubmission = errors.New("order submission failed")
)

// Flow drives one checkout instance from Browsing through Success.
//
// The summary and total handed to the form (and later submitted) are
// re-derived from live cart state at each step, so a cart mutated
// while the form is open is submitted as it actually is.
//
// Operations must be serialized by the caller, the same way browser
// event callbacks run to completion one at a time. The mutex only
// covers the state word, which the return timer flips from its own
// goroutine after a successful submission.
type Flow struct {
	cart        *cart.Manager
	submitter   Submitter
	returnDelay time.Duration

	mu           sync.Mutex
	state        State
	confirmation string
	returnTimer  *time.Timer
}

// FlowOption configures a Flow.
type FlowOption func(*Flow)

// WithReturnDelay overrides DefaultReturnDelay.
func WithReturnDelay(d time.Duration) FlowOption {
	return func(f *Flow) { f.returnDelay = d }
}

// NewFlow creates a Flow over the given cart in the Browsing state.
func NewFlow(m *cart.Manager, s Submitter, opts ...FlowOption) *Flow {
	f := &Flow{
		cart:        m,
		submitter:   s,
		returnDelay: DefaultReturnDelay,
		state:       Browsing,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// State returns the flow's current state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Confirmation returns the confirmation message after a successful
// submission, or empty.
func (f *Flow) Confirmation() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.confirmation
}

// Begin opens the checkout form. It returns the summary and formatted
// total to pre-populate the form with, or ErrEmptyCart when there is
// nothing to check out.
func (f *Flow) Begin() (summary, total string, err error) {
	if f.cart.ItemCount() == 0 {
		return "", "", ErrEmptyCart
	}

	f.mu.Lock()
	if f.returnTimer != nil {
		f.returnTimer.Stop()
		f.returnTimer = nil
	}
	f.confirmation = ""
	f.state = FormEntry
	f.mu.Unlock()

	return Summarize(f.cart.Items()), FormatTotal(f.cart.Total()), nil
}

// Submit validates the form, builds the submission from live cart
// state, and delivers it. On success the cart is cleared, the state
// becomes Success, and after the return delay the flow goes back to
// Browsing. On failure the cart is untouched and the state returns to
// FormEntry so the user can retry.
func (f *Flow) Submit(ctx context.Context, form Form) (*Submission, error) {
	if f.State() != FormEntry {
		return nil, ErrNotInForm
	}
	if err := form.Validate(); err != nil {
		return nil, err
	}

	sub := Submission{
		ID:          uuid.New().String(),
		Form:        form,
		CartSummary: Summarize(f.cart.Items()),
		Total:       FormatTotal(f.cart.Total()),
	}

	f.setState(Submitting)
	if err := f.submitter.Submit(ctx, sub); err != nil {
		f.setState(FormEntry)
		return nil, errors.Wrap(ErrSubmission, err.Error())
	}

	// Clear only after the remote acknowledged: a failed submission
	// must not lose the order contents.
	if err := f.cart.Clear(ctx); err != nil {
		return nil, errors.Wrap(err, "clear cart after submission")
	}

	f.mu.Lock()
	f.state = Success
	f.confirmation = "Thank you, " + form.Name + "! Your order has been placed."
	f.returnTimer = time.AfterFunc(f.returnDelay, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.state == Success {
			f.state = Browsing
			f.confirmation = ""
		}
	})
	f.mu.Unlock()

	return &sub, nil
}

// Cancel closes the form without submitting and returns to Browsing.
func (f *Flow) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == FormEntry {
		f.state = Browsing
	}
}

func (f *Flow) setState(s State) {
	f.mu.Lock()
	f.state = s
	f.mu.Unlock()
}
