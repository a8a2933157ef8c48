package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovenbird/bakehouse/internal/domain/cart"
	"github.com/ovenbird/bakehouse/internal/domain/catalog"
)

type mapStore struct {
	data map[string][]cart.LineItem
}

func (s *mapStore) Load(_ context.Context, key string) ([]cart.LineItem, error) {
	return s.data[key], nil
}

func (s *mapStore) Save(_ context.Context, key string, items []cart.LineItem) error {
	s.data[key] = items
	return nil
}

type fakeSubmitter struct {
	err  error
	last *Submission
}

func (f *fakeSubmitter) Submit(_ context.Context, sub Submission) error {
	if f.err != nil {
		return f.err
	}
	f.last = &sub
	return nil
}

func validForm() Form {
	return Form{
		Name:       "Ada",
		Email:      "ada@example.com",
		Phone:      "555-0100",
		PickupDate: "2026-09-04",
		PickupTime: "10:30",
	}
}

func filledCart(t *testing.T) *cart.Manager {
	t.Helper()
	m := cart.NewManager(&mapStore{data: make(map[string][]cart.LineItem)}, "s1")
	ctx := context.Background()
	m.Load(ctx)
	require.NoError(t, m.Add(ctx, catalog.Product{Title: "Croissant", Price: "$4.00"}, 2))
	require.NoError(t, m.Add(ctx, catalog.Product{Title: "Wedding Cake"}, 1))
	return m
}

func TestBegin_EmptyCart(t *testing.T) {
	m := cart.NewManager(&mapStore{data: make(map[string][]cart.LineItem)}, "s1")
	m.Load(context.Background())
	f := NewFlow(m, &fakeSubmitter{})

	_, _, err := f.Begin()
	require.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, Browsing, f.State())
}

func TestBegin_PrepopulatesSummaryAndTotal(t *testing.T) {
	f := NewFlow(filledCart(t), &fakeSubmitter{})

	summary, total, err := f.Begin()
	require.NoError(t, err)
	assert.Equal(t, FormEntry, f.State())
	assert.Equal(t,
		"Croissant x2 @ $4.00 each = $8.00\n"+
			"Wedding Cake x1 @ Price upon request each = $0.00",
		summary)
	assert.Equal(t, "$8.00", total)
}

func TestSubmit_RequiresOpenForm(t *testing.T) {
	f := NewFlow(filledCart(t), &fakeSubmitter{})

	_, err := f.Submit(context.Background(), validForm())
	require.ErrorIs(t, err, ErrNotInForm)
}

func TestSubmit_ValidationStopsBeforeNetwork(t *testing.T) {
	sub := &fakeSubmitter{err: errors.New("must not be called")}
	f := NewFlow(filledCart(t), sub)
	_, _, err := f.Begin()
	require.NoError(t, err)

	form := validForm()
	form.Email = ""
	_, err = f.Submit(context.Background(), form)

	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "email", missing.Field)
	assert.Equal(t, FormEntry, f.State())
}

func TestSubmit_FailurePreservesCart(t *testing.T) {
	m := filledCart(t)
	f := NewFlow(m, &fakeSubmitter{err: errors.New("network down")})
	_, _, err := f.Begin()
	require.NoError(t, err)

	_, err = f.Submit(context.Background(), validForm())
	require.ErrorIs(t, err, ErrSubmission)

	assert.Equal(t, FormEntry, f.State())
	assert.Equal(t, 3, m.ItemCount())
	assert.Len(t, m.Items(), 2)
}

func TestSubmit_SuccessClearsCartAndReturnsToBrowsing(t *testing.T) {
	m := filledCart(t)
	sub := &fakeSubmitter{}
	f := NewFlow(m, sub, WithReturnDelay(20*time.Millisecond))
	_, _, err := f.Begin()
	require.NoError(t, err)

	result, err := f.Submit(context.Background(), validForm())
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.NotEmpty(t, result.ID)

	assert.Equal(t, Success, f.State())
	assert.Contains(t, f.Confirmation(), "Ada")
	assert.Zero(t, m.ItemCount())
	assert.Empty(t, m.Items())

	assert.Eventually(t, func() bool {
		return f.State() == Browsing
	}, time.Second, 5*time.Millisecond)
	assert.Empty(t, f.Confirmation())
}

func TestSubmit_SummaryDerivedFromLiveCart(t *testing.T) {
	m := filledCart(t)
	sub := &fakeSubmitter{}
	f := NewFlow(m, sub)
	_, _, err := f.Begin()
	require.NoError(t, err)

	// Mutation while the form is open: the submission reflects it.
	require.NoError(t, m.Remove(context.Background(), 1))

	_, err = f.Submit(context.Background(), validForm())
	require.NoError(t, err)
	require.NotNil(t, sub.last)
	assert.Equal(t, "Croissant x2 @ $4.00 each = $8.00", sub.last.CartSummary)
	assert.Equal(t, "$8.00", sub.last.Total)
}

func TestCancel_ReturnsToBrowsing(t *testing.T) {
	f := NewFlow(filledCart(t), &fakeSubmitter{})
	_, _, err := f.Begin()
	require.NoError(t, err)

	f.Cancel()
	assert.Equal(t, Browsing, f.State())
}

func TestFormValidate_AllRequiredFields(t *testing.T) {
	for _, field := range []string{"name", "email", "phone", "pickup_date", "pickup_time"} {
		form := validForm()
		switch field {
		case "name":
			form.Name = " "
		case "email":
			form.Email = ""
		case "phone":
			form.Phone = ""
		case "pickup_date":
			form.PickupDate = ""
		case "pickup_time":
			form.PickupTime = ""
		}

		err := form.Validate()
		var missing *MissingFieldError
		require.ErrorAs(t, err, &missing, "field %s", field)
		assert.Equal(t, field, missing.Field)
	}

	// Instructions are optional.
	form := validForm()
	form.Instructions = ""
	assert.NoError(t, form.Validate())
}
