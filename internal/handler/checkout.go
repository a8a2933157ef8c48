package handler

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/ovenbird/bakehouse/internal/domain/checkout"
)

type checkoutResponse struct {
	SubmissionID string `json:"submissionId"`
	Confirmation string `json:"confirmation"`
	Summary      string `json:"summary"`
	Total        string `json:"total"`
}

// submitCheckout runs one cart through the full checkout flow: open
// the form, validate the submitted fields, forward the order, and
// clear the cart once the remote side acknowledges it.
func (h *Handler) submitCheckout(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "cannot parse form")
		return
	}
	form := checkout.Form{
		Name:         r.PostFormValue("name"),
		Email:        r.PostFormValue("email"),
		Phone:        r.PostFormValue("phone"),
		PickupDate:   r.PostFormValue("pickup_date"),
		PickupTime:   r.PostFormValue("pickup_time"),
		Instructions: r.PostFormValue("instructions"),
	}

	ctx := r.Context()
	m := h.sessionManager(ctx, w, r)
	flow := checkout.NewFlow(m, h.submitter)

	if _, _, err := flow.Begin(); err != nil {
		if errors.Is(err, checkout.ErrEmptyCart) {
			writeError(w, http.StatusBadRequest, "cart is empty")
			return
		}
		zctx.From(ctx).Error("begin checkout", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "cannot start checkout")
		return
	}

	sub, err := flow.Submit(ctx, form)
	if err != nil {
		var missing *checkout.MissingFieldError
		switch {
		case errors.As(err, &missing):
			writeError(w, http.StatusUnprocessableEntity, missing.Error())
		case errors.Is(err, checkout.ErrSubmission):
			zctx.From(ctx).Error("forward order", zap.Error(err))
			writeError(w, http.StatusBadGateway, "ordering service unavailable")
		default:
			zctx.From(ctx).Error("submit checkout", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "cannot submit order")
		}
		return
	}

	writeJSON(w, http.StatusOK, checkoutResponse{
		SubmissionID: sub.ID,
		Confirmation: flow.Confirmation(),
		Summary:      sub.CartSummary,
		Total:        sub.Total,
	})
}
