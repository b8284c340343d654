package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/david1984moore/natalybakery-api/internal/payments"
	"github.com/david1984moore/natalybakery-api/internal/platform/httpx"
	"github.com/david1984moore/natalybakery-api/internal/repositories"
	"github.com/david1984moore/natalybakery-api/internal/services"
)

var (
	errEmptyBody    = errors.New("request body is required")
	errBodyTooLarge = errors.New("request body exceeds the allowed size")
)

func readLimitedBody(r *http.Request, limit int64) ([]byte, error) {
	if r == nil || r.Body == nil {
		return nil, errEmptyBody
	}
	reader := io.LimitReader(r.Body, limit+1)
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, errEmptyBody
	}
	if int64(len(data)) > limit {
		return nil, errBodyTooLarge
	}
	return data, nil
}

func writeBodyError(ctx context.Context, w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	if errors.Is(err, errBodyTooLarge) {
		status = http.StatusRequestEntityTooLarge
	}
	httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), status))
}

// writeServiceError maps service-layer failures onto the JSON error envelope.
func writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		httpx.WriteError(ctx, w, httpx.
			NewError("validation_failed", "one or more fields are invalid", http.StatusBadRequest).
			WithDetails(map[string]any{"fields": verr.Fields}))
		return
	}

	var pErr *services.PaymentUnavailableError
	if errors.As(err, &pErr) {
		httpx.WriteError(ctx, w, httpx.
			NewError("payment_unavailable", "the order was saved but the payment could not be started", http.StatusBadGateway).
			WithDetails(map[string]any{
				"orderId":     pErr.OrderID,
				"orderNumber": pErr.OrderNumber,
			}))
		return
	}

	switch {
	case errors.Is(err, services.ErrSameDayCutoff):
		httpx.WriteError(ctx, w, httpx.NewError("same_day_cutoff", "same-day orders are closed for today", http.StatusUnprocessableEntity))
	case errors.Is(err, services.ErrOrderNotFound):
		httpx.WriteError(ctx, w, httpx.NewError("order_not_found", "order not found", http.StatusNotFound))
	case errors.Is(err, services.ErrDeliveryConfirmed):
		httpx.WriteError(ctx, w, httpx.NewError("delivery_already_confirmed", "delivery was already confirmed for this order", http.StatusConflict))
	case errors.Is(err, services.ErrInvalidTransition):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_status_transition", "the requested status change is not allowed", http.StatusConflict))
	case errors.Is(err, services.ErrWebhookOrderMissing):
		httpx.WriteError(ctx, w, httpx.NewError("missing_order_reference", "event does not reference an order", http.StatusBadRequest))
	case errors.Is(err, payments.ErrInvalidSignature):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_signature", "webhook signature verification failed", http.StatusBadRequest))
	case errors.Is(err, repositories.ErrNotFound):
		httpx.WriteError(ctx, w, httpx.NewError("not_found", "resource not found", http.StatusNotFound))
	default:
		httpx.WriteError(ctx, w, httpx.NewError("internal_error", "an unexpected error occurred", http.StatusInternalServerError))
	}
}
