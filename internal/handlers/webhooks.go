package handlers

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/david1984moore/natalybakery-api/internal/platform/httpx"
	"github.com/david1984moore/natalybakery-api/internal/services"
)

// Stripe caps event payloads well below this; anything larger is not a
// legitimate delivery.
const maxWebhookBody = 256 * 1024

// SignatureHeader is the header carrying the processor's payload signature.
const SignatureHeader = "Stripe-Signature"

// WebhookHandlers receives payment processor callbacks.
type WebhookHandlers struct {
	payments services.PaymentWebhookService
}

// NewWebhookHandlers constructs webhook handlers.
func NewWebhookHandlers(payments services.PaymentWebhookService) *WebhookHandlers {
	return &WebhookHandlers{payments: payments}
}

// Routes registers webhook endpoints under the provided router.
func (h *WebhookHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Post("/payment", h.paymentEvent)
}

func (h *WebhookHandlers) paymentEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.payments == nil {
		httpx.WriteError(ctx, w, httpx.NewError("webhooks_unavailable", "webhook service unavailable", http.StatusServiceUnavailable))
		return
	}

	// The raw body is what the signature covers; it must not be decoded
	// or transformed before verification.
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody+1))
	if err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "could not read request body", http.StatusBadRequest))
		return
	}
	if int64(len(payload)) > maxWebhookBody {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "payload too large", http.StatusRequestEntityTooLarge))
		return
	}

	result, err := h.payments.HandleEvent(ctx, payload, r.Header.Get(SignatureHeader))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"received":  true,
		"type":      result.EventType,
		"duplicate": result.Duplicate,
	})
}
