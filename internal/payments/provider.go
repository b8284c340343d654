package payments

import (
	"context"
	"errors"
)

// Outcome is the closed set of webhook results the order lifecycle reacts to.
// Anything the processor sends outside succeeded/failed maps to OutcomeIgnored
// and is acknowledged without a state change.
type Outcome string

const (
	// OutcomeSucceeded indicates the deposit payment cleared.
	OutcomeSucceeded Outcome = "succeeded"
	// OutcomeFailed indicates the deposit payment failed terminally.
	OutcomeFailed Outcome = "failed"
	// OutcomeIgnored indicates an event type the lifecycle does not handle.
	OutcomeIgnored Outcome = "ignored"
)

// MetadataOrderID is the metadata key carrying the order identity on intents
// and their webhook events.
const MetadataOrderID = "order_id"

var (
	// ErrInvalidSignature indicates the webhook payload failed authenticity checks.
	ErrInvalidSignature = errors.New("payments: invalid webhook signature")
	// ErrIntentFailed indicates the processor rejected the intent creation call.
	ErrIntentFailed = errors.New("payments: payment intent creation failed")
)

// IntentRequest describes a deposit-only payment intent.
type IntentRequest struct {
	// Amount is in the minor currency unit (cents).
	Amount         int64
	Currency       string
	ReceiptEmail   string
	Metadata       map[string]string
	IdempotencyKey string
}

// Intent is the processor's handle for a created payment intent.
type Intent struct {
	ID           string
	ClientSecret string
	Status       string
}

// Provider creates payment intents with a third-party processor.
type Provider interface {
	CreateDepositIntent(ctx context.Context, req IntentRequest) (Intent, error)
}

// WebhookEvent is a verified, normalised payment-outcome notification.
type WebhookEvent struct {
	Type     string
	Outcome  Outcome
	IntentID string
	Metadata map[string]string
}

// OrderID returns the order identity carried in the event metadata.
func (e WebhookEvent) OrderID() string {
	return e.Metadata[MetadataOrderID]
}

// WebhookVerifier authenticates a raw webhook delivery and maps it onto the
// closed Outcome set. Verification happens before the payload is trusted.
type WebhookVerifier interface {
	VerifyEvent(payload []byte, signatureHeader string) (WebhookEvent, error)
}
