package payments

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/webhook"
)

const (
	eventPaymentSucceeded = "payment_intent.succeeded"
	eventPaymentFailed    = "payment_intent.payment_failed"
)

// StripeWebhookVerifier authenticates Stripe webhook deliveries against the
// endpoint signing secret.
type StripeWebhookVerifier struct {
	secret string
}

// NewStripeWebhookVerifier constructs the verifier.
func NewStripeWebhookVerifier(secret string) (*StripeWebhookVerifier, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, errors.New("stripe: webhook secret is required")
	}
	return &StripeWebhookVerifier{secret: secret}, nil
}

// VerifyEvent checks the Stripe-Signature header against the raw payload
// before any of it is parsed as trusted data, then maps the event onto the
// closed Outcome set.
func (v *StripeWebhookVerifier) VerifyEvent(payload []byte, signatureHeader string) (WebhookEvent, error) {
	if v == nil {
		return WebhookEvent{}, errors.New("stripe: verifier is nil")
	}
	if strings.TrimSpace(signatureHeader) == "" {
		return WebhookEvent{}, fmt.Errorf("%w: missing signature header", ErrInvalidSignature)
	}

	// The API-version pin is about payload shape, not authenticity; an
	// account pinned to another version must not have its events dropped.
	event, err := webhook.ConstructEventWithOptions(payload, signatureHeader, v.secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return WebhookEvent{}, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	out := WebhookEvent{Type: string(event.Type)}
	switch string(event.Type) {
	case eventPaymentSucceeded:
		out.Outcome = OutcomeSucceeded
	case eventPaymentFailed:
		out.Outcome = OutcomeFailed
	default:
		out.Outcome = OutcomeIgnored
		return out, nil
	}

	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return WebhookEvent{}, fmt.Errorf("stripe: decode payment intent: %w", err)
	}
	out.IntentID = intent.ID
	out.Metadata = intent.Metadata
	return out, nil
}
