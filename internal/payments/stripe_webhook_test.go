package payments

import (
	"encoding/hex"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stripe/stripe-go/v78/webhook"
)

const testWebhookSecret = "whsec_test_secret"

func signedHeader(t *testing.T, payload []byte, secret string, at time.Time) string {
	t.Helper()
	signature := webhook.ComputeSignature(at, payload, secret)
	return fmt.Sprintf("t=%d,v1=%s", at.Unix(), hex.EncodeToString(signature))
}

func succeededPayload(orderID string) []byte {
	return []byte(fmt.Sprintf(`{
		"id": "evt_1",
		"type": "payment_intent.succeeded",
		"data": {"object": {"id": "pi_123", "object": "payment_intent", "metadata": {"order_id": %q}}}
	}`, orderID))
}

func TestStripeWebhookVerifierAcceptsSignedSucceededEvent(t *testing.T) {
	verifier, err := NewStripeWebhookVerifier(testWebhookSecret)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	payload := succeededPayload("ord_1")
	header := signedHeader(t, payload, testWebhookSecret, time.Now())

	event, err := verifier.VerifyEvent(payload, header)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if event.Outcome != OutcomeSucceeded {
		t.Fatalf("expected succeeded outcome, got %s", event.Outcome)
	}
	if event.IntentID != "pi_123" {
		t.Fatalf("expected intent pi_123, got %s", event.IntentID)
	}
	if event.OrderID() != "ord_1" {
		t.Fatalf("expected order_id ord_1, got %q", event.OrderID())
	}
}

func TestStripeWebhookVerifierMapsFailedEvents(t *testing.T) {
	verifier, err := NewStripeWebhookVerifier(testWebhookSecret)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	payload := []byte(`{
		"id": "evt_2",
		"type": "payment_intent.payment_failed",
		"data": {"object": {"id": "pi_456", "object": "payment_intent", "metadata": {"order_id": "ord_2"}}}
	}`)
	header := signedHeader(t, payload, testWebhookSecret, time.Now())

	event, err := verifier.VerifyEvent(payload, header)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if event.Outcome != OutcomeFailed {
		t.Fatalf("expected failed outcome, got %s", event.Outcome)
	}
}

func TestStripeWebhookVerifierIgnoresOtherEventTypes(t *testing.T) {
	verifier, err := NewStripeWebhookVerifier(testWebhookSecret)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	payload := []byte(`{
		"id": "evt_3",
		"type": "payment_intent.created",
		"data": {"object": {"id": "pi_789", "object": "payment_intent"}}
	}`)
	header := signedHeader(t, payload, testWebhookSecret, time.Now())

	event, err := verifier.VerifyEvent(payload, header)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if event.Outcome != OutcomeIgnored {
		t.Fatalf("expected ignored outcome, got %s", event.Outcome)
	}
}

func TestStripeWebhookVerifierToleratesAPIVersionDrift(t *testing.T) {
	verifier, err := NewStripeWebhookVerifier(testWebhookSecret)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	payload := []byte(`{
		"id": "evt_4",
		"api_version": "2020-08-27",
		"type": "payment_intent.succeeded",
		"data": {"object": {"id": "pi_123", "object": "payment_intent", "metadata": {"order_id": "ord_1"}}}
	}`)
	header := signedHeader(t, payload, testWebhookSecret, time.Now())

	event, err := verifier.VerifyEvent(payload, header)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if event.Outcome != OutcomeSucceeded {
		t.Fatalf("expected succeeded outcome, got %s", event.Outcome)
	}
}

func TestStripeWebhookVerifierRejectsBadSignature(t *testing.T) {
	verifier, err := NewStripeWebhookVerifier(testWebhookSecret)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	payload := succeededPayload("ord_1")

	cases := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "wrong secret", header: signedHeader(t, payload, "whsec_other", time.Now())},
		{name: "garbage header", header: "t=notatime,v1=deadbeef"},
		{name: "stale timestamp", header: signedHeader(t, payload, testWebhookSecret, time.Now().Add(-time.Hour))},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := verifier.VerifyEvent(payload, tc.header); !errors.Is(err, ErrInvalidSignature) {
				t.Fatalf("expected ErrInvalidSignature, got %v", err)
			}
		})
	}
}

func TestStripeWebhookVerifierRejectsTamperedPayload(t *testing.T) {
	verifier, err := NewStripeWebhookVerifier(testWebhookSecret)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	payload := succeededPayload("ord_1")
	header := signedHeader(t, payload, testWebhookSecret, time.Now())
	tampered := succeededPayload("ord_other")

	if _, err := verifier.VerifyEvent(tampered, header); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}
