package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/david1984moore/natalybakery-api/internal/domain"
	"github.com/david1984moore/natalybakery-api/internal/payments"
	"github.com/david1984moore/natalybakery-api/internal/repositories"
)

// PaymentWebhookServiceDeps wires the webhook service.
type PaymentWebhookServiceDeps struct {
	Orders   repositories.OrderRepository
	Verifier payments.WebhookVerifier
	Notifier Notifier

	Clock  func() time.Time
	Logger Logger
}

type paymentWebhookService struct {
	orders   repositories.OrderRepository
	verifier payments.WebhookVerifier
	notifier Notifier
	clock    func() time.Time
	logger   Logger
}

// NewPaymentWebhookService validates dependencies and returns a
// PaymentWebhookService.
func NewPaymentWebhookService(deps PaymentWebhookServiceDeps) (PaymentWebhookService, error) {
	if deps.Orders == nil {
		return nil, errors.New("services: webhook requires an order repository")
	}
	if deps.Verifier == nil {
		return nil, errors.New("services: webhook requires a verifier")
	}
	svc := &paymentWebhookService{
		orders:   deps.Orders,
		verifier: deps.Verifier,
		notifier: deps.Notifier,
		clock:    deps.Clock,
		logger:   deps.Logger,
	}
	if svc.clock == nil {
		svc.clock = time.Now
	}
	if svc.logger == nil {
		svc.logger = func(context.Context, string, map[string]any) {}
	}
	return svc, nil
}

// HandleEvent authenticates the delivery, then applies its outcome. The
// payload is never trusted before the signature check passes. Redelivered
// success events are acknowledged without re-updating the order or
// re-sending email.
func (s *paymentWebhookService) HandleEvent(ctx context.Context, payload []byte, signatureHeader string) (WebhookResult, error) {
	event, err := s.verifier.VerifyEvent(payload, signatureHeader)
	if err != nil {
		return WebhookResult{}, err
	}

	result := WebhookResult{EventType: event.Type, Outcome: string(event.Outcome)}

	switch event.Outcome {
	case payments.OutcomeSucceeded:
		return s.applyDepositPaid(ctx, event, result)
	case payments.OutcomeFailed:
		return s.applyDepositFailed(ctx, event, result)
	default:
		s.logger(ctx, "webhook.ignored", map[string]any{"type": event.Type})
		return result, nil
	}
}

func (s *paymentWebhookService) applyDepositPaid(ctx context.Context, event payments.WebhookEvent, result WebhookResult) (WebhookResult, error) {
	orderID := event.OrderID()
	if orderID == "" {
		return result, fmt.Errorf("%w: event %s", ErrWebhookOrderMissing, event.Type)
	}
	result.OrderID = orderID

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return result, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
		}
		return result, fmt.Errorf("services: load order for webhook: %w", err)
	}

	if order.DepositPaid && order.Status == domain.OrderStatusConfirmed {
		result.Duplicate = true
		s.logger(ctx, "webhook.duplicate", map[string]any{
			"orderId": orderID,
			"type":    event.Type,
		})
		return result, nil
	}

	paidAt := s.clock().UTC()
	if err := s.orders.MarkDepositPaid(ctx, orderID, paidAt); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return result, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
		}
		return result, fmt.Errorf("services: mark deposit paid: %w", err)
	}
	s.logger(ctx, "webhook.deposit_paid", map[string]any{
		"orderId":     orderID,
		"orderNumber": order.OrderNumber,
		"intentId":    event.IntentID,
	})

	order.DepositPaid = true
	order.DepositPaidAt = &paidAt
	order.Status = domain.OrderStatusConfirmed
	if s.notifier != nil {
		s.notifier.NotifyDepositPaid(ctx, order)
	}
	return result, nil
}

func (s *paymentWebhookService) applyDepositFailed(ctx context.Context, event payments.WebhookEvent, result WebhookResult) (WebhookResult, error) {
	orderID := event.OrderID()
	if orderID == "" {
		return result, fmt.Errorf("%w: event %s", ErrWebhookOrderMissing, event.Type)
	}
	result.OrderID = orderID

	if err := s.orders.MarkCancelled(ctx, orderID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return result, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
		}
		return result, fmt.Errorf("services: cancel order after failed payment: %w", err)
	}
	s.logger(ctx, "webhook.deposit_failed", map[string]any{
		"orderId":  orderID,
		"intentId": event.IntentID,
	})
	return result, nil
}
