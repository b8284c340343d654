package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/david1984moore/natalybakery-api/internal/domain"
	"github.com/david1984moore/natalybakery-api/internal/payments"
	"github.com/david1984moore/natalybakery-api/internal/repositories"
)

// orderRepoStub implements repositories.OrderRepository with overridable
// function fields; unset methods succeed and do nothing.
type orderRepoStub struct {
	createFn        func(ctx context.Context, order *domain.Order) error
	findFn          func(ctx context.Context, orderID string) (domain.Order, error)
	listFn          func(ctx context.Context, filter repositories.OrderListFilter) ([]domain.Order, error)
	setIntentFn     func(ctx context.Context, orderID, intentID string) error
	markPaidFn      func(ctx context.Context, orderID string, paidAt time.Time) error
	markCancelledFn func(ctx context.Context, orderID string) error
	confirmFn       func(ctx context.Context, orderID string, confirmedAt time.Time) error
	updateStatusFn  func(ctx context.Context, orderID string, status domain.OrderStatus) error
}

func (s *orderRepoStub) Create(ctx context.Context, order *domain.Order) error {
	if s.createFn != nil {
		return s.createFn(ctx, order)
	}
	return nil
}

func (s *orderRepoStub) FindByID(ctx context.Context, orderID string) (domain.Order, error) {
	if s.findFn != nil {
		return s.findFn(ctx, orderID)
	}
	return domain.Order{}, repositories.NotFoundError("order", orderID)
}

func (s *orderRepoStub) List(ctx context.Context, filter repositories.OrderListFilter) ([]domain.Order, error) {
	if s.listFn != nil {
		return s.listFn(ctx, filter)
	}
	return nil, nil
}

func (s *orderRepoStub) SetPaymentIntent(ctx context.Context, orderID, intentID string) error {
	if s.setIntentFn != nil {
		return s.setIntentFn(ctx, orderID, intentID)
	}
	return nil
}

func (s *orderRepoStub) MarkDepositPaid(ctx context.Context, orderID string, paidAt time.Time) error {
	if s.markPaidFn != nil {
		return s.markPaidFn(ctx, orderID, paidAt)
	}
	return nil
}

func (s *orderRepoStub) MarkCancelled(ctx context.Context, orderID string) error {
	if s.markCancelledFn != nil {
		return s.markCancelledFn(ctx, orderID)
	}
	return nil
}

func (s *orderRepoStub) ConfirmDelivery(ctx context.Context, orderID string, confirmedAt time.Time) error {
	if s.confirmFn != nil {
		return s.confirmFn(ctx, orderID, confirmedAt)
	}
	return nil
}

func (s *orderRepoStub) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	if s.updateStatusFn != nil {
		return s.updateStatusFn(ctx, orderID, status)
	}
	return nil
}

type contactRepoStub struct {
	createFn       func(ctx context.Context, contact *domain.Contact) error
	listFn         func(ctx context.Context, limit int) ([]domain.Contact, error)
	updateStatusFn func(ctx context.Context, contactID string, status domain.ContactStatus) error
}

func (s *contactRepoStub) Create(ctx context.Context, contact *domain.Contact) error {
	if s.createFn != nil {
		return s.createFn(ctx, contact)
	}
	return nil
}

func (s *contactRepoStub) List(ctx context.Context, limit int) ([]domain.Contact, error) {
	if s.listFn != nil {
		return s.listFn(ctx, limit)
	}
	return nil, nil
}

func (s *contactRepoStub) UpdateStatus(ctx context.Context, contactID string, status domain.ContactStatus) error {
	if s.updateStatusFn != nil {
		return s.updateStatusFn(ctx, contactID, status)
	}
	return nil
}

type providerStub struct {
	createFn func(ctx context.Context, req payments.IntentRequest) (payments.Intent, error)
	requests []payments.IntentRequest
}

func (s *providerStub) CreateDepositIntent(ctx context.Context, req payments.IntentRequest) (payments.Intent, error) {
	s.requests = append(s.requests, req)
	if s.createFn != nil {
		return s.createFn(ctx, req)
	}
	return payments.Intent{ID: "pi_test", ClientSecret: "pi_test_secret", Status: "requires_payment_method"}, nil
}

type verifierStub struct {
	event payments.WebhookEvent
	err   error
}

func (s *verifierStub) VerifyEvent(payload []byte, signatureHeader string) (payments.WebhookEvent, error) {
	if s.err != nil {
		return payments.WebhookEvent{}, s.err
	}
	return s.event, nil
}

// notifierSpy records which notifications fired.
type notifierSpy struct {
	mu       sync.Mutex
	placed   []domain.Order
	paid     []domain.Order
	contacts []domain.Contact
}

func (n *notifierSpy) NotifyOrderPlaced(_ context.Context, order domain.Order) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.placed = append(n.placed, order)
}

func (n *notifierSpy) NotifyDepositPaid(_ context.Context, order domain.Order) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paid = append(n.paid, order)
}

func (n *notifierSpy) NotifyContactReceived(_ context.Context, contact domain.Contact) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.contacts = append(n.contacts, contact)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func sequentialIDs() IDGenerator {
	var mu sync.Mutex
	counts := map[string]int{}
	return func(prefix string) string {
		mu.Lock()
		defer mu.Unlock()
		counts[prefix]++
		return fmt.Sprintf("%s%d", prefix, counts[prefix])
	}
}
