package handlers

import (
	"context"

	"github.com/david1984moore/natalybakery-api/internal/domain"
	"github.com/david1984moore/natalybakery-api/internal/repositories"
	"github.com/david1984moore/natalybakery-api/internal/services"
)

type checkoutServiceStub struct {
	fn func(ctx context.Context, cmd services.CheckoutCommand) (services.CheckoutResult, error)
}

func (s *checkoutServiceStub) CreateCheckout(ctx context.Context, cmd services.CheckoutCommand) (services.CheckoutResult, error) {
	return s.fn(ctx, cmd)
}

type orderServiceStub struct {
	placeFn   func(ctx context.Context, cmd services.PlaceOrderCommand) (services.PlaceOrderResult, error)
	getFn     func(ctx context.Context, orderID string) (domain.Order, error)
	listFn    func(ctx context.Context, filter repositories.OrderListFilter) ([]domain.Order, error)
	confirmFn func(ctx context.Context, orderID string) (domain.Order, error)
	statusFn  func(ctx context.Context, orderID string, next domain.OrderStatus) (domain.Order, error)
}

func (s *orderServiceStub) PlaceOrder(ctx context.Context, cmd services.PlaceOrderCommand) (services.PlaceOrderResult, error) {
	if s.placeFn != nil {
		return s.placeFn(ctx, cmd)
	}
	return services.PlaceOrderResult{}, nil
}

func (s *orderServiceStub) GetOrder(ctx context.Context, orderID string) (domain.Order, error) {
	if s.getFn != nil {
		return s.getFn(ctx, orderID)
	}
	return domain.Order{}, services.ErrOrderNotFound
}

func (s *orderServiceStub) ListOrders(ctx context.Context, filter repositories.OrderListFilter) ([]domain.Order, error) {
	if s.listFn != nil {
		return s.listFn(ctx, filter)
	}
	return nil, nil
}

func (s *orderServiceStub) ConfirmDelivery(ctx context.Context, orderID string) (domain.Order, error) {
	if s.confirmFn != nil {
		return s.confirmFn(ctx, orderID)
	}
	return domain.Order{}, services.ErrOrderNotFound
}

func (s *orderServiceStub) UpdateStatus(ctx context.Context, orderID string, next domain.OrderStatus) (domain.Order, error) {
	if s.statusFn != nil {
		return s.statusFn(ctx, orderID, next)
	}
	return domain.Order{}, services.ErrOrderNotFound
}

type webhookServiceStub struct {
	fn func(ctx context.Context, payload []byte, signatureHeader string) (services.WebhookResult, error)
}

func (s *webhookServiceStub) HandleEvent(ctx context.Context, payload []byte, signatureHeader string) (services.WebhookResult, error) {
	return s.fn(ctx, payload, signatureHeader)
}

type contactServiceStub struct {
	submitFn func(ctx context.Context, cmd services.ContactCommand) (domain.Contact, error)
	listFn   func(ctx context.Context, limit int) ([]domain.Contact, error)
	updateFn func(ctx context.Context, contactID string, status domain.ContactStatus) error
}

func (s *contactServiceStub) SubmitMessage(ctx context.Context, cmd services.ContactCommand) (domain.Contact, error) {
	if s.submitFn != nil {
		return s.submitFn(ctx, cmd)
	}
	return domain.Contact{}, nil
}

func (s *contactServiceStub) ListMessages(ctx context.Context, limit int) ([]domain.Contact, error) {
	if s.listFn != nil {
		return s.listFn(ctx, limit)
	}
	return nil, nil
}

func (s *contactServiceStub) UpdateMessageStatus(ctx context.Context, contactID string, status domain.ContactStatus) error {
	if s.updateFn != nil {
		return s.updateFn(ctx, contactID, status)
	}
	return nil
}
