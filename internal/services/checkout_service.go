package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/david1984moore/natalybakery-api/internal/domain"
	"github.com/david1984moore/natalybakery-api/internal/payments"
	"github.com/david1984moore/natalybakery-api/internal/repositories"
)

const defaultIntentTimeout = 10 * time.Second

// orderNumberAttempts bounds retries when a generated order number collides
// with an existing row.
const orderNumberAttempts = 3

// CheckoutServiceDeps wires the checkout service.
type CheckoutServiceDeps struct {
	Orders   repositories.OrderRepository
	Payments payments.Provider
	Numbers  *OrderNumberGenerator

	// Currency is the ISO 4217 code charged for deposits, e.g. "usd".
	Currency string
	// IntentTimeout bounds the processor call; the order row is already
	// committed by then, so a slow processor must not hold the request
	// forever.
	IntentTimeout time.Duration

	IDs    IDGenerator
	Clock  func() time.Time
	Logger Logger
}

type checkoutService struct {
	orders        repositories.OrderRepository
	payments      payments.Provider
	numbers       *OrderNumberGenerator
	currency      string
	intentTimeout time.Duration
	ids           IDGenerator
	clock         func() time.Time
	logger        Logger
}

// NewCheckoutService validates dependencies and returns a CheckoutService.
func NewCheckoutService(deps CheckoutServiceDeps) (CheckoutService, error) {
	if deps.Orders == nil {
		return nil, errors.New("services: checkout requires an order repository")
	}
	if deps.Payments == nil {
		return nil, errors.New("services: checkout requires a payment provider")
	}
	if deps.Numbers == nil {
		return nil, errors.New("services: checkout requires an order number generator")
	}
	svc := &checkoutService{
		orders:        deps.Orders,
		payments:      deps.Payments,
		numbers:       deps.Numbers,
		currency:      strings.ToLower(strings.TrimSpace(deps.Currency)),
		intentTimeout: deps.IntentTimeout,
		ids:           deps.IDs,
		clock:         deps.Clock,
		logger:        deps.Logger,
	}
	if svc.currency == "" {
		svc.currency = "usd"
	}
	if svc.intentTimeout <= 0 {
		svc.intentTimeout = defaultIntentTimeout
	}
	if svc.ids == nil {
		svc.ids = NewULID
	}
	if svc.clock == nil {
		svc.clock = time.Now
	}
	if svc.logger == nil {
		svc.logger = func(context.Context, string, map[string]any) {}
	}
	return svc, nil
}

// CreateCheckout persists the order first and only then asks the processor
// for a deposit intent. When the processor call fails the order survives as
// PENDING and the caller receives its identity for a later retry.
func (s *checkoutService) CreateCheckout(ctx context.Context, cmd CheckoutCommand) (CheckoutResult, error) {
	var v fieldErrors
	validateCustomer(&v, cmd.CustomerName, cmd.CustomerEmail)
	validateItems(&v, cmd.Items)
	validateDelivery(&v, cmd.DeliveryLocation, cmd.DeliveryDate, cmd.DeliveryTime, false)
	if err := v.err(); err != nil {
		return CheckoutResult{}, err
	}

	order, err := s.buildOrder(cmd)
	if err != nil {
		return CheckoutResult{}, err
	}
	if err := createWithFreshNumbers(ctx, s.orders, s.numbers, &order); err != nil {
		return CheckoutResult{}, fmt.Errorf("services: create checkout order: %w", err)
	}
	s.logger(ctx, "checkout.order_created", map[string]any{
		"orderId":     order.ID,
		"orderNumber": order.OrderNumber,
		"total":       order.TotalAmount.StringFixed(2),
	})

	intentCtx, cancel := context.WithTimeout(ctx, s.intentTimeout)
	defer cancel()

	intent, err := s.payments.CreateDepositIntent(intentCtx, payments.IntentRequest{
		Amount:       MinorUnits(order.DepositAmount),
		Currency:     s.currency,
		ReceiptEmail: order.CustomerEmail,
		Metadata: map[string]string{
			payments.MetadataOrderID: order.ID,
		},
		IdempotencyKey: uuid.NewString(),
	})
	if err != nil {
		s.logger(ctx, "checkout.intent_failed", map[string]any{
			"orderId": order.ID,
			"error":   err.Error(),
		})
		return CheckoutResult{}, &PaymentUnavailableError{OrderID: order.ID, OrderNumber: order.OrderNumber, Err: err}
	}

	if err := s.orders.SetPaymentIntent(ctx, order.ID, intent.ID); err != nil {
		s.logger(ctx, "checkout.intent_record_failed", map[string]any{
			"orderId":  order.ID,
			"intentId": intent.ID,
			"error":    err.Error(),
		})
		return CheckoutResult{}, &PaymentUnavailableError{OrderID: order.ID, OrderNumber: order.OrderNumber, Err: err}
	}

	return CheckoutResult{
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		ClientSecret:    intent.ClientSecret,
		TotalAmount:     order.TotalAmount,
		DepositAmount:   order.DepositAmount,
		RemainingAmount: order.RemainingAmount,
	}, nil
}

func (s *checkoutService) buildOrder(cmd CheckoutCommand) (domain.Order, error) {
	orderID := s.ids(OrderIDPrefix)
	items, total := buildOrderItems(s.ids, orderID, cmd.Items)
	deposit, remaining, err := DepositSplit(total)
	if err != nil {
		return domain.Order{}, err
	}
	return domain.Order{
		ID:               orderID,
		CustomerName:     strings.TrimSpace(cmd.CustomerName),
		CustomerEmail:    strings.TrimSpace(cmd.CustomerEmail),
		CustomerPhone:    strings.TrimSpace(cmd.CustomerPhone),
		TotalAmount:      total,
		DepositAmount:    deposit,
		RemainingAmount:  remaining,
		DeliveryLocation: strings.TrimSpace(cmd.DeliveryLocation),
		DeliveryDate:     strings.TrimSpace(cmd.DeliveryDate),
		DeliveryTime:     strings.TrimSpace(cmd.DeliveryTime),
		Status:           domain.OrderStatusPending,
		Notes:            strings.TrimSpace(cmd.Notes),
		Items:            items,
		CreatedAt:        s.clock().UTC(),
	}, nil
}

// createWithFreshNumbers inserts the order, regenerating the order number a
// bounded number of times if it collides with an existing one.
func createWithFreshNumbers(ctx context.Context, orders repositories.OrderRepository, numbers *OrderNumberGenerator, order *domain.Order) error {
	var lastErr error
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		number, err := numbers.Next()
		if err != nil {
			return err
		}
		order.OrderNumber = number
		lastErr = orders.Create(ctx, order)
		if lastErr == nil {
			return nil
		}
		if !errors.Is(lastErr, repositories.ErrDuplicate) {
			return lastErr
		}
	}
	return lastErr
}
