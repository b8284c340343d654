package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/david1984moore/natalybakery-api/internal/domain"
	"github.com/david1984moore/natalybakery-api/internal/repositories"
)

// staffTransitions is the only status progression staff can drive. Payment
// webhooks own PENDING -> CONFIRMED and PENDING -> CANCELLED; nothing moves
// out of COMPLETED or CANCELLED.
var staffTransitions = map[domain.OrderStatus]domain.OrderStatus{
	domain.OrderStatusConfirmed:  domain.OrderStatusInProgress,
	domain.OrderStatusInProgress: domain.OrderStatusReady,
	domain.OrderStatusReady:      domain.OrderStatusCompleted,
}

// OrderServiceDeps wires the order service.
type OrderServiceDeps struct {
	Orders   repositories.OrderRepository
	Notifier Notifier
	Numbers  *OrderNumberGenerator

	// Location is the bakery's timezone; "today" for the same-day cutoff
	// is judged there, not in UTC.
	Location *time.Location
	// CutoffHour is the local hour after which same-day orders are
	// rejected.
	CutoffHour int

	IDs    IDGenerator
	Clock  func() time.Time
	Logger Logger
}

type orderService struct {
	orders     repositories.OrderRepository
	notifier   Notifier
	numbers    *OrderNumberGenerator
	location   *time.Location
	cutoffHour int
	ids        IDGenerator
	clock      func() time.Time
	logger     Logger
}

// NewOrderService validates dependencies and returns an OrderService.
func NewOrderService(deps OrderServiceDeps) (OrderService, error) {
	if deps.Orders == nil {
		return nil, errors.New("services: orders requires an order repository")
	}
	if deps.Numbers == nil {
		return nil, errors.New("services: orders requires an order number generator")
	}
	if deps.CutoffHour < 0 || deps.CutoffHour > 23 {
		return nil, errors.New("services: cutoff hour must be between 0 and 23")
	}
	svc := &orderService{
		orders:     deps.Orders,
		notifier:   deps.Notifier,
		numbers:    deps.Numbers,
		location:   deps.Location,
		cutoffHour: deps.CutoffHour,
		ids:        deps.IDs,
		clock:      deps.Clock,
		logger:     deps.Logger,
	}
	if svc.location == nil {
		svc.location = time.UTC
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

// PlaceOrder stores a no-upfront-payment order and notifies customer and
// staff. Delivery details are mandatory and same-day requests are rejected
// after the bakery's cutoff hour.
func (s *orderService) PlaceOrder(ctx context.Context, cmd PlaceOrderCommand) (PlaceOrderResult, error) {
	var v fieldErrors
	validateCustomer(&v, cmd.CustomerName, cmd.CustomerEmail)
	v.requireString("customerPhone", cmd.CustomerPhone, "customer phone is required")
	validateItems(&v, cmd.Items)
	validateDelivery(&v, cmd.DeliveryLocation, cmd.DeliveryDate, cmd.DeliveryTime, true)
	if err := v.err(); err != nil {
		return PlaceOrderResult{}, err
	}
	if err := s.checkCutoff(cmd.DeliveryDate); err != nil {
		return PlaceOrderResult{}, err
	}

	orderID := s.ids(OrderIDPrefix)
	items, total := buildOrderItems(s.ids, orderID, cmd.Items)
	deposit, remaining, err := DepositSplit(total)
	if err != nil {
		return PlaceOrderResult{}, err
	}
	order := domain.Order{
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
	}
	if err := createWithFreshNumbers(ctx, s.orders, s.numbers, &order); err != nil {
		return PlaceOrderResult{}, fmt.Errorf("services: place order: %w", err)
	}
	s.logger(ctx, "orders.placed", map[string]any{
		"orderId":     order.ID,
		"orderNumber": order.OrderNumber,
		"total":       order.TotalAmount.StringFixed(2),
	})

	if s.notifier != nil {
		s.notifier.NotifyOrderPlaced(ctx, order)
	}

	return PlaceOrderResult{
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		TotalAmount:     total,
		DepositAmount:   deposit,
		RemainingAmount: remaining,
	}, nil
}

// checkCutoff rejects delivery dates in the past and same-day requests made
// at or after the cutoff hour, both judged in the bakery's timezone.
func (s *orderService) checkCutoff(deliveryDate string) error {
	requested, err := time.ParseInLocation(deliveryDateLayout, strings.TrimSpace(deliveryDate), s.location)
	if err != nil {
		// Format already validated; treat a parse failure as a bad field.
		return &ValidationError{Fields: []FieldError{{Field: "deliveryDate", Message: "delivery date must be formatted YYYY-MM-DD"}}}
	}
	now := s.clock().In(s.location)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.location)
	if requested.Before(today) {
		return &ValidationError{Fields: []FieldError{{Field: "deliveryDate", Message: "delivery date must not be in the past"}}}
	}
	if requested.Equal(today) && now.Hour() >= s.cutoffHour {
		return fmt.Errorf("%w: same-day orders close at %02d:00", ErrSameDayCutoff, s.cutoffHour)
	}
	return nil
}

func (s *orderService) GetOrder(ctx context.Context, orderID string) (domain.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return domain.Order{}, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
		}
		return domain.Order{}, fmt.Errorf("services: get order: %w", err)
	}
	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, filter repositories.OrderListFilter) ([]domain.Order, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, &ValidationError{Fields: []FieldError{{Field: "status", Message: "unknown order status"}}}
	}
	orders, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("services: list orders: %w", err)
	}
	return orders, nil
}

// ConfirmDelivery marks the order's delivery slot as confirmed by staff.
// Confirming twice is rejected so the confirmation timestamp stays honest.
func (s *orderService) ConfirmDelivery(ctx context.Context, orderID string) (domain.Order, error) {
	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}
	if order.DeliveryConfirmed {
		return domain.Order{}, fmt.Errorf("%w: %s", ErrDeliveryConfirmed, orderID)
	}

	confirmedAt := s.clock().UTC()
	if err := s.orders.ConfirmDelivery(ctx, orderID, confirmedAt); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return domain.Order{}, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
		}
		return domain.Order{}, fmt.Errorf("services: confirm delivery: %w", err)
	}
	s.logger(ctx, "orders.delivery_confirmed", map[string]any{
		"orderId":     order.ID,
		"orderNumber": order.OrderNumber,
	})

	order.DeliveryConfirmed = true
	order.DeliveryConfirmedAt = &confirmedAt
	return order, nil
}

// UpdateStatus applies a staff status progression. Only the forward path
// CONFIRMED -> IN_PROGRESS -> READY -> COMPLETED is allowed.
func (s *orderService) UpdateStatus(ctx context.Context, orderID string, next domain.OrderStatus) (domain.Order, error) {
	if !next.Valid() {
		return domain.Order{}, &ValidationError{Fields: []FieldError{{Field: "status", Message: "unknown order status"}}}
	}
	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}
	if allowed, ok := staffTransitions[order.Status]; !ok || allowed != next {
		return domain.Order{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, next)
	}

	if err := s.orders.UpdateStatus(ctx, orderID, next); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return domain.Order{}, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
		}
		return domain.Order{}, fmt.Errorf("services: update status: %w", err)
	}
	s.logger(ctx, "orders.status_changed", map[string]any{
		"orderId": order.ID,
		"from":    string(order.Status),
		"to":      string(next),
	})

	order.Status = next
	return order, nil
}
