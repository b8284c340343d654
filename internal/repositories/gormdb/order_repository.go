package gormdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/david1984moore/natalybakery-api/internal/domain"
	"github.com/david1984moore/natalybakery-api/internal/repositories"
)

const defaultListLimit = 100

// OrderRepository is the GORM-backed implementation of repositories.OrderRepository.
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository constructs the repository.
func NewOrderRepository(db *gorm.DB) (*OrderRepository, error) {
	if db == nil {
		return nil, errors.New("order repository: db handle is required")
	}
	return &OrderRepository{db: db}, nil
}

// Create inserts the order and all items in one transaction.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	if order == nil {
		return errors.New("order repository: order is nil")
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
	return translateError("order", order.OrderNumber, err)
}

// FindByID loads the order with its items.
func (r *OrderRepository) FindByID(ctx context.Context, orderID string) (domain.Order, error) {
	var order domain.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "id = ?", orderID).Error
	if err != nil {
		return domain.Order{}, translateError("order", orderID, err)
	}
	return order, nil
}

// List returns orders newest first, optionally filtered by status.
func (r *OrderRepository) List(ctx context.Context, filter repositories.OrderListFilter) ([]domain.Order, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := r.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Limit(limit)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var orders []domain.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, translateError("order", "", err)
	}
	return orders, nil
}

// SetPaymentIntent records the processor intent reference on the order.
func (r *OrderRepository) SetPaymentIntent(ctx context.Context, orderID, intentID string) error {
	return r.updateOrder(ctx, orderID, map[string]any{
		"payment_intent_id": intentID,
	})
}

// MarkDepositPaid records the deposit payment and confirms the order. The same
// final values are written on every application, so redelivered webhooks
// converge instead of corrupting state.
func (r *OrderRepository) MarkDepositPaid(ctx context.Context, orderID string, paidAt time.Time) error {
	return r.updateOrder(ctx, orderID, map[string]any{
		"deposit_paid":    true,
		"deposit_paid_at": paidAt,
		"status":          domain.OrderStatusConfirmed,
	})
}

// MarkCancelled cancels the order after a failed deposit payment.
func (r *OrderRepository) MarkCancelled(ctx context.Context, orderID string) error {
	return r.updateOrder(ctx, orderID, map[string]any{
		"status": domain.OrderStatusCancelled,
	})
}

// ConfirmDelivery locks in the delivery slot.
func (r *OrderRepository) ConfirmDelivery(ctx context.Context, orderID string, confirmedAt time.Time) error {
	return r.updateOrder(ctx, orderID, map[string]any{
		"delivery_confirmed":    true,
		"delivery_confirmed_at": confirmedAt,
	})
}

// UpdateStatus records a staff-driven status progression.
func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	return r.updateOrder(ctx, orderID, map[string]any{
		"status": status,
	})
}

func (r *OrderRepository) updateOrder(ctx context.Context, orderID string, fields map[string]any) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("id = ?", orderID).
		Updates(fields)
	if result.Error != nil {
		return translateError("order", orderID, result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.NotFoundError("order", orderID)
	}
	return nil
}

func translateError(entity, id string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repositories.NotFoundError(entity, id)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return repositories.DuplicateError(entity, id)
	default:
		return fmt.Errorf("%w: %s: %v", repositories.ErrUnavailable, entity, err)
	}
}
