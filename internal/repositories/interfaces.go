package repositories

import (
	"context"
	"time"

	"github.com/david1984moore/natalybakery-api/internal/domain"
)

// OrderRepository owns order + line-item persistence. Orders are created once
// with all their items and mutated only through the lifecycle methods below,
// never by arbitrary field edits.
type OrderRepository interface {
	// Create inserts the order with its items in a single transaction; a
	// failure leaves no partial rows visible.
	Create(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, orderID string) (domain.Order, error)
	List(ctx context.Context, filter OrderListFilter) ([]domain.Order, error)

	// SetPaymentIntent records the processor intent reference after creation.
	SetPaymentIntent(ctx context.Context, orderID, intentID string) error
	// MarkDepositPaid sets depositPaid/depositPaidAt and moves the order to
	// CONFIRMED in one update. Re-applying with the same values is a no-op in
	// effect, which is what makes webhook redelivery safe.
	MarkDepositPaid(ctx context.Context, orderID string, paidAt time.Time) error
	// MarkCancelled moves the order to CANCELLED after a failed payment.
	MarkCancelled(ctx context.Context, orderID string) error
	// ConfirmDelivery sets deliveryConfirmed/deliveryConfirmedAt.
	ConfirmDelivery(ctx context.Context, orderID string, confirmedAt time.Time) error
	// UpdateStatus records a staff-driven status progression.
	UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) error
}

// OrderListFilter narrows admin order listings.
type OrderListFilter struct {
	Status domain.OrderStatus
	Limit  int
}

// ContactRepository persists inbound contact-form messages.
type ContactRepository interface {
	Create(ctx context.Context, contact *domain.Contact) error
	List(ctx context.Context, limit int) ([]domain.Contact, error)
	UpdateStatus(ctx context.Context, contactID string, status domain.ContactStatus) error
}
