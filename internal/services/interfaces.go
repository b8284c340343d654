package services

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/david1984moore/natalybakery-api/internal/domain"
	"github.com/david1984moore/natalybakery-api/internal/repositories"
)

var (
	// ErrOrderNotFound indicates the referenced order does not exist.
	ErrOrderNotFound = errors.New("services: order not found")
	// ErrDeliveryConfirmed indicates delivery was already confirmed for
	// the order.
	ErrDeliveryConfirmed = errors.New("services: delivery already confirmed")
	// ErrInvalidTransition indicates a staff status change the lifecycle
	// does not allow.
	ErrInvalidTransition = errors.New("services: invalid status transition")
	// ErrSameDayCutoff indicates a same-day order arrived after the
	// bakery's daily cutoff hour.
	ErrSameDayCutoff = errors.New("services: past same-day order cutoff")
	// ErrPaymentUnavailable indicates the payment processor could not be
	// reached or rejected the intent after the order row was committed.
	ErrPaymentUnavailable = errors.New("services: payment unavailable")
	// ErrWebhookOrderMissing indicates a payment event arrived without an
	// order reference in its metadata.
	ErrWebhookOrderMissing = errors.New("services: webhook event missing order reference")
)

// PaymentUnavailableError carries the identity of the already-persisted
// order so callers can tell the customer which order to retry payment for.
type PaymentUnavailableError struct {
	OrderID     string
	OrderNumber string
	Err         error
}

func (e *PaymentUnavailableError) Error() string {
	return "services: payment unavailable for order " + e.OrderNumber + ": " + e.Err.Error()
}

func (e *PaymentUnavailableError) Unwrap() error { return ErrPaymentUnavailable }

// ItemInput is one requested line item.
type ItemInput struct {
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// CheckoutCommand starts the pay-deposit-now flow.
type CheckoutCommand struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Items         []ItemInput
	Notes         string

	DeliveryLocation string
	DeliveryDate     string
	DeliveryTime     string
}

// CheckoutResult is returned to the storefront so it can collect the deposit
// with the processor's client-side SDK.
type CheckoutResult struct {
	OrderID         string
	OrderNumber     string
	ClientSecret    string
	TotalAmount     decimal.Decimal
	DepositAmount   decimal.Decimal
	RemainingAmount decimal.Decimal
}

// CheckoutService creates orders and their deposit payment intents.
type CheckoutService interface {
	CreateCheckout(ctx context.Context, cmd CheckoutCommand) (CheckoutResult, error)
}

// PlaceOrderCommand submits an order without up-front payment. Delivery
// details are mandatory here; payment is settled out of band.
type PlaceOrderCommand struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Items         []ItemInput
	Notes         string

	DeliveryLocation string
	DeliveryDate     string
	DeliveryTime     string
}

// PlaceOrderResult identifies the stored order.
type PlaceOrderResult struct {
	OrderID         string
	OrderNumber     string
	TotalAmount     decimal.Decimal
	DepositAmount   decimal.Decimal
	RemainingAmount decimal.Decimal
}

// OrderService owns order placement and the staff-facing lifecycle.
type OrderService interface {
	PlaceOrder(ctx context.Context, cmd PlaceOrderCommand) (PlaceOrderResult, error)
	GetOrder(ctx context.Context, orderID string) (domain.Order, error)
	ListOrders(ctx context.Context, filter repositories.OrderListFilter) ([]domain.Order, error)
	ConfirmDelivery(ctx context.Context, orderID string) (domain.Order, error)
	UpdateStatus(ctx context.Context, orderID string, next domain.OrderStatus) (domain.Order, error)
}

// WebhookResult reports what a payment event did to an order.
type WebhookResult struct {
	EventType string
	Outcome   string
	OrderID   string
	// Duplicate is true when the event re-delivered an update that had
	// already been applied.
	Duplicate bool
}

// PaymentWebhookService verifies processor webhook deliveries and applies
// their outcome to the order lifecycle.
type PaymentWebhookService interface {
	HandleEvent(ctx context.Context, payload []byte, signatureHeader string) (WebhookResult, error)
}

// ContactCommand is a contact-form submission.
type ContactCommand struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// ContactService stores contact messages and notifies staff.
type ContactService interface {
	SubmitMessage(ctx context.Context, cmd ContactCommand) (domain.Contact, error)
	ListMessages(ctx context.Context, limit int) ([]domain.Contact, error)
	UpdateMessageStatus(ctx context.Context, contactID string, status domain.ContactStatus) error
}

// Notifier is the slice of the notifications package the services need.
type Notifier interface {
	NotifyOrderPlaced(ctx context.Context, order domain.Order)
	NotifyDepositPaid(ctx context.Context, order domain.Order)
	NotifyContactReceived(ctx context.Context, contact domain.Contact)
}

// Logger mirrors the structured logging hook used across services: an event
// name plus loosely-typed fields, resolved against the request logger.
type Logger func(ctx context.Context, event string, fields map[string]any)
