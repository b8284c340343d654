package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus enumerates valid lifecycle states for orders.
type OrderStatus string

const (
	// OrderStatusPending indicates the order has been placed and the deposit is unpaid.
	OrderStatusPending OrderStatus = "PENDING"
	// OrderStatusConfirmed indicates the deposit payment has cleared.
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	// OrderStatusInProgress indicates staff have started preparing the order.
	OrderStatusInProgress OrderStatus = "IN_PROGRESS"
	// OrderStatusReady indicates the order is ready for pickup or delivery.
	OrderStatusReady OrderStatus = "READY"
	// OrderStatusCompleted indicates the order has been handed over.
	OrderStatusCompleted OrderStatus = "COMPLETED"
	// OrderStatusCancelled indicates the order was cancelled after a failed deposit payment.
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// Valid reports whether the status is one of the known lifecycle states.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusInProgress,
		OrderStatusReady, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is the aggregate root of the checkout/payment/delivery lifecycle.
// Monetary fields are derived once at creation and stored; they are never
// recomputed on read.
type Order struct {
	ID          string `gorm:"primaryKey;size:40"`
	OrderNumber string `gorm:"uniqueIndex;size:32;not null"`

	CustomerName  string `gorm:"size:200;not null"`
	CustomerEmail string `gorm:"size:254;not null"`
	CustomerPhone string `gorm:"size:40"`

	TotalAmount     decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	DepositAmount   decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	RemainingAmount decimal.Decimal `gorm:"type:numeric(10,2);not null"`

	DepositPaid     bool `gorm:"not null;default:false"`
	DepositPaidAt   *time.Time
	PaymentIntentID string `gorm:"size:100;index"`

	DeliveryLocation    string `gorm:"size:500"`
	DeliveryDate        string `gorm:"size:10"`
	DeliveryTime        string `gorm:"size:40"`
	DeliveryConfirmed   bool   `gorm:"not null;default:false"`
	DeliveryConfirmedAt *time.Time

	Status OrderStatus `gorm:"size:20;not null;default:PENDING"`
	Notes  string      `gorm:"type:text"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
}

// OrderItem is a line item snapshot. Product name and unit price are
// denormalised so later catalogue changes never alter historical orders.
type OrderItem struct {
	ID          string          `gorm:"primaryKey;size:40"`
	OrderID     string          `gorm:"size:40;index;not null"`
	ProductName string          `gorm:"size:200;not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	TotalPrice  decimal.Decimal `gorm:"type:numeric(10,2);not null"`
}
