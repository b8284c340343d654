package handlers

import (
	"time"

	"github.com/david1984moore/natalybakery-api/internal/domain"
)

// Monetary values are serialised as fixed two-decimal strings so JSON
// clients never see floating-point noise.
type orderItemResponse struct {
	ID          string `json:"id"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unitPrice"`
	TotalPrice  string `json:"totalPrice"`
}

type orderResponse struct {
	ID          string `json:"id"`
	OrderNumber string `json:"orderNumber"`

	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone,omitempty"`

	TotalAmount     string `json:"totalAmount"`
	DepositAmount   string `json:"depositAmount"`
	RemainingAmount string `json:"remainingAmount"`

	DepositPaid     bool   `json:"depositPaid"`
	DepositPaidAt   string `json:"depositPaidAt,omitempty"`
	PaymentIntentID string `json:"paymentIntentId,omitempty"`

	DeliveryLocation    string `json:"deliveryLocation,omitempty"`
	DeliveryDate        string `json:"deliveryDate,omitempty"`
	DeliveryTime        string `json:"deliveryTime,omitempty"`
	DeliveryConfirmed   bool   `json:"deliveryConfirmed"`
	DeliveryConfirmedAt string `json:"deliveryConfirmedAt,omitempty"`

	Status string `json:"status"`
	Notes  string `json:"notes,omitempty"`

	Items []orderItemResponse `json:"items"`

	CreatedAt string `json:"createdAt"`
}

func newOrderResponse(order domain.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemResponse{
			ID:          item.ID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.StringFixed(2),
			TotalPrice:  item.TotalPrice.StringFixed(2),
		})
	}
	return orderResponse{
		ID:                  order.ID,
		OrderNumber:         order.OrderNumber,
		CustomerName:        order.CustomerName,
		CustomerEmail:       order.CustomerEmail,
		CustomerPhone:       order.CustomerPhone,
		TotalAmount:         order.TotalAmount.StringFixed(2),
		DepositAmount:       order.DepositAmount.StringFixed(2),
		RemainingAmount:     order.RemainingAmount.StringFixed(2),
		DepositPaid:         order.DepositPaid,
		DepositPaidAt:       formatTime(order.DepositPaidAt),
		PaymentIntentID:     order.PaymentIntentID,
		DeliveryLocation:    order.DeliveryLocation,
		DeliveryDate:        order.DeliveryDate,
		DeliveryTime:        order.DeliveryTime,
		DeliveryConfirmed:   order.DeliveryConfirmed,
		DeliveryConfirmedAt: formatTime(order.DeliveryConfirmedAt),
		Status:              string(order.Status),
		Notes:               order.Notes,
		Items:               items,
		CreatedAt:           order.CreatedAt.UTC().Format(time.RFC3339),
	}
}

type contactResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Message   string `json:"message"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}

func newContactResponse(contact domain.Contact) contactResponse {
	return contactResponse{
		ID:        contact.ID,
		Name:      contact.Name,
		Email:     contact.Email,
		Phone:     contact.Phone,
		Message:   contact.Message,
		Status:    string(contact.Status),
		CreatedAt: contact.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
