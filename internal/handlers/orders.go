package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/david1984moore/natalybakery-api/internal/platform/httpx"
	"github.com/david1984moore/natalybakery-api/internal/services"
)

const maxOrderRequestBody = 32 * 1024

// OrderHandlers exposes public order placement.
type OrderHandlers struct {
	orders services.OrderService
}

// NewOrderHandlers constructs order handlers.
func NewOrderHandlers(orders services.OrderService) *OrderHandlers {
	return &OrderHandlers{orders: orders}
}

// Routes registers order endpoints under the provided router.
func (h *OrderHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Post("/place", h.placeOrder)
}

type placeOrderRequest struct {
	CustomerName  string                `json:"customerName"`
	CustomerEmail string                `json:"customerEmail"`
	CustomerPhone string                `json:"customerPhone"`
	Items         []checkoutItemPayload `json:"items"`

	// The storefront sends deliveryAddress and specialInstructions;
	// deliveryLocation and notes are accepted as the stored spellings.
	DeliveryAddress     string `json:"deliveryAddress"`
	DeliveryLocation    string `json:"deliveryLocation"`
	DeliveryDate        string `json:"deliveryDate"`
	DeliveryTime        string `json:"deliveryTime"`
	SpecialInstructions string `json:"specialInstructions"`
	Notes               string `json:"notes"`
}

func (r placeOrderRequest) location() string {
	if strings.TrimSpace(r.DeliveryAddress) != "" {
		return r.DeliveryAddress
	}
	return r.DeliveryLocation
}

func (r placeOrderRequest) instructions() string {
	if strings.TrimSpace(r.SpecialInstructions) != "" {
		return r.SpecialInstructions
	}
	return r.Notes
}

type placeOrderResponse struct {
	OrderID         string `json:"orderId"`
	OrderNumber     string `json:"orderNumber"`
	TotalAmount     string `json:"totalAmount"`
	DepositAmount   string `json:"depositAmount"`
	RemainingAmount string `json:"remainingAmount"`
}

func (h *OrderHandlers) placeOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.orders == nil {
		httpx.WriteError(ctx, w, httpx.NewError("orders_unavailable", "order service unavailable", http.StatusServiceUnavailable))
		return
	}

	body, err := readLimitedBody(r, maxOrderRequestBody)
	if err != nil {
		writeBodyError(ctx, w, err)
		return
	}

	var req placeOrderRequest
	if err := json.Unmarshal(body, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "request body must be valid JSON", http.StatusBadRequest))
		return
	}

	result, err := h.orders.PlaceOrder(ctx, services.PlaceOrderCommand{
		CustomerName:     req.CustomerName,
		CustomerEmail:    req.CustomerEmail,
		CustomerPhone:    req.CustomerPhone,
		Items:            toItemInputs(req.Items),
		Notes:            req.instructions(),
		DeliveryLocation: req.location(),
		DeliveryDate:     req.DeliveryDate,
		DeliveryTime:     req.DeliveryTime,
	})
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, placeOrderResponse{
		OrderID:         result.OrderID,
		OrderNumber:     result.OrderNumber,
		TotalAmount:     result.TotalAmount.StringFixed(2),
		DepositAmount:   result.DepositAmount.StringFixed(2),
		RemainingAmount: result.RemainingAmount.StringFixed(2),
	})
}
