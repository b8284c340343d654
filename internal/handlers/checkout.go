package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/david1984moore/natalybakery-api/internal/platform/httpx"
	"github.com/david1984moore/natalybakery-api/internal/services"
)

const maxCheckoutRequestBody = 32 * 1024

// CheckoutHandlers exposes the deposit-checkout endpoint.
type CheckoutHandlers struct {
	checkout services.CheckoutService
}

// NewCheckoutHandlers constructs checkout handlers.
func NewCheckoutHandlers(checkout services.CheckoutService) *CheckoutHandlers {
	return &CheckoutHandlers{checkout: checkout}
}

// Routes registers checkout endpoints under the provided router.
func (h *CheckoutHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Post("/", h.createCheckout)
}

type checkoutItemPayload struct {
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

type checkoutRequest struct {
	CustomerName  string                `json:"customerName"`
	CustomerEmail string                `json:"customerEmail"`
	CustomerPhone string                `json:"customerPhone"`
	Items         []checkoutItemPayload `json:"items"`
	Notes         string                `json:"notes"`

	DeliveryLocation string `json:"deliveryLocation"`
	DeliveryDate     string `json:"deliveryDate"`
	DeliveryTime     string `json:"deliveryTime"`
}

type checkoutResponse struct {
	OrderID         string `json:"orderId"`
	OrderNumber     string `json:"orderNumber"`
	ClientSecret    string `json:"clientSecret"`
	TotalAmount     string `json:"totalAmount"`
	DepositAmount   string `json:"depositAmount"`
	RemainingAmount string `json:"remainingAmount"`
}

func (h *CheckoutHandlers) createCheckout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.checkout == nil {
		httpx.WriteError(ctx, w, httpx.NewError("checkout_unavailable", "checkout service unavailable", http.StatusServiceUnavailable))
		return
	}

	body, err := readLimitedBody(r, maxCheckoutRequestBody)
	if err != nil {
		writeBodyError(ctx, w, err)
		return
	}

	var req checkoutRequest
	if err := json.Unmarshal(body, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "request body must be valid JSON", http.StatusBadRequest))
		return
	}

	cmd := services.CheckoutCommand{
		CustomerName:     req.CustomerName,
		CustomerEmail:    req.CustomerEmail,
		CustomerPhone:    req.CustomerPhone,
		Items:            toItemInputs(req.Items),
		Notes:            req.Notes,
		DeliveryLocation: req.DeliveryLocation,
		DeliveryDate:     req.DeliveryDate,
		DeliveryTime:     req.DeliveryTime,
	}

	result, err := h.checkout.CreateCheckout(ctx, cmd)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, checkoutResponse{
		OrderID:         result.OrderID,
		OrderNumber:     result.OrderNumber,
		ClientSecret:    result.ClientSecret,
		TotalAmount:     result.TotalAmount.StringFixed(2),
		DepositAmount:   result.DepositAmount.StringFixed(2),
		RemainingAmount: result.RemainingAmount.StringFixed(2),
	})
}

func toItemInputs(items []checkoutItemPayload) []services.ItemInput {
	inputs := make([]services.ItemInput, 0, len(items))
	for _, item := range items {
		inputs = append(inputs, services.ItemInput{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	return inputs
}
