package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/david1984moore/natalybakery-api/internal/services"
)

func TestPlaceOrderEndpoint(t *testing.T) {
	svc := &orderServiceStub{
		placeFn: func(_ context.Context, cmd services.PlaceOrderCommand) (services.PlaceOrderResult, error) {
			if cmd.DeliveryLocation != "12 Main St" {
				t.Fatalf("delivery location = %q", cmd.DeliveryLocation)
			}
			if cmd.Notes != "no nuts please" {
				t.Fatalf("notes = %q", cmd.Notes)
			}
			return services.PlaceOrderResult{
				OrderID:         "ord_1",
				OrderNumber:     "NB-20250501-A1B2C",
				TotalAmount:     decimal.RequireFromString("17.00"),
				DepositAmount:   decimal.RequireFromString("8.50"),
				RemainingAmount: decimal.RequireFromString("8.50"),
			}, nil
		},
	}
	router := NewRouter(WithOrderRoutes(NewOrderHandlers(svc).Routes))

	body := `{
		"customerName": "Jane Doe",
		"customerEmail": "jane@example.com",
		"customerPhone": "555-0155",
		"items": [{"productName": "Sourdough loaf", "quantity": 2, "unitPrice": "8.50"}],
		"deliveryAddress": "12 Main St",
		"deliveryDate": "2025-05-02",
		"deliveryTime": "morning",
		"specialInstructions": "no nuts please"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/place", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["orderNumber"] != "NB-20250501-A1B2C" {
		t.Fatalf("orderNumber = %v", resp["orderNumber"])
	}
}

func TestPlaceOrderEndpointSameDayCutoff(t *testing.T) {
	svc := &orderServiceStub{
		placeFn: func(context.Context, services.PlaceOrderCommand) (services.PlaceOrderResult, error) {
			return services.PlaceOrderResult{}, services.ErrSameDayCutoff
		},
	}
	router := NewRouter(WithOrderRoutes(NewOrderHandlers(svc).Routes))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/place", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["error"] != "same_day_cutoff" {
		t.Fatalf("error code = %v", resp["error"])
	}
}
