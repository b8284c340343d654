package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestRouterNotFoundEnvelope(t *testing.T) {
	router := NewRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["error"] != "route_not_found" {
		t.Fatalf("error code = %v", resp["error"])
	}
}

func TestRouterMethodNotAllowed(t *testing.T) {
	router := NewRouter(WithContactRoutes(NewContactHandlers(&contactServiceStub{}).Routes))

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/contact", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestRouterTimeoutExemptsWebhooks(t *testing.T) {
	var webhookHasDeadline, checkoutHasDeadline bool
	router := NewRouter(
		WithWebhookRoutes(func(r chi.Router) {
			r.Post("/payment", func(w http.ResponseWriter, req *http.Request) {
				_, webhookHasDeadline = req.Context().Deadline()
				w.WriteHeader(http.StatusOK)
			})
		}),
		WithCheckoutRoutes(func(r chi.Router) {
			r.Post("/", func(w http.ResponseWriter, req *http.Request) {
				_, checkoutHasDeadline = req.Context().Deadline()
				w.WriteHeader(http.StatusOK)
			})
		}),
	)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/payment", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("webhook status = %d", rec.Code)
	}
	if webhookHasDeadline {
		t.Fatal("webhook request carries a deadline")
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/checkout", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("checkout status = %d", rec.Code)
	}
	if !checkoutHasDeadline {
		t.Fatal("checkout request missing deadline")
	}
}

func TestHealthz(t *testing.T) {
	router := NewRouter()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["status"] != "ok" {
		t.Fatalf("status field = %v", resp["status"])
	}
}

func TestReadyzReportsDependencyFailure(t *testing.T) {
	router := NewRouter(WithHealthHandlers(NewHealthHandlers(func() error {
		return errors.New("db down")
	})))

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestReadyzOKWhenDependenciesHealthy(t *testing.T) {
	router := NewRouter(WithHealthHandlers(NewHealthHandlers(func() error { return nil })))

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}
