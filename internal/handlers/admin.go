package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/david1984moore/natalybakery-api/internal/domain"
	"github.com/david1984moore/natalybakery-api/internal/platform/auth"
	"github.com/david1984moore/natalybakery-api/internal/platform/httpx"
	"github.com/david1984moore/natalybakery-api/internal/repositories"
	"github.com/david1984moore/natalybakery-api/internal/services"
)

const maxAdminRequestBody = 8 * 1024

const defaultAdminListLimit = 100

// AdminHandlers exposes the password-gated staff endpoints.
type AdminHandlers struct {
	tokens   *auth.TokenManager
	password string
	orders   services.OrderService
	contacts services.ContactService
}

// AdminHandlersConfig configures AdminHandlers.
type AdminHandlersConfig struct {
	Tokens   *auth.TokenManager
	Password string
	Orders   services.OrderService
	Contacts services.ContactService
}

// NewAdminHandlers constructs admin handlers.
func NewAdminHandlers(cfg AdminHandlersConfig) *AdminHandlers {
	return &AdminHandlers{
		tokens:   cfg.Tokens,
		password: cfg.Password,
		orders:   cfg.Orders,
		contacts: cfg.Contacts,
	}
}

// Routes registers admin endpoints; everything except login requires a
// valid staff token.
func (h *AdminHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Post("/login", h.login)
	r.Group(func(g chi.Router) {
		g.Use(auth.RequireStaff(h.tokens))
		g.Get("/orders", h.listOrders)
		g.Get("/orders/{orderID}", h.getOrder)
		g.Patch("/orders/{orderID}/confirm-delivery", h.confirmDelivery)
		g.Patch("/orders/{orderID}/status", h.updateStatus)
		g.Get("/contacts", h.listContacts)
		g.Patch("/contacts/{contactID}/status", h.updateContactStatus)
	})
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}

func (h *AdminHandlers) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.tokens == nil || h.password == "" {
		httpx.WriteError(ctx, w, httpx.NewError("admin_unavailable", "admin access is not configured", http.StatusServiceUnavailable))
		return
	}

	body, err := readLimitedBody(r, maxAdminRequestBody)
	if err != nil {
		writeBodyError(ctx, w, err)
		return
	}
	var req loginRequest
	if err := json.Unmarshal(body, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "request body must be valid JSON", http.StatusBadRequest))
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.password)) != 1 {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_credentials", "password is incorrect", http.StatusUnauthorized))
		return
	}

	token, expiresAt, err := h.tokens.Issue()
	if err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("internal_error", "could not issue session token", http.StatusInternalServerError))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.TokenCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteStrictMode,
	})
	httpx.WriteJSON(w, http.StatusOK, loginResponse{
		Token:     token,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
	})
}

func (h *AdminHandlers) listOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.orders == nil {
		httpx.WriteError(ctx, w, httpx.NewError("orders_unavailable", "order service unavailable", http.StatusServiceUnavailable))
		return
	}

	filter := repositories.OrderListFilter{Limit: defaultAdminListLimit}
	if status := strings.TrimSpace(r.URL.Query().Get("status")); status != "" {
		filter.Status = domain.OrderStatus(strings.ToUpper(status))
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "limit must be a positive integer", http.StatusBadRequest))
			return
		}
		filter.Limit = limit
	}

	orders, err := h.orders.ListOrders(ctx, filter)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	payload := make([]orderResponse, 0, len(orders))
	for _, order := range orders {
		payload = append(payload, newOrderResponse(order))
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"orders": payload})
}

func (h *AdminHandlers) getOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.orders == nil {
		httpx.WriteError(ctx, w, httpx.NewError("orders_unavailable", "order service unavailable", http.StatusServiceUnavailable))
		return
	}

	order, err := h.orders.GetOrder(ctx, chi.URLParam(r, "orderID"))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, newOrderResponse(order))
}

func (h *AdminHandlers) confirmDelivery(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.orders == nil {
		httpx.WriteError(ctx, w, httpx.NewError("orders_unavailable", "order service unavailable", http.StatusServiceUnavailable))
		return
	}

	order, err := h.orders.ConfirmDelivery(ctx, chi.URLParam(r, "orderID"))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, newOrderResponse(order))
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *AdminHandlers) updateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.orders == nil {
		httpx.WriteError(ctx, w, httpx.NewError("orders_unavailable", "order service unavailable", http.StatusServiceUnavailable))
		return
	}

	body, err := readLimitedBody(r, maxAdminRequestBody)
	if err != nil {
		writeBodyError(ctx, w, err)
		return
	}
	var req updateStatusRequest
	if err := json.Unmarshal(body, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "request body must be valid JSON", http.StatusBadRequest))
		return
	}

	order, err := h.orders.UpdateStatus(ctx, chi.URLParam(r, "orderID"), domain.OrderStatus(strings.ToUpper(strings.TrimSpace(req.Status))))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, newOrderResponse(order))
}

func (h *AdminHandlers) listContacts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.contacts == nil {
		httpx.WriteError(ctx, w, httpx.NewError("contacts_unavailable", "contact service unavailable", http.StatusServiceUnavailable))
		return
	}

	contacts, err := h.contacts.ListMessages(ctx, defaultAdminListLimit)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	payload := make([]contactResponse, 0, len(contacts))
	for _, contact := range contacts {
		payload = append(payload, newContactResponse(contact))
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"contacts": payload})
}

type updateContactStatusRequest struct {
	Status string `json:"status"`
}

func (h *AdminHandlers) updateContactStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.contacts == nil {
		httpx.WriteError(ctx, w, httpx.NewError("contacts_unavailable", "contact service unavailable", http.StatusServiceUnavailable))
		return
	}

	body, err := readLimitedBody(r, maxAdminRequestBody)
	if err != nil {
		writeBodyError(ctx, w, err)
		return
	}
	var req updateContactStatusRequest
	if err := json.Unmarshal(body, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "request body must be valid JSON", http.StatusBadRequest))
		return
	}

	status := domain.ContactStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	if err := h.contacts.UpdateMessageStatus(ctx, chi.URLParam(r, "contactID"), status); err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"updated": true})
}
