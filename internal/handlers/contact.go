package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/david1984moore/natalybakery-api/internal/platform/httpx"
	"github.com/david1984moore/natalybakery-api/internal/services"
)

const maxContactRequestBody = 16 * 1024

// ContactHandlers exposes the public contact form.
type ContactHandlers struct {
	contacts services.ContactService
}

// NewContactHandlers constructs contact handlers.
func NewContactHandlers(contacts services.ContactService) *ContactHandlers {
	return &ContactHandlers{contacts: contacts}
}

// Routes registers contact endpoints under the provided router.
func (h *ContactHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Post("/", h.submitMessage)
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

func (h *ContactHandlers) submitMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.contacts == nil {
		httpx.WriteError(ctx, w, httpx.NewError("contacts_unavailable", "contact service unavailable", http.StatusServiceUnavailable))
		return
	}

	body, err := readLimitedBody(r, maxContactRequestBody)
	if err != nil {
		writeBodyError(ctx, w, err)
		return
	}
	var req contactRequest
	if err := json.Unmarshal(body, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "request body must be valid JSON", http.StatusBadRequest))
		return
	}

	contact, err := h.contacts.SubmitMessage(ctx, services.ContactCommand{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	})
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, map[string]any{"id": contact.ID})
}
