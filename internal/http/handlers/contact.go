package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/mirrorfinish/detailing-platform/internal/notify"
	"github.com/mirrorfinish/detailing-platform/pkg/logging"
)

// ContactRelay forwards a contact-form submission to the business owner.
type ContactRelay interface {
	RelayContactMessage(ctx context.Context, m notify.ContactMessage) error
}

// ContactHandler serves the public contact form endpoint.
type ContactHandler struct {
	relay    ContactRelay
	logger   *logging.Logger
	validate *validator.Validate
}

// NewContactHandler creates the contact form handler.
func NewContactHandler(relay ContactRelay, logger *logging.Logger) *ContactHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &ContactHandler{relay: relay, logger: logger, validate: validator.New()}
}

type contactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Message string `json:"message" validate:"required,max=5000"`
}

// Submit handles POST /api/contact.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "name, a valid email and a message are required")
		return
	}

	msg := notify.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	}
	if err := h.relay.RelayContactMessage(r.Context(), msg); err != nil {
		h.logger.Error("contact relay failed", "from", req.Email, "error", err)
		writeError(w, http.StatusInternalServerError, "could not deliver your message, please try again later")
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"message": "Thanks! We'll get back to you soon."})
}
