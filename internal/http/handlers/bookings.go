package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mirrorfinish/detailing-platform/internal/booking"
	"github.com/mirrorfinish/detailing-platform/pkg/logging"
)

// BookingsHandler serves the public reserve/confirm endpoints.
type BookingsHandler struct {
	svc    *booking.Service
	logger *logging.Logger
}

// NewBookingsHandler creates the public bookings handler.
func NewBookingsHandler(svc *booking.Service, logger *logging.Logger) *BookingsHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &BookingsHandler{svc: svc, logger: logger}
}

// Routes mounts the public booking endpoints.
func (h *BookingsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Reserve)
	r.Post("/confirm", h.Confirm)
	return r
}

// ReserveResponse acknowledges a new hold. The confirmation token travels
// only by email, never in this response.
type ReserveResponse struct {
	Message   string `json:"message"`
	Package   string `json:"package"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Price     int    `json:"price"`
	ExpiresAt string `json:"expires_at"`
}

// Reserve handles POST /api/bookings: validate the submission and create a
// pending hold.
func (h *BookingsHandler) Reserve(w http.ResponseWriter, r *http.Request) {
	var req booking.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	hold, err := h.svc.Reserve(r.Context(), req)
	if err != nil {
		writeBookingError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, ReserveResponse{
		Message:   "Reservation created. Check your email to confirm your booking within 24 hours.",
		Package:   hold.PackageSlug,
		Date:      hold.Date,
		Time:      hold.Time,
		Price:     hold.Price,
		ExpiresAt: hold.ExpiresAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	})
}

type confirmRequest struct {
	Token string `json:"token"`
}

// Confirm handles POST /api/bookings/confirm: promote a held reservation
// into a durable booking. The token comes from the JSON body, with the
// query string as a fallback for the emailed link.
func (h *BookingsHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if r.Body != nil {
		// A missing or empty body is fine; the token may be in the query.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	if req.Token == "" {
		req.Token = r.URL.Query().Get("token")
	}
	req.Token = strings.TrimSpace(req.Token)
	if req.Token == "" {
		writeError(w, http.StatusBadRequest, "confirmation token is required")
		return
	}

	b, err := h.svc.Confirm(r.Context(), req.Token)
	if err != nil {
		writeBookingError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}
