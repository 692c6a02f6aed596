package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mirrorfinish/detailing-platform/internal/availability"
	"github.com/mirrorfinish/detailing-platform/pkg/logging"
)

// AvailabilityHandler serves the public slot availability endpoints.
type AvailabilityHandler struct {
	svc    *availability.Service
	logger *logging.Logger
}

// NewAvailabilityHandler creates the availability handler.
func NewAvailabilityHandler(svc *availability.Service, logger *logging.Logger) *AvailabilityHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &AvailabilityHandler{svc: svc, logger: logger}
}

// Routes mounts the availability endpoints.
func (h *AvailabilityHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Day)
	r.Get("/fully-booked", h.FullyBooked)
	return r
}

// Day handles GET /api/availability?date=YYYY-MM-DD.
func (h *AvailabilityHandler) Day(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		writeError(w, http.StatusBadRequest, "date query parameter is required")
		return
	}
	day, err := h.svc.ForDate(r.Context(), date)
	if err != nil {
		if errors.Is(err, availability.ErrInvalidRequest) {
			writeError(w, http.StatusBadRequest, "invalid date")
			return
		}
		h.logger.Error("availability lookup failed", "date", date, "error", err)
		writeError(w, http.StatusInternalServerError, "something went wrong, please try again")
		return
	}
	writeJSON(w, http.StatusOK, day)
}

// FullyBooked handles GET /api/availability/fully-booked?from=...&to=...
// It returns the dates in range with no remaining conflict-free slot, for
// disabling days in the booking calendar.
func (h *AvailabilityHandler) FullyBooked(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		writeError(w, http.StatusBadRequest, "from and to query parameters are required")
		return
	}
	dates, err := h.svc.FullyBookedBetween(r.Context(), from, to)
	if err != nil {
		if errors.Is(err, availability.ErrInvalidRequest) {
			writeError(w, http.StatusBadRequest, "invalid date range")
			return
		}
		h.logger.Error("fully-booked lookup failed", "from", from, "to", to, "error", err)
		writeError(w, http.StatusInternalServerError, "something went wrong, please try again")
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"fully_booked": dates})
}
