package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mirrorfinish/detailing-platform/internal/booking"
	"github.com/mirrorfinish/detailing-platform/pkg/logging"
)

// AdminBookingsHandler serves the admin booking management endpoints.
type AdminBookingsHandler struct {
	svc    *booking.Service
	logger *logging.Logger
}

// NewAdminBookingsHandler creates the admin bookings handler.
func NewAdminBookingsHandler(svc *booking.Service, logger *logging.Logger) *AdminBookingsHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &AdminBookingsHandler{svc: svc, logger: logger}
}

// Routes mounts the admin booking endpoints.
func (h *AdminBookingsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}", h.Update)
	r.Post("/{id}/cancel", h.Cancel)
	r.Delete("/{id}", h.Delete)
	return r
}

func bookingID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

// List handles GET /admin/bookings with optional from/to/status filters.
func (h *AdminBookingsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := booking.ListFilter{
		From: q.Get("from"),
		To:   q.Get("to"),
	}
	if st := q.Get("status"); st != "" {
		status := booking.Status(st)
		if !status.Valid() {
			writeError(w, http.StatusBadRequest, "unknown booking status")
			return
		}
		filter.Status = status
	}

	bookings, err := h.svc.List(r.Context(), filter)
	if err != nil {
		writeBookingError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"bookings": bookings,
		"total":    len(bookings),
	})
}

// Get handles GET /admin/bookings/{id}.
func (h *AdminBookingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid booking id")
		return
	}
	b, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeBookingError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

type adminUpdateRequest struct {
	Date   *string `json:"date"`
	Time   *string `json:"time"`
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

// Update handles PATCH /admin/bookings/{id}. Omitted fields stay as-is.
func (h *AdminBookingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid booking id")
		return
	}
	var req adminUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	upd := booking.AdminUpdate{Date: req.Date, Time: req.Time, Notes: req.Notes}
	if req.Status != nil {
		st := booking.Status(*req.Status)
		upd.Status = &st
	}

	b, err := h.svc.UpdateBooking(r.Context(), id, upd)
	if err != nil {
		writeBookingError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// Cancel handles POST /admin/bookings/{id}/cancel.
func (h *AdminBookingsHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid booking id")
		return
	}
	b, err := h.svc.Cancel(r.Context(), id)
	if err != nil {
		writeBookingError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// Delete handles DELETE /admin/bookings/{id}.
func (h *AdminBookingsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid booking id")
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeBookingError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
