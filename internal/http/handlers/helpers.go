// Package handlers contains the HTTP handlers for the public booking API
// and the admin surface.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mirrorfinish/detailing-platform/internal/booking"
	"github.com/mirrorfinish/detailing-platform/pkg/logging"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeBookingError maps booking domain errors onto HTTP statuses.
// Unrecognized errors are logged and reported as a generic 500 so internal
// detail never reaches the client.
func writeBookingError(w http.ResponseWriter, logger *logging.Logger, err error) {
	var vErr *booking.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeError(w, http.StatusBadRequest, vErr.Reason)
	case errors.Is(err, booking.ErrSlotConflict):
		writeError(w, http.StatusConflict, "that time slot is no longer available")
	case errors.Is(err, booking.ErrDateTaken):
		writeError(w, http.StatusConflict, "that date is no longer available")
	case errors.Is(err, booking.ErrHoldNotFound):
		writeError(w, http.StatusNotFound, "reservation not found or expired")
	case errors.Is(err, booking.ErrBookingNotFound):
		writeError(w, http.StatusNotFound, "booking not found")
	default:
		logger.Error("unhandled booking error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
