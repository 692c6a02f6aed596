// Package booking implements the reservation hold protocol and durable
// booking lifecycle: two-phase reserve/confirm with expiring holds, the
// conflict checks around them, and the admin mutations.
package booking

import "time"

// Status is the lifecycle state of a durable booking.
type Status string

const (
	StatusBooked    Status = "booked"
	StatusUpdated   Status = "updated"
	StatusCompleted Status = "completed"
	// StatusCancelled is terminal. Cancelled rows are excluded from every
	// conflict and day-uniqueness check.
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusBooked, StatusUpdated, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Active reports whether the status counts against conflicts and the
// weekday day-uniqueness policy.
func (s Status) Active() bool {
	return s != StatusCancelled
}

// Booking is a confirmed appointment. Bookings are only ever created by
// promoting a Hold; the public API never inserts one directly.
type Booking struct {
	ID              int64     `json:"id"`
	PackageSlug     string    `json:"package"`
	PackageName     string    `json:"package_name"`
	Price           int       `json:"price"`
	BillingLabel    string    `json:"billing_label"`
	CustomerName    string    `json:"customer_name"`
	CustomerEmail   string    `json:"customer_email"`
	CustomerPhone   string    `json:"customer_phone,omitempty"`
	VehicleModel    string    `json:"vehicle_model"`
	SeatMaterial    string    `json:"seat_material,omitempty"`
	VehicleSize     string    `json:"vehicle_size"`
	Notes           string    `json:"notes,omitempty"`
	ServiceLocation string    `json:"service_location,omitempty"`
	CustomServices  []string  `json:"custom_services,omitempty"`
	CustomBasePrice int       `json:"custom_base_price,omitempty"`
	Date            string    `json:"date"`
	Time            string    `json:"time"`
	Status          Status    `json:"status"`
	CalendarEventID string    `json:"calendar_event_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Hold is a pending, unconfirmed reservation bound to a single-use token.
// It carries the same core fields as a Booking minus status and calendar
// linkage, and is only actionable while now < ExpiresAt. Readers treat a
// row past its expiry as absent even if it has not been swept yet.
type Hold struct {
	ID              int64
	Token           string
	PackageSlug     string
	PackageName     string
	Price           int
	BillingLabel    string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	VehicleModel    string
	SeatMaterial    string
	VehicleSize     string
	Notes           string
	ServiceLocation string
	CustomServices  []string
	CustomBasePrice int
	Date            string
	Time            string
	ExpiresAt       time.Time
	CreatedAt       time.Time
}
