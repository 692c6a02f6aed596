package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/mirrorfinish/detailing-platform/internal/catalog"
	"github.com/mirrorfinish/detailing-platform/internal/observability/metrics"
	"github.com/mirrorfinish/detailing-platform/internal/schedule"
	"github.com/mirrorfinish/detailing-platform/pkg/logging"
)

var bookingTracer = otel.Tracer("detailing.internal.booking")

// HoldTTL is how long a customer has to confirm. Fixed, not configurable
// per request.
const HoldTTL = 24 * time.Hour

// Storage is the persistence surface the hold manager depends on.
// *Store satisfies it; tests substitute in-memory fakes that emulate the
// weekday partial index.
type Storage interface {
	BookedTimesForDate(ctx context.Context, date string) ([]string, error)
	InsertHold(ctx context.Context, h *Hold) error
	HoldByToken(ctx context.Context, token string, now time.Time) (*Hold, error)
	DeleteHold(ctx context.Context, id int64) error
	InsertBooking(ctx context.Context, b *Booking) error
	SetCalendarEventID(ctx context.Context, id int64, eventID string) error
	GetBooking(ctx context.Context, id int64) (*Booking, error)
	ListBookings(ctx context.Context, f ListFilter) ([]Booking, error)
	UpdateBooking(ctx context.Context, id int64, upd Update) (*Booking, error)
	DeleteBooking(ctx context.Context, id int64) error
}

// Notifier dispatches customer and owner emails. Failures are logged by
// the service and never fail the booking flow.
type Notifier interface {
	ConfirmationRequest(ctx context.Context, h *Hold) error
	BookingConfirmed(ctx context.Context, b *Booking) error
	OwnerBookingAlert(ctx context.Context, b *Booking) error
}

// Calendar mirrors bookings into an external calendar. A nil Calendar is a
// supported mode: bookings simply carry no linkage.
type Calendar interface {
	CreateEvent(ctx context.Context, b *Booking) (string, error)
	PatchEvent(ctx context.Context, b *Booking) error
	DeleteEvent(ctx context.Context, eventID string) error
}

// Service is the reservation hold manager: it owns the two-phase
// reserve/confirm protocol and the admin booking mutations.
type Service struct {
	store    Storage
	pricing  *catalog.Resolver
	notifier Notifier
	calendar Calendar
	metrics  *metrics.BookingMetrics
	logger   *logging.Logger
	validate *validator.Validate
	now      func() time.Time
}

// NewService constructs the hold manager. notifier and calendar may be nil.
func NewService(store Storage, pricing *catalog.Resolver, notifier Notifier, calendar Calendar, m *metrics.BookingMetrics, logger *logging.Logger) *Service {
	if store == nil {
		panic("booking: storage required")
	}
	if pricing == nil {
		pricing = catalog.NewResolver(nil)
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		store:    store,
		pricing:  pricing,
		notifier: notifier,
		calendar: calendar,
		metrics:  m,
		logger:   logger,
		validate: validator.New(),
		now:      time.Now,
	}
}

// Request is a public booking submission.
type Request struct {
	Package         string   `json:"package" validate:"required"`
	CustomServices  []string `json:"custom_services"`
	Name            string   `json:"name" validate:"required"`
	Email           string   `json:"email" validate:"required,email"`
	Phone           string   `json:"phone"`
	VehicleModel    string   `json:"vehicle_model" validate:"required"`
	SeatMaterial    string   `json:"seat_material"`
	VehicleSize     string   `json:"vehicle_size"`
	Notes           string   `json:"notes"`
	ServiceLocation string   `json:"service_location"`
	Date            string   `json:"date" validate:"required"`
	Time            string   `json:"time" validate:"required"`
}

func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func requestReason(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		switch fe.Tag() {
		case "required":
			return strings.ToLower(fe.Field()) + " is required"
		case "email":
			return "invalid email address"
		}
	}
	return "invalid booking request"
}

// Reserve is transition NONE -> PENDING: validate the submission, resolve
// the price server-side, run the slot validator and the advisory conflict
// check, then persist a 24-hour hold and dispatch the confirmation email.
// No booking id exists yet; the caller only acknowledges the email.
func (s *Service) Reserve(ctx context.Context, req Request) (*Hold, error) {
	ctx, span := bookingTracer.Start(ctx, "booking.reserve")
	defer span.End()
	span.SetAttributes(
		attribute.String("booking.package", req.Package),
		attribute.String("booking.date", req.Date),
	)

	if err := s.validate.Struct(req); err != nil {
		s.metrics.ObserveRejection("validation")
		return nil, validationErr(requestReason(err))
	}
	if req.Phone != "" {
		digits := stripNonDigits(req.Phone)
		if len(digits) < 10 || len(digits) > 15 {
			s.metrics.ObserveRejection("validation")
			return nil, validationErr("phone number must contain 10 to 15 digits")
		}
	}

	pkg, ok := catalog.PackageBySlug(req.Package)
	if !ok {
		s.metrics.ObserveRejection("validation")
		return nil, validationErr("unknown package")
	}
	if pkg.RequiresInteriorDetails && strings.TrimSpace(req.SeatMaterial) == "" {
		s.metrics.ObserveRejection("validation")
		return nil, validationErr("seat material is required for interior services")
	}
	if req.VehicleSize == "" {
		req.VehicleSize = "sedan"
	}

	if res := schedule.ValidateBookingSlotAt(req.Date, req.Time, s.now()); !res.Valid {
		s.metrics.ObserveRejection("slot")
		return nil, validationErr(res.Reason)
	}

	quote, err := s.pricing.Price(ctx, req.Package, req.CustomServices, req.VehicleSize)
	if err != nil {
		s.metrics.ObserveRejection("validation")
		return nil, validationErr(strings.TrimPrefix(err.Error(), "catalog: "))
	}

	// Advisory conflict check. Storage trouble here is swallowed: the
	// confirmation-time re-check and the weekday index are the backstops.
	booked, err := s.store.BookedTimesForDate(ctx, req.Date)
	if err != nil {
		s.logger.Warn("advisory conflict check skipped", "date", req.Date, "error", err)
		booked = nil
	}
	for _, taken := range booked {
		if schedule.SlotsOverlap(req.Time, taken) {
			s.metrics.ObserveRejection("conflict")
			return nil, ErrSlotConflict
		}
	}

	token, err := NewHoldToken()
	if err != nil {
		return nil, err
	}

	hold := &Hold{
		Token:           token,
		PackageSlug:     quote.PackageSlug,
		PackageName:     quote.PackageName,
		Price:           quote.Total,
		BillingLabel:    quote.BillingLabel,
		CustomerName:    req.Name,
		CustomerEmail:   req.Email,
		CustomerPhone:   req.Phone,
		VehicleModel:    req.VehicleModel,
		SeatMaterial:    req.SeatMaterial,
		VehicleSize:     req.VehicleSize,
		Notes:           req.Notes,
		ServiceLocation: req.ServiceLocation,
		Date:            req.Date,
		Time:            req.Time,
		ExpiresAt:       s.now().Add(HoldTTL),
	}
	if pkg.Customizable {
		hold.CustomServices = req.CustomServices
		hold.CustomBasePrice = quote.BasePrice
	}

	if err := s.store.InsertHold(ctx, hold); err != nil {
		span.RecordError(err)
		return nil, err
	}
	s.metrics.ObserveHoldCreated()
	s.logger.Info("hold created",
		"hold_id", hold.ID, "package", hold.PackageSlug,
		"date", hold.Date, "time", hold.Time, "price", hold.Price)

	// Fire-and-forget: the hold survives a failed send, the customer just
	// has to resubmit. Not auto-retried.
	if s.notifier != nil {
		if err := s.notifier.ConfirmationRequest(ctx, hold); err != nil {
			s.metrics.ObserveEmail("confirmation_request", "failed")
			s.logger.Error("confirmation request email failed", "hold_id", hold.ID, "error", err)
		} else {
			s.metrics.ObserveEmail("confirmation_request", "sent")
		}
	}
	return hold, nil
}

// Confirm is transition PENDING -> CONFIRMED (or back to NONE). The slot
// is re-validated against the current booking set, then the insert runs
// into the weekday partial index as the final arbiter.
func (s *Service) Confirm(ctx context.Context, token string) (*Booking, error) {
	ctx, span := bookingTracer.Start(ctx, "booking.confirm")
	defer span.End()

	hold, err := s.store.HoldByToken(ctx, token, s.now())
	if err != nil {
		if errors.Is(err, ErrHoldNotFound) {
			s.metrics.ObserveConfirmation("not_found")
		}
		return nil, err
	}
	span.SetAttributes(attribute.String("booking.date", hold.Date))

	booked, err := s.store.BookedTimesForDate(ctx, hold.Date)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	for _, taken := range booked {
		if schedule.SlotsOverlap(hold.Time, taken) {
			// The hold is worthless now; drop it so the row never
			// lingers referencing an impossible slot.
			s.discardHold(ctx, hold.ID)
			s.metrics.ObserveConfirmation("conflict")
			return nil, ErrSlotConflict
		}
	}

	b := &Booking{
		PackageSlug:     hold.PackageSlug,
		PackageName:     hold.PackageName,
		Price:           hold.Price,
		BillingLabel:    hold.BillingLabel,
		CustomerName:    hold.CustomerName,
		CustomerEmail:   hold.CustomerEmail,
		CustomerPhone:   hold.CustomerPhone,
		VehicleModel:    hold.VehicleModel,
		SeatMaterial:    hold.SeatMaterial,
		VehicleSize:     hold.VehicleSize,
		Notes:           hold.Notes,
		ServiceLocation: hold.ServiceLocation,
		CustomServices:  hold.CustomServices,
		CustomBasePrice: hold.CustomBasePrice,
		Date:            hold.Date,
		Time:            hold.Time,
		Status:          StatusBooked,
	}
	if err := s.store.InsertBooking(ctx, b); err != nil {
		if errors.Is(err, ErrDateTaken) {
			s.discardHold(ctx, hold.ID)
			s.metrics.ObserveConfirmation("date_taken")
			return nil, ErrDateTaken
		}
		span.RecordError(err)
		return nil, err
	}

	// Calendar linkage is best-effort; the booking stands without it.
	if s.calendar != nil {
		if eventID, err := s.calendar.CreateEvent(ctx, b); err != nil {
			s.logger.Error("calendar event creation failed", "booking_id", b.ID, "error", err)
		} else if eventID != "" {
			b.CalendarEventID = eventID
			if err := s.store.SetCalendarEventID(ctx, b.ID, eventID); err != nil {
				s.logger.Error("calendar linkage not stored", "booking_id", b.ID, "error", err)
			}
		}
	}

	s.discardHold(ctx, hold.ID)

	if s.notifier != nil {
		if err := s.notifier.BookingConfirmed(ctx, b); err != nil {
			s.metrics.ObserveEmail("booking_confirmed", "failed")
			s.logger.Error("customer confirmation email failed", "booking_id", b.ID, "error", err)
		} else {
			s.metrics.ObserveEmail("booking_confirmed", "sent")
		}
		if err := s.notifier.OwnerBookingAlert(ctx, b); err != nil {
			s.metrics.ObserveEmail("owner_alert", "failed")
			s.logger.Error("owner alert email failed", "booking_id", b.ID, "error", err)
		} else {
			s.metrics.ObserveEmail("owner_alert", "sent")
		}
	}

	s.metrics.ObserveConfirmation("confirmed")
	s.logger.Info("booking confirmed",
		"booking_id", b.ID, "package", b.PackageSlug, "date", b.Date, "time", b.Time)
	return b, nil
}

func (s *Service) discardHold(ctx context.Context, id int64) {
	if err := s.store.DeleteHold(ctx, id); err != nil {
		s.logger.Error("hold cleanup failed", "hold_id", id, "error", err)
	}
}
