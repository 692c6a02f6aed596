package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgxPool is the subset of pgxpool.Pool the store uses, narrow enough for
// pgxmock injection.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store persists bookings and pending holds in Postgres. The weekday
// day-uniqueness policy lives here as a partial unique index
// (bookings_weekday_exclusive); the store maps its violation to
// ErrDateTaken so callers never see raw constraint errors.
type Store struct {
	pool PgxPool
}

// NewStore creates a booking store backed by a pgx pool.
func NewStore(pool PgxPool) *Store {
	if pool == nil {
		return nil
	}
	return &Store{pool: pool}
}

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

const bookingColumns = `id, package_slug, package_name, price, billing_label,
		customer_name, customer_email, customer_phone,
		vehicle_model, seat_material, vehicle_size, notes, service_location,
		custom_services, custom_base_price,
		booking_date::text, start_time, status,
		COALESCE(calendar_event_id, ''), created_at, updated_at`

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	err := row.Scan(
		&b.ID, &b.PackageSlug, &b.PackageName, &b.Price, &b.BillingLabel,
		&b.CustomerName, &b.CustomerEmail, &b.CustomerPhone,
		&b.VehicleModel, &b.SeatMaterial, &b.VehicleSize, &b.Notes, &b.ServiceLocation,
		&b.CustomServices, &b.CustomBasePrice,
		&b.Date, &b.Time, &b.Status,
		&b.CalendarEventID, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// BookedTimesForDate returns the start times of all non-cancelled bookings
// on a date. Order is irrelevant to conflict checks.
func (s *Store) BookedTimesForDate(ctx context.Context, date string) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT start_time FROM bookings WHERE booking_date = $1 AND status <> 'cancelled'`, date)
	if err != nil {
		return nil, fmt.Errorf("booking: booked times for %s: %w", date, err)
	}
	defer rows.Close()

	var times []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("booking: scan booked time: %w", err)
		}
		times = append(times, t)
	}
	return times, rows.Err()
}

// ActiveTimesBetween returns non-cancelled booking times grouped by date
// for an inclusive date range.
func (s *Store) ActiveTimesBetween(ctx context.Context, from, to string) (map[string][]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT booking_date::text, start_time FROM bookings
		 WHERE booking_date BETWEEN $1 AND $2 AND status <> 'cancelled'`, from, to)
	if err != nil {
		return nil, fmt.Errorf("booking: times between %s and %s: %w", from, to, err)
	}
	defer rows.Close()

	byDate := make(map[string][]string)
	for rows.Next() {
		var date, t string
		if err := rows.Scan(&date, &t); err != nil {
			return nil, fmt.Errorf("booking: scan date/time: %w", err)
		}
		byDate[date] = append(byDate[date], t)
	}
	return byDate, rows.Err()
}

// InsertHold persists a pending hold and fills in its id. A duplicate
// token surfaces as ErrTokenCollision.
func (s *Store) InsertHold(ctx context.Context, h *Hold) error {
	query := `
		INSERT INTO pending_bookings (
			token, package_slug, package_name, price, billing_label,
			customer_name, customer_email, customer_phone,
			vehicle_model, seat_material, vehicle_size, notes, service_location,
			custom_services, custom_base_price,
			booking_date, start_time, expires_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id
	`
	err := s.pool.QueryRow(ctx, query,
		h.Token, h.PackageSlug, h.PackageName, h.Price, h.BillingLabel,
		h.CustomerName, h.CustomerEmail, h.CustomerPhone,
		h.VehicleModel, h.SeatMaterial, h.VehicleSize, h.Notes, h.ServiceLocation,
		h.CustomServices, h.CustomBasePrice,
		h.Date, h.Time, h.ExpiresAt,
	).Scan(&h.ID)
	if isUniqueViolation(err) {
		return ErrTokenCollision
	}
	if err != nil {
		return fmt.Errorf("booking: insert hold: %w", err)
	}
	return nil
}

// HoldByToken loads an unexpired hold. Expired rows behave as absent even
// when they have not been swept yet.
func (s *Store) HoldByToken(ctx context.Context, token string, now time.Time) (*Hold, error) {
	query := `
		SELECT id, token, package_slug, package_name, price, billing_label,
			customer_name, customer_email, customer_phone,
			vehicle_model, seat_material, vehicle_size, notes, service_location,
			custom_services, custom_base_price,
			booking_date::text, start_time, expires_at, created_at
		FROM pending_bookings
		WHERE token = $1 AND expires_at > $2
	`
	var h Hold
	err := s.pool.QueryRow(ctx, query, token, now).Scan(
		&h.ID, &h.Token, &h.PackageSlug, &h.PackageName, &h.Price, &h.BillingLabel,
		&h.CustomerName, &h.CustomerEmail, &h.CustomerPhone,
		&h.VehicleModel, &h.SeatMaterial, &h.VehicleSize, &h.Notes, &h.ServiceLocation,
		&h.CustomServices, &h.CustomBasePrice,
		&h.Date, &h.Time, &h.ExpiresAt, &h.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrHoldNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("booking: hold by token: %w", err)
	}
	return &h, nil
}

// DeleteHold removes a hold by id. Deleting an already-removed hold is not
// an error; confirmation races make that a normal outcome.
func (s *Store) DeleteHold(ctx context.Context, id int64) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM pending_bookings WHERE id = $1`, id); err != nil {
		return fmt.Errorf("booking: delete hold: %w", err)
	}
	return nil
}

// DeleteExpiredHolds sweeps holds past their expiry. Housekeeping only;
// reads already filter on expires_at.
func (s *Store) DeleteExpiredHolds(ctx context.Context, now time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM pending_bookings WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("booking: sweep holds: %w", err)
	}
	return tag.RowsAffected(), nil
}

// InsertBooking persists a confirmed booking and fills in id and
// timestamps. A weekday already holding an active booking surfaces as
// ErrDateTaken via the partial unique index.
func (s *Store) InsertBooking(ctx context.Context, b *Booking) error {
	query := `
		INSERT INTO bookings (
			package_slug, package_name, price, billing_label,
			customer_name, customer_email, customer_phone,
			vehicle_model, seat_material, vehicle_size, notes, service_location,
			custom_services, custom_base_price,
			booking_date, start_time, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id, created_at, updated_at
	`
	err := s.pool.QueryRow(ctx, query,
		b.PackageSlug, b.PackageName, b.Price, b.BillingLabel,
		b.CustomerName, b.CustomerEmail, b.CustomerPhone,
		b.VehicleModel, b.SeatMaterial, b.VehicleSize, b.Notes, b.ServiceLocation,
		b.CustomServices, b.CustomBasePrice,
		b.Date, b.Time, string(b.Status),
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrDateTaken
	}
	if err != nil {
		return fmt.Errorf("booking: insert booking: %w", err)
	}
	return nil
}

// GetBooking loads a booking by id.
func (s *Store) GetBooking(ctx context.Context, id int64) (*Booking, error) {
	b, err := scanBooking(s.pool.QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("booking: get booking: %w", err)
	}
	return b, nil
}

// ListFilter narrows ListBookings. Zero values mean no filtering.
type ListFilter struct {
	From   string
	To     string
	Status Status
}

// ListBookings returns bookings matching the filter, newest date first.
func (s *Store) ListBookings(ctx context.Context, f ListFilter) ([]Booking, error) {
	var (
		conds []string
		args  []any
	)
	if f.From != "" {
		args = append(args, f.From)
		conds = append(conds, fmt.Sprintf("booking_date >= $%d", len(args)))
	}
	if f.To != "" {
		args = append(args, f.To)
		conds = append(conds, fmt.Sprintf("booking_date <= $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, string(f.Status))
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}

	query := `SELECT ` + bookingColumns + ` FROM bookings`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY booking_date DESC, start_time ASC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("booking: list bookings: %w", err)
	}
	defer rows.Close()

	var out []Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("booking: scan booking: %w", err)
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

// Update holds the admin-editable booking fields. Nil pointers leave the
// column untouched.
type Update struct {
	Date   *string
	Time   *string
	Status *Status
	Notes  *string
}

// UpdateBooking applies an admin edit. Moving a booking onto an occupied
// weekday surfaces as ErrDateTaken through the same partial index that
// guards inserts.
func (s *Store) UpdateBooking(ctx context.Context, id int64, upd Update) (*Booking, error) {
	query := `
		UPDATE bookings SET
			booking_date = COALESCE($2::date, booking_date),
			start_time   = COALESCE($3, start_time),
			status       = COALESCE($4, status),
			notes        = COALESCE($5, notes),
			updated_at   = now()
		WHERE id = $1
		RETURNING ` + bookingColumns
	var statusArg *string
	if upd.Status != nil {
		st := string(*upd.Status)
		statusArg = &st
	}
	b, err := scanBooking(s.pool.QueryRow(ctx, query, id, upd.Date, upd.Time, statusArg, upd.Notes))
	if isUniqueViolation(err) {
		return nil, ErrDateTaken
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("booking: update booking: %w", err)
	}
	return b, nil
}

// SetCalendarEventID records the external calendar linkage.
func (s *Store) SetCalendarEventID(ctx context.Context, id int64, eventID string) error {
	if _, err := s.pool.Exec(ctx,
		`UPDATE bookings SET calendar_event_id = $2, updated_at = now() WHERE id = $1`,
		id, eventID); err != nil {
		return fmt.Errorf("booking: set calendar event: %w", err)
	}
	return nil
}

// DeleteBooking hard-deletes a booking.
func (s *Store) DeleteBooking(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("booking: delete booking: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrBookingNotFound
	}
	return nil
}
