// Package notify renders and dispatches the transactional emails the
// booking flow produces: the confirm-your-booking request, the customer
// confirmation, the owner alert and the contact-form relay.
package notify

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/google/uuid"

	"github.com/mirrorfinish/detailing-platform/internal/booking"
	"github.com/mirrorfinish/detailing-platform/internal/schedule"
	"github.com/mirrorfinish/detailing-platform/pkg/logging"
)

// Service renders booking emails and hands them to an EmailSender.
// It implements booking.Notifier.
type Service struct {
	sender        EmailSender
	publicBaseURL string
	ownerEmail    string
	logger        *logging.Logger
}

// NewService creates the notification service. publicBaseURL is used to
// build the confirmation link; ownerEmail receives booking alerts and
// contact-form relays.
func NewService(sender EmailSender, publicBaseURL, ownerEmail string, logger *logging.Logger) *Service {
	if sender == nil {
		sender = NewStubEmailSender(logger)
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		sender:        sender,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		ownerEmail:    ownerEmail,
		logger:        logger,
	}
}

// ConfirmURL builds the link the customer follows to promote a hold.
func (s *Service) ConfirmURL(token string) string {
	return fmt.Sprintf("%s/confirm?token=%s", s.publicBaseURL, token)
}

// ConfirmationRequest emails the customer the single-use confirmation link
// for a freshly reserved hold.
func (s *Service) ConfirmationRequest(ctx context.Context, h *booking.Hold) error {
	correlationID := uuid.New().String()
	when := appointmentLine(h.Date, h.Time)
	link := s.ConfirmURL(h.Token)

	body := fmt.Sprintf(`Hi %s,

Thanks for booking with Mirror Finish Detailing!

Your appointment:
  Service:  %s
  When:     %s
  Vehicle:  %s
  Total:    $%d %s

To lock in your slot, confirm your booking within 24 hours:

  %s

If you didn't request this, you can ignore this email and the
reservation will expire on its own.

— Mirror Finish Detailing`,
		h.CustomerName, h.PackageName, when, h.VehicleModel, h.Price, h.BillingLabel, link)

	htmlBody := fmt.Sprintf(`<p>Hi %s,</p>
<p>Thanks for booking with <strong>Mirror Finish Detailing</strong>!</p>
<p>Your appointment:</p>
<ul>
  <li><strong>Service:</strong> %s</li>
  <li><strong>When:</strong> %s</li>
  <li><strong>Vehicle:</strong> %s</li>
  <li><strong>Total:</strong> $%d %s</li>
</ul>
<p>To lock in your slot, <a href="%s">confirm your booking</a> within 24 hours.</p>
<p>If you didn't request this, you can ignore this email and the reservation will expire on its own.</p>
<p>— Mirror Finish Detailing</p>`,
		html.EscapeString(h.CustomerName), html.EscapeString(h.PackageName), when,
		html.EscapeString(h.VehicleModel), h.Price, h.BillingLabel, link)

	err := s.sender.Send(ctx, EmailMessage{
		To:      h.CustomerEmail,
		ToName:  h.CustomerName,
		Subject: "Confirm your detailing appointment",
		Body:    body,
		HTML:    htmlBody,
	})
	if err != nil {
		return fmt.Errorf("notify: confirmation request: %w", err)
	}
	s.logger.Info("confirmation request sent", "correlation_id", correlationID, "to", h.CustomerEmail)
	return nil
}

// BookingConfirmed emails the customer once their hold has been promoted
// to a durable booking.
func (s *Service) BookingConfirmed(ctx context.Context, b *booking.Booking) error {
	when := appointmentLine(b.Date, b.Time)

	body := fmt.Sprintf(`Hi %s,

Your detailing appointment is confirmed!

  Service:  %s
  When:     %s
  Vehicle:  %s
  Total:    $%d %s

We'll see you then. If you need to reschedule, just reply to this
email.

— Mirror Finish Detailing`,
		b.CustomerName, b.PackageName, when, b.VehicleModel, b.Price, b.BillingLabel)

	htmlBody := fmt.Sprintf(`<p>Hi %s,</p>
<p>Your detailing appointment is <strong>confirmed</strong>!</p>
<ul>
  <li><strong>Service:</strong> %s</li>
  <li><strong>When:</strong> %s</li>
  <li><strong>Vehicle:</strong> %s</li>
  <li><strong>Total:</strong> $%d %s</li>
</ul>
<p>We'll see you then. If you need to reschedule, just reply to this email.</p>
<p>— Mirror Finish Detailing</p>`,
		html.EscapeString(b.CustomerName), html.EscapeString(b.PackageName), when,
		html.EscapeString(b.VehicleModel), b.Price, b.BillingLabel)

	err := s.sender.Send(ctx, EmailMessage{
		To:      b.CustomerEmail,
		ToName:  b.CustomerName,
		Subject: "Your detailing appointment is confirmed",
		Body:    body,
		HTML:    htmlBody,
	})
	if err != nil {
		return fmt.Errorf("notify: booking confirmed: %w", err)
	}
	return nil
}

// OwnerBookingAlert emails the business owner about a new confirmed
// booking. A missing owner address is a silent no-op.
func (s *Service) OwnerBookingAlert(ctx context.Context, b *booking.Booking) error {
	if s.ownerEmail == "" {
		return nil
	}
	when := appointmentLine(b.Date, b.Time)

	lines := []string{
		fmt.Sprintf("Service:  %s", b.PackageName),
		fmt.Sprintf("When:     %s", when),
		fmt.Sprintf("Customer: %s <%s>", b.CustomerName, b.CustomerEmail),
	}
	if b.CustomerPhone != "" {
		lines = append(lines, fmt.Sprintf("Phone:    %s", b.CustomerPhone))
	}
	lines = append(lines, fmt.Sprintf("Vehicle:  %s (%s)", b.VehicleModel, b.VehicleSize))
	if b.SeatMaterial != "" {
		lines = append(lines, fmt.Sprintf("Seats:    %s", b.SeatMaterial))
	}
	if len(b.CustomServices) > 0 {
		lines = append(lines, fmt.Sprintf("Add-ons:  %s", strings.Join(b.CustomServices, ", ")))
	}
	if b.ServiceLocation != "" {
		lines = append(lines, fmt.Sprintf("Location: %s", b.ServiceLocation))
	}
	if b.Notes != "" {
		lines = append(lines, fmt.Sprintf("Notes:    %s", b.Notes))
	}
	lines = append(lines, fmt.Sprintf("Total:    $%d %s", b.Price, b.BillingLabel))

	err := s.sender.Send(ctx, EmailMessage{
		To:      s.ownerEmail,
		Subject: fmt.Sprintf("New booking: %s on %s", b.PackageName, when),
		Body:    "New confirmed booking:\n\n  " + strings.Join(lines, "\n  ") + "\n",
	})
	if err != nil {
		return fmt.Errorf("notify: owner alert: %w", err)
	}
	return nil
}

// ContactMessage is a message submitted through the public contact form.
type ContactMessage struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// RelayContactMessage forwards a contact-form submission to the owner.
func (s *Service) RelayContactMessage(ctx context.Context, m ContactMessage) error {
	if s.ownerEmail == "" {
		s.logger.Warn("contact message dropped: no owner email configured", "from", m.Email)
		return nil
	}

	body := fmt.Sprintf(`New contact form message:

  From:  %s <%s>
  Phone: %s

%s
`, m.Name, m.Email, m.Phone, m.Message)

	err := s.sender.Send(ctx, EmailMessage{
		To:      s.ownerEmail,
		Subject: fmt.Sprintf("Contact form: %s", m.Name),
		Body:    body,
	})
	if err != nil {
		return fmt.Errorf("notify: contact relay: %w", err)
	}
	return nil
}

// appointmentLine renders "Saturday, September 5 2026 at 9:00 AM". Falls
// back to the raw strings if the stored values are malformed.
func appointmentLine(date, t string) string {
	d, err := schedule.ParseDate(date)
	if err != nil {
		return fmt.Sprintf("%s at %s", date, t)
	}
	return fmt.Sprintf("%s at %s", d.Format("Monday, January 2 2006"), schedule.FormatTime12h(t))
}

var _ booking.Notifier = (*Service)(nil)
