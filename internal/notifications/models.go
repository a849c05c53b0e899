package notifications

import (
	"fmt"
	"time"

	"lagoona/internal/bookings"
	"lagoona/internal/safaris"

	"github.com/google/uuid"
)

// Notification types carried on the Kafka topic
const (
	TypeBookingReceived  = "booking_received"
	TypeBookingConfirmed = "booking_confirmed"
	TypeBookingCancelled = "booking_cancelled"
	TypePaymentReceipt   = "payment_receipt"
	TypeEnquiryReceived  = "enquiry_received"
)

// EmailNotification is the message published to Kafka and consumed by
// the email workers
type EmailNotification struct {
	ID        string            `json:"id"`
	Type      string            `json:"type"`
	Recipient string            `json:"recipient"`
	Subject   string            `json:"subject"`
	Body      string            `json:"body"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	Attempts  int               `json:"attempts"`
}

func newNotification(notifType, recipient, subject, body string, metadata map[string]string) *EmailNotification {
	return &EmailNotification{
		ID:        uuid.New().String(),
		Type:      notifType,
		Recipient: recipient,
		Subject:   subject,
		Body:      body,
		Metadata:  metadata,
		CreatedAt: time.Now().UTC(),
	}
}

// BuildBookingReceived builds the acknowledgement sent right after the
// booking row is committed
func BuildBookingReceived(b *bookings.Booking) *EmailNotification {
	subject := fmt.Sprintf("We received your booking %s", b.BookingCode)
	body := fmt.Sprintf(
		"Dear %s,\n\nThank you for booking the %s.\n\n"+
			"Booking code: %s\nCheck-in: %s\nCheck-out: %s\nGuests: %d\n"+
			"Total: INR %d (incl. taxes INR %d)\n\n"+
			"Your booking is pending payment. Complete the payment to confirm your stay.\n\n"+
			"Lagoona Resort",
		b.GuestName, b.VillaName,
		b.BookingCode, b.CheckIn.Format("2006-01-02"), b.CheckOut.Format("2006-01-02"), b.Guests,
		b.TotalAmount, b.Taxes,
	)
	return newNotification(TypeBookingReceived, b.GuestEmail, subject, body, map[string]string{
		"booking_code": b.BookingCode,
		"villa":        b.VillaSlug,
	})
}

// BuildBookingConfirmed builds the confirmation sent once payment covers
// the booking
func BuildBookingConfirmed(b *bookings.Booking) *EmailNotification {
	subject := fmt.Sprintf("Booking %s confirmed", b.BookingCode)
	body := fmt.Sprintf(
		"Dear %s,\n\nYour stay at the %s is confirmed.\n\n"+
			"Booking code: %s\nCheck-in: %s\nCheck-out: %s\n\n"+
			"We look forward to hosting you.\n\nLagoona Resort",
		b.GuestName, b.VillaName,
		b.BookingCode, b.CheckIn.Format("2006-01-02"), b.CheckOut.Format("2006-01-02"),
	)
	return newNotification(TypeBookingConfirmed, b.GuestEmail, subject, body, map[string]string{
		"booking_code": b.BookingCode,
	})
}

// BuildBookingCancelled builds the cancellation notice
func BuildBookingCancelled(b *bookings.Booking) *EmailNotification {
	subject := fmt.Sprintf("Booking %s cancelled", b.BookingCode)
	body := fmt.Sprintf(
		"Dear %s,\n\nYour booking %s for the %s has been cancelled.\n",
		b.GuestName, b.BookingCode, b.VillaName,
	)
	if b.PaymentStatus == bookings.PaymentRefunded {
		body += "\nYour payment will be refunded to the original payment method within 5-7 business days.\n"
	}
	body += "\nLagoona Resort"
	return newNotification(TypeBookingCancelled, b.GuestEmail, subject, body, map[string]string{
		"booking_code": b.BookingCode,
	})
}

// BuildPaymentReceipt builds the receipt for a settled payment
func BuildPaymentReceipt(b *bookings.Booking, p *bookings.Payment) *EmailNotification {
	subject := fmt.Sprintf("Payment receipt for booking %s", b.BookingCode)
	body := fmt.Sprintf(
		"Dear %s,\n\nWe received your payment.\n\n"+
			"Booking code: %s\nPayment reference: %s\nAmount: INR %d\n\nLagoona Resort",
		b.GuestName, b.BookingCode, p.Reference, p.Amount,
	)
	return newNotification(TypePaymentReceipt, b.GuestEmail, subject, body, map[string]string{
		"booking_code": b.BookingCode,
		"reference":    p.Reference,
	})
}

// BuildEnquiryReceived builds the acknowledgement for a safari enquiry
func BuildEnquiryReceived(e *safaris.Enquiry, tour *safaris.Tour) *EmailNotification {
	subject := fmt.Sprintf("Your %s enquiry", tour.Name)
	body := fmt.Sprintf(
		"Dear %s,\n\nThank you for your interest in the %s.\n\n"+
			"Preferred date: %s\nParty size: %d\n\n"+
			"Our team will contact you shortly to finalise the details.\n\nLagoona Resort",
		e.GuestName, tour.Name,
		e.PreferredOn.Format("2006-01-02"), e.PartySize,
	)
	return newNotification(TypeEnquiryReceived, e.GuestEmail, subject, body, map[string]string{
		"enquiry_id": e.ID.String(),
		"tour":       tour.Slug,
	})
}
