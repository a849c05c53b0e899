package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"lagoona/internal/packages"
	"lagoona/internal/safaris"
	"lagoona/internal/shared/config"
	"lagoona/internal/shared/utils/dates"
	"lagoona/internal/villas"
	"lagoona/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Narrow views of the other domains, declared here so the service can
// be tested against fakes and so the packages stay cycle-free.

type VillaCatalog interface {
	GetBySlug(slug string) (*villas.Villa, error)
}

type StayPricer interface {
	QuoteStay(ctx context.Context, slug string, checkIn, checkOut time.Time) ([]villas.NightPrice, error)
}

type PackageCatalog interface {
	GetBySlug(slug string) (*packages.Package, error)
}

type SafariCatalog interface {
	GetToursBySlugs(slugs []string) ([]safaris.Tour, error)
}

type HoldReleaser interface {
	ReleaseHold(ctx context.Context, holdID string) error
}

// Notifier publishes booking lifecycle events. Implemented by the
// notifications package.
type Notifier interface {
	PublishBookingReceived(ctx context.Context, booking *Booking) error
	PublishBookingConfirmed(ctx context.Context, booking *Booking) error
	PublishBookingCancelled(ctx context.Context, booking *Booking) error
	PublishPaymentReceipt(ctx context.Context, booking *Booking, payment *Payment) error
}

type Service interface {
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*BookingResponse, error)
	LookupBooking(ctx context.Context, code, email string) (*BookingResponse, error)
	CancelBooking(ctx context.Context, req CancelBookingRequest) (*BookingResponse, error)
	ProcessDemoPayment(ctx context.Context, req PayBookingRequest) (*BookingResponse, error)

	AdminList(ctx context.Context, filters ListFilters) (*ListResult, error)
	AdminCancel(ctx context.Context, id uuid.UUID) error
	AdminComplete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo     Repository
	villaCat VillaCatalog
	pricer   StayPricer
	pkgCat   PackageCatalog
	safCat   SafariCatalog
	holds    HoldReleaser
	notifier Notifier
	cfg      config.BookingConfig
	validate *validator.Validate
	log      *logger.Logger
}

func NewService(
	repo Repository,
	villaCat VillaCatalog,
	pricer StayPricer,
	pkgCat PackageCatalog,
	safCat SafariCatalog,
	holds HoldReleaser,
	notifier Notifier,
	cfg config.BookingConfig,
) Service {
	return &service{
		repo:     repo,
		villaCat: villaCat,
		pricer:   pricer,
		pkgCat:   pkgCat,
		safCat:   safCat,
		holds:    holds,
		notifier: notifier,
		cfg:      cfg,
		validate: validator.New(),
		log:      logger.GetDefault(),
	}
}

func (s *service) CreateBooking(ctx context.Context, req CreateBookingRequest) (*BookingResponse, error) {
	if err := s.validateDraft(req); err != nil {
		return nil, err
	}

	checkIn, _ := dates.Parse(req.CheckIn)
	checkOut, _ := dates.Parse(req.CheckOut)

	fields := map[string]string{}
	if !checkIn.Before(checkOut) {
		fields["check_out"] = "must be after check_in"
	}
	if checkIn.Before(dates.Today()) {
		fields["check_in"] = "must not be in the past"
	}
	if s.cfg.MaxStayNights > 0 && dates.NightsBetween(checkIn, checkOut) > s.cfg.MaxStayNights {
		fields["check_out"] = fmt.Sprintf("stay may not exceed %d nights", s.cfg.MaxStayNights)
	}
	if len(fields) > 0 {
		return nil, NewValidationError(fields)
	}

	villa, err := s.villaCat.GetBySlug(req.VillaSlug)
	if err != nil {
		if errors.Is(err, villas.ErrVillaNotFound) {
			return nil, NewValidationError(map[string]string{"villa_slug": "unknown villa"})
		}
		return nil, err
	}
	if !villa.Active {
		return nil, NewValidationError(map[string]string{"villa_slug": "villa is not bookable"})
	}
	if req.Guests > villa.MaxGuests {
		return nil, NewValidationError(map[string]string{
			"guests": fmt.Sprintf("villa sleeps at most %d guests", villa.MaxGuests),
		})
	}

	booking := &Booking{
		VillaID:    villa.ID,
		VillaSlug:  villa.Slug,
		VillaName:  villa.Name,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Guests:     req.Guests,
		GuestName:  strings.TrimSpace(req.GuestName),
		GuestEmail: strings.ToLower(strings.TrimSpace(req.GuestEmail)),
		GuestPhone: strings.TrimSpace(req.GuestPhone),
	}

	quoteInput := QuoteInput{TaxRatePercent: s.cfg.TaxRatePercent}

	nightly, err := s.pricer.QuoteStay(ctx, villa.Slug, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	for _, night := range nightly {
		quoteInput.NightlyPrices = append(quoteInput.NightlyPrices, night.Price)
	}
	booking.VillaNightlyPrice = nightly[0].Price

	if req.PackageSlug != "" {
		pkg, err := s.pkgCat.GetBySlug(req.PackageSlug)
		if err != nil {
			if errors.Is(err, packages.ErrPackageNotFound) {
				return nil, NewValidationError(map[string]string{"package_slug": "unknown package"})
			}
			return nil, err
		}
		booking.PackageSlug = pkg.Slug
		booking.PackageName = pkg.Name
		booking.PackagePricePerNight = pkg.PricePerNight
		quoteInput.PackagePerNight = pkg.PricePerNight
	}

	if len(req.SafariSlugs) > 0 {
		tours, err := s.safCat.GetToursBySlugs(req.SafariSlugs)
		if err != nil {
			return nil, err
		}
		if len(tours) != len(uniqueStrings(req.SafariSlugs)) {
			return nil, NewValidationError(map[string]string{"safari_slugs": "one or more safari tours are unknown"})
		}
		for _, tour := range tours {
			booking.Safaris = append(booking.Safaris, BookingSafari{
				TourSlug: tour.Slug,
				TourName: tour.Name,
				Price:    tour.Price,
			})
			quoteInput.SafariPrices = append(quoteInput.SafariPrices, tour.Price)
		}
	}

	quote := ComputeQuote(quoteInput)
	booking.Subtotal = quote.Subtotal
	booking.Taxes = quote.Taxes
	booking.TotalAmount = quote.Total
	booking.Status = StatusPending
	booking.PaymentStatus = PaymentPending

	code, err := GenerateBookingCode(time.Now())
	if err != nil {
		return nil, err
	}
	booking.BookingCode = code

	if err := s.repo.CreateWithAvailabilityCheck(booking); err != nil {
		if errors.Is(err, ErrNoAvailability) {
			s.log.LogAvailabilityDenied(ctx, villa.Slug, req.CheckIn, req.CheckOut)
		}
		return nil, err
	}

	s.log.LogBookingCreated(ctx, booking.BookingCode, booking.VillaSlug, booking.Nights())

	if req.HoldID != "" && s.holds != nil {
		if err := s.holds.ReleaseHold(ctx, req.HoldID); err != nil {
			s.log.ErrorWithContext(ctx, "failed to release hold after booking", err, map[string]interface{}{
				"hold_id":      req.HoldID,
				"booking_code": booking.BookingCode,
			})
		}
	}

	if s.notifier != nil {
		if err := s.notifier.PublishBookingReceived(ctx, booking); err != nil {
			s.log.ErrorWithContext(ctx, "failed to publish booking notification", err, map[string]interface{}{
				"booking_code": booking.BookingCode,
			})
		}
	}

	resp := booking.ToResponse()
	return &resp, nil
}

func (s *service) LookupBooking(ctx context.Context, code, email string) (*BookingResponse, error) {
	booking, err := s.repo.GetByCodeAndEmail(code, email)
	if err != nil {
		return nil, err
	}
	resp := booking.ToResponse()
	return &resp, nil
}

func (s *service) CancelBooking(ctx context.Context, req CancelBookingRequest) (*BookingResponse, error) {
	booking, err := s.repo.GetByCodeAndEmail(req.BookingCode, req.GuestEmail)
	if err != nil {
		return nil, err
	}

	if !booking.CanCancel() {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, StatusCancelled)
	}

	// Money already taken comes back in the same write
	refund := booking.PaymentStatus == PaymentPaid || booking.PaymentStatus == PaymentAdvancePaid
	if err := s.repo.MarkCancelled(booking.ID, refund); err != nil {
		return nil, err
	}
	booking.Status = StatusCancelled
	if refund {
		booking.PaymentStatus = PaymentRefunded
	}

	s.log.LogBookingCancelled(ctx, booking.BookingCode, booking.VillaSlug)

	if s.notifier != nil {
		if err := s.notifier.PublishBookingCancelled(ctx, booking); err != nil {
			s.log.ErrorWithContext(ctx, "failed to publish cancellation notification", err, map[string]interface{}{
				"booking_code": booking.BookingCode,
			})
		}
	}

	resp := booking.ToResponse()
	return &resp, nil
}

// ProcessDemoPayment settles a booking through the built-in demo
// gateway. A successful payment promotes the booking to confirmed; a
// failed one marks the payment status failed, which releases the unit
// back to inventory.
func (s *service) ProcessDemoPayment(ctx context.Context, req PayBookingRequest) (*BookingResponse, error) {
	booking, err := s.repo.GetByCodeAndEmail(req.BookingCode, req.GuestEmail)
	if err != nil {
		return nil, err
	}

	if booking.Status != StatusPending {
		return nil, fmt.Errorf("%w: booking is %s", ErrInvalidTransition, booking.Status)
	}
	if booking.PaymentStatus != PaymentPending {
		return nil, fmt.Errorf("%w: payment already %s", ErrInvalidTransition, booking.PaymentStatus)
	}

	kind := req.Kind
	if kind == "" {
		kind = "full"
	}
	amount := booking.TotalAmount
	if kind == "advance" {
		amount = booking.TotalAmount / 2
	}

	payment := &Payment{
		BookingID: booking.ID,
		Amount:    amount,
		Kind:      kind,
		Status:    "pending",
		Reference: fmt.Sprintf("DEMO-%s", uuid.New().String()[:8]),
	}
	if err := s.repo.CreatePayment(payment); err != nil {
		return nil, err
	}

	if req.Outcome == "failure" {
		payment.Status = "failed"
		if err := s.repo.UpdatePayment(payment); err != nil {
			return nil, err
		}
		if err := s.repo.UpdatePaymentStatus(booking.ID, PaymentFailed); err != nil {
			return nil, err
		}
		booking.PaymentStatus = PaymentFailed
		resp := booking.ToResponse()
		return &resp, nil
	}

	payment.Status = "completed"
	if err := s.repo.UpdatePayment(payment); err != nil {
		return nil, err
	}

	paymentStatus := PaymentPaid
	if kind == "advance" {
		paymentStatus = PaymentAdvancePaid
	}
	if err := s.repo.UpdatePaymentStatus(booking.ID, paymentStatus); err != nil {
		return nil, err
	}
	booking.PaymentStatus = paymentStatus

	if err := s.repo.UpdateStatus(booking.ID, StatusConfirmed); err != nil {
		return nil, err
	}
	booking.Status = StatusConfirmed

	if s.notifier != nil {
		if err := s.notifier.PublishBookingConfirmed(ctx, booking); err != nil {
			s.log.ErrorWithContext(ctx, "failed to publish confirmation notification", err, map[string]interface{}{
				"booking_code": booking.BookingCode,
			})
		}
		if err := s.notifier.PublishPaymentReceipt(ctx, booking, payment); err != nil {
			s.log.ErrorWithContext(ctx, "failed to publish payment receipt", err, map[string]interface{}{
				"booking_code": booking.BookingCode,
			})
		}
	}

	resp := booking.ToResponse()
	return &resp, nil
}

func (s *service) AdminList(ctx context.Context, filters ListFilters) (*ListResult, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.Limit < 1 || filters.Limit > 100 {
		filters.Limit = 20
	}

	list, total, err := s.repo.List(filters)
	if err != nil {
		return nil, err
	}

	responses := make([]BookingResponse, 0, len(list))
	for i := range list {
		responses = append(responses, list[i].ToResponse())
	}

	return &ListResult{
		Bookings:   responses,
		Total:      total,
		Page:       filters.Page,
		Limit:      filters.Limit,
		TotalPages: CalculateTotalPages(total, filters.Limit),
	}, nil
}

func (s *service) AdminCancel(ctx context.Context, id uuid.UUID) error {
	booking, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if !booking.CanCancel() {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, StatusCancelled)
	}
	refund := booking.PaymentStatus == PaymentPaid || booking.PaymentStatus == PaymentAdvancePaid
	if err := s.repo.MarkCancelled(id, refund); err != nil {
		return err
	}
	s.log.LogBookingCancelled(ctx, booking.BookingCode, booking.VillaSlug)
	return nil
}

func (s *service) AdminComplete(ctx context.Context, id uuid.UUID) error {
	booking, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if !booking.Status.CanTransitionTo(StatusCompleted) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, StatusCompleted)
	}
	if !booking.PaymentStatus.CoversConfirmation() {
		return ErrPaymentRequired
	}
	return s.repo.UpdateStatus(id, StatusCompleted)
}

func (s *service) validateDraft(req CreateBookingRequest) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[toSnake(fe.Field())] = validationMessage(fe)
	}
	return NewValidationError(fields)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "datetime":
		return "must be a valid YYYY-MM-DD date"
	case "gt":
		return "must be greater than " + fe.Param()
	case "min":
		return "is too short"
	case "uuid4":
		return "must be a valid hold id"
	default:
		return "is invalid"
	}
}

func toSnake(field string) string {
	var b strings.Builder
	for i, r := range field {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	var result []string
	for _, v := range values {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			result = append(result, v)
		}
	}
	return result
}
