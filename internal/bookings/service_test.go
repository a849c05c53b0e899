package bookings

import (
	"context"
	"testing"
	"time"

	"lagoona/internal/packages"
	"lagoona/internal/safaris"
	"lagoona/internal/shared/config"
	"lagoona/internal/shared/utils/dates"
	"lagoona/internal/villas"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo mirrors the transactional writer in memory, including the
// overlap recount against the villa's unit count
type fakeRepo struct {
	villaUnits map[uuid.UUID]int
	bookings   []*Booking
	payments   []*Payment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{villaUnits: map[uuid.UUID]int{}}
}

func (f *fakeRepo) CreateWithAvailabilityCheck(booking *Booking) error {
	units, ok := f.villaUnits[booking.VillaID]
	if !ok {
		return villas.ErrVillaNotFound
	}

	overlap := 0
	for _, b := range f.bookings {
		if b.VillaID != booking.VillaID {
			continue
		}
		if b.Status == StatusCancelled || b.PaymentStatus == PaymentFailed {
			continue
		}
		if b.CheckIn.Before(booking.CheckOut) && b.CheckOut.After(booking.CheckIn) {
			overlap++
		}
	}
	if overlap >= units {
		return ErrNoAvailability
	}

	booking.ID = uuid.New()
	f.bookings = append(f.bookings, booking)
	return nil
}

func (f *fakeRepo) GetByID(id uuid.UUID) (*Booking, error) {
	for _, b := range f.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, ErrBookingNotFound
}

func (f *fakeRepo) GetByCodeAndEmail(code, email string) (*Booking, error) {
	for _, b := range f.bookings {
		if b.BookingCode == code && b.GuestEmail == email {
			return b, nil
		}
	}
	return nil, ErrBookingNotFound
}

func (f *fakeRepo) List(filters ListFilters) ([]Booking, int64, error) {
	var result []Booking
	for _, b := range f.bookings {
		result = append(result, *b)
	}
	return result, int64(len(result)), nil
}

func (f *fakeRepo) UpdateStatus(id uuid.UUID, status BookingStatus) error {
	b, err := f.GetByID(id)
	if err != nil {
		return err
	}
	b.Status = status
	return nil
}

func (f *fakeRepo) UpdatePaymentStatus(id uuid.UUID, status PaymentStatus) error {
	b, err := f.GetByID(id)
	if err != nil {
		return err
	}
	b.PaymentStatus = status
	return nil
}

func (f *fakeRepo) MarkCancelled(id uuid.UUID, refund bool) error {
	b, err := f.GetByID(id)
	if err != nil {
		return err
	}
	b.Status = StatusCancelled
	if refund {
		b.PaymentStatus = PaymentRefunded
	}
	return nil
}

func (f *fakeRepo) CreatePayment(payment *Payment) error {
	payment.ID = uuid.New()
	f.payments = append(f.payments, payment)
	return nil
}

func (f *fakeRepo) UpdatePayment(payment *Payment) error {
	return nil
}

type fakeVillaCat struct {
	villas map[string]*villas.Villa
}

func (f *fakeVillaCat) GetBySlug(slug string) (*villas.Villa, error) {
	if v, ok := f.villas[slug]; ok {
		return v, nil
	}
	return nil, villas.ErrVillaNotFound
}

type fakePricer struct {
	nightly int64
}

func (f *fakePricer) QuoteStay(ctx context.Context, slug string, checkIn, checkOut time.Time) ([]villas.NightPrice, error) {
	var nights []villas.NightPrice
	dates.EachNight(checkIn, checkOut, func(night time.Time) {
		nights = append(nights, villas.NightPrice{Date: dates.Format(night), Price: f.nightly})
	})
	return nights, nil
}

type fakePkgCat struct {
	pkgs map[string]*packages.Package
}

func (f *fakePkgCat) GetBySlug(slug string) (*packages.Package, error) {
	if p, ok := f.pkgs[slug]; ok {
		return p, nil
	}
	return nil, packages.ErrPackageNotFound
}

type fakeSafCat struct {
	tours map[string]safaris.Tour
}

func (f *fakeSafCat) GetToursBySlugs(slugs []string) ([]safaris.Tour, error) {
	var result []safaris.Tour
	for _, slug := range slugs {
		if t, ok := f.tours[slug]; ok {
			result = append(result, t)
		}
	}
	return result, nil
}

type fakeHolds struct {
	released []string
}

func (f *fakeHolds) ReleaseHold(ctx context.Context, holdID string) error {
	f.released = append(f.released, holdID)
	return nil
}

type fakeNotifier struct {
	events []string
}

func (f *fakeNotifier) PublishBookingReceived(ctx context.Context, b *Booking) error {
	f.events = append(f.events, "received:"+b.BookingCode)
	return nil
}

func (f *fakeNotifier) PublishBookingConfirmed(ctx context.Context, b *Booking) error {
	f.events = append(f.events, "confirmed:"+b.BookingCode)
	return nil
}

func (f *fakeNotifier) PublishBookingCancelled(ctx context.Context, b *Booking) error {
	f.events = append(f.events, "cancelled:"+b.BookingCode)
	return nil
}

func (f *fakeNotifier) PublishPaymentReceipt(ctx context.Context, b *Booking, p *Payment) error {
	f.events = append(f.events, "receipt:"+b.BookingCode)
	return nil
}

type harness struct {
	svc      Service
	repo     *fakeRepo
	holds    *fakeHolds
	notifier *fakeNotifier
}

func newHarness(t *testing.T, nightly int64) (*harness, *villas.Villa) {
	t.Helper()

	villa := &villas.Villa{
		ID:         uuid.New(),
		Slug:       "glass-cottage",
		Name:       "Glass Cottage",
		BasePrice:  nightly,
		MaxGuests:  2,
		TotalUnits: 1,
		Active:     true,
	}

	repo := newFakeRepo()
	repo.villaUnits[villa.ID] = villa.TotalUnits

	holdsFake := &fakeHolds{}
	notifier := &fakeNotifier{}

	svc := NewService(
		repo,
		&fakeVillaCat{villas: map[string]*villas.Villa{villa.Slug: villa}},
		&fakePricer{nightly: nightly},
		&fakePkgCat{pkgs: map[string]*packages.Package{
			"full-board": {Slug: "full-board", Name: "Full Board", PricePerNight: 2000, Active: true},
		}},
		&fakeSafCat{tours: map[string]safaris.Tour{
			"night-safari": {Slug: "night-safari", Name: "Night Safari", Price: 3000, Active: true},
		}},
		holdsFake,
		notifier,
		config.BookingConfig{TaxRatePercent: 18, Currency: "INR", MaxStayNights: 30},
	)

	return &harness{svc: svc, repo: repo, holds: holdsFake, notifier: notifier}, villa
}

func futureDate(daysAhead int) string {
	return time.Now().UTC().AddDate(0, 0, daysAhead).Format("2006-01-02")
}

func validRequest() CreateBookingRequest {
	return CreateBookingRequest{
		VillaSlug:   "glass-cottage",
		CheckIn:     futureDate(30),
		CheckOut:    futureDate(32),
		Guests:      2,
		PackageSlug: "full-board",
		SafariSlugs: []string{"night-safari"},
		GuestName:   "Asha Verma",
		GuestEmail:  "asha@example.com",
	}
}

func TestCreateBooking_ComputesSnapshotTotals(t *testing.T) {
	h, _ := newHarness(t, 15000)

	booking, err := h.svc.CreateBooking(context.Background(), validRequest())
	require.NoError(t, err)

	// (15000+2000)*2 + 3000 = 37000, 18% tax
	assert.Equal(t, int64(37000), booking.Subtotal)
	assert.Equal(t, int64(6660), booking.Taxes)
	assert.Equal(t, int64(43660), booking.TotalAmount)
	assert.Equal(t, StatusPending, booking.Status)
	assert.Equal(t, PaymentPending, booking.PaymentStatus)
	assert.Regexp(t, `^RST-\d{8}-[A-HJ-NP-Z2-9]{6}$`, booking.BookingCode)
	assert.Equal(t, []string{"received:" + booking.BookingCode}, h.notifier.events)
}

func TestCreateBooking_LastUnitRace(t *testing.T) {
	h, _ := newHarness(t, 15000)
	req := validRequest()

	_, err := h.svc.CreateBooking(context.Background(), req)
	require.NoError(t, err)

	// The glass cottage has one unit; the second write for the same
	// dates must lose the recount
	req.GuestName = "Rohan Mehta"
	req.GuestEmail = "rohan@example.com"
	_, err = h.svc.CreateBooking(context.Background(), req)
	assert.ErrorIs(t, err, ErrNoAvailability)
}

func TestCreateBooking_SameDayTurnoverAllowed(t *testing.T) {
	h, _ := newHarness(t, 15000)

	first := validRequest()
	_, err := h.svc.CreateBooking(context.Background(), first)
	require.NoError(t, err)

	second := validRequest()
	second.CheckIn = first.CheckOut
	second.CheckOut = futureDate(34)
	second.GuestEmail = "rohan@example.com"
	_, err = h.svc.CreateBooking(context.Background(), second)
	assert.NoError(t, err)
}

func TestCreateBooking_ValidationErrors(t *testing.T) {
	h, _ := newHarness(t, 15000)

	req := validRequest()
	req.GuestEmail = "not-an-email"
	req.Guests = 0

	_, err := h.svc.CreateBooking(context.Background(), req)
	ve, ok := AsValidationError(err)
	require.True(t, ok, "expected ValidationError, got %v", err)
	assert.Contains(t, ve.Fields, "guest_email")
	assert.Contains(t, ve.Fields, "guests")
}

func TestCreateBooking_RejectsPastAndInvertedDates(t *testing.T) {
	h, _ := newHarness(t, 15000)

	req := validRequest()
	req.CheckIn = futureDate(32)
	req.CheckOut = futureDate(30)
	_, err := h.svc.CreateBooking(context.Background(), req)
	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "check_out")

	req = validRequest()
	req.CheckIn = futureDate(-5)
	req.CheckOut = futureDate(2)
	_, err = h.svc.CreateBooking(context.Background(), req)
	ve, ok = AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "check_in")
}

func TestCreateBooking_RejectsTooManyGuests(t *testing.T) {
	h, _ := newHarness(t, 15000)

	req := validRequest()
	req.Guests = 5
	_, err := h.svc.CreateBooking(context.Background(), req)
	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "guests")
}

func TestCreateBooking_ReleasesHold(t *testing.T) {
	h, _ := newHarness(t, 15000)

	req := validRequest()
	req.HoldID = uuid.New().String()
	_, err := h.svc.CreateBooking(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, []string{req.HoldID}, h.holds.released)
}

func TestProcessDemoPayment_ConfirmsBooking(t *testing.T) {
	h, _ := newHarness(t, 15000)

	created, err := h.svc.CreateBooking(context.Background(), validRequest())
	require.NoError(t, err)

	paid, err := h.svc.ProcessDemoPayment(context.Background(), PayBookingRequest{
		BookingCode: created.BookingCode,
		GuestEmail:  created.GuestEmail,
	})
	require.NoError(t, err)

	assert.Equal(t, StatusConfirmed, paid.Status)
	assert.Equal(t, PaymentPaid, paid.PaymentStatus)
	assert.Contains(t, h.notifier.events, "confirmed:"+created.BookingCode)
	assert.Contains(t, h.notifier.events, "receipt:"+created.BookingCode)
}

func TestProcessDemoPayment_FailureFreesUnit(t *testing.T) {
	h, _ := newHarness(t, 15000)

	created, err := h.svc.CreateBooking(context.Background(), validRequest())
	require.NoError(t, err)

	failed, err := h.svc.ProcessDemoPayment(context.Background(), PayBookingRequest{
		BookingCode: created.BookingCode,
		GuestEmail:  created.GuestEmail,
		Outcome:     "failure",
	})
	require.NoError(t, err)
	assert.Equal(t, PaymentFailed, failed.PaymentStatus)
	assert.Equal(t, StatusPending, failed.Status)

	// The failed booking no longer blocks inventory
	req := validRequest()
	req.GuestEmail = "rohan@example.com"
	_, err = h.svc.CreateBooking(context.Background(), req)
	assert.NoError(t, err)
}

func TestCancelBooking_RefundsPaid(t *testing.T) {
	h, _ := newHarness(t, 15000)

	created, err := h.svc.CreateBooking(context.Background(), validRequest())
	require.NoError(t, err)
	_, err = h.svc.ProcessDemoPayment(context.Background(), PayBookingRequest{
		BookingCode: created.BookingCode,
		GuestEmail:  created.GuestEmail,
	})
	require.NoError(t, err)

	cancelled, err := h.svc.CancelBooking(context.Background(), CancelBookingRequest{
		BookingCode: created.BookingCode,
		GuestEmail:  created.GuestEmail,
	})
	require.NoError(t, err)

	assert.Equal(t, StatusCancelled, cancelled.Status)
	assert.Equal(t, PaymentRefunded, cancelled.PaymentStatus)
	assert.Contains(t, h.notifier.events, "cancelled:"+created.BookingCode)

	// The cancelled booking frees its unit
	req := validRequest()
	req.GuestEmail = "rohan@example.com"
	_, err = h.svc.CreateBooking(context.Background(), req)
	assert.NoError(t, err)
}

func TestCancelBooking_RejectsTerminalStates(t *testing.T) {
	h, _ := newHarness(t, 15000)

	created, err := h.svc.CreateBooking(context.Background(), validRequest())
	require.NoError(t, err)

	_, err = h.svc.CancelBooking(context.Background(), CancelBookingRequest{
		BookingCode: created.BookingCode,
		GuestEmail:  created.GuestEmail,
	})
	require.NoError(t, err)

	_, err = h.svc.CancelBooking(context.Background(), CancelBookingRequest{
		BookingCode: created.BookingCode,
		GuestEmail:  created.GuestEmail,
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestLookupBooking(t *testing.T) {
	h, _ := newHarness(t, 15000)

	created, err := h.svc.CreateBooking(context.Background(), validRequest())
	require.NoError(t, err)

	found, err := h.svc.LookupBooking(context.Background(), created.BookingCode, created.GuestEmail)
	require.NoError(t, err)
	assert.Equal(t, created.BookingCode, found.BookingCode)

	_, err = h.svc.LookupBooking(context.Background(), created.BookingCode, "wrong@example.com")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
