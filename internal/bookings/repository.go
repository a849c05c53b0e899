package bookings

import (
	"errors"
	"fmt"
	"strings"

	"lagoona/internal/villas"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	// CreateWithAvailabilityCheck locks the villa row, recounts
	// overlapping live bookings inside the same transaction and only
	// then inserts. This closes the window between the quote-time
	// availability read and the write.
	CreateWithAvailabilityCheck(booking *Booking) error

	GetByID(id uuid.UUID) (*Booking, error)
	GetByCodeAndEmail(code, email string) (*Booking, error)
	List(filters ListFilters) ([]Booking, int64, error)

	UpdateStatus(id uuid.UUID, status BookingStatus) error
	UpdatePaymentStatus(id uuid.UUID, status PaymentStatus) error

	// MarkCancelled sets the booking cancelled and, when refund is true,
	// flips the payment to refunded in the same write
	MarkCancelled(id uuid.UUID, refund bool) error

	CreatePayment(payment *Payment) error
	UpdatePayment(payment *Payment) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateWithAvailabilityCheck(booking *Booking) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var villa villas.Villa
		err := r.lockVillaQuery(tx, booking.VillaID).First(&villa).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return villas.ErrVillaNotFound
			}
			return fmt.Errorf("failed to lock villa row: %w", err)
		}

		var overlap int64
		err = tx.Model(&Booking{}).
			Where("villa_id = ?", booking.VillaID).
			Where("status != ?", StatusCancelled).
			Where("payment_status != ?", PaymentFailed).
			Where("check_in < ? AND check_out > ?", booking.CheckOut, booking.CheckIn).
			Count(&overlap).Error
		if err != nil {
			return fmt.Errorf("failed to recount overlapping bookings: %w", err)
		}

		if overlap >= int64(villa.TotalUnits) {
			return ErrNoAvailability
		}

		if err := tx.Create(booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}
		return nil
	})
}

// lockVillaQuery takes the villa row lock that serializes concurrent
// creators until the recount and insert commit
func (r *repository) lockVillaQuery(tx *gorm.DB, villaID uuid.UUID) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Where("id = ?", villaID)
}

func (r *repository) GetByID(id uuid.UUID) (*Booking, error) {
	var booking Booking
	if err := r.db.Preload("Safaris").Where("id = ?", id).First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &booking, nil
}

func (r *repository) GetByCodeAndEmail(code, email string) (*Booking, error) {
	var booking Booking
	err := r.db.Preload("Safaris").
		Where("booking_code = ? AND LOWER(guest_email) = LOWER(?)", strings.ToUpper(code), email).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking by code: %w", err)
	}
	return &booking, nil
}

func (r *repository) List(filters ListFilters) ([]Booking, int64, error) {
	query := r.applyFilters(r.db.Model(&Booking{}), filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	var bookings []Booking
	err := query.Preload("Safaris").
		Order("created_at DESC").
		Limit(filters.Limit).
		Offset((filters.Page - 1) * filters.Limit).
		Find(&bookings).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, total, nil
}

func (r *repository) applyFilters(query *gorm.DB, filters ListFilters) *gorm.DB {
	if filters.VillaSlug != "" {
		query = query.Where("villa_slug = ?", filters.VillaSlug)
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.PaymentStatus != "" {
		query = query.Where("payment_status = ?", filters.PaymentStatus)
	}
	if filters.GuestEmail != "" {
		query = query.Where("LOWER(guest_email) = LOWER(?)", filters.GuestEmail)
	}
	return query
}

func (r *repository) UpdateStatus(id uuid.UUID, status BookingStatus) error {
	result := r.db.Model(&Booking{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update booking status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func (r *repository) UpdatePaymentStatus(id uuid.UUID, status PaymentStatus) error {
	result := r.db.Model(&Booking{}).Where("id = ?", id).Update("payment_status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update payment status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func (r *repository) MarkCancelled(id uuid.UUID, refund bool) error {
	result := r.db.Model(&Booking{}).Where("id = ?", id).Updates(cancelUpdates(refund))
	if result.Error != nil {
		return fmt.Errorf("failed to cancel booking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// cancelUpdates couples the refund to the cancellation so both columns
// land in one UPDATE
func cancelUpdates(refund bool) map[string]interface{} {
	updates := map[string]interface{}{"status": StatusCancelled}
	if refund {
		updates["payment_status"] = PaymentRefunded
	}
	return updates
}

func (r *repository) CreatePayment(payment *Payment) error {
	if err := r.db.Create(payment).Error; err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

func (r *repository) UpdatePayment(payment *Payment) error {
	if err := r.db.Save(payment).Error; err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}
	return nil
}

// CalculateTotalPages derives page count for a listing
func CalculateTotalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return pages
}
