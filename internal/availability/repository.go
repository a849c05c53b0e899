package availability

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository counts live bookings that collide with a requested stay
type Repository interface {
	// CountOverlapping counts non-cancelled, non-failed bookings for the
	// villa whose stay interval intersects [checkIn, checkOut). Stay
	// intervals are half-open, so a checkout on the requested check-in
	// day does not collide.
	CountOverlapping(villaID uuid.UUID, checkIn, checkOut time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CountOverlapping(villaID uuid.UUID, checkIn, checkOut time.Time) (int64, error) {
	var count int64
	err := r.db.Table("bookings").
		Where("villa_id = ?", villaID).
		Where("status != ?", "cancelled").
		Where("payment_status != ?", "failed").
		Where("check_in < ? AND check_out > ?", checkOut, checkIn).
		Where("deleted_at IS NULL").
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count overlapping bookings: %w", err)
	}
	return count, nil
}
