package database

import (
	"fmt"

	"lagoona/internal/bookings"
	"lagoona/internal/packages"
	"lagoona/internal/safaris"
	"lagoona/internal/users"
	"lagoona/internal/villas"
)

// migrate runs schema migrations followed by the constraint pass
func (db *DB) migrate() error {
	err := db.PostgreSQL.AutoMigrate(
		&users.User{},
		&villas.Villa{},
		&villas.PricingRule{},
		&villas.DateOverride{},
		&packages.Package{},
		&safaris.Tour{},
		&safaris.Enquiry{},
		&bookings.Booking{},
		&bookings.BookingSafari{},
		&bookings.Payment{},
	)
	if err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}

	if err := db.applyConstraints(); err != nil {
		return fmt.Errorf("constraint migration failed: %w", err)
	}

	return nil
}
