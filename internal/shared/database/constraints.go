package database

import "fmt"

// applyConstraints adds indexes and checks AutoMigrate cannot express.
// The partial index over live bookings is what the overlap counter scans.
func (db *DB) applyConstraints() error {
	statements := []string{
		// Overlap scans filter on villa + date range over non-cancelled,
		// non-failed bookings only
		`CREATE INDEX IF NOT EXISTS idx_bookings_villa_dates_live
			ON bookings (villa_id, check_in, check_out)
			WHERE status != 'cancelled' AND payment_status != 'failed'`,

		// Guest lookup is by booking code + email
		`CREATE INDEX IF NOT EXISTS idx_bookings_code_email
			ON bookings (booking_code, guest_email)`,

		// Stay dates must form a non-empty half-open interval
		`DO $$ BEGIN
			ALTER TABLE bookings
				ADD CONSTRAINT chk_bookings_date_order CHECK (check_in < check_out);
		EXCEPTION WHEN duplicate_object THEN NULL; END $$`,

		// Monetary snapshot must balance
		`DO $$ BEGIN
			ALTER TABLE bookings
				ADD CONSTRAINT chk_bookings_total CHECK (total_amount = subtotal + taxes);
		EXCEPTION WHEN duplicate_object THEN NULL; END $$`,

		// Pricing rules carry inclusive ranges
		`DO $$ BEGIN
			ALTER TABLE pricing_rules
				ADD CONSTRAINT chk_pricing_rules_range CHECK (start_date <= end_date);
		EXCEPTION WHEN duplicate_object THEN NULL; END $$`,

		// One override per villa per date
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_date_overrides_villa_date
			ON date_overrides (villa_id, date)
			WHERE deleted_at IS NULL`,

		`CREATE INDEX IF NOT EXISTS idx_pricing_rules_dates
			ON pricing_rules (start_date, end_date)
			WHERE active = true`,

		`CREATE INDEX IF NOT EXISTS idx_safari_enquiries_status
			ON safari_enquiries (status)`,
	}

	for _, stmt := range statements {
		if err := db.PostgreSQL.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to execute constraint statement: %w", err)
		}
	}

	return nil
}
