package bookings

import (
	"testing"

	"lagoona/internal/villas"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// dryRunDB builds statements without touching a live database
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=lagoona dbname=lagoona port=5432 sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return db
}

func TestLockVillaQuery_RendersRowLock(t *testing.T) {
	db := dryRunDB(t)
	repo := &repository{db: db}

	var villa villas.Villa
	stmt := repo.lockVillaQuery(db, uuid.New()).Find(&villa).Statement

	sql := stmt.SQL.String()
	assert.Contains(t, sql, "id = $1")
	assert.Contains(t, sql, "FOR UPDATE")
}

func TestCancelUpdates_CouplesRefundToCancellation(t *testing.T) {
	updates := cancelUpdates(true)
	assert.Equal(t, StatusCancelled, updates["status"])
	assert.Equal(t, PaymentRefunded, updates["payment_status"])

	updates = cancelUpdates(false)
	assert.Equal(t, StatusCancelled, updates["status"])
	assert.NotContains(t, updates, "payment_status")
}
