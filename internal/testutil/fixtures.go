package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"stockledger/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestProfile creates an empty profile with a unique uid and an
// initialized transaction log.
func CreateTestProfile(t *testing.T, db *gorm.DB) *models.Profile {
	t.Helper()
	n := nextID()
	return createProfile(t, db, fmt.Sprintf("uid-%d", n), fmt.Sprintf("user%d@test.com", n), true)
}

// CreateLegacyProfile creates a profile that predates the transaction log.
func CreateLegacyProfile(t *testing.T, db *gorm.DB) *models.Profile {
	t.Helper()
	n := nextID()
	return createProfile(t, db, fmt.Sprintf("legacy-%d", n), fmt.Sprintf("legacy%d@test.com", n), false)
}

func createProfile(t *testing.T, db *gorm.DB, uid, email string, withLog bool) *models.Profile {
	t.Helper()

	profile := &models.Profile{UID: uid, Email: email}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("failed to create test profile: %v", err)
	}
	// GORM skips zero values that have a column default, so set the flag explicitly.
	if err := db.Model(profile).Update("has_transaction_log", withLog).Error; err != nil {
		t.Fatalf("failed to set transaction log flag: %v", err)
	}
	profile.HasTransactionLog = withLog
	return profile
}

// CreateTestHolding inserts a holding directly, bypassing the ledger.
// shares and avgCost are decimal literals.
func CreateTestHolding(t *testing.T, db *gorm.DB, uid, symbol, shares, avgCost string) *models.Holding {
	t.Helper()

	holding := &models.Holding{
		ProfileID:         uid,
		Symbol:            symbol,
		CompanyName:       symbol + " Inc",
		Shares:            decimal.RequireFromString(shares),
		AverageCostBasis:  decimal.RequireFromString(avgCost),
		FirstPurchaseDate: models.NewDate(2024, 1, 2),
	}
	if err := db.Create(holding).Error; err != nil {
		t.Fatalf("failed to create test holding: %v", err)
	}
	return holding
}
