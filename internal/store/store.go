// Package store persists user ledger profiles.
//
// A profile is loaded as one unit (holdings and transaction log) and written
// back through two narrow operations: an atomic replace of the holding set,
// guarded by the profile revision, and an append to the transaction log.
package store

import (
	"context"

	"stockledger/internal/models"
)

// UserStore is the storage port consumed by the ledger.
type UserStore interface {
	// Load returns the profile with its holdings and transaction log, or
	// ErrProfileNotFound. Legacy profiles without a log have nil Transactions.
	Load(ctx context.Context, uid string) (*models.Profile, error)

	// Create inserts an empty profile. Creating an existing profile is a no-op.
	Create(ctx context.Context, profile *models.Profile) error

	// InitTransactionLog marks a legacy profile as having an (empty) log.
	InitTransactionLog(ctx context.Context, uid string) error

	// ReplaceHoldings atomically replaces the holding set if the stored
	// revision still equals revision, and returns the new revision.
	// A stale revision yields ErrConcurrentModification.
	ReplaceHoldings(ctx context.Context, uid string, revision int64, holdings []models.Holding) (int64, error)

	// AppendTransaction adds tx at the end of the user's log.
	AppendTransaction(ctx context.Context, uid string, tx *models.Transaction) error
}
