package models

import (
	"time"

	"stockledger/internal/uuid"

	"gorm.io/gorm"
)

// Base contains common columns for ledger rows. Ledger rows are never
// soft-deleted: a removed holding is gone, and transactions are append-only.
type Base struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New()
	}
	return nil
}
