package models

import "time"

// Profile is the per-user ledger document: the holding set and the
// transaction log. UID is the identity provider's subject.
//
// Revision increases on every holding-set write and is used for
// compare-and-swap updates. HasTransactionLog is false only for legacy
// profiles created before the log existed; their Transactions are nil.
type Profile struct {
	UID               string        `gorm:"type:varchar(128);primaryKey" json:"uid"`
	Email             string        `json:"email"`
	Revision          int64         `gorm:"not null;default:0" json:"-"`
	HasTransactionLog bool          `gorm:"not null;default:false" json:"-"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
	Holdings          []Holding     `gorm:"foreignKey:ProfileID;references:UID" json:"holdings"`
	Transactions      []Transaction `gorm:"foreignKey:ProfileID;references:UID" json:"transactions"`
}

// HoldingBySymbol returns the index of the holding with the given
// normalized symbol, or -1.
func (p *Profile) HoldingBySymbol(symbol string) int {
	for i := range p.Holdings {
		if p.Holdings[i].Symbol == symbol {
			return i
		}
	}
	return -1
}

// HoldingByID returns the index of the holding with the given id, or -1.
func (p *Profile) HoldingByID(id string) int {
	for i := range p.Holdings {
		if p.Holdings[i].ID == id {
			return i
		}
	}
	return -1
}
