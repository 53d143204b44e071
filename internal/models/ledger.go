package models

import (
	"time"

	"gorm.io/datatypes"
)

// Transaction is the downstream confirmation row written when a journal
// record is reconciled. A reconciled journal row without a confirmed
// ReconciledAt here is the scenario A gap.
type Transaction struct {
	ID             string `gorm:"primaryKey"`
	EntityID       string `gorm:"index"`
	MerchantID     string
	Type           string
	Amount         int64
	Fee            int64
	Currency       string
	ReconciledAt   *time.Time
	ReconciledType string
	Extra          datatypes.JSONMap `gorm:"column:other_data"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Payment is the canonical ledger row for a payment id. UpdatedAt is the
// source-of-truth write time; DatalakeUpdatedAt is when the replicated copy
// the reporting pipeline reads from last caught up. A large skew between the
// two means the internal file was generated from stale data.
type Payment struct {
	ID                string `gorm:"primaryKey"`
	MerchantID        string
	Amount            int64
	Currency          string
	Method            string
	Status            string
	Extra             datatypes.JSONMap `gorm:"column:other_data"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DatalakeUpdatedAt time.Time `gorm:"column:datalake_updated_at"`
}
