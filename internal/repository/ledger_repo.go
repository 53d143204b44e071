package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"recon-analysis-backend/internal/models"
)

// LedgerRepository reads the canonical downstream stores (transactions,
// payments). Implements the analysis service's LedgerSource. Absence is
// returned as (nil, nil): not finding a row is an answer, not an error.
type LedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) FindTransaction(ctx context.Context, entityID string) (*models.Transaction, error) {
	var txn models.Transaction
	err := r.db.WithContext(ctx).First(&txn, "entity_id = ?", entityID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *LedgerRepository) FindPayment(ctx context.Context, paymentID string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).First(&payment, "id = ?", paymentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}
