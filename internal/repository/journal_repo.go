package repository

import (
	"context"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"recon-analysis-backend/internal/models"
	"recon-analysis-backend/internal/services/analysis"
)

// JournalRepository reads ingested journal rows. Implements the analysis
// service's JournalSource.
type JournalRepository struct {
	db *gorm.DB
}

func NewJournalRepository(db *gorm.DB) *JournalRepository {
	return &JournalRepository{db: db}
}

// FetchByUniqueKey returns the rows of one record type whose unique-key field
// inside record_data equals keyValue. The key field varies per record type,
// so the match goes through a JSON query rather than a fixed column.
func (r *JournalRepository) FetchByUniqueKey(ctx context.Context, fileTypeID, keyField, keyValue string, bounds *analysis.DateRange) ([]models.JournalRecord, error) {
	q := r.db.WithContext(ctx).
		Where("file_type_id = ?", fileTypeID).
		Where(datatypes.JSONQuery("record_data").Equals(keyValue, keyField))
	if bounds != nil {
		q = q.Where("txn_date >= ?", bounds.From).Where("txn_date <= ?", bounds.To)
	}

	var records []models.JournalRecord
	err := q.Find(&records).Error
	return records, err
}
