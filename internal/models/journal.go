package models

import (
	"time"

	"gorm.io/datatypes"
)

// Reconciliation statuses carried on journal rows.
const (
	StatusReconciled   = "Reconciled"
	StatusUnreconciled = "Unreconciled"
)

// JournalRecord is one ingested transaction row as reported by a single
// source. The per-type fields live in RecordData; which of them identifies
// the transaction is decided by the FileType's unique column. A record is
// addressed by (file type, entity id, transaction date) - the same entity id
// may legitimately appear once per file type.
type JournalRecord struct {
	FileTypeID  string            `gorm:"primaryKey"`
	EntityID    string            `gorm:"primaryKey;index"`
	TxnDate     time.Time         `gorm:"primaryKey"`
	RecordData  datatypes.JSONMap `gorm:"column:record_data"`
	ReconStatus string            `gorm:"index"`
	ReconAt     *time.Time
	EntityType  string
	ArtRemarks  string
	RowHash     string
}

func (JournalRecord) TableName() string { return "journal" }

// Fields flattens the record for field-level comparison: the raw per-source
// columns plus the bookkeeping fields the analyzer cares about.
func (r *JournalRecord) Fields() map[string]any {
	out := make(map[string]any, len(r.RecordData)+3)
	for k, v := range r.RecordData {
		out[k] = v
	}
	out["entity_id"] = r.EntityID
	out["recon_status"] = r.ReconStatus
	out["file_type_id"] = r.FileTypeID
	return out
}
