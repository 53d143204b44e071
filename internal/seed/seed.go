// Package seed loads a demo workspace shaped to exercise all three
// diagnostic scenarios, for local development against the sqlite store.
package seed

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"recon-analysis-backend/internal/models"
)

const (
	WorkspaceID        = "wrk_demo"
	InternalFileTypeID = "ft_rzp_payment_report"
	BankFileTypeID     = "ft_bank_payment_report"
)

// DemoData populates the demo workspace. Inserts use ON CONFLICT DO NOTHING
// so reseeding an existing database is harmless.
func DemoData(db *gorm.DB) error {
	now := time.Now().UTC()

	rows := []any{
		&models.Workspace{
			ID:         WorkspaceID,
			MerchantID: "mrc_demo",
			Name:       "demo-recon",
			Metadata:   datatypes.JSONMap{"currency": "INR"},
		},

		&models.FileType{
			ID:             InternalFileTypeID,
			WorkspaceID:    WorkspaceID,
			MerchantID:     "mrc_demo",
			Name:           "rzp_payment_report",
			SourceCategory: "internal",
			FileMetadata:   datatypes.JSON(`[{"name":"unique_column","value":"pay_id"}]`),
			Schema:         datatypes.JSON(`[{"name":"pay_id"},{"name":"amount"},{"name":"rrn"}]`),
		},
		&models.FileType{
			ID:             BankFileTypeID,
			WorkspaceID:    WorkspaceID,
			MerchantID:     "mrc_demo",
			Name:           "bank_payment_report",
			SourceCategory: "bank_mis",
			FileMetadata:   datatypes.JSON(`[{"name":"unique_column","value":"extracted_payment_id"}]`),
			Schema:         datatypes.JSON(`[{"name":"extracted_payment_id"},{"name":"abs_amount"},{"name":"rrn"}]`),
		},

		&models.Rule{ID: 1, WorkspaceID: WorkspaceID, Predicate: "amount == counterpart_amount", FileType1ID: InternalFileTypeID, FileType2ID: BankFileTypeID},
		&models.Rule{ID: 2, WorkspaceID: WorkspaceID, Predicate: "rrn == counterpart_rrn", FileType1ID: InternalFileTypeID, FileType2ID: BankFileTypeID},

		&models.ReconState{ID: 1, State: "Reconciled", Rank: 1},
		&models.ReconState{ID: 2, State: "Unreconciled", Rank: 2, ArtRemarks: "Amount/RRN mismatch between internal and bank report"},

		&models.RuleStateMapping{
			ID:             10,
			WorkspaceID:    WorkspaceID,
			RuleExpression: "1 and 2",
			FileType1ID:    InternalFileTypeID,
			FileType2ID:    BankFileTypeID,
			ReconStateID:   2,
			SeqNumber:      intPtr(1),
		},
	}
	rows = append(rows, scenarioARows(now)...)
	rows = append(rows, scenarioBRows(now)...)
	rows = append(rows, scenarioCRows(now)...)

	for _, row := range rows {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(row).Error; err != nil {
			return err
		}
	}
	return nil
}

// Scenario A: reconciled in the journal on both sides, but the downstream
// transaction never got its reconciled_at stamp.
func scenarioARows(now time.Time) []any {
	reconAt := now.Add(-24 * time.Hour)
	txnDate := now.Truncate(24 * time.Hour).Add(-48 * time.Hour)
	return []any{
		&models.JournalRecord{
			FileTypeID:  InternalFileTypeID,
			EntityID:    "pay_demo_a",
			TxnDate:     txnDate,
			ReconStatus: models.StatusReconciled,
			ReconAt:     &reconAt,
			RecordData:  datatypes.JSONMap{"pay_id": "pay_demo_a", "amount": 1500, "rrn": "RRN-A-1"},
		},
		&models.JournalRecord{
			FileTypeID:  BankFileTypeID,
			EntityID:    "pay_demo_a",
			TxnDate:     txnDate,
			ReconStatus: models.StatusReconciled,
			ReconAt:     &reconAt,
			RecordData:  datatypes.JSONMap{"extracted_payment_id": "pay_demo_a", "abs_amount": 1500, "rrn": "RRN-A-1"},
		},
		&models.Transaction{
			ID:       "txn_demo_a",
			EntityID: "pay_demo_a",
			Amount:   1500,
			Currency: "INR",
			// ReconciledAt deliberately nil: the scenario A gap.
		},
	}
}

// Scenario B: bank-only keys in three flavors - payment unknown, replica
// lagging, and payment in sync (internal file never ingested).
func scenarioBRows(now time.Time) []any {
	txnDate := now.Truncate(24 * time.Hour).Add(-48 * time.Hour)
	bankRow := func(key string) *models.JournalRecord {
		return &models.JournalRecord{
			FileTypeID:  BankFileTypeID,
			EntityID:    key,
			TxnDate:     txnDate,
			ReconStatus: models.StatusUnreconciled,
			RecordData:  datatypes.JSONMap{"extracted_payment_id": key, "abs_amount": 900, "rrn": "RRN-B-1"},
		}
	}
	return []any{
		bankRow("pay_demo_b_missing"),

		bankRow("pay_demo_b_lag"),
		&models.Payment{
			ID:                "pay_demo_b_lag",
			Amount:            900,
			Currency:          "INR",
			Status:            "captured",
			UpdatedAt:         now,
			DatalakeUpdatedAt: now.Add(-2 * time.Hour),
		},

		bankRow("pay_demo_b_gap"),
		&models.Payment{
			ID:                "pay_demo_b_gap",
			Amount:            900,
			Currency:          "INR",
			Status:            "captured",
			UpdatedAt:         now,
			DatalakeUpdatedAt: now.Add(-time.Minute),
		},
	}
}

// Scenario C: both sides present and still open, amounts disagree.
func scenarioCRows(now time.Time) []any {
	txnDate := now.Truncate(24 * time.Hour).Add(-48 * time.Hour)
	return []any{
		&models.JournalRecord{
			FileTypeID:  InternalFileTypeID,
			EntityID:    "pay_demo_c",
			TxnDate:     txnDate,
			ReconStatus: models.StatusUnreconciled,
			RecordData:  datatypes.JSONMap{"pay_id": "pay_demo_c", "amount": 1000, "rrn": "RRN-C-1"},
		},
		&models.JournalRecord{
			FileTypeID:  BankFileTypeID,
			EntityID:    "pay_demo_c",
			TxnDate:     txnDate,
			ReconStatus: models.StatusUnreconciled,
			RecordData:  datatypes.JSONMap{"extracted_payment_id": "pay_demo_c", "abs_amount": 1100, "rrn": "RRN-C-1"},
		},
	}
}

func intPtr(v int) *int { return &v }
