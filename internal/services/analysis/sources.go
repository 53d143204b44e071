package analysis

import (
	"context"
	"time"

	"recon-analysis-backend/internal/models"
)

// DateRange bounds a query on transaction date, inclusive on both ends.
type DateRange struct {
	From time.Time
	To   time.Time
}

// JournalSource reads ingested journal rows. Absence is an empty slice, not
// an error; errors are real upstream failures.
//
//go:generate mockgen -destination=mocks/mock_sources.go -source=sources.go JournalSource,LedgerSource
type JournalSource interface {
	FetchByUniqueKey(ctx context.Context, fileTypeID, keyField, keyValue string, bounds *DateRange) ([]models.JournalRecord, error)
}

// LedgerSource reads the canonical downstream stores. A nil row with a nil
// error means the entity does not exist there - absence is a first-class
// answer for the classifier, not a failure.
type LedgerSource interface {
	FindTransaction(ctx context.Context, entityID string) (*models.Transaction, error)
	FindPayment(ctx context.Context, paymentID string) (*models.Payment, error)
}

// RemarkRephraser optionally rewrites a template-built suggestion into more
// natural phrasing. The engine works without one; callers plug in an external
// collaborator when they want it.
type RemarkRephraser interface {
	Rephrase(ctx context.Context, finding Finding, draft string) (string, error)
}
