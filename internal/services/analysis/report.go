package analysis

import (
	"time"

	"github.com/google/uuid"

	"recon-analysis-backend/internal/services/matching"
)

// Scenario tags.
const (
	ScenarioA = "A" // reconciled upstream, downstream confirmation gap
	ScenarioB = "B" // counterpart data present, internal side absent
	ScenarioC = "C" // both sides present but a matching rule fails
)

// Issue codes carried on findings.
const (
	IssueReconAtNotUpdated   = "recon_at_not_updated"
	IssueTransactionMissing  = "transaction_record_missing"
	IssuePaymentNotFound     = "payment_not_found"
	IssueDataLagDetected     = "data_lag_detected"
	IssueInternalDataMissing = "internal_data_missing"
	IssueRuleMatchingFailure = "rule_matching_failure"
)

// Machine-readable error codes for requests the engine cannot analyze.
const (
	ErrCodeWorkspaceNotFound   = "workspace_not_found"
	ErrCodeRecordTypeNotFound  = "record_type_not_found"
	ErrCodeUniqueKeyUnresolved = "unique_key_unresolved"
	ErrCodeKeyValueRequired    = "key_value_required"
	ErrCodeJoinFailed          = "join_failed"
)

// Request identifies what to analyze: one unique-key value within one
// workspace. RecordTypeName is the caller's starting record type; when set it
// must exist and carry unique-key metadata.
type Request struct {
	WorkspaceID    string
	RecordTypeName string
	KeyValue       string
	DateBounds     *DateRange
}

// Finding is one detected issue. Immutable once emitted; the engine never
// mutates source records.
type Finding struct {
	ID           uuid.UUID `json:"id"`
	Scenario     string    `json:"scenario"`
	EntityID     string    `json:"entity_id"`
	RecordTypeID string    `json:"record_type_id,omitempty"`
	Issue        string    `json:"issue"`
	Suggestion   string    `json:"suggestion"`

	// Scenario A evidence.
	ReconStatus     string     `json:"recon_status,omitempty"`
	ReconAtInSource *time.Time `json:"recon_at_in_journal,omitempty"`

	// Scenario B evidence.
	PaymentExists *bool `json:"payment_exists,omitempty"`
	LagSeconds    int64 `json:"lag_seconds,omitempty"`

	// Scenario C evidence.
	FailedRuleID         int64               `json:"failed_rule_id,omitempty"`
	FailedRuleExpression string              `json:"failed_rule_expression,omitempty"`
	ExpectedState        string              `json:"expected_state,omitempty"`
	ExpectedRemarks      string              `json:"expected_remarks,omitempty"`
	Mismatches           matching.Mismatches `json:"mismatch_details,omitempty"`
}

// Report is the structured result of one analysis. Success is false only when
// the minimum inputs could not be resolved; a healthy key with zero findings
// is a successful report.
type Report struct {
	ID                uuid.UUID      `json:"id"`
	Success           bool           `json:"success"`
	ErrorCode         string         `json:"error_code,omitempty"`
	Error             string         `json:"error,omitempty"`
	KeyValue          string         `json:"unique_key_value,omitempty"`
	Findings          []Finding      `json:"findings"`
	ScenariosDetected []string       `json:"scenarios_detected"`
	RecordCounts      map[string]int `json:"record_counts,omitempty"`
	GeneratedAt       time.Time      `json:"generated_at"`
}

func errorReport(code, msg string) *Report {
	return &Report{
		ID:                uuid.New(),
		Success:           false,
		ErrorCode:         code,
		Error:             msg,
		Findings:          []Finding{},
		ScenariosDetected: []string{},
		GeneratedAt:       time.Now().UTC(),
	}
}
