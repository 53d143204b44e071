package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"recon-analysis-backend/internal/config"
	"recon-analysis-backend/internal/models"
	"recon-analysis-backend/internal/services/catalog"
	"recon-analysis-backend/internal/services/matching"
	"recon-analysis-backend/internal/services/rules"
)

// Service is the scenario classifier: it joins journal rows across record
// types for one key and runs the three applicability checks over the result.
type Service struct {
	catalog  *catalog.Catalog
	rules    *rules.Store
	journal  JournalSource
	ledger   LedgerSource
	rephrase RemarkRephraser // optional, nil keeps template text
	engine   config.Engine
	log      *slog.Logger
}

func NewService(
	cat *catalog.Catalog,
	ruleStore *rules.Store,
	journal JournalSource,
	ledger LedgerSource,
	rephrase RemarkRephraser,
	engine config.Engine,
	log *slog.Logger,
) *Service {
	return &Service{
		catalog:  cat,
		rules:    ruleStore,
		journal:  journal,
		ledger:   ledger,
		rephrase: rephrase,
		engine:   engine,
		log:      log,
	}
}

// InvalidateCaches drops the cached schema and rules for a workspace.
func (s *Service) InvalidateCaches(workspaceID string) {
	s.catalog.Invalidate(workspaceID)
	s.rules.Invalidate(workspaceID)
}

// Catalog exposes the schema catalog for read-only collaborators (handlers
// listing workspace record types).
func (s *Service) Catalog() *catalog.Catalog { return s.catalog }

// Analyze classifies one unique-key value. The three scenario checks are
// independent: more than one may fire for the same key, and a key matching
// none is the healthy outcome, not an error.
func (s *Service) Analyze(ctx context.Context, req Request) (*Report, error) {
	if req.KeyValue == "" {
		return errorReport(ErrCodeKeyValueRequired, "unique key value is required"), nil
	}

	snap, err := s.catalog.Snapshot(ctx, req.WorkspaceID)
	if err != nil {
		if errors.Is(err, catalog.ErrWorkspaceNotFound) {
			return errorReport(ErrCodeWorkspaceNotFound,
				fmt.Sprintf("workspace %q not found", req.WorkspaceID)), nil
		}
		return nil, err
	}

	if req.RecordTypeName != "" {
		rt, ok := snap.ByName(req.RecordTypeName)
		if !ok {
			return errorReport(ErrCodeRecordTypeNotFound,
				fmt.Sprintf("record type %q not found in workspace", req.RecordTypeName)), nil
		}
		if rt.UniqueKeyField == "" {
			return errorReport(ErrCodeUniqueKeyUnresolved,
				fmt.Sprintf("record type %q declares no unique key field", req.RecordTypeName)), nil
		}
	}

	joined, err := s.joinByKey(ctx, snap, req.KeyValue, req.DateBounds)
	if err != nil {
		if errors.Is(err, ErrJoinFailed) {
			return errorReport(ErrCodeJoinFailed, "all record type fetches failed"), nil
		}
		return nil, err
	}

	s.log.Info("joined records for key",
		"workspace_id", req.WorkspaceID,
		"key_value", req.KeyValue,
		"record_types_with_data", len(joined),
	)

	shape := classifyShape(snap, joined)

	var (
		findings  []Finding
		scenarios []string
	)

	if shape.hasReconciled {
		if got := s.analyzeScenarioA(ctx, joined); len(got) > 0 {
			findings = append(findings, got...)
			scenarios = append(scenarios, ScenarioA)
		}
	}

	if shape.hasCounterpart && !shape.hasInternal {
		if got := s.analyzeScenarioB(ctx, req.KeyValue, shape); len(got) > 0 {
			findings = append(findings, got...)
			scenarios = append(scenarios, ScenarioB)
		}
	}

	if shape.hasCounterpart && shape.hasInternal && shape.hasUnreconciled {
		if got := s.analyzeScenarioC(ctx, req.WorkspaceID, req.KeyValue, snap, shape); len(got) > 0 {
			findings = append(findings, got...)
			scenarios = append(scenarios, ScenarioC)
		}
	}

	counts := make(map[string]int, len(joined))
	for typeID, records := range joined {
		counts[typeID] = len(records)
	}

	if findings == nil {
		findings = []Finding{}
	}
	if scenarios == nil {
		scenarios = []string{}
	}
	return &Report{
		ID:                uuid.New(),
		Success:           true,
		KeyValue:          req.KeyValue,
		Findings:          findings,
		ScenariosDetected: scenarios,
		RecordCounts:      counts,
		GeneratedAt:       time.Now().UTC(),
	}, nil
}

// joinShape is what the classifier needs to know about the joined map:
// which categories have data, whether any record is reconciled or still open,
// and a representative record per category for rule evaluation.
type joinShape struct {
	hasInternal     bool
	hasCounterpart  bool
	hasReconciled   bool
	hasUnreconciled bool

	internalRep    *models.JournalRecord
	counterpartRep *models.JournalRecord
}

func classifyShape(snap *catalog.Snapshot, joined map[string][]models.JournalRecord) joinShape {
	var shape joinShape
	pick := func(current *models.JournalRecord, candidate *models.JournalRecord) *models.JournalRecord {
		// Prefer a still-open record as the representative; it is the
		// one a failing rule explains.
		if current == nil {
			return candidate
		}
		if current.ReconStatus != models.StatusUnreconciled && candidate.ReconStatus == models.StatusUnreconciled {
			return candidate
		}
		return current
	}

	for typeID, records := range joined {
		rt, ok := snap.ByID(typeID)
		if !ok {
			continue
		}
		for i := range records {
			rec := &records[i]
			switch rec.ReconStatus {
			case models.StatusReconciled:
				shape.hasReconciled = true
			case models.StatusUnreconciled:
				shape.hasUnreconciled = true
			}
			switch rt.Category {
			case catalog.CategoryInternal:
				shape.hasInternal = true
				shape.internalRep = pick(shape.internalRep, rec)
			case catalog.CategoryCounterpart:
				shape.hasCounterpart = true
				shape.counterpartRep = pick(shape.counterpartRep, rec)
			}
		}
	}
	return shape
}

// analyzeScenarioA checks every reconciled journal row against the downstream
// transactions store: the row's entity must exist there with a confirmation
// timestamp. A ledger lookup failure is absorbed - under-detecting beats
// failing the whole report over one read.
func (s *Service) analyzeScenarioA(ctx context.Context, joined map[string][]models.JournalRecord) []Finding {
	var findings []Finding
	for typeID, records := range joined {
		for i := range records {
			rec := &records[i]
			if rec.ReconStatus != models.StatusReconciled || rec.EntityID == "" {
				continue
			}
			txn, err := s.ledger.FindTransaction(ctx, rec.EntityID)
			if err != nil {
				s.log.Warn("transaction lookup failed",
					"entity_id", rec.EntityID, "err", err)
				continue
			}
			switch {
			case txn == nil:
				findings = append(findings, Finding{
					ID:              uuid.New(),
					Scenario:        ScenarioA,
					EntityID:        rec.EntityID,
					RecordTypeID:    typeID,
					Issue:           IssueTransactionMissing,
					Suggestion:      suggestCreateTransaction,
					ReconStatus:     rec.ReconStatus,
					ReconAtInSource: rec.ReconAt,
				})
			case txn.ReconciledAt == nil:
				findings = append(findings, Finding{
					ID:              uuid.New(),
					Scenario:        ScenarioA,
					EntityID:        rec.EntityID,
					RecordTypeID:    typeID,
					Issue:           IssueReconAtNotUpdated,
					Suggestion:      suggestReconAtUpdate,
					ReconStatus:     rec.ReconStatus,
					ReconAtInSource: rec.ReconAt,
				})
			}
		}
	}
	return findings
}

// analyzeScenarioB explains a counterpart-only key through the canonical
// payment ledger: the payment is unknown, the replica is lagging, or the
// internal file was simply never ingested. The inverse shape (internal-only)
// is out of scope: the internal system is the source of truth to re-ingest,
// not the side to explain.
func (s *Service) analyzeScenarioB(ctx context.Context, keyValue string, shape joinShape) []Finding {
	payment, err := s.ledger.FindPayment(ctx, keyValue)
	if err != nil {
		s.log.Warn("payment lookup failed", "key_value", keyValue, "err", err)
		return nil
	}

	recordTypeID := ""
	if shape.counterpartRep != nil {
		recordTypeID = shape.counterpartRep.FileTypeID
	}

	exists := payment != nil
	finding := Finding{
		ID:            uuid.New(),
		Scenario:      ScenarioB,
		EntityID:      keyValue,
		RecordTypeID:  recordTypeID,
		PaymentExists: &exists,
	}

	if payment == nil {
		finding.Issue = IssuePaymentNotFound
		finding.Suggestion = suggestPaymentNotFound(keyValue)
		return []Finding{finding}
	}

	// Lag is only computable when both timestamps were actually written;
	// a zero replica timestamp means the row never replicated, not a skew.
	if !payment.UpdatedAt.IsZero() && !payment.DatalakeUpdatedAt.IsZero() {
		lag := payment.UpdatedAt.Sub(payment.DatalakeUpdatedAt)
		if lag < 0 {
			lag = -lag
		}
		if lag > s.engine.DataLagThreshold() {
			finding.Issue = IssueDataLagDetected
			finding.LagSeconds = int64(lag.Seconds())
			finding.Suggestion = suggestDataLag(keyValue, finding.LagSeconds)
			return []Finding{finding}
		}
	}

	finding.Issue = IssueInternalDataMissing
	finding.Suggestion = suggestInternalMissing(keyValue)
	return []Finding{finding}
}

// analyzeScenarioC compares the internal and counterpart representatives and,
// on a mismatch, attributes the failure to the first determinate rule in
// priority order: the most specific explanation wins. Rules that still contain
// unresolved sub-rule ids are indeterminate and skipped, never blamed.
func (s *Service) analyzeScenarioC(ctx context.Context, workspaceID, keyValue string, snap *catalog.Snapshot, shape joinShape) []Finding {
	if shape.internalRep == nil || shape.counterpartRep == nil {
		return nil
	}

	resolved, err := s.rules.Resolved(ctx, workspaceID)
	if err != nil {
		s.log.Warn("rule resolution failed, skipping rule checks",
			"workspace_id", workspaceID, "err", err)
		return nil
	}

	internalTypeID := shape.internalRep.FileTypeID
	counterpartTypeID := shape.counterpartRep.FileTypeID

	applicable := rules.Applicable(resolved, internalTypeID, counterpartTypeID)
	if len(applicable) == 0 {
		applicable = resolved
	}

	fields := comparisonFields(snap, internalTypeID, counterpartTypeID)
	internalFields := shape.internalRep.Fields()
	counterpartFields := shape.counterpartRep.Fields()

	// The field comparison does not depend on the rule text; it is computed
	// once, and the loop only attributes the failure to the first
	// determinate rule in priority order.
	mismatches := matching.Compare(internalFields, counterpartFields, fields)
	if len(mismatches) == 0 {
		return nil
	}

	for _, rule := range applicable {
		if rule.Indeterminate() {
			s.log.Debug("skipping indeterminate rule",
				"mapping_id", rule.MappingID, "unresolved", rule.Unresolved)
			continue
		}

		finding := Finding{
			ID:                   uuid.New(),
			Scenario:             ScenarioC,
			EntityID:             keyValue,
			RecordTypeID:         internalTypeID,
			Issue:                IssueRuleMatchingFailure,
			FailedRuleID:         rule.MappingID,
			FailedRuleExpression: rule.Expression,
			ExpectedState:        rule.State,
			ExpectedRemarks:      rule.ArtRemarks,
			Mismatches:           mismatches,
		}
		finding.Suggestion = suggestRuleRemark(rule, mismatches)
		if s.rephrase != nil {
			if rephrased, err := s.rephrase.Rephrase(ctx, finding, finding.Suggestion); err == nil && rephrased != "" {
				finding.Suggestion = rephrased
			}
		}
		// One finding only: lower sequence numbers encode the more
		// specific explanation.
		return []Finding{finding}
	}
	return nil
}

// comparisonFields merges the alias bindings of the two record types into the
// field list the evaluator checks.
func comparisonFields(snap *catalog.Snapshot, typeAID, typeBID string) []matching.Field {
	a, aOK := snap.ByID(typeAID)
	b, bOK := snap.ByID(typeBID)
	if !aOK && !bOK {
		return matching.DefaultFields
	}

	merge := func(logical string) []string {
		var out []string
		seen := make(map[string]bool)
		for _, rt := range []catalog.RecordType{a, b} {
			for _, alias := range rt.FieldBindings[logical] {
				if !seen[alias] {
					seen[alias] = true
					out = append(out, alias)
				}
			}
		}
		return out
	}

	fields := []matching.Field{
		{Key: "amount_mismatch", Aliases: merge("amount"), Numeric: true},
		{Key: "rrn_mismatch", Aliases: merge("reference")},
	}
	for i, f := range matching.DefaultFields {
		if len(fields[i].Aliases) == 0 {
			fields[i].Aliases = f.Aliases
		}
	}
	return fields
}
