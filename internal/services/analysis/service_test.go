package analysis_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"recon-analysis-backend/internal/config"
	"recon-analysis-backend/internal/models"
	"recon-analysis-backend/internal/services/analysis"
	mock_analysis "recon-analysis-backend/internal/services/analysis/mocks"
	"recon-analysis-backend/internal/services/catalog"
	mock_catalog "recon-analysis-backend/internal/services/catalog/mocks"
	"recon-analysis-backend/internal/services/rules"
	mock_rules "recon-analysis-backend/internal/services/rules/mocks"
)

const (
	testWorkspace   = "wrk_1"
	internalTypeID  = "ft_int"
	bankTypeID      = "ft_bank"
	summaryTypeID   = "ft_summary"
	internalKeyCol  = "pay_id"
	bankKeyCol      = "extracted_payment_id"
	internalRTName  = "RZP Payment Report"
	bankRTName      = "Bank Payment Report"
	summaryRTName   = "Settlement Summary"
	testEngineLagTh = 3600
)

type fixture struct {
	cfgSrc  *mock_catalog.MockConfigSource
	ruleSrc *mock_rules.MockSource
	journal *mock_analysis.MockJournalSource
	ledger  *mock_analysis.MockLedgerSource
	svc     *analysis.Service
}

func newFixture(t *testing.T, ctrl *gomock.Controller, rephrase analysis.RemarkRephraser) *fixture {
	t.Helper()
	lg := slog.New(slog.NewTextHandler(io.Discard, nil))
	f := &fixture{
		cfgSrc:  mock_catalog.NewMockConfigSource(ctrl),
		ruleSrc: mock_rules.NewMockSource(ctrl),
		journal: mock_analysis.NewMockJournalSource(ctrl),
		ledger:  mock_analysis.NewMockLedgerSource(ctrl),
	}
	engine := config.Engine{
		DataLagThresholdSeconds: testEngineLagTh,
		JoinWorkers:             2,
		FetchTimeoutSeconds:     5,
	}
	f.svc = analysis.NewService(
		catalog.New(f.cfgSrc, lg),
		rules.NewStore(f.ruleSrc, lg),
		f.journal,
		f.ledger,
		rephrase,
		engine,
		lg,
	)
	return f
}

// expectWorkspace wires the standard three-type workspace: an internal report,
// a bank feed, and a summary type with no unique-key metadata.
func (f *fixture) expectWorkspace() {
	f.cfgSrc.EXPECT().FetchWorkspace(gomock.Any(), testWorkspace).
		Return(&models.Workspace{ID: testWorkspace, Name: "Demo"}, nil).
		AnyTimes()
	f.cfgSrc.EXPECT().FetchFileTypes(gomock.Any(), testWorkspace).
		Return([]models.FileType{
			{
				ID:             internalTypeID,
				WorkspaceID:    testWorkspace,
				Name:           internalRTName,
				SourceCategory: "internal",
				FileMetadata:   datatypes.JSON(`[{"name":"unique_column","value":"` + internalKeyCol + `"}]`),
				Schema:         datatypes.JSON(`[{"name":"pay_id"},{"name":"amount"},{"name":"rrn"}]`),
			},
			{
				ID:             bankTypeID,
				WorkspaceID:    testWorkspace,
				Name:           bankRTName,
				SourceCategory: "bank_mis",
				FileMetadata:   datatypes.JSON(`[{"name":"unique_column","value":"` + bankKeyCol + `"}]`),
				Schema:         datatypes.JSON(`[{"name":"extracted_payment_id"},{"name":"abs_amount"},{"name":"rrn"}]`),
			},
			{
				ID:          summaryTypeID,
				WorkspaceID: testWorkspace,
				Name:        summaryRTName,
			},
		}, nil).
		AnyTimes()
}

// expectJournal wires the two keyed fetches of one join.
func (f *fixture) expectJournal(key string, internalRows, bankRows []models.JournalRecord) {
	f.journal.EXPECT().
		FetchByUniqueKey(gomock.Any(), internalTypeID, internalKeyCol, key, gomock.Nil()).
		Return(internalRows, nil)
	f.journal.EXPECT().
		FetchByUniqueKey(gomock.Any(), bankTypeID, bankKeyCol, key, gomock.Nil()).
		Return(bankRows, nil)
}

func (f *fixture) expectRules(subRules map[int64]models.Rule, mappings []models.RuleStateMapping) {
	f.ruleSrc.EXPECT().FetchRules(gomock.Any(), testWorkspace).Return(subRules, nil)
	f.ruleSrc.EXPECT().FetchStateMappings(gomock.Any(), testWorkspace).Return(mappings, nil)
}

func journalRow(fileTypeID, entityID, status string, data map[string]any) models.JournalRecord {
	return models.JournalRecord{
		FileTypeID:  fileTypeID,
		EntityID:    entityID,
		TxnDate:     time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
		RecordData:  datatypes.JSONMap(data),
		ReconStatus: status,
	}
}

func stateMapping(id int64, expr string, seq int, state, remarks string) models.RuleStateMapping {
	return models.RuleStateMapping{
		ID:             id,
		RuleExpression: expr,
		FileType1ID:    internalTypeID,
		FileType2ID:    bankTypeID,
		SeqNumber:      &seq,
		ReconState:     models.ReconState{State: state, ArtRemarks: remarks},
	}
}

func defaultSubRules() map[int64]models.Rule {
	return map[int64]models.Rule{
		1: {ID: 1, Predicate: "amount == counterpart_amount"},
		2: {ID: 2, Predicate: "rrn == counterpart_rrn"},
	}
}

func TestAnalyze_KeyValueRequired(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl, nil)

	report, err := f.svc.Analyze(context.Background(), analysis.Request{WorkspaceID: testWorkspace})

	require.NoError(t, err)
	assert.False(t, report.Success)
	assert.Equal(t, analysis.ErrCodeKeyValueRequired, report.ErrorCode)
}

func TestAnalyze_WorkspaceNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl, nil)
	f.cfgSrc.EXPECT().FetchWorkspace(gomock.Any(), "wrk_missing").Return(nil, nil)

	report, err := f.svc.Analyze(context.Background(), analysis.Request{
		WorkspaceID: "wrk_missing",
		KeyValue:    "pay_1",
	})

	require.NoError(t, err)
	assert.False(t, report.Success)
	assert.Equal(t, analysis.ErrCodeWorkspaceNotFound, report.ErrorCode)
}

func TestAnalyze_RecordTypeNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl, nil)
	f.expectWorkspace()

	report, err := f.svc.Analyze(context.Background(), analysis.Request{
		WorkspaceID:    testWorkspace,
		RecordTypeName: "No Such Report",
		KeyValue:       "pay_1",
	})

	require.NoError(t, err)
	assert.False(t, report.Success)
	assert.Equal(t, analysis.ErrCodeRecordTypeNotFound, report.ErrorCode)
}

func TestAnalyze_UniqueKeyUnresolved(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl, nil)
	f.expectWorkspace()

	report, err := f.svc.Analyze(context.Background(), analysis.Request{
		WorkspaceID:    testWorkspace,
		RecordTypeName: summaryRTName,
		KeyValue:       "pay_1",
	})

	require.NoError(t, err)
	assert.False(t, report.Success)
	assert.Equal(t, analysis.ErrCodeUniqueKeyUnresolved, report.ErrorCode)
}

func TestAnalyze_HealthyKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl, nil)
	f.expectWorkspace()
	f.expectJournal("pay_ok",
		[]models.JournalRecord{
			journalRow(internalTypeID, "pay_ok", models.StatusUnreconciled, map[string]any{"amount": "100"}),
		},
		nil,
	)

	report, err := f.svc.Analyze(context.Background(), analysis.Request{
		WorkspaceID: testWorkspace,
		KeyValue:    "pay_ok",
	})

	require.NoError(t, err)
	assert.True(t, report.Success)
	assert.Empty(t, report.Findings)
	assert.Empty(t, report.ScenariosDetected)
	assert.Equal(t, map[string]int{internalTypeID: 1}, report.RecordCounts)
}

func TestAnalyze_ScenarioA_TransactionMissing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl, nil)
	f.expectWorkspace()
	f.expectJournal("pay_a",
		[]models.JournalRecord{
			journalRow(internalTypeID, "pay_a", models.StatusReconciled, map[string]any{"amount": "100"}),
		},
		nil,
	)
	f.ledger.EXPECT().FindTransaction(gomock.Any(), "pay_a").Return(nil, nil)

	report, err := f.svc.Analyze(context.Background(), analysis.Request{
		WorkspaceID: testWorkspace,
		KeyValue:    "pay_a",
	})

	require.NoError(t, err)
	require.True(t, report.Success)
	require.Len(t, report.Findings, 1)
	finding := report.Findings[0]
	assert.Equal(t, analysis.ScenarioA, finding.Scenario)
	assert.Equal(t, analysis.IssueTransactionMissing, finding.Issue)
	assert.Equal(t, "pay_a", finding.EntityID)
	assert.Equal(t, []string{analysis.ScenarioA}, report.ScenariosDetected)
}

func TestAnalyze_ScenarioA_ReconAtNotUpdated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl, nil)
	f.expectWorkspace()
	f.expectJournal("pay_a",
		[]models.JournalRecord{
			journalRow(internalTypeID, "pay_a", models.StatusReconciled, map[string]any{"amount": "100"}),
		},
		nil,
	)
	f.ledger.EXPECT().FindTransaction(gomock.Any(), "pay_a").
		Return(&models.Transaction{ID: "txn_1", EntityID: "pay_a"}, nil)

	report, err := f.svc.Analyze(context.Background(), analysis.Request{
		WorkspaceID: testWorkspace,
		KeyValue:    "pay_a",
	})

	require.NoError(t, err)
	require.Len(t, report.Findings, 1)
	assert.Equal(t, analysis.IssueReconAtNotUpdated, report.Findings[0].Issue)
}

func TestAnalyze_ScenarioA_ConfirmedTransactionIsHealthy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl, nil)
	f.expectWorkspace()
	f.expectJournal("pay_a",
		[]models.JournalRecord{
			journalRow(internalTypeID, "pay_a", models.StatusReconciled, map[string]any{"amount": "100"}),
		},
		nil,
	)
	reconAt := time.Now().UTC()
	f.ledger.EXPECT().FindTransaction(gomock.Any(), "pay_a").
		Return(&models.Transaction{ID: "txn_1", EntityID: "pay_a", ReconciledAt: &reconAt}, nil)

	report, err := f.svc.Analyze(context.Background(), analysis.Request{
		WorkspaceID: testWorkspace,
		KeyValue:    "pay_a",
	})

	require.NoError(t, err)
	assert.True(t, report.Success)
	assert.Empty(t, report.Findings)
	assert.Empty(t, report.ScenariosDetected)
}

func TestAnalyze_ScenarioB_PaymentNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl, nil)
	f.expectWorkspace()
	f.expectJournal("pay_b",
		nil,
		[]models.JournalRecord{
			journalRow(bankTypeID, "pay_b", models.StatusUnreconciled, map[string]any{"abs_amount": "100"}),
		},
	)
	f.ledger.EXPECT().FindPayment(gomock.Any(), "pay_b").Return(nil, nil)

	report, err := f.svc.Analyze(context.Background(), analysis.Request{
		WorkspaceID: testWorkspace,
		KeyValue:    "pay_b",
	})

	require.NoError(t, err)
	require.Len(t, report.Findings, 1)
	finding := report.Findings[0]
	assert.Equal(t, analysis.ScenarioB, finding.Scenario)
	assert.Equal(t, analysis.IssuePaymentNotFound, finding.Issue)
	assert.Equal(t, bankTypeID, finding.RecordTypeID)
	require.NotNil(t, finding.PaymentExists)
	assert.False(t, *finding.PaymentExists)
}

func TestAnalyze_ScenarioB_DataLagDetected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl, nil)
	f.expectWorkspace()
	f.expectJournal("pay_b",
		nil,
		[]models.JournalRecord{
			journalRow(bankTypeID, "pay_b", models.StatusUnreconciled, map[string]any{"abs_amount": "100"}),
		},
	)
	now := time.Now().UTC()
	f.ledger.EXPECT().FindPayment(gomock.Any(), "pay_b").
		Return(&models.Payment{
			ID:                "pay_b",
			UpdatedAt:         now,
			DatalakeUpdatedAt: now.Add(-2 * time.Hour),
		}, nil)

	report, err := f.svc.Analyze(context.Background(), analysis.Request{
		WorkspaceID: testWorkspace,
		KeyValue:    "pay_b",
	})

	require.NoError(t, err)
	require.Len(t, report.Findings, 1)
	finding := report.Findings[0]
	assert.Equal(t, analysis.IssueDataLagDetected, finding.Issue)
	assert.Equal(t, int64(7200), finding.LagSeconds)
	require.NotNil(t, finding.PaymentExists)
	assert.True(t, *finding.PaymentExists)
}

func TestAnalyze_ScenarioB_InternalDataMissing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl, nil)
	f.expectWorkspace()
	f.expectJournal("pay_b",
		nil,
		[]models.JournalRecord{
			journalRow(bankTypeID, "pay_b", models.StatusUnreconciled, map[string]any{"abs_amount": "100"}),
		},
	)
	now := time.Now().UTC()
	f.ledger.EXPECT().FindPayment(gomock.Any(), "pay_b").
		Return(&models.Payment{
			ID:                "pay_b",
			UpdatedAt:         now,
			DatalakeUpdatedAt: now.Add(-time.Minute),
		}, nil)

	report, err := f.svc.Analyze(context.Background(), analysis.Request{
		WorkspaceID: testWorkspace,
		KeyValue:    "pay_b",
	})

	require.NoError(t, err)
	require.Len(t, report.Findings, 1)
	assert.Equal(t, analysis.IssueInternalDataMissing, report.Findings[0].Issue)
	assert.Zero(t, report.Findings[0].LagSeconds)
}

func TestAnalyze_ScenarioB_NeverReplicatedPayment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl, nil)
	f.expectWorkspace()
	f.expectJournal("pay_b",
		nil,
		[]models.JournalRecord{
			journalRow(bankTypeID, "pay_b", models.StatusUnreconciled, map[string]any{"abs_amount": "100"}),
		},
	)
	// The replica timestamp was never written; with no lag to measure the
	// payment's presence alone explains the gap.
	f.ledger.EXPECT().FindPayment(gomock.Any(), "pay_b").
		Return(&models.Payment{ID: "pay_b", UpdatedAt: time.Now().UTC()}, nil)

	report, err := f.svc.Analyze(context.Background(), analysis.Request{
		WorkspaceID: testWorkspace,
		KeyValue:    "pay_b",
	})

	require.NoError(t, err)
	require.Len(t, report.Findings, 1)
	assert.Equal(t, analysis.IssueInternalDataMissing, report.Findings[0].Issue)
	assert.Zero(t, report.Findings[0].LagSeconds)
}

func TestAnalyze_ScenarioC_AmountMismatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl, nil)
	f.expectWorkspace()
	f.expectJournal("pay_c",
		[]models.JournalRecord{
			journalRow(internalTypeID, "pay_c", models.StatusUnreconciled, map[string]any{"amount": "1000", "rrn": "R1"}),
		},
		[]models.JournalRecord{
			journalRow(bankTypeID, "pay_c", models.StatusUnreconciled, map[string]any{"abs_amount": "1100", "rrn": "R1"}),
		},
	)
	f.expectRules(defaultSubRules(), []models.RuleStateMapping{
		stateMapping(10, "1 and 2", 1, "Unreconciled", "Amount mismatch with bank"),
	})

	report, err := f.svc.Analyze(context.Background(), analysis.Request{
		WorkspaceID: testWorkspace,
		KeyValue:    "pay_c",
	})

	require.NoError(t, err)
	require.True(t, report.Success)
	require.Len(t, report.Findings, 1)
	finding := report.Findings[0]
	assert.Equal(t, analysis.ScenarioC, finding.Scenario)
	assert.Equal(t, analysis.IssueRuleMatchingFailure, finding.Issue)
	assert.Equal(t, int64(10), finding.FailedRuleID)
	assert.Equal(t, "(amount == counterpart_amount) and (rrn == counterpart_rrn)", finding.FailedRuleExpression)
	assert.Equal(t, "Unreconciled", finding.ExpectedState)

	require.Len(t, finding.Mismatches, 1)
	pair, ok := finding.Mismatches["amount_mismatch"]
	require.True(t, ok)
	assert.Equal(t, "1000", pair.Internal)
	assert.Equal(t, "1100", pair.Counterpart)

	assert.Equal(t, []string{analysis.ScenarioC}, report.ScenariosDetected)
	assert.Equal(t, map[string]int{internalTypeID: 1, bankTypeID: 1}, report.RecordCounts)
}

func TestAnalyze_ScenarioC_FirstFailingRuleWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl, nil)
	f.expectWorkspace()
	f.expectJournal("pay_c",
		[]models.JournalRecord{
			journalRow(internalTypeID, "pay_c", models.StatusUnreconciled, map[string]any{"amount": "1000", "rrn": "R1"}),
		},
		[]models.JournalRecord{
			journalRow(bankTypeID, "pay_c", models.StatusUnreconciled, map[string]any{"abs_amount": "1100", "rrn": "R1"}),
		},
	)
	f.expectRules(defaultSubRules(), []models.RuleStateMapping{
		stateMapping(11, "2", 2, "Unreconciled", "RRN mismatch"),
		stateMapping(10, "1", 1, "Unreconciled", "Amount mismatch"),
	})

	report, err := f.svc.Analyze(context.Background(), analysis.Request{
		WorkspaceID: testWorkspace,
		KeyValue:    "pay_c",
	})

	require.NoError(t, err)
	require.Len(t, report.Findings, 1)
	assert.Equal(t, int64(10), report.Findings[0].FailedRuleID)
}

func TestAnalyze_ScenarioC_IndeterminateRuleSkipped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl, nil)
	f.expectWorkspace()
	f.expectJournal("pay_c",
		[]models.JournalRecord{
			journalRow(internalTypeID, "pay_c", models.StatusUnreconciled, map[string]any{"amount": "1000", "rrn": "R1"}),
		},
		[]models.JournalRecord{
			journalRow(bankTypeID, "pay_c", models.StatusUnreconciled, map[string]any{"abs_amount": "1100", "rrn": "R1"}),
		},
	)
	// Mapping 10 references sub-rule 99 which does not exist; it must be
	// skipped rather than reported as the failure.
	f.expectRules(defaultSubRules(), []models.RuleStateMapping{
		stateMapping(10, "99", 1, "Unreconciled", "orphan"),
		stateMapping(11, "1", 2, "Unreconciled", "Amount mismatch"),
	})

	report, err := f.svc.Analyze(context.Background(), analysis.Request{
		WorkspaceID: testWorkspace,
		KeyValue:    "pay_c",
	})

	require.NoError(t, err)
	require.Len(t, report.Findings, 1)
	assert.Equal(t, int64(11), report.Findings[0].FailedRuleID)
}

func TestAnalyze_ScenarioC_AllRulesPass(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl, nil)
	f.expectWorkspace()
	f.expectJournal("pay_c",
		[]models.JournalRecord{
			journalRow(internalTypeID, "pay_c", models.StatusUnreconciled, map[string]any{"amount": "1000", "rrn": "R1"}),
		},
		[]models.JournalRecord{
			journalRow(bankTypeID, "pay_c", models.StatusUnreconciled, map[string]any{"abs_amount": "1000.00", "rrn": "R1"}),
		},
	)
	f.expectRules(defaultSubRules(), []models.RuleStateMapping{
		stateMapping(10, "1 and 2", 1, "Unreconciled", "mismatch"),
	})

	report, err := f.svc.Analyze(context.Background(), analysis.Request{
		WorkspaceID: testWorkspace,
		KeyValue:    "pay_c",
	})

	require.NoError(t, err)
	assert.True(t, report.Success)
	assert.Empty(t, report.Findings)
	assert.Empty(t, report.ScenariosDetected)
}

func TestAnalyze_ScenarioC_RephrasesSuggestion(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	rephraser := mock_analysis.NewMockRemarkRephraser(ctrl)
	f := newFixture(t, ctrl, rephraser)
	f.expectWorkspace()
	f.expectJournal("pay_c",
		[]models.JournalRecord{
			journalRow(internalTypeID, "pay_c", models.StatusUnreconciled, map[string]any{"amount": "1000", "rrn": "R1"}),
		},
		[]models.JournalRecord{
			journalRow(bankTypeID, "pay_c", models.StatusUnreconciled, map[string]any{"abs_amount": "1100", "rrn": "R1"}),
		},
	)
	f.expectRules(defaultSubRules(), []models.RuleStateMapping{
		stateMapping(10, "1", 1, "Unreconciled", "mismatch"),
	})
	rephraser.EXPECT().
		Rephrase(gomock.Any(), gomock.Any(), gomock.Any()).
		Return("The bank reported 1100 but the ledger has 1000.", nil)

	report, err := f.svc.Analyze(context.Background(), analysis.Request{
		WorkspaceID: testWorkspace,
		KeyValue:    "pay_c",
	})

	require.NoError(t, err)
	require.Len(t, report.Findings, 1)
	assert.Equal(t, "The bank reported 1100 but the ledger has 1000.", report.Findings[0].Suggestion)
}
