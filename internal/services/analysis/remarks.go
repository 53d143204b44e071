package analysis

import (
	"fmt"
	"strings"

	"recon-analysis-backend/internal/services/matching"
	"recon-analysis-backend/internal/services/rules"
)

// suggestRuleRemark builds the deterministic suggestion text for a rule
// failure from the mismatch map.
func suggestRuleRemark(rule rules.ResolvedRule, mismatches matching.Mismatches) string {
	var remarks []string
	if pair, ok := mismatches["amount_mismatch"]; ok {
		remarks = append(remarks, fmt.Sprintf(
			"Amount mismatch: internal=%v, counterpart=%v", pair.Internal, pair.Counterpart))
	}
	if pair, ok := mismatches["rrn_mismatch"]; ok {
		remarks = append(remarks, fmt.Sprintf(
			"RRN/Payment ID mismatch: internal=%v, counterpart=%v", pair.Internal, pair.Counterpart))
	}
	if len(remarks) == 0 {
		remarks = append(remarks, fmt.Sprintf("Rule %d failed: %s", rule.MappingID, rule.Expression))
	}
	return strings.Join(remarks, "; ")
}

func suggestPaymentNotFound(key string) string {
	return fmt.Sprintf("Payment %s not found in the canonical ledger. The payment may not exist in the system.", key)
}

func suggestDataLag(key string, lagSeconds int64) string {
	return fmt.Sprintf(
		"Payment %s exists but replication lag detected: %.2f hours between ledger and datalake. Re-ingest the internal file once the replica catches up.",
		key, float64(lagSeconds)/3600)
}

func suggestInternalMissing(key string) string {
	return fmt.Sprintf("Payment %s exists in the canonical ledger but the internal file was never ingested. Re-ingest the internal file.", key)
}

const (
	suggestReconAtUpdate     = "Update the transactions table with the reconciled_at timestamp."
	suggestCreateTransaction = "Transaction record missing downstream. Create the transaction record with its reconciled_at timestamp."
)
