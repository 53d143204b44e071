package matching

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Field is one logical comparison field: the mismatch key it reports under
// and the ordered alias names that may carry it in a record.
type Field struct {
	Key     string
	Aliases []string
	Numeric bool
}

// DefaultFields are the comparison fields used when a workspace declares no
// schema to bind against.
var DefaultFields = []Field{
	{Key: "amount_mismatch", Aliases: []string{"amount", "abs_amount", "mpayment_amt"}, Numeric: true},
	{Key: "rrn_mismatch", Aliases: []string{"rrn", "payment_id"}},
}

// FieldPair holds both sides of a mismatched field.
type FieldPair struct {
	Internal    any `json:"internal"`
	Counterpart any `json:"counterpart"`
}

// Mismatches maps mismatch keys to the disagreeing values. An empty map is
// the "rule passed" signal; keeping the detail co-located with the result
// avoids a separate pass to explain a failure.
type Mismatches map[string]FieldPair

// Compare checks the given fields between an internal record and its
// counterpart. Numeric fields compare as exact decimals after parse - no
// tolerance. A field missing or unparseable on either side is skipped, not
// mismatched: better to under-detect than to flag noise.
func Compare(internal, counterpart map[string]any, fields []Field) Mismatches {
	mismatches := make(Mismatches)
	for _, f := range fields {
		iVal, iOK := firstPresent(internal, f.Aliases)
		cVal, cOK := firstPresent(counterpart, f.Aliases)
		if !iOK || !cOK {
			continue
		}
		if f.Numeric {
			iDec, iErr := toDecimal(iVal)
			cDec, cErr := toDecimal(cVal)
			if iErr != nil || cErr != nil {
				continue
			}
			if !iDec.Equal(cDec) {
				mismatches[f.Key] = FieldPair{Internal: iVal, Counterpart: cVal}
			}
			continue
		}
		if fmt.Sprint(iVal) != fmt.Sprint(cVal) {
			mismatches[f.Key] = FieldPair{Internal: iVal, Counterpart: cVal}
		}
	}
	return mismatches
}

func firstPresent(record map[string]any, aliases []string) (any, bool) {
	for _, a := range aliases {
		if v, ok := record[a]; ok && v != nil {
			if s, isStr := v.(string); isStr && s == "" {
				continue
			}
			return v, true
		}
	}
	return nil, false
}

func toDecimal(v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, nil
	case int:
		return decimal.NewFromInt(int64(n)), nil
	case int64:
		return decimal.NewFromInt(n), nil
	case float64:
		return decimal.NewFromFloat(n), nil
	case string:
		return decimal.NewFromString(n)
	default:
		return decimal.Decimal{}, fmt.Errorf("not a numeric value: %T", v)
	}
}
