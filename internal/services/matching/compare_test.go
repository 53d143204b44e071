package matching_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recon-analysis-backend/internal/services/matching"
)

func TestCompare_IdenticalRecordsPass(t *testing.T) {
	internal := map[string]any{"amount": "1000.50", "rrn": "R123"}
	counterpart := map[string]any{"amount": "1000.50", "rrn": "R123"}

	got := matching.Compare(internal, counterpart, matching.DefaultFields)

	assert.Empty(t, got)
}

func TestCompare_AmountMismatchOnly(t *testing.T) {
	internal := map[string]any{"amount": "1000", "rrn": "R123"}
	counterpart := map[string]any{"amount": "1100", "rrn": "R123"}

	got := matching.Compare(internal, counterpart, matching.DefaultFields)

	require.Len(t, got, 1)
	pair, ok := got["amount_mismatch"]
	require.True(t, ok)
	assert.Equal(t, "1000", pair.Internal)
	assert.Equal(t, "1100", pair.Counterpart)
}

func TestCompare_RRNMismatch(t *testing.T) {
	internal := map[string]any{"amount": "500", "rrn": "R1"}
	counterpart := map[string]any{"amount": "500", "rrn": "R2"}

	got := matching.Compare(internal, counterpart, matching.DefaultFields)

	require.Len(t, got, 1)
	assert.Contains(t, got, "rrn_mismatch")
}

func TestCompare_NumericEqualityAcrossRepresentations(t *testing.T) {
	// JSON decoding yields float64 on one side while the other carries the
	// raw string; exact decimal comparison must treat them as equal.
	internal := map[string]any{"amount": "1000.00"}
	counterpart := map[string]any{"amount": float64(1000)}

	got := matching.Compare(internal, counterpart, matching.DefaultFields)

	assert.Empty(t, got)
}

func TestCompare_AliasFallback(t *testing.T) {
	internal := map[string]any{"amount": "750"}
	counterpart := map[string]any{"abs_amount": "750.25"}

	got := matching.Compare(internal, counterpart, matching.DefaultFields)

	require.Len(t, got, 1)
	pair := got["amount_mismatch"]
	assert.Equal(t, "750", pair.Internal)
	assert.Equal(t, "750.25", pair.Counterpart)
}

func TestCompare_MissingSideSkipsField(t *testing.T) {
	cases := []struct {
		name        string
		internal    map[string]any
		counterpart map[string]any
	}{
		{"absent key", map[string]any{"rrn": "R1"}, map[string]any{"amount": "100", "rrn": "R1"}},
		{"nil value", map[string]any{"amount": nil, "rrn": "R1"}, map[string]any{"amount": "100", "rrn": "R1"}},
		{"empty string", map[string]any{"amount": "", "rrn": "R1"}, map[string]any{"amount": "100", "rrn": "R1"}},
		{"unparseable numeric", map[string]any{"amount": "n/a", "rrn": "R1"}, map[string]any{"amount": "100", "rrn": "R1"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := matching.Compare(tc.internal, tc.counterpart, matching.DefaultFields)
			assert.Empty(t, got)
		})
	}
}

func TestCompare_CustomFields(t *testing.T) {
	fields := []matching.Field{{Key: "utr_mismatch", Aliases: []string{"utr"}}}
	internal := map[string]any{"utr": "U1", "amount": "10"}
	counterpart := map[string]any{"utr": "U2", "amount": "99"}

	got := matching.Compare(internal, counterpart, fields)

	require.Len(t, got, 1)
	assert.Contains(t, got, "utr_mismatch")
}
