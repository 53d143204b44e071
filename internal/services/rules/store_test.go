package rules_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recon-analysis-backend/internal/models"
	"recon-analysis-backend/internal/services/rules"
	mock_rules "recon-analysis-backend/internal/services/rules/mocks"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestStore_ResolvedCachesUntilInvalidated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := mock_rules.NewMockSource(ctrl)
	source.EXPECT().FetchRules(gomock.Any(), "wrk_1").
		Return(map[int64]models.Rule{1: {ID: 1, Predicate: "amount == counterpart_amount"}}, nil).
		Times(2)
	source.EXPECT().FetchStateMappings(gomock.Any(), "wrk_1").
		Return([]models.RuleStateMapping{mapping(10, "1", intPtr(1))}, nil).
		Times(2)

	store := rules.NewStore(source, discardLogger())
	ctx := context.Background()

	first, err := store.Resolved(ctx, "wrk_1")
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, "(amount == counterpart_amount)", first[0].Expression)

	second, err := store.Resolved(ctx, "wrk_1")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	store.Invalidate("wrk_1")

	_, err = store.Resolved(ctx, "wrk_1")
	require.NoError(t, err)
}

func TestStore_ResolvedPropagatesSourceErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := mock_rules.NewMockSource(ctrl)
	source.EXPECT().FetchRules(gomock.Any(), "wrk_1").
		Return(nil, errors.New("db down"))

	store := rules.NewStore(source, discardLogger())
	_, err := store.Resolved(context.Background(), "wrk_1")

	assert.Error(t, err)
}
