package repository

import (
	"context"

	"gorm.io/gorm"

	"recon-analysis-backend/internal/models"
)

// RuleRepository reads rule configuration. Implements the rule store's
// Source.
type RuleRepository struct {
	db *gorm.DB
}

func NewRuleRepository(db *gorm.DB) *RuleRepository {
	return &RuleRepository{db: db}
}

// FetchRules returns the workspace's sub-rules keyed by id, ready for
// expression resolution.
func (r *RuleRepository) FetchRules(ctx context.Context, workspaceID string) (map[int64]models.Rule, error) {
	var list []models.Rule
	err := r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("id").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]models.Rule, len(list))
	for _, rule := range list {
		byID[rule.ID] = rule
	}
	return byID, nil
}

// FetchStateMappings returns the workspace's rule-to-state mappings in
// sequence order, with the expected recon state attached.
func (r *RuleRepository) FetchStateMappings(ctx context.Context, workspaceID string) ([]models.RuleStateMapping, error) {
	var mappings []models.RuleStateMapping
	err := r.db.WithContext(ctx).
		Preload("ReconState").
		Where("workspace_id = ?", workspaceID).
		Order("seq_number").
		Find(&mappings).Error
	return mappings, err
}
