package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"recon-analysis-backend/internal/models"
)

// WorkspaceRepository reads workspace configuration. Implements the schema
// catalog's ConfigSource.
type WorkspaceRepository struct {
	db *gorm.DB
}

func NewWorkspaceRepository(db *gorm.DB) *WorkspaceRepository {
	return &WorkspaceRepository{db: db}
}

func (r *WorkspaceRepository) FetchWorkspace(ctx context.Context, workspaceID string) (*models.Workspace, error) {
	var ws models.Workspace
	err := r.db.WithContext(ctx).First(&ws, "id = ?", workspaceID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ws, nil
}

func (r *WorkspaceRepository) FetchFileTypes(ctx context.Context, workspaceID string) ([]models.FileType, error) {
	var fileTypes []models.FileType
	err := r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("id").
		Find(&fileTypes).Error
	return fileTypes, err
}

// List returns all workspaces, used by the listing endpoint.
func (r *WorkspaceRepository) List(ctx context.Context) ([]models.Workspace, error) {
	var workspaces []models.Workspace
	err := r.db.WithContext(ctx).Order("name").Find(&workspaces).Error
	return workspaces, err
}
