package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"recon-analysis-backend/internal/repository"
	"recon-analysis-backend/internal/services/catalog"
)

type WorkspaceHandler struct {
	repo    *repository.WorkspaceRepository
	catalog *catalog.Catalog
}

func NewWorkspaceHandler(repo *repository.WorkspaceRepository, cat *catalog.Catalog) *WorkspaceHandler {
	return &WorkspaceHandler{repo: repo, catalog: cat}
}

// List returns all workspaces with a record-type summary for each.
func (h *WorkspaceHandler) List(c *gin.Context) {
	workspaces, err := h.repo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	items := make([]gin.H, 0, len(workspaces))
	for _, ws := range workspaces {
		item := gin.H{
			"id":          ws.ID,
			"name":        ws.Name,
			"merchant_id": ws.MerchantID,
		}
		if snap, err := h.catalog.Snapshot(c.Request.Context(), ws.ID); err == nil {
			item["record_type_count"] = len(snap.RecordTypes)
		}
		items = append(items, item)
	}

	c.JSON(http.StatusOK, gin.H{"workspaces": items})
}

// RecordTypes returns the catalog view of one workspace: each record type
// with its unique-key field and category.
func (h *WorkspaceHandler) RecordTypes(c *gin.Context) {
	workspaceID := c.Param("workspaceId")

	snap, err := h.catalog.Snapshot(c.Request.Context(), workspaceID)
	if err != nil {
		if errors.Is(err, catalog.ErrWorkspaceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "workspace not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	types := make([]gin.H, 0, len(snap.RecordTypes))
	for _, rt := range snap.RecordTypes {
		types = append(types, gin.H{
			"id":               rt.ID,
			"name":             rt.Name,
			"unique_key_field": rt.UniqueKeyField,
			"category":         rt.Category,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"workspace_id": workspaceID,
		"record_types": types,
	})
}
