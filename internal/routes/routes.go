package routes

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"recon-analysis-backend/internal/config"
	handler "recon-analysis-backend/internal/handlers"
	"recon-analysis-backend/internal/repository"
	"recon-analysis-backend/internal/services/analysis"
	"recon-analysis-backend/internal/services/catalog"
	"recon-analysis-backend/internal/services/rules"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, log *slog.Logger) {
	workspaceRepo := repository.NewWorkspaceRepository(db)
	ruleRepo := repository.NewRuleRepository(db)
	journalRepo := repository.NewJournalRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)

	cat := catalog.New(workspaceRepo, log)
	ruleStore := rules.NewStore(ruleRepo, log)

	analysisService := analysis.NewService(
		cat,
		ruleStore,
		journalRepo,
		ledgerRepo,
		nil, // remark rephrasing is an external collaborator
		cfg.Engine,
		log,
	)

	analysisHandler := handler.NewAnalysisHandler(analysisService)
	workspaceHandler := handler.NewWorkspaceHandler(workspaceRepo, cat)

	api := r.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Workspace catalog routes
	workspaces := api.Group("/workspaces")
	workspaces.GET("", workspaceHandler.List)
	workspaces.GET("/:workspaceId/record-types", workspaceHandler.RecordTypes)

	// Analysis routes
	an := api.Group("/analysis")
	an.POST("/run", analysisHandler.Run)
	an.POST("/cache/invalidate", analysisHandler.InvalidateCache)
}
