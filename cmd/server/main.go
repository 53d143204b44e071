package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"recon-analysis-backend/internal/config"
	"recon-analysis-backend/internal/logger"
	"recon-analysis-backend/internal/models"
	"recon-analysis-backend/internal/routes"
	"recon-analysis-backend/internal/seed"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on system env")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	lg := logger.New(logger.ParseLevel(cfg.LogLevel))

	db, err := config.InitDB(cfg.DB)
	if err != nil {
		lg.Error("database init failed", "err", err)
		return
	}

	if err := db.AutoMigrate(
		&models.Workspace{},
		&models.FileType{},
		&models.Rule{},
		&models.ReconState{},
		&models.RuleStateMapping{},
		&models.JournalRecord{},
		&models.Transaction{},
		&models.Payment{},
	); err != nil {
		lg.Error("migration failed", "err", err)
		return
	}

	if cfg.SeedDemo {
		if err := seed.DemoData(db); err != nil {
			lg.Error("demo seed failed", "err", err)
			return
		}
		lg.Info("demo workspace seeded")
	}

	r := gin.Default()
	// CORS config
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, db, cfg, lg)

	lg.Info("listening", "addr", cfg.HTTPAddr, "db_driver", cfg.DB.Driver)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		lg.Error("server stopped", "err", err)
	}
}
