package main

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm/logger"

	"github.com/yukikurage/taskboard-client/internal/app"
	"github.com/yukikurage/taskboard-client/internal/config"
	"github.com/yukikurage/taskboard-client/internal/database"
	"github.com/yukikurage/taskboard-client/internal/mockserver"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log := app.NewLogger(cfg)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg.MockDBDriver, cfg.MockDBDSN, logger.Warn)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	r, err := mockserver.New(db, cfg.MockAPISecret, log)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Start server
	log.WithField("addr", cfg.MockAPIAddr).Info("Board API starting")
	if err := r.Run(cfg.MockAPIAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
