// Package mockserver assembles the development board API: a gin engine over
// a GORM database that speaks the same wire shapes as the production
// service, inconsistencies included.
package mockserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/yukikurage/taskboard-client/internal/database"
	"github.com/yukikurage/taskboard-client/internal/handlers"
	"github.com/yukikurage/taskboard-client/internal/middleware"
	"github.com/yukikurage/taskboard-client/internal/repository"
	"github.com/yukikurage/taskboard-client/internal/services"
)

// BasePath is where the API routes are mounted.
const BasePath = "/api/v1"

// New migrates db and returns an engine serving the board API.
func New(db *gorm.DB, secret string, logger log.FieldLogger) (*gin.Engine, error) {
	if err := database.Migrate(db); err != nil {
		return nil, err
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	columnRepo := repository.NewColumnRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Initialize services
	boardService := services.NewBoardService(boardRepo, columnRepo)
	svc := handlers.Services{
		Auth:   services.NewAuthService(userRepo, tokenRepo, secret),
		Boards: boardService,
		Tasks:  services.NewTaskService(taskRepo, boardService),
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Board API is running",
		})
	})

	handlers.RegisterRoutes(r.Group(BasePath), svc, logger)
	return r, nil
}
