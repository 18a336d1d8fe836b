package handlers

import (
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/yukikurage/taskboard-client/internal/middleware"
	"github.com/yukikurage/taskboard-client/internal/services"
)

// Services bundles what the API routes depend on.
type Services struct {
	Auth   *services.AuthService
	Boards *services.BoardService
	Tasks  *services.TaskService
}

// RegisterRoutes mounts the board API under api.
func RegisterRoutes(api *gin.RouterGroup, svc Services, logger log.FieldLogger) {
	authHandler := NewAuthHandler(svc.Auth, logger)
	boardHandler := NewBoardHandler(svc.Boards)
	taskHandler := NewTaskHandler(svc.Tasks)
	requireAuth := middleware.RequireAuth(svc.Auth)

	// Account routes, legacy flavour
	users := api.Group("/users")
	{
		users.POST("/register", authHandler.Register)
		users.POST("/login", authHandler.LoginLegacy)
		users.GET("/me", requireAuth, authHandler.GetCurrentUser)
		users.POST("/upload/avatar", requireAuth, authHandler.UploadAvatar)
	}

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
		auth.POST("/refresh", authHandler.Refresh)
	}

	boards := api.Group("/boards")
	boards.Use(requireAuth)
	{
		boardAccess := middleware.RequireBoardAccess(svc.Boards)
		boardOwner := middleware.RequireBoardOwner()

		boards.GET("/user", boardHandler.ListBoards)
		boards.POST("", boardHandler.CreateBoard)
		boards.GET("/:id", boardAccess, boardHandler.GetBoard)
		boards.PUT("/:id", boardAccess, boardOwner, boardHandler.UpdateBoard)
		boards.DELETE("/:id", boardAccess, boardOwner, boardHandler.DeleteBoard)
	}

	columns := api.Group("/columns")
	columns.Use(requireAuth)
	{
		columnAccess := middleware.RequireColumnAccess(svc.Boards)

		columns.POST("", boardHandler.CreateColumn)
		columns.PUT("/:id", columnAccess, boardHandler.UpdateColumn)
		columns.DELETE("/:id", columnAccess, boardHandler.DeleteColumn)
		columns.GET("/:id/tasks", columnAccess, taskHandler.ListColumnTasks)
	}

	tasks := api.Group("/tasks")
	tasks.Use(requireAuth)
	{
		taskAccess := middleware.RequireTaskAccess(svc.Tasks)

		tasks.POST("", taskHandler.CreateTask)
		tasks.GET("/:id", taskAccess, taskHandler.GetTask)
		tasks.PUT("/:id", taskAccess, taskHandler.UpdateTask)
		tasks.DELETE("/:id", taskAccess, taskHandler.DeleteTask)
	}
}
