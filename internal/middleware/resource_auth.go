package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskboard-client/internal/constants"
	"github.com/yukikurage/taskboard-client/internal/database"
	apierrors "github.com/yukikurage/taskboard-client/internal/errors"
	"github.com/yukikurage/taskboard-client/internal/services"
)

// RequireColumnAccess loads the column named by :id if the user can see its
// board
func RequireColumnAccess(boards *services.BoardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		column, err := boards.FindColumn(userID, c.Param("id"))
		if err != nil {
			if errors.Is(err, services.ErrColumnNotFound) {
				apierrors.NotFound(c, "Column not found")
			} else {
				apierrors.InternalError(c, "")
			}
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyColumn, column)
		c.Next()
	}
}

// RequireTaskAccess loads the task named by :id if the user can see its board
func RequireTaskAccess(tasks *services.TaskService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		task, err := tasks.FindTask(userID, c.Param("id"))
		if err != nil {
			if errors.Is(err, services.ErrTaskNotFound) {
				apierrors.NotFound(c, "Task not found")
			} else {
				apierrors.InternalError(c, "")
			}
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyTask, task)
		c.Next()
	}
}

// GetColumn returns the column loaded by RequireColumnAccess
func GetColumn(c *gin.Context) (*database.Column, bool) {
	v, exists := c.Get(constants.ContextKeyColumn)
	if !exists {
		return nil, false
	}
	column, ok := v.(*database.Column)
	return column, ok
}

// GetTask returns the task loaded by RequireTaskAccess
func GetTask(c *gin.Context) (*database.Task, bool) {
	v, exists := c.Get(constants.ContextKeyTask)
	if !exists {
		return nil, false
	}
	task, ok := v.(*database.Task)
	return task, ok
}
