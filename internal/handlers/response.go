package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/taskboard-client/internal/errors"
	"github.com/yukikurage/taskboard-client/internal/services"
)

// envelope is the success wrapper of every JSON response
type envelope struct {
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func respond(c *gin.Context, status int, data any, message string) {
	c.JSON(status, envelope{Data: data, Message: message})
}

func respondResourceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidBoardName),
		errors.Is(err, services.ErrInvalidColumnName),
		errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrInvalidDate),
		errors.Is(err, services.ErrDateRange):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNotBoardOwner):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrBoardNotFound),
		errors.Is(err, services.ErrNotBoardMember):
		apierrors.NotFound(c, "Board not found")
	case errors.Is(err, services.ErrColumnNotFound):
		apierrors.NotFound(c, "Column not found")
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}

func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
