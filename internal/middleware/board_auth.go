package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskboard-client/internal/constants"
	"github.com/yukikurage/taskboard-client/internal/database"
	apierrors "github.com/yukikurage/taskboard-client/internal/errors"
	"github.com/yukikurage/taskboard-client/internal/services"
)

// RequireBoardAccess checks if the user is a member of the board named by
// the :id parameter
func RequireBoardAccess(boards *services.BoardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		member, err := boards.RequireMember(c.Param("id"), userID)
		if err != nil {
			// Return 404 instead of 403 to avoid leaking board existence
			if errors.Is(err, services.ErrNotBoardMember) {
				apierrors.NotFound(c, "Board not found")
			} else {
				apierrors.InternalError(c, "")
			}
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyBoardMember, *member)
		c.Next()
	}
}

// RequireBoardOwner checks if the user owns the board. It must run after
// RequireBoardAccess.
func RequireBoardOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		v, exists := c.Get(constants.ContextKeyBoardMember)
		if !exists {
			apierrors.Forbidden(c, "Board access required")
			c.Abort()
			return
		}

		member, ok := v.(database.BoardMember)
		if !ok {
			apierrors.InternalError(c, "Invalid board member data")
			c.Abort()
			return
		}

		if member.Role != database.RoleOwner {
			apierrors.Forbidden(c, services.ErrNotBoardOwner.Error())
			c.Abort()
			return
		}

		c.Next()
	}
}
