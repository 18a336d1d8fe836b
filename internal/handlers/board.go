package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskboard-client/internal/dto"
	apierrors "github.com/yukikurage/taskboard-client/internal/errors"
	"github.com/yukikurage/taskboard-client/internal/middleware"
	"github.com/yukikurage/taskboard-client/internal/services"
)

// BoardHandler serves board and column routes.
type BoardHandler struct {
	boardService *services.BoardService
}

// NewBoardHandler creates a new BoardHandler.
func NewBoardHandler(boardService *services.BoardService) *BoardHandler {
	return &BoardHandler{boardService: boardService}
}

type boardRequest struct {
	Name       *string `json:"name" binding:"omitempty,max=100"`
	Color      *string `json:"color" binding:"omitempty,hexcolor"`
	Icon       *string `json:"icon"`
	Background *string `json:"background"`
}

func (r boardRequest) input() services.BoardInput {
	return services.BoardInput{
		Name:       r.Name,
		Color:      r.Color,
		Icon:       r.Icon,
		Background: r.Background,
	}
}

// ListBoards returns the boards of the current user
func (h *BoardHandler) ListBoards(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	boards, err := h.boardService.ListBoards(userID)
	if err != nil {
		respondResourceError(c, err)
		return
	}

	respond(c, http.StatusOK, dto.ToBoardDTOs(boards), "")
}

// CreateBoard creates a board owned by the current user
func (h *BoardHandler) CreateBoard(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req boardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	board, err := h.boardService.CreateBoard(userID, req.input())
	if err != nil {
		respondResourceError(c, err)
		return
	}

	respond(c, http.StatusCreated, dto.ToBoardDTO(*board), "Board created")
}

// GetBoard returns a board with its members, columns and tasks
// Membership is checked by RequireBoardAccess
func (h *BoardHandler) GetBoard(c *gin.Context) {
	board, err := h.boardService.GetBoard(c.Param("id"))
	if err != nil {
		respondResourceError(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"board": dto.ToBoardDetailDTO(*board)}, "")
}

// UpdateBoard updates a board owned by the current user
func (h *BoardHandler) UpdateBoard(c *gin.Context) {
	var req boardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	board, err := h.boardService.FindBoard(c.Param("id"))
	if err != nil {
		respondResourceError(c, err)
		return
	}

	board, err = h.boardService.UpdateBoard(board, req.input())
	if err != nil {
		respondResourceError(c, err)
		return
	}

	respond(c, http.StatusOK, dto.ToBoardDTO(*board), "Board updated")
}

// DeleteBoard deletes a board owned by the current user
func (h *BoardHandler) DeleteBoard(c *gin.Context) {
	if err := h.boardService.DeleteBoard(c.Param("id")); err != nil {
		respondResourceError(c, err)
		return
	}

	respond(c, http.StatusOK, nil, "Board deleted")
}

type columnRequest struct {
	BoardID  string  `json:"board_id"`
	Name     *string `json:"name" binding:"omitempty,max=100"`
	Color    *string `json:"color" binding:"omitempty,hexcolor"`
	Position *int    `json:"position" binding:"omitempty,min=0"`
}

func (r columnRequest) input() services.ColumnInput {
	return services.ColumnInput{
		Name:     r.Name,
		Color:    r.Color,
		Position: r.Position,
	}
}

// CreateColumn adds a column to a board the user belongs to
func (h *BoardHandler) CreateColumn(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req columnRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.BoardID == "" {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	column, err := h.boardService.CreateColumn(userID, req.BoardID, req.input())
	if err != nil {
		respondResourceError(c, err)
		return
	}

	respond(c, http.StatusCreated, dto.ToColumnDTO(*column), "Column created")
}

// UpdateColumn updates the column loaded by RequireColumnAccess
func (h *BoardHandler) UpdateColumn(c *gin.Context) {
	column, ok := middleware.GetColumn(c)
	if !ok {
		apierrors.InternalError(c, "Column not found in context")
		return
	}

	var req columnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	column, err := h.boardService.UpdateColumn(column, req.input())
	if err != nil {
		respondResourceError(c, err)
		return
	}

	respond(c, http.StatusOK, dto.ToColumnDTO(*column), "Column updated")
}

// DeleteColumn deletes the column loaded by RequireColumnAccess
func (h *BoardHandler) DeleteColumn(c *gin.Context) {
	column, ok := middleware.GetColumn(c)
	if !ok {
		apierrors.InternalError(c, "Column not found in context")
		return
	}

	if err := h.boardService.DeleteColumn(column.ID); err != nil {
		respondResourceError(c, err)
		return
	}

	noContent(c)
}
