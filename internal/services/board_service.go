package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/taskboard-client/internal/database"
	"github.com/yukikurage/taskboard-client/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrBoardNotFound     = errors.New("board not found")
	ErrInvalidBoardName  = errors.New("board name cannot be empty")
	ErrNotBoardMember    = errors.New("user is not a member of the board")
	ErrNotBoardOwner     = errors.New("only the board owner can perform this action")
	ErrColumnNotFound    = errors.New("column not found")
	ErrInvalidColumnName = errors.New("column name cannot be empty")
)

// BoardService provides business logic for boards and their columns.
type BoardService struct {
	boardRepo  repository.BoardRepository
	columnRepo repository.ColumnRepository
}

// NewBoardService creates a new BoardService.
func NewBoardService(boardRepo repository.BoardRepository, columnRepo repository.ColumnRepository) *BoardService {
	return &BoardService{
		boardRepo:  boardRepo,
		columnRepo: columnRepo,
	}
}

// BoardInput carries the editable board fields. Nil fields are left unchanged
// on update.
type BoardInput struct {
	Name       *string
	Color      *string
	Icon       *string
	Background *string
}

// CreateBoard creates a board owned by ownerID.
func (s *BoardService) CreateBoard(ownerID string, input BoardInput) (*database.Board, error) {
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		return nil, ErrInvalidBoardName
	}

	board := &database.Board{}
	applyBoardInput(board, input)

	if err := s.boardRepo.CreateWithOwner(board, ownerID); err != nil {
		return nil, err
	}
	return board, nil
}

// ListBoards lists the boards userID belongs to.
func (s *BoardService) ListBoards(userID string) ([]database.Board, error) {
	boards, err := s.boardRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}
	return boards, nil
}

// GetBoard loads a board with members, columns and tasks.
func (s *BoardService) GetBoard(id string) (*database.Board, error) {
	board, err := s.boardRepo.FindDetailed(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to load board: %w", err)
	}
	return board, nil
}

// FindBoard loads a board without its relations.
func (s *BoardService) FindBoard(id string) (*database.Board, error) {
	board, err := s.boardRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to load board: %w", err)
	}
	return board, nil
}

// UpdateBoard applies input to board.
func (s *BoardService) UpdateBoard(board *database.Board, input BoardInput) (*database.Board, error) {
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, ErrInvalidBoardName
	}
	applyBoardInput(board, input)
	if err := s.boardRepo.Update(board); err != nil {
		return nil, fmt.Errorf("failed to update board: %w", err)
	}
	return board, nil
}

// DeleteBoard removes a board and everything on it.
func (s *BoardService) DeleteBoard(id string) error {
	if err := s.boardRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}
	return nil
}

// RequireMember returns the membership of userID on boardID.
func (s *BoardService) RequireMember(boardID, userID string) (*database.BoardMember, error) {
	member, err := s.boardRepo.FindMember(boardID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotBoardMember
		}
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	return member, nil
}

// ColumnInput carries the editable column fields.
type ColumnInput struct {
	Name     *string
	Color    *string
	Position *int
}

// CreateColumn appends a column to a board the user belongs to.
func (s *BoardService) CreateColumn(userID, boardID string, input ColumnInput) (*database.Column, error) {
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		return nil, ErrInvalidColumnName
	}
	if _, err := s.boardRepo.FindByID(boardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to load board: %w", err)
	}
	if _, err := s.RequireMember(boardID, userID); err != nil {
		return nil, err
	}

	column := &database.Column{BoardID: boardID}
	if input.Position == nil {
		next, err := s.columnRepo.NextPosition(boardID)
		if err != nil {
			return nil, fmt.Errorf("failed to compute position: %w", err)
		}
		column.Position = next
	}
	applyColumnInput(column, input)

	if err := s.columnRepo.Create(column); err != nil {
		return nil, fmt.Errorf("failed to create column: %w", err)
	}
	return column, nil
}

// UpdateColumn applies input to column.
func (s *BoardService) UpdateColumn(column *database.Column, input ColumnInput) (*database.Column, error) {
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, ErrInvalidColumnName
	}
	applyColumnInput(column, input)
	if err := s.columnRepo.Update(column); err != nil {
		return nil, fmt.Errorf("failed to update column: %w", err)
	}
	return column, nil
}

// DeleteColumn removes a column and its tasks.
func (s *BoardService) DeleteColumn(id string) error {
	if err := s.columnRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete column: %w", err)
	}
	return nil
}

// FindColumn loads a column the user can access through its board.
func (s *BoardService) FindColumn(userID, columnID string) (*database.Column, error) {
	column, err := s.columnRepo.FindByID(columnID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrColumnNotFound
		}
		return nil, fmt.Errorf("failed to load column: %w", err)
	}
	if _, err := s.RequireMember(column.BoardID, userID); err != nil {
		// Hide columns of foreign boards
		return nil, ErrColumnNotFound
	}
	return column, nil
}

func applyBoardInput(board *database.Board, input BoardInput) {
	if input.Name != nil {
		board.Name = strings.TrimSpace(*input.Name)
	}
	if input.Color != nil {
		board.Color = *input.Color
	}
	if input.Icon != nil {
		board.Icon = *input.Icon
	}
	if input.Background != nil {
		board.Background = *input.Background
	}
}

func applyColumnInput(column *database.Column, input ColumnInput) {
	if input.Name != nil {
		column.Name = strings.TrimSpace(*input.Name)
	}
	if input.Color != nil {
		column.Color = *input.Color
	}
	if input.Position != nil {
		column.Position = *input.Position
	}
}
