package repository

import (
	"fmt"
	"time"

	"github.com/yukikurage/taskboard-client/internal/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBoardRepository is a GORM implementation of BoardRepository
type GormBoardRepository struct {
	db *gorm.DB
}

// NewBoardRepository creates a new BoardRepository
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &GormBoardRepository{db: db}
}

// CreateWithOwner creates a board and its owner membership atomically
func (r *GormBoardRepository) CreateWithOwner(board *database.Board, ownerID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		board.OwnerID = ownerID
		if err := tx.Create(board).Error; err != nil {
			return fmt.Errorf("failed to create board: %w", err)
		}

		member := &database.BoardMember{
			BoardID:  board.ID,
			UserID:   ownerID,
			Role:     database.RoleOwner,
			JoinedAt: time.Now(),
		}
		if err := tx.Create(member).Error; err != nil {
			return fmt.Errorf("failed to add board owner: %w", err)
		}
		return nil
	})
}

// FindByID finds a board by ID with optional preloading
func (r *GormBoardRepository) FindByID(id string, preload ...string) (*database.Board, error) {
	var board database.Board
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.Where("id = ?", id).First(&board).Error; err != nil {
		return nil, err
	}

	return &board, nil
}

// FindDetailed finds a board with members, ordered columns and their tasks
func (r *GormBoardRepository) FindDetailed(id string) (*database.Board, error) {
	var board database.Board
	err := r.db.
		Preload("Members.User").
		Preload("Columns", database.ByPosition).
		Preload("Columns.Tasks", database.NewestFirst).
		Where("id = ?", id).
		First(&board).Error
	if err != nil {
		return nil, err
	}
	return &board, nil
}

// ListByUser lists boards the user is a member of
func (r *GormBoardRepository) ListByUser(userID string) ([]database.Board, error) {
	var boards []database.Board
	err := r.db.
		Joins("JOIN board_members ON board_members.board_id = boards.id").
		Where("board_members.user_id = ?", userID).
		Order("boards.created_at ASC").
		Find(&boards).Error
	if err != nil {
		return nil, err
	}
	return boards, nil
}

// Update updates a board
func (r *GormBoardRepository) Update(board *database.Board) error {
	return r.db.Omit(clause.Associations).Save(board).Error
}

// Delete deletes a board and all related data in a transaction
func (r *GormBoardRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		scope := database.ForBoard(id)

		if err := tx.Scopes(scope).Delete(&database.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Scopes(scope).Delete(&database.Column{}).Error; err != nil {
			return err
		}
		if err := tx.Scopes(scope).Delete(&database.BoardMember{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&database.Board{}).Error
	})
}

// FindMember finds a specific board member
func (r *GormBoardRepository) FindMember(boardID, userID string) (*database.BoardMember, error) {
	var member database.BoardMember
	if err := r.db.Where("board_id = ? AND user_id = ?", boardID, userID).First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}
