package database

import (
	"gorm.io/gorm"
)

// ForBoard restricts a query to rows of one board
func ForBoard(boardID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("board_id = ?", boardID)
	}
}

// ByPosition orders columns by position, oldest first on ties
func ByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC").Order("created_at ASC")
}

// NewestFirst orders rows by creation time, newest first
func NewestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC")
}
