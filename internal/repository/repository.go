package repository

import (
	"time"

	"github.com/yukikurage/taskboard-client/internal/database"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *database.User) error

	// FindByID finds a user by ID
	FindByID(id string) (*database.User, error)

	// FindByLogin finds a user by email or username
	FindByLogin(login string) (*database.User, error)

	// UpdateAvatar sets the avatar path of a user
	UpdateAvatar(id, avatar string) error
}

// BoardRepository defines the interface for board data access
type BoardRepository interface {
	// CreateWithOwner creates a board and its owner membership atomically
	CreateWithOwner(board *database.Board, ownerID string) error

	// FindByID finds a board by ID with optional preloading
	FindByID(id string, preload ...string) (*database.Board, error)

	// FindDetailed finds a board with members, ordered columns and their tasks
	FindDetailed(id string) (*database.Board, error)

	// ListByUser lists boards the user is a member of
	ListByUser(userID string) ([]database.Board, error)

	// Update updates a board
	Update(board *database.Board) error

	// Delete deletes a board with its members, columns and tasks
	Delete(id string) error

	// FindMember finds a specific board member
	FindMember(boardID, userID string) (*database.BoardMember, error)
}

// ColumnRepository defines the interface for column data access
type ColumnRepository interface {
	// Create creates a new column
	Create(column *database.Column) error

	// FindByID finds a column by ID
	FindByID(id string) (*database.Column, error)

	// NextPosition returns the position after the last column of a board
	NextPosition(boardID string) (int, error)

	// Update updates a column
	Update(column *database.Column) error

	// Delete deletes a column and its tasks
	Delete(id string) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *database.Task) error

	// FindByID finds a task by ID
	FindByID(id string) (*database.Task, error)

	// ListByColumn lists the tasks of a column, newest first
	ListByColumn(columnID string) ([]database.Task, error)

	// Update updates a task
	Update(task *database.Task) error

	// Delete deletes a task
	Delete(id string) error
}

// TokenRepository tracks tokens invalidated before they expire
type TokenRepository interface {
	// Revoke marks a token id as invalid until expiresAt
	Revoke(jti string, expiresAt time.Time) error

	// IsRevoked reports whether a token id was revoked
	IsRevoked(jti string) (bool, error)
}
