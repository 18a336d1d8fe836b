// Package dto shapes the development backend's JSON responses. The shapes
// are deliberately inconsistent (_id vs id, Members vs members, name vs
// title) because real deployments of the board API are.
package dto

import (
	"time"

	"github.com/yukikurage/taskboard-client/internal/database"
)

const dateLayout = "2006-01-02"

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       string `json:"_id"`
	Name     string `json:"name,omitempty"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Avatar   string `json:"avatar_url,omitempty"`
}

// ProfileDTO wraps the user returned by /users/me
type ProfileDTO struct {
	User UserDTO `json:"user"`
}

// MemberDTO represents a board member
type MemberDTO struct {
	UserID   string `json:"userId"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role"`
}

// BoardDTO represents a board in list responses
type BoardDTO struct {
	ID         string    `json:"_id"`
	Name       string    `json:"name"`
	Color      string    `json:"color,omitempty"`
	Icon       string    `json:"icon,omitempty"`
	Background string    `json:"background,omitempty"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// BoardDetailDTO is a board with its members and columns
type BoardDetailDTO struct {
	BoardDTO
	Columns []ColumnDTO `json:"columns"`
	Members []MemberDTO `json:"Members"`
}

// ColumnDTO represents a column
type ColumnDTO struct {
	ID       string           `json:"id"`
	BoardID  string           `json:"board_id"`
	Name     string           `json:"name"`
	Color    string           `json:"color,omitempty"`
	Position int              `json:"position"`
	Tasks    []TaskSummaryDTO `json:"tasks,omitempty"`
}

// TaskSummaryDTO is the short task form embedded in board payloads
type TaskSummaryDTO struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Assignee string `json:"assignee,omitempty"`
	Priority int    `json:"priority"`
}

// TaskDTO represents a task
type TaskDTO struct {
	ID          string    `json:"id"`
	ColumnID    string    `json:"column_id"`
	BoardID     string    `json:"board_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Assignee    string    `json:"assignee"`
	Priority    int       `json:"priority"`
	StartDate   string    `json:"start_date,omitempty"`
	EndDate     string    `json:"endDate,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreatedTaskDTO is the task shape returned on creation
type CreatedTaskDTO struct {
	ID          string `json:"_id"`
	ColumnID    string `json:"columnId"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Assignee    string `json:"assignee,omitempty"`
	Priority    int    `json:"priority"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
}

// TaskListDTO wraps the tasks of a column
type TaskListDTO struct {
	Tasks []TaskDTO `json:"tasks"`
}

// TokenDTO is the object form of a login or refresh response
type TokenDTO struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Conversion functions

// ToUserDTO converts a User to UserDTO
func ToUserDTO(user database.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Name:     user.Name,
		Username: deref(user.Username),
		Email:    deref(user.Email),
		Avatar:   user.Avatar,
	}
}

// ToBoardDTO converts a Board to BoardDTO
func ToBoardDTO(board database.Board) BoardDTO {
	return BoardDTO{
		ID:         board.ID,
		Name:       board.Name,
		Color:      board.Color,
		Icon:       board.Icon,
		Background: board.Background,
		UpdatedAt:  board.UpdatedAt,
	}
}

// ToBoardDTOs converts boards to list items
func ToBoardDTOs(boards []database.Board) []BoardDTO {
	out := make([]BoardDTO, 0, len(boards))
	for _, b := range boards {
		out = append(out, ToBoardDTO(b))
	}
	return out
}

// ToBoardDetailDTO converts a fully loaded Board
func ToBoardDetailDTO(board database.Board) BoardDetailDTO {
	detail := BoardDetailDTO{
		BoardDTO: ToBoardDTO(board),
		Columns:  make([]ColumnDTO, 0, len(board.Columns)),
		Members:  make([]MemberDTO, 0, len(board.Members)),
	}
	for _, c := range board.Columns {
		detail.Columns = append(detail.Columns, ToColumnDTO(c))
	}
	for _, m := range board.Members {
		detail.Members = append(detail.Members, MemberDTO{
			UserID:   m.UserID,
			Username: deref(m.User.Username),
			Email:    deref(m.User.Email),
			Role:     string(m.Role),
		})
	}
	return detail
}

// ToColumnDTO converts a Column, including any loaded tasks
func ToColumnDTO(column database.Column) ColumnDTO {
	dto := ColumnDTO{
		ID:       column.ID,
		BoardID:  column.BoardID,
		Name:     column.Name,
		Color:    column.Color,
		Position: column.Position,
	}
	for _, t := range column.Tasks {
		dto.Tasks = append(dto.Tasks, TaskSummaryDTO{
			ID:       t.ID,
			Name:     t.Title,
			Assignee: t.Assignee,
			Priority: t.Priority,
		})
	}
	return dto
}

// ToTaskDTO converts a Task to TaskDTO
func ToTaskDTO(task database.Task) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		ColumnID:    task.ColumnID,
		BoardID:     task.BoardID,
		Title:       task.Title,
		Description: task.Description,
		Assignee:    task.Assignee,
		Priority:    task.Priority,
		StartDate:   formatDate(task.StartDate),
		EndDate:     formatDate(task.EndDate),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// ToCreatedTaskDTO converts a newly created Task
func ToCreatedTaskDTO(task database.Task) CreatedTaskDTO {
	return CreatedTaskDTO{
		ID:          task.ID,
		ColumnID:    task.ColumnID,
		Name:        task.Title,
		Description: task.Description,
		Assignee:    task.Assignee,
		Priority:    task.Priority,
		StartDate:   formatDate(task.StartDate),
		EndDate:     formatDate(task.EndDate),
	}
}

// ToTaskListDTO converts the tasks of a column
func ToTaskListDTO(tasks []database.Task) TaskListDTO {
	out := TaskListDTO{Tasks: make([]TaskDTO, 0, len(tasks))}
	for _, t := range tasks {
		out.Tasks = append(out.Tasks, ToTaskDTO(t))
	}
	return out
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
