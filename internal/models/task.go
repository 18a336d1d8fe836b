package models

import "time"

type Task struct {
	ID          string     `json:"id"`
	ColumnID    string     `json:"column_id,omitempty"`
	BoardID     string     `json:"board_id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Assignee    string     `json:"assignee"`
	Priority    int        `json:"priority"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`

	Extra Record `json:"extra,omitempty"`
}

// TaskForm is the payload for creating or updating a task. Dates use the
// YYYY-MM-DD layout.
type TaskForm struct {
	BoardID     string `json:"board_id,omitempty"`
	ColumnID    string `json:"column_id,omitempty"`
	Title       string `json:"title,omitempty" validate:"required,max=200"`
	Description string `json:"description,omitempty"`
	Assignee    string `json:"assignee,omitempty"`
	Priority    int    `json:"priority,omitempty" validate:"omitempty,min=1,max=5"`
	StartDate   string `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate     string `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}
