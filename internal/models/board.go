package models

import "time"

type Board struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Color      string     `json:"color"`
	Icon       string     `json:"icon"`
	Background string     `json:"background"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`

	// Extra holds fields the API sent that have no typed counterpart.
	Extra Record `json:"extra,omitempty"`
}

// Member is a user with access to a board.
type Member struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BoardForm is the payload for creating or updating a board.
type BoardForm struct {
	Name       string `json:"name,omitempty" validate:"required,max=100"`
	Color      string `json:"color,omitempty" validate:"omitempty,hexcolor"`
	Icon       string `json:"icon,omitempty" validate:"omitempty,max=16"`
	Background string `json:"background,omitempty"`
}
