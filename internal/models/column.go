package models

type Column struct {
	ID       string `json:"id"`
	BoardID  string `json:"board_id,omitempty"`
	Name     string `json:"name"`
	Color    string `json:"color"`
	Position int    `json:"position"`
	Tasks    []Task `json:"tasks"`

	Extra Record `json:"extra,omitempty"`
}

// ColumnForm is the payload for creating or updating a column.
type ColumnForm struct {
	BoardID  string `json:"board_id,omitempty" validate:"required"`
	Name     string `json:"name,omitempty" validate:"required,max=100"`
	Color    string `json:"color,omitempty" validate:"omitempty,hexcolor"`
	Position *int   `json:"position,omitempty" validate:"omitempty,min=0"`
}
