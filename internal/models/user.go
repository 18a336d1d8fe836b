package models

type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

// Credentials identify an account for login or registration. Either Email
// or Username must be set.
type Credentials struct {
	Name     string `json:"name,omitempty"`
	Username string `json:"username,omitempty" validate:"required_without=Email"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Password string `json:"password" validate:"required"`
}
