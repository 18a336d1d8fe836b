package database

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account of the development backend.
type User struct {
	ID           string  `gorm:"primaryKey;type:varchar(36)"`
	Name         string  `gorm:"type:varchar(100)"`
	Username     *string `gorm:"type:varchar(100);uniqueIndex"`
	Email        *string `gorm:"type:varchar(191);uniqueIndex"`
	PasswordHash string  `gorm:"not null"`
	Avatar       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

type Board struct {
	ID         string `gorm:"primaryKey;type:varchar(36)"`
	Name       string `gorm:"type:varchar(100);not null"`
	Color      string `gorm:"type:varchar(16)"`
	Icon       string `gorm:"type:varchar(16)"`
	Background string
	OwnerID    string `gorm:"type:varchar(36);index;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Members []BoardMember `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE"`
	Columns []Column      `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE"`
}

func (b *Board) BeforeCreate(*gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// BoardRole is the access level of a board member
type BoardRole string

const (
	RoleOwner  BoardRole = "owner"
	RoleMember BoardRole = "member"
)

type BoardMember struct {
	BoardID  string    `gorm:"primaryKey;type:varchar(36)"`
	UserID   string    `gorm:"primaryKey;type:varchar(36)"`
	Role     BoardRole `gorm:"type:varchar(16);not null;default:'member'"`
	JoinedAt time.Time

	User User `gorm:"foreignKey:UserID"`
}

type Column struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	BoardID   string `gorm:"type:varchar(36);index;not null"`
	Name      string `gorm:"type:varchar(100);not null"`
	Color     string `gorm:"type:varchar(16)"`
	Position  int    `gorm:"not null;default:0"`
	CreatedAt time.Time

	Tasks []Task `gorm:"foreignKey:ColumnID;constraint:OnDelete:CASCADE"`
}

func (c *Column) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

type Task struct {
	ID          string `gorm:"primaryKey;type:varchar(36)"`
	ColumnID    string `gorm:"type:varchar(36);index;not null"`
	BoardID     string `gorm:"type:varchar(36);index;not null"`
	Title       string `gorm:"type:varchar(200);not null"`
	Description string `gorm:"type:text"`
	Assignee    string `gorm:"type:varchar(100)"`
	Priority    int    `gorm:"not null;default:3"`
	StartDate   *time.Time
	EndDate     *time.Time
	CreatorID   string `gorm:"type:varchar(36)"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (t *Task) BeforeCreate(*gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// RevokedToken records a token id invalidated by logout.
type RevokedToken struct {
	JTI       string `gorm:"primaryKey;type:varchar(36)"`
	ExpiresAt time.Time
}
