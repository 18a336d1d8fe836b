package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/taskboard-client/internal/database"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

var (
	// ErrCreateUser is returned when inserting a user fails.
	ErrCreateUser = errors.New("user repository: create user failed")
)

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *database.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrCreateUser, err)
	}
	return nil
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id string) (*database.User, error) {
	var user database.User
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByLogin finds a user by email or username
func (r *GormUserRepository) FindByLogin(login string) (*database.User, error) {
	login = strings.ToLower(strings.TrimSpace(login))
	var user database.User
	if err := r.db.Where("email = ? OR username = ?", login, login).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateAvatar sets the avatar path of a user
func (r *GormUserRepository) UpdateAvatar(id, avatar string) error {
	result := r.db.Model(&database.User{}).Where("id = ?", id).Update("avatar", avatar)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
