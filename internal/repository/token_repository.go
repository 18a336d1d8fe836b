package repository

import (
	"time"

	"github.com/yukikurage/taskboard-client/internal/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTokenRepository is a GORM implementation of TokenRepository
type GormTokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &GormTokenRepository{db: db}
}

// Revoke marks a token id as invalid until expiresAt
func (r *GormTokenRepository) Revoke(jti string, expiresAt time.Time) error {
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&database.RevokedToken{JTI: jti, ExpiresAt: expiresAt}).Error
}

// IsRevoked reports whether a token id was revoked
func (r *GormTokenRepository) IsRevoked(jti string) (bool, error) {
	var count int64
	err := r.db.Model(&database.RevokedToken{}).Where("jti = ?", jti).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
