package repository

import (
	"database/sql"

	"github.com/yukikurage/taskboard-client/internal/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormColumnRepository is a GORM implementation of ColumnRepository
type GormColumnRepository struct {
	db *gorm.DB
}

// NewColumnRepository creates a new ColumnRepository
func NewColumnRepository(db *gorm.DB) ColumnRepository {
	return &GormColumnRepository{db: db}
}

func (r *GormColumnRepository) Create(column *database.Column) error {
	return r.db.Create(column).Error
}

func (r *GormColumnRepository) FindByID(id string) (*database.Column, error) {
	var column database.Column
	if err := r.db.Where("id = ?", id).First(&column).Error; err != nil {
		return nil, err
	}
	return &column, nil
}

// NextPosition returns the position after the last column of a board
func (r *GormColumnRepository) NextPosition(boardID string) (int, error) {
	var last sql.NullInt64
	err := r.db.Model(&database.Column{}).
		Scopes(database.ForBoard(boardID)).
		Select("MAX(position)").
		Row().
		Scan(&last)
	if err != nil {
		return 0, err
	}
	if !last.Valid {
		return 0, nil
	}
	return int(last.Int64) + 1, nil
}

func (r *GormColumnRepository) Update(column *database.Column) error {
	return r.db.Omit(clause.Associations).Save(column).Error
}

// Delete deletes a column and its tasks
func (r *GormColumnRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("column_id = ?", id).Delete(&database.Task{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&database.Column{}).Error
	})
}
