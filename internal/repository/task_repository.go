package repository

import (
	"github.com/yukikurage/taskboard-client/internal/database"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *database.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(id string) (*database.Task, error) {
	var task database.Task
	if err := r.db.Where("id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByColumn lists the tasks of a column, newest first
func (r *GormTaskRepository) ListByColumn(columnID string) ([]database.Task, error) {
	tasks := []database.Task{}
	err := r.db.
		Where("column_id = ?", columnID).
		Scopes(database.NewestFirst).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *database.Task) error {
	return r.db.Save(task).Error
}

// Delete deletes a task
func (r *GormTaskRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&database.Task{}).Error
}
