package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/taskboard-client/internal/constants"
	"github.com/yukikurage/taskboard-client/internal/database"
	"github.com/yukikurage/taskboard-client/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrTitleRequired   = errors.New("title is required")
	ErrInvalidPriority = errors.New("priority must be between 1 and 5")
	ErrInvalidDate     = errors.New("dates must use the YYYY-MM-DD layout")
	ErrDateRange       = errors.New("end date must not be before start date")
)

const dateLayout = "2006-01-02"

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
	boards   *BoardService
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, boards *BoardService) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		boards:   boards,
	}
}

// TaskInput represents the editable task fields. Nil fields are left
// unchanged on update; dates are YYYY-MM-DD strings and an empty string
// clears a date.
type TaskInput struct {
	Title       *string
	Description *string
	Assignee    *string
	Priority    *int
	StartDate   *string
	EndDate     *string
}

// CreateTask creates a task in a column the user can access.
func (s *TaskService) CreateTask(userID, columnID string, input TaskInput) (*database.Task, error) {
	if input.Title == nil || strings.TrimSpace(*input.Title) == "" {
		return nil, ErrTitleRequired
	}
	column, err := s.boards.FindColumn(userID, columnID)
	if err != nil {
		return nil, err
	}

	task := &database.Task{
		ColumnID:  column.ID,
		BoardID:   column.BoardID,
		CreatorID: userID,
		Priority:  constants.DefaultTaskPriority,
	}
	if err := applyTaskInput(task, input); err != nil {
		return nil, err
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// ListTasks lists the tasks of a column, newest first.
func (s *TaskService) ListTasks(columnID string) ([]database.Task, error) {
	tasks, err := s.taskRepo.ListByColumn(columnID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// FindTask loads a task the user can access through its board.
func (s *TaskService) FindTask(userID, taskID string) (*database.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to load task: %w", err)
	}
	if _, err := s.boards.RequireMember(task.BoardID, userID); err != nil {
		// Hide tasks of foreign boards
		return nil, ErrTaskNotFound
	}
	return task, nil
}

// UpdateTask applies input to task.
func (s *TaskService) UpdateTask(task *database.Task, input TaskInput) (*database.Task, error) {
	if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
		return nil, ErrTitleRequired
	}
	if err := applyTaskInput(task, input); err != nil {
		return nil, err
	}
	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

// DeleteTask deletes a task.
func (s *TaskService) DeleteTask(id string) error {
	if err := s.taskRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

func applyTaskInput(task *database.Task, input TaskInput) error {
	if input.Title != nil {
		task.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Assignee != nil {
		task.Assignee = strings.TrimSpace(*input.Assignee)
	}
	if input.Priority != nil {
		p := *input.Priority
		if p < constants.MinTaskPriority || p > constants.MaxTaskPriority {
			return ErrInvalidPriority
		}
		task.Priority = p
	}
	if input.StartDate != nil {
		d, err := parseDate(*input.StartDate)
		if err != nil {
			return err
		}
		task.StartDate = d
	}
	if input.EndDate != nil {
		d, err := parseDate(*input.EndDate)
		if err != nil {
			return err
		}
		task.EndDate = d
	}
	if task.StartDate != nil && task.EndDate != nil && task.EndDate.Before(*task.StartDate) {
		return ErrDateRange
	}
	return nil
}

func parseDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, ErrInvalidDate
	}
	return &d, nil
}
