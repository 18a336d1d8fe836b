package store

import (
	"context"

	log "github.com/sirupsen/logrus"

	apierrors "github.com/yukikurage/taskboard-client/internal/errors"
	"github.com/yukikurage/taskboard-client/internal/gateway"
	"github.com/yukikurage/taskboard-client/internal/models"
	"github.com/yukikurage/taskboard-client/internal/normalize"
	"github.com/yukikurage/taskboard-client/internal/notify"
	"github.com/yukikurage/taskboard-client/internal/validation"
)

// TaskStore holds the tasks of one column, newest first.
type TaskStore struct {
	col      collection[models.Task]
	columnID string
	tasks    gateway.TaskGateway
	logger   log.FieldLogger
}

func NewTaskStore(columnID string, tasks gateway.TaskGateway, sink notify.Sink, logger log.FieldLogger) *TaskStore {
	return &TaskStore{
		col:      collection[models.Task]{sink: sink},
		columnID: columnID,
		tasks:    tasks,
		logger:   logger.WithFields(log.Fields{"store": "tasks", "column_id": columnID}),
	}
}

func (s *TaskStore) ColumnID() string { return s.columnID }

func (s *TaskStore) Tasks() []models.Task { return s.col.snapshot() }

func (s *TaskStore) Loading() bool { return s.col.loading() }

func (s *TaskStore) Err() error { return s.col.lastErr() }

func (s *TaskStore) OnChange(fn func()) { s.col.watch(fn) }

// Fetch replaces the collection with the column's tasks.
func (s *TaskStore) Fetch(ctx context.Context) {
	if s.skip("fetch") {
		return
	}
	defer s.col.begin()()

	payload, err := s.tasks.ListByColumn(ctx, s.columnID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to fetch tasks")
		s.col.failAndReset(err)
		return
	}
	s.col.replace(normalize.Tasks(payload))
}

// Load fetches one task and patches the local copy with it. The task is
// returned even when it is not held locally.
func (s *TaskStore) Load(ctx context.Context, id string) (*models.Task, error) {
	if id == "" {
		return nil, nil
	}
	defer s.col.begin()()

	rec, err := s.tasks.Get(ctx, id)
	if err != nil {
		s.logger.WithError(err).WithField("task_id", id).Error("Failed to load task")
		s.col.fail(err)
		return nil, err
	}
	return s.merge(id, rec), nil
}

// Create adds a task under this column after the server confirmed it. New
// tasks go first.
func (s *TaskStore) Create(ctx context.Context, form models.TaskForm) (*models.Task, error) {
	if s.skip("create") {
		return nil, nil
	}
	defer s.col.begin()()

	form.ColumnID = s.columnID
	if err := validation.Struct(form); err != nil {
		s.col.fail(err)
		return nil, err
	}

	rec, err := s.tasks.Create(ctx, form)
	if err != nil {
		s.logger.WithError(err).Error("Failed to create task")
		s.col.fail(err)
		return nil, err
	}

	task := normalize.Task(rec)
	if task.ColumnID == "" {
		task.ColumnID = s.columnID
	}
	s.col.prependItem(task)
	return &task, nil
}

func (s *TaskStore) Update(ctx context.Context, id string, form models.TaskForm) (*models.Task, error) {
	if id == "" {
		return nil, nil
	}
	defer s.col.begin()()

	rec, err := s.tasks.Update(ctx, id, form)
	if err != nil {
		s.logger.WithError(err).WithField("task_id", id).Error("Failed to update task")
		s.col.fail(err)
		return nil, err
	}
	return s.merge(id, rec), nil
}

func (s *TaskStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	defer s.col.begin()()

	if err := s.tasks.Delete(ctx, id); err != nil {
		s.logger.WithError(err).WithField("task_id", id).Error("Failed to delete task")
		s.col.fail(err)
		return err
	}
	s.col.remove(byTaskID(id))
	return nil
}

func (s *TaskStore) merge(id string, rec models.Record) *models.Task {
	task, ok := s.col.patch(byTaskID(id), func(t models.Task) models.Task {
		return normalize.MergeTask(t, rec)
	})
	if !ok {
		task = normalize.Task(rec)
	}
	return &task
}

func (s *TaskStore) skip(op string) bool {
	if s.columnID != "" {
		return false
	}
	s.logger.WithError(apierrors.ErrMissingScope).WithField("op", op).Debug("Skipping task operation")
	return true
}

func byTaskID(id string) func(models.Task) bool {
	return func(t models.Task) bool { return t.ID == id }
}
