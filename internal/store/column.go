package store

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	apierrors "github.com/yukikurage/taskboard-client/internal/errors"
	"github.com/yukikurage/taskboard-client/internal/gateway"
	"github.com/yukikurage/taskboard-client/internal/models"
	"github.com/yukikurage/taskboard-client/internal/normalize"
	"github.com/yukikurage/taskboard-client/internal/notify"
	"github.com/yukikurage/taskboard-client/internal/validation"
)

// ColumnStore holds the columns and members of one board. Columns are read
// from the board payload; there is no separate column listing.
type ColumnStore struct {
	col     collection[models.Column]
	boardID string
	boards  gateway.BoardGateway
	columns gateway.ColumnGateway
	logger  log.FieldLogger

	mu      sync.RWMutex
	members []models.Member
}

func NewColumnStore(boardID string, boards gateway.BoardGateway, columns gateway.ColumnGateway, sink notify.Sink, logger log.FieldLogger) *ColumnStore {
	return &ColumnStore{
		col:     collection[models.Column]{sink: sink},
		boardID: boardID,
		boards:  boards,
		columns: columns,
		logger:  logger.WithFields(log.Fields{"store": "columns", "board_id": boardID}),
	}
}

func (s *ColumnStore) BoardID() string { return s.boardID }

// Columns returns a snapshot ordered by position.
func (s *ColumnStore) Columns() []models.Column { return s.col.snapshot() }

// Members returns the board members seen on the last fetch.
func (s *ColumnStore) Members() []models.Member {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Member, len(s.members))
	copy(out, s.members)
	return out
}

func (s *ColumnStore) Loading() bool { return s.col.loading() }

func (s *ColumnStore) Err() error { return s.col.lastErr() }

func (s *ColumnStore) OnChange(fn func()) { s.col.watch(fn) }

// Fetch loads the board and replaces the columns with the ones it embeds.
func (s *ColumnStore) Fetch(ctx context.Context) {
	if s.skip("fetch") {
		return
	}
	defer s.col.begin()()

	rec, err := s.boards.Get(ctx, s.boardID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to fetch columns")
		s.setMembers([]models.Member{})
		s.col.failAndReset(err)
		return
	}

	board := normalize.Unwrap(rec, "board")
	s.setMembers(normalize.Members(board))
	s.col.replace(normalize.Columns(board["columns"]))
}

// Create adds a column to the board after the server confirmed it. New
// columns go last.
func (s *ColumnStore) Create(ctx context.Context, form models.ColumnForm) (*models.Column, error) {
	if s.skip("create") {
		return nil, nil
	}
	defer s.col.begin()()

	form.BoardID = s.boardID
	if err := validation.Struct(form); err != nil {
		s.col.fail(err)
		return nil, err
	}

	rec, err := s.columns.Create(ctx, form)
	if err != nil {
		s.logger.WithError(err).Error("Failed to create column")
		s.col.fail(err)
		return nil, err
	}

	column := normalize.Column(rec)
	if column.BoardID == "" {
		column.BoardID = s.boardID
	}
	s.col.appendItem(column)
	return &column, nil
}

func (s *ColumnStore) Update(ctx context.Context, id string, form models.ColumnForm) (*models.Column, error) {
	if id == "" || s.skip("update") {
		return nil, nil
	}
	defer s.col.begin()()

	form.BoardID = s.boardID
	rec, err := s.columns.Update(ctx, id, form)
	if err != nil {
		s.logger.WithError(err).WithField("column_id", id).Error("Failed to update column")
		s.col.fail(err)
		return nil, err
	}

	column, ok := s.col.patch(byColumnID(id), func(c models.Column) models.Column {
		return normalize.MergeColumn(c, rec)
	})
	if !ok {
		column = normalize.Column(rec)
	}
	return &column, nil
}

func (s *ColumnStore) Delete(ctx context.Context, id string) error {
	if id == "" || s.skip("delete") {
		return nil
	}
	defer s.col.begin()()

	if err := s.columns.Delete(ctx, id); err != nil {
		s.logger.WithError(err).WithField("column_id", id).Error("Failed to delete column")
		s.col.fail(err)
		return err
	}
	s.col.remove(byColumnID(id))
	return nil
}

func (s *ColumnStore) skip(op string) bool {
	if s.boardID != "" {
		return false
	}
	s.logger.WithError(apierrors.ErrMissingScope).WithField("op", op).Debug("Skipping column operation")
	return true
}

func (s *ColumnStore) setMembers(members []models.Member) {
	s.mu.Lock()
	s.members = members
	s.mu.Unlock()
}

func byColumnID(id string) func(models.Column) bool {
	return func(c models.Column) bool { return c.ID == id }
}
