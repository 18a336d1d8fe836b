package store

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/yukikurage/taskboard-client/internal/gateway"
	"github.com/yukikurage/taskboard-client/internal/models"
	"github.com/yukikurage/taskboard-client/internal/normalize"
	"github.com/yukikurage/taskboard-client/internal/notify"
	"github.com/yukikurage/taskboard-client/internal/validation"
)

// BoardStore holds the boards of the signed-in user.
type BoardStore struct {
	col    collection[models.Board]
	boards gateway.BoardGateway
	logger log.FieldLogger
}

func NewBoardStore(boards gateway.BoardGateway, sink notify.Sink, logger log.FieldLogger) *BoardStore {
	return &BoardStore{
		col:    collection[models.Board]{sink: sink},
		boards: boards,
		logger: logger.WithField("store", "boards"),
	}
}

// Boards returns a snapshot of the collection.
func (s *BoardStore) Boards() []models.Board { return s.col.snapshot() }

func (s *BoardStore) Loading() bool { return s.col.loading() }

// Err returns the failure of the last operation, or nil.
func (s *BoardStore) Err() error { return s.col.lastErr() }

// OnChange registers fn to run after every state change.
func (s *BoardStore) OnChange(fn func()) { s.col.watch(fn) }

// Fetch replaces the collection with the server's list. A failure leaves
// the collection empty and is recorded in Err, not returned.
func (s *BoardStore) Fetch(ctx context.Context) {
	defer s.col.begin()()

	payload, err := s.boards.ListMine(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to fetch boards")
		s.col.failAndReset(err)
		return
	}
	s.col.replace(normalize.Boards(payload))
}

// Create adds a board after the server confirmed it. New boards go last.
func (s *BoardStore) Create(ctx context.Context, form models.BoardForm) (*models.Board, error) {
	defer s.col.begin()()

	if err := validation.Struct(form); err != nil {
		s.col.fail(err)
		return nil, err
	}

	rec, err := s.boards.Create(ctx, form)
	if err != nil {
		s.logger.WithError(err).Error("Failed to create board")
		s.col.fail(err)
		return nil, err
	}

	board := normalize.Board(rec)
	s.col.appendItem(board)
	return &board, nil
}

// Update patches the local board with the fields the server returned. A
// board that is not held locally is left alone.
func (s *BoardStore) Update(ctx context.Context, id string, form models.BoardForm) (*models.Board, error) {
	if id == "" {
		return nil, nil
	}
	defer s.col.begin()()

	rec, err := s.boards.Update(ctx, id, form)
	if err != nil {
		s.logger.WithError(err).WithField("board_id", id).Error("Failed to update board")
		s.col.fail(err)
		return nil, err
	}

	board, ok := s.col.patch(byBoardID(id), func(b models.Board) models.Board {
		return normalize.MergeBoard(b, rec)
	})
	if !ok {
		board = normalize.Board(rec)
	}
	return &board, nil
}

func (s *BoardStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	defer s.col.begin()()

	if err := s.boards.Delete(ctx, id); err != nil {
		s.logger.WithError(err).WithField("board_id", id).Error("Failed to delete board")
		s.col.fail(err)
		return err
	}
	s.col.remove(byBoardID(id))
	return nil
}

func byBoardID(id string) func(models.Board) bool {
	return func(b models.Board) bool { return b.ID == id }
}
