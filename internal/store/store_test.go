package store

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "github.com/yukikurage/taskboard-client/internal/errors"
	"github.com/yukikurage/taskboard-client/internal/models"
	"github.com/yukikurage/taskboard-client/internal/notify"
)

var errBoom = apierrors.FromStatus(http.StatusInternalServerError, "Something went wrong")

func newBoardStore(t *testing.T, g *fakeBoards) *BoardStore {
	t.Helper()
	logger, _ := test.NewNullLogger()
	return NewBoardStore(g, notify.Discard, logger)
}

func boardIDs(boards []models.Board) []string {
	out := make([]string, 0, len(boards))
	for _, b := range boards {
		out = append(out, b.ID)
	}
	return out
}

func taskIDs(tasks []models.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, task.ID)
	}
	return out
}

func TestBoardStore_FetchReplacesCollection(t *testing.T) {
	g := &fakeBoards{list: []any{map[string]any{"_id": "a"}}}
	s := newBoardStore(t, g)
	ctx := context.Background()

	s.Fetch(ctx)
	require.Equal(t, []string{"a"}, boardIDs(s.Boards()))

	g.list = []any{map[string]any{"id": "b"}}
	s.Fetch(ctx)

	assert.Equal(t, []string{"b"}, boardIDs(s.Boards()))
	assert.NoError(t, s.Err())
}

func TestBoardStore_FetchFailureEmptiesCollection(t *testing.T) {
	g := &fakeBoards{list: []any{map[string]any{"id": "a"}}}
	s := newBoardStore(t, g)
	s.Fetch(context.Background())

	g.err = errBoom
	s.Fetch(context.Background())

	assert.Empty(t, s.Boards())
	assert.NotNil(t, s.Boards())
	assert.Same(t, errBoom, s.Err())
	assert.False(t, s.Loading())
}

func TestBoardStore_LoadingDuringCall(t *testing.T) {
	g := &fakeBoards{list: []any{}}
	s := newBoardStore(t, g)

	var during bool
	g.duringOp = func() { during = s.Loading() }
	s.Fetch(context.Background())

	assert.True(t, during)
	assert.False(t, s.Loading())
}

func TestBoardStore_CreateAppends(t *testing.T) {
	g := &fakeBoards{}
	s := newBoardStore(t, g)
	ctx := context.Background()

	b1, err := s.Create(ctx, models.BoardForm{Name: "B1"})
	require.NoError(t, err)
	_, err = s.Create(ctx, models.BoardForm{Name: "B2"})
	require.NoError(t, err)

	assert.Equal(t, "b1", b1.ID)
	assert.Equal(t, "#579DFF", b1.Color)
	assert.Equal(t, []string{"b1", "b2"}, boardIDs(s.Boards()))
}

func TestBoardStore_CreateFailureLeavesStateUnchanged(t *testing.T) {
	g := &fakeBoards{}
	s := newBoardStore(t, g)
	_, err := s.Create(context.Background(), models.BoardForm{Name: "B1"})
	require.NoError(t, err)

	g.err = errBoom
	created, err := s.Create(context.Background(), models.BoardForm{Name: "B2"})

	assert.Nil(t, created)
	assert.Same(t, errBoom, err)
	assert.Len(t, s.Boards(), 1)
	assert.Same(t, errBoom, s.Err())
}

func TestBoardStore_CreateValidationMakesNoCall(t *testing.T) {
	g := &fakeBoards{}
	s := newBoardStore(t, g)

	_, err := s.Create(context.Background(), models.BoardForm{Color: "blue"})

	assert.True(t, errors.Is(err, apierrors.ErrInvalidInput))
	assert.Zero(t, g.calls)
	assert.Empty(t, s.Boards())
	assert.Error(t, s.Err())
}

func TestBoardStore_UpdateMergesFields(t *testing.T) {
	g := &fakeBoards{list: []any{map[string]any{"_id": "a", "name": "Old", "color": "#000000", "owner": "u1"}}}
	s := newBoardStore(t, g)
	s.Fetch(context.Background())

	g.updated = models.Record{"_id": "a", "name": "New"}
	updated, err := s.Update(context.Background(), "a", models.BoardForm{Name: "New"})
	require.NoError(t, err)

	assert.Equal(t, "New", updated.Name)
	got := s.Boards()[0]
	assert.Equal(t, "New", got.Name)
	assert.Equal(t, "#000000", got.Color)
	assert.Equal(t, "u1", got.Extra["owner"])
}

func TestBoardStore_UpdateUnknownIDIsDiscarded(t *testing.T) {
	g := &fakeBoards{list: []any{map[string]any{"id": "a", "name": "A"}}}
	s := newBoardStore(t, g)
	s.Fetch(context.Background())

	_, err := s.Update(context.Background(), "zzz", models.BoardForm{Name: "Ghost"})

	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, boardIDs(s.Boards()))
	assert.Equal(t, "A", s.Boards()[0].Name)
}

func TestBoardStore_DeleteAndFailures(t *testing.T) {
	g := &fakeBoards{list: []any{map[string]any{"id": "a"}, map[string]any{"id": "b"}}}
	s := newBoardStore(t, g)
	ctx := context.Background()
	s.Fetch(ctx)

	require.NoError(t, s.Delete(ctx, "a"))
	assert.Equal(t, []string{"b"}, boardIDs(s.Boards()))

	require.NoError(t, s.Delete(ctx, "missing"))
	assert.Equal(t, []string{"b"}, boardIDs(s.Boards()))

	g.err = errBoom
	assert.Same(t, errBoom, s.Delete(ctx, "b"))
	_, err := s.Update(ctx, "b", models.BoardForm{Name: "x"})
	assert.Same(t, errBoom, err)
	assert.Equal(t, []string{"b"}, boardIDs(s.Boards()))
}

func TestBoardStore_OnChange(t *testing.T) {
	g := &fakeBoards{list: []any{}}
	s := newBoardStore(t, g)

	changes := 0
	s.OnChange(func() { changes++ })
	s.Fetch(context.Background())

	assert.GreaterOrEqual(t, changes, 3)
}

func newTaskStore(columnID string, g *fakeTasks) *TaskStore {
	logger, _ := test.NewNullLogger()
	return NewTaskStore(columnID, g, notify.Discard, logger)
}

func TestTaskStore_CreatePrependsAndInjectsColumn(t *testing.T) {
	g := &fakeTasks{}
	s := newTaskStore("c1", g)
	ctx := context.Background()

	t1, err := s.Create(ctx, models.TaskForm{Title: "T1", ColumnID: "other"})
	require.NoError(t, err)
	_, err = s.Create(ctx, models.TaskForm{Title: "T2"})
	require.NoError(t, err)

	assert.Equal(t, "c1", g.lastForm.ColumnID)
	assert.Equal(t, "c1", t1.ColumnID)
	assert.Equal(t, "T1", t1.Title)
	assert.Equal(t, []string{"T2", "T1"}, taskIDs(s.Tasks()))
}

func TestTaskStore_FetchArrayOrObject(t *testing.T) {
	list := []any{map[string]any{"_id": "t1", "name": "A"}, map[string]any{"id": "t2", "title": "B"}}
	g := &fakeTasks{list: map[string]any{"tasks": list}}
	s := newTaskStore("c1", g)

	s.Fetch(context.Background())
	assert.Equal(t, []string{"t1", "t2"}, taskIDs(s.Tasks()))

	g.list = list[:1]
	s.Fetch(context.Background())
	assert.Equal(t, []string{"t1"}, taskIDs(s.Tasks()))
}

func TestTaskStore_UpdatePartialMerge(t *testing.T) {
	g := &fakeTasks{list: []any{map[string]any{"id": "t1", "title": "X", "assignee": "bob"}}}
	s := newTaskStore("c1", g)
	s.Fetch(context.Background())

	g.update = models.Record{"id": "t1", "title": "Y"}
	_, err := s.Update(context.Background(), "t1", models.TaskForm{Title: "Y"})
	require.NoError(t, err)

	got := s.Tasks()[0]
	assert.Equal(t, "t1", got.ID)
	assert.Equal(t, "Y", got.Title)
	assert.Equal(t, "bob", got.Assignee)
}

func TestTaskStore_DeleteExactMatch(t *testing.T) {
	g := &fakeTasks{list: []any{map[string]any{"id": "t1"}, map[string]any{"id": "t2"}}}
	s := newTaskStore("c1", g)
	s.Fetch(context.Background())

	require.NoError(t, s.Delete(context.Background(), "t1"))
	assert.Equal(t, []string{"t2"}, taskIDs(s.Tasks()))

	require.NoError(t, s.Delete(context.Background(), "t9"))
	assert.Equal(t, []string{"t2"}, taskIDs(s.Tasks()))
}

func TestTaskStore_Load(t *testing.T) {
	g := &fakeTasks{list: []any{map[string]any{"id": "t1", "title": "X", "assignee": "bob"}}}
	s := newTaskStore("c1", g)
	s.Fetch(context.Background())

	g.get = models.Record{"id": "t1", "description": "details", "priority": float64(5)}
	task, err := s.Load(context.Background(), "t1")
	require.NoError(t, err)

	assert.Equal(t, "X", task.Title)
	assert.Equal(t, "details", s.Tasks()[0].Description)
	assert.Equal(t, 5, s.Tasks()[0].Priority)

	g.get = models.Record{"id": "t7", "title": "Elsewhere"}
	other, err := s.Load(context.Background(), "t7")
	require.NoError(t, err)
	assert.Equal(t, "Elsewhere", other.Title)
	assert.Len(t, s.Tasks(), 1)
}

func TestTaskStore_MissingColumnIsNoOp(t *testing.T) {
	g := &fakeTasks{list: []any{map[string]any{"id": "t1"}}}
	s := newTaskStore("", g)

	s.Fetch(context.Background())
	created, err := s.Create(context.Background(), models.TaskForm{Title: "T"})

	assert.NoError(t, err)
	assert.Nil(t, created)
	assert.Zero(t, g.calls)
	assert.Empty(t, s.Tasks())
	assert.NoError(t, s.Err())
}

func TestTaskStore_InvalidPriorityRejectedLocally(t *testing.T) {
	g := &fakeTasks{}
	s := newTaskStore("c1", g)

	_, err := s.Create(context.Background(), models.TaskForm{Title: "T", Priority: 9})

	assert.True(t, errors.Is(err, apierrors.ErrInvalidInput))
	assert.Zero(t, g.calls)
}

func newColumnStore(boardID string, boards *fakeBoards, columns *fakeColumns) *ColumnStore {
	logger, _ := test.NewNullLogger()
	return NewColumnStore(boardID, boards, columns, notify.Discard, logger)
}

func TestColumnStore_FetchProjectsBoard(t *testing.T) {
	boards := &fakeBoards{get: models.Record{
		"_id": "b1",
		"columns": []any{
			map[string]any{"_id": "c2", "name": "Done", "position": float64(2)},
			map[string]any{"id": "c1", "name": "Todo", "position": float64(1), "tasks": []any{map[string]any{"_id": "t1", "name": "A"}}},
		},
		"Members": []any{map[string]any{"userId": "u1", "username": "ann"}},
	}}
	s := newColumnStore("b1", boards, &fakeColumns{})

	s.Fetch(context.Background())

	cols := s.Columns()
	require.Len(t, cols, 2)
	assert.Equal(t, "c1", cols[0].ID)
	assert.Equal(t, "A", cols[0].Tasks[0].Title)
	assert.Equal(t, []models.Member{{ID: "u1", Name: "ann"}}, s.Members())
	assert.Equal(t, 1, boards.calls)
}

func TestColumnStore_FetchWithoutColumnsField(t *testing.T) {
	s := newColumnStore("b1", &fakeBoards{get: models.Record{"id": "b1"}}, &fakeColumns{})

	s.Fetch(context.Background())

	assert.NotNil(t, s.Columns())
	assert.Empty(t, s.Columns())
	assert.NoError(t, s.Err())
}

func TestColumnStore_MissingBoardIsNoOp(t *testing.T) {
	boards := &fakeBoards{get: models.Record{"columns": []any{map[string]any{"id": "c1"}}}}
	columns := &fakeColumns{}
	s := newColumnStore("", boards, columns)

	s.Fetch(context.Background())
	_, err := s.Create(context.Background(), models.ColumnForm{Name: "Todo"})
	require.NoError(t, err)
	require.NoError(t, s.Delete(context.Background(), "c1"))

	assert.Zero(t, boards.calls)
	assert.Zero(t, columns.calls)
	assert.Empty(t, s.Columns())
	assert.False(t, s.Loading())
}

func TestColumnStore_CreateAppendsWithBoard(t *testing.T) {
	columns := &fakeColumns{}
	s := newColumnStore("b1", &fakeBoards{}, columns)
	ctx := context.Background()

	_, err := s.Create(ctx, models.ColumnForm{Name: "Todo"})
	require.NoError(t, err)
	second, err := s.Create(ctx, models.ColumnForm{Name: "Doing"})
	require.NoError(t, err)

	assert.Equal(t, "b1", columns.lastForm.BoardID)
	assert.Equal(t, "b1", second.BoardID)
	cols := s.Columns()
	require.Len(t, cols, 2)
	assert.Equal(t, "c1", cols[0].ID)
	assert.Equal(t, "c2", cols[1].ID)
}

func TestColumnStore_FetchFailureClearsMembers(t *testing.T) {
	boards := &fakeBoards{get: models.Record{"members": []any{map[string]any{"id": "u1"}}}}
	s := newColumnStore("b1", boards, &fakeColumns{})
	s.Fetch(context.Background())
	require.Len(t, s.Members(), 1)

	boards.err = errBoom
	s.Fetch(context.Background())

	assert.Empty(t, s.Members())
	assert.Same(t, errBoom, s.Err())
}

func TestStores_NotifyRejectedAndInvalid(t *testing.T) {
	logger, _ := test.NewNullLogger()
	ctx := context.Background()

	t.Run("rejected board create", func(t *testing.T) {
		rec := notify.NewRecorder()
		s := NewBoardStore(&fakeBoards{err: apierrors.Rejected("Board limit reached")}, rec, logger)

		_, err := s.Create(ctx, models.BoardForm{Name: "B1"})

		require.True(t, errors.Is(err, apierrors.ErrRejected))
		assert.Equal(t, "Board limit reached", apierrors.MessageOf(s.Err()))
		assert.Equal(t, []string{"Board limit reached"}, errorMessages(rec))
	})

	t.Run("invalid board form", func(t *testing.T) {
		rec := notify.NewRecorder()
		g := &fakeBoards{}
		s := NewBoardStore(g, rec, logger)

		_, err := s.Create(ctx, models.BoardForm{})

		require.Error(t, err)
		assert.Zero(t, g.calls)
		assert.Equal(t, []string{"name is required"}, errorMessages(rec))
	})

	t.Run("rejected column update", func(t *testing.T) {
		rec := notify.NewRecorder()
		columns := &fakeColumns{err: apierrors.Rejected("Column is locked")}
		s := NewColumnStore("b1", &fakeBoards{}, columns, rec, logger)

		_, err := s.Update(ctx, "c1", models.ColumnForm{Name: "Doing"})

		require.Error(t, err)
		assert.Equal(t, []string{"Column is locked"}, errorMessages(rec))
	})

	t.Run("rejected task fetch", func(t *testing.T) {
		rec := notify.NewRecorder()
		s := NewTaskStore("c1", &fakeTasks{err: apierrors.Rejected("Column archived")}, rec, logger)

		s.Fetch(ctx)

		assert.Empty(t, s.Tasks())
		assert.Equal(t, []string{"Column archived"}, errorMessages(rec))
	})

	t.Run("transport failures are not repeated", func(t *testing.T) {
		rec := notify.NewRecorder()
		s := NewTaskStore("c1", &fakeTasks{err: errBoom}, rec, logger)

		_, err := s.Create(ctx, models.TaskForm{Title: "T"})

		assert.Same(t, errBoom, err)
		assert.Empty(t, rec.All())
	})
}

func errorMessages(rec *notify.Recorder) []string {
	var out []string
	for _, n := range rec.All() {
		if n.Level == notify.LevelError {
			out = append(out, n.Message)
		}
	}
	return out
}
