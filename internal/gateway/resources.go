package gateway

import (
	"context"
	"net/http"

	"github.com/yukikurage/taskboard-client/internal/models"
	"github.com/yukikurage/taskboard-client/internal/transport"
)

// HTTPBoardGateway is the REST implementation of BoardGateway
type HTTPBoardGateway struct {
	caller
}

// NewBoardGateway creates a new BoardGateway
func NewBoardGateway(doer transport.Doer) BoardGateway {
	return &HTTPBoardGateway{caller: caller{doer: doer}}
}

func (g *HTTPBoardGateway) ListMine(ctx context.Context) (any, error) {
	return g.value(ctx, http.MethodGet, PathMyBoards, nil)
}

func (g *HTTPBoardGateway) Get(ctx context.Context, id string) (models.Record, error) {
	return g.record(ctx, http.MethodGet, boardPath(id), nil)
}

func (g *HTTPBoardGateway) Create(ctx context.Context, form models.BoardForm) (models.Record, error) {
	return g.record(ctx, http.MethodPost, PathBoards, form)
}

func (g *HTTPBoardGateway) Update(ctx context.Context, id string, form models.BoardForm) (models.Record, error) {
	return g.record(ctx, http.MethodPut, boardPath(id), form)
}

func (g *HTTPBoardGateway) Delete(ctx context.Context, id string) error {
	return g.exec(ctx, http.MethodDelete, boardPath(id), nil)
}

// HTTPColumnGateway is the REST implementation of ColumnGateway
type HTTPColumnGateway struct {
	caller
}

// NewColumnGateway creates a new ColumnGateway
func NewColumnGateway(doer transport.Doer) ColumnGateway {
	return &HTTPColumnGateway{caller: caller{doer: doer}}
}

func (g *HTTPColumnGateway) Create(ctx context.Context, form models.ColumnForm) (models.Record, error) {
	return g.record(ctx, http.MethodPost, PathColumns, form)
}

func (g *HTTPColumnGateway) Update(ctx context.Context, id string, form models.ColumnForm) (models.Record, error) {
	return g.record(ctx, http.MethodPut, columnPath(id), form)
}

func (g *HTTPColumnGateway) Delete(ctx context.Context, id string) error {
	return g.exec(ctx, http.MethodDelete, columnPath(id), nil)
}

// HTTPTaskGateway is the REST implementation of TaskGateway
type HTTPTaskGateway struct {
	caller
}

// NewTaskGateway creates a new TaskGateway
func NewTaskGateway(doer transport.Doer) TaskGateway {
	return &HTTPTaskGateway{caller: caller{doer: doer}}
}

func (g *HTTPTaskGateway) ListByColumn(ctx context.Context, columnID string) (any, error) {
	return g.value(ctx, http.MethodGet, columnTasksPath(columnID), nil)
}

func (g *HTTPTaskGateway) Get(ctx context.Context, id string) (models.Record, error) {
	return g.record(ctx, http.MethodGet, taskPath(id), nil)
}

func (g *HTTPTaskGateway) Create(ctx context.Context, form models.TaskForm) (models.Record, error) {
	return g.record(ctx, http.MethodPost, PathTasks, form)
}

func (g *HTTPTaskGateway) Update(ctx context.Context, id string, form models.TaskForm) (models.Record, error) {
	return g.record(ctx, http.MethodPut, taskPath(id), form)
}

func (g *HTTPTaskGateway) Delete(ctx context.Context, id string) error {
	return g.exec(ctx, http.MethodDelete, taskPath(id), nil)
}
