package store

import (
	"context"
	"fmt"

	"github.com/yukikurage/taskboard-client/internal/models"
)

type fakeBoards struct {
	list     any
	get      models.Record
	err      error
	calls    int
	created  int
	lastForm models.BoardForm
	updated  models.Record
	duringOp func()
}

func (f *fakeBoards) hit() error {
	f.calls++
	if f.duringOp != nil {
		f.duringOp()
	}
	return f.err
}

func (f *fakeBoards) ListMine(context.Context) (any, error) {
	if err := f.hit(); err != nil {
		return nil, err
	}
	return f.list, nil
}

func (f *fakeBoards) Get(context.Context, string) (models.Record, error) {
	if err := f.hit(); err != nil {
		return nil, err
	}
	return f.get, nil
}

func (f *fakeBoards) Create(_ context.Context, form models.BoardForm) (models.Record, error) {
	if err := f.hit(); err != nil {
		return nil, err
	}
	f.created++
	f.lastForm = form
	return models.Record{"_id": fmt.Sprintf("b%d", f.created), "name": form.Name}, nil
}

func (f *fakeBoards) Update(_ context.Context, id string, form models.BoardForm) (models.Record, error) {
	if err := f.hit(); err != nil {
		return nil, err
	}
	if f.updated != nil {
		return f.updated, nil
	}
	return models.Record{"id": id, "name": form.Name}, nil
}

func (f *fakeBoards) Delete(context.Context, string) error {
	return f.hit()
}

type fakeColumns struct {
	err      error
	calls    int
	created  int
	lastForm models.ColumnForm
}

func (f *fakeColumns) Create(_ context.Context, form models.ColumnForm) (models.Record, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	f.created++
	f.lastForm = form
	return models.Record{"id": fmt.Sprintf("c%d", f.created), "name": form.Name}, nil
}

func (f *fakeColumns) Update(_ context.Context, id string, form models.ColumnForm) (models.Record, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	f.lastForm = form
	return models.Record{"id": id, "name": form.Name}, nil
}

func (f *fakeColumns) Delete(context.Context, string) error {
	f.calls++
	return f.err
}

type fakeTasks struct {
	list     any
	get      models.Record
	update   models.Record
	err      error
	calls    int
	created  int
	lastForm models.TaskForm
}

func (f *fakeTasks) ListByColumn(context.Context, string) (any, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.list, nil
}

func (f *fakeTasks) Get(context.Context, string) (models.Record, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.get, nil
}

func (f *fakeTasks) Create(_ context.Context, form models.TaskForm) (models.Record, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	f.created++
	f.lastForm = form
	return models.Record{"_id": fmt.Sprintf("T%d", f.created), "name": form.Title}, nil
}

func (f *fakeTasks) Update(context.Context, string, models.TaskForm) (models.Record, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.update, nil
}

func (f *fakeTasks) Delete(context.Context, string) error {
	f.calls++
	return f.err
}
