package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "github.com/yukikurage/taskboard-client/internal/errors"
	"github.com/yukikurage/taskboard-client/internal/models"
	"github.com/yukikurage/taskboard-client/internal/transport"
)

type call struct {
	method string
	path   string
	body   any
}

type fakeDoer struct {
	calls []call
	env   *transport.Envelope
	err   error

	field    string
	filename string
	content  string
}

func (f *fakeDoer) Do(_ context.Context, method, path string, body any) (*transport.Envelope, error) {
	f.calls = append(f.calls, call{method: method, path: path, body: body})
	return f.env, f.err
}

func (f *fakeDoer) Upload(_ context.Context, path, field, filename string, content io.Reader) (*transport.Envelope, error) {
	f.calls = append(f.calls, call{method: http.MethodPost, path: path})
	f.field, f.filename = field, filename
	data, _ := io.ReadAll(content)
	f.content = string(data)
	return f.env, f.err
}

func envelope(data string) *transport.Envelope {
	return &transport.Envelope{Data: json.RawMessage(data)}
}

func TestResourceGateways_Paths(t *testing.T) {
	ctx := context.Background()
	doer := &fakeDoer{env: envelope(`{"id":"x"}`)}
	boards := NewBoardGateway(doer)
	columns := NewColumnGateway(doer)
	tasks := NewTaskGateway(doer)

	_, _ = boards.ListMine(ctx)
	_, _ = boards.Get(ctx, "b1")
	_, _ = boards.Create(ctx, models.BoardForm{Name: "Roadmap"})
	_, _ = boards.Update(ctx, "b1", models.BoardForm{Name: "Roadmap 2"})
	_ = boards.Delete(ctx, "b1")
	_, _ = columns.Create(ctx, models.ColumnForm{BoardID: "b1", Name: "Todo"})
	_, _ = columns.Update(ctx, "c1", models.ColumnForm{Name: "Doing"})
	_ = columns.Delete(ctx, "c1")
	_, _ = tasks.ListByColumn(ctx, "c1")
	_, _ = tasks.Get(ctx, "t1")
	_, _ = tasks.Create(ctx, models.TaskForm{Title: "Write docs"})
	_, _ = tasks.Update(ctx, "t1", models.TaskForm{Title: "Ship"})
	_ = tasks.Delete(ctx, "t1")

	want := []string{
		"GET /boards/user",
		"GET /boards/b1",
		"POST /boards",
		"PUT /boards/b1",
		"DELETE /boards/b1",
		"POST /columns",
		"PUT /columns/c1",
		"DELETE /columns/c1",
		"GET /columns/c1/tasks",
		"GET /tasks/t1",
		"POST /tasks",
		"PUT /tasks/t1",
		"DELETE /tasks/t1",
	}
	require.Len(t, doer.calls, len(want))
	for i, c := range doer.calls {
		assert.Equal(t, want[i], c.method+" "+c.path)
	}
	assert.Equal(t, models.BoardForm{Name: "Roadmap"}, doer.calls[2].body)
}

func TestGateway_EscapesIDs(t *testing.T) {
	doer := &fakeDoer{env: envelope(`{}`)}
	_, _ = NewTaskGateway(doer).Get(context.Background(), "a/b c")
	assert.Equal(t, "/tasks/a%2Fb%20c", doer.calls[0].path)
}

func TestGateway_ReturnsPayloadUnchanged(t *testing.T) {
	doer := &fakeDoer{env: envelope(`{"_id":"b1","Members":[{"userId":"u1"}]}`)}

	rec, err := NewBoardGateway(doer).Get(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, "b1", rec["_id"])
	assert.NotContains(t, rec, "id")
	assert.Contains(t, rec, "Members")

	doer.env = envelope(`{"tasks":[{"id":"t1"}]}`)
	list, err := NewTaskGateway(doer).ListByColumn(context.Background(), "c1")
	require.NoError(t, err)
	assert.IsType(t, map[string]any{}, list)
}

func TestGateway_PropagatesTransportError(t *testing.T) {
	boom := apierrors.FromStatus(http.StatusNotFound, "Board not found")
	doer := &fakeDoer{err: boom}

	_, err := NewBoardGateway(doer).Get(context.Background(), "missing")
	assert.Same(t, boom, err)

	err = NewBoardGateway(doer).Delete(context.Background(), "missing")
	assert.Same(t, boom, err)
}

func TestGateway_RejectedEnvelope(t *testing.T) {
	ok := false
	doer := &fakeDoer{env: &transport.Envelope{Success: &ok, Error: "Invalid password"}}

	_, err := NewAuthGateway(doer, UsersAuthRoutes).Login(context.Background(), models.Credentials{Email: "a@b.c", Password: "x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apierrors.ErrRejected))
	assert.Equal(t, "Invalid password", apierrors.MessageOf(err))
}

func TestAuthGateway_RouteStyles(t *testing.T) {
	ctx := context.Background()
	creds := models.Credentials{Username: "ann", Password: "secret1"}

	for style, wantLogin := range map[string]string{"users": "/users/login", "auth": "/auth/login", "": "/users/login"} {
		doer := &fakeDoer{env: envelope(`"tok"`)}
		g := NewAuthGateway(doer, RoutesFor(style))

		token, err := g.Login(ctx, creds)
		require.NoError(t, err)
		assert.Equal(t, "tok", token)
		assert.Equal(t, wantLogin, doer.calls[0].path)
	}

	doer := &fakeDoer{env: envelope(`{"access_token":"a2"}`)}
	g := NewAuthGateway(doer, PrefixedAuthRoutes)
	_, _ = g.Register(ctx, creds)
	_ = g.Logout(ctx)
	_, _ = g.Refresh(ctx, "r1")
	assert.Equal(t, "/auth/register", doer.calls[0].path)
	assert.Equal(t, "/auth/logout", doer.calls[1].path)
	assert.Equal(t, "/auth/refresh", doer.calls[2].path)
	assert.Equal(t, map[string]string{"refresh_token": "r1"}, doer.calls[2].body)
}

func TestUserGateway(t *testing.T) {
	doer := &fakeDoer{env: envelope(`{"user":{"id":"u1"}}`)}
	users := NewUserGateway(doer)

	rec, err := users.Me(context.Background())
	require.NoError(t, err)
	assert.Contains(t, rec, "user")
	assert.Equal(t, "GET /users/me", doer.calls[0].method+" "+doer.calls[0].path)

	_, err = users.UploadAvatar(context.Background(), "me.png", strings.NewReader("img"))
	require.NoError(t, err)
	assert.Equal(t, "/users/upload/avatar", doer.calls[1].path)
	assert.Equal(t, "avatar", doer.field)
	assert.Equal(t, "me.png", doer.filename)
	assert.Equal(t, "img", doer.content)
}
