// Package gateway maps domain operations onto REST calls. Gateways hold no
// state and never reshape payloads; errors from the transport are returned
// unchanged.
package gateway

import (
	"context"
	"io"

	apierrors "github.com/yukikurage/taskboard-client/internal/errors"
	"github.com/yukikurage/taskboard-client/internal/models"
	"github.com/yukikurage/taskboard-client/internal/transport"
)

// AuthGateway defines the authentication endpoints
type AuthGateway interface {
	// Login exchanges credentials for a token payload
	Login(ctx context.Context, creds models.Credentials) (any, error)

	// Register creates an account without signing in
	Register(ctx context.Context, creds models.Credentials) (any, error)

	// Logout invalidates the current token on the server
	Logout(ctx context.Context) error

	// Refresh trades a refresh token for a new access token payload
	Refresh(ctx context.Context, refreshToken string) (any, error)
}

// UserGateway defines the profile endpoints
type UserGateway interface {
	// Me fetches the profile of the token owner
	Me(ctx context.Context) (models.Record, error)

	// UploadAvatar replaces the profile picture
	UploadAvatar(ctx context.Context, filename string, content io.Reader) (models.Record, error)
}

// BoardGateway defines the board endpoints
type BoardGateway interface {
	// ListMine lists boards the caller belongs to
	ListMine(ctx context.Context) (any, error)

	// Get fetches one board with its columns and members
	Get(ctx context.Context, id string) (models.Record, error)

	Create(ctx context.Context, form models.BoardForm) (models.Record, error)
	Update(ctx context.Context, id string, form models.BoardForm) (models.Record, error)
	Delete(ctx context.Context, id string) error
}

// ColumnGateway defines the column endpoints. Columns are listed through
// BoardGateway.Get.
type ColumnGateway interface {
	Create(ctx context.Context, form models.ColumnForm) (models.Record, error)
	Update(ctx context.Context, id string, form models.ColumnForm) (models.Record, error)
	Delete(ctx context.Context, id string) error
}

// TaskGateway defines the task endpoints
type TaskGateway interface {
	// ListByColumn lists tasks of one column
	ListByColumn(ctx context.Context, columnID string) (any, error)

	Get(ctx context.Context, id string) (models.Record, error)
	Create(ctx context.Context, form models.TaskForm) (models.Record, error)
	Update(ctx context.Context, id string, form models.TaskForm) (models.Record, error)
	Delete(ctx context.Context, id string) error
}

type caller struct {
	doer transport.Doer
}

func (c caller) value(ctx context.Context, method, path string, body any) (any, error) {
	env, err := c.doer.Do(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	if env.Rejected() {
		return nil, rejected(env)
	}
	var out any
	if err := env.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c caller) record(ctx context.Context, method, path string, body any) (models.Record, error) {
	env, err := c.doer.Do(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	return recordOf(env)
}

func (c caller) exec(ctx context.Context, method, path string, body any) error {
	env, err := c.doer.Do(ctx, method, path, body)
	if err != nil {
		return err
	}
	if env.Rejected() {
		return rejected(env)
	}
	return nil
}

func recordOf(env *transport.Envelope) (models.Record, error) {
	if env.Rejected() {
		return nil, rejected(env)
	}
	out := models.Record{}
	if err := env.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

func rejected(env *transport.Envelope) error {
	msg := env.ErrorText()
	if msg == "" {
		msg = env.Message
	}
	return apierrors.Rejected(msg)
}
