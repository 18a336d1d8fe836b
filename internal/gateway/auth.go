package gateway

import (
	"context"
	"io"
	"net/http"

	"github.com/yukikurage/taskboard-client/internal/models"
	"github.com/yukikurage/taskboard-client/internal/transport"
)

// HTTPAuthGateway is the REST implementation of AuthGateway
type HTTPAuthGateway struct {
	caller
	routes AuthRoutes
}

// NewAuthGateway creates a new AuthGateway
func NewAuthGateway(doer transport.Doer, routes AuthRoutes) AuthGateway {
	return &HTTPAuthGateway{caller: caller{doer: doer}, routes: routes}
}

func (g *HTTPAuthGateway) Login(ctx context.Context, creds models.Credentials) (any, error) {
	return g.value(transport.WithCredentials(ctx), http.MethodPost, g.routes.Login, creds)
}

func (g *HTTPAuthGateway) Register(ctx context.Context, creds models.Credentials) (any, error) {
	return g.value(transport.WithCredentials(ctx), http.MethodPost, g.routes.Register, creds)
}

func (g *HTTPAuthGateway) Logout(ctx context.Context) error {
	return g.exec(ctx, http.MethodPost, g.routes.Logout, nil)
}

func (g *HTTPAuthGateway) Refresh(ctx context.Context, refreshToken string) (any, error) {
	return g.value(ctx, http.MethodPost, g.routes.Refresh, map[string]string{"refresh_token": refreshToken})
}

// HTTPUserGateway is the REST implementation of UserGateway
type HTTPUserGateway struct {
	caller
}

// NewUserGateway creates a new UserGateway
func NewUserGateway(doer transport.Doer) UserGateway {
	return &HTTPUserGateway{caller: caller{doer: doer}}
}

func (g *HTTPUserGateway) Me(ctx context.Context) (models.Record, error) {
	return g.record(ctx, http.MethodGet, PathProfile, nil)
}

func (g *HTTPUserGateway) UploadAvatar(ctx context.Context, filename string, content io.Reader) (models.Record, error) {
	env, err := g.doer.Upload(ctx, PathAvatar, "avatar", filename, content)
	if err != nil {
		return nil, err
	}
	return recordOf(env)
}
