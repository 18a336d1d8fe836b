// Package app wires the client together: durable storage, notifications,
// the token vault, transport, gateways, the session manager and the stores.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/yukikurage/taskboard-client/internal/config"
	"github.com/yukikurage/taskboard-client/internal/gateway"
	"github.com/yukikurage/taskboard-client/internal/notify"
	"github.com/yukikurage/taskboard-client/internal/session"
	"github.com/yukikurage/taskboard-client/internal/storage"
	"github.com/yukikurage/taskboard-client/internal/store"
	"github.com/yukikurage/taskboard-client/internal/transport"
)

// App holds the wired client.
type App struct {
	Config        *config.Config
	Logger        *log.Logger
	Session       *session.Manager
	Notifications *notify.Recorder

	storage storage.Storage
	redis   *redis.Client
	sink    notify.Sink
	boards  gateway.BoardGateway
	columns gateway.ColumnGateway
	tasks   gateway.TaskGateway
}

// Option customizes New.
type Option func(*options)

type options struct {
	logger  *log.Logger
	storage storage.Storage
	sinks   []notify.Sink
	opts    []transport.Option
}

// WithLogger replaces the logger built from the configuration.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithStorage replaces the storage selected by STORAGE_DRIVER.
func WithStorage(s storage.Storage) Option {
	return func(o *options) { o.storage = s }
}

// WithSink adds a notification sink.
func WithSink(s notify.Sink) Option {
	return func(o *options) { o.sinks = append(o.sinks, s) }
}

// WithTransportOptions passes options through to the transport client.
func WithTransportOptions(opts ...transport.Option) Option {
	return func(o *options) { o.opts = append(o.opts, opts...) }
}

// NewLogger builds the logrus logger described by LOG_LEVEL and LOG_FORMAT.
func NewLogger(cfg *config.Config) *log.Logger {
	logger := log.New()
	logger.SetOutput(os.Stderr)
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	if cfg.LogFormat == "json" {
		logger.SetFormatter(&log.JSONFormatter{})
	} else {
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return logger
}

// New builds the client for cfg and restores any stored session.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = NewLogger(cfg)
	}

	a := &App{
		Config:        cfg,
		Logger:        o.logger,
		Notifications: notify.NewRecorder(),
		storage:       o.storage,
	}

	if a.storage == nil {
		s, err := storage.Open(cfg)
		if err != nil {
			return nil, err
		}
		a.storage = s
	}

	sinks := notify.Fanout{notify.NewLogSink(a.Logger), a.Notifications}
	sinks = append(sinks, o.sinks...)
	if cfg.NotifyChannel != "" {
		a.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		sinks = append(sinks, notify.NewRedisSink(a.redis, cfg.NotifyChannel, a.Logger))
	}
	a.sink = sinks

	vault := session.NewVault(a.storage, a.Logger)
	client, err := transport.New(cfg.APIBaseURL, cfg.RequestTimeout, vault, sinks, a.Logger, o.opts...)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	a.boards = gateway.NewBoardGateway(client)
	a.columns = gateway.NewColumnGateway(client)
	a.tasks = gateway.NewTaskGateway(client)
	a.Session = session.NewManager(
		vault,
		gateway.NewAuthGateway(client, gateway.RoutesFor(cfg.AuthRouteStyle)),
		gateway.NewUserGateway(client),
		sinks,
		a.Logger,
	)

	if err := a.Session.RestoreSession(ctx); err != nil {
		a.Logger.WithError(err).Debug("stored session discarded")
	}
	return a, nil
}

// Boards returns a new board store.
func (a *App) Boards() *store.BoardStore {
	return store.NewBoardStore(a.boards, a.sink, a.Logger)
}

// Columns returns a new column store scoped to boardID.
func (a *App) Columns(boardID string) *store.ColumnStore {
	return store.NewColumnStore(boardID, a.boards, a.columns, a.sink, a.Logger)
}

// Tasks returns a new task store scoped to columnID.
func (a *App) Tasks(columnID string) *store.TaskStore {
	return store.NewTaskStore(columnID, a.tasks, a.sink, a.Logger)
}

// Close releases storage and redis connections.
func (a *App) Close() error {
	var errs []error
	if a.storage != nil {
		if err := a.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close storage: %w", err))
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	return errors.Join(errs...)
}
