// Package transport is the single HTTP client every API call goes through.
// It attaches the bearer token, unwraps response envelopes and reports
// outcomes to the notification sink.
package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/yukikurage/taskboard-client/internal/constants"
	apierrors "github.com/yukikurage/taskboard-client/internal/errors"
	"github.com/yukikurage/taskboard-client/internal/notify"
)

const tracerName = "github.com/yukikurage/taskboard-client/internal/transport"

// TokenSource supplies the bearer credential and is told when the server
// rejects it.
type TokenSource interface {
	AccessToken(ctx context.Context) string
	Revoke(ctx context.Context)
}

// Doer is the subset of Client the gateways depend on.
type Doer interface {
	Do(ctx context.Context, method, path string, body any) (*Envelope, error)
	Upload(ctx context.Context, path, field, filename string, content io.Reader) (*Envelope, error)
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	sink    notify.Sink
	logger  log.FieldLogger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient uses a copy of hc for requests. The copy's Timeout is
// set to the configured request timeout; hc itself is not modified.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		clone := *hc
		c.http = &clone
	}
}

type credentialsKey struct{}

// WithCredentials marks ctx as a credential exchange (login or register).
// A 401 on such a request rejects the credentials, so the stored token is
// kept and the server's message is reported instead of the session notice.
func WithCredentials(ctx context.Context) context.Context {
	return context.WithValue(ctx, credentialsKey{}, true)
}

func isCredentialExchange(ctx context.Context) bool {
	v, _ := ctx.Value(credentialsKey{}).(bool)
	return v
}

// New creates a Client for baseURL with a fixed per-request timeout.
func New(baseURL string, timeout time.Duration, tokens TokenSource, sink notify.Sink, logger log.FieldLogger, opts ...Option) (*Client, error) {
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid API base URL %q: %w", baseURL, err)
	}
	if timeout <= 0 {
		timeout = constants.DefaultRequestTimeout
	}
	if sink == nil {
		sink = notify.Discard
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		tokens:  tokens,
		sink:    sink,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.http.Timeout = timeout
	return c, nil
}

// Do sends a JSON request and returns the unwrapped envelope. Every failure
// is reported to the sink and also returned to the caller.
func (c *Client) Do(ctx context.Context, method, path string, body any) (*Envelope, error) {
	var reader io.Reader
	if body != nil {
		data, err := sonic.ConfigStd.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	return c.send(ctx, method, path, reader, constants.ContentTypeJSON)
}

// Upload posts content as a single multipart file field.
func (c *Client) Upload(ctx context.Context, path, field, filename string, content io.Reader) (*Envelope, error) {
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create multipart field: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish multipart body: %w", err)
	}
	return c.send(ctx, http.MethodPost, path, buf, mw.FormDataContentType())
}

func (c *Client) send(ctx context.Context, method, path string, body io.Reader, contentType string) (env *Envelope, err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, method+" "+path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
		),
	)
	start := time.Now()
	status := 0
	defer func() {
		fields := log.Fields{
			"method":      method,
			"path":        path,
			"status":      status,
			"duration_ms": float64(time.Since(start)) / float64(time.Millisecond),
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, apierrors.MessageOf(err))
			c.logger.WithFields(fields).WithError(err).Debug("api.request.failed")
		} else {
			c.logger.WithFields(fields).Debug("api.request")
		}
		span.End()
	}()

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", constants.ContentTypeJSON)
	if c.tokens != nil {
		if token := c.tokens.AccessToken(ctx); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.http.Do(req)
	if err != nil {
		notify.Error(c.sink, constants.MessageNetworkError)
		return nil, apierrors.Network(err)
	}
	defer resp.Body.Close()
	status = resp.StatusCode
	span.SetAttributes(attribute.Int("http.response.status_code", status))

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		notify.Error(c.sink, constants.MessageNetworkError)
		return nil, apierrors.Network(err)
	}

	if status >= 200 && status < 300 {
		return c.success(status, raw)
	}
	return nil, c.failure(ctx, status, raw)
}

func (c *Client) success(status int, raw []byte) (*Envelope, error) {
	env, err := decodeEnvelope(raw)
	if err != nil {
		notify.Error(c.sink, constants.MessageFallback)
		return nil, apierrors.Decode(err)
	}
	if (status == http.StatusOK || status == http.StatusCreated) && !env.Rejected() {
		msg := env.Message
		if msg == "" {
			msg = constants.MessageSuccess
		}
		notify.Success(c.sink, msg)
	}
	return env, nil
}

func (c *Client) failure(ctx context.Context, status int, raw []byte) error {
	msg := ""
	if env, err := decodeEnvelope(raw); err == nil {
		msg = env.ErrorText()
		if msg == "" {
			msg = env.Message
		}
	}
	if msg == "" {
		msg = constants.MessageFallback
	}

	if status == http.StatusUnauthorized && !isCredentialExchange(ctx) {
		notify.Error(c.sink, constants.MessageUnauthorized)
		if c.tokens != nil {
			c.tokens.Revoke(ctx)
		}
		return apierrors.FromStatus(status, msg)
	}

	notify.Error(c.sink, msg)
	return apierrors.FromStatus(status, msg)
}

func (c *Client) url(path string) string {
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}
