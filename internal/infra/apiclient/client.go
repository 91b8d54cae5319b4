package apiclient

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/domain"
	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/infra/httpclient"
	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/ports"
)

const RequestIDHeader = "X-Request-ID"

// Client calls the Big Mann Entertainment REST API under <backend>/api.
// It attaches the stored bearer token and turns non-2xx responses into *domain.APIError.
type Client struct {
	base     string
	exec     *httpclient.Executor
	sessions ports.SessionStore
	log      *slog.Logger
	newID    func() string
}

type Option func(*Client)

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithRequestID overrides X-Request-ID generation.
func WithRequestID(gen func() string) Option {
	return func(c *Client) { c.newID = gen }
}

func WithExecutor(e *httpclient.Executor) Option {
	return func(c *Client) { c.exec = e }
}

// New builds a client for apiBase (for example "http://localhost:8001/api").
// sessions may be nil, in which case calls are always anonymous.
func New(apiBase string, sessions ports.SessionStore, opts ...Option) *Client {
	c := &Client{
		base:     apiBase,
		exec:     httpclient.NewExecutor(),
		sessions: sessions,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ ports.APICaller = (*Client)(nil)

// Do sends one call. There are no retries.
func (c *Client) Do(ctx context.Context, call domain.Call) (domain.Response, error) {
	req, err := httpclient.BuildRequest(ctx, c.base, call)
	if err != nil {
		return domain.Response{}, err
	}

	reqID := c.newID()
	req.Header.Set(RequestIDHeader, reqID)

	authed := false
	if !call.Anonymous && c.sessions != nil {
		s, lerr := c.sessions.Load()
		if lerr != nil {
			c.log.Warn("api.session.load_failed", "error", lerr)
		} else if tok := s.Bearer(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
			authed = true
		}
	}

	log := c.log.With("method", req.Method, "path", call.Path, "request_id", reqID)
	log.Debug("api.request", "authed", authed, "multipart", call.Multipart())

	res, err := c.exec.Do(ctx, req)
	if err != nil {
		te := domain.NewTransportError(err)
		log.Warn("api.transport_failed", "kind", te.Kind, "error", err, "duration_ms", res.Duration.Milliseconds())
		return domain.Response{}, &domain.OpError{
			Op:   "api.call",
			Kind: domain.KindExecution,
			Path: call.Path,
			Err:  te,
		}
	}

	log.Info("api.response", "status", res.Status, "duration_ms", res.Duration.Milliseconds(), "truncated", res.Truncated)

	if res.Status >= 200 && res.Status < 300 {
		return domain.Response{
			Status:    res.Status,
			Body:      res.BodyBytes,
			Truncated: res.Truncated,
			Duration:  res.Duration,
			RequestID: reqID,
		}, nil
	}

	apiErr := &domain.APIError{Status: res.Status, Detail: DecodeDetail(res.BodyBytes)}
	kind := domain.KindAPI

	if res.Status == http.StatusUnauthorized {
		kind = domain.KindUnauthorized
		if authed {
			if cerr := c.sessions.Clear(); cerr != nil {
				log.Error("api.session.clear_failed", "error", cerr)
			} else {
				apiErr.SessionCleared = true
				log.Info("api.session.cleared")
			}
		}
	}

	return domain.Response{}, &domain.OpError{
		Op:   "api.call",
		Kind: kind,
		Path: call.Path,
		Err:  apiErr,
	}
}
