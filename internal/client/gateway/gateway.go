package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sosens/sosens/internal/common"
	"github.com/sosens/sosens/internal/logging"
)

// DefaultTimeout bounds each call. The hosted backend sleeps when idle and
// needs a long first response after waking up.
const DefaultTimeout = 30 * time.Second

const maxResponseBytes = 8 << 20

// TokenSource yields the bearer token for outbound calls. An empty token
// means the call goes out without an Authorization header.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Request describes one backend call. Path is relative to the base URL.
// Body is JSON-encoded; Form, when set, is sent url-encoded instead.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	Form   url.Values
	Header http.Header
}

type Gateway struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	timeout    time.Duration
	logger     logging.Logger
	userAgent  string
	requestID  func() string
}

type Option func(*Gateway)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(g *Gateway) { g.httpClient = c }
}

// WithTimeout sets the per-call timeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(g *Gateway) {
		if d > 0 {
			g.timeout = d
		}
	}
}

func WithLogger(l logging.Logger) Option {
	return func(g *Gateway) { g.logger = l }
}

func WithUserAgent(ua string) Option {
	return func(g *Gateway) { g.userAgent = ua }
}

// New builds a Gateway for the API rooted at baseURL. tokens may be nil
// for a client that never authenticates.
func New(baseURL string, tokens TokenSource, opts ...Option) *Gateway {
	g := &Gateway{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		tokens:     tokens,
		timeout:    DefaultTimeout,
		logger:     logging.Discard(),
		userAgent:  "sosens-cli",
		requestID:  func() string { return uuid.NewString() },
	}
	for _, o := range opts {
		o(g)
	}
	g.logger = g.logger.With("module", "gateway")
	return g
}

// BaseURL returns the API prefix calls are joined beneath.
func (g *Gateway) BaseURL() string {
	return g.baseURL
}

// Do performs r and decodes a successful JSON response into out. A nil out
// discards the body. Transport, server and decode failures are returned
// as *Error; a request that cannot be built is a plain error.
func (g *Gateway) Do(ctx context.Context, r Request, out any) error {
	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	target := withQuery(JoinURL(g.baseURL, r.Path), r.Query)
	reqID := g.requestID()
	log := g.logger.With("method", r.Method, "url", target, "request_id", reqID)

	req, err := g.newRequest(callCtx, r, target)
	if err != nil {
		return err
	}
	req.Header.Set(common.RequestIDHeaderName, reqID)

	if token := g.token(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	log.Debug(ctx, "api call")
	start := time.Now()

	resp, err := g.httpClient.Do(req)
	if err != nil {
		gerr := transportError(ctx, callCtx, err)
		log.Warn(ctx, "api call failed", "kind", gerr.Kind.String(), "error", err)
		return gerr
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		gerr := transportError(ctx, callCtx, err)
		log.Warn(ctx, "reading response failed", "kind", gerr.Kind.String(), "error", err)
		return gerr
	}

	log = log.With("status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := serverMessage(resp.StatusCode, body)
		log.Warn(ctx, "api error", "message", msg)
		return &Error{Kind: KindServer, Status: resp.StatusCode, Message: msg}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		log.Debug(ctx, "api success")
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		log.Warn(ctx, "api response not decodable", "error", err)
		return &Error{
			Kind:    KindDecode,
			Status:  resp.StatusCode,
			Message: "Invalid response from server",
			Err:     err,
		}
	}

	log.Debug(ctx, "api success")
	return nil
}

func (g *Gateway) newRequest(ctx context.Context, r Request, target string) (*http.Request, error) {
	var (
		body        io.Reader
		contentType = "application/json"
	)

	switch {
	case r.Form != nil:
		body = strings.NewReader(r.Form.Encode())
		contentType = "application/x-www-form-urlencoded"
	case r.Body != nil:
		b, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("encode %s body: %w", r.Path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", r.Path, err)
	}

	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", g.userAgent)
	for k, vs := range r.Header {
		req.Header.Del(k)
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	return req, nil
}

// token reads the current bearer token. A failing source is logged and
// treated as "no token" so the call still reaches the backend, which then
// answers with its own authorization error.
func (g *Gateway) token(ctx context.Context) string {
	if g.tokens == nil {
		return ""
	}
	t, err := g.tokens.Token(ctx)
	if err != nil {
		g.logger.Warn(ctx, "token source failed", "error", err)
		return ""
	}
	return t
}

// transportError classifies a failure that happened before a status code
// was available. parent is the caller's context, callCtx the one carrying
// the gateway timeout.
func transportError(parent, callCtx context.Context, err error) *Error {
	if parent.Err() != nil && !errors.Is(parent.Err(), context.DeadlineExceeded) {
		return &Error{Kind: KindCanceled, Message: "Request canceled", Err: err}
	}

	var netErr net.Error
	if errors.Is(callCtx.Err(), context.DeadlineExceeded) ||
		errors.Is(err, context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		return &Error{Kind: KindTimeout, Message: timeoutMessage, Err: err}
	}

	return &Error{
		Kind:    KindNetwork,
		Message: "Unable to reach the server. Check your connection and try again.",
		Err:     err,
	}
}
