package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/memberclient/internal/common"
	"github.com/dmitrijs2005/memberclient/internal/logging"
	"github.com/google/uuid"
)

// DefaultTimeout bounds every request made by HTTPClient.
const DefaultTimeout = 10 * time.Second

// Request describes one outbound call.
type Request struct {
	Method string
	Path   string
	// Body, when non-nil, is sent as JSON.
	Body any
	// Authenticated routes the request through AuthClient when dispatched
	// via API.Do.
	Authenticated bool
	// Fallback is the message used for a non-2xx response whose payload
	// has none.
	Fallback string
}

// HTTPClient issues requests to public endpoints. It makes exactly one
// attempt per call and maps every failure to an *Error.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	logger     logging.Logger
	metrics    *Metrics
}

type Option func(*HTTPClient)

// WithTimeout overrides DefaultTimeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying *http.Client (custom transports,
// tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) {
		if l != nil {
			c.logger = l
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(c *HTTPClient) { c.metrics = m }
}

func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		timeout:    DefaultTimeout,
		logger:     logging.Nop{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Timeout returns the per-request bound.
func (c *HTTPClient) Timeout() time.Duration {
	return c.timeout
}

// Do sends r without credentials and returns the raw response body.
func (c *HTTPClient) Do(ctx context.Context, r Request) ([]byte, error) {
	return c.send(ctx, r, nil, false)
}

// send performs a single attempt. Extra headers are added to the request.
// preferErrorField selects which payload field ("error" or "message") wins
// when both are present.
func (c *HTTPClient) send(ctx context.Context, r Request, header http.Header, preferErrorField bool) ([]byte, error) {
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}

	requestID := uuid.NewString()
	log := c.logger.With("request_id", requestID, "method", method, "path", r.Path)
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if r.Body != nil {
		b, err := json.Marshal(r.Body)
		if err != nil {
			return nil, c.fail(ctx, log, method, start, &Error{Kind: KindClient, Message: "Invalid request payload", Err: err})
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+r.Path, body)
	if err != nil {
		return nil, c.fail(ctx, log, method, start, &Error{Kind: KindClient, Message: "Invalid request", Err: err})
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, requestID)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.fail(ctx, log, method, start, transportError(ctx, err))
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.fail(ctx, log, method, start, transportError(ctx, err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.fail(ctx, log, method, start, &Error{
			Kind:    kindForStatus(resp.StatusCode),
			Message: serverMessage(payload, r.Fallback, resp.StatusCode, preferErrorField),
			Status:  resp.StatusCode,
		})
	}

	d := time.Since(start)
	c.metrics.observe(method, "ok", d)
	log.Debug(ctx, "request completed", "status", resp.StatusCode, "duration", d)
	return payload, nil
}

func (c *HTTPClient) fail(ctx context.Context, log logging.Logger, method string, start time.Time, e *Error) *Error {
	d := time.Since(start)
	c.metrics.observe(method, string(e.Kind), d)
	log.Warn(ctx, "request failed", "kind", e.Kind, "status", e.Status, "duration", d, "error", e.Message)
	return e
}

// transportError classifies a failure that produced no usable response.
func transportError(ctx context.Context, err error) *Error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(ctx.Err(), context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		return &Error{Kind: KindTimeout, Message: MsgTimeout, Err: err}
	}
	return &Error{Kind: KindNetwork, Message: MsgNetwork, Err: err}
}

type errorPayload struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func serverMessage(payload []byte, fallback string, status int, preferErrorField bool) string {
	var p errorPayload
	if err := json.Unmarshal(payload, &p); err == nil {
		first, second := p.Message, p.Error
		if preferErrorField {
			first, second = second, first
		}
		if first != "" {
			return first
		}
		if second != "" {
			return second
		}
	}
	if fallback != "" {
		return fallback
	}
	return fmt.Sprintf("Request failed with status %d", status)
}
