package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nyaysetu/nyaysetu-client/internal/client/session"
	"github.com/nyaysetu/nyaysetu-client/internal/common"
	"github.com/nyaysetu/nyaysetu-client/internal/logging"
)

const (
	headerContentType = "Content-Type"
	headerAccept      = "Accept"
	mimeJSON          = "application/json"

	defaultTimeout = 30 * time.Second
)

// Request describes one outgoing call. It is built per call and not retained.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   Body
}

// Response is a fully buffered 2xx response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Decode unmarshals the JSON body into v. An empty body leaves v untouched.
func (r *Response) Decode(v any) error {
	if len(r.Body) == 0 {
		return nil
	}
	return json.Unmarshal(r.Body, v)
}

// Client is safe for concurrent use; its defaults are immutable after New.
type Client struct {
	baseURL string
	headers http.Header
	creds   session.CredentialProvider
	http    *http.Client
	log     logging.Logger
}

type Option func(*Client)

// WithCredentials sets the token source. Without it requests are sent
// unauthenticated.
func WithCredentials(p session.CredentialProvider) Option {
	return func(c *Client) { c.creds = p }
}

// WithHTTPClient replaces the underlying *http.Client. With an empty base
// URL its Transport must know how to route bare paths.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New configures a Client. baseURL may be empty, meaning requests go to
// bare paths on the same origin. defaultHeaders are copied and layered over
// the JSON defaults.
func New(baseURL string, defaultHeaders http.Header, opts ...Option) *Client {
	h := http.Header{}
	h.Set(headerContentType, mimeJSON)
	h.Set(headerAccept, mimeJSON)
	for k, vs := range defaultHeaders {
		h.Del(k)
		for _, v := range vs {
			h.Add(k, v)
		}
	}

	c := &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		headers: h,
		http:    &http.Client{Timeout: defaultTimeout},
		log:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With("component", "httpclient")
	return c
}

// Do sends r and returns the buffered response or an *Error.
func (c *Client) Do(ctx context.Context, r Request) (*Response, error) {
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}
	fail := func(op string, status int, body []byte, msg string, err error) *Error {
		return &Error{Op: op, Method: method, Path: r.Path, StatusCode: status, Message: msg, Body: body, Err: err}
	}

	req, err := c.build(ctx, method, r)
	if err != nil {
		return nil, fail(OpEncode, 0, nil, "", err)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug(ctx, "request failed", "method", method, "path", r.Path, "error", err)
		return nil, fail(OpTransport, 0, nil, "", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fail(OpRead, 0, nil, "", fmt.Errorf("read body: %w", err))
	}

	c.log.Debug(ctx, "request completed",
		"method", method, "path", r.Path, "status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fail(OpStatus, resp.StatusCode, body, messageFrom(body, resp.Status), nil)
	}
	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: body}, nil
}

func (c *Client) build(ctx context.Context, method string, r Request) (*http.Request, error) {
	payload, encodedType, err := encode(r.Body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolve(r.Path, r.Query), payload)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header = c.headers.Clone()
	for k, vs := range r.Header {
		req.Header.Del(k)
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	c.applyAuth(ctx, req.Header)
	applyContentType(req.Header, r.Body, encodedType)
	return req, nil
}

func (c *Client) applyAuth(ctx context.Context, h http.Header) {
	h.Del(common.AuthorizationHeader)
	if c.creds == nil {
		return
	}
	if token, ok := c.creds.Token(ctx); ok {
		h.Set(common.AuthorizationHeader, common.BearerPrefix+token)
	}
}

// applyContentType enforces the content-type contract. For multipart bodies
// every existing Content-Type is dropped first, so applying it twice yields
// the same header set.
func applyContentType(h http.Header, body Body, encodedType string) {
	switch body.(type) {
	case Multipart:
		h.Del(headerContentType)
		if encodedType != "" {
			h.Set(headerContentType, encodedType)
		}
	case JSON:
		if h.Get(headerContentType) == "" {
			h.Set(headerContentType, mimeJSON)
		}
	}
}

func (c *Client) resolve(path string, query url.Values) string {
	u := path
	if c.baseURL != "" {
		u = c.baseURL + "/" + strings.TrimLeft(path, "/")
	}
	if len(query) > 0 {
		sep := "?"
		if strings.Contains(u, "?") {
			sep = "&"
		}
		u += sep + query.Encode()
	}
	return u
}

// Doer sends one request. *Client is the production implementation.
type Doer interface {
	Do(ctx context.Context, r Request) (*Response, error)
}

// Call sends r through d and decodes a 2xx JSON body into dest when dest is
// non-nil. A body that does not decode is reported as an OpDecode *Error.
func Call(ctx context.Context, d Doer, r Request, dest any) error {
	resp, err := d.Do(ctx, r)
	if err != nil {
		return err
	}
	if dest == nil {
		return nil
	}
	if err := resp.Decode(dest); err != nil {
		method := r.Method
		if method == "" {
			method = http.MethodGet
		}
		return &Error{Op: OpDecode, Method: method, Path: r.Path, Body: resp.Body, Err: err}
	}
	return nil
}
