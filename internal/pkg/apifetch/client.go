// Package apifetch is the JSON-over-HTTP transport used by the HRMS API
// client. It turns a path and optional JSON payload into a decoded value or an
// *Error.
package apifetch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultBaseURL = "http://localhost:8000"

type Options struct {
	Method string // GET when empty
	JSON   any    // marshalled as the request body when non-nil
	Query  url.Values
	Header http.Header
}

// Response is a successful raw response.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// IsJSON reports whether the response declares a JSON content type.
func (r *Response) IsJSON() bool {
	return isJSON(r.Header.Get("Content-Type"))
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout bounds each request; zero keeps the http.Client default of none.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.log = logger }
}

// New returns a Client for baseURL. Trailing slashes are trimmed and an empty
// baseURL means DefaultBaseURL.
func New(baseURL string, opts ...Option) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With("adapter", "apifetch")
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do performs the request and decodes a JSON success body into out.
// A 204 or empty body leaves out untouched. When out is a *string, a success
// body that is not JSON, or does not decode, is written to it as raw text.
func (c *Client) Do(ctx context.Context, path string, opts Options, out any) error {
	resp, err := c.DoRaw(ctx, path, opts)
	if err != nil {
		return err
	}
	if resp.Status == http.StatusNoContent || len(resp.Body) == 0 || out == nil {
		return nil
	}

	text, wantsText := out.(*string)
	if wantsText && !resp.IsJSON() {
		*text = string(resp.Body)
		return nil
	}

	if err := json.Unmarshal(resp.Body, out); err != nil {
		if wantsText {
			*text = string(resp.Body)
			return nil
		}
		return &Error{
			Kind:    KindTransport,
			Message: "Invalid response from server",
			Body:    string(resp.Body),
			Err:     fmt.Errorf("decode response: %w", err),
		}
	}
	return nil
}

// DoRaw performs the request and returns the undecoded success response.
func (c *Client) DoRaw(ctx context.Context, path string, opts Options) (*Response, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}
	target := c.url(path, opts.Query)

	var body io.Reader
	if opts.JSON != nil {
		payload, err := json.Marshal(opts.JSON)
		if err != nil {
			return nil, &Error{Kind: KindTransport, Message: "Failed to encode request", Err: err}
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: "Failed to create request", Err: err}
	}
	for k, values := range opts.Header {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	if opts.JSON != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.DebugContext(ctx, "api request failed", slog.String("method", method), slog.String("url", target), slog.String("error", err.Error()))
		return nil, &Error{Kind: KindTransport, Message: "Request failed: " + err.Error(), Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: "Failed to read response", Err: err}
	}

	c.log.DebugContext(ctx, "api request",
		slog.String("method", method),
		slog.String("url", target),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newStatusError(resp.StatusCode, resp.Header.Get("Content-Type"), data)
	}

	return &Response{Status: resp.StatusCode, Header: resp.Header, Body: data}, nil
}

func (c *Client) url(path string, query url.Values) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	target := c.baseURL + path
	if len(query) > 0 {
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		target += sep + query.Encode()
	}
	return target
}

func newStatusError(status int, contentType string, data []byte) *Error {
	e := &Error{
		Kind:    Classify(status),
		Status:  status,
		Message: fmt.Sprintf("Request failed (%d)", status),
	}
	if len(data) == 0 {
		return e
	}
	if !isJSON(contentType) {
		e.Body = string(data)
		return e
	}

	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		e.Body = string(data)
		return e
	}
	e.Body = parsed
	if detail := detailOf(parsed); detail != "" {
		e.Message = detail
	}
	return e
}

// detailOf extracts "detail" from an error body. A list of {"msg": ...}
// entries is joined with " | ".
func detailOf(body any) string {
	m, ok := body.(map[string]any)
	if !ok {
		return ""
	}
	switch d := m["detail"].(type) {
	case string:
		return d
	case []any:
		var msgs []string
		for _, item := range d {
			if entry, ok := item.(map[string]any); ok {
				if msg, ok := entry["msg"].(string); ok && msg != "" {
					msgs = append(msgs, msg)
				}
			}
		}
		return strings.Join(msgs, " | ")
	}
	return ""
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}
