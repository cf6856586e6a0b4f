package openai

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
	"unicode/utf8"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"

	// maxResponseBytes bounds the buffered completion body.
	maxResponseBytes = 8 << 20

	// excerptRunes is how much of an unparseable body is echoed back in errors.
	excerptRunes = 200
)

// TransportError reports a connection-level failure: DNS, TLS, reset, deadline.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "네트워크 오류: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the failure was caused by a deadline.
func (e *TransportError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

// DecodeError reports an upstream body that is not valid JSON.
type DecodeError struct {
	StatusCode int
	Excerpt    string
}

func (e *DecodeError) Error() string {
	return "OpenAI 응답 파싱 실패. 응답 내용: " + e.Excerpt
}

// BodyExcerpt returns the leading part of the raw upstream body.
func (e *DecodeError) BodyExcerpt() string {
	return e.Excerpt
}

// Client posts pre-serialized payloads to the Chat Completions endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSpace(baseURL)
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a Client. The default HTTP client has no timeout of its own;
// the invocation context bounds each call.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) resolvedHTTPClient() *http.Client {
	if c.httpClient != nil {
		return c.httpClient
	}
	return http.DefaultClient
}

func chatURL(baseURL string) string {
	base := strings.TrimRight(baseURL, "/")
	if base == "" {
		base = defaultBaseURL
	}
	if strings.HasSuffix(base, "/v1") {
		return base + "/chat/completions"
	}
	return base + "/v1/chat/completions"
}

// Post sends payload with a single attempt and returns the buffered response body once
// it is known to be valid JSON. Non-2xx responses are returned like any other, since the
// provider reports its errors as JSON bodies.
func (c *Client) Post(ctx context.Context, apiKey string, payload []byte) (json.RawMessage, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("openai: api key must not be empty")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, chatURL(c.baseURL), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("openai: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	res, err := c.resolvedHTTPClient().Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer func() { _ = res.Body.Close() }()

	buf, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("read response body: %w", err)}
	}
	if !json.Valid(buf) {
		return nil, &DecodeError{StatusCode: res.StatusCode, Excerpt: excerpt(buf, excerptRunes)}
	}
	return json.RawMessage(buf), nil
}

// excerpt returns at most n runes of b without splitting a multi-byte sequence.
func excerpt(b []byte, n int) string {
	s := strings.ToValidUTF8(string(b), "�")
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
