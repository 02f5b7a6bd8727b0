// Package backend talks to the device's HTTP endpoints.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"lightdeck/debug"
	"lightdeck/panel"
)

var (
	// ErrTransport wraps failures to reach the backend at all
	ErrTransport = errors.New("backend unreachable")
	// ErrRejected matches any non-2xx response
	ErrRejected = errors.New("backend rejected request")
)

// StatusError is returned for non-2xx responses
type StatusError struct {
	Op     string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status %d", e.Op, e.Status)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrRejected
}

// Client is an HTTP client for the device's select and save endpoints
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithTimeout bounds each request. Zero means no limit.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a client for the backend at baseURL
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := ParseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{},
		logger:     debug.Logger("backend"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ParseBaseURL accepts "host", "host:port" or a full http(s) URL
func ParseBaseURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("empty backend url")
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("backend url %q: unsupported scheme %q", raw, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("backend url %q: missing host", raw)
	}
	return u, nil
}

// BaseURL returns the backend address
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Select asks the device to play predefined pattern index
func (c *Client) Select(ctx context.Context, index int) error {
	u := c.baseURL.JoinPath("select")
	u.RawQuery = url.Values{"pattern": {strconv.Itoa(index)}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("create select request: %w", err)
	}

	if err := c.do(req, "select"); err != nil {
		return err
	}
	c.logger.Info("pattern selected", "pattern", index)
	return nil
}

// Save stores a custom pattern on the device
func (c *Client) Save(ctx context.Context, sub panel.Submission) error {
	data, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("marshal submission: %w", err)
	}

	u := c.baseURL.JoinPath("save")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create save request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if err := c.do(req, "save"); err != nil {
		return err
	}
	c.logger.Info("pattern saved", "name", sub.Name, "stages", len(sub.Stages))
	return nil
}

func (c *Client) do(req *http.Request, op string) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("request failed", "op", op, "error", err)
		return fmt.Errorf("%s: %w: %w", op, ErrTransport, err)
	}
	defer resp.Body.Close()
	// Drain so the connection can be reused; the body carries nothing we need.
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("request rejected", "op", op, "status", resp.StatusCode)
		return &StatusError{Op: op, Status: resp.StatusCode}
	}
	return nil
}
