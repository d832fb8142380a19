package arango

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/arangotui/arangotui/internal/types"
)

const (
	// DefaultTimeout bounds a single round trip when the connection does not set one
	DefaultTimeout = 30 * time.Second

	// maxErrorBody is how much of a failed response body is kept in the error message
	maxErrorBody = 256
)

// Recorder receives one entry per completed gateway operation
type Recorder interface {
	Record(entry types.HistoryEntry) error
}

// Client performs read-only calls against the ArangoDB HTTP API.
// Every call is independent: no retry, no caching.
type Client struct {
	conn     types.Connection
	http     *http.Client
	logger   *zap.Logger
	recorder Recorder
}

// NewClient creates a client for the given connection
func NewClient(conn types.Connection, logger *zap.Logger) (*Client, error) {
	if strings.TrimSpace(conn.Endpoint) == "" {
		return nil, fmt.Errorf("endpoint is required")
	}
	if _, err := url.Parse(conn.Endpoint); err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", conn.Endpoint, err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		conn:   conn,
		http:   buildHTTPClient(conn),
		logger: logger,
	}, nil
}

// SetRecorder attaches a history recorder; nil disables recording
func (c *Client) SetRecorder(r Recorder) {
	c.recorder = r
}

// Connection returns the connection the client was built with
func (c *Client) Connection() types.Connection {
	return c.conn
}

// buildHTTPClient creates an HTTP client with relaxed certificate validation when requested
func buildHTTPClient(conn types.Connection) *http.Client {
	timeout := DefaultTimeout
	if conn.TimeoutSec > 0 {
		timeout = time.Duration(conn.TimeoutSec) * time.Second
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{
		InsecureSkipVerify: conn.InsecureSkipVerify, //nolint:gosec // operator opt-in
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}

// FetchError describes a failed gateway operation.
// Transport, status and decode failures all surface as a FetchError.
type FetchError struct {
	Op     string
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s returned status %d: %v", e.Op, e.URL, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// baseURL returns the endpoint without a trailing slash
func (c *Client) baseURL() string {
	return strings.TrimRight(c.conn.Endpoint, "/")
}

// dbURL builds a database-scoped API URL
func (c *Client) dbURL(database string, segments ...string) string {
	var sb strings.Builder
	sb.WriteString(c.baseURL())
	sb.WriteString("/_db/")
	sb.WriteString(url.PathEscape(database))
	for _, s := range segments {
		sb.WriteString("/")
		sb.WriteString(s)
	}
	return sb.String()
}

// getJSON issues a GET with basic auth and decodes the body into out
func (c *Client) getJSON(ctx context.Context, op, rawURL string, auth bool, out any) error {
	return c.doJSON(ctx, op, http.MethodGet, rawURL, nil, auth, out)
}

// doJSON performs one round trip, requires a 2xx status and decodes the JSON payload
func (c *Client) doJSON(ctx context.Context, op, method, rawURL string, body any, auth bool, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &FetchError{Op: op, URL: rawURL, Err: fmt.Errorf("failed to encode request: %w", err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return &FetchError{Op: op, URL: rawURL, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		req.SetBasicAuth(c.conn.Username, c.conn.Password)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("arango request failed",
			zap.String("op", op),
			zap.String("url", rawURL),
			zap.Error(err),
		)
		return &FetchError{Op: op, URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("arango request",
		zap.String("op", op),
		zap.String("method", method),
		zap.String("url", rawURL),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &FetchError{
			Op:     op,
			URL:    rawURL,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("%s", strings.TrimSpace(string(snippet))),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &FetchError{Op: op, URL: rawURL, Status: resp.StatusCode, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	return nil
}

// record stores a history entry for a finished operation
func (c *Client) record(op, database, target string, start time.Time, items int, err error) {
	if c.recorder == nil {
		return
	}

	entry := types.HistoryEntry{
		Timestamp:  start.Local().Format(time.RFC3339),
		Operation:  op,
		Database:   database,
		Target:     target,
		Endpoint:   c.baseURL(),
		DurationMs: time.Since(start).Milliseconds(),
		Items:      items,
	}
	if err != nil {
		entry.Error = err.Error()
	}

	if recErr := c.recorder.Record(entry); recErr != nil {
		c.logger.Warn("failed to record history entry", zap.String("op", op), zap.Error(recErr))
	}
}
