// Package apiclient is a thin JSON client for the hotel REST backend. Every
// call takes a context and returns *Error for non-2xx responses.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/quanganh208/hotel-management-front-end-sub002/internal/config"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/metrics"
)

const maxResponseBytes = 4 << 20

// Error is a non-2xx response from the backend.
type Error struct {
	Op      string
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: backend returned %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: backend returned %d: %s", e.Op, e.Status, e.Message)
}

func (e *Error) StatusCode() int {
	return e.Status
}

func (e *Error) UserMessage() string {
	return e.Message
}

type Client struct {
	baseURL string
	http    *http.Client
	token   string
	log     zerolog.Logger
	metrics *metrics.Metrics
}

func New(cfg config.BackendConfig, log zerolog.Logger, m *metrics.Metrics) *Client {
	return NewWithHTTPClient(cfg.BaseURL, &http.Client{Timeout: cfg.Timeout}, log, m)
}

func NewWithHTTPClient(baseURL string, hc *http.Client, log zerolog.Logger, m *metrics.Metrics) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    hc,
		log:     log,
		metrics: m,
	}
}

// WithToken returns a copy of the client that sends token as a bearer credential.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

func (c *Client) do(ctx context.Context, op, method, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.ObserveBackendCall(op, "error", time.Since(start))
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()
	c.metrics.ObserveBackendCall(op, strconv.Itoa(resp.StatusCode), time.Since(start))

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%s: read response: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{Op: op, Status: resp.StatusCode, Message: errorMessage(raw)}
		c.log.Debug().
			Str("op", op).
			Int("status", resp.StatusCode).
			Str("message", apiErr.Message).
			Msg("backend call failed")
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(unwrapEnvelope(raw), out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

// unwrapEnvelope returns the "data" member of {"data": ...} bodies and raw otherwise.
func unwrapEnvelope(raw []byte) []byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return raw
	}
	var env map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return raw
	}
	data, ok := env["data"]
	if !ok {
		return raw
	}
	for key := range env {
		if _, meta := envelopeKeys[key]; !meta {
			return raw
		}
	}
	return data
}

var envelopeKeys = map[string]struct{}{
	"data":       {},
	"message":    {},
	"meta":       {},
	"status":     {},
	"statusCode": {},
	"success":    {},
}

// errorMessage extracts "message" (string or list) or "error" from an error body.
func errorMessage(raw []byte) string {
	var body struct {
		Message json.RawMessage `json:"message"`
		Error   string          `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		text := strings.TrimSpace(string(raw))
		if len(text) > 200 {
			text = text[:200]
		}
		return text
	}

	if len(body.Message) > 0 {
		var single string
		if err := json.Unmarshal(body.Message, &single); err == nil && single != "" {
			return single
		}
		var list []string
		if err := json.Unmarshal(body.Message, &list); err == nil && len(list) > 0 {
			return strings.Join(list, "; ")
		}
	}
	return body.Error
}

func escape(segment string) string {
	return url.PathEscape(segment)
}
