// Package request is the shared HTTP pipeline every backend call goes
// through. It fixes the base URL and timeout, forwards the request id,
// and normalizes the {code, message, data} envelope into success or an
// error. Calls are single-attempt: no retry, no backoff.
package request

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vesaa/staffdesk/internal/logging"
	"github.com/vesaa/staffdesk/internal/models"
)

// DefaultTimeout applies when New is given a zero timeout.
const DefaultTimeout = 10 * time.Second

// maxBody bounds how much of a response body is read.
const maxBody = 8 << 20

// Client is the shared transport. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client. Its Timeout is kept.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New returns a Client resolving every path against baseURL.
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Call sends one request and decodes the envelope. On code 200 the
// envelope is returned unchanged. Any other code yields an *APIError;
// a request that never produced an envelope yields a *TransportError.
func Call[T any](ctx context.Context, c *Client, method, path string, query url.Values, body any) (*models.Envelope[T], error) {
	log := logging.FromContext(ctx).WithFields(logrus.Fields{
		"backend-method": method,
		"backend-path":   path,
	})

	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.WithError(err).Error("Network Error")
		return nil, &TransportError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		log.WithError(err).Error("Network Error")
		return nil, &TransportError{Method: method, Path: path, Status: resp.StatusCode, Err: err}
	}

	var env models.Envelope[T]
	if err := json.Unmarshal(raw, &env); err != nil {
		err = fmt.Errorf("decoding envelope: %w", err)
		log.WithError(err).WithField("status", resp.StatusCode).Error("Network Error")
		return nil, &TransportError{Method: method, Path: path, Status: resp.StatusCode, Err: err}
	}

	log = log.WithFields(logrus.Fields{
		"status":   resp.StatusCode,
		"code":     env.Code,
		"duration": time.Since(start).String(),
	})
	if !env.OK() {
		log.Errorf("API Error: %s", env.Message)
		return nil, &APIError{Code: env.Code, Message: env.Message}
	}
	log.Debug("backend call ok")
	return &env, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	target := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		rd = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, rd)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if id, ok := logging.RequestID(ctx); ok {
		req.Header.Set(logging.RequestIDHeader, id)
	}
	return req, nil
}
