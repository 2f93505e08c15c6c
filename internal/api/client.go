package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const DefaultTokenHeader = "x-access-token"

// Client envuelve net/http para hablar JSON con la API REST de perfiles.
type Client struct {
	baseURL     string
	tokenHeader string
	client      *http.Client
	logger      *zap.Logger
}

// Option ajusta un Client al construirlo.
type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.client = hc
		}
	}
}

func WithTokenHeader(name string) Option {
	return func(c *Client) {
		if name = strings.TrimSpace(name); name != "" {
			c.tokenHeader = name
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient construye un cliente apuntando a baseURL.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		tokenHeader: DefaultTokenHeader,
		client:      &http.Client{Timeout: timeout},
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Get(ctx context.Context, path, token string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, token, out)
}

func (c *Client) Post(ctx context.Context, path string, body any, token string, out any) error {
	return c.do(ctx, http.MethodPost, path, body, token, out)
}

func (c *Client) Put(ctx context.Context, path string, body any, token string, out any) error {
	return c.do(ctx, http.MethodPut, path, body, token, out)
}

func (c *Client) Delete(ctx context.Context, path, token string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, token, out)
}

func (c *Client) do(ctx context.Context, method, path string, body any, token string, out any) error {
	var reader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return &Error{Message: fmt.Sprintf("marshal request: %v", err), Err: err}
		}
		reader = bytes.NewReader(bodyBytes)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return &Error{Message: fmt.Sprintf("create request: %v", err), Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set(c.tokenHeader, token)
	}

	c.logger.Debug("api request",
		zap.String("method", method),
		zap.String("url", url),
		zap.Bool("authenticated", token != ""),
	)

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("api request failed", zap.String("url", url), zap.Error(err))
		return &Error{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Message: fmt.Sprintf("read response: %v", err), Err: err}
	}

	c.logger.Debug("api response", zap.String("url", url), zap.Int("status", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Error{Message: errorMessage(respBody, resp.StatusCode), Status: resp.StatusCode}
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &Error{Message: fmt.Sprintf("decode response: %v", err), Err: err}
	}
	return nil
}

// errorMessage extrae "message" del cuerpo; los arrays se unen con ", ".
func errorMessage(body []byte, status int) string {
	var payload struct {
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && len(payload.Message) > 0 {
		var list []string
		if err := json.Unmarshal(payload.Message, &list); err == nil && len(list) > 0 {
			return strings.Join(list, ", ")
		}
		var single string
		if err := json.Unmarshal(payload.Message, &single); err == nil && single != "" {
			return single
		}
	}
	return fmt.Sprintf("http error: status %d", status)
}
