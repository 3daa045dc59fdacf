package kintone

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/ruudy-sib/stocksync/internal/config"
	"github.com/ruudy-sib/stocksync/internal/domain"
)

const (
	recordPath  = "/k/v1/record.json"
	recordsPath = "/k/v1/records.json"
)

// Client issues authenticated REST calls against one kintone domain.
// Each call names the API token of the app it targets.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewClient creates a kintone client. A zero KintoneTimeout leaves calls
// bounded only by the caller's context.
func NewClient(cfg *config.Config, logger *zap.Logger) *Client {
	client := &http.Client{
		Timeout: cfg.KintoneTimeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	logger.Info("kintone client initialized",
		zap.String("base_url", cfg.BaseURL()),
		zap.Duration("timeout", client.Timeout),
	)

	return &Client{
		baseURL: cfg.BaseURL(),
		client:  client,
		logger:  logger.Named("kintone-client"),
	}
}

// getJSON issues a GET and decodes the JSON response into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, token string, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("creating http request: %w", err)
	}

	return c.do(req, token, out)
}

// putJSON issues a PUT with body encoded as JSON.
func (c *Client) putJSON(ctx context.Context, path string, token string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, token, nil)
}

func (c *Client) do(req *http.Request, token string, out any) error {
	req.Header.Set(domain.APITokenHeader, token)
	req.Header.Set("User-Agent", domain.UserAgent)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", domain.ErrUpstream, req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading response body: %v", domain.ErrUpstream, err)
	}

	c.logger.Debug("kintone call",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %s %s returned status %d: %s",
			domain.ErrUpstream, req.Method, req.URL.Path, resp.StatusCode, string(body))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decoding %s response: %v", domain.ErrUpstream, req.URL.Path, err)
	}
	return nil
}

// Close releases idle connections.
func (c *Client) Close() error {
	if c.client != nil {
		c.client.CloseIdleConnections()
	}
	return nil
}
