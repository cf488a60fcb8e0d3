// Package api is the typed HTTP client for the trading bot backend. The
// backend computes indicators, executes orders and persists state; this
// package only speaks its JSON contract and classifies failures.
package api

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
)

// Client talks to the trading bot backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// BaseURL returns the configured backend address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ack is the generic {success, error} envelope for mutating endpoints.
type ack struct {
	Success bool   `json:"success"`
	Action  string `json:"action"`
	Error   string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, contentType string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// The backend reports exchange-client failures as 500 with an
		// {error} body; surface that text so classification still works.
		var e struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &e) == nil && e.Error != "" {
			return nil, &BackendError{Message: e.Error}
		}
		return nil, &StatusError{Code: resp.StatusCode, Body: string(data)}
	}
	return data, nil
}

func (c *Client) getJSON(ctx context.Context, path string, target any) error {
	data, err := c.do(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) postAck(ctx context.Context, path, contentType string, body io.Reader) (ack, error) {
	var a ack
	data, err := c.do(ctx, http.MethodPost, path, contentType, body)
	if err != nil {
		return a, err
	}
	if err := json.Unmarshal(data, &a); err != nil {
		return a, fmt.Errorf("decode %s: %w", path, err)
	}
	if !a.Success {
		msg := a.Error
		if msg == "" {
			msg = "request failed"
		}
		return a, &BackendError{Message: msg}
	}
	return a, nil
}

// Config loads the backend configuration map.
func (c *Client) Config(ctx context.Context) (ConfigMap, error) {
	var m ConfigMap
	if err := c.getJSON(ctx, "/api/config", &m); err != nil {
		return nil, err
	}
	return m, nil
}

// SaveConfig writes the configuration map back, form-encoded. Callers are
// expected to have normalized boolean flags first; SaveConfig normalizes
// again so the backend never sees an absent flag key.
func (c *Client) SaveConfig(ctx context.Context, m ConfigMap) error {
	m = m.Clone()
	m.NormalizeBools()
	body := strings.NewReader(m.Values().Encode())
	_, err := c.postAck(ctx, "/api/config", "application/x-www-form-urlencoded", body)
	return err
}

// Symbols returns the full tradable universe.
func (c *Client) Symbols(ctx context.Context) ([]string, error) {
	var symbols []string
	if err := c.getJSON(ctx, "/api/symbols", &symbols); err != nil {
		return nil, err
	}
	return symbols, nil
}

// TradingSymbols returns the persisted selected set.
func (c *Client) TradingSymbols(ctx context.Context) ([]string, error) {
	var symbols []string
	if err := c.getJSON(ctx, "/api/trading_symbols", &symbols); err != nil {
		return nil, err
	}
	return symbols, nil
}

// SaveTradingSymbols persists the selected set.
func (c *Client) SaveTradingSymbols(ctx context.Context, symbols []string) error {
	payload, err := json.Marshal(map[string][]string{"symbols": symbols})
	if err != nil {
		return fmt.Errorf("encode symbols: %w", err)
	}
	_, err = c.postAck(ctx, "/api/trading_symbols", "application/json", bytes.NewReader(payload))
	return err
}

// Performance fetches the per-symbol performance payload. A well-formed body
// carrying an error field is returned as *BackendError.
func (c *Client) Performance(ctx context.Context, symbol string) (*PerformancePayload, error) {
	path := "/api/performance/" + url.PathEscape(symbol)
	data, err := c.do(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, err
	}

	var probe struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if probe.Error != "" {
		return nil, &BackendError{Message: probe.Error}
	}

	var payload PerformancePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &payload, nil
}

// RunStrategy triggers a single strategy pass for symbol and returns the
// action taken ("entered_long", "entered_short", "exited", "no_action", ...).
func (c *Client) RunStrategy(ctx context.Context, symbol string) (string, error) {
	path := "/api/run_strategy/" + url.PathEscape(symbol)
	a, err := c.postAck(ctx, path, "", nil)
	if err != nil {
		return "", err
	}
	return a.Action, nil
}
