package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/aventureros/clubsync-api/internal/models"
	"github.com/aventureros/clubsync-api/pkg/config"
	appErrors "github.com/aventureros/clubsync-api/pkg/errors"
)

// Client is a thin typed façade over the hosted backend's table REST API and
// its auth endpoint. It performs no retries: retry policy belongs to the
// pipelines. Every failure surfaces as the single remote-failure error kind
// with the underlying cause attached.
type Client struct {
	baseURL string
	anonKey string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient constructs a backend client from configuration.
func NewClient(cfg config.RemoteConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		anonKey: cfg.AnonKey,
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

// Select reads rows from a table. Params follow the backend's filter
// conventions (e.g. id=eq.C1, order=session_date.asc, limit=1); the JSON
// array response is decoded into dest.
func (c *Client) Select(ctx context.Context, table string, params url.Values, dest interface{}) error {
	endpoint := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, table)
	if encoded := params.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return appErrors.Remote(err, "build select request")
	}
	c.authorize(req)

	body, err := c.do(req, table)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return appErrors.Remote(err, fmt.Sprintf("decode %s response", table))
	}
	return nil
}

// Upsert writes rows with insert-or-update semantics keyed on conflictKey.
// Re-running an upsert for already-stored rows is harmless.
func (c *Client) Upsert(ctx context.Context, table, conflictKey string, rows interface{}) error {
	payload, err := json.Marshal(rows)
	if err != nil {
		return appErrors.Remote(err, fmt.Sprintf("encode %s payload", table))
	}

	endpoint := fmt.Sprintf("%s/rest/v1/%s?on_conflict=%s", c.baseURL, table, url.QueryEscape(conflictKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return appErrors.Remote(err, "build upsert request")
	}
	c.authorize(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "resolution=merge-duplicates")

	_, err = c.do(req, table)
	return err
}

// Insert writes rows without conflict handling. When returning is true the
// created rows are decoded into dest.
func (c *Client) Insert(ctx context.Context, table string, rows interface{}, dest interface{}) error {
	payload, err := json.Marshal(rows)
	if err != nil {
		return appErrors.Remote(err, fmt.Sprintf("encode %s payload", table))
	}

	endpoint := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, table)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return appErrors.Remote(err, "build insert request")
	}
	c.authorize(req)
	req.Header.Set("Content-Type", "application/json")
	if dest != nil {
		req.Header.Set("Prefer", "return=representation")
	}

	body, err := c.do(req, table)
	if err != nil {
		return err
	}
	if dest != nil {
		if err := json.Unmarshal(body, dest); err != nil {
			return appErrors.Remote(err, fmt.Sprintf("decode %s response", table))
		}
	}
	return nil
}

// GetSession returns the authenticated session from the auth endpoint.
func (c *Client) GetSession(ctx context.Context) (*models.AuthSession, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, appErrors.Remote(err, "build session request")
	}
	c.authorize(req)

	body, err := c.do(req, "auth")
	if err != nil {
		return nil, err
	}

	var session models.AuthSession
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, appErrors.Remote(err, "decode session response")
	}
	return &session, nil
}

// Health probes the backend. A nil error means the backend is reachable.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/health", nil)
	if err != nil {
		return appErrors.Remote(err, "build health request")
	}
	c.authorize(req)

	_, err = c.do(req, "health")
	return err
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+c.anonKey)
}

func (c *Client) do(req *http.Request, table string) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, appErrors.Remote(err, fmt.Sprintf("%s request failed", table))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, appErrors.Remote(err, fmt.Sprintf("read %s response", table))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("remote rejected request",
			zap.String("table", table),
			zap.Int("status", resp.StatusCode),
		)
		return nil, appErrors.Remote(
			fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
			fmt.Sprintf("%s request rejected", table),
		)
	}

	return body, nil
}
