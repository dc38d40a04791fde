// Package grafana is a client for the dashboard server's alerting HTTP API.
// It implements alerts.Source.
package grafana

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/willibrandon/ruledeck/internal/alerts"
	"github.com/willibrandon/ruledeck/internal/logger"
)

// Version is reported in the User-Agent header.
var Version = "dev"

// Config holds client settings.
type Config struct {
	// URL is the server root, e.g. "https://grafana.example.com".
	URL string

	// APIKey is sent as a bearer token when set.
	APIKey string

	// OrgID selects the organization when non-zero.
	OrgID int64

	// Timeout is the HTTP request timeout (default: 10s).
	Timeout time.Duration
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// Client talks to one dashboard server.
type Client struct {
	base   *url.URL
	config Config
	http   *http.Client
}

// NewClient creates a client for cfg.URL.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	base, err := url.Parse(strings.TrimRight(cfg.URL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("server url must be http or https, got %q", cfg.URL)
	}

	return &Client{
		base:   base,
		config: cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// BaseURL returns the server root without a trailing slash.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// alertResponse is one element of GET /api/alerts.
type alertResponse struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	DashboardURI   string    `json:"dashboardUri"`
	DashboardSlug  string    `json:"dashboardSlug"`
	PanelID        int64     `json:"panelId"`
	State          string    `json:"state"`
	NewStateDate   time.Time `json:"newStateDate"`
	ExecutionError string    `json:"executionError"`
	EvalData       struct {
		NoData      bool               `json:"noData"`
		EvalMatches []alerts.EvalMatch `json:"evalMatches"`
	} `json:"evalData"`
}

func (a alertResponse) toRule() alerts.Rule {
	uri := a.DashboardURI
	if uri == "" && a.DashboardSlug != "" {
		uri = "db/" + a.DashboardSlug
	}
	state := alerts.AlertState(a.State)
	if !state.IsValid() {
		state = alerts.StateUnknown
	}
	return alerts.Rule{
		ID:           a.ID,
		Name:         a.Name,
		DashboardURI: uri,
		PanelID:      a.PanelID,
		State:        state,
		NewStateDate: a.NewStateDate,
		Info:         alerts.BuildInfo(a.ExecutionError, a.EvalData.NoData, a.EvalData.EvalMatches),
	}
}

// ListRules fetches GET /api/alerts?state=<filter>.
func (c *Client) ListRules(ctx context.Context, filter alerts.StateFilter) ([]alerts.Rule, error) {
	if filter == "" {
		filter = alerts.FilterAll
	}
	q := url.Values{}
	q.Set("state", filter.String())

	var resp []alertResponse
	if err := c.do(ctx, http.MethodGet, "/api/alerts", q, nil, &resp); err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}

	rules := make([]alerts.Rule, 0, len(resp))
	for _, a := range resp {
		rules = append(rules, a.toRule())
	}
	logger.Debug("grafana: listed alerts", "state", filter, "count", len(rules))
	return rules, nil
}

type pauseRequest struct {
	Paused bool `json:"paused"`
}

type pauseResponse struct {
	AlertID int64  `json:"alertId"`
	State   string `json:"state"`
	Message string `json:"message"`
}

// SetPaused calls POST /api/alerts/{id}/pause.
func (c *Client) SetPaused(ctx context.Context, id int64, paused bool) (alerts.AlertState, error) {
	var resp pauseResponse
	path := "/api/alerts/" + strconv.FormatInt(id, 10) + "/pause"
	if err := c.do(ctx, http.MethodPost, path, nil, pauseRequest{Paused: paused}, &resp); err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
			return "", fmt.Errorf("%w: id %d", alerts.ErrRuleNotFound, id)
		}
		return "", fmt.Errorf("pause alert %d: %w", id, err)
	}

	state := alerts.AlertState(resp.State)
	if !state.IsValid() {
		state = alerts.StateUnknown
	}
	logger.Info("grafana: alert pause changed", "id", id, "paused", paused, "state", state, "message", resp.Message)
	return state, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "ruledeck/"+Version)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}
	if c.config.OrgID > 0 {
		req.Header.Set("X-Grafana-Org-Id", strconv.FormatInt(c.config.OrgID, 10))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &StatusError{StatusCode: resp.StatusCode, Message: errorMessage(respBody)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// errorMessage extracts {"message": "..."} from an error body, falling back to the raw text.
func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return strings.TrimSpace(string(body))
}
