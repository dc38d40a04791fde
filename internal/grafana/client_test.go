package grafana

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willibrandon/ruledeck/internal/alerts"
)

const alertsBody = `[
  {
    "id": 1,
    "name": "fire place sensor",
    "dashboardUri": "db/sensors",
    "panelId": 4,
    "state": "alerting",
    "newStateDate": "2024-03-01T12:00:00Z",
    "evalData": {"evalMatches": [{"metric": "movement", "value": 1}]},
    "executionError": ""
  },
  {
    "id": 2,
    "name": "humidity",
    "dashboardSlug": "climate",
    "panelId": 9,
    "state": "no_data",
    "newStateDate": "2024-03-01T11:00:00Z",
    "evalData": {"noData": true}
  },
  {
    "id": 3,
    "name": "exotic",
    "dashboardUri": "db/x",
    "panelId": 1,
    "state": "somethingnew"
  }
]`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{URL: srv.URL + "/", APIKey: "secret", OrgID: 3, Timeout: 2 * time.Second})
	require.NoError(t, err)
	return c
}

func TestClient_ListRules(t *testing.T) {
	var gotQuery, gotAuth, gotOrg string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/alerts", r.URL.Path)
		gotQuery = r.URL.Query().Get("state")
		gotAuth = r.Header.Get("Authorization")
		gotOrg = r.Header.Get("X-Grafana-Org-Id")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(alertsBody))
	})

	rules, err := c.ListRules(context.Background(), alerts.FilterNotOK)
	require.NoError(t, err)

	assert.Equal(t, "not_ok", gotQuery)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "3", gotOrg)

	require.Len(t, rules, 3)
	assert.Equal(t, "db/sensors", rules[0].DashboardURI)
	assert.Equal(t, alerts.StateAlerting, rules[0].State)
	assert.Equal(t, "movement=1", rules[0].Info)
	assert.Equal(t, "dashboard/db/sensors?panelId=4&fullscreen&edit&tab=alert", rules[0].EditURL())

	assert.Equal(t, "db/climate", rules[1].DashboardURI)
	assert.Equal(t, "Query returned no data", rules[1].Info)

	assert.Equal(t, alerts.StateUnknown, rules[2].State)
}

func TestClient_ListRulesDefaultsToAll(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("state")
		_, _ = w.Write([]byte("[]"))
	})

	rules, err := c.ListRules(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, rules)
	assert.Equal(t, "all", gotQuery)
}

func TestClient_ListRulesServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid API key"}`))
	})

	_, err := c.ListRules(context.Background(), alerts.FilterAll)
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusUnauthorized, se.StatusCode)
	assert.Equal(t, "Invalid API key", se.Message)
}

func TestClient_SetPaused(t *testing.T) {
	var got pauseRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/alerts/7/pause", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"alertId":7,"state":"paused","message":"alert paused"}`))
	})

	state, err := c.SetPaused(context.Background(), 7, true)
	require.NoError(t, err)
	assert.True(t, got.Paused)
	assert.Equal(t, alerts.StatePaused, state)
}

func TestClient_SetPausedNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Alert not found"}`, http.StatusNotFound)
	})

	_, err := c.SetPaused(context.Background(), 7, false)
	assert.ErrorIs(t, err, alerts.ErrRuleNotFound)
}

func TestNewClient_RejectsBadURL(t *testing.T) {
	_, err := NewClient(Config{URL: "ftp://grafana"})
	assert.Error(t, err)
}
