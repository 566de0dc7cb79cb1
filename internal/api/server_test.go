package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/macro-sim/internal/economy"
	"github.com/talgya/macro-sim/internal/engine"
	"github.com/talgya/macro-sim/internal/entropy"
)

func newTestServer(t *testing.T, s *Server) *httptest.Server {
	t.Helper()
	if s.Game == nil {
		s.Game = engine.NewGame(&entropy.Fixed{}, nil)
	}
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, method, url, body string, header map[string]string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestStatus(t *testing.T) {
	ts := newTestServer(t, &Server{})

	for _, path := range []string{"/api/v1/status", "/status"} {
		resp := do(t, http.MethodGet, ts.URL+path, "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

		snap := decode[economy.Snapshot](t, resp)
		assert.Equal(t, 1, snap.Turn)
		assert.Equal(t, 60.0, snap.ApprovalRating)
	}

	resp := do(t, http.MethodPost, ts.URL+"/api/v1/status", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestTurnAppliesPolicy(t *testing.T) {
	ts := newTestServer(t, &Server{})

	resp := do(t, http.MethodPost, ts.URL+"/api/v1/turn", `{"stimulus": 10}`, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snap := decode[economy.Snapshot](t, resp)
	assert.Equal(t, 2, snap.Turn)
	assert.Equal(t, 4050.0, snap.MoneySupply)
	assert.Equal(t, 2.1, snap.InflationRate)

	// The legacy path and an empty body both play an idle turn.
	resp = do(t, http.MethodPost, ts.URL+"/next-turn", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 3, decode[economy.Snapshot](t, resp).Turn)
}

func TestTurnRejectsBadPayloads(t *testing.T) {
	ts := newTestServer(t, &Server{})

	cases := map[string]string{
		"negative amount": `{"stimulus": -5}`,
		"level too high":  `{"tax_rate": 120}`,
		"level negative":  `{"ltv_dti_strength": -1}`,
		"unknown field":   `{"helicopter_money": 10}`,
		"wrong type":      `{"stimulus": "lots"}`,
		"malformed":       `{"stimulus":`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			resp := do(t, http.MethodPost, ts.URL+"/api/v1/turn", body, nil)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}

	resp := do(t, http.MethodGet, ts.URL+"/api/v1/status", "", nil)
	assert.Equal(t, 1, decode[economy.Snapshot](t, resp).Turn)

	resp = do(t, http.MethodGet, ts.URL+"/api/v1/turn", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestReset(t *testing.T) {
	ts := newTestServer(t, &Server{})
	do(t, http.MethodPost, ts.URL+"/api/v1/turn", `{"public_works": 10}`, nil)

	resp := do(t, http.MethodPost, ts.URL+"/reset", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[struct {
		Message string           `json:"message"`
		Status  economy.Snapshot `json:"status"`
	}](t, resp)
	assert.NotEmpty(t, body.Message)
	assert.Equal(t, 1, body.Status.Turn)
	assert.Equal(t, 4000.0, body.Status.MoneySupply)
}

func TestResetRequiresAdminKey(t *testing.T) {
	ts := newTestServer(t, &Server{AdminKey: "secret"})

	resp := do(t, http.MethodPost, ts.URL+"/api/v1/reset", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = do(t, http.MethodPost, ts.URL+"/api/v1/reset", "", map[string]string{"Authorization": "Bearer wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = do(t, http.MethodPost, ts.URL+"/api/v1/reset", "", map[string]string{"Authorization": "Bearer secret"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestEvents(t *testing.T) {
	ts := newTestServer(t, &Server{})
	for i := 0; i < 3; i++ {
		do(t, http.MethodPost, ts.URL+"/api/v1/turn", `{"stimulus": 1000}`, nil)
	}

	resp := do(t, http.MethodGet, ts.URL+"/api/v1/events", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	events := decode[[]engine.Event](t, resp)
	require.Len(t, events, 3)
	assert.Equal(t, engine.CategoryPolicy, events[0].Category)
	assert.Equal(t, 1, events[0].Turn)
	assert.Equal(t, 3, events[2].Turn)

	resp = do(t, http.MethodGet, ts.URL+"/api/v1/events?limit=2", "", nil)
	assert.Len(t, decode[[]engine.Event](t, resp), 2)

	resp = do(t, http.MethodGet, ts.URL+"/api/v1/events?category=outcome", "", nil)
	assert.Empty(t, decode[[]engine.Event](t, resp))
}

func TestCORS(t *testing.T) {
	ts := newTestServer(t, &Server{CORSOrigins: []string{"https://econ.example.com"}})

	resp := do(t, http.MethodOptions, ts.URL+"/api/v1/turn", "", map[string]string{"Origin": "http://localhost:5173"})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))

	resp = do(t, http.MethodGet, ts.URL+"/status", "", map[string]string{"Origin": "https://econ.example.com"})
	assert.Equal(t, "https://econ.example.com", resp.Header.Get("Access-Control-Allow-Origin"))

	resp = do(t, http.MethodGet, ts.URL+"/status", "", map[string]string{"Origin": "https://evil.example.com"})
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestTurnRateLimit(t *testing.T) {
	ts := newTestServer(t, &Server{TurnLimit: 2})
	hdr := map[string]string{"X-Forwarded-For": "203.0.113.7"}

	assert.Equal(t, http.StatusOK, do(t, http.MethodPost, ts.URL+"/api/v1/turn", "", hdr).StatusCode)
	assert.Equal(t, http.StatusOK, do(t, http.MethodPost, ts.URL+"/next-turn", "", hdr).StatusCode)

	resp := do(t, http.MethodPost, ts.URL+"/api/v1/turn", "", hdr)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))

	// Other clients and read endpoints are unaffected.
	other := map[string]string{"X-Forwarded-For": "198.51.100.1"}
	assert.Equal(t, http.StatusOK, do(t, http.MethodPost, ts.URL+"/api/v1/turn", "", other).StatusCode)
	assert.Equal(t, http.StatusOK, do(t, http.MethodGet, ts.URL+"/api/v1/status", "", hdr).StatusCode)
}

func TestRateLimiterWindow(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, time.Minute)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
	assert.Equal(t, 61, rl.RetryAfter("a"))
	assert.Zero(t, rl.RetryAfter("b"))

	now = now.Add(time.Minute)
	assert.True(t, rl.Allow("a"))

	now = now.Add(3 * time.Minute)
	rl.cleanup()
	assert.Empty(t, rl.buckets)
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.0.2.1:5555"
	assert.Equal(t, "192.0.2.1", clientIP(r))

	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", clientIP(r))
}

func TestRootAndUnknownPaths(t *testing.T) {
	ts := newTestServer(t, &Server{})

	resp := do(t, http.MethodGet, ts.URL+"/", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, http.MethodGet, ts.URL+"/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
