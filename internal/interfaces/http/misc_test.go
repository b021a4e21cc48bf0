package http_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/autopublish-api/internal/interfaces/http"
)

func TestDashboard_Resumen(t *testing.T) {
	env := newTestEnv(t)
	tok := env.login(t, "Ann", "ann@x.com")
	env.createSite(t, tok, map[string]any{"name": "A", "url": "https://a.com", "type": "GENERIC"})
	b := env.createSite(t, tok, map[string]any{"name": "B", "url": "https://b.com", "type": "GENERIC"})
	status, _ := env.do(t, http.MethodPut, "/api/sites/"+b["id"].(string), tok, map[string]any{"status": "PAUSED"})
	require.Equal(t, http.StatusOK, status)

	status, body := env.do(t, http.MethodGet, "/api/dashboard/summary", tok, nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 2, body["total_sites"])
	assert.EqualValues(t, 1, body["active_sites"])
	assert.EqualValues(t, 0, body["total_articles"])
	assert.EqualValues(t, 100, body["token_balance"])
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, "Ann", "ann@x.com")

	status, body := env.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])

	status, body = env.do(t, http.MethodGet, "/health/db", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, body["users"])
}

func TestHealthDB_ErrorSinDetalleFueraDeDevelopment(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.db.Close())

	status, body := env.do(t, http.MethodGet, "/health/db", "", nil)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL", body["code"])
	assert.NotContains(t, body, "details")
}

func TestHealthDB_ErrorConDetalleEnDevelopment(t *testing.T) {
	env := newTestEnv(t, func(d *apphttp.RouterDeps) { d.DevMode = true })
	require.NoError(t, env.db.Close())

	status, body := env.do(t, http.MethodGet, "/health/db", "", nil)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.NotEmpty(t, body["details"])
}

func TestMetrics_ExponeContadores(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodGet, "/health", "", nil)

	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `http_requests_total{method="GET",path="/health",service="autopublish-test",status="200"} 1`)
}
