package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/autopublish-api/internal/application/auth"
	"github.com/jhoicas/autopublish-api/internal/application/usecase"
	"github.com/jhoicas/autopublish-api/internal/infrastructure/memory"
	"github.com/jhoicas/autopublish-api/internal/infrastructure/sqlite"
	apphttp "github.com/jhoicas/autopublish-api/internal/interfaces/http"
	"github.com/jhoicas/autopublish-api/pkg/logger"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "autopublish-test"
	testPassword  = "secret1"
)

type testEnv struct {
	app    *fiber.App
	db     *sqlx.DB
	authUC *auth.AuthUseCase
}

// newTestEnv arma la API completa sobre SQLite en memoria y deny-list en memoria.
func newTestEnv(t *testing.T, opts ...func(*apphttp.RouterDeps)) *testEnv {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, ":memory:")
	require.NoError(t, err)
	require.NoError(t, sqlite.Migrate(ctx, db))
	t.Cleanup(func() { db.Close() })

	users := sqlite.NewUserRepository(db)
	sites := sqlite.NewSiteRepository(db)
	authUC := auth.NewAuthUseCase(users, memory.NewTokenDenyList(), auth.Config{
		Secret:     testJWTSecret,
		ExpMinutes: 60,
		Issuer:     testIssuer,
		HashCost:   bcrypt.MinCost,
	})

	deps := apphttp.RouterDeps{
		AuthUC:      authUC,
		SiteUC:      usecase.NewSiteUseCase(sites),
		DashboardUC: usecase.NewDashboardUseCase(sites),
		Users:       users,
		Metrics:     apphttp.NewHTTPMetrics("autopublish-test"),
		Log:         logger.Nop(),
		ServiceName: "autopublish-test",
	}
	for _, opt := range opts {
		opt(&deps)
	}
	app := fiber.New()
	apphttp.Router(app, deps)
	return &testEnv{app: app, db: db, authUC: authUC}
}

// do lanza la petición y devuelve el status y el cuerpo JSON decodificado.
func (e *testEnv) do(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(raw) > 0 && json.Valid(raw) {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

// login registra al usuario y devuelve un token válido.
func (e *testEnv) login(t *testing.T, name, email string) string {
	t.Helper()
	status, _ := e.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name": name, "email": email, "password": testPassword,
	})
	require.Equal(t, http.StatusOK, status)

	status, body := e.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": email, "password": testPassword,
	})
	require.Equal(t, http.StatusOK, status)
	tok, ok := body["token"].(string)
	require.True(t, ok, "login debe devolver token")
	return tok
}

// createSite crea un sitio y devuelve su representación.
func (e *testEnv) createSite(t *testing.T, token string, payload map[string]any) map[string]any {
	t.Helper()
	status, body := e.do(t, http.MethodPost, "/api/sites", token, payload)
	require.Equal(t, http.StatusOK, status, "crear sitio: %v", body)
	site, ok := body["site"].(map[string]any)
	require.True(t, ok)
	return site
}
