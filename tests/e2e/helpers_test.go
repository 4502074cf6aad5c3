//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/stocktrack/inventory-backend/internal/adapter/postgres"
	"github.com/stocktrack/inventory-backend/internal/adapter/postgres/item"
	"github.com/stocktrack/inventory-backend/internal/adapter/postgres/testhelper"
	"github.com/stocktrack/inventory-backend/internal/adapter/postgres/token"
	userrepo "github.com/stocktrack/inventory-backend/internal/adapter/postgres/user"
	authpkg "github.com/stocktrack/inventory-backend/internal/auth"
	"github.com/stocktrack/inventory-backend/internal/config"
	authsvc "github.com/stocktrack/inventory-backend/internal/service/auth"
	"github.com/stocktrack/inventory-backend/internal/service/inventory"
	"github.com/stocktrack/inventory-backend/internal/transport/middleware"
	"github.com/stocktrack/inventory-backend/internal/transport/rest"
)

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// ---------------------------------------------------------------------------
// setupTestServer bootstraps the full application stack backed by
// a real PostgreSQL container (shared via testhelper).
// ---------------------------------------------------------------------------

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	// 1. Get pool from testcontainers-backed helper.
	pool := testhelper.SetupTestDB(t)

	// 2. Infrastructure.
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))
	txm := postgres.NewTxManager(pool)

	// 3. Repositories.
	userRepo := userrepo.New(pool)
	tokenRepo := token.New(pool)
	itemRepo := item.New(pool)

	// 4. JWT manager with a test secret (>= 32 chars).
	authCfg := config.AuthConfig{
		JWTSecret:        "test-secret-at-least-32-chars-long!!",
		JWTIssuer:        "test-issuer",
		AccessTokenTTL:   15 * time.Minute,
		RefreshTokenTTL:  720 * time.Hour,
		PasswordHashCost: 4, // minimum cost for fast tests
		LoginRateLimit:   1000,
	}
	jwtMgr := authpkg.NewJWTManager(authCfg.JWTSecret, authCfg.JWTIssuer, authCfg.AccessTokenTTL)

	// 5. Services.
	authService := authsvc.NewService(logger, userRepo, tokenRepo, jwtMgr, authCfg)
	inventoryService := inventory.NewService(logger, itemRepo, txm)

	// 6. Handlers.
	authHandler := rest.NewAuthHandler(authService, logger)
	invHandler := rest.NewInventoryHandler(inventoryService, logger)
	healthHandler := rest.NewHealthHandler(pool, "test-version")

	// 7. Mux. Mirrors the production router: every inventory route sits
	// behind RequireAuth.
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", healthHandler.Live)
	mux.HandleFunc("GET /ready", healthHandler.Ready)
	mux.HandleFunc("GET /health", healthHandler.Health)

	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/refresh", authHandler.Refresh)
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)

	requireAuth := middleware.RequireAuth(authService)
	protected := func(h http.HandlerFunc) http.Handler {
		return requireAuth(h)
	}
	mux.Handle("GET /api/inventory", protected(invHandler.List))
	mux.Handle("POST /api/inventory", protected(invHandler.Create))
	mux.Handle("GET /api/inventory/search", protected(invHandler.Search))
	mux.Handle("GET /api/inventory/category/{category}", protected(invHandler.ByCategory))
	mux.Handle("GET /api/inventory/{id}", protected(invHandler.GetByID))
	mux.Handle("PUT /api/inventory/{id}", protected(invHandler.Update))
	mux.Handle("DELETE /api/inventory/{id}", protected(invHandler.Delete))

	// 8. Middleware chain.
	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.CORS(config.CORSConfig{
			AllowedOrigins:   "*",
			AllowedMethods:   "GET,POST,PUT,DELETE,OPTIONS",
			AllowedHeaders:   "Authorization,Content-Type",
			AllowCredentials: false,
			MaxAge:           86400,
		}),
	)(mux)

	// 9. httptest server.
	srv := httptest.NewServer(handler)
	t.Cleanup(func() { srv.Close() })

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
	}
}

// ---------------------------------------------------------------------------
// restRequest sends a JSON request and returns the raw response.
// ---------------------------------------------------------------------------

func restRequest(t *testing.T, ts *testServer, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	return resp
}

// decodeBody decodes the response body into a map and closes it.
func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// ---------------------------------------------------------------------------
// registerAndLogin registers a fresh user over the API and returns the
// access token, refresh token, and the generated username.
// ---------------------------------------------------------------------------

func registerAndLogin(t *testing.T, ts *testServer) (accessToken, refreshToken, username string) {
	t.Helper()

	username = fmt.Sprintf("e2e-%s", uuid.NewString()[:8])

	resp := restRequest(t, ts, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username,
		"password": "securepassword123",
	})
	body := decodeBody(t, resp)
	require.Equal(t, http.StatusCreated, resp.StatusCode, "register: %v", body)

	resp = restRequest(t, ts, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": username,
		"password": "securepassword123",
	})
	body = decodeBody(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode, "login: %v", body)

	accessToken, _ = body["accessToken"].(string)
	refreshToken, _ = body["refreshToken"].(string)
	require.NotEmpty(t, accessToken)
	require.NotEmpty(t, refreshToken)

	return accessToken, refreshToken, username
}
