package app

import (
	"net/http"

	"github.com/stocktrack/inventory-backend/internal/config"
	authsvc "github.com/stocktrack/inventory-backend/internal/service/auth"
	"github.com/stocktrack/inventory-backend/internal/transport/middleware"
	"github.com/stocktrack/inventory-backend/internal/transport/rest"
)

// newRouter registers all routes on a ServeMux.
//
// Every /api/inventory route sits behind RequireAuth: anonymous requests
// are rejected at the perimeter and the inventory handlers never see an
// identity. Login and register are rate limited per client IP.
func newRouter(
	cfg *config.Config,
	authHandler *rest.AuthHandler,
	invHandler *rest.InventoryHandler,
	healthHandler *rest.HealthHandler,
	pageHandler *rest.PageHandler,
	authService *authsvc.Service,
	limiter *middleware.RateLimiter,
) http.Handler {
	mux := http.NewServeMux()

	// Server-rendered pages.
	mux.HandleFunc("GET /{$}", pageHandler.Index)
	mux.HandleFunc("GET /home", pageHandler.Index)
	mux.HandleFunc("GET /login", pageHandler.Login)
	mux.HandleFunc("GET /register", pageHandler.Register)

	// Health probes.
	mux.HandleFunc("GET /live", healthHandler.Live)
	mux.HandleFunc("GET /ready", healthHandler.Ready)
	mux.HandleFunc("GET /health", healthHandler.Health)

	// Auth endpoints. Credential-carrying routes are rate limited.
	limit := limiter.Limit(cfg.Auth.LoginRateLimit)
	mux.Handle("POST /api/auth/register", limit(http.HandlerFunc(authHandler.Register)))
	mux.Handle("POST /api/auth/login", limit(http.HandlerFunc(authHandler.Login)))
	mux.HandleFunc("POST /api/auth/refresh", authHandler.Refresh)
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)

	// Inventory endpoints, all behind the auth perimeter.
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

	return mux
}
