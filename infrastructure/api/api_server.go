// Package api serves the HTTP API, metrics and the MCP endpoint.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/helixml/chickenrescue"
	apimiddleware "github.com/helixml/chickenrescue/infrastructure/api/middleware"
	v1 "github.com/helixml/chickenrescue/infrastructure/api/v1"
	mcpinternal "github.com/helixml/chickenrescue/internal/mcp"
)

// APIServer provides an HTTP API backed by a chickenrescue Client.
type APIServer struct {
	client         *chickenrescue.Client
	apiKeys        []string
	corsOrigins    []string
	requestTimeout time.Duration
	version        string
	router         chi.Router
}

// APIServerOption configures an APIServer.
type APIServerOption func(*APIServer)

// WithAPIKeys enables write protection: POST requests under /api/v1 need
// one of keys in the X-API-KEY header.
func WithAPIKeys(keys []string) APIServerOption {
	return func(a *APIServer) { a.apiKeys = keys }
}

// WithCORSOrigins sets the allowed CORS origins.
func WithCORSOrigins(origins []string) APIServerOption {
	return func(a *APIServer) { a.corsOrigins = origins }
}

// WithRequestTimeout bounds /api/v1 requests.
func WithRequestTimeout(d time.Duration) APIServerOption {
	return func(a *APIServer) {
		if d > 0 {
			a.requestTimeout = d
		}
	}
}

// WithVersion sets the version reported by /healthz and MCP.
func WithVersion(v string) APIServerOption {
	return func(a *APIServer) { a.version = v }
}

// NewAPIServer creates a new APIServer wired to the given Client.
func NewAPIServer(client *chickenrescue.Client, opts ...APIServerOption) *APIServer {
	a := &APIServer{
		client:         client,
		requestTimeout: 60 * time.Second,
		version:        "dev",
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// MountRoutes wires up health, metrics, v1 and MCP routes on router.
func (a *APIServer) MountRoutes(router chi.Router) {
	c := a.client

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		apimiddleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"version": a.version,
		})
	})
	router.Handle("/metrics", promhttp.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(chimiddleware.Timeout(a.requestTimeout))
		r.Use(apimiddleware.WriteProtectAuth(a.apiKeys))

		r.Mount("/rescue", v1.NewRescueRouter(c).Routes())
		r.Mount("/boss", v1.NewBossRouter(c).Routes())
		r.Mount("/transactions", v1.NewTransactionsRouter(c).Routes())
	})

	// MCP manages its own streaming and session headers, so it sits outside
	// the Timeout group and bounds each tool call itself.
	mcpSrv := mcpinternal.NewServerForClient(c, a.version,
		mcpinternal.WithToolTimeout(a.requestTimeout),
	)
	router.Mount("/mcp", server.NewStreamableHTTPServer(mcpSrv.MCPServer()))
}

// Handler returns a fully routed handler for use with custom servers and tests.
func (a *APIServer) Handler() http.Handler {
	if a.router == nil {
		srv := NewServer("", a.corsOrigins, a.client.Logger())
		a.MountRoutes(srv.Router())
		a.router = srv.Router()
	}
	return a.router
}

// NewHTTPServer returns a Server on addr with every route mounted.
func (a *APIServer) NewHTTPServer(addr string) Server {
	srv := NewServer(addr, a.corsOrigins, a.client.Logger())
	a.MountRoutes(srv.Router())
	return srv
}
