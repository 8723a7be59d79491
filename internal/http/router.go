package httpx

import (
	"net/http"

	"mpesarelay/internal/config"
	"mpesarelay/internal/http/handlers"
	middlewarex "mpesarelay/internal/http/middleware"
	"mpesarelay/internal/provider"
	"mpesarelay/internal/store/repositories"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Client is what the router needs from the Daraja client
type Client interface {
	handlers.Daraja
	handlers.Readiness
}

// RouterDependencies holds all dependencies for the HTTP router
type RouterDependencies struct {
	Config     config.Cfg
	Daraja     Client
	APIClients repositories.APIClientRepository // nil leaves /api/v1 open
	Metrics    http.Handler                     // optional
}

// operationPaths maps each operation to its route under /api/v1/mpesa
var operationPaths = map[provider.OperationType]string{
	provider.OpB2C:               "/b2c",
	provider.OpB2B:               "/b2b",
	provider.OpC2BRegister:       "/c2b/register",
	provider.OpC2BSimulate:       "/c2b/simulate",
	provider.OpBalance:           "/balance",
	provider.OpTransactionStatus: "/transaction-status",
	provider.OpReversal:          "/reversal",
	provider.OpSTKPush:           "/stk/push",
	provider.OpSTKQuery:          "/stk/query",
}

// NewRouter wires health, metrics and the relay endpoints
func NewRouter(deps RouterDependencies) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	r.Get("/health", handlers.Health(deps.Config.App.Env, deps.Daraja))
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics)
	}

	routes := handlers.Routes(deps.Daraja)
	r.Route("/api/v1/mpesa", func(r chi.Router) {
		if deps.APIClients != nil {
			r.Use(middlewarex.APIKeyAuth(deps.APIClients))
		}
		for _, op := range provider.Operations() {
			r.Post(operationPaths[op], routes[op])
		}
	})

	return r
}
