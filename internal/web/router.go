package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/RamiObaid92/AIProjectTest/internal/web/middleware"
)

// RouterConfig controls the middleware applied around the API routes
type RouterConfig struct {
	// AuthSecret enables bearer-token authentication when non-empty
	AuthSecret string
	Logger     *zap.Logger
}

// NewRouter builds the API router with the standard middleware stack
func NewRouter(handler *Handler, config RouterConfig) http.Handler {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	mux := chi.NewRouter()

	mux.Get("/healthz", handler.Health)

	mux.Route("/api", func(api chi.Router) {
		api.Get("/types", handler.ListTypes)
		api.Get("/types/{typeKey}", handler.GetType)

		api.Route("/resources/{typeKey}", func(res chi.Router) {
			res.Post("/", handler.CreateResource)
			res.Get("/", handler.ListResources)
			res.Get("/{id}", handler.GetResource)
			res.Put("/{id}", handler.UpdateResource)
			res.Delete("/{id}", handler.DeleteResource)
		})
	})

	mux.NotFound(func(w http.ResponseWriter, r *http.Request) {
		notFound(w, "Route not found: "+r.URL.Path)
	})
	mux.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED",
			"Method "+r.Method+" is not allowed for "+r.URL.Path)
	})

	chain := middleware.NewChain(
		middleware.RequestID(),
		middleware.Logging(logger),
		middleware.Recovery(logger),
	)
	if config.AuthSecret != "" {
		chain = chain.Use(middleware.Auth(middleware.AuthConfig{
			Secret:    config.AuthSecret,
			SkipPaths: []string{"/healthz"},
		}))
	}

	return chain.Then(mux)
}
