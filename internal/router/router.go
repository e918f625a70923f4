package router

import (
	"net/http"
	"strings"

	"order-desk/internal/auth"
	"order-desk/internal/handler"
	"order-desk/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Options configures the router.
type Options struct {
	// AllowOrigin is sent as Access-Control-Allow-Origin.
	AllowOrigin string

	// UploadDir, when set, is served read-only under /upload/.
	UploadDir string
}

// New creates a new HTTP router with all routes and middleware configured.
func New(
	orderHandler *handler.OrderHandler,
	dashboardHandler *handler.DashboardHandler,
	authHandler *handler.AuthHandler,
	verifier auth.CredentialVerifier,
	opts Options,
	logger zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Middleware order: RequestID -> Recovery -> Logging -> CORS
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(opts.AllowOrigin))

	// Health check endpoint (no authentication required)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status": "healthy"}`))
	})

	if opts.UploadDir != "" {
		r.Handle("/upload/*", uploads(opts.UploadDir))
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.BasicAuth(verifier, logger))

			r.Get("/dashboard", dashboardHandler.Get)

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", orderHandler.List)
				r.Post("/", orderHandler.Create)
				r.Get("/export.csv", orderHandler.Export)
				r.Get("/{id}", orderHandler.GetByID)
				r.Put("/{id}", orderHandler.Update)
				r.Delete("/{id}", orderHandler.Delete)
			})
		})
	})

	return r
}

// uploads serves stored images without directory listings.
func uploads(dir string) http.Handler {
	files := http.StripPrefix("/upload/", http.FileServer(http.Dir(dir)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}
