package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"aidconnect/internal/core/ports"
	"aidconnect/internal/core/service"
)

// RouterDeps collects everything the HTTP surface needs.
type RouterDeps struct {
	Auth      *service.AuthService
	OTP       *service.OTPService
	Lifecycle *service.LifecycleService
	Catalog   *service.CatalogService
	Users     ports.UserRepository
	Blobs     ports.BlobStore
	Validator ports.TokenValidator
	UploadDir string
	CORS      []string
}

// NewRouter wires all handlers onto a chi router.
func NewRouter(deps RouterDeps, baseLogger *zerolog.Logger) http.Handler {
	log := baseLogger.With().Str("component", "http_router").Logger()

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(corsMiddleware(deps.CORS))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, "OK", nil)
	})

	r.Route("/api", func(api chi.Router) {
		api.Route("/auth", NewAuthHandler(deps.Auth, baseLogger).Routes)
		api.Route("/otp", NewOTPHandler(deps.OTP, baseLogger).Routes)
		api.Route("/schemes", NewSchemeHandler(deps.Catalog, deps.Validator, baseLogger).Routes)
		api.Route("/applications", NewApplicationHandler(deps.Lifecycle, deps.Validator, baseLogger).Routes)
		api.Route("/documents", NewDocumentHandler(deps.Lifecycle, deps.Auth, deps.Blobs, baseLogger).Routes)
		api.Route("/admin", NewAdminHandler(deps.Users, deps.Lifecycle, deps.Validator, baseLogger).Routes)
	})

	// Uploaded files are served read-only, same as the original portal's
	// /uploads static directory.
	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(deps.UploadDir)))
	r.Get("/uploads/*", fileServer.ServeHTTP)

	log.Info().Msg("HTTP routes registered")
	return r
}
