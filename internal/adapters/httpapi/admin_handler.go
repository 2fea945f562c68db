package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"aidconnect/internal/core/ports"
	"aidconnect/internal/core/service"
)

// AdminHandler owns the admin overview endpoint.
type AdminHandler struct {
	users     ports.UserRepository
	lifecycle *service.LifecycleService
	validator ports.TokenValidator
	log       zerolog.Logger
}

// NewAdminHandler constructs the handler.
func NewAdminHandler(users ports.UserRepository, lifecycle *service.LifecycleService, validator ports.TokenValidator, baseLogger *zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		users:     users,
		lifecycle: lifecycle,
		validator: validator,
		log:       baseLogger.With().Str("component", "admin_handler").Logger(),
	}
}

// Routes attaches the admin endpoints to the router.
func (h *AdminHandler) Routes(r chi.Router) {
	r.Use(requireAuth(h.validator, h.log), requireAdmin)
	r.Get("/all-data", h.handleAllData)
}

func (h *AdminHandler) handleAllData(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		respondDomainError(w, h.log, err)
		return
	}
	apps, err := h.lifecycle.ListAll(r.Context())
	if err != nil {
		respondDomainError(w, h.log, err)
		return
	}

	userViews := make([]userView, 0, len(users))
	for _, u := range users {
		userViews = append(userViews, toUserView(u))
	}

	respondJSON(w, http.StatusOK, "OK", map[string]any{
		"totalUsers":        len(users),
		"totalApplications": len(apps),
		"users":             userViews,
		"applications":      toOwnedApplicationViews(apps),
	})
}
