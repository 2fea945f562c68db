package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"aidconnect/internal/core/domain"
	"aidconnect/internal/core/ports"
	"aidconnect/internal/core/service"
)

// ApplicationHandler owns the application lifecycle endpoints.
type ApplicationHandler struct {
	lifecycle *service.LifecycleService
	validator ports.TokenValidator
	log       zerolog.Logger
}

// NewApplicationHandler constructs the handler.
func NewApplicationHandler(lifecycle *service.LifecycleService, validator ports.TokenValidator, baseLogger *zerolog.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		lifecycle: lifecycle,
		validator: validator,
		log:       baseLogger.With().Str("component", "application_handler").Logger(),
	}
}

// Routes attaches the application endpoints. Review and cross-user listing
// endpoints require an admin token.
func (h *ApplicationHandler) Routes(r chi.Router) {
	r.Post("/apply", h.handleApply)
	r.Get("/user/{userID}", h.handleListByUser)
	r.Get("/messages/{userID}", h.handleMessages)
	r.Get("/notifications/{userID}/count", h.handleNotificationCount)
	r.Get("/{applicationID}", h.handleGet)

	r.Group(func(admin chi.Router) {
		admin.Use(requireAuth(h.validator, h.log), requireAdmin)
		admin.Get("/scheme/{schemeID}", h.handleListByScheme)
		admin.Get("/all", h.handleListAll)
		admin.Put("/{applicationID}/status", h.handleUpdateStatus)
	})
}

type applyRequest struct {
	UserID      string `json:"userId"`
	SchemeID    string `json:"schemeId"`
	SchemeTitle string `json:"schemeTitle"`
}

func (h *ApplicationHandler) handleApply(w http.ResponseWriter, r *http.Request) {
	var req applyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid userId")
		return
	}

	app, err := h.lifecycle.CreateApplication(r.Context(), userID, req.SchemeID, req.SchemeTitle)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, "Applied successfully", map[string]string{"applicationId": app.ID.String()})
}

func (h *ApplicationHandler) handleListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUUIDParam(w, r, "userID")
	if !ok {
		return
	}
	apps, err := h.lifecycle.ListByUser(r.Context(), userID)
	if err != nil {
		respondDomainError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, "OK", toApplicationViews(apps))
}

func (h *ApplicationHandler) handleListByScheme(w http.ResponseWriter, r *http.Request) {
	schemeID := chi.URLParam(r, "schemeID")
	apps, err := h.lifecycle.ListByScheme(r.Context(), schemeID)
	if err != nil {
		respondDomainError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, "OK", toOwnedApplicationViews(apps))
}

func (h *ApplicationHandler) handleListAll(w http.ResponseWriter, r *http.Request) {
	apps, err := h.lifecycle.ListAll(r.Context())
	if err != nil {
		respondDomainError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, "OK", map[string]any{
		"count":        len(apps),
		"applications": toOwnedApplicationViews(apps),
	})
}

func (h *ApplicationHandler) handleMessages(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUUIDParam(w, r, "userID")
	if !ok {
		return
	}
	apps, err := h.lifecycle.ListMessages(r.Context(), userID)
	if err != nil {
		respondDomainError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, "OK", toApplicationViews(apps))
}

func (h *ApplicationHandler) handleNotificationCount(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUUIDParam(w, r, "userID")
	if !ok {
		return
	}
	count, err := h.lifecycle.CountMessages(r.Context(), userID)
	if err != nil {
		respondDomainError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, "OK", map[string]int{"count": count})
}

func (h *ApplicationHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	applicationID, ok := parseUUIDParam(w, r, "applicationID")
	if !ok {
		return
	}

	detail, err := h.lifecycle.Get(r.Context(), applicationID)
	if err != nil {
		respondDomainError(w, h.log, err)
		return
	}

	view := toApplicationView(detail.Application)
	view.OwnerName = detail.Owner.Name
	view.OwnerEmail = detail.Owner.Email
	respondJSON(w, http.StatusOK, "OK", map[string]any{
		"application": view,
		"owner":       toUserView(detail.Owner),
		"scheme": map[string]string{
			"title":       detail.Scheme.Title,
			"description": detail.Scheme.Description,
		},
	})
}

type updateStatusRequest struct {
	Status  string  `json:"status"`
	Remarks *string `json:"remarks"`
}

func (h *ApplicationHandler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	applicationID, ok := parseUUIDParam(w, r, "applicationID")
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	result, err := h.lifecycle.TransitionStatus(r.Context(), applicationID,
		domain.ApplicationStatus(req.Status), req.Remarks)
	if err != nil {
		respondDomainError(w, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, statusMessage(result), toApplicationView(result.Application))
}

// statusMessage mirrors the portal's long-standing responses: the transition
// succeeded either way, the wording only reflects whether the mail went out.
func statusMessage(result *service.TransitionResult) string {
	switch result.Application.Status {
	case domain.StatusApproved:
		if result.Notified {
			return "Application approved and email sent successfully"
		}
		return "Application approved (email failed)"
	case domain.StatusRejected:
		if result.Notified {
			return "Application rejected and email sent successfully"
		}
		return "Application rejected (email failed)"
	default:
		return "Status updated successfully"
	}
}
