package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"aidconnect/internal/core/domain"
	"aidconnect/internal/core/ports"
	"aidconnect/internal/core/service"
)

// SchemeHandler owns the scheme catalog endpoints. Reads are public,
// mutations are for nodal officers (admin token).
type SchemeHandler struct {
	catalog   *service.CatalogService
	validator ports.TokenValidator
	log       zerolog.Logger
}

// NewSchemeHandler constructs the handler.
func NewSchemeHandler(catalog *service.CatalogService, validator ports.TokenValidator, baseLogger *zerolog.Logger) *SchemeHandler {
	return &SchemeHandler{
		catalog:   catalog,
		validator: validator,
		log:       baseLogger.With().Str("component", "scheme_handler").Logger(),
	}
}

// Routes attaches the catalog endpoints to the router.
func (h *SchemeHandler) Routes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Get("/{externalID}", h.handleGet)

	r.Group(func(admin chi.Router) {
		admin.Use(requireAuth(h.validator, h.log), requireAdmin)
		admin.Post("/", h.handleCreate)
		admin.Put("/{externalID}", h.handleUpdate)
		admin.Delete("/{externalID}", h.handleDelete)
	})
}

type schemeRequest struct {
	ID               int64  `json:"id"`
	Title            string `json:"title"`
	Description      string `json:"desc"`
	StartDate        string `json:"startDate"`
	EndDate          string `json:"endDate"`
	FeeDate          string `json:"feeDate"`
	CorrectionWindow string `json:"correctionWindow"`
	Category         string `json:"category"`
	Priority         string `json:"priority"`
	LastUpdated      string `json:"lastUpdated"`
	Status           string `json:"status"`
}

func (req schemeRequest) toDomain() *domain.Scheme {
	return &domain.Scheme{
		ExternalID:       req.ID,
		Title:            req.Title,
		Description:      req.Description,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		FeeDate:          req.FeeDate,
		CorrectionWindow: req.CorrectionWindow,
		Category:         req.Category,
		Priority:         req.Priority,
		LastUpdated:      req.LastUpdated,
		Status:           domain.SchemeStatus(req.Status),
	}
}

func (h *SchemeHandler) handleList(w http.ResponseWriter, r *http.Request) {
	schemes, err := h.catalog.List(r.Context())
	if err != nil {
		respondDomainError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, "OK", toSchemeViews(schemes))
}

func (h *SchemeHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	externalID, ok := parseExternalID(w, r)
	if !ok {
		return
	}
	scheme, err := h.catalog.Get(r.Context(), externalID)
	if err != nil {
		respondDomainError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, "OK", toSchemeView(scheme))
}

func (h *SchemeHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req schemeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	scheme, err := h.catalog.Create(r.Context(), req.toDomain())
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, "Scheme created successfully", toSchemeView(scheme))
}

func (h *SchemeHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	externalID, ok := parseExternalID(w, r)
	if !ok {
		return
	}

	var req schemeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	scheme := req.toDomain()
	scheme.ExternalID = externalID

	updated, err := h.catalog.Update(r.Context(), scheme)
	if err != nil {
		respondDomainError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, "Scheme updated successfully", toSchemeView(updated))
}

func (h *SchemeHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	externalID, ok := parseExternalID(w, r)
	if !ok {
		return
	}
	if err := h.catalog.Delete(r.Context(), externalID); err != nil {
		respondDomainError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, "Scheme deleted successfully", nil)
}

func parseExternalID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "externalID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid scheme id")
		return 0, false
	}
	return id, true
}
