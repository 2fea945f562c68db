package httpapi

import (
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"aidconnect/internal/core/domain"
	"aidconnect/internal/core/ports"
	"aidconnect/internal/core/service"
)

// maxUploadMemory bounds the in-memory part of multipart parsing; larger
// parts spill to temp files.
const maxUploadMemory = 16 << 20

// DocumentHandler owns the photo/document intake endpoints. It stores the
// files through the blob store, then hands the stored names to the lifecycle
// service for bookkeeping on the user and application records.
type DocumentHandler struct {
	lifecycle *service.LifecycleService
	auth      *service.AuthService
	blobs     ports.BlobStore
	log       zerolog.Logger
}

// NewDocumentHandler constructs the handler.
func NewDocumentHandler(lifecycle *service.LifecycleService, auth *service.AuthService, blobs ports.BlobStore, baseLogger *zerolog.Logger) *DocumentHandler {
	return &DocumentHandler{
		lifecycle: lifecycle,
		auth:      auth,
		blobs:     blobs,
		log:       baseLogger.With().Str("component", "document_handler").Logger(),
	}
}

// Routes attaches the intake endpoints to the router.
func (h *DocumentHandler) Routes(r chi.Router) {
	r.Post("/upload-photo", h.handleUploadPhoto)
	r.Post("/upload-documents", h.handleUploadDocuments)
	r.Get("/user-documents/{userID}", h.handleGetUserDocuments)
}

func (h *DocumentHandler) handleUploadPhoto(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart payload")
		return
	}

	userID, err := uuid.Parse(r.FormValue("userId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid userId")
		return
	}
	applicationID, ok := optionalUUID(w, r.FormValue("applicationId"))
	if !ok {
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		respondError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	filename, err := h.blobs.Store(r.Context(), ports.BlobPhoto, header.Filename, file)
	if err != nil {
		respondDomainError(w, h.log, err)
		return
	}

	var schemeTitle *string
	if title := strings.TrimSpace(r.FormValue("schemeTitle")); title != "" {
		schemeTitle = &title
	}

	if err := h.lifecycle.AttachPhoto(r.Context(), userID, applicationID, filename, schemeTitle); err != nil {
		respondDomainError(w, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, "Photo uploaded successfully", map[string]string{
		"filename": filename,
		"url":      h.blobs.Resolve(filename),
	})
}

func (h *DocumentHandler) handleUploadDocuments(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart payload")
		return
	}

	userID, err := uuid.Parse(r.FormValue("userId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "User ID is required")
		return
	}
	applicationID, ok := optionalUUID(w, r.FormValue("applicationId"))
	if !ok {
		return
	}

	var docs domain.DocumentSet
	var uploaded []string

	fields := []struct {
		name string
		kind ports.BlobKind
		dest **string
	}{
		{"signature", ports.BlobSignature, &docs.Signature},
		{"nationalId", ports.BlobDocument, &docs.NationalID},
		{"taxId", ports.BlobDocument, &docs.TaxID},
		{"residentialCertificate", ports.BlobDocument, &docs.ResidentialCertificate},
	}
	for _, f := range fields {
		filename, err := h.storeFormFile(r, f.name, f.kind)
		if err != nil {
			respondDomainError(w, h.log, err)
			return
		}
		if filename != nil {
			*f.dest = filename
			uploaded = append(uploaded, f.name)
		}
	}

	if docs.IsEmpty() {
		respondError(w, http.StatusBadRequest, "No documents uploaded")
		return
	}

	user, err := h.lifecycle.AttachDocuments(r.Context(), userID, applicationID, docs)
	if err != nil {
		respondDomainError(w, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, "Documents uploaded successfully", map[string]any{
		"documents":     toDocumentsView(user.Documents),
		"uploadedFiles": uploaded,
		"userId":        userID.String(),
	})
}

func (h *DocumentHandler) handleGetUserDocuments(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUUIDParam(w, r, "userID")
	if !ok {
		return
	}

	user, err := h.auth.GetUser(r.Context(), userID)
	if err != nil {
		respondDomainError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, "OK", map[string]any{"documents": toDocumentsView(user.Documents)})
}

// storeFormFile persists one optional multipart file field, returning nil
// when the field is absent.
func (h *DocumentHandler) storeFormFile(r *http.Request, field string, kind ports.BlobKind) (*string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil
		}
		return nil, err
	}
	defer func(f multipart.File) { _ = f.Close() }(file)

	filename, err := h.blobs.Store(r.Context(), kind, header.Filename, file)
	if err != nil {
		return nil, err
	}
	return &filename, nil
}

// optionalUUID parses a form value that may legitimately be empty.
func optionalUUID(w http.ResponseWriter, raw string) (*uuid.UUID, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid applicationId")
		return nil, false
	}
	return &id, true
}
