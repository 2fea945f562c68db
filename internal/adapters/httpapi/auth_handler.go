package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"aidconnect/internal/core/domain"
	"aidconnect/internal/core/service"
)

// AuthHandler owns registration, login and the KYC profile endpoints.
type AuthHandler struct {
	auth *service.AuthService
	log  zerolog.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(auth *service.AuthService, baseLogger *zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		auth: auth,
		log:  baseLogger.With().Str("component", "auth_handler").Logger(),
	}
}

// Routes attaches the auth endpoints to the router.
func (h *AuthHandler) Routes(r chi.Router) {
	r.Post("/register", h.handleRegister)
	r.Post("/login", h.handleLogin)
	r.Post("/admin-login", h.handleAdminLogin)
	r.Get("/users/{userID}", h.handleGetUser)
	r.Put("/users/{userID}/personal-info", h.handleSavePersonalInfo)
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type adminLoginRequest struct {
	AdminID  string `json:"adminId"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string   `json:"token"`
	User  userView `json:"user"`
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	user, token, err := h.auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondDomainError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusCreated, "User registered successfully", authResponse{Token: token, User: toUserView(user)})
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	user, token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondDomainError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, "Login successful", authResponse{Token: token, User: toUserView(user)})
}

func (h *AuthHandler) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	admin, token, err := h.auth.AdminLogin(r.Context(), req.AdminID, req.Password)
	if err != nil {
		respondDomainError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, "Admin login successful", authResponse{Token: token, User: toUserView(admin)})
}

func (h *AuthHandler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUUIDParam(w, r, "userID")
	if !ok {
		return
	}

	user, err := h.auth.GetUser(r.Context(), userID)
	if err != nil {
		respondDomainError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, "OK", toUserView(user))
}

type personalInfoRequest struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	FatherName  *string `json:"fatherName"`
	MotherName  *string `json:"motherName"`
	Mobile      *string `json:"mobile"`
	NationalID  *string `json:"nationalId"`
	TaxID       *string `json:"taxId"`
	Income      *int64  `json:"income"`
	RoutingCode *string `json:"routingCode"`
	BankName    *string `json:"bank"`
}

func (h *AuthHandler) handleSavePersonalInfo(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUUIDParam(w, r, "userID")
	if !ok {
		return
	}

	var req personalInfoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	user, err := h.auth.SavePersonalInfo(r.Context(), userID, domain.PersonalInfo{
		Name:        req.Name,
		Email:       req.Email,
		FatherName:  req.FatherName,
		MotherName:  req.MotherName,
		Mobile:      req.Mobile,
		NationalID:  req.NationalID,
		TaxID:       req.TaxID,
		Income:      req.Income,
		RoutingCode: req.RoutingCode,
		BankName:    req.BankName,
	})
	if err != nil {
		respondDomainError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, "Personal information saved successfully", toUserView(user))
}

// parseUUIDParam reads a UUID path parameter, answering 400 on garbage.
func parseUUIDParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
