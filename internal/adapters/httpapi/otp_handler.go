package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"aidconnect/internal/core/service"
)

// OTPHandler owns the email-verification endpoints.
type OTPHandler struct {
	otp *service.OTPService
	log zerolog.Logger
}

// NewOTPHandler constructs the handler.
func NewOTPHandler(otp *service.OTPService, baseLogger *zerolog.Logger) *OTPHandler {
	return &OTPHandler{
		otp: otp,
		log: baseLogger.With().Str("component", "otp_handler").Logger(),
	}
}

// Routes attaches the OTP endpoints to the router.
func (h *OTPHandler) Routes(r chi.Router) {
	r.Post("/send-otp", h.handleSendOTP)
	r.Post("/verify-otp", h.handleVerifyOTP)
}

type sendOTPRequest struct {
	Email string `json:"email"`
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

func (h *OTPHandler) handleSendOTP(w http.ResponseWriter, r *http.Request) {
	var req sendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		respondError(w, http.StatusBadRequest, "Email is required")
		return
	}

	if err := h.otp.IssueCode(r.Context(), req.Email); err != nil {
		respondDomainError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, "OTP sent successfully", nil)
}

func (h *OTPHandler) handleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.OTP) == "" {
		respondError(w, http.StatusBadRequest, "Email and OTP are required")
		return
	}

	if err := h.otp.VerifyCode(r.Context(), req.Email, req.OTP); err != nil {
		respondDomainError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, "Email verified successfully", nil)
}
