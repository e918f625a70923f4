package handler

import (
	"encoding/json"
	"net/http"

	"order-desk/internal/auth"
	"order-desk/internal/model"

	"github.com/rs/zerolog"
)

// AuthHandler lets a client check operator credentials before using them
// on the protected routes.
type AuthHandler struct {
	verifier auth.CredentialVerifier
	logger   zerolog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(verifier auth.CredentialVerifier, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		verifier: verifier,
		logger:   logger.With().Str("handler", "auth").Logger(),
	}
}

// Login handles POST /api/login requests. It answers 204 for valid
// credentials and 401 otherwise; no session is created.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	if !h.verifier.Verify(req.Username, req.Password) {
		writeError(w, r, http.StatusUnauthorized, model.ErrCodeUnauthorised, "Invalid username or password", h.logger)
		return
	}

	h.logger.Info().Str("username", req.Username).Msg("operator logged in")
	w.WriteHeader(http.StatusNoContent)
}
