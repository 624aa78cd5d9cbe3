package handler

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/sunline-energie/offer-api/internal/auth"
	"github.com/sunline-energie/offer-api/internal/config"
)

// AuthHandler exchanges the admin API key for a bearer token
type AuthHandler struct {
	tokens *auth.TokenManager
	cfg    *config.AuthConfig
	logger *zap.Logger
}

func NewAuthHandler(tokens *auth.TokenManager, cfg *config.AuthConfig, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{tokens: tokens, cfg: cfg, logger: logger}
}

type tokenRequest struct {
	APIKey string `json:"apiKey" validate:"required"`
}

type tokenResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"tokenType"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Token handles POST /auth/token
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	if h.cfg.AdminAPIKey == "" ||
		subtle.ConstantTimeCompare([]byte(req.APIKey), []byte(h.cfg.AdminAPIKey)) != 1 {
		h.logger.Warn("token exchange with invalid API key",
			zap.String("remote_addr", r.RemoteAddr))
		respondWithError(w, http.StatusUnauthorized, "Invalid API key")
		return
	}

	token, expiresAt, err := h.tokens.Issue("admin", "admin")
	if err != nil {
		h.logger.Error("failed to issue token", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	respondJSON(w, http.StatusOK, tokenResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: expiresAt,
	})
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"subject": principal.Subject,
		"role":    principal.Role,
	})
}
