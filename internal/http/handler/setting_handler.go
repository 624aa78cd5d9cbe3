package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sunline-energie/offer-api/internal/service"
)

// SettingHandler serves the admin key/value store. Values are opaque
// JSON documents.
type SettingHandler struct {
	settings *service.SettingService
	logger   *zap.Logger
}

func NewSettingHandler(settings *service.SettingService, logger *zap.Logger) *SettingHandler {
	return &SettingHandler{settings: settings, logger: logger}
}

// ListKeys handles GET /settings
func (h *SettingHandler) ListKeys(w http.ResponseWriter, r *http.Request) {
	keys, err := h.settings.ListKeys(r.Context())
	if err != nil {
		h.logger.Error("failed to list setting keys", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list settings")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"keys": keys})
}

// Get handles GET /settings/{key}
func (h *SettingHandler) Get(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	value, err := h.settings.Get(r.Context(), key)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Setting not found")
			return
		}
		h.logger.Error("failed to load setting", zap.String("key", key), zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to load setting")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"key":   key,
		"value": value,
	})
}

// Put handles PUT /settings/{key}; the request body is the raw JSON value
func (h *SettingHandler) Put(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	body, err := io.ReadAll(io.LimitReader(r.Body, 10<<20))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	if err := h.settings.Put(r.Context(), key, json.RawMessage(body)); err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("failed to save setting", zap.String("key", key), zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to save setting")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /settings/{key}
func (h *SettingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	if err := h.settings.Delete(r.Context(), key); err != nil {
		h.logger.Error("failed to delete setting", zap.String("key", key), zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to delete setting")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
