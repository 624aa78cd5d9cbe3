package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/sunline-energie/offer-api/internal/domain"
	"github.com/sunline-energie/offer-api/internal/service"
)

// CompanyHandler serves installer firm endpoints
type CompanyHandler struct {
	companies *service.CompanyService
	logger    *zap.Logger
}

func NewCompanyHandler(companies *service.CompanyService, logger *zap.Logger) *CompanyHandler {
	return &CompanyHandler{companies: companies, logger: logger}
}

// List handles GET /companies
func (h *CompanyHandler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("activeOnly") == "true"
	companies, err := h.companies.List(r.Context(), activeOnly)
	if err != nil {
		h.logger.Error("failed to list companies", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list companies")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"data": companies})
}

// GetByID handles GET /companies/{id}
func (h *CompanyHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid company ID")
		return
	}

	company, err := h.companies.GetByID(r.Context(), id)
	if err != nil {
		h.respondCompanyError(w, err, "Failed to get company")
		return
	}
	respondJSON(w, http.StatusOK, company)
}

// Create handles POST /companies
func (h *CompanyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var company domain.Company
	if err := json.NewDecoder(r.Body).Decode(&company); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.companies.Create(r.Context(), &company)
	if err != nil {
		h.respondCompanyError(w, err, "Failed to create company")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// Update handles PUT /companies/{id}
func (h *CompanyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid company ID")
		return
	}

	var company domain.Company
	if err := json.NewDecoder(r.Body).Decode(&company); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.companies.Update(r.Context(), id, &company)
	if err != nil {
		h.respondCompanyError(w, err, "Failed to update company")
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// SetActive handles PUT /companies/{id}/active
func (h *CompanyHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid company ID")
		return
	}

	var req struct {
		Active bool `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.companies.SetActive(r.Context(), id, req.Active); err != nil {
		h.respondCompanyError(w, err, "Failed to change company state")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /companies/{id}
func (h *CompanyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid company ID")
		return
	}

	if err := h.companies.Delete(r.Context(), id); err != nil {
		h.respondCompanyError(w, err, "Failed to delete company")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CompanyHandler) respondCompanyError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "Company not found")
	case errors.Is(err, service.ErrInvalidInput):
		respondWithError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error(fallback, zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, fallback)
	}
}
