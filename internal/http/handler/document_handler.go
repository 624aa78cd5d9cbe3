package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/sunline-energie/offer-api/internal/domain"
	"github.com/sunline-energie/offer-api/internal/service"
)

// DocumentHandler serves company appendix document endpoints
type DocumentHandler struct {
	documents *service.DocumentService
	logger    *zap.Logger
}

func NewDocumentHandler(documents *service.DocumentService, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{documents: documents, logger: logger}
}

type registerDocumentRequest struct {
	CompanyID    int64  `json:"companyId" validate:"required,gt=0"`
	DisplayName  string `json:"displayName" validate:"required,max=200"`
	DocumentType string `json:"documentType" validate:"max=50"`
	RelativePath string `json:"relativePath" validate:"required,max=500"`
}

// ListForCompany handles GET /companies/{id}/documents
func (h *DocumentHandler) ListForCompany(w http.ResponseWriter, r *http.Request) {
	companyID, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid company ID")
		return
	}
	documentType := r.URL.Query().Get("type")

	docs, err := h.documents.ListForCompany(r.Context(), companyID, documentType)
	if err != nil {
		h.logger.Error("failed to list company documents", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list documents")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"data": docs})
}

// Register handles POST /documents
func (h *DocumentHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	doc, err := h.documents.Register(r.Context(), &domain.CompanyDocument{
		CompanyID:    req.CompanyID,
		DisplayName:  req.DisplayName,
		DocumentType: req.DocumentType,
		RelativePath: req.RelativePath,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			respondWithError(w, http.StatusNotFound, "Company not found")
		case errors.Is(err, service.ErrInvalidInput), errors.Is(err, domain.ErrEmptyDocumentPath):
			respondWithError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("failed to register document", zap.Error(err))
			respondWithError(w, http.StatusInternalServerError, "Failed to register document")
		}
		return
	}
	respondJSON(w, http.StatusCreated, doc)
}

// Delete handles DELETE /documents/{id}
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid document ID")
		return
	}

	if err := h.documents.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Document not found")
			return
		}
		h.logger.Error("failed to delete document", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to delete document")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
