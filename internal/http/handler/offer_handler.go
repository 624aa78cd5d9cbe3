package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sunline-energie/offer-api/internal/domain"
	"github.com/sunline-energie/offer-api/internal/offer"
	"github.com/sunline-energie/offer-api/internal/service"
)

// OfferHandler serves offer generation and history endpoints
type OfferHandler struct {
	offers *service.OfferService
	logger *zap.Logger
}

func NewOfferHandler(offers *service.OfferService, logger *zap.Logger) *OfferHandler {
	return &OfferHandler{offers: offers, logger: logger}
}

type generateResponse struct {
	Offer  *domain.GeneratedOffer `json:"offer"`
	Issues []string               `json:"issues,omitempty"`
}

// Generate handles POST /offers/generate. On success the PDF streams
// back directly; metadata travels in response headers.
func (h *OfferHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req domain.GenerateOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}
	if err := validateSections(req.Sections); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.offers.Generate(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCompanyNotFound):
			respondWithError(w, http.StatusNotFound, "Company not found")
		case errors.Is(err, service.ErrCompanyInactive):
			respondWithError(w, http.StatusConflict, "Company is not active")
		default:
			h.logger.Error("offer generation failed", zap.Error(err))
			respondWithError(w, http.StatusInternalServerError, "Offer generation failed")
		}
		return
	}

	ext := ".pdf"
	if result.Record.Fallback {
		ext = ".txt"
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s%s"`, result.Record.OfferNumber, ext))
	w.Header().Set("X-Offer-Id", result.Record.ID.String())
	w.Header().Set("X-Offer-Number", result.Record.OfferNumber)
	if result.Record.Fallback {
		w.Header().Set("X-Offer-Fallback", "true")
	}
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write(result.Document)
}

// GenerateJSON handles POST /offers/generate-record: same pipeline but
// responds with the record and issues instead of the document bytes.
func (h *OfferHandler) GenerateJSON(w http.ResponseWriter, r *http.Request) {
	var req domain.GenerateOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}
	if err := validateSections(req.Sections); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.offers.Generate(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCompanyNotFound):
			respondWithError(w, http.StatusNotFound, "Company not found")
		case errors.Is(err, service.ErrCompanyInactive):
			respondWithError(w, http.StatusConflict, "Company is not active")
		default:
			h.logger.Error("offer generation failed", zap.Error(err))
			respondWithError(w, http.StatusInternalServerError, "Offer generation failed")
		}
		return
	}

	respondJSON(w, http.StatusCreated, generateResponse{
		Offer:  result.Record,
		Issues: issueStrings(result.Issues),
	})
}

// List handles GET /offers
func (h *OfferHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := paginationParams(r)
	var companyID int64
	if v := r.URL.Query().Get("companyId"); v != "" {
		companyID, _ = strconv.ParseInt(v, 10, 64)
	}

	offers, total, err := h.offers.List(r.Context(), companyID, page, pageSize)
	if err != nil {
		h.logger.Error("failed to list offers", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list offers")
		return
	}
	respondJSON(w, http.StatusOK, paginated(offers, total, page, pageSize))
}

// GetByID handles GET /offers/{id}
func (h *OfferHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid offer ID")
		return
	}

	record, err := h.offers.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Offer not found")
			return
		}
		h.logger.Error("failed to get offer", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to get offer")
		return
	}
	respondJSON(w, http.StatusOK, record)
}

// Download handles GET /offers/{id}/document
func (h *OfferHandler) Download(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid offer ID")
		return
	}

	record, rc, contentType, err := h.offers.GetDocument(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Offer not found")
			return
		}
		h.logger.Error("failed to download offer document", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to download offer document")
		return
	}
	defer rc.Close()

	ext := ".pdf"
	if record.Fallback {
		ext = ".txt"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s%s"`, record.OfferNumber, ext))
	if record.SizeBytes > 0 {
		w.Header().Set("Content-Length", fmt.Sprintf("%d", record.SizeBytes))
	}
	if _, err := io.Copy(w, rc); err != nil {
		h.logger.Warn("offer document stream interrupted",
			zap.String("offerNumber", record.OfferNumber), zap.Error(err))
	}
}

// Delete handles DELETE /offers/{id}
func (h *OfferHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid offer ID")
		return
	}

	if err := h.offers.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Offer not found")
			return
		}
		h.logger.Error("failed to delete offer", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to delete offer")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func validateSections(sections []string) error {
	if sections == nil {
		return nil
	}
	known := make(map[string]bool)
	for _, s := range domain.AllSections() {
		known[s] = true
	}
	for _, s := range sections {
		if !known[s] {
			return fmt.Errorf("unknown section: %s", s)
		}
	}
	return nil
}

func issueStrings(issues []offer.RenderIssue) []string {
	if len(issues) == 0 {
		return nil
	}
	out := make([]string, len(issues))
	for i, issue := range issues {
		out[i] = issue.String()
	}
	return out
}
