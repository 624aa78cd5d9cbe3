package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sunline-energie/offer-api/internal/domain"
	"github.com/sunline-energie/offer-api/internal/offer"
	"github.com/sunline-energie/offer-api/internal/repository"
	"github.com/sunline-energie/offer-api/internal/storage"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeText = "text/plain; charset=utf-8"
)

// GeneratedDocument is the outcome of one generation run: the stored
// history record, the document bytes and the issues collected along the
// way. ContentType distinguishes the plaintext fallback from a real PDF.
type GeneratedDocument struct {
	Record      *domain.GeneratedOffer
	Document    []byte
	ContentType string
	Issues      []offer.RenderIssue
}

// OfferService drives the generation pipeline: it resolves the company,
// runs the document generator, persists the result and serves the
// offer history.
type OfferService struct {
	offers    *repository.OfferRepository
	companies *repository.CompanyRepository
	generator *offer.Generator
	store     storage.Storage
	logger    *zap.Logger
}

func NewOfferService(
	offers *repository.OfferRepository,
	companies *repository.CompanyRepository,
	generator *offer.Generator,
	store storage.Storage,
	logger *zap.Logger,
) *OfferService {
	return &OfferService{
		offers:    offers,
		companies: companies,
		generator: generator,
		store:     store,
		logger:    logger,
	}
}

// Generate runs one offer generation end to end. Rendering problems
// never fail the call: the generator degrades to a plaintext fallback
// and the issues travel back to the caller.
func (s *OfferService) Generate(ctx context.Context, req *domain.GenerateOfferRequest) (*GeneratedDocument, error) {
	company, err := s.companies.GetByID(ctx, req.CompanyID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("load company: %w", err)
	}
	if !company.IsActive {
		return nil, ErrCompanyInactive
	}

	result, err := s.generator.Generate(ctx, offer.GenerateInput{
		Project:          req.Project,
		Analysis:         req.Analysis,
		Company:          companyInfo(company),
		CompanyID:        company.ID,
		TitleImageBase64: req.TitleImageBase64,
		OfferTitleText:   req.OfferTitleText,
		CoverLetterText:  req.CoverLetterText,
		Sections:         req.Sections,
		Options:          req.Options,
	})
	if err != nil {
		return nil, fmt.Errorf("generate offer: %w", err)
	}

	contentType := contentTypePDF
	filename := result.OfferNumber + ".pdf"
	if result.Fallback {
		contentType = contentTypeText
		filename = result.OfferNumber + ".txt"
	}

	storagePath, size, err := s.store.Upload(ctx, filename, contentType, bytes.NewReader(result.Document))
	if err != nil {
		return nil, fmt.Errorf("store offer document: %w", err)
	}

	record := &domain.GeneratedOffer{
		ID:           uuid.New(),
		OfferNumber:  result.OfferNumber,
		CompanyID:    company.ID,
		CustomerName: customerDisplayName(req.Project.Customer),
		AnlageKWp:    req.Analysis.KPIOr("anlage_kwp", 0),
		StoragePath:  storagePath,
		SizeBytes:    size,
		Fallback:     result.Fallback,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.offers.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("record offer: %w", err)
	}

	s.logger.Info("offer generated",
		zap.String("offerNumber", result.OfferNumber),
		zap.Int64("companyId", company.ID),
		zap.Bool("fallback", result.Fallback),
		zap.Int("issues", len(result.Issues)),
		zap.Int64("sizeBytes", size),
	)

	return &GeneratedDocument{
		Record:      record,
		Document:    result.Document,
		ContentType: contentType,
		Issues:      result.Issues,
	}, nil
}

func (s *OfferService) List(ctx context.Context, companyID int64, page, pageSize int) ([]domain.GeneratedOffer, int64, error) {
	return s.offers.List(ctx, companyID, page, pageSize)
}

func (s *OfferService) GetByID(ctx context.Context, id uuid.UUID) (*domain.GeneratedOffer, error) {
	return s.offers.GetByID(ctx, id)
}

// GetDocument streams a stored offer document. The content type is
// derived from the record's fallback flag.
func (s *OfferService) GetDocument(ctx context.Context, id uuid.UUID) (*domain.GeneratedOffer, io.ReadCloser, string, error) {
	record, err := s.offers.GetByID(ctx, id)
	if err != nil {
		return nil, nil, "", err
	}
	rc, err := s.store.Download(ctx, record.StoragePath)
	if err != nil {
		return nil, nil, "", fmt.Errorf("download offer document: %w", err)
	}
	contentType := contentTypePDF
	if record.Fallback {
		contentType = contentTypeText
	}
	return record, rc, contentType, nil
}

// Delete removes the history row and its stored document. A missing
// file is tolerated so a half-deleted offer can still be cleaned up.
func (s *OfferService) Delete(ctx context.Context, id uuid.UUID) error {
	record, err := s.offers.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, record.StoragePath); err != nil {
		s.logger.Warn("failed to delete offer document from storage",
			zap.String("path", record.StoragePath), zap.Error(err))
	}
	return s.offers.Delete(ctx, id)
}

func companyInfo(c *domain.Company) domain.CompanyInfo {
	return domain.CompanyInfo{
		Name:          c.Name,
		Street:        c.Street,
		ZipCode:       c.ZipCode,
		City:          c.City,
		Phone:         c.Phone,
		Email:         c.Email,
		Website:       c.Website,
		TaxID:         c.TaxID,
		LogoBase64:    c.LogoBase64,
		PDFFooterText: c.PDFFooterText,
	}
}

func customerDisplayName(c domain.CustomerData) string {
	name := c.FirstName
	if c.LastName != "" {
		if name != "" {
			name += " "
		}
		name += c.LastName
	}
	if name == "" {
		name = c.CompanyName
	}
	return name
}
