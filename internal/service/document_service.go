package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sunline-energie/offer-api/internal/domain"
	"github.com/sunline-energie/offer-api/internal/repository"
	"go.uber.org/zap"
)

// DocumentService manages company appendix documents (terms, warranty
// conditions, certificates). Files live under a configured base
// directory; the database stores relative paths only.
type DocumentService struct {
	docs      *repository.DocumentRepository
	companies *repository.CompanyRepository
	baseDir   string
	logger    *zap.Logger
}

func NewDocumentService(docs *repository.DocumentRepository, companies *repository.CompanyRepository, baseDir string, logger *zap.Logger) *DocumentService {
	return &DocumentService{docs: docs, companies: companies, baseDir: baseDir, logger: logger}
}

func (s *DocumentService) Register(ctx context.Context, doc *domain.CompanyDocument) (*domain.CompanyDocument, error) {
	if strings.TrimSpace(doc.DisplayName) == "" {
		return nil, fmt.Errorf("%w: display name is required", ErrInvalidInput)
	}
	rel, err := s.cleanRelativePath(doc.RelativePath)
	if err != nil {
		return nil, err
	}
	doc.RelativePath = rel

	if _, err := s.companies.GetByID(ctx, doc.CompanyID); err != nil {
		return nil, err
	}
	if _, err := os.Stat(filepath.Join(s.baseDir, filepath.FromSlash(rel))); err != nil {
		return nil, fmt.Errorf("%w: document file not found: %s", ErrInvalidInput, rel)
	}

	doc.ID = 0
	if err := s.docs.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("register document: %w", err)
	}
	s.logger.Info("company document registered",
		zap.Int64("id", doc.ID),
		zap.Int64("companyId", doc.CompanyID),
		zap.String("path", doc.RelativePath),
	)
	return doc, nil
}

func (s *DocumentService) GetByID(ctx context.Context, id int64) (*domain.CompanyDocument, error) {
	return s.docs.GetByID(ctx, id)
}

func (s *DocumentService) ListForCompany(ctx context.Context, companyID int64, documentType string) ([]domain.CompanyDocument, error) {
	return s.docs.ListCompanyDocuments(ctx, companyID, documentType)
}

func (s *DocumentService) Delete(ctx context.Context, id int64) error {
	return s.docs.Delete(ctx, id)
}

// ListCompanyDocuments implements the document pipeline's appendix lookup
func (s *DocumentService) ListCompanyDocuments(ctx context.Context, companyID int64, documentType string) ([]domain.CompanyDocument, error) {
	return s.docs.ListCompanyDocuments(ctx, companyID, documentType)
}

// cleanRelativePath normalizes a stored path and rejects anything that
// would escape the document base directory.
func (s *DocumentService) cleanRelativePath(p string) (string, error) {
	p = strings.TrimSpace(p)
	if p == "" {
		return "", domain.ErrEmptyDocumentPath
	}
	rel := filepath.ToSlash(filepath.Clean(filepath.FromSlash(p)))
	if rel == "." || strings.HasPrefix(rel, "../") || rel == ".." || filepath.IsAbs(rel) {
		return "", fmt.Errorf("%w: invalid document path: %s", ErrInvalidInput, p)
	}
	return rel, nil
}
