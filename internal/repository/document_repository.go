package repository

import (
	"context"
	"errors"

	"github.com/sunline-energie/offer-api/internal/domain"
	"gorm.io/gorm"
)

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) Create(ctx context.Context, doc *domain.CompanyDocument) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *DocumentRepository) GetByID(ctx context.Context, id int64) (*domain.CompanyDocument, error) {
	var doc domain.CompanyDocument
	err := r.db.WithContext(ctx).First(&doc, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// ListCompanyDocuments returns the appendix documents of a company; an
// empty documentType matches all types.
func (r *DocumentRepository) ListCompanyDocuments(ctx context.Context, companyID int64, documentType string) ([]domain.CompanyDocument, error) {
	var docs []domain.CompanyDocument
	query := r.db.WithContext(ctx).Where("company_id = ?", companyID)
	if documentType != "" {
		query = query.Where("document_type = ?", documentType)
	}
	err := query.Order("display_name ASC").Find(&docs).Error
	return docs, err
}

func (r *DocumentRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&domain.CompanyDocument{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
