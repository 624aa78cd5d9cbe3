package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sunline-energie/offer-api/internal/domain"
	"gorm.io/gorm"
)

// OfferRepository records generated offers for history and retention
// housekeeping. The PDFs themselves live in file storage; rows only
// carry metadata and the storage path.
type OfferRepository struct {
	db *gorm.DB
}

func NewOfferRepository(db *gorm.DB) *OfferRepository {
	return &OfferRepository{db: db}
}

func (r *OfferRepository) Create(ctx context.Context, offer *domain.GeneratedOffer) error {
	if offer.ID == uuid.Nil {
		offer.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(offer).Error
}

func (r *OfferRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.GeneratedOffer, error) {
	var offer domain.GeneratedOffer
	err := r.db.WithContext(ctx).First(&offer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &offer, nil
}

func (r *OfferRepository) List(ctx context.Context, companyID int64, page, pageSize int) ([]domain.GeneratedOffer, int64, error) {
	var offers []domain.GeneratedOffer
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.GeneratedOffer{})
	if companyID > 0 {
		query = query.Where("company_id = ?", companyID)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Order("created_at DESC").Find(&offers).Error
	return offers, total, err
}

// ListOlderThan returns offers created before the cutoff, oldest first.
// The retention job uses this to clean both rows and stored files.
func (r *OfferRepository) ListOlderThan(ctx context.Context, cutoff time.Time, limit int) ([]domain.GeneratedOffer, error) {
	var offers []domain.GeneratedOffer
	query := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&offers).Error
	return offers, err
}

func (r *OfferRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.GeneratedOffer{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
