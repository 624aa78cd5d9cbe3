package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sunline-energie/offer-api/internal/domain"
	"github.com/sunline-energie/offer-api/internal/repository"
	"go.uber.org/zap"
)

var validCategories = map[domain.ProductCategory]bool{
	domain.CategoryModule:         true,
	domain.CategoryInverter:       true,
	domain.CategoryStorage:        true,
	domain.CategoryWallbox:        true,
	domain.CategoryEMS:            true,
	domain.CategoryOptimizer:      true,
	domain.CategoryCarport:        true,
	domain.CategoryEmergencyPower: true,
	domain.CategoryAnimalDefense:  true,
}

// ProductService manages the component catalog and doubles as the
// product lookup for document generation.
type ProductService struct {
	repo   *repository.ProductRepository
	logger *zap.Logger
}

func NewProductService(repo *repository.ProductRepository, logger *zap.Logger) *ProductService {
	return &ProductService{repo: repo, logger: logger}
}

func (s *ProductService) Create(ctx context.Context, req *domain.ProductDTO) (*domain.Product, error) {
	if !validCategories[domain.ProductCategory(req.Category)] {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidCategory, req.Category)
	}
	if existing, err := s.repo.GetByModelName(ctx, req.ModelName); err == nil && existing != nil {
		return nil, domain.ErrDuplicateModel
	} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check model name: %w", err)
	}

	product := productFromDTO(req)
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	s.logger.Info("product created",
		zap.Int64("id", product.ID),
		zap.String("category", string(product.Category)),
		zap.String("model", product.ModelName),
	)
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, id int64, req *domain.ProductDTO) (*domain.Product, error) {
	if !validCategories[domain.ProductCategory(req.Category)] {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidCategory, req.Category)
	}
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing, err := s.repo.GetByModelName(ctx, req.ModelName); err == nil && existing.ID != id {
		return nil, domain.ErrDuplicateModel
	} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check model name: %w", err)
	}

	updated := productFromDTO(req)
	updated.ID = product.ID
	updated.CreatedAt = product.CreatedAt
	if err := s.repo.Update(ctx, updated); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return updated, nil
}

func (s *ProductService) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *ProductService) List(ctx context.Context, category, search string, page, pageSize int) ([]domain.Product, int64, error) {
	return s.repo.List(ctx, category, search, page, pageSize)
}

func (s *ProductService) ListCategories(ctx context.Context) ([]string, error) {
	return s.repo.ListCategories(ctx)
}

// ByID implements the document pipeline's product lookup
func (s *ProductService) ByID(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// ByModelName implements the document pipeline's product lookup
func (s *ProductService) ByModelName(ctx context.Context, modelName string) (*domain.Product, error) {
	return s.repo.GetByModelName(ctx, modelName)
}

func productFromDTO(req *domain.ProductDTO) *domain.Product {
	return &domain.Product{
		Category:            domain.ProductCategory(req.Category),
		ModelName:           req.ModelName,
		Brand:               req.Brand,
		PriceEuro:           req.PriceEuro,
		CapacityW:           req.CapacityW,
		StoragePowerKW:      req.StoragePowerKW,
		PowerKW:             req.PowerKW,
		MaxCycles:           req.MaxCycles,
		WarrantyYears:       req.WarrantyYears,
		LengthM:             req.LengthM,
		WidthM:              req.WidthM,
		WeightKg:            req.WeightKg,
		EfficiencyPercent:   req.EfficiencyPercent,
		OriginCountry:       req.OriginCountry,
		Description:         req.Description,
		ImageBase64:         req.ImageBase64,
		DatasheetPath:       req.DatasheetPath,
		AdditionalCostNetto: req.AdditionalCostNetto,
	}
}
