package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sunline-energie/offer-api/internal/domain"
	"github.com/sunline-energie/offer-api/internal/repository"
	"go.uber.org/zap"
)

// CompanyService manages installer firms
type CompanyService struct {
	repo   *repository.CompanyRepository
	logger *zap.Logger
}

func NewCompanyService(repo *repository.CompanyRepository, logger *zap.Logger) *CompanyService {
	return &CompanyService{repo: repo, logger: logger}
}

func (s *CompanyService) Create(ctx context.Context, company *domain.Company) (*domain.Company, error) {
	if strings.TrimSpace(company.Name) == "" {
		return nil, fmt.Errorf("%w: company name is required", ErrInvalidInput)
	}
	company.ID = 0
	if err := s.repo.Create(ctx, company); err != nil {
		return nil, fmt.Errorf("create company: %w", err)
	}
	s.logger.Info("company created", zap.Int64("id", company.ID), zap.String("name", company.Name))
	return company, nil
}

func (s *CompanyService) GetByID(ctx context.Context, id int64) (*domain.Company, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CompanyService) Update(ctx context.Context, id int64, update *domain.Company) (*domain.Company, error) {
	if strings.TrimSpace(update.Name) == "" {
		return nil, fmt.Errorf("%w: company name is required", ErrInvalidInput)
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	update.ID = existing.ID
	update.CreatedAt = existing.CreatedAt
	if err := s.repo.Update(ctx, update); err != nil {
		return nil, fmt.Errorf("update company: %w", err)
	}
	return update, nil
}

func (s *CompanyService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *CompanyService) List(ctx context.Context, activeOnly bool) ([]domain.Company, error) {
	return s.repo.List(ctx, activeOnly)
}

func (s *CompanyService) SetActive(ctx context.Context, id int64, active bool) error {
	if err := s.repo.SetActive(ctx, id, active); err != nil {
		return err
	}
	s.logger.Info("company active flag changed", zap.Int64("id", id), zap.Bool("active", active))
	return nil
}
