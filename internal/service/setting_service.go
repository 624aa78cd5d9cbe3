package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sunline-energie/offer-api/internal/repository"
	"go.uber.org/zap"
)

// SettingService exposes the admin key/value store. Values travel as raw
// JSON so the API stays agnostic of each setting's shape (design colors,
// template collections, the offer number counter).
type SettingService struct {
	repo   *repository.SettingRepository
	logger *zap.Logger
}

func NewSettingService(repo *repository.SettingRepository, logger *zap.Logger) *SettingService {
	return &SettingService{repo: repo, logger: logger}
}

func (s *SettingService) Get(ctx context.Context, key string) (json.RawMessage, error) {
	var value json.RawMessage
	found, err := s.repo.Load(ctx, key, &value)
	if err != nil {
		return nil, fmt.Errorf("load setting %q: %w", key, err)
	}
	if !found {
		return nil, ErrNotFound
	}
	return value, nil
}

func (s *SettingService) Put(ctx context.Context, key string, value json.RawMessage) error {
	if !json.Valid(value) {
		return fmt.Errorf("%w: setting value must be valid JSON", ErrInvalidInput)
	}
	if err := s.repo.Save(ctx, key, value); err != nil {
		return fmt.Errorf("save setting %q: %w", key, err)
	}
	s.logger.Info("setting updated", zap.String("key", key))
	return nil
}

func (s *SettingService) Delete(ctx context.Context, key string) error {
	return s.repo.Delete(ctx, key)
}

func (s *SettingService) ListKeys(ctx context.Context) ([]string, error) {
	return s.repo.ListKeys(ctx)
}
