package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sunline-energie/offer-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingRepository stores admin settings as JSON-encoded key/value
// rows. It backs the offer number counter, the PDF design settings and
// the template collections.
type SettingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// Load unmarshals the setting into out and reports whether it existed
func (r *SettingRepository) Load(ctx context.Context, key string, out any) (bool, error) {
	var setting domain.AdminSetting
	err := r.db.WithContext(ctx).First(&setting, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load setting %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(setting.Value), out); err != nil {
		return false, fmt.Errorf("decode setting %s: %w", key, err)
	}
	return true, nil
}

// Save upserts the JSON encoding of value under key
func (r *SettingRepository) Save(ctx context.Context, key string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode setting %s: %w", key, err)
	}
	setting := domain.AdminSetting{Key: key, Value: string(encoded), UpdatedAt: time.Now().UTC()}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&setting).Error
}

// Delete removes a setting; deleting an absent key is not an error
func (r *SettingRepository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Delete(&domain.AdminSetting{}, "key = ?", key).Error
}

// ListKeys returns all stored setting keys
func (r *SettingRepository) ListKeys(ctx context.Context) ([]string, error) {
	var keys []string
	err := r.db.WithContext(ctx).
		Model(&domain.AdminSetting{}).
		Order("key ASC").
		Pluck("key", &keys).Error
	return keys, err
}
