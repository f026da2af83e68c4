package repository

import (
	"context"
	"errors"
	"voidwebsite/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingsRepository interface {
	GetSetting(ctx context.Context, name string) (*models.PricingSetting, error)
	GetAllSettings(ctx context.Context) ([]models.PricingSetting, error)
	UpsertSetting(ctx context.Context, setting *models.PricingSetting) error
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) GetSetting(ctx context.Context, name string) (*models.PricingSetting, error) {
	var setting models.PricingSetting
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *settingsRepository) GetAllSettings(ctx context.Context) ([]models.PricingSetting, error) {
	var settings []models.PricingSetting
	err := r.db.WithContext(ctx).Order("name asc").Find(&settings).Error
	return settings, err
}

func (r *settingsRepository) UpsertSetting(ctx context.Context, setting *models.PricingSetting) error {
	setting.UpdatedAt = models.Now()
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(setting).Error
}
