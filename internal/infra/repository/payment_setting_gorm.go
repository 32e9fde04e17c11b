package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentSettingGormRepository struct {
	db *gorm.DB
}

func NewPaymentSettingGormRepository(db *gorm.DB) *PaymentSettingGormRepository {
	return &PaymentSettingGormRepository{db: db}
}

func (r *PaymentSettingGormRepository) FindByProvider(ctx context.Context, provider string) (model.PaymentSetting, error) {
	var s model.PaymentSetting
	err := r.db.WithContext(ctx).Where("provider = ?", provider).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.PaymentSetting{}, repo.ErrNotFound
	}
	if err != nil {
		return model.PaymentSetting{}, err
	}
	return s, nil
}

func (r *PaymentSettingGormRepository) ListEnabled(ctx context.Context) ([]model.PaymentSetting, error) {
	var rows []model.PaymentSetting
	err := r.db.WithContext(ctx).
		Where("enabled = ?", true).
		Order("provider asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// providerをキーにupsert（管理画面からの保存用）。
func (r *PaymentSettingGormRepository) Upsert(ctx context.Context, setting model.PaymentSetting) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "provider"}},
			DoUpdates: clause.AssignmentColumns([]string{"enabled", "value_json", "updated_at"}),
		}).
		Create(&setting).Error
}
