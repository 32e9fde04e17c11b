package repository

import (
	"context"

	"app/internal/domain/model"
)

type PaymentSettingRepository interface {
	FindByProvider(ctx context.Context, provider string) (model.PaymentSetting, error)
	//enabled=true の行だけ
	ListEnabled(ctx context.Context) ([]model.PaymentSetting, error)
	Upsert(ctx context.Context, setting model.PaymentSetting) error
}
