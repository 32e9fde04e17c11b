package payment

import (
	"context"

	"app/internal/domain/model"
	"app/internal/repository"

	"go.uber.org/zap"
)

// EnsureDefaultSettings は既知プロバイダの設定行が無ければ無効状態で作る。
// 管理側はenabledを立てて設定JSONを埋めるだけでよい。既存行には触れない。
func EnsureDefaultSettings(ctx context.Context, settings repository.PaymentSettingRepository, logger *zap.Logger) error {
	providers := []model.PaymentMethod{
		model.PaymentMethodStripe,
		model.PaymentMethodPayPal,
		model.PaymentMethodCrypto,
	}

	for _, p := range providers {
		_, err := settings.FindByProvider(ctx, string(p))
		if err == nil {
			continue
		}
		if err != repository.ErrNotFound {
			return err
		}

		if err := settings.Upsert(ctx, model.PaymentSetting{
			Provider:  string(p),
			Enabled:   false,
			ValueJSON: "{}",
		}); err != nil {
			return err
		}
		logger.Info("seeded payment setting row", zap.String("provider", string(p)))
	}

	return nil
}
