package payment

import (
	"context"

	"app/internal/domain/model"
	"app/internal/repository"

	"go.uber.org/zap"
)

// Registry は決済メソッド名→Providerの対応を持つ。
// 起動時にDBの設定行から組み立てる（設定不備はここで落ちる）。
type Registry struct {
	providers map[string]Provider
}

func NewRegistry() *Registry {
	return &Registry{providers: map[string]Provider{}}
}

func (r *Registry) Register(method string, p Provider) {
	r.providers[method] = p
}

// Get はメソッドのProviderを返す。未登録（無効・未知）は設定エラー。
func (r *Registry) Get(method string) (Provider, error) {
	p, ok := r.providers[method]
	if !ok {
		return nil, NewConfigError("payment method %s is not enabled", method)
	}
	return p, nil
}

func (r *Registry) Methods() []string {
	out := make([]string, 0, len(r.providers))
	for m := range r.providers {
		out = append(out, m)
	}
	return out
}

// BuildRegistry は有効な設定行を読み、各プロバイダを組み立てる。
// 有効なのに設定が壊れている行はエラー（決済時まで遅延させない）。
func BuildRegistry(ctx context.Context, settings repository.PaymentSettingRepository, logger *zap.Logger) (*Registry, error) {
	rows, err := settings.ListEnabled(ctx)
	if err != nil {
		return nil, err
	}

	reg := NewRegistry()
	for _, row := range rows {
		switch row.Provider {
		case string(model.PaymentMethodStripe):
			cfg, err := ParseStripeConfig(row.ValueJSON)
			if err != nil {
				return nil, err
			}
			reg.Register(row.Provider, NewStripeProvider(cfg, logger))

		case string(model.PaymentMethodPayPal):
			cfg, err := ParsePayPalConfig(row.ValueJSON)
			if err != nil {
				return nil, err
			}
			p, err := NewPayPalProvider(cfg, logger)
			if err != nil {
				return nil, err
			}
			reg.Register(row.Provider, p)

		case string(model.PaymentMethodCrypto):
			cfg, err := ParseCryptoConfig(row.ValueJSON)
			if err != nil {
				return nil, err
			}
			reg.Register(row.Provider, NewCryptoProvider(cfg, logger))

		default:
			logger.Warn("unknown payment provider in settings", zap.String("provider", row.Provider))
		}
	}

	return reg, nil
}
