package payment

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// 暗号資産決済。外部は呼ばず、設定済みアドレスを表示して楽観的に成功を返す。
// オンチェーン確認は無い。確認機構なしで本番運用できる作りではないので注意。
type CryptoProvider struct {
	cfg    CryptoConfig
	logger *zap.Logger
}

func NewCryptoProvider(cfg CryptoConfig, logger *zap.Logger) *CryptoProvider {
	return &CryptoProvider{cfg: cfg, logger: logger}
}

func (p *CryptoProvider) CreatePayment(ctx context.Context, req Request) (Result, error) {
	cur := strings.ToUpper(req.Currency)

	addr, ok := p.cfg.Wallets[cur]
	if !ok {
		return Result{}, NewConfigError("no wallet address configured for %s", cur)
	}

	//ローカル参照ID（プロバイダ側のIDは存在しない）
	ref := "crypto_" + uuid.NewString()

	p.logger.Info("crypto payment address issued",
		zap.String("currency", cur),
		zap.Int64("amount", req.Amount),
	)

	return Result{ID: ref, WalletAddress: addr}, nil
}
