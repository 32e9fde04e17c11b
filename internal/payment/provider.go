package payment

import (
	"context"
	"errors"
	"fmt"
)

// 決済リクエスト。Amountは常に最小通貨単位のint64で受け、
// プロバイダごとの表現（セント/主要単位）への変換は各実装が行う。
type Request struct {
	Amount      int64
	Currency    string
	Description string
}

// 決済セッション作成の結果。
// URLはホスト型チェックアウトへのリダイレクト先。URLが取れた時点で成功扱い
// （完了のポーリングはしない）。
type Result struct {
	URL string
	ID  string

	//crypto のみ：表示するウォレットアドレス
	WalletAddress string
}

// 外部決済プロバイダの約束。
type Provider interface {
	CreatePayment(ctx context.Context, req Request) (Result, error)
}

// 設定不備（メソッド無効・アドレス未設定など）。リトライでは直らない。
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

func NewConfigError(format string, args ...any) error {
	return &ConfigError{Message: fmt.Sprintf(format, args...)}
}

func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
