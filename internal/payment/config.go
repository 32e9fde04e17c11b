package payment

import (
	"encoding/json"
	"strings"
)

// プロバイダ設定はDBに自由形式JSONで入っているが、
// ここで必ずタグ付きの型に起こす。足りないフィールドは決済時ではなく
// ロード時に落とす。

type StripeConfig struct {
	SecretKey  string `json:"secret_key"`
	SuccessURL string `json:"success_url"`
	CancelURL  string `json:"cancel_url"`
}

type PayPalConfig struct {
	ClientID string `json:"client_id"`
	Secret   string `json:"secret"`
	//trueなら本番API、falseならsandbox
	Live      bool   `json:"live"`
	ReturnURL string `json:"return_url"`
	CancelURL string `json:"cancel_url"`
}

type CryptoConfig struct {
	//通貨コード（大文字）→ウォレットアドレス
	Wallets map[string]string `json:"wallets"`
}

func ParseStripeConfig(raw string) (StripeConfig, error) {
	var cfg StripeConfig
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return StripeConfig{}, NewConfigError("stripe config is not valid json: %v", err)
	}
	if strings.TrimSpace(cfg.SecretKey) == "" {
		return StripeConfig{}, NewConfigError("stripe config: secret_key is required")
	}
	if strings.TrimSpace(cfg.SuccessURL) == "" {
		return StripeConfig{}, NewConfigError("stripe config: success_url is required")
	}
	if strings.TrimSpace(cfg.CancelURL) == "" {
		return StripeConfig{}, NewConfigError("stripe config: cancel_url is required")
	}
	return cfg, nil
}

func ParsePayPalConfig(raw string) (PayPalConfig, error) {
	var cfg PayPalConfig
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return PayPalConfig{}, NewConfigError("paypal config is not valid json: %v", err)
	}
	if strings.TrimSpace(cfg.ClientID) == "" {
		return PayPalConfig{}, NewConfigError("paypal config: client_id is required")
	}
	if strings.TrimSpace(cfg.Secret) == "" {
		return PayPalConfig{}, NewConfigError("paypal config: secret is required")
	}
	if strings.TrimSpace(cfg.ReturnURL) == "" {
		return PayPalConfig{}, NewConfigError("paypal config: return_url is required")
	}
	if strings.TrimSpace(cfg.CancelURL) == "" {
		return PayPalConfig{}, NewConfigError("paypal config: cancel_url is required")
	}
	return cfg, nil
}

func ParseCryptoConfig(raw string) (CryptoConfig, error) {
	var cfg CryptoConfig
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return CryptoConfig{}, NewConfigError("crypto config is not valid json: %v", err)
	}
	if len(cfg.Wallets) == 0 {
		return CryptoConfig{}, NewConfigError("crypto config: at least one wallet is required")
	}
	for cur, addr := range cfg.Wallets {
		if strings.TrimSpace(addr) == "" {
			return CryptoConfig{}, NewConfigError("crypto config: wallet address for %s is empty", cur)
		}
	}
	return cfg, nil
}
