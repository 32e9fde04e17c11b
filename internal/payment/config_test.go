package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStripeConfig_Valid(t *testing.T) {
	cfg, err := ParseStripeConfig(`{
		"secret_key": "sk_test_123",
		"success_url": "https://shop.example/success",
		"cancel_url": "https://shop.example/cancel"
	}`)
	assert.NoError(t, err)
	assert.Equal(t, "sk_test_123", cfg.SecretKey)
}

func TestParseStripeConfig_MissingFieldFailsAtLoad(t *testing.T) {
	//決済時ではなくロード時に落とす
	_, err := ParseStripeConfig(`{"success_url": "x", "cancel_url": "y"}`)
	assert.Error(t, err)
	assert.True(t, IsConfigError(err))
	assert.Contains(t, err.Error(), "secret_key")
}

func TestParseStripeConfig_InvalidJSON(t *testing.T) {
	_, err := ParseStripeConfig(`{broken`)
	assert.True(t, IsConfigError(err))
}

func TestParsePayPalConfig_Valid(t *testing.T) {
	cfg, err := ParsePayPalConfig(`{
		"client_id": "cid",
		"secret": "sec",
		"live": true,
		"return_url": "https://shop.example/return",
		"cancel_url": "https://shop.example/cancel"
	}`)
	assert.NoError(t, err)
	assert.True(t, cfg.Live)
}

func TestParsePayPalConfig_MissingSecret(t *testing.T) {
	_, err := ParsePayPalConfig(`{"client_id": "cid", "return_url": "r", "cancel_url": "c"}`)
	assert.True(t, IsConfigError(err))
	assert.Contains(t, err.Error(), "secret")
}

func TestParseCryptoConfig_Valid(t *testing.T) {
	cfg, err := ParseCryptoConfig(`{"wallets": {"BTC": "bc1qtest", "ETH": "0xtest"}}`)
	assert.NoError(t, err)
	assert.Equal(t, "bc1qtest", cfg.Wallets["BTC"])
}

func TestParseCryptoConfig_NoWallets(t *testing.T) {
	_, err := ParseCryptoConfig(`{"wallets": {}}`)
	assert.True(t, IsConfigError(err))
}

func TestParseCryptoConfig_EmptyAddress(t *testing.T) {
	_, err := ParseCryptoConfig(`{"wallets": {"BTC": "  "}}`)
	assert.True(t, IsConfigError(err))
}

func TestRegistry_UnknownMethodIsConfigError(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Get("paypal")
	assert.True(t, IsConfigError(err))
	assert.Contains(t, err.Error(), "not enabled")
}

func TestMajorUnits(t *testing.T) {
	//9330セント → "93.30"
	assert.Equal(t, "93.30", MajorUnits(9330))
	assert.Equal(t, "0.05", MajorUnits(5))
	assert.Equal(t, "150.00", MajorUnits(15000))
	assert.Equal(t, "1.50", MajorUnits(150))
}
