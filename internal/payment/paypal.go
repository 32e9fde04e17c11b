package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/plutov/paypal/v4"
	"go.uber.org/zap"
)

// PayPal決済。PayPalは主要通貨単位（"93.30"）を取るので、
// 最小単位のAmountをここで変換する。
type PayPalProvider struct {
	client *paypal.Client
	cfg    PayPalConfig
	logger *zap.Logger
}

func NewPayPalProvider(cfg PayPalConfig, logger *zap.Logger) (*PayPalProvider, error) {
	base := paypal.APIBaseSandBox
	if cfg.Live {
		base = paypal.APIBaseLive
	}

	c, err := paypal.NewClient(cfg.ClientID, cfg.Secret, base)
	if err != nil {
		return nil, err
	}

	return &PayPalProvider{client: c, cfg: cfg, logger: logger}, nil
}

func (p *PayPalProvider) CreatePayment(ctx context.Context, req Request) (Result, error) {
	units := []paypal.PurchaseUnitRequest{
		{
			Amount: &paypal.PurchaseUnitAmount{
				Currency: strings.ToUpper(req.Currency),
				Value:    MajorUnits(req.Amount),
			},
			Description: req.Description,
		},
	}

	appCtx := &paypal.ApplicationContext{
		ReturnURL: p.cfg.ReturnURL,
		CancelURL: p.cfg.CancelURL,
	}

	order, err := p.client.CreateOrder(ctx, paypal.OrderIntentCapture, units, nil, appCtx)
	if err != nil {
		p.logger.Warn("paypal order creation failed", zap.Error(err))
		return Result{}, err
	}

	//承認用リンクを探す
	for _, link := range order.Links {
		if link.Rel == "approve" {
			return Result{URL: link.Href, ID: order.ID}, nil
		}
	}

	return Result{}, errors.New("paypal order has no approve link")
}

// MajorUnits は最小単位のint64を主要単位の文字列にする（9330 → "93.30"）。
func MajorUnits(minor int64) string {
	return fmt.Sprintf("%d.%02d", minor/100, minor%100)
}
