package payment

import (
	"context"
	"strings"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
	"go.uber.org/zap"
)

// カード決済（Stripe Checkout）。金額は最小通貨単位のまま渡す。
type StripeProvider struct {
	api    *client.API
	cfg    StripeConfig
	logger *zap.Logger
}

func NewStripeProvider(cfg StripeConfig, logger *zap.Logger) *StripeProvider {
	api := &client.API{}
	api.Init(cfg.SecretKey, nil)

	return &StripeProvider{api: api, cfg: cfg, logger: logger}
}

func (p *StripeProvider) CreatePayment(ctx context.Context, req Request) (Result, error) {
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(strings.ToLower(req.Currency)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.Description),
					},
					//Stripeは最小単位（セント）なのでそのまま
					UnitAmount: stripe.Int64(req.Amount),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(p.cfg.SuccessURL),
		CancelURL:  stripe.String(p.cfg.CancelURL),
	}
	params.Context = ctx

	sess, err := p.api.CheckoutSessions.New(params)
	if err != nil {
		p.logger.Warn("stripe checkout session failed", zap.Error(err))
		return Result{}, err
	}

	return Result{URL: sess.URL, ID: sess.ID}, nil
}
