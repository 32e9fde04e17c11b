package usecase

import (
	"context"
	"net/http"
	"strings"

	"app/internal/domain/model"
	"app/internal/payment"
	repo "app/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CheckoutUsecase は決済セッション作成の入口。
// プロバイダ呼び出しに成功したらordersにpendingで1行insertする。
// 失敗したら行は作らず、プロバイダのエラーをそのまま返す。
type CheckoutUsecase struct {
	registry  *payment.Registry
	orderRepo repo.OrderRepository

	//リクエストで通貨が省略されたときに使う（CURRENCY）
	defaultCurrency string

	logger *zap.Logger
}

func NewCheckoutUsecase(registry *payment.Registry, orderRepo repo.OrderRepository, defaultCurrency string, logger *zap.Logger) *CheckoutUsecase {
	return &CheckoutUsecase{
		registry:        registry,
		orderRepo:       orderRepo,
		defaultCurrency: defaultCurrency,
		logger:          logger,
	}
}

type CreatePaymentInput struct {
	Method model.PaymentMethod

	//最小通貨単位の請求合計
	Amount int64

	//最小通貨単位の商品小計（省略時はAmountと同じ扱い）
	Subtotal int64

	Currency    string
	Description string

	//Bearerトークンがあった場合のみ
	UserID *int64
}

type CreatePaymentOutput struct {
	URL       string `json:"url,omitempty"`
	PaymentID string `json:"payment_id"`

	//crypto のみ
	WalletAddress string `json:"wallet_address,omitempty"`

	OrderNumber string `json:"order_number"`
}

func (u *CheckoutUsecase) CreatePayment(ctx context.Context, in CreatePaymentInput) (CreatePaymentOutput, error) {
	if in.Amount <= 0 {
		return CreatePaymentOutput{}, NewHTTPError(http.StatusBadRequest, "invalid amount")
	}
	cur := strings.TrimSpace(in.Currency)
	if cur == "" {
		cur = u.defaultCurrency
	}
	if cur == "" {
		return CreatePaymentOutput{}, NewHTTPError(http.StatusBadRequest, "invalid currency")
	}

	provider, err := u.registry.Get(string(in.Method))
	if err != nil {
		//メソッド無効は設定エラー（管理者が直すまでリトライ不能）
		return CreatePaymentOutput{}, NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	res, err := provider.CreatePayment(ctx, payment.Request{
		Amount:      in.Amount,
		Currency:    cur,
		Description: in.Description,
	})
	if err != nil {
		u.logger.Warn("payment provider failed",
			zap.String("method", string(in.Method)),
			zap.Error(err),
		)
		//プロバイダのメッセージをそのまま表示する
		return CreatePaymentOutput{}, NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	subtotal := in.Subtotal
	if subtotal <= 0 {
		subtotal = in.Amount
	}

	orderNumber := newOrderNumber()
	_, err = u.orderRepo.Create(ctx, model.Order{
		UserID:        in.UserID,
		OrderNumber:   orderNumber,
		Amount:        in.Amount,
		Subtotal:      subtotal,
		Currency:      strings.ToUpper(cur),
		Status:        model.OrderStatusPending,
		PaymentMethod: in.Method,
		ProviderRef:   res.ID,
	})
	if err != nil {
		//セッションは発行済みなので注文行の失敗は500で返すしかない
		u.logger.Error("order insert failed after payment session",
			zap.String("provider_ref", res.ID),
			zap.Error(err),
		)
		return CreatePaymentOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.logger.Info("payment session created",
		zap.String("method", string(in.Method)),
		zap.String("order_number", orderNumber),
		zap.Int64("amount", in.Amount),
	)

	return CreatePaymentOutput{
		URL:           res.URL,
		PaymentID:     res.ID,
		WalletAddress: res.WalletAddress,
		OrderNumber:   orderNumber,
	}, nil
}

// 表示用の注文番号
func newOrderNumber() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "ORD-" + id[:12]
}
