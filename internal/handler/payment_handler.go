package handler

import (
	"math"
	"net/http"

	"app/internal/domain/model"
	"app/internal/middleware"
	"app/internal/payment"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 決済セッション作成のHTTP。元の構成ではサーバーレス関数だったエンドポイント。
// CORSはグローバルミドルウェア（OPTIONSプリフライト込み）で許可する。
type PaymentHandler struct {
	uc *usecase.CheckoutUsecase
}

// DI
func NewPaymentHandler(uc *usecase.CheckoutUsecase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

// Stripeはセント（最小単位）で受ける
type CreateStripePaymentRequest struct {
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
	Subtotal    int64  `json:"subtotal,omitempty"`
}

type CreateStripePaymentResponse struct {
	URL       string `json:"url"`
	SessionID string `json:"session_id"`
}

// PayPalは主要通貨単位（93.30）で受ける
type CreatePayPalPaymentRequest struct {
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Description string  `json:"description"`
	Subtotal    int64   `json:"subtotal,omitempty"`
}

type CreatePayPalPaymentResponse struct {
	URL       string `json:"url"`
	PaymentID string `json:"payment_id"`
}

type CreateCryptoPaymentRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Subtotal int64  `json:"subtotal,omitempty"`
}

type CreateCryptoPaymentResponse struct {
	Address string `json:"address"`
	Amount  string `json:"amount"`
}

func (h *PaymentHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/create-stripe-payment", h.createStripePayment)
	e.POST("/create-paypal-payment", h.createPayPalPayment)
	e.POST("/create-crypto-payment", h.createCryptoPayment)
}

func (h *PaymentHandler) createStripePayment(c echo.Context) error {
	var req CreateStripePaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.CreatePayment(c.Request().Context(), usecase.CreatePaymentInput{
		Method:      model.PaymentMethodStripe,
		Amount:      req.Amount,
		Subtotal:    req.Subtotal,
		Currency:    req.Currency,
		Description: req.Description,
		UserID:      middleware.UserIDFromContext(c),
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, CreateStripePaymentResponse{
		URL:       out.URL,
		SessionID: out.PaymentID,
	})
}

func (h *PaymentHandler) createPayPalPayment(c echo.Context) error {
	var req CreatePayPalPaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	//主要単位→最小単位。内部は常に最小単位で持つ。
	amountMinor := int64(math.Round(req.Amount * 100))

	out, err := h.uc.CreatePayment(c.Request().Context(), usecase.CreatePaymentInput{
		Method:      model.PaymentMethodPayPal,
		Amount:      amountMinor,
		Subtotal:    req.Subtotal,
		Currency:    req.Currency,
		Description: req.Description,
		UserID:      middleware.UserIDFromContext(c),
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, CreatePayPalPaymentResponse{
		URL:       out.URL,
		PaymentID: out.PaymentID,
	})
}

func (h *PaymentHandler) createCryptoPayment(c echo.Context) error {
	var req CreateCryptoPaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.CreatePayment(c.Request().Context(), usecase.CreatePaymentInput{
		Method:   model.PaymentMethodCrypto,
		Amount:   req.Amount,
		Subtotal: req.Subtotal,
		Currency: req.Currency,
		UserID:   middleware.UserIDFromContext(c),
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, CreateCryptoPaymentResponse{
		Address: out.WalletAddress,
		Amount:  payment.MajorUnits(req.Amount),
	})
}
