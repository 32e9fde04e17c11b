package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"app/internal/cart"
	"app/internal/payment"
	"app/internal/pricing"

	"go.uber.org/zap"
)

// チェックアウトの3ステップ。直線で、Previous以外の逆行はない。
type Step string

const (
	StepShipping Step = "shipping"
	StepPayment  Step = "payment"
	StepReview   Step = "review"
)

// 決済呼び出しのタイムアウト。元の設計には無いが、
// 応答しないプロバイダで処理中のまま固まるのを避けるため明示する。
const submitTimeout = 30 * time.Second

type ShippingForm struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Phone      string `json:"phone"`
}

type CardForm struct {
	HolderName string `json:"holder_name"`
	Number     string `json:"number"`
	ExpMonth   string `json:"exp_month"`
	ExpYear    string `json:"exp_year"`
	CVC        string `json:"cvc"`
}

// フィールド単位の検証エラー。インライン表示用で、入力を直せば回復する。
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for f, m := range e.Fields {
		parts = append(parts, f+": "+m)
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Flow は1回のチェックアウトの状態機械。
// フォーム値はフィールドとして持ち続けるので、Previousで戻っても消えない。
type Flow struct {
	step Step

	//stripe / paypal / crypto
	Method   string
	Shipping ShippingForm
	Card     CardForm

	//通常はカート全量。クイック購入は単品。
	store     *cart.Store
	quickItem *cart.LineItem

	registry *payment.Registry
	currency string
	logger   *zap.Logger
}

func NewFlow(store *cart.Store, registry *payment.Registry, currency string, logger *zap.Logger) *Flow {
	return &Flow{
		step:     StepShipping,
		store:    store,
		registry: registry,
		currency: currency,
		logger:   logger,
	}
}

// NewQuickBuyFlow はカートを介さない単品購入。
// 数量省略（<=0）はAddItemと同じ1扱い。
func NewQuickBuyFlow(item cart.LineItem, registry *payment.Registry, currency string, logger *zap.Logger) *Flow {
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	return &Flow{
		step:      StepShipping,
		quickItem: &item,
		registry:  registry,
		currency:  currency,
		logger:    logger,
	}
}

func (f *Flow) Step() Step {
	return f.step
}

// Items は課金対象列を返す（計算用）。
func (f *Flow) Items() []pricing.Item {
	if f.quickItem != nil {
		return []pricing.Item{{UnitPrice: f.quickItem.UnitPrice, Quantity: f.quickItem.Quantity}}
	}

	lines := f.store.Items()
	items := make([]pricing.Item, 0, len(lines))
	for _, l := range lines {
		items = append(items, pricing.Item{UnitPrice: l.UnitPrice, Quantity: l.Quantity})
	}
	return items
}

// Totals は現在の内訳。キャッシュせず毎回計算する。
func (f *Flow) Totals() pricing.Totals {
	return pricing.ComputeTotals(f.Items())
}

// Next は検証を通った場合だけ1ステップ進める。
// 検証エラーはValidationErrorで返り、ステップは動かない。
func (f *Flow) Next() error {
	switch f.step {
	case StepShipping:
		if err := f.validateShipping(); err != nil {
			return err
		}
		f.step = StepPayment
		return nil

	case StepPayment:
		if err := f.validatePayment(); err != nil {
			return err
		}
		f.step = StepReview
		return nil

	default:
		//Reviewから先はSubmitのみ
		return fmt.Errorf("no next step from %s", f.step)
	}
}

// Previous は1ステップ戻る。フォーム値はそのまま残る。
func (f *Flow) Previous() {
	switch f.step {
	case StepPayment:
		f.step = StepShipping
	case StepReview:
		f.step = StepPayment
	}
}

// Submit はReviewでのみ有効。プロバイダ呼び出しに成功したらカートを空にし、
// 失敗したらReviewに留まる（リトライ可能。カートも保持される）。
func (f *Flow) Submit(ctx context.Context) (payment.Result, error) {
	if f.step != StepReview {
		return payment.Result{}, fmt.Errorf("submit is only valid at review, current step is %s", f.step)
	}

	provider, err := f.registry.Get(f.Method)
	if err != nil {
		return payment.Result{}, err
	}

	totals := f.Totals()

	ctx, cancel := context.WithTimeout(ctx, submitTimeout)
	defer cancel()

	res, err := provider.CreatePayment(ctx, payment.Request{
		Amount:      totals.Total,
		Currency:    f.currency,
		Description: f.description(),
	})
	if err != nil {
		//ステップは動かさない
		f.logger.Warn("payment failed at review",
			zap.String("method", f.Method),
			zap.Error(err),
		)
		return payment.Result{}, err
	}

	if f.store != nil {
		if err := f.store.Clear(ctx); err != nil {
			//決済自体は成立しているのでログのみ
			f.logger.Error("failed to clear cart after payment", zap.Error(err))
		}
	}

	return res, nil
}

func (f *Flow) description() string {
	var count int64
	for _, it := range f.Items() {
		count += it.Quantity
	}
	return fmt.Sprintf("Engine parts order (%d items)", count)
}

func (f *Flow) validateShipping() error {
	fields := map[string]string{}

	if strings.TrimSpace(f.Shipping.Name) == "" {
		fields["name"] = "name is required"
	}
	email := strings.TrimSpace(f.Shipping.Email)
	if email == "" {
		fields["email"] = "email is required"
	} else if !strings.Contains(email, "@") {
		fields["email"] = "email is invalid"
	}
	if strings.TrimSpace(f.Shipping.Address) == "" {
		fields["address"] = "address is required"
	}
	if strings.TrimSpace(f.Shipping.City) == "" {
		fields["city"] = "city is required"
	}
	if strings.TrimSpace(f.Shipping.PostalCode) == "" {
		fields["postal_code"] = "postal code is required"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// カード選択時のみカードフォームを検証する。paypal/cryptoは素通し。
func (f *Flow) validatePayment() error {
	fields := map[string]string{}

	if f.Method == "" {
		fields["method"] = "payment method is required"
		return &ValidationError{Fields: fields}
	}

	if f.Method != "stripe" {
		return nil
	}

	if strings.TrimSpace(f.Card.HolderName) == "" {
		fields["holder_name"] = "card holder name is required"
	}
	number := strings.ReplaceAll(f.Card.Number, " ", "")
	if len(number) < 12 || !isDigits(number) {
		fields["number"] = "card number is invalid"
	}
	if !isDigits(f.Card.ExpMonth) || !isDigits(f.Card.ExpYear) {
		fields["expiry"] = "expiry is invalid"
	}
	if n := len(f.Card.CVC); n < 3 || n > 4 || !isDigits(f.Card.CVC) {
		fields["cvc"] = "cvc is invalid"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
