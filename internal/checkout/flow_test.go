package checkout

import (
	"context"
	"errors"
	"testing"

	"app/internal/cart"
	"app/internal/payment"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// テスト用プロバイダ
type fakeProvider struct {
	result payment.Result
	err    error
	got    *payment.Request
}

func (f *fakeProvider) CreatePayment(ctx context.Context, req payment.Request) (payment.Result, error) {
	f.got = &req
	if f.err != nil {
		return payment.Result{}, f.err
	}
	return f.result, nil
}

func newTestFlow(t *testing.T, p payment.Provider) (*Flow, *cart.Store) {
	t.Helper()
	ctx := context.Background()

	store, err := cart.Load(ctx, cart.NewMemoryKV(), "cart:flow", zap.NewNop())
	assert.NoError(t, err)
	_ = store.AddItem(ctx, cart.LineItem{ID: "1", Name: "V8 engine", UnitPrice: 8500, Quantity: 1})

	reg := payment.NewRegistry()
	if p != nil {
		reg.Register("stripe", p)
	}

	return NewFlow(store, reg, "USD", zap.NewNop()), store
}

func fillShipping(f *Flow) {
	f.Shipping = ShippingForm{
		Name:       "Taro Suzuki",
		Email:      "taro@example.com",
		Address:    "1-2-3 Ginza",
		City:       "Tokyo",
		PostalCode: "104-0061",
	}
}

func TestFlow_StartsAtShipping(t *testing.T) {
	f, _ := newTestFlow(t, nil)
	assert.Equal(t, StepShipping, f.Step())
}

func TestFlow_ShippingValidationBlocksNext(t *testing.T) {
	f, _ := newTestFlow(t, nil)

	err := f.Next()

	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "name")
	assert.Contains(t, ve.Fields, "email")
	//ステップは動かない
	assert.Equal(t, StepShipping, f.Step())
}

func TestFlow_InvalidEmailMessage(t *testing.T) {
	f, _ := newTestFlow(t, nil)
	fillShipping(f)
	f.Shipping.Email = "not-an-email"

	err := f.Next()

	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, "email is invalid", ve.Fields["email"])
}

func TestFlow_CardValidatedOnlyForStripe(t *testing.T) {
	f, _ := newTestFlow(t, nil)
	fillShipping(f)
	assert.NoError(t, f.Next())

	//カード選択でカード未入力はブロック
	f.Method = "stripe"
	err := f.Next()
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, StepPayment, f.Step())

	//paypalは素通し
	f.Method = "paypal"
	assert.NoError(t, f.Next())
	assert.Equal(t, StepReview, f.Step())
}

func TestFlow_PreviousKeepsFormState(t *testing.T) {
	f, _ := newTestFlow(t, nil)
	fillShipping(f)
	assert.NoError(t, f.Next())

	f.Method = "crypto"
	assert.NoError(t, f.Next())
	assert.Equal(t, StepReview, f.Step())

	f.Previous()
	assert.Equal(t, StepPayment, f.Step())
	f.Previous()
	assert.Equal(t, StepShipping, f.Step())
	//フォーム値は消えない
	assert.Equal(t, "Taro Suzuki", f.Shipping.Name)
	assert.Equal(t, "crypto", f.Method)

	//初期ステップからはそれ以上戻らない
	f.Previous()
	assert.Equal(t, StepShipping, f.Step())
}

func TestFlow_SubmitOnlyAtReview(t *testing.T) {
	f, _ := newTestFlow(t, &fakeProvider{})

	_, err := f.Submit(context.Background())
	assert.Error(t, err)
}

func TestFlow_SubmitSuccessClearsCart(t *testing.T) {
	p := &fakeProvider{result: payment.Result{URL: "https://pay.example/s1", ID: "cs_123"}}
	f, store := newTestFlow(t, p)

	fillShipping(f)
	assert.NoError(t, f.Next())
	f.Method = "stripe"
	f.Card = CardForm{HolderName: "TARO SUZUKI", Number: "4242424242424242", ExpMonth: "12", ExpYear: "27", CVC: "123"}
	assert.NoError(t, f.Next())

	res, err := f.Submit(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "https://pay.example/s1", res.URL)

	//成功したらカートは空
	assert.Equal(t, int64(0), store.ItemCount())

	//請求額は内訳どおり（8500 + 150 + 680）
	assert.Equal(t, int64(9330), p.got.Amount)
	assert.Equal(t, "USD", p.got.Currency)
}

func TestFlow_PaymentFailureKeepsReviewAndCart(t *testing.T) {
	p := &fakeProvider{err: errors.New("card declined")}
	f, store := newTestFlow(t, p)

	fillShipping(f)
	assert.NoError(t, f.Next())
	f.Method = "stripe"
	f.Card = CardForm{HolderName: "TARO SUZUKI", Number: "4242424242424242", ExpMonth: "12", ExpYear: "27", CVC: "123"}
	assert.NoError(t, f.Next())

	_, err := f.Submit(context.Background())
	assert.EqualError(t, err, "card declined")

	//Reviewに留まり、カートもそのまま（リトライ可能）
	assert.Equal(t, StepReview, f.Step())
	assert.Equal(t, int64(1), store.ItemCount())

	//リトライは成功しうる
	p.err = nil
	p.result = payment.Result{URL: "https://pay.example/retry", ID: "cs_retry"}
	res, err := f.Submit(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "cs_retry", res.ID)
}

func TestFlow_UnknownMethodIsConfigError(t *testing.T) {
	f, _ := newTestFlow(t, nil) //何も登録しない

	fillShipping(f)
	assert.NoError(t, f.Next())
	f.Method = "paypal"
	assert.NoError(t, f.Next())

	_, err := f.Submit(context.Background())
	assert.True(t, payment.IsConfigError(err))
	assert.Equal(t, StepReview, f.Step())
}

func TestQuickBuyFlow_SingleItemTotals(t *testing.T) {
	p := &fakeProvider{result: payment.Result{URL: "https://pay.example/q", ID: "cs_q"}}
	reg := payment.NewRegistry()
	reg.Register("stripe", p)

	f := NewQuickBuyFlow(cart.LineItem{ID: "9", UnitPrice: 100, Quantity: 3}, reg, "USD", zap.NewNop())

	totals := f.Totals()
	assert.Equal(t, int64(300), totals.Subtotal)
	assert.Equal(t, int64(24), totals.Tax)
	assert.Equal(t, int64(474), totals.Total)

	fillShipping(f)
	assert.NoError(t, f.Next())
	f.Method = "stripe"
	f.Card = CardForm{HolderName: "TARO", Number: "4242424242424242", ExpMonth: "1", ExpYear: "30", CVC: "999"}
	assert.NoError(t, f.Next())

	_, err := f.Submit(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(474), p.got.Amount)
}

// 数量省略のクイック購入はAddItemと同じく1扱い
func TestQuickBuyFlow_DefaultQuantityIsOne(t *testing.T) {
	reg := payment.NewRegistry()
	f := NewQuickBuyFlow(cart.LineItem{ID: "9", UnitPrice: 100}, reg, "USD", zap.NewNop())

	totals := f.Totals()
	assert.Equal(t, int64(100), totals.Subtotal)
	assert.Equal(t, int64(8), totals.Tax)
	assert.Equal(t, int64(258), totals.Total)
}
