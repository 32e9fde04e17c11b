package model

import "time"

type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "pending"
	OrderStatusPaid     OrderStatus = "paid"
	OrderStatusFailed   OrderStatus = "failed"
	OrderStatusCanceled OrderStatus = "canceled"
)

type PaymentMethod string

const (
	PaymentMethodStripe PaymentMethod = "stripe"
	PaymentMethodPayPal PaymentMethod = "paypal"
	PaymentMethodCrypto PaymentMethod = "crypto"
)

// 決済セッション作成時にpendingで1行insertする。
// UserIDはBearerトークンがあった場合のみ入る（ゲスト購入はNULL）。
type Order struct {
	ID     int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID *int64 `gorm:"index" json:"user_id,omitempty"`

	//表示用の注文番号（ORD-xxxx）
	OrderNumber string `gorm:"type:varchar(64);not null;uniqueIndex" json:"order_number"`

	//請求合計（最小通貨単位）
	Amount int64 `gorm:"not null" json:"amount"`

	//送料・税抜きの商品小計（最小通貨単位）
	Subtotal int64 `gorm:"not null" json:"subtotal"`

	Currency      string        `gorm:"type:varchar(10);not null" json:"currency"`
	Status        OrderStatus   `gorm:"type:varchar(20);not null;index" json:"status"`
	PaymentMethod PaymentMethod `gorm:"type:varchar(20);not null" json:"payment_method"`

	//決済プロバイダ側のセッション/注文ID
	ProviderRef string `gorm:"type:varchar(255)" json:"-"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
