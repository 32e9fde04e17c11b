package model

import (
	"time"

	"gorm.io/gorm"
)

// エンジン・パーツ商品。価格は最小通貨単位のint64。
type Product struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Price       int64  `gorm:"not null" json:"price"`

	//カテゴリ（engine / turbo / parts など）
	Category string `gorm:"type:varchar(100);not null;index" json:"category"`

	ImageURL string `gorm:"type:varchar(512)" json:"image_url"`

	//在庫数。0なら購入不可（カート追加前にチェックする）
	StockQuantity int64 `gorm:"not null;default:0" json:"stock_quantity"`

	IsActive  bool           `gorm:"not null;default:false" json:"is_active"`
	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
