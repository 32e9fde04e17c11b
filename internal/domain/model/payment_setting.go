package model

import "time"

// 決済プロバイダ設定。プロバイダごとに1行で、中身はJSON。
// JSONの必須フィールド検証はロード時に行う（internal/payment参照）。
type PaymentSetting struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	//stripe / paypal / crypto
	Provider string `gorm:"type:varchar(20);not null;uniqueIndex" json:"provider"`

	Enabled bool `gorm:"not null;default:false" json:"enabled"`

	//プロバイダ固有の設定JSON
	ValueJSON string `gorm:"type:text;not null" json:"value_json"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
