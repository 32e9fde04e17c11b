package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// 公開カタログの検索条件
type ProductListQuery struct {
	Page     int
	Limit    int
	Category string
}

// 商品の取得だけを約束（カタログの投入・編集は別システム）。
type ProductRepository interface {
	//is_active=true のみ。Categoryが空なら全カテゴリ。
	ListActive(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)
}
