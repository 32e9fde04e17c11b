package usecase

import (
	"context"
	"net/http"
	"strconv"

	"app/internal/cart"
	"app/internal/pricing"
	repo "app/internal/repository"
)

// CartUsecase は /cart の業務ロジック。
// カート本体はセッション単位のStoreで、DBではなくKVに永続化される。
// 在庫・公開チェックはStoreに触る前にここで行う。
type CartUsecase struct {
	carts       *cart.Manager
	productRepo repo.ProductRepository
}

func NewCartUsecase(carts *cart.Manager, productRepo repo.ProductRepository) *CartUsecase {
	return &CartUsecase{
		carts:       carts,
		productRepo: productRepo,
	}
}

type CartResponse struct {
	Items     []cart.LineItem `json:"items"`
	ItemCount int64           `json:"item_count"`
	Totals    pricing.Totals  `json:"totals"`
}

type AddCartInput struct {
	ProductID int64
	Quantity  int64
}

type UpdateCartItemInput struct {
	Quantity int64
}

// GetCart はカート取得（未初期化なら空を返す）。
func (u *CartUsecase) GetCart(ctx context.Context, sessionID string) (CartResponse, error) {
	if sessionID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "session required")
	}

	var out CartResponse
	err := u.carts.WithSession(ctx, sessionID, func(s *cart.Store) error {
		out = buildCartResponse(s)
		return nil
	})
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "cart error")
	}
	return out, nil
}

// AddToCart はカートに追加（同一商品は数量加算）。
// 非公開・在庫切れはStoreに届く前に拒否する。
func (u *CartUsecase) AddToCart(ctx context.Context, sessionID string, in AddCartInput) (CartResponse, error) {
	if sessionID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "session required")
	}
	if in.ProductID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Quantity < 1 {
		in.Quantity = 1
	}

	//商品チェック（公開のみ）
	p, err := u.productRepo.FindByID(ctx, in.ProductID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.IsActive {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product")
	}

	//在庫切れは警告として拒否（Storeは数量上限を見ない）
	if p.StockQuantity <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusConflict, "out of stock")
	}

	var out CartResponse
	err = u.carts.WithSession(ctx, sessionID, func(s *cart.Store) error {
		if err := s.AddItem(ctx, cart.LineItem{
			ID:        strconv.FormatInt(p.ID, 10),
			Name:      p.Name,
			UnitPrice: p.Price,
			Quantity:  in.Quantity,
			Image:     p.ImageURL,
			Category:  p.Category,
			ProductID: p.ID,
		}); err != nil {
			return err
		}
		out = buildCartResponse(s)
		return nil
	})
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "cart error")
	}
	return out, nil
}

// 数量変更。0以下は削除と同じ。
func (u *CartUsecase) UpdateCartItem(ctx context.Context, sessionID string, itemID string, in UpdateCartItemInput) (CartResponse, error) {
	if sessionID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "session required")
	}
	if itemID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out CartResponse
	err := u.carts.WithSession(ctx, sessionID, func(s *cart.Store) error {
		if err := s.SetQuantity(ctx, itemID, in.Quantity); err != nil {
			return err
		}
		out = buildCartResponse(s)
		return nil
	})
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "cart error")
	}
	return out, nil
}

// 明細削除。無いIDはno-op。
func (u *CartUsecase) DeleteCartItem(ctx context.Context, sessionID string, itemID string) (CartResponse, error) {
	if sessionID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "session required")
	}
	if itemID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out CartResponse
	err := u.carts.WithSession(ctx, sessionID, func(s *cart.Store) error {
		if err := s.RemoveItem(ctx, itemID); err != nil {
			return err
		}
		out = buildCartResponse(s)
		return nil
	})
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "cart error")
	}
	return out, nil
}

// カートを空にする（空状態も明示的に保存される）。
func (u *CartUsecase) ClearCart(ctx context.Context, sessionID string) (CartResponse, error) {
	if sessionID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "session required")
	}

	var out CartResponse
	err := u.carts.WithSession(ctx, sessionID, func(s *cart.Store) error {
		if err := s.Clear(ctx); err != nil {
			return err
		}
		out = buildCartResponse(s)
		return nil
	})
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "cart error")
	}
	return out, nil
}

// 表示用レスポンス。合計は毎回カートから導出する（キャッシュしない）。
func buildCartResponse(s *cart.Store) CartResponse {
	lines := s.Items()

	items := make([]pricing.Item, 0, len(lines))
	for _, l := range lines {
		items = append(items, pricing.Item{UnitPrice: l.UnitPrice, Quantity: l.Quantity})
	}

	return CartResponse{
		Items:     lines,
		ItemCount: s.ItemCount(),
		Totals:    pricing.ComputeTotals(items),
	}
}
