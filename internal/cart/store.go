package cart

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"
)

// Store は1セッション分のカート明細を持つ。
// 同一IDの追加は数量加算（行を増やさない）。挿入順を保持し、並べ替えない。
//
// 並行アクセスには対応しない。1セッション=1オーナーで使う約束
// （HTTP越しに共有する場合はManagerが直列化する）。
type Store struct {
	items  []LineItem
	kv     KV
	key    string
	logger *zap.Logger
}

// Load はkeyの保存値からStoreを復元する。
// 値が無ければ空。壊れたJSONならkeyを消して空で開始（エラーにはしない）。
// ErrNoValue以外のGet失敗は読めなかっただけなのでエラーを返す。
// 空で続行すると次の書き込みが保存済みカートを潰してしまう。
func Load(ctx context.Context, kv KV, key string, logger *zap.Logger) (*Store, error) {
	s := &Store{kv: kv, key: key, logger: logger}

	data, err := kv.Get(ctx, key)
	if errors.Is(err, ErrNoValue) {
		//未保存は正常系
		return s, nil
	}
	if err != nil {
		logger.Error("cart load failed", zap.String("key", key), zap.Error(err))
		return nil, err
	}

	var items []LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		//壊れた保存値は捨ててリセット
		logger.Warn("discarding corrupted cart value",
			zap.String("key", key),
			zap.Error(err),
		)
		_ = kv.Delete(ctx, key)
		return s, nil
	}

	s.items = items
	return s, nil
}

// Items は表示順（挿入順）の明細コピーを返す。
func (s *Store) Items() []LineItem {
	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// AddItem は明細を追加する。数量省略（<=0）は1扱い。
// 同一IDが既にあれば数量を加算する。
func (s *Store) AddItem(ctx context.Context, item LineItem) error {
	qty := item.Quantity
	if qty <= 0 {
		qty = 1
	}

	for i := range s.items {
		if s.items[i].ID == item.ID {
			s.items[i].Quantity += qty
			return s.persist(ctx)
		}
	}

	item.Quantity = qty
	s.items = append(s.items, item)
	return s.persist(ctx)
}

// RemoveItem はIDの明細を消す。無ければ何もしない（エラーでもない）。
func (s *Store) RemoveItem(ctx context.Context, id string) error {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return s.persist(ctx)
		}
	}
	return nil
}

// SetQuantity は数量を置き換える。qty<=0はRemoveItemと同じ。
// 上限クランプはしない（在庫チェックは呼び出し側の責務）。
func (s *Store) SetQuantity(ctx context.Context, id string, qty int64) error {
	if qty <= 0 {
		return s.RemoveItem(ctx, id)
	}

	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity = qty
			return s.persist(ctx)
		}
	}
	return nil
}

// Clear は全明細を消す。空カートも明示的な保存状態として書く
// （「一度も初期化されていない」とは区別される）。
func (s *Store) Clear(ctx context.Context) error {
	s.items = nil
	return s.persist(ctx)
}

// ItemCount は数量の合計（バッジ表示用）。
func (s *Store) ItemCount() int64 {
	var n int64
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

// Subtotal はΣ(単価×数量)。副作用なし。
func (s *Store) Subtotal() int64 {
	var total int64
	for _, it := range s.items {
		total += it.UnitPrice * it.Quantity
	}
	return total
}

// 全量を同期的に書く。バッチングや後追い書き込みはしない。
func (s *Store) persist(ctx context.Context) error {
	items := s.items
	if items == nil {
		items = []LineItem{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, s.key, data)
}
