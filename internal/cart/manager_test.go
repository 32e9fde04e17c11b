package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func sessionStore(t *testing.T, m *Manager, id string) *Store {
	t.Helper()
	s, err := m.Session(context.Background(), id)
	assert.NoError(t, err)
	return s
}

func TestManager_SessionReturnsSameStore(t *testing.T) {
	m := NewManager(NewMemoryKV(), zap.NewNop())

	a := sessionStore(t, m, "s1")
	b := sessionStore(t, m, "s1")

	//1セッション=1オーナー
	assert.Same(t, a, b)
}

func TestManager_SessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryKV(), zap.NewNop())

	_ = sessionStore(t, m, "s1").AddItem(ctx, LineItem{ID: "A", UnitPrice: 100})

	assert.Equal(t, int64(1), sessionStore(t, m, "s1").ItemCount())
	assert.Equal(t, int64(0), sessionStore(t, m, "s2").ItemCount())
}

func TestManager_SessionRestoresFromKV(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()

	m1 := NewManager(kv, zap.NewNop())
	_ = sessionStore(t, m1, "s1").AddItem(ctx, LineItem{ID: "A", UnitPrice: 100, Quantity: 2})

	//別プロセス相当：同じKVから復元される
	m2 := NewManager(kv, zap.NewNop())
	assert.Equal(t, int64(2), sessionStore(t, m2, "s1").ItemCount())
}

func TestManager_EndSessionDropsStoreAndKey(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	m := NewManager(kv, zap.NewNop())

	_ = sessionStore(t, m, "s1").AddItem(ctx, LineItem{ID: "A", UnitPrice: 100})
	assert.NoError(t, m.EndSession(ctx, "s1"))

	_, err := kv.Get(ctx, "cart:s1")
	assert.ErrorIs(t, err, ErrNoValue)

	//終了後のアクセスは空の新規Store
	assert.Equal(t, int64(0), sessionStore(t, m, "s1").ItemCount())
}

func TestManager_WithSessionSerializes(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryKV(), zap.NewNop())

	err := m.WithSession(ctx, "s1", func(s *Store) error {
		return s.AddItem(ctx, LineItem{ID: "A", UnitPrice: 100})
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), sessionStore(t, m, "s1").ItemCount())
}

// Get障害中のアクセスはエラーになり、空Storeがキャッシュされない。
// 復旧後の書き込みが保存済みカートを上書きしないこと。
func TestManager_TransientGetErrorDoesNotDropSavedCart(t *testing.T) {
	ctx := context.Background()
	kv := &failingGetKV{MemoryKV: NewMemoryKV()}

	m1 := NewManager(kv, zap.NewNop())
	_ = sessionStore(t, m1, "s1").AddItem(ctx, LineItem{ID: "A", UnitPrice: 1000, Quantity: 2})

	//別プロセス相当のManagerが、障害中に初回アクセスするとエラー
	m2 := NewManager(kv, zap.NewNop())
	kv.fail = true
	_, err := m2.Session(ctx, "s1")
	assert.Error(t, err)

	err = m2.WithSession(ctx, "s1", func(s *Store) error {
		return s.AddItem(ctx, LineItem{ID: "B", UnitPrice: 500})
	})
	assert.Error(t, err)

	//復旧後は保存値から復元され、qty 2のまま（空カートで潰れていない）
	kv.fail = false
	s := sessionStore(t, m2, "s1")
	assert.Equal(t, int64(2), s.ItemCount())

	_ = s.AddItem(ctx, LineItem{ID: "B", UnitPrice: 500})
	assert.Equal(t, int64(3), s.ItemCount())
}
