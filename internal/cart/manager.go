package cart

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

const keyPrefix = "cart:"

// Manager はセッションIDごとにStoreを1つだけ持つオーナー。
// 各ビューがカートを再宣言するのではなく、ここから参照を受け取る。
type Manager struct {
	mu     sync.Mutex
	stores map[string]*Store
	kv     KV
	logger *zap.Logger
}

func NewManager(kv KV, logger *zap.Logger) *Manager {
	return &Manager{
		stores: map[string]*Store{},
		kv:     kv,
		logger: logger,
	}
}

// Session はセッションのStoreを返す。初回は保存値から復元する。
// 復元に失敗したらStoreはキャッシュしない（空カートで保存値を潰さないため）。
func (m *Manager) Session(ctx context.Context, sessionID string) (*Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.session(ctx, sessionID)
}

func (m *Manager) session(ctx context.Context, sessionID string) (*Store, error) {
	if s, ok := m.stores[sessionID]; ok {
		return s, nil
	}

	s, err := Load(ctx, m.kv, keyPrefix+sessionID, m.logger)
	if err != nil {
		return nil, err
	}
	m.stores[sessionID] = s
	return s, nil
}

// EndSession はセッション終了時の後片付け。保存値も消す。
func (m *Manager) EndSession(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.stores, sessionID)
	return m.kv.Delete(ctx, keyPrefix+sessionID)
}

// WithSession はStoreへのアクセスをセッション単位で直列化して実行する。
// Store自体はロックを持たないので、ハンドラからは必ずこれを通す。
func (m *Manager) WithSession(ctx context.Context, sessionID string, fn func(s *Store) error) error {
	//mapのロックとStore操作のロックを兼ねる（操作は短いので1本で足りる）
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.session(ctx, sessionID)
	if err != nil {
		return err
	}
	return fn(s)
}
