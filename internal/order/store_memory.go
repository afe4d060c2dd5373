package order

import (
	"context"
	"sync"
)

// MemoryStore はメモリ上に注文を保持する Store の実装。
type MemoryStore struct {
	mu     sync.RWMutex
	orders []Order
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore は空の MemoryStore を生成する。
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Insert は新しい注文を保存する。
func (m *MemoryStore) Insert(_ context.Context, o Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.orders = append(m.orders, o)
	return nil
}

// ListByCustomer は顧客の注文を挿入順に返す。
func (m *MemoryStore) ListByCustomer(_ context.Context, customerID string) ([]Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	orders := []Order{}
	for _, o := range m.orders {
		if o.CustomerID == customerID {
			orders = append(orders, o)
		}
	}
	return orders, nil
}
