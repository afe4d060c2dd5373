package customer

import (
	"context"
	"slices"
	"sync"
)

// MemoryStore はメモリ上に顧客を保持する Store の実装。
// 挿入順を保持するため、IDの並びを別に管理する。
type MemoryStore struct {
	mu        sync.RWMutex
	customers map[string]Customer
	order     []string
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore は空の MemoryStore を生成する。
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{customers: make(map[string]Customer)}
}

// Insert は新しい顧客を保存する。
func (m *MemoryStore) Insert(_ context.Context, c Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.customers[c.ID]; !ok {
		m.order = append(m.order, c.ID)
	}
	m.customers[c.ID] = c
	return nil
}

// Get はIDで顧客を取得する。
func (m *MemoryStore) Get(_ context.Context, id string) (Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.customers[id]
	if !ok {
		return Customer{}, ErrNotFound
	}
	return c, nil
}

// List は全顧客を挿入順に返す。
func (m *MemoryStore) List(_ context.Context) ([]Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	customers := make([]Customer, 0, len(m.order))
	for _, id := range m.order {
		customers = append(customers, m.customers[id])
	}
	return customers, nil
}

// Update は顧客の名前とメールアドレスを更新する。
func (m *MemoryStore) Update(_ context.Context, id, name, email string) (Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.customers[id]
	if !ok {
		return Customer{}, ErrNotFound
	}
	c.Name = name
	c.Email = email
	m.customers[id] = c
	return c, nil
}

// Delete は顧客を削除する。
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.customers[id]; !ok {
		return ErrNotFound
	}
	delete(m.customers, id)
	m.order = slices.DeleteFunc(m.order, func(v string) bool { return v == id })
	return nil
}
