package order

import (
	"context"
	"fmt"
	"time"

	"github.com/nao1215/crm/pkg/database"
)

// timeLayout は created_at 列の保存形式。
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLStore はリレーショナルストアに注文を保存する Store の実装。
type SQLStore struct {
	db *database.DB
}

var _ Store = (*SQLStore)(nil)

// NewSQLStore は SQLStore を生成する。
func NewSQLStore(db *database.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Insert は新しい注文を保存する。
func (s *SQLStore) Insert(ctx context.Context, o Order) error {
	_, err := s.db.ExecContext(ctx,
		s.db.Dialect.Rebind("INSERT INTO orders (id, customer_id, product_name, price, created_at) VALUES (?, ?, ?, ?, ?)"),
		o.ID, o.CustomerID, o.ProductName, o.Price, o.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("注文の挿入に失敗: %w", err)
	}
	return nil
}

// ListByCustomer は顧客の注文を作成順に返す。
func (s *SQLStore) ListByCustomer(ctx context.Context, customerID string) ([]Order, error) {
	rows, err := s.db.QueryContext(ctx,
		s.db.Dialect.Rebind(`
			SELECT id, customer_id, product_name, price, created_at
			FROM orders
			WHERE customer_id = ?
			ORDER BY created_at, id
		`),
		customerID,
	)
	if err != nil {
		return nil, fmt.Errorf("注文一覧の取得に失敗: %w", err)
	}
	defer func() { _ = rows.Close() }()

	orders := []Order{}
	for rows.Next() {
		var (
			o         Order
			createdAt string
		)
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.ProductName, &o.Price, &createdAt); err != nil {
			return nil, fmt.Errorf("注文一覧の読み取りに失敗: %w", err)
		}
		if o.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
			return nil, fmt.Errorf("作成日時の解析に失敗: %q: %w", createdAt, err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
