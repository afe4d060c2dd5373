package customer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/nao1215/crm/pkg/database"
)

// timeLayout は created_at 列の保存形式。
// 固定長のため文字列比較で作成順に並ぶ。
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLStore はリレーショナルストアに顧客を保存する Store の実装。
type SQLStore struct {
	db *database.DB
}

var _ Store = (*SQLStore)(nil)

// NewSQLStore は SQLStore を生成する。スキーマは事前にマイグレーション済みであること。
func NewSQLStore(db *database.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Insert は新しい顧客を保存する。
func (s *SQLStore) Insert(ctx context.Context, c Customer) error {
	_, err := s.db.ExecContext(ctx,
		s.db.Dialect.Rebind("INSERT INTO customers (id, name, email, created_at) VALUES (?, ?, ?, ?)"),
		c.ID, c.Name, c.Email, c.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("顧客の挿入に失敗: %w", err)
	}
	return nil
}

// Get はIDで顧客を取得する。
func (s *SQLStore) Get(ctx context.Context, id string) (Customer, error) {
	row := s.db.QueryRowContext(ctx,
		s.db.Dialect.Rebind("SELECT id, name, email, created_at FROM customers WHERE id = ?"),
		id,
	)
	c, err := scanCustomer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Customer{}, ErrNotFound
	}
	if err != nil {
		return Customer{}, fmt.Errorf("顧客の取得に失敗: %w", err)
	}
	return c, nil
}

// List は全顧客を作成順に返す。
func (s *SQLStore) List(ctx context.Context) ([]Customer, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, email, created_at FROM customers ORDER BY created_at, id",
	)
	if err != nil {
		return nil, fmt.Errorf("顧客一覧の取得に失敗: %w", err)
	}
	defer func() { _ = rows.Close() }()

	customers := []Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("顧客一覧の読み取りに失敗: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// Update は顧客の名前とメールアドレスを更新する。
func (s *SQLStore) Update(ctx context.Context, id, name, email string) (Customer, error) {
	res, err := s.db.ExecContext(ctx,
		s.db.Dialect.Rebind("UPDATE customers SET name = ?, email = ? WHERE id = ?"),
		name, email, id,
	)
	if err != nil {
		return Customer{}, fmt.Errorf("顧客の更新に失敗: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Customer{}, ErrNotFound
	}
	return s.Get(ctx, id)
}

// Delete は顧客を削除する。
func (s *SQLStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		s.db.Dialect.Rebind("DELETE FROM customers WHERE id = ?"),
		id,
	)
	if err != nil {
		return fmt.Errorf("顧客の削除に失敗: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("削除件数の取得に失敗: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// scanner は *sql.Row と *sql.Rows の共通インターフェース。
type scanner interface {
	Scan(dest ...any) error
}

func scanCustomer(sc scanner) (Customer, error) {
	var (
		c         Customer
		createdAt string
	)
	if err := sc.Scan(&c.ID, &c.Name, &c.Email, &createdAt); err != nil {
		return Customer{}, err
	}
	t, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return Customer{}, fmt.Errorf("作成日時の解析に失敗: %q: %w", createdAt, err)
	}
	c.CreatedAt = t
	return c, nil
}
