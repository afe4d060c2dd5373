package customer

import (
	"context"
	"errors"
	"time"
)

// IDPrefix は顧客IDの接頭辞。
const IDPrefix = "cust_"

// ErrNotFound は指定したIDの顧客が存在しないことを表す。
var ErrNotFound = errors.New("顧客が見つかりません")

// Customer は保存される顧客レコード。
type Customer struct {
	// ID は顧客の一意識別子。
	ID string
	// Name は顧客名。
	Name string
	// Email はメールアドレス。
	Email string
	// CreatedAt は作成日時（UTC）。
	CreatedAt time.Time
}

// Store は顧客レコードの永続化を担う。
// 存在しないIDに対する Get/Update/Delete は ErrNotFound を返す。
type Store interface {
	// Insert は新しい顧客を保存する。
	Insert(ctx context.Context, c Customer) error
	// Get はIDで顧客を取得する。
	Get(ctx context.Context, id string) (Customer, error)
	// List は全顧客を作成順に返す。
	List(ctx context.Context) ([]Customer, error)
	// Update は顧客の名前とメールアドレスを更新し、更新後のレコードを返す。
	Update(ctx context.Context, id, name, email string) (Customer, error)
	// Delete は顧客を削除する。
	Delete(ctx context.Context, id string) error
}
