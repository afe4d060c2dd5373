package order

import (
	"context"
	"time"
)

// IDPrefix は注文IDの接頭辞。
const IDPrefix = "order_"

// Order は保存される注文レコード。
type Order struct {
	// ID は注文の一意識別子。
	ID string
	// CustomerID は注文した顧客のID。
	CustomerID string
	// ProductName は商品名。
	ProductName string
	// Price は価格。
	Price float64
	// CreatedAt は作成日時（UTC）。
	CreatedAt time.Time
}

// Store は注文レコードの永続化を担う。
type Store interface {
	// Insert は新しい注文を保存する。
	Insert(ctx context.Context, o Order) error
	// ListByCustomer は顧客の注文を作成順に返す。該当が無い場合は空スライスを返す。
	ListByCustomer(ctx context.Context, customerID string) ([]Order, error)
}
