// Package registry はゲートウェイから見た顧客レジストリと注文レジストリのポートを定義する。
//
// ゲートウェイのハンドラーとオーケストレーターはこのパッケージのインターフェースにのみ依存し、
// gRPCによる実装（CustomerClient, OrderClient）やテスト用のモックと差し替えられる。
// レジストリ呼び出しの失敗はすべて *BackendError として返される。
package registry

//go:generate mockgen -source=registry.go -destination=mocks/registry_mock.go -package=mocks

import "context"

// Customer は顧客レジストリが保持する顧客レコード。
// ゲートウェイはこの値を永続化せず、外部レスポンスへそのまま受け渡す。
type Customer struct {
	// ID は "cust_" で始まる顧客ID。
	ID string `json:"id"`
	// Name は顧客名。
	Name string `json:"name"`
	// Email は顧客のメールアドレス。
	Email string `json:"email"`
	// CreatedAt はISO-8601形式の作成日時。
	CreatedAt string `json:"created_at"`
}

// CustomerInput は顧客の作成・更新に使用する入力値。
type CustomerInput struct {
	Name  string
	Email string
}

// Order は注文レジストリが保持する注文レコード。
type Order struct {
	// ID は "order_" で始まる注文ID。
	ID string `json:"id"`
	// CustomerID は注文した顧客のID。
	CustomerID string `json:"customer_id"`
	// ProductName は商品名。
	ProductName string `json:"product_name"`
	// Price は価格。0以上。
	Price float64 `json:"price"`
	// CreatedAt はISO-8601形式の作成日時。
	CreatedAt string `json:"created_at"`
}

// OrderIntent は注文作成リクエストから組み立てる一時的な値。
// オーケストレーターが一度だけ消費し、ワークフロー完了後は破棄される。
type OrderIntent struct {
	CustomerID  string
	ProductName string
	Price       float64
}

// CustomerRegistry は顧客レジストリへのポート。
type CustomerRegistry interface {
	// Create は顧客を作成して作成済みレコードを返す。
	Create(ctx context.Context, in CustomerInput) (*Customer, error)
	// Get は顧客を取得する。
	// レジストリが成功ステータスで空のペイロードを返した場合は (nil, nil) を返す。
	Get(ctx context.Context, id string) (*Customer, error)
	// List は全顧客を作成順に返す。
	List(ctx context.Context) ([]Customer, error)
	// Update は顧客の名前とメールアドレスを更新して更新後のレコードを返す。
	Update(ctx context.Context, id string, in CustomerInput) (*Customer, error)
	// Delete は顧客を削除する。
	Delete(ctx context.Context, id string) error
}

// OrderRegistry は注文レジストリへのポート。
type OrderRegistry interface {
	// Create は注文を作成して作成済みレコードを返す。
	Create(ctx context.Context, intent OrderIntent) (*Order, error)
	// ListByCustomer は顧客の注文を作成順に返す。
	ListByCustomer(ctx context.Context, customerID string) ([]Order, error)
}
