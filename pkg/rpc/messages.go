package rpc

// Empty は空のリクエスト/レスポンス。
type Empty struct{}

// Customer は顧客レジストリが管理する顧客レコード。
type Customer struct {
	// ID は "cust_" プレフィックス付きの顧客ID。
	ID string `json:"id"`
	// Name は顧客名。
	Name string `json:"name"`
	// Email は顧客のメールアドレス。
	Email string `json:"email"`
	// CreatedAt はISO-8601形式の作成日時。
	CreatedAt string `json:"created_at"`
}

// CreateCustomerRequest は顧客作成リクエスト。
type CreateCustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// GetCustomerRequest は顧客取得リクエスト。
type GetCustomerRequest struct {
	ID string `json:"id"`
}

// UpdateCustomerRequest は顧客更新リクエスト。
type UpdateCustomerRequest struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// DeleteCustomerRequest は顧客削除リクエスト。
type DeleteCustomerRequest struct {
	ID string `json:"id"`
}

// CustomerResponse は単一顧客のレスポンス。
// Customer が nil の場合、レジストリは成功ステータスで「顧客なし」を表現している。
type CustomerResponse struct {
	Customer *Customer `json:"customer,omitempty"`
}

// CustomersListResponse は顧客一覧のレスポンス。
type CustomersListResponse struct {
	Customers []*Customer `json:"customers"`
}

// Order は注文レジストリが管理する注文レコード。
type Order struct {
	// ID は "order_" プレフィックス付きの注文ID。
	ID string `json:"id"`
	// CustomerID は注文した顧客のID。
	CustomerID string `json:"customer_id"`
	// ProductName は商品名。
	ProductName string `json:"product_name"`
	// Price は価格。
	Price float64 `json:"price"`
	// CreatedAt はISO-8601形式の作成日時。
	CreatedAt string `json:"created_at"`
}

// CreateOrderRequest は注文作成リクエスト。
type CreateOrderRequest struct {
	CustomerID  string  `json:"customer_id"`
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price"`
}

// GetCustomerOrdersRequest は顧客別注文一覧リクエスト。
type GetCustomerOrdersRequest struct {
	CustomerID string `json:"customer_id"`
}

// OrderResponse は単一注文のレスポンス。
type OrderResponse struct {
	Order *Order `json:"order,omitempty"`
}

// OrderListResponse は注文一覧のレスポンス。
type OrderListResponse struct {
	Orders []*Order `json:"orders"`
}
