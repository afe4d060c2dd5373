package registry

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"

	"github.com/nao1215/crm/pkg/rpc"
)

// CustomerClient はgRPC経由で顧客レジストリを呼び出す CustomerRegistry の実装。
// すべての呼び出しに timeout を上限とする期限を設定する。
type CustomerClient struct {
	client  rpc.CustomerServiceClient
	timeout time.Duration
}

var _ CustomerRegistry = (*CustomerClient)(nil)

// NewCustomerClient は接続済みのgRPCコネクションから CustomerClient を生成する。
func NewCustomerClient(cc grpc.ClientConnInterface, timeout time.Duration) *CustomerClient {
	return &CustomerClient{
		client:  rpc.NewCustomerServiceClient(cc),
		timeout: timeout,
	}
}

// Create は顧客を作成する。
func (c *CustomerClient) Create(ctx context.Context, in CustomerInput) (*Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateCustomer(ctx, &rpc.CreateCustomerRequest{Name: in.Name, Email: in.Email})
	if err != nil {
		return nil, FromRPCError(err)
	}
	if resp.Customer == nil {
		return nil, emptyPayload("CreateCustomer")
	}
	return fromRPCCustomer(resp.Customer), nil
}

// Get は顧客を取得する。空のペイロードは (nil, nil) として返す。
func (c *CustomerClient) Get(ctx context.Context, id string) (*Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.GetCustomer(ctx, &rpc.GetCustomerRequest{ID: id})
	if err != nil {
		return nil, FromRPCError(err)
	}
	if resp.Customer == nil {
		return nil, nil
	}
	return fromRPCCustomer(resp.Customer), nil
}

// List は全顧客を取得する。
func (c *CustomerClient) List(ctx context.Context) ([]Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.ListCustomers(ctx, &rpc.Empty{})
	if err != nil {
		return nil, FromRPCError(err)
	}

	customers := make([]Customer, 0, len(resp.Customers))
	for _, rc := range resp.Customers {
		if rc == nil {
			continue
		}
		customers = append(customers, *fromRPCCustomer(rc))
	}
	return customers, nil
}

// Update は顧客を更新する。
func (c *CustomerClient) Update(ctx context.Context, id string, in CustomerInput) (*Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.UpdateCustomer(ctx, &rpc.UpdateCustomerRequest{ID: id, Name: in.Name, Email: in.Email})
	if err != nil {
		return nil, FromRPCError(err)
	}
	if resp.Customer == nil {
		return nil, emptyPayload("UpdateCustomer")
	}
	return fromRPCCustomer(resp.Customer), nil
}

// Delete は顧客を削除する。
func (c *CustomerClient) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if _, err := c.client.DeleteCustomer(ctx, &rpc.DeleteCustomerRequest{ID: id}); err != nil {
		return FromRPCError(err)
	}
	return nil
}

// OrderClient はgRPC経由で注文レジストリを呼び出す OrderRegistry の実装。
type OrderClient struct {
	client  rpc.OrderServiceClient
	timeout time.Duration
}

var _ OrderRegistry = (*OrderClient)(nil)

// NewOrderClient は接続済みのgRPCコネクションから OrderClient を生成する。
func NewOrderClient(cc grpc.ClientConnInterface, timeout time.Duration) *OrderClient {
	return &OrderClient{
		client:  rpc.NewOrderServiceClient(cc),
		timeout: timeout,
	}
}

// Create は注文を作成する。
func (c *OrderClient) Create(ctx context.Context, intent OrderIntent) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateOrder(ctx, &rpc.CreateOrderRequest{
		CustomerID:  intent.CustomerID,
		ProductName: intent.ProductName,
		Price:       intent.Price,
	})
	if err != nil {
		return nil, FromRPCError(err)
	}
	if resp.Order == nil {
		return nil, emptyPayload("CreateOrder")
	}
	return fromRPCOrder(resp.Order), nil
}

// ListByCustomer は顧客の注文一覧を取得する。
func (c *OrderClient) ListByCustomer(ctx context.Context, customerID string) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.GetCustomerOrders(ctx, &rpc.GetCustomerOrdersRequest{CustomerID: customerID})
	if err != nil {
		return nil, FromRPCError(err)
	}

	orders := make([]Order, 0, len(resp.Orders))
	for _, ro := range resp.Orders {
		if ro == nil {
			continue
		}
		orders = append(orders, *fromRPCOrder(ro))
	}
	return orders, nil
}

func fromRPCCustomer(c *rpc.Customer) *Customer {
	return &Customer{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
	}
}

func fromRPCOrder(o *rpc.Order) *Order {
	return &Order{
		ID:          o.ID,
		CustomerID:  o.CustomerID,
		ProductName: o.ProductName,
		Price:       o.Price,
		CreatedAt:   o.CreatedAt,
	}
}

// emptyPayload は作成・更新系の呼び出しが成功ステータスで空の結果を返した場合のエラー。
func emptyPayload(method string) *BackendError {
	return &BackendError{
		Kind:    KindInternal,
		Code:    codes.Internal,
		Message: method + " returned an empty response",
	}
}
