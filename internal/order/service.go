package order

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/nao1215/crm/pkg/rpc"
)

// Service は crm.OrderService のgRPC実装。
type Service struct {
	rpc.UnimplementedOrderServiceServer
	// store は注文レコードの保存先。
	store Store
	// now は作成日時に使用する現在時刻関数。
	now func() time.Time
}

var _ rpc.OrderServiceServer = (*Service)(nil)

// NewService は Service を生成する。
func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// CreateOrder は注文を作成する。customer_id は必須で、price は0以上であること。
func (s *Service) CreateOrder(ctx context.Context, req *rpc.CreateOrderRequest) (*rpc.OrderResponse, error) {
	log.Printf("[Order] 注文を作成します: customer_id=%s product=%s price=%v", req.CustomerID, req.ProductName, req.Price)

	if strings.TrimSpace(req.CustomerID) == "" {
		return nil, status.Error(codes.InvalidArgument, "customer_id is required")
	}
	if req.Price < 0 {
		return nil, status.Error(codes.InvalidArgument, "price must be greater than or equal to 0")
	}

	o := Order{
		ID:          IDPrefix + uuid.NewString(),
		CustomerID:  req.CustomerID,
		ProductName: req.ProductName,
		Price:       req.Price,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.store.Insert(ctx, o); err != nil {
		log.Printf("[Order] 注文の保存に失敗: %v", err)
		return nil, status.Error(codes.Internal, "Internal error")
	}
	return &rpc.OrderResponse{Order: toRPC(o)}, nil
}

// GetCustomerOrders は顧客の注文を作成順に返す。
func (s *Service) GetCustomerOrders(ctx context.Context, req *rpc.GetCustomerOrdersRequest) (*rpc.OrderListResponse, error) {
	if strings.TrimSpace(req.CustomerID) == "" {
		return nil, status.Error(codes.InvalidArgument, "customer_id is required")
	}

	orders, err := s.store.ListByCustomer(ctx, req.CustomerID)
	if err != nil {
		log.Printf("[Order] 注文一覧の取得に失敗: customer_id=%s: %v", req.CustomerID, err)
		return nil, status.Error(codes.Internal, "Internal error")
	}

	resp := &rpc.OrderListResponse{Orders: make([]*rpc.Order, 0, len(orders))}
	for _, o := range orders {
		resp.Orders = append(resp.Orders, toRPC(o))
	}
	return resp, nil
}

func toRPC(o Order) *rpc.Order {
	return &rpc.Order{
		ID:          o.ID,
		CustomerID:  o.CustomerID,
		ProductName: o.ProductName,
		Price:       o.Price,
		CreatedAt:   o.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}
