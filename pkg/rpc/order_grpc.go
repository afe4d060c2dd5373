package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// OrderServiceName は注文レジストリのgRPCサービス名。
const OrderServiceName = "crm.OrderService"

const (
	orderCreateMethod         = "/" + OrderServiceName + "/CreateOrder"
	orderListByCustomerMethod = "/" + OrderServiceName + "/GetCustomerOrders"
)

// OrderServiceServer は注文レジストリが実装するサーバーインターフェース。
type OrderServiceServer interface {
	CreateOrder(context.Context, *CreateOrderRequest) (*OrderResponse, error)
	GetCustomerOrders(context.Context, *GetCustomerOrdersRequest) (*OrderListResponse, error)
}

// UnimplementedOrderServiceServer は全メソッドで codes.Unimplemented を返す。
type UnimplementedOrderServiceServer struct{}

func (UnimplementedOrderServiceServer) CreateOrder(context.Context, *CreateOrderRequest) (*OrderResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateOrder not implemented")
}

func (UnimplementedOrderServiceServer) GetCustomerOrders(context.Context, *GetCustomerOrdersRequest) (*OrderListResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetCustomerOrders not implemented")
}

var orderServiceDesc = grpc.ServiceDesc{
	ServiceName: OrderServiceName,
	HandlerType: (*OrderServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateOrder",
			Handler: unaryHandler(orderCreateMethod, func(srv any, ctx context.Context, req *CreateOrderRequest) (*OrderResponse, error) {
				return srv.(OrderServiceServer).CreateOrder(ctx, req)
			}),
		},
		{
			MethodName: "GetCustomerOrders",
			Handler: unaryHandler(orderListByCustomerMethod, func(srv any, ctx context.Context, req *GetCustomerOrdersRequest) (*OrderListResponse, error) {
				return srv.(OrderServiceServer).GetCustomerOrders(ctx, req)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "crm.proto",
}

// RegisterOrderServiceServer は注文レジストリの実装をgRPCサーバーに登録する。
func RegisterOrderServiceServer(s grpc.ServiceRegistrar, srv OrderServiceServer) {
	s.RegisterService(&orderServiceDesc, srv)
}

// OrderServiceClient は注文レジストリのクライアントインターフェース。
type OrderServiceClient interface {
	CreateOrder(ctx context.Context, in *CreateOrderRequest, opts ...grpc.CallOption) (*OrderResponse, error)
	GetCustomerOrders(ctx context.Context, in *GetCustomerOrdersRequest, opts ...grpc.CallOption) (*OrderListResponse, error)
}

type orderServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewOrderServiceClient は接続から注文レジストリのクライアントを生成する。
func NewOrderServiceClient(cc grpc.ClientConnInterface) OrderServiceClient {
	return &orderServiceClient{cc: cc}
}

func (c *orderServiceClient) CreateOrder(ctx context.Context, in *CreateOrderRequest, opts ...grpc.CallOption) (*OrderResponse, error) {
	out := new(OrderResponse)
	if err := c.cc.Invoke(ctx, orderCreateMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *orderServiceClient) GetCustomerOrders(ctx context.Context, in *GetCustomerOrdersRequest, opts ...grpc.CallOption) (*OrderListResponse, error) {
	out := new(OrderListResponse)
	if err := c.cc.Invoke(ctx, orderListByCustomerMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
