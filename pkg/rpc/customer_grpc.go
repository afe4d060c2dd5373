package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// CustomerServiceName は顧客レジストリのgRPCサービス名。
const CustomerServiceName = "crm.CustomerService"

const (
	customerCreateMethod = "/" + CustomerServiceName + "/CreateCustomer"
	customerGetMethod    = "/" + CustomerServiceName + "/GetCustomer"
	customerListMethod   = "/" + CustomerServiceName + "/ListCustomers"
	customerUpdateMethod = "/" + CustomerServiceName + "/UpdateCustomer"
	customerDeleteMethod = "/" + CustomerServiceName + "/DeleteCustomer"
)

// CustomerServiceServer は顧客レジストリが実装するサーバーインターフェース。
type CustomerServiceServer interface {
	CreateCustomer(context.Context, *CreateCustomerRequest) (*CustomerResponse, error)
	GetCustomer(context.Context, *GetCustomerRequest) (*CustomerResponse, error)
	ListCustomers(context.Context, *Empty) (*CustomersListResponse, error)
	UpdateCustomer(context.Context, *UpdateCustomerRequest) (*CustomerResponse, error)
	DeleteCustomer(context.Context, *DeleteCustomerRequest) (*Empty, error)
}

// UnimplementedCustomerServiceServer は全メソッドで codes.Unimplemented を返す。
// 埋め込むことで一部のメソッドのみを実装できる。
type UnimplementedCustomerServiceServer struct{}

func (UnimplementedCustomerServiceServer) CreateCustomer(context.Context, *CreateCustomerRequest) (*CustomerResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateCustomer not implemented")
}

func (UnimplementedCustomerServiceServer) GetCustomer(context.Context, *GetCustomerRequest) (*CustomerResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetCustomer not implemented")
}

func (UnimplementedCustomerServiceServer) ListCustomers(context.Context, *Empty) (*CustomersListResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListCustomers not implemented")
}

func (UnimplementedCustomerServiceServer) UpdateCustomer(context.Context, *UpdateCustomerRequest) (*CustomerResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateCustomer not implemented")
}

func (UnimplementedCustomerServiceServer) DeleteCustomer(context.Context, *DeleteCustomerRequest) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteCustomer not implemented")
}

// customerServiceDesc は顧客レジストリのサービス記述子。
var customerServiceDesc = grpc.ServiceDesc{
	ServiceName: CustomerServiceName,
	HandlerType: (*CustomerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateCustomer",
			Handler: unaryHandler(customerCreateMethod, func(srv any, ctx context.Context, req *CreateCustomerRequest) (*CustomerResponse, error) {
				return srv.(CustomerServiceServer).CreateCustomer(ctx, req)
			}),
		},
		{
			MethodName: "GetCustomer",
			Handler: unaryHandler(customerGetMethod, func(srv any, ctx context.Context, req *GetCustomerRequest) (*CustomerResponse, error) {
				return srv.(CustomerServiceServer).GetCustomer(ctx, req)
			}),
		},
		{
			MethodName: "ListCustomers",
			Handler: unaryHandler(customerListMethod, func(srv any, ctx context.Context, req *Empty) (*CustomersListResponse, error) {
				return srv.(CustomerServiceServer).ListCustomers(ctx, req)
			}),
		},
		{
			MethodName: "UpdateCustomer",
			Handler: unaryHandler(customerUpdateMethod, func(srv any, ctx context.Context, req *UpdateCustomerRequest) (*CustomerResponse, error) {
				return srv.(CustomerServiceServer).UpdateCustomer(ctx, req)
			}),
		},
		{
			MethodName: "DeleteCustomer",
			Handler: unaryHandler(customerDeleteMethod, func(srv any, ctx context.Context, req *DeleteCustomerRequest) (*Empty, error) {
				return srv.(CustomerServiceServer).DeleteCustomer(ctx, req)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "crm.proto",
}

// RegisterCustomerServiceServer は顧客レジストリの実装をgRPCサーバーに登録する。
func RegisterCustomerServiceServer(s grpc.ServiceRegistrar, srv CustomerServiceServer) {
	s.RegisterService(&customerServiceDesc, srv)
}

// CustomerServiceClient は顧客レジストリのクライアントインターフェース。
type CustomerServiceClient interface {
	CreateCustomer(ctx context.Context, in *CreateCustomerRequest, opts ...grpc.CallOption) (*CustomerResponse, error)
	GetCustomer(ctx context.Context, in *GetCustomerRequest, opts ...grpc.CallOption) (*CustomerResponse, error)
	ListCustomers(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*CustomersListResponse, error)
	UpdateCustomer(ctx context.Context, in *UpdateCustomerRequest, opts ...grpc.CallOption) (*CustomerResponse, error)
	DeleteCustomer(ctx context.Context, in *DeleteCustomerRequest, opts ...grpc.CallOption) (*Empty, error)
}

type customerServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewCustomerServiceClient は接続から顧客レジストリのクライアントを生成する。
func NewCustomerServiceClient(cc grpc.ClientConnInterface) CustomerServiceClient {
	return &customerServiceClient{cc: cc}
}

func (c *customerServiceClient) CreateCustomer(ctx context.Context, in *CreateCustomerRequest, opts ...grpc.CallOption) (*CustomerResponse, error) {
	out := new(CustomerResponse)
	if err := c.cc.Invoke(ctx, customerCreateMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *customerServiceClient) GetCustomer(ctx context.Context, in *GetCustomerRequest, opts ...grpc.CallOption) (*CustomerResponse, error) {
	out := new(CustomerResponse)
	if err := c.cc.Invoke(ctx, customerGetMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *customerServiceClient) ListCustomers(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*CustomersListResponse, error) {
	out := new(CustomersListResponse)
	if err := c.cc.Invoke(ctx, customerListMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *customerServiceClient) UpdateCustomer(ctx context.Context, in *UpdateCustomerRequest, opts ...grpc.CallOption) (*CustomerResponse, error) {
	out := new(CustomerResponse)
	if err := c.cc.Invoke(ctx, customerUpdateMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *customerServiceClient) DeleteCustomer(ctx context.Context, in *DeleteCustomerRequest, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	if err := c.cc.Invoke(ctx, customerDeleteMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
