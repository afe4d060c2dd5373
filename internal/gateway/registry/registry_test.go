package registry

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/nao1215/crm/pkg/rpc"
)

// fakeCustomerServer はテストケースごとに応答を差し替えられる顧客サービス。
type fakeCustomerServer struct {
	rpc.UnimplementedCustomerServiceServer
	get  func(ctx context.Context, req *rpc.GetCustomerRequest) (*rpc.CustomerResponse, error)
	list func(ctx context.Context) (*rpc.CustomersListResponse, error)
}

func (f *fakeCustomerServer) GetCustomer(ctx context.Context, req *rpc.GetCustomerRequest) (*rpc.CustomerResponse, error) {
	return f.get(ctx, req)
}

func (f *fakeCustomerServer) ListCustomers(ctx context.Context, _ *rpc.Empty) (*rpc.CustomersListResponse, error) {
	return f.list(ctx)
}

// fakeOrderServer は常に固定の応答を返す注文サービス。
type fakeOrderServer struct {
	rpc.UnimplementedOrderServiceServer
	err error
}

func (f *fakeOrderServer) CreateOrder(_ context.Context, req *rpc.CreateOrderRequest) (*rpc.OrderResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &rpc.OrderResponse{Order: &rpc.Order{
		ID:          "order_1",
		CustomerID:  req.CustomerID,
		ProductName: req.ProductName,
		Price:       req.Price,
		CreatedAt:   "2026-01-01T00:00:00Z",
	}}, nil
}

func (f *fakeOrderServer) GetCustomerOrders(_ context.Context, _ *rpc.GetCustomerOrdersRequest) (*rpc.OrderListResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &rpc.OrderListResponse{Orders: []*rpc.Order{{ID: "order_1"}, {ID: "order_2"}}}, nil
}

func dialBufconn(t *testing.T, register func(*grpc.Server)) *grpc.ClientConn {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	register(srv)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := rpc.Dial("passthrough:///bufnet", grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestFromRPCError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantKind Kind
		wantCode codes.Code
		wantMsg  string
	}{
		{"NotFound", status.Error(codes.NotFound, "Customer not found"), KindNotFound, codes.NotFound, "Customer not found"},
		{"InvalidArgument", status.Error(codes.InvalidArgument, "customer_id is required"), KindInvalidArgument, codes.InvalidArgument, "customer_id is required"},
		{"Unavailable", status.Error(codes.Unavailable, "connection refused"), KindUnavailable, codes.Unavailable, "connection refused"},
		{"DeadlineExceeded", status.Error(codes.DeadlineExceeded, "context deadline exceeded"), KindTimeout, codes.DeadlineExceeded, "context deadline exceeded"},
		{"Internal", status.Error(codes.Internal, "Internal error"), KindInternal, codes.Internal, "Internal error"},
		{"表に無いコード", status.Error(codes.PermissionDenied, "denied"), KindInternal, codes.PermissionDenied, "denied"},
		{"ステータスを持たないエラー", errors.New("boom"), KindInternal, codes.Unknown, "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			be := FromRPCError(tt.err)
			require.NotNil(t, be)
			assert.Equal(t, tt.wantKind, be.Kind)
			assert.Equal(t, tt.wantCode, be.Code)
			assert.Equal(t, tt.wantMsg, be.Message)
			assert.ErrorIs(t, be, tt.err)
		})
	}

	t.Run("nilはnilのまま", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, FromRPCError(nil))
	})

	t.Run("ラップされたBackendErrorはそのまま返すこと", func(t *testing.T) {
		t.Parallel()

		orig := &BackendError{Kind: KindNotFound, Code: codes.NotFound, Message: "x"}
		got := FromRPCError(fmt.Errorf("wrap: %w", orig))
		assert.Same(t, orig, got)
		assert.True(t, IsNotFound(got))
	})
}

func TestCodeName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "NOT_FOUND", CodeName(codes.NotFound))
	assert.Equal(t, "DEADLINE_EXCEEDED", CodeName(codes.DeadlineExceeded))
	assert.Equal(t, "CANCELLED", CodeName(codes.Canceled))
	assert.Equal(t, "UNKNOWN", CodeName(codes.Code(999)))
}

func TestCustomerClient_Get(t *testing.T) {
	t.Parallel()

	fake := &fakeCustomerServer{
		get: func(ctx context.Context, req *rpc.GetCustomerRequest) (*rpc.CustomerResponse, error) {
			switch req.ID {
			case "cust_1":
				return &rpc.CustomerResponse{Customer: &rpc.Customer{ID: "cust_1", Name: "Ivan", Email: "ivan@x.ru"}}, nil
			case "cust_empty":
				return &rpc.CustomerResponse{}, nil
			case "cust_slow":
				<-ctx.Done()
				return nil, status.FromContextError(ctx.Err()).Err()
			default:
				return nil, status.Error(codes.NotFound, "Customer not found")
			}
		},
	}
	conn := dialBufconn(t, func(s *grpc.Server) { rpc.RegisterCustomerServiceServer(s, fake) })
	client := NewCustomerClient(conn, 200*time.Millisecond)

	t.Run("存在する顧客を取得できること", func(t *testing.T) {
		t.Parallel()

		got, err := client.Get(context.Background(), "cust_1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Ivan", got.Name)
		assert.Equal(t, "ivan@x.ru", got.Email)
	})

	t.Run("空のペイロードはnil, nilになること", func(t *testing.T) {
		t.Parallel()

		got, err := client.Get(context.Background(), "cust_empty")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("NotFoundステータスはKindNotFoundになること", func(t *testing.T) {
		t.Parallel()

		_, err := client.Get(context.Background(), "cust_missing")
		require.Error(t, err)
		assert.True(t, IsNotFound(err))
	})

	t.Run("呼び出し単位のタイムアウトはKindTimeoutになること", func(t *testing.T) {
		t.Parallel()

		_, err := client.Get(context.Background(), "cust_slow")
		be, ok := AsBackendError(err)
		require.True(t, ok)
		assert.Equal(t, KindTimeout, be.Kind)
	})
}

func TestCustomerClient_List(t *testing.T) {
	t.Parallel()

	fake := &fakeCustomerServer{
		list: func(context.Context) (*rpc.CustomersListResponse, error) {
			return &rpc.CustomersListResponse{Customers: []*rpc.Customer{{ID: "cust_a"}, nil, {ID: "cust_b"}}}, nil
		},
	}
	conn := dialBufconn(t, func(s *grpc.Server) { rpc.RegisterCustomerServiceServer(s, fake) })

	got, err := NewCustomerClient(conn, time.Second).List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "cust_a", got[0].ID)
	assert.Equal(t, "cust_b", got[1].ID)
}

func TestCustomerClient_Unimplemented(t *testing.T) {
	t.Parallel()

	conn := dialBufconn(t, func(s *grpc.Server) { rpc.RegisterCustomerServiceServer(s, &fakeCustomerServer{}) })

	err := NewCustomerClient(conn, time.Second).Delete(context.Background(), "cust_1")
	be, ok := AsBackendError(err)
	require.True(t, ok)
	assert.Equal(t, KindInternal, be.Kind)
	assert.Equal(t, codes.Unimplemented, be.Code)
}

func TestOrderClient(t *testing.T) {
	t.Parallel()

	t.Run("注文を作成できること", func(t *testing.T) {
		t.Parallel()

		conn := dialBufconn(t, func(s *grpc.Server) { rpc.RegisterOrderServiceServer(s, &fakeOrderServer{}) })
		client := NewOrderClient(conn, time.Second)

		got, err := client.Create(context.Background(), OrderIntent{CustomerID: "cust_1", ProductName: "Book", Price: 15})
		require.NoError(t, err)
		assert.Equal(t, "cust_1", got.CustomerID)
		assert.Equal(t, "Book", got.ProductName)
		assert.InDelta(t, 15.0, got.Price, 0.0001)

		orders, err := client.ListByCustomer(context.Background(), "cust_1")
		require.NoError(t, err)
		assert.Len(t, orders, 2)
	})

	t.Run("レジストリのエラーはBackendErrorとして返ること", func(t *testing.T) {
		t.Parallel()

		conn := dialBufconn(t, func(s *grpc.Server) {
			rpc.RegisterOrderServiceServer(s, &fakeOrderServer{err: status.Error(codes.Unavailable, "db down")})
		})
		client := NewOrderClient(conn, time.Second)

		_, err := client.ListByCustomer(context.Background(), "cust_1")
		be, ok := AsBackendError(err)
		require.True(t, ok)
		assert.Equal(t, KindUnavailable, be.Kind)
		assert.Equal(t, "db down", be.Message)
	})
}
