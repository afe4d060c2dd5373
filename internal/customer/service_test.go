package customer

import (
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/nao1215/crm/pkg/rpc"
)

// setupTestServer はインメモリストアを使う顧客レジストリをbufconn上で起動する。
func setupTestServer(t *testing.T) *grpc.ClientConn {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	s := newServer(NewMemoryStore())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = s.serve(ctx, lis)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
		_ = s.Close()
	})

	conn, err := rpc.Dial("passthrough:///bufnet", grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	}))
	if err != nil {
		t.Fatalf("接続に失敗: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

// TestService はgRPC経由で顧客サービスの各操作を検証する。
func TestService(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("作成した顧客をIDで取得すると同じ名前とメールアドレスが返ること", func(t *testing.T) {
		t.Parallel()

		client := rpc.NewCustomerServiceClient(setupTestServer(t))
		created, err := client.CreateCustomer(ctx, &rpc.CreateCustomerRequest{Name: "Ivan", Email: "ivan@x.ru"})
		if err != nil {
			t.Fatalf("CreateCustomer()でエラーが発生: %v", err)
		}
		if !strings.HasPrefix(created.Customer.ID, IDPrefix) {
			t.Errorf("ID = %q, %q で始まる必要がある", created.Customer.ID, IDPrefix)
		}
		if _, err := time.Parse(time.RFC3339Nano, created.Customer.CreatedAt); err != nil {
			t.Errorf("CreatedAt = %q はISO-8601形式でない: %v", created.Customer.CreatedAt, err)
		}

		got, err := client.GetCustomer(ctx, &rpc.GetCustomerRequest{ID: created.Customer.ID})
		if err != nil {
			t.Fatalf("GetCustomer()でエラーが発生: %v", err)
		}
		if got.Customer.Name != "Ivan" {
			t.Errorf("Name = %q, want %q", got.Customer.Name, "Ivan")
		}
		if got.Customer.Email != "ivan@x.ru" {
			t.Errorf("Email = %q, want %q", got.Customer.Email, "ivan@x.ru")
		}
	})

	t.Run("存在しない顧客はNotFoundを返すこと", func(t *testing.T) {
		t.Parallel()

		client := rpc.NewCustomerServiceClient(setupTestServer(t))
		_, err := client.GetCustomer(ctx, &rpc.GetCustomerRequest{ID: "cust_missing"})
		if status.Code(err) != codes.NotFound {
			t.Fatalf("code = %v, want %v", status.Code(err), codes.NotFound)
		}
		if msg := status.Convert(err).Message(); msg != "Customer not found" {
			t.Errorf("message = %q, want %q", msg, "Customer not found")
		}

		_, err = client.UpdateCustomer(ctx, &rpc.UpdateCustomerRequest{ID: "cust_missing", Name: "a", Email: "b"})
		if status.Code(err) != codes.NotFound {
			t.Errorf("UpdateCustomer code = %v, want %v", status.Code(err), codes.NotFound)
		}
		_, err = client.DeleteCustomer(ctx, &rpc.DeleteCustomerRequest{ID: "cust_missing"})
		if status.Code(err) != codes.NotFound {
			t.Errorf("DeleteCustomer code = %v, want %v", status.Code(err), codes.NotFound)
		}
	})

	t.Run("必須項目が無い場合はInvalidArgumentを返すこと", func(t *testing.T) {
		t.Parallel()

		client := rpc.NewCustomerServiceClient(setupTestServer(t))
		tests := []struct {
			name string
			call func() error
			want string
		}{
			{"作成時のname", func() error {
				_, err := client.CreateCustomer(ctx, &rpc.CreateCustomerRequest{Email: "a@example.com"})
				return err
			}, "name is required"},
			{"作成時のemail", func() error {
				_, err := client.CreateCustomer(ctx, &rpc.CreateCustomerRequest{Name: "a", Email: "  "})
				return err
			}, "email is required"},
			{"取得時のid", func() error {
				_, err := client.GetCustomer(ctx, &rpc.GetCustomerRequest{})
				return err
			}, "id is required"},
			{"削除時のid", func() error {
				_, err := client.DeleteCustomer(ctx, &rpc.DeleteCustomerRequest{})
				return err
			}, "id is required"},
		}
		for _, tt := range tests {
			err := tt.call()
			if status.Code(err) != codes.InvalidArgument {
				t.Errorf("%s: code = %v, want %v", tt.name, status.Code(err), codes.InvalidArgument)
				continue
			}
			if msg := status.Convert(err).Message(); msg != tt.want {
				t.Errorf("%s: message = %q, want %q", tt.name, msg, tt.want)
			}
		}
	})

	t.Run("更新と削除が一覧に反映されること", func(t *testing.T) {
		t.Parallel()

		client := rpc.NewCustomerServiceClient(setupTestServer(t))
		first, err := client.CreateCustomer(ctx, &rpc.CreateCustomerRequest{Name: "A", Email: "a@example.com"})
		if err != nil {
			t.Fatalf("CreateCustomer()でエラーが発生: %v", err)
		}
		second, err := client.CreateCustomer(ctx, &rpc.CreateCustomerRequest{Name: "B", Email: "b@example.com"})
		if err != nil {
			t.Fatalf("CreateCustomer()でエラーが発生: %v", err)
		}

		updated, err := client.UpdateCustomer(ctx, &rpc.UpdateCustomerRequest{ID: first.Customer.ID, Name: "A2", Email: "a2@example.com"})
		if err != nil {
			t.Fatalf("UpdateCustomer()でエラーが発生: %v", err)
		}
		if updated.Customer.Name != "A2" {
			t.Errorf("Name = %q, want %q", updated.Customer.Name, "A2")
		}
		if updated.Customer.CreatedAt != first.Customer.CreatedAt {
			t.Errorf("CreatedAt = %q, want %q", updated.Customer.CreatedAt, first.Customer.CreatedAt)
		}

		if _, err := client.DeleteCustomer(ctx, &rpc.DeleteCustomerRequest{ID: second.Customer.ID}); err != nil {
			t.Fatalf("DeleteCustomer()でエラーが発生: %v", err)
		}

		list, err := client.ListCustomers(ctx, &rpc.Empty{})
		if err != nil {
			t.Fatalf("ListCustomers()でエラーが発生: %v", err)
		}
		if len(list.Customers) != 1 || list.Customers[0].ID != first.Customer.ID {
			t.Errorf("ListCustomers() = %+v, want only %s", list.Customers, first.Customer.ID)
		}
	})

	t.Run("ヘルスチェックがSERVINGを返すこと", func(t *testing.T) {
		t.Parallel()

		conn := setupTestServer(t)
		resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{Service: rpc.CustomerServiceName},
			grpc.CallContentSubtype("proto"))
		if err != nil {
			t.Fatalf("Check()でエラーが発生: %v", err)
		}
		if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
			t.Errorf("status = %v, want %v", resp.GetStatus(), healthpb.HealthCheckResponse_SERVING)
		}
	})
}
