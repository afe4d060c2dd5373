package gateway

import (
	"errors"
	"net/http"
	"testing"

	"go.uber.org/mock/gomock"
	"google.golang.org/grpc/codes"

	"github.com/nao1215/crm/internal/gateway/registry"
	"github.com/nao1215/crm/internal/gateway/registry/mocks"
)

func backendErr(kind registry.Kind, code codes.Code, msg string) *registry.BackendError {
	return &registry.BackendError{Kind: kind, Code: code, Message: msg}
}

func TestTranslateError(t *testing.T) {
	t.Parallel()

	unavailable := backendErr(registry.KindUnavailable, codes.Unavailable, "connection refused")
	notFound := backendErr(registry.KindNotFound, codes.NotFound, "Customer not found")
	invalid := backendErr(registry.KindInvalidArgument, codes.InvalidArgument, "name is required")
	internal := backendErr(registry.KindInternal, codes.Internal, "Internal error")

	tests := []struct {
		name       string
		op         operation
		err        error
		wantCode   int
		wantDetail string
	}{
		{"一覧取得の障害はgRPC errorを前置する", opListCustomers, unavailable, http.StatusInternalServerError, "gRPC error: connection refused"},
		{"顧客取得のNotFoundは404", opGetCustomer, notFound, http.StatusNotFound, "customer not found"},
		{"顧客更新のNotFoundは404", opUpdateCustomer, notFound, http.StatusNotFound, "customer not found"},
		{"顧客削除のNotFoundは500でメッセージを転送する", opDeleteCustomer, notFound, http.StatusInternalServerError, "Customer not found"},
		{"顧客取得の障害はメッセージを転送する", opGetCustomer, internal, http.StatusInternalServerError, "Internal error"},
		{"顧客作成の入力エラーは400", opCreateCustomer, invalid, http.StatusBadRequest, "name is required"},
		{"顧客削除の入力エラーは400", opDeleteCustomer, backendErr(registry.KindInvalidArgument, codes.InvalidArgument, "id is required"), http.StatusBadRequest, "id is required"},
		{"注文一覧の障害はステータス名を付記する", opListOrders, unavailable, http.StatusInternalServerError, "gRPC error: connection refused (code: UNAVAILABLE)"},
		{"注文一覧のタイムアウト", opListOrders, backendErr(registry.KindTimeout, codes.DeadlineExceeded, "context deadline exceeded"), http.StatusInternalServerError, "gRPC error: context deadline exceeded (code: DEADLINE_EXCEEDED)"},
		{"レジストリ以外のエラーは汎用メッセージ", opGetCustomer, errors.New("boom"), http.StatusInternalServerError, "Internal Server Error"},
		{"ワークフローの顧客不在は404", opCreateOrder, &WorkflowError{State: StateCustomerNotFound, Err: notFound}, http.StatusNotFound, "customer not found"},
		{"ワークフローの空ペイロードは404", opCreateOrder, &WorkflowError{State: StateCustomerNotFound, Err: ErrEmptyCustomer}, http.StatusNotFound, "customer not found"},
		{"ワークフローの顧客確認失敗", opCreateOrder, &WorkflowError{State: StateCustomerLookupFailed, Err: unavailable}, http.StatusInternalServerError, "customer service error: connection refused"},
		{"ワークフローの顧客確認で入力エラーも500", opCreateOrder, &WorkflowError{State: StateCustomerLookupFailed, Err: invalid}, http.StatusInternalServerError, "customer service error: name is required"},
		{"ワークフローの注文失敗はメッセージを転送する", opCreateOrder, &WorkflowError{State: StateOrderFailed, Err: internal}, http.StatusInternalServerError, "Internal error"},
		{"ワークフローの注文入力エラーも500", opCreateOrder, &WorkflowError{State: StateOrderFailed, Err: backendErr(registry.KindInvalidArgument, codes.InvalidArgument, "price must be greater than or equal to 0")}, http.StatusInternalServerError, "price must be greater than or equal to 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			code, detail := translateError(tt.op, tt.err)
			if code != tt.wantCode {
				t.Errorf("code = %d, want %d", code, tt.wantCode)
			}
			if detail != tt.wantDetail {
				t.Errorf("detail = %q, want %q", detail, tt.wantDetail)
			}
		})
	}
}

// TestErrorResponses はレジストリの失敗がHTTPレスポンスに変換されることを検証する。
func TestErrorResponses(t *testing.T) {
	t.Parallel()

	unavailable := backendErr(registry.KindUnavailable, codes.Unavailable, "connection refused")

	tests := []struct {
		name       string
		setup      func(c *mocks.MockCustomerRegistry, o *mocks.MockOrderRegistry)
		method     string
		path       string
		body       any
		wantCode   int
		wantDetail string
	}{
		{
			name: "顧客一覧の障害",
			setup: func(c *mocks.MockCustomerRegistry, _ *mocks.MockOrderRegistry) {
				c.EXPECT().List(gomock.Any()).Return(nil, unavailable)
			},
			method: http.MethodGet, path: "/customers",
			wantCode: http.StatusInternalServerError, wantDetail: "gRPC error: connection refused",
		},
		{
			name: "注文一覧の障害",
			setup: func(_ *mocks.MockCustomerRegistry, o *mocks.MockOrderRegistry) {
				o.EXPECT().ListByCustomer(gomock.Any(), "cust_1").Return(nil, unavailable)
			},
			method: http.MethodGet, path: "/orders/customer/cust_1",
			wantCode: http.StatusInternalServerError, wantDetail: "gRPC error: connection refused (code: UNAVAILABLE)",
		},
		{
			name: "注文作成時の顧客レジストリ障害",
			setup: func(c *mocks.MockCustomerRegistry, o *mocks.MockOrderRegistry) {
				c.EXPECT().Get(gomock.Any(), "cust_1").Return(nil, unavailable)
				o.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			method: http.MethodPost, path: "/orders",
			body:     map[string]any{"customer_id": "cust_1", "product_name": "Laptop", "price": 999.99},
			wantCode: http.StatusInternalServerError, wantDetail: "customer service error: connection refused",
		},
		{
			name: "顧客取得の空ペイロードは404",
			setup: func(c *mocks.MockCustomerRegistry, _ *mocks.MockOrderRegistry) {
				c.EXPECT().Get(gomock.Any(), "cust_1").Return(nil, nil)
			},
			method: http.MethodGet, path: "/customers/cust_1",
			wantCode: http.StatusNotFound, wantDetail: "customer not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			customers := mocks.NewMockCustomerRegistry(ctrl)
			orders := mocks.NewMockOrderRegistry(ctrl)
			tt.setup(customers, orders)

			s := New("0", Dependencies{
				Customers: customers,
				Orders:    orders,
				JWTSecret: testJWTSecret,
				Clock:     fixedClock,
			})

			w := doRequest(t, s, tt.method, tt.path, issueTestToken(t), tt.body)
			if w.Code != tt.wantCode {
				t.Fatalf("ステータスコード = %d, want %d", w.Code, tt.wantCode)
			}
			if d := parseJSON[map[string]string](t, w)["detail"]; d != tt.wantDetail {
				t.Errorf("detail = %q, want %q", d, tt.wantDetail)
			}
		})
	}
}
