package customer

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/nao1215/crm/pkg/rpc"
)

// Service は crm.CustomerService のgRPC実装。
type Service struct {
	rpc.UnimplementedCustomerServiceServer
	// store は顧客レコードの保存先。
	store Store
	// now は作成日時に使用する現在時刻関数。
	now func() time.Time
}

var _ rpc.CustomerServiceServer = (*Service)(nil)

// NewService は Service を生成する。
func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// CreateCustomer は顧客を作成する。name と email は必須。
func (s *Service) CreateCustomer(ctx context.Context, req *rpc.CreateCustomerRequest) (*rpc.CustomerResponse, error) {
	name, email, err := validateContact(req.Name, req.Email)
	if err != nil {
		return nil, err
	}

	c := Customer{
		ID:        IDPrefix + uuid.NewString(),
		Name:      name,
		Email:     email,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.Insert(ctx, c); err != nil {
		return nil, toStatus(err)
	}

	log.Printf("[Customer] 顧客を作成しました: id=%s", c.ID)
	return &rpc.CustomerResponse{Customer: toRPC(c)}, nil
}

// GetCustomer はIDで顧客を取得する。存在しない場合は codes.NotFound を返す。
func (s *Service) GetCustomer(ctx context.Context, req *rpc.GetCustomerRequest) (*rpc.CustomerResponse, error) {
	if strings.TrimSpace(req.ID) == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}

	c, err := s.store.Get(ctx, req.ID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.CustomerResponse{Customer: toRPC(c)}, nil
}

// ListCustomers は全顧客を作成順に返す。
func (s *Service) ListCustomers(ctx context.Context, _ *rpc.Empty) (*rpc.CustomersListResponse, error) {
	customers, err := s.store.List(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	resp := &rpc.CustomersListResponse{Customers: make([]*rpc.Customer, 0, len(customers))}
	for _, c := range customers {
		resp.Customers = append(resp.Customers, toRPC(c))
	}
	return resp, nil
}

// UpdateCustomer は顧客の名前とメールアドレスを更新する。
func (s *Service) UpdateCustomer(ctx context.Context, req *rpc.UpdateCustomerRequest) (*rpc.CustomerResponse, error) {
	if strings.TrimSpace(req.ID) == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}
	name, email, err := validateContact(req.Name, req.Email)
	if err != nil {
		return nil, err
	}

	c, err := s.store.Update(ctx, req.ID, name, email)
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.CustomerResponse{Customer: toRPC(c)}, nil
}

// DeleteCustomer は顧客を削除する。
func (s *Service) DeleteCustomer(ctx context.Context, req *rpc.DeleteCustomerRequest) (*rpc.Empty, error) {
	if strings.TrimSpace(req.ID) == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}
	if err := s.store.Delete(ctx, req.ID); err != nil {
		return nil, toStatus(err)
	}

	log.Printf("[Customer] 顧客を削除しました: id=%s", req.ID)
	return &rpc.Empty{}, nil
}

// validateContact は顧客名とメールアドレスの必須チェックを行い、前後の空白を除いた値を返す。
func validateContact(name, email string) (string, string, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return "", "", status.Error(codes.InvalidArgument, "name is required")
	}
	if email == "" {
		return "", "", status.Error(codes.InvalidArgument, "email is required")
	}
	return name, email, nil
}

// toStatus はストアのエラーをgRPCステータスに変換する。
// 内部エラーの詳細はログにのみ出力する。
func toStatus(err error) error {
	if errors.Is(err, ErrNotFound) {
		return status.Error(codes.NotFound, "Customer not found")
	}
	log.Printf("[Customer] ストア操作に失敗: %v", err)
	return status.Error(codes.Internal, "Internal error")
}

func toRPC(c Customer) *rpc.Customer {
	return &rpc.Customer{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}
