package gateway

import (
	"context"
	"errors"
	"fmt"
	"log"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/nao1215/crm/internal/gateway/registry"
)

// WorkflowState は注文作成ワークフローの状態。
//
//	CustomerLookup ─┬─ CustomerConfirmed ─┬─ Created
//	                │                     └─ OrderFailed
//	                ├─ CustomerNotFound
//	                └─ CustomerLookupFailed
//
// CustomerLookup と CustomerConfirmed 以外はすべて終端状態で、再試行の遷移は無い。
type WorkflowState int

const (
	// StateCustomerLookup は顧客レジストリへの問い合わせ中。
	StateCustomerLookup WorkflowState = iota
	// StateCustomerConfirmed は顧客の存在を確認済み。
	StateCustomerConfirmed
	// StateCustomerNotFound は顧客が存在しなかった。
	StateCustomerNotFound
	// StateCustomerLookupFailed は顧客レジストリの呼び出しが失敗した。
	StateCustomerLookupFailed
	// StateCreated は注文が作成された。
	StateCreated
	// StateOrderFailed は注文レジストリの呼び出しが失敗した。
	StateOrderFailed
)

// String は状態名を返す。
func (s WorkflowState) String() string {
	switch s {
	case StateCustomerLookup:
		return "customer_lookup"
	case StateCustomerConfirmed:
		return "customer_confirmed"
	case StateCustomerNotFound:
		return "customer_not_found"
	case StateCustomerLookupFailed:
		return "customer_lookup_failed"
	case StateCreated:
		return "created"
	case StateOrderFailed:
		return "order_failed"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// ErrEmptyCustomer は顧客レジストリが成功ステータスで空のペイロードを返したことを表す。
// RPCレベルのNotFoundと同じく「顧客が存在しない」として扱う。
var ErrEmptyCustomer = errors.New("顧客レジストリが空の顧客を返しました")

// WorkflowError は注文作成ワークフローが終端状態で失敗したことを表す。
type WorkflowError struct {
	// State は失敗した終端状態。
	State WorkflowState
	// Err は失敗の原因。
	Err error
}

// Error はエラーメッセージを返す。
func (e *WorkflowError) Error() string {
	return fmt.Sprintf("注文作成ワークフローが失敗 (state=%s): %v", e.State, e.Err)
}

// Unwrap は原因のエラーを返す。
func (e *WorkflowError) Unwrap() error {
	return e.Err
}

// Orchestrator は注文作成ワークフローを実行する。
// 顧客レジストリで顧客の存在を確認できた場合に限り、注文レジストリを呼び出す。
// 2つの呼び出しは常に逐次実行し、失敗時の再試行は行わない。
type Orchestrator struct {
	// customers は顧客レジストリ。
	customers registry.CustomerRegistry
	// orders は注文レジストリ。
	orders registry.OrderRegistry
	// tracer はワークフローのスパンを記録する。
	tracer trace.Tracer
	// metrics は終了状態の記録先。nilの場合は記録しない。
	metrics *Metrics
}

// OrchestratorOption は Orchestrator の設定を変更する。
type OrchestratorOption func(*Orchestrator)

// WithTracer はスパンの記録に使用するトレーサーを指定する。
func WithTracer(t trace.Tracer) OrchestratorOption {
	return func(o *Orchestrator) {
		o.tracer = t
	}
}

// WithMetrics は終了状態を記録するメトリクスを指定する。
func WithMetrics(m *Metrics) OrchestratorOption {
	return func(o *Orchestrator) {
		o.metrics = m
	}
}

// NewOrchestrator は新しい Orchestrator を生成する。
// トレーサーを指定しない場合はグローバルのトレーサープロバイダーを使用する。
func NewOrchestrator(customers registry.CustomerRegistry, orders registry.OrderRegistry, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		customers: customers,
		orders:    orders,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.tracer == nil {
		o.tracer = otel.Tracer("github.com/nao1215/crm/internal/gateway")
	}
	return o
}

// CreateOrder は注文作成ワークフローを実行する。
// 失敗時は終端状態を持つ *WorkflowError を返す。
func (o *Orchestrator) CreateOrder(ctx context.Context, intent registry.OrderIntent) (*registry.Order, error) {
	ctx, span := o.tracer.Start(ctx, "orchestrator.create_order",
		trace.WithAttributes(attribute.String("crm.customer_id", intent.CustomerID)))
	defer span.End()

	order, state, err := o.run(ctx, intent)
	span.SetAttributes(attribute.String("crm.workflow_state", state.String()))
	o.metrics.observeWorkflow(state)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, state.String())
		log.Printf("[Orchestrator] 注文作成に失敗: state=%s, customer_id=%s, error=%v", state, intent.CustomerID, err)
		return nil, &WorkflowError{State: state, Err: err}
	}

	log.Printf("[Orchestrator] 注文を作成しました: order_id=%s, customer_id=%s", order.ID, order.CustomerID)
	return order, nil
}

// run はワークフローの各ステップを順に実行し、到達した終端状態を返す。
func (o *Orchestrator) run(ctx context.Context, intent registry.OrderIntent) (*registry.Order, WorkflowState, error) {
	customer, err := o.lookupCustomer(ctx, intent.CustomerID)
	switch {
	case registry.IsNotFound(err):
		return nil, StateCustomerNotFound, err
	case err != nil:
		return nil, StateCustomerLookupFailed, err
	case customer == nil:
		return nil, StateCustomerNotFound, ErrEmptyCustomer
	}

	// 顧客の確認と注文作成の間に顧客が削除される可能性は残る
	order, err := o.createOrder(ctx, intent)
	if err != nil {
		return nil, StateOrderFailed, err
	}
	return order, StateCreated, nil
}

func (o *Orchestrator) lookupCustomer(ctx context.Context, customerID string) (*registry.Customer, error) {
	ctx, span := o.tracer.Start(ctx, "orchestrator."+StateCustomerLookup.String())
	defer span.End()

	customer, err := o.customers.Get(ctx, customerID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "customer lookup failed")
	}
	return customer, err
}

func (o *Orchestrator) createOrder(ctx context.Context, intent registry.OrderIntent) (*registry.Order, error) {
	ctx, span := o.tracer.Start(ctx, "orchestrator.order_creation",
		trace.WithAttributes(attribute.String("crm.product_name", intent.ProductName)))
	defer span.End()

	order, err := o.orders.Create(ctx, intent)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "order creation failed")
	}
	return order, err
}
