package gateway

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nao1215/crm/internal/gateway/registry"
)

// operation はRouterが公開する外部操作。
type operation string

const (
	opListCustomers  operation = "list-customers"
	opCreateCustomer operation = "create-customer"
	opGetCustomer    operation = "get-customer"
	opUpdateCustomer operation = "update-customer"
	opDeleteCustomer operation = "delete-customer"
	opCreateOrder    operation = "create-order"
	opListOrders     operation = "list-orders-by-customer"
)

// detailCustomerNotFound は顧客が存在しない場合の外部向けメッセージ。
const detailCustomerNotFound = "customer not found"

// errorPolicy は操作ごとのエラー変換方針。
type errorPolicy struct {
	// notFound404 はNotFoundを404として返すかどうか。
	notFound404 bool
	// detail は500応答の detail を組み立てる。
	detail func(be *registry.BackendError) string
}

func backendMessage(be *registry.BackendError) string {
	return be.Message
}

// errorPolicies は操作ごとのエラー変換表。
var errorPolicies = map[operation]errorPolicy{
	opListCustomers: {
		detail: func(be *registry.BackendError) string {
			return "gRPC error: " + be.Message
		},
	},
	opCreateCustomer: {detail: backendMessage},
	opGetCustomer:    {notFound404: true, detail: backendMessage},
	opUpdateCustomer: {notFound404: true, detail: backendMessage},
	opDeleteCustomer: {detail: backendMessage},
	opListOrders: {
		detail: func(be *registry.BackendError) string {
			return fmt.Sprintf("gRPC error: %s (code: %s)", be.Message, registry.CodeName(be.Code))
		},
	},
}

// translateError はレジストリ呼び出しまたはワークフローのエラーを
// 外部向けのステータスコードと detail に変換する。
func translateError(op operation, err error) (int, string) {
	var wfErr *WorkflowError
	if errors.As(err, &wfErr) {
		return translateWorkflowError(wfErr)
	}

	be, ok := registry.AsBackendError(err)
	if !ok {
		return http.StatusInternalServerError, "Internal Server Error"
	}

	policy, ok := errorPolicies[op]
	if !ok {
		policy = errorPolicy{detail: backendMessage}
	}

	switch {
	case be.Kind == registry.KindInvalidArgument:
		return http.StatusBadRequest, be.Message
	case be.Kind == registry.KindNotFound && policy.notFound404:
		return http.StatusNotFound, detailCustomerNotFound
	default:
		return http.StatusInternalServerError, policy.detail(be)
	}
}

// translateWorkflowError は注文作成ワークフローの終端状態を外部レスポンスに変換する。
// 顧客レジストリの失敗も注文レジストリの失敗も、種類によらず500として返す。
func translateWorkflowError(e *WorkflowError) (int, string) {
	message := "Internal Server Error"
	if be, ok := registry.AsBackendError(e.Err); ok {
		message = be.Message
	}

	switch e.State {
	case StateCustomerNotFound:
		return http.StatusNotFound, detailCustomerNotFound
	case StateCustomerLookupFailed:
		return http.StatusInternalServerError, "customer service error: " + message
	default:
		return http.StatusInternalServerError, message
	}
}

// respondError はエラーをログに出力し、{"detail": ...} 形式で応答する。
func respondError(c *gin.Context, op operation, err error) {
	code, detail := translateError(op, err)
	log.Printf("[Gateway] %s が失敗: status=%d, error=%v", op, code, err)
	c.JSON(code, gin.H{"detail": detail})
}
