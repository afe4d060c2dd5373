package registry

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Kind はレジストリ呼び出しの失敗の種類。
type Kind int

const (
	// KindInternal はその他すべての失敗。
	KindInternal Kind = iota
	// KindNotFound は対象が存在しないことを表す。
	KindNotFound
	// KindInvalidArgument はレジストリ側の入力検証エラー。
	KindInvalidArgument
	// KindUnavailable はレジストリに到達できないことを表す。
	KindUnavailable
	// KindTimeout は呼び出しがタイムアウトしたことを表す。
	KindTimeout
)

// String はKindの表示名を返す。
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidArgument:
		return "invalid_argument"
	case KindUnavailable:
		return "unavailable"
	case KindTimeout:
		return "timeout"
	default:
		return "internal"
	}
}

// BackendError はレジストリ呼び出しの失敗結果。
// Message はレジストリが返したメッセージで、外部レスポンスにそのまま転送してよい。
type BackendError struct {
	// Kind は失敗の種類。
	Kind Kind
	// Code はレジストリが返したgRPCステータスコード。
	Code codes.Code
	// Message はレジストリが返したメッセージ。
	Message string
	// Err は元のエラー。
	Err error
}

// Error はエラーメッセージを返す。
func (e *BackendError) Error() string {
	return fmt.Sprintf("レジストリ呼び出しに失敗 (%s, code=%s): %s", e.Kind, e.Code, e.Message)
}

// Unwrap は元のエラーを返す。
func (e *BackendError) Unwrap() error {
	return e.Err
}

// AsBackendError はエラーチェーンから *BackendError を取り出す。
func AsBackendError(err error) (*BackendError, bool) {
	var be *BackendError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}

// IsNotFound はエラーが KindNotFound の BackendError かどうかを返す。
func IsNotFound(err error) bool {
	be, ok := AsBackendError(err)
	return ok && be.Kind == KindNotFound
}

// kindByCode はgRPCステータスコードから失敗の種類への対応表。
// 表に無いコードは KindInternal として扱う。
var kindByCode = map[codes.Code]Kind{
	codes.NotFound:         KindNotFound,
	codes.InvalidArgument:  KindInvalidArgument,
	codes.Unavailable:      KindUnavailable,
	codes.DeadlineExceeded: KindTimeout,
}

// FromRPCError はgRPC呼び出しのエラーを *BackendError に変換する。
// ステータスを持たないエラーは codes.Unknown の KindInternal とする。
func FromRPCError(err error) *BackendError {
	if err == nil {
		return nil
	}
	if be, ok := AsBackendError(err); ok {
		return be
	}

	st, ok := status.FromError(err)
	if !ok {
		return &BackendError{Kind: KindInternal, Code: codes.Unknown, Message: err.Error(), Err: err}
	}

	kind, found := kindByCode[st.Code()]
	if !found {
		kind = KindInternal
	}
	return &BackendError{Kind: kind, Code: st.Code(), Message: st.Message(), Err: err}
}

// codeNames はgRPCステータスコードの大文字スネークケース名。
// 外部レスポンスのエラー詳細にステータス名を付記する際に使用する。
var codeNames = map[codes.Code]string{
	codes.OK:                 "OK",
	codes.Canceled:           "CANCELLED",
	codes.Unknown:            "UNKNOWN",
	codes.InvalidArgument:    "INVALID_ARGUMENT",
	codes.DeadlineExceeded:   "DEADLINE_EXCEEDED",
	codes.NotFound:           "NOT_FOUND",
	codes.AlreadyExists:      "ALREADY_EXISTS",
	codes.PermissionDenied:   "PERMISSION_DENIED",
	codes.ResourceExhausted:  "RESOURCE_EXHAUSTED",
	codes.FailedPrecondition: "FAILED_PRECONDITION",
	codes.Aborted:            "ABORTED",
	codes.OutOfRange:         "OUT_OF_RANGE",
	codes.Unimplemented:      "UNIMPLEMENTED",
	codes.Internal:           "INTERNAL",
	codes.Unavailable:        "UNAVAILABLE",
	codes.DataLoss:           "DATA_LOSS",
	codes.Unauthenticated:    "UNAUTHENTICATED",
}

// CodeName はgRPCステータスコードの大文字スネークケース名を返す。
func CodeName(c codes.Code) string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
