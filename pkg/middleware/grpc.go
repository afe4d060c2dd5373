package middleware

import (
	"context"
	"log"
	"runtime/debug"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// UnaryServerLogger はgRPC呼び出しのメソッド名、ステータスコード、処理時間を
// ログに出力するインターセプタを返す。tagはログのプレフィックスに使用する。
func UnaryServerLogger(tag string) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		log.Printf("[%s] %s code=%s latency=%s", tag, info.FullMethod, status.Code(err), time.Since(start))
		return resp, err
	}
}

// UnaryServerRecovery はハンドラ内のパニックを codes.Internal に変換するインターセプタを返す。
func UnaryServerRecovery() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[PANIC] %s: %v\n%s", info.FullMethod, r, debug.Stack())
				resp = nil
				err = status.Error(codes.Internal, "Internal error")
			}
		}()
		return handler(ctx, req)
	}
}
