package rpc

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/nao1215/crm/pkg/middleware"
)

// NewServer はレジストリ用のgRPCサーバーを生成する。
// パニックリカバリとアクセスログのインターセプタを適用し、
// grpc.health.v1 のヘルスチェックサービスを登録する。tagはログのプレフィックス。
func NewServer(tag string, opts ...grpc.ServerOption) (*grpc.Server, *health.Server) {
	serverOpts := []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(
			middleware.UnaryServerRecovery(),
			middleware.UnaryServerLogger(tag),
		),
	}
	serverOpts = append(serverOpts, opts...)

	srv := grpc.NewServer(serverOpts...)
	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(srv, healthSrv)
	return srv, healthSrv
}

// Serve はリスナー上でgRPCサーバーを起動し、ctxがキャンセルされるまでブロックする。
// キャンセル後は処理中の呼び出しの完了を待ってから停止する。
func Serve(ctx context.Context, srv *grpc.Server, lis net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(lis)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("gRPCサーバーの実行に失敗: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Printf("[RPC] gRPCサーバーを停止します: %s", lis.Addr())
		srv.GracefulStop()
		return nil
	}
}
