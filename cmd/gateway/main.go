// CRM Gatewayのエントリポイント。
// 外部に公開される唯一のHTTPサービスで、トークン発行と認証を担当する。
// 顧客・注文の操作は顧客レジストリと注文レジストリにgRPCで委譲する。
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/nao1215/crm/internal/gateway"
)

func main() {
	cfg, err := gateway.LoadConfig()
	if err != nil {
		log.Fatalf("Gatewayの設定の読み込みに失敗: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server, err := gateway.NewServer(cfg)
	if err != nil {
		log.Fatalf("Gatewayサーバーの初期化に失敗: %v", err)
	}
	defer func() {
		if err := server.Close(); err != nil {
			log.Printf("レジストリ接続のクローズに失敗: %v", err)
		}
	}()

	if err := server.Run(ctx); err != nil {
		log.Printf("Gatewayサービスの実行に失敗: %v", err)
	}
}
