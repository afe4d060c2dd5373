// 注文レジストリのエントリポイント。
// 注文レコードの作成と顧客ごとの一覧をgRPCで提供する。
// 顧客の存在確認は行わない。確認はGatewayの責務。
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/nao1215/crm/internal/order"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server, err := order.NewServer(ctx, order.LoadConfig())
	if err != nil {
		log.Fatalf("注文レジストリの初期化に失敗: %v", err)
	}
	defer func() {
		if err := server.Close(); err != nil {
			log.Printf("データベース接続のクローズに失敗: %v", err)
		}
	}()

	if err := server.Run(ctx); err != nil {
		log.Printf("注文レジストリの実行に失敗: %v", err)
	}
}
