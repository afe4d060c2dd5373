// 顧客レジストリのエントリポイント。
// 顧客レコードの作成・取得・一覧・更新・削除をgRPCで提供する。
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/nao1215/crm/internal/customer"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server, err := customer.NewServer(ctx, customer.LoadConfig())
	if err != nil {
		log.Fatalf("顧客レジストリの初期化に失敗: %v", err)
	}
	defer func() {
		if err := server.Close(); err != nil {
			log.Printf("データベース接続のクローズに失敗: %v", err)
		}
	}()

	if err := server.Run(ctx); err != nil {
		log.Printf("顧客レジストリの実行に失敗: %v", err)
	}
}
