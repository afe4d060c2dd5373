//go:build integration

// Package testutil は統合テスト用のコンテナ起動ヘルパーを提供する。
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/nao1215/crm/pkg/database"
)

// StartPostgres はPostgreSQLコンテナを起動し、pgxドライバで接続したDBを返す。
// コンテナと接続はテスト終了時に破棄される。
func StartPostgres(t *testing.T) *database.DB {
	t.Helper()

	ctx := context.Background()
	container, err := postgres.Run(ctx,
		"postgres:17-alpine",
		postgres.WithDatabase("crm_test"),
		postgres.WithUsername("crm"),
		postgres.WithPassword("crm_test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("PostgreSQLコンテナの起動に失敗: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("接続文字列の取得に失敗: %v", err)
	}

	db, err := database.Open("pgx", dsn)
	if err != nil {
		t.Fatalf("PostgreSQLへの接続に失敗: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}
