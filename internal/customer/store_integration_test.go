//go:build integration

package customer

import (
	"context"
	"testing"

	"github.com/nao1215/crm/pkg/migration"
	"github.com/nao1215/crm/pkg/testutil"
)

// TestSQLStore_Postgres はPostgreSQL上でSQLStoreの振る舞いを検証する。
func TestSQLStore_Postgres(t *testing.T) {
	db := testutil.StartPostgres(t)
	if err := migration.Run(context.Background(), db, migrations, "migrations"); err != nil {
		t.Fatalf("マイグレーションに失敗: %v", err)
	}

	ctx := context.Background()
	newStore := func(t *testing.T) Store {
		t.Helper()
		if _, err := db.ExecContext(ctx, "TRUNCATE TABLE customers"); err != nil {
			t.Fatalf("テーブルの初期化に失敗: %v", err)
		}
		return NewSQLStore(db)
	}

	t.Run("作成と取得", func(t *testing.T) {
		store := newStore(t)
		c := Customer{ID: "cust_pg", Name: "Ivan", Email: "ivan@x.ru"}
		if err := store.Insert(ctx, c); err != nil {
			t.Fatalf("Insert()でエラーが発生: %v", err)
		}
		got, err := store.Get(ctx, "cust_pg")
		if err != nil {
			t.Fatalf("Get()でエラーが発生: %v", err)
		}
		if got.Email != "ivan@x.ru" {
			t.Errorf("Email = %q, want %q", got.Email, "ivan@x.ru")
		}
	})

	t.Run("更新と削除", func(t *testing.T) {
		store := newStore(t)
		if err := store.Insert(ctx, Customer{ID: "cust_pg", Name: "a", Email: "a@example.com"}); err != nil {
			t.Fatalf("Insert()でエラーが発生: %v", err)
		}
		if _, err := store.Update(ctx, "cust_pg", "b", "b@example.com"); err != nil {
			t.Fatalf("Update()でエラーが発生: %v", err)
		}
		if err := store.Delete(ctx, "cust_pg"); err != nil {
			t.Fatalf("Delete()でエラーが発生: %v", err)
		}
		list, err := store.List(ctx)
		if err != nil {
			t.Fatalf("List()でエラーが発生: %v", err)
		}
		if len(list) != 0 {
			t.Errorf("件数 = %d, want 0", len(list))
		}
	})
}
