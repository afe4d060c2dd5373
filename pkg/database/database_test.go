package database

import (
	"testing"
)

// TestRebind はプレースホルダ変換を検証する。
func TestRebind(t *testing.T) {
	t.Parallel()

	t.Run("PostgreSQLでは連番プレースホルダに変換されること", func(t *testing.T) {
		t.Parallel()

		got := DialectPostgres.Rebind("SELECT id FROM customers WHERE id = ? AND name = ?")
		want := "SELECT id FROM customers WHERE id = $1 AND name = $2"
		if got != want {
			t.Errorf("Rebind() = %q, want %q", got, want)
		}
	})

	t.Run("SQLiteではクエリがそのまま返ること", func(t *testing.T) {
		t.Parallel()

		query := "SELECT id FROM customers WHERE id = ?"
		if got := DialectSQLite.Rebind(query); got != query {
			t.Errorf("Rebind() = %q, want %q", got, query)
		}
	})
}

// TestOpen はデータベース接続の生成を検証する。
func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("SQLiteのインメモリDBに接続できること", func(t *testing.T) {
		t.Parallel()

		db, err := Open("sqlite", ":memory:")
		if err != nil {
			t.Fatalf("Open()でエラーが発生: %v", err)
		}
		t.Cleanup(func() { db.Close() })

		if db.Dialect != DialectSQLite {
			t.Errorf("Dialect = %q, want %q", db.Dialect, DialectSQLite)
		}
		if err := db.PingContext(t.Context()); err != nil {
			t.Errorf("Ping()でエラーが発生: %v", err)
		}
	})

	t.Run("未対応のドライバはエラーになること", func(t *testing.T) {
		t.Parallel()

		if _, err := Open("mysql", "root@/crm"); err == nil {
			t.Error("未対応ドライバでエラーが返されるべき")
		}
	})
}
