// Package database はレジストリサービスが使用するリレーショナルストアへの接続を提供する。
//
// 開発環境ではSQLite（modernc.org/sqlite）、本番環境ではPostgreSQL（pgx）を
// 同じdatabase/sqlインターフェースで扱う。SQLは "?" プレースホルダで記述し、
// Dialect.Rebind で接続先に合わせて変換する。
package database

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Dialect はSQL方言を表す。
type Dialect string

const (
	// DialectSQLite はSQLite方言。
	DialectSQLite Dialect = "sqlite"
	// DialectPostgres はPostgreSQL方言。
	DialectPostgres Dialect = "postgres"
)

// driverDialects はdatabase/sqlのドライバ名と方言の対応表。
var driverDialects = map[string]Dialect{
	"sqlite": DialectSQLite,
	"pgx":    DialectPostgres,
}

// DB はSQL方言を保持するデータベース接続。
type DB struct {
	*sql.DB
	// Dialect は接続先のSQL方言。
	Dialect Dialect
}

// Open は指定ドライバでデータベースに接続する。
// driverには "sqlite" または "pgx" を指定する。
func Open(driver, dsn string) (*DB, error) {
	dialect, ok := driverDialects[driver]
	if !ok {
		return nil, fmt.Errorf("未対応のデータベースドライバ: %s", driver)
	}

	sqlDB, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("データベース接続に失敗: %w", err)
	}

	// SQLiteのインメモリDBは接続ごとに別のDBになるため、接続を1本に制限する
	if dialect == DialectSQLite && strings.Contains(dsn, ":memory:") {
		sqlDB.SetMaxOpenConns(1)
	}

	return &DB{DB: sqlDB, Dialect: dialect}, nil
}

// Rebind は "?" プレースホルダを方言に合わせたプレースホルダに変換する。
// PostgreSQLでは $1, $2, ... に置き換え、SQLiteではそのまま返す。
func (d Dialect) Rebind(query string) string {
	if d != DialectPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
