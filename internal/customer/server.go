package customer

import (
	"context"
	"embed"
	"fmt"
	"log"
	"net"
	"os"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/nao1215/crm/pkg/database"
	"github.com/nao1215/crm/pkg/migration"
	"github.com/nao1215/crm/pkg/rpc"
)

//go:embed migrations/*.up.sql
var migrations embed.FS

// Config は顧客レジストリの起動設定。
type Config struct {
	// Port はgRPCのリッスンポート。
	Port string
	// DatabaseDriver は "sqlite" または "pgx"。
	DatabaseDriver string
	// DatabaseURL はデータベースの接続文字列。
	DatabaseURL string
}

// LoadConfig は環境変数から設定を読み込む。未設定の項目はデフォルト値を使用する。
func LoadConfig() Config {
	return Config{
		Port:           getenv("PORT", "50051"),
		DatabaseDriver: getenv("DATABASE_DRIVER", "sqlite"),
		DatabaseURL:    getenv("DATABASE_URL", "file:/data/customers.db?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"),
	}
}

// Server は顧客レジストリのgRPCサーバー。
type Server struct {
	// grpcServer はgRPCサーバー本体。
	grpcServer *grpc.Server
	// health はヘルスチェックサービス。
	health *health.Server
	// port はサーバーのリッスンポート。
	port string
	// db はデータベース接続。
	db *database.DB
}

// NewServer は新しい顧客レジストリサーバーを生成する。
// データベースへの接続とマイグレーションの適用を行う。
func NewServer(ctx context.Context, cfg Config) (*Server, error) {
	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	if err := migration.Run(ctx, db, migrations, "migrations"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("マイグレーションの適用に失敗: %w", err)
	}

	s := newServer(NewSQLStore(db))
	s.port = cfg.Port
	s.db = db
	return s, nil
}

// newServer はストアを受け取りgRPCサービスを登録したサーバーを生成する。
func newServer(store Store) *Server {
	grpcServer, healthSrv := rpc.NewServer("Customer")
	rpc.RegisterCustomerServiceServer(grpcServer, NewService(store))
	healthSrv.SetServingStatus(rpc.CustomerServiceName, healthpb.HealthCheckResponse_SERVING)

	return &Server{grpcServer: grpcServer, health: healthSrv}
}

// Run はgRPCサーバーを起動し、ctxがキャンセルされるまでブロックする。
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%s", s.port))
	if err != nil {
		return fmt.Errorf("リッスンに失敗: %w", err)
	}
	log.Printf("[Customer] 顧客レジストリを起動します: :%s", s.port)
	return s.serve(ctx, lis)
}

func (s *Server) serve(ctx context.Context, lis net.Listener) error {
	return rpc.Serve(ctx, s.grpcServer, lis)
}

// Close はヘルスステータスを停止中にしてデータベース接続を閉じる。
func (s *Server) Close() error {
	s.health.Shutdown()
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
