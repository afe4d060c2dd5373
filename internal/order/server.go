package order

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

// Config は注文レジストリの起動設定。
type Config struct {
	// Port はgRPCのリッスンポート。
	Port string
	// DatabaseDriver は "sqlite" または "pgx"。
	DatabaseDriver string
	// DatabaseURL はデータベースの接続文字列。
	DatabaseURL string
}

// LoadConfig は環境変数から設定を読み込む。
func LoadConfig() Config {
	return Config{
		Port:           getenv("PORT", "50052"),
		DatabaseDriver: getenv("DATABASE_DRIVER", "sqlite"),
		DatabaseURL:    getenv("DATABASE_URL", "file:/data/orders.db?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"),
	}
}

// Server は注文レジストリのgRPCサーバー。
type Server struct {
	grpcServer *grpc.Server
	health     *health.Server
	port       string
	db         *database.DB
}

// NewServer は新しい注文レジストリサーバーを生成する。
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

func newServer(store Store) *Server {
	grpcServer, healthSrv := rpc.NewServer("Order")
	rpc.RegisterOrderServiceServer(grpcServer, NewService(store))
	healthSrv.SetServingStatus(rpc.OrderServiceName, healthpb.HealthCheckResponse_SERVING)

	return &Server{grpcServer: grpcServer, health: healthSrv}
}

// Run はgRPCサーバーを起動し、ctxがキャンセルされるまでブロックする。
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%s", s.port))
	if err != nil {
		return fmt.Errorf("リッスンに失敗: %w", err)
	}
	log.Printf("[Order] 注文レジストリを起動します: :%s", s.port)
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
