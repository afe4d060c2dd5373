package gateway

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"google.golang.org/grpc"

	"github.com/nao1215/crm/internal/gateway/registry"
	"github.com/nao1215/crm/pkg/middleware"
	"github.com/nao1215/crm/pkg/rpc"
)

// shutdownTimeout はグレースフルシャットダウンの待ち時間。
const shutdownTimeout = 10 * time.Second

// Server はGatewayのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// port はサーバーのリッスンポート。
	port string
	// jwtSecret はトークン署名用のシークレット。
	jwtSecret string
	// clock はトークンの発行・検証に使用する現在時刻関数。
	clock func() time.Time
	// customers は顧客レジストリ。
	customers registry.CustomerRegistry
	// orders は注文レジストリ。
	orders registry.OrderRegistry
	// orchestrator は注文作成ワークフロー。
	orchestrator *Orchestrator
	// metrics はPrometheusメトリクス。
	metrics *Metrics
	// conns はレジストリへのgRPC接続。Close で閉じる。
	conns []*grpc.ClientConn
}

// Dependencies はGatewayが依存するコンポーネント。
// テストではレジストリをモックやインプロセスの実装に差し替える。
type Dependencies struct {
	// Customers は顧客レジストリ。
	Customers registry.CustomerRegistry
	// Orders は注文レジストリ。
	Orders registry.OrderRegistry
	// JWTSecret はトークン署名用のシークレット。
	JWTSecret string
	// FrontendURL はCORSで許可するオリジン。
	FrontendURL string
	// Clock は現在時刻関数。nilの場合は time.Now。
	Clock func() time.Time
	// Metrics はメトリクス。nilの場合は新規に生成する。
	Metrics *Metrics
}

// NewServer は設定からレジストリへの接続を生成し、Gatewayサーバーを組み立てる。
// 接続はリクエストごとに張り直さず、プロセス全体で再利用する。
func NewServer(cfg Config) (*Server, error) {
	metrics := NewMetrics()
	interceptor := grpc.WithChainUnaryInterceptor(metrics.UnaryClientInterceptor())

	customerConn, err := rpc.Dial(cfg.CustomerServiceAddr, interceptor)
	if err != nil {
		return nil, fmt.Errorf("顧客レジストリへの接続に失敗: %w", err)
	}
	orderConn, err := rpc.Dial(cfg.OrderServiceAddr, interceptor)
	if err != nil {
		_ = customerConn.Close()
		return nil, fmt.Errorf("注文レジストリへの接続に失敗: %w", err)
	}

	s := New(cfg.Port, Dependencies{
		Customers:   registry.NewCustomerClient(customerConn, cfg.RPCTimeout),
		Orders:      registry.NewOrderClient(orderConn, cfg.RPCTimeout),
		JWTSecret:   cfg.JWTSecret,
		FrontendURL: cfg.FrontendURL,
		Metrics:     metrics,
	})
	s.conns = []*grpc.ClientConn{customerConn, orderConn}
	return s, nil
}

// New は依存コンポーネントからGatewayサーバーを生成する。
func New(port string, deps Dependencies) *Server {
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if deps.Metrics == nil {
		deps.Metrics = NewMetrics()
	}

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORS([]string{deps.FrontendURL}))
	router.Use(deps.Metrics.HTTPMiddleware())

	s := &Server{
		router:       router,
		port:         port,
		jwtSecret:    deps.JWTSecret,
		clock:        deps.Clock,
		customers:    deps.Customers,
		orders:       deps.Orders,
		orchestrator: NewOrchestrator(deps.Customers, deps.Orders, WithMetrics(deps.Metrics)),
		metrics:      deps.Metrics,
	}
	s.setupRoutes()
	return s
}

// Handler はGatewayのHTTPハンドラーを返す。
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run はHTTPサーバーを起動し、ctxがキャンセルされるとグレースフルシャットダウンする。
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", s.port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[Gateway] Gatewayを起動します: :%s", s.port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("HTTPサーバーの実行に失敗: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Printf("[Gateway] Gatewayを停止します")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("HTTPサーバーの停止に失敗: %w", err)
		}
		return nil
	}
}

// Close はレジストリへの接続を閉じる。
func (s *Server) Close() error {
	var errs []error
	for _, conn := range s.conns {
		if err := conn.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// setupRoutes はAPIルーティングを設定する。
func (s *Server) setupRoutes() {
	// トークン発行（認証不要）
	s.router.POST("/register", s.handleRegister())
	s.router.POST("/login", s.handleLogin())

	// 認証必須のエンドポイント
	api := s.router.Group("")
	api.Use(middleware.JWTAuth(s.jwtSecret, s.clock))
	{
		customers := api.Group("/customers")
		{
			customers.GET("", s.handleListCustomers())
			customers.POST("", s.handleCreateCustomer())
			customers.GET("/:id", s.handleGetCustomer())
			customers.PUT("/:id", s.handleUpdateCustomer())
			customers.DELETE("/:id", s.handleDeleteCustomer())
		}

		orders := api.Group("/orders")
		{
			// 顧客確認を経由する注文作成
			orders.POST("", s.handleCreateOrder())
			orders.GET("/customer/:id", s.handleListOrdersByCustomer())
		}
	}

	// ヘルスチェック
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "gateway"})
	})
	s.router.GET("/metrics", gin.WrapH(s.metrics.Handler()))
}
