package gateway

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// Metrics はGatewayのPrometheusメトリクス。
// インスタンスごとに専用のレジストリを持つため、テストで複数生成しても衝突しない。
type Metrics struct {
	registry *prometheus.Registry

	// HTTPRequests はHTTPリクエスト数（method, route, status別）。
	HTTPRequests *prometheus.CounterVec
	// HTTPDuration はHTTPリクエストの処理時間。
	HTTPDuration *prometheus.HistogramVec
	// RPCDuration はレジストリ呼び出しの所要時間（method, code別）。
	RPCDuration *prometheus.HistogramVec
	// WorkflowOutcomes は注文作成ワークフローの終了状態ごとの件数。
	WorkflowOutcomes *prometheus.CounterVec
}

// NewMetrics は新しいメトリクスとレジストリを生成する。
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "crm_gateway_http_requests_total",
			Help: "Total number of HTTP requests handled by the gateway",
		}, []string{"method", "route", "status"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "crm_gateway_http_request_duration_seconds",
			Help:    "Duration of HTTP requests handled by the gateway",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		RPCDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "crm_gateway_rpc_duration_seconds",
			Help:    "Duration of registry RPC calls",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"method", "code"}),
		WorkflowOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "crm_gateway_order_workflow_total",
			Help: "Order creation workflow outcomes by terminal state",
		}, []string{"state"}),
	}
}

// Handler はメトリクスを公開するHTTPハンドラーを返す。
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// HTTPMiddleware はリクエスト数と処理時間を記録するGinミドルウェアを返す。
func (m *Metrics) HTTPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// UnaryClientInterceptor はレジストリ呼び出しの所要時間を記録するインターセプタを返す。
func (m *Metrics) UnaryClientInterceptor() grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		start := time.Now()
		err := invoker(ctx, method, req, reply, cc, opts...)
		m.RPCDuration.WithLabelValues(method, status.Code(err).String()).Observe(time.Since(start).Seconds())
		return err
	}
}

// observeWorkflow はワークフローの終了状態を記録する。nilレシーバーでは何もしない。
func (m *Metrics) observeWorkflow(state WorkflowState) {
	if m == nil {
		return
	}
	m.WorkflowOutcomes.WithLabelValues(state.String()).Inc()
}
