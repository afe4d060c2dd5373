package gateway

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// ErrMissingJWTSecret は JWT_SECRET が設定されていないことを表す。
var ErrMissingJWTSecret = errors.New("JWT_SECRET が設定されていません")

// Config はGatewayの起動設定。起動時に一度だけ読み込み、以後変更しない。
type Config struct {
	// Port はHTTPのリッスンポート。
	Port string
	// JWTSecret はトークン署名用のシークレット。必須。
	JWTSecret string
	// CustomerServiceAddr は顧客レジストリのアドレス。
	CustomerServiceAddr string
	// OrderServiceAddr は注文レジストリのアドレス。
	OrderServiceAddr string
	// RPCTimeout はレジストリ呼び出し1回あたりのタイムアウト。
	RPCTimeout time.Duration
	// FrontendURL はCORSで許可するフロントエンドのオリジン。
	FrontendURL string
}

// LoadConfig は環境変数から設定を読み込む。
// JWT_SECRET が未設定の場合は ErrMissingJWTSecret を返す。
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:                getEnvOr("PORT", "8000"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		CustomerServiceAddr: getEnvOr("CUSTOMER_SERVICE_ADDR", "localhost:50051"),
		OrderServiceAddr:    getEnvOr("ORDER_SERVICE_ADDR", "localhost:50052"),
		RPCTimeout:          5 * time.Second,
		FrontendURL:         getEnvOr("FRONTEND_URL", "http://localhost:3000"),
	}
	if cfg.JWTSecret == "" {
		return Config{}, ErrMissingJWTSecret
	}

	if v := os.Getenv("RPC_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("RPC_TIMEOUT の解析に失敗: %w", err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("RPC_TIMEOUT は正の値である必要があります: %s", v)
		}
		cfg.RPCTimeout = d
	}
	return cfg, nil
}

// getEnvOr は環境変数を取得し、設定されていない場合はデフォルト値を返す。
func getEnvOr(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
