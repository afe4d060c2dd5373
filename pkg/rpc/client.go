package rpc

import (
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Dial はレジストリサービスへのgRPC接続を生成する。
// 接続はリクエストごとに張り直さず、プロセス全体で再利用する。
// すべての呼び出しはJSONコーデックでエンコードされる。
func Dial(addr string, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	// TODO: TLS認証情報を設定ファイルから読み込めるようにする
	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(CodecName)),
	}
	dialOpts = append(dialOpts, opts...)

	conn, err := grpc.NewClient(addr, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("gRPC接続の生成に失敗: addr=%s: %w", addr, err)
	}
	return conn, nil
}
