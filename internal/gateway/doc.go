// Package gateway はCRMのREST Gatewayを提供する。
//
// 外部クライアントからのRESTリクエストをBearerトークンで認証し、
// 顧客レジストリと注文レジストリへのgRPC呼び出しに変換する。
// 注文作成は Orchestrator が顧客の存在を確認してから注文レジストリを呼び出す。
// レジストリの失敗はすべて {"detail": "..."} 形式のレスポンスに変換され、
// トランスポート層の生のエラーが外部に漏れることはない。
//
// リクエスト間で共有する可変状態は持たず、署名用シークレットは起動時に一度だけ読み込む。
package gateway
