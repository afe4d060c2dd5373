// Package rpc はゲートウェイと各レジストリサービス間のgRPC契約を提供する。
//
// protoc生成コードの代わりに、サービス記述子とメッセージ構造体を手書きで定義し、
// JSONコーデック（content-subtype "json"）でシリアライズする。
// 顧客レジストリ（crm.CustomerService）と注文レジストリ（crm.OrderService）の
// サーバー登録関数とクライアントを含む。
package rpc
