// Package order は注文レジストリサービスを実装する。
//
// 注文の作成と顧客ごとの注文一覧をgRPC（crm.OrderService）で提供する。
// 顧客の存在確認はゲートウェイのオーケストレーターが事前に行うため、
// このサービスは customer_id を不透明な文字列として扱う。
package order
