// Package middleware はゲートウェイとレジストリで使用する共通ミドルウェアを提供する。
//
// Bearerトークンの発行と検証、パニックリカバリ、CORS設定などのGinミドルウェアと、
// レジストリのgRPCサーバーで使用するログ出力・パニックリカバリのインターセプタを含む。
package middleware
