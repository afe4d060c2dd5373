// Package customer は顧客レジストリサービスを実装する。
//
// 顧客レコードの作成・取得・一覧・更新・削除をgRPC（crm.CustomerService）で提供する。
// レコードは Store インターフェースを介して保存され、本番ではリレーショナルストア
// （SQLiteまたはPostgreSQL）、テストではインメモリ実装を使用する。
//
// 顧客IDは "cust_" にUUIDを連結した文字列で、注文IDと接頭辞で区別できる。
// 一覧は作成順で返す。
package customer
