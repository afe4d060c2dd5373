package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL は発行するアクセストークンの有効期間。
// リフレッシュや失効の仕組みは持たない。
const TokenTTL = 24 * time.Hour

// TokenType はトークン発行レスポンスの token_type。
const TokenType = "bearer"

// contextKeySubject はGinコンテキストに認証済みサブジェクトを格納するキー。
const contextKeySubject = "subject"

var (
	// ErrTokenInvalid はトークンの構造または署名が不正であることを表す。
	ErrTokenInvalid = errors.New("invalid token")
	// ErrTokenExpired はトークンの有効期限が切れていることを表す。
	ErrTokenExpired = errors.New("token expired")
)

// Claims は検証済みトークンから取り出したクレーム。
// Subject は認証のみに使用し、認可判断には使用しない。
type Claims struct {
	// Subject はトークンの発行対象。
	Subject string
	// ExpiresAt はトークンの有効期限。
	ExpiresAt time.Time
}

// IssueToken はサブジェクトに対してHS256署名のトークンを発行する。
// 有効期限は now + TokenTTL。
func IssueToken(secret, subject string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("トークンの署名に失敗: %w", err)
	}
	return signed, nil
}

// VerifyToken はトークンの署名と有効期限を検証してクレームを返す。
// 構造・署名・アルゴリズムが不正な場合は ErrTokenInvalid、
// 有効期限が now 以前の場合は ErrTokenExpired を返す。副作用は持たない。
func VerifyToken(secret, tokenString string, now time.Time) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	registered := &jwt.RegisteredClaims{}
	_, err := parser.ParseWithClaims(tokenString, registered, func(_ *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	if registered.ExpiresAt == nil {
		return Claims{}, fmt.Errorf("%w: expクレームがありません", ErrTokenInvalid)
	}
	if !registered.ExpiresAt.Time.After(now) {
		return Claims{}, ErrTokenExpired
	}

	return Claims{
		Subject:   registered.Subject,
		ExpiresAt: registered.ExpiresAt.Time,
	}, nil
}

// JWTAuth はBearerトークンを検証するGinミドルウェアを返す。
// clockには現在時刻を返す関数を渡す。nilの場合は time.Now を使用する。
// 検証に失敗した場合はバックエンドを呼び出さずに401で中断する。
func JWTAuth(secret string, clock func() time.Time) gin.HandlerFunc {
	if clock == nil {
		clock = time.Now
	}

	return func(c *gin.Context) {
		scheme, credential, found := strings.Cut(c.GetHeader("Authorization"), " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || credential == "" {
			abortUnauthorized(c, ErrTokenInvalid)
			return
		}

		claims, err := VerifyToken(secret, credential, clock())
		if err != nil {
			abortUnauthorized(c, err)
			return
		}

		c.Set(contextKeySubject, claims.Subject)
		c.Next()
	}
}

// abortUnauthorized は検証エラーに応じた401レスポンスを返して処理を中断する。
func abortUnauthorized(c *gin.Context, err error) {
	detail := "Invalid token"
	if errors.Is(err, ErrTokenExpired) {
		detail = "Token expired"
	}
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": detail})
}

// GetSubject はGinコンテキストから認証済みサブジェクトを取得する。
// JWTAuthミドルウェアが事前に適用されている必要がある。
func GetSubject(c *gin.Context) string {
	return c.GetString(contextKeySubject)
}
