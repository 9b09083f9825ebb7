package middleware

import (
	"context"
	"crypto/rand"
	"errors"
	"net/http"
	"strings"
	"time"

	"chequeprinter/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims 解锁会话
type Claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

const (
	issuer        = "chequeprinter"
	sessionCtxKey = "sessionID"
)

var jwtSecret []byte

// InitJWT 初始化签名密钥；未配置时每次启动随机生成，重启后已有会话全部失效
func InitJWT(cfg *config.Config) {
	if cfg != nil && cfg.Security.JWTSecret != "" {
		jwtSecret = []byte(cfg.Security.JWTSecret)
		return
	}
	jwtSecret = make([]byte, 32)
	rand.Read(jwtSecret)
}

// GenerateToken 签发解锁会话，ttl 即自动锁定时间
func GenerateToken(ttl time.Duration) (token string, expiresAt time.Time, err error) {
	now := time.Now()
	expiresAt = now.Add(ttl)
	claims := Claims{
		SessionID: uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret)
	return token, expiresAt, err
}

// ParseToken 解析并校验会话
func ParseToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, errors.New("token 为空")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(issuer))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("token 无效")
	}
	return claims, nil
}

// bearerToken 从 Authorization 头提取 token
func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

func abortUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"code":    http.StatusUnauthorized,
		"message": message,
	})
	c.Abort()
}

// JWTAuth 要求有效的解锁会话
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c, "应用已锁定，请先解锁")
			return
		}
		claims, err := ParseToken(token)
		if err != nil {
			abortUnauthorized(c, "会话已过期，请重新解锁")
			return
		}
		c.Set(sessionCtxKey, claims.SessionID)
		c.Next()
	}
}

// AppLock 设置了 PIN 时要求解锁会话，未设置时直接放行
// skip 中的路径（如解锁接口本身）不受限制
func AppLock(enabled func(ctx context.Context) (bool, error), skip ...string) gin.HandlerFunc {
	auth := JWTAuth()
	skipped := make(map[string]bool, len(skip))
	for _, p := range skip {
		skipped[p] = true
	}
	return func(c *gin.Context) {
		if skipped[c.FullPath()] {
			c.Next()
			return
		}
		on, err := enabled(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"code":    http.StatusInternalServerError,
				"message": config.SafeErrorMessage(err, "读取应用锁状态失败"),
			})
			c.Abort()
			return
		}
		if !on {
			c.Next()
			return
		}
		auth(c)
	}
}

// GetSessionID 当前请求的解锁会话 ID，未解锁时为空
func GetSessionID(c *gin.Context) string {
	return c.GetString(sessionCtxKey)
}
