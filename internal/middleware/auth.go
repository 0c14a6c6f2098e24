package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"tracks-graphql/internal/auth"
	"tracks-graphql/internal/domain"
)

// CallerResolver 把 token 中的用户 ID 解析为用户
type CallerResolver interface {
	Authenticate(ctx context.Context, userID uint) (*domain.User, error)
}

// ErrMalformedAuthHeader 表示 Authorization 头不是 "Bearer <token>" 格式
var ErrMalformedAuthHeader = errors.New("malformed Authorization header")

// OptionalAuth 返回一个 Gin 中间件：没有 Authorization 头的请求按匿名处理；
// 携带 Bearer token 时必须校验通过，调用者随后写入请求 context。
func OptionalAuth(jwtSecret string, users CallerResolver) gin.HandlerFunc {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty for OptionalAuth middleware")
	}
	if users == nil {
		panic("CallerResolver cannot be nil for OptionalAuth middleware")
	}
	secret := []byte(jwtSecret)

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		tokenStr, err := extractToken(header)
		if err != nil {
			logrus.Warnf("Auth middleware: %v", err)
			abortUnauthorized(c, "Invalid token format")
			return
		}

		userID, err := auth.ParseUserID(tokenStr, secret)
		if err != nil {
			logrus.WithError(err).Warn("Auth middleware: Invalid token")
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		user, err := users.Authenticate(c.Request.Context(), userID)
		if err != nil {
			logrus.WithError(err).WithField("user_id", userID).Warn("Auth middleware: Token subject cannot be resolved")
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set("user_id", user.ID)
		c.Request = c.Request.WithContext(auth.WithCaller(c.Request.Context(), user))
		logrus.WithField("user_id", user.ID).Debug("Auth middleware: User authenticated via JWT")
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
}

// extractToken 从 Authorization 头中提取 Bearer Token
func extractToken(header string) (string, error) {
	parts := strings.Split(header, " ")
	// 使用 EqualFold 忽略 "Bearer" 的大小写
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", ErrMalformedAuthHeader
	}
	return parts[1], nil
}
