package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v4"
)

var (
	// ErrInvalidToken 表示 token 无法解析、签名无效或已过期
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrInvalidSubject 表示 token 中缺少合法的 user_id
	ErrInvalidSubject = errors.New("token has no valid user_id claim")
)

// ParseUserID 校验 HS256 token 并返回其中的 user_id。
// token 由外部认证服务签发，这里只负责校验。
func ParseUserID(tokenStr string, secret []byte) (uint, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, ErrInvalidToken
	}

	// JWT 数字默认为 float64，需要安全转换为 uint
	userIDFloat, ok := claims["user_id"].(float64)
	if !ok || userIDFloat <= 0 || userIDFloat != float64(uint(userIDFloat)) {
		return 0, ErrInvalidSubject
	}
	return uint(userIDFloat), nil
}
