package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader 请求 ID 的 HTTP 头
const RequestIDHeader = "X-Request-ID"

// RequestID 透传客户端提供的 X-Request-ID，没有则生成 UUIDv4。
// 值写回响应头，并以 "request_id" 保存到 Gin Context。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(RequestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set("request_id", rid)
		c.Writer.Header().Set(RequestIDHeader, rid)
		c.Next()
	}
}
