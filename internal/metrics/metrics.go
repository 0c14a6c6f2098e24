package metrics

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 指标定义：
// - http_requests_total：按路径与方法统计请求次数（附带状态码标签）
// - http_request_duration_seconds：按路径与方法统计请求耗时分布
// - graphql_requests_total：按结果（ok/error）统计 GraphQL 请求
// - graphql_operations_total：按根字段与结果（ok 或错误码）统计解析次数
var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "HTTP 请求计数（按路径/方法/状态）"},
		[]string{"path", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP 请求耗时（秒）", Buckets: prometheus.DefBuckets},
		[]string{"path", "method"},
	)
	GraphQLRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "graphql_requests_total", Help: "GraphQL 请求计数（按结果）"},
		[]string{"outcome"},
	)
	// field 只取 schema 中 Query/Mutation 的字段名，取值有限
	GraphQLOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "graphql_operations_total", Help: "GraphQL 根字段解析计数（按字段/结果）"},
		[]string{"field", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequests, HTTPLatency, GraphQLRequests, GraphQLOperations)
}

// Handler 返回记录基础 HTTP 指标的中间件（QPS/耗时）。
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		dur := time.Since(start).Seconds()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		HTTPLatency.WithLabelValues(path, c.Request.Method).Observe(dur)
		HTTPRequests.WithLabelValues(path, c.Request.Method, fmt.Sprintf("%d", c.Writer.Status())).Inc()
	}
}

// Exposer 返回标准 Prometheus 暴露处理器。
func Exposer() gin.HandlerFunc { return gin.WrapH(promhttp.Handler()) }
