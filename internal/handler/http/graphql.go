package http

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/sirupsen/logrus"

	"tracks-graphql/internal/metrics"
)

// GraphQLHandler 封装了 GraphQL 请求的 HTTP 处理逻辑
type GraphQLHandler struct {
	schema *graphql.Schema
}

// NewGraphQLHandler 创建 GraphQLHandler 实例
func NewGraphQLHandler(schema *graphql.Schema) *GraphQLHandler {
	if schema == nil {
		panic("GraphQL schema cannot be nil for GraphQLHandler")
	}
	return &GraphQLHandler{schema: schema}
}

// GraphQLRequest 定义 GraphQL 请求体
type GraphQLRequest struct {
	Query         string                 `json:"query" binding:"required"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Serve 处理 POST /graphql (JSON 请求体) 和 GET /graphql (查询字符串)。
// 业务错误放在响应的 errors 中，HTTP 状态码仍为 200。
func (h *GraphQLHandler) Serve(c *gin.Context) {
	var req GraphQLRequest
	if c.Request.Method == http.MethodGet {
		req.Query = c.Query("query")
		req.OperationName = c.Query("operationName")
		if raw := c.Query("variables"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &req.Variables); err != nil {
				ErrorResponse(c, http.StatusBadRequest, "Invalid variables: must be a JSON object")
				return
			}
		}
		if req.Query == "" {
			ErrorResponse(c, http.StatusBadRequest, "Invalid input: query is required")
			return
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.GraphQL: Invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: query is required")
		return
	}

	resp := h.schema.Exec(c.Request.Context(), req.Query, req.OperationName, req.Variables)

	// operationName 由客户端决定，只记录日志，不作为指标标签
	outcome := "ok"
	if len(resp.Errors) > 0 {
		outcome = "error"
		logrus.WithFields(logrus.Fields{
			"operation": req.OperationName,
			"errors":    len(resp.Errors),
			"first":     resp.Errors[0].Message,
		}).Debug("Handler.GraphQL: Response contains errors")
	}
	metrics.GraphQLRequests.WithLabelValues(outcome).Inc()

	SuccessResponse(c, http.StatusOK, resp)
}
