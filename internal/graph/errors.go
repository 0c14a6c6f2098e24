package graph

import (
	"errors"

	"tracks-graphql/internal/metrics"
	"tracks-graphql/internal/service"
)

// 错误码写入 GraphQL 错误的 extensions.code
const (
	CodePermissionDenied = "PERMISSION_DENIED"
	CodeNotFound         = "NOT_FOUND"
	CodeValidation       = "VALIDATION"
	CodeInternal         = "INTERNAL"
)

// resolverError 实现 graphql-go 的 ResolverError 接口
type resolverError struct {
	err  error
	code string
}

func (e *resolverError) Error() string { return e.err.Error() }

func (e *resolverError) Unwrap() error { return e.err }

func (e *resolverError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.code}
}

// toGraphQLError 把服务层错误映射为带错误码的 GraphQL 错误。
// 未分类的错误统一返回内部错误，不把细节暴露给客户端。
func toGraphQLError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		return &resolverError{err: err, code: CodePermissionDenied}
	case errors.Is(err, service.ErrNotFound):
		return &resolverError{err: err, code: CodeNotFound}
	case errors.Is(err, service.ErrValidation):
		return &resolverError{err: err, code: CodeValidation}
	default:
		return &resolverError{err: service.ErrInternalServer, code: CodeInternal}
	}
}

// observe 转换根字段的错误并按字段名和结果计数
func observe(field string, err error) error {
	gerr := toGraphQLError(err)
	outcome := "ok"
	var rerr *resolverError
	if errors.As(gerr, &rerr) {
		outcome = rerr.code
	}
	metrics.GraphQLOperations.WithLabelValues(field, outcome).Inc()
	return gerr
}
