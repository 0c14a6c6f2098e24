// Package graph 把 GraphQL schema 绑定到业务服务上。
package graph

import (
	_ "embed"

	graphql "github.com/graph-gophers/graphql-go"

	"tracks-graphql/internal/service"
)

//go:embed schema.graphql
var schemaSDL string

// Resolver 是 Query 和 Mutation 的根解析器。
type Resolver struct {
	tracks *service.TrackService
	users  *service.UserService
}

// NewResolver 创建根解析器
func NewResolver(tracks *service.TrackService, users *service.UserService) *Resolver {
	if tracks == nil || users == nil {
		panic("TrackService and UserService cannot be nil for Resolver")
	}
	return &Resolver{tracks: tracks, users: users}
}

// NewSchema 解析 schema 并绑定解析器。maxDepth <= 0 表示不限制查询深度。
func NewSchema(r *Resolver, maxDepth int) (*graphql.Schema, error) {
	opts := []graphql.SchemaOpt{graphql.UseFieldResolvers()}
	if maxDepth > 0 {
		opts = append(opts, graphql.MaxDepth(maxDepth))
	}
	return graphql.ParseSchema(schemaSDL, r, opts...)
}
