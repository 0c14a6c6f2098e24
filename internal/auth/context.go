// Package auth 在请求 context 中携带当前调用者。
// 没有调用者即匿名请求，不存在单独的匿名用户对象。
package auth

import (
	"context"

	"tracks-graphql/internal/domain"
)

type callerKey struct{}

// WithCaller 返回携带调用者的 context。user 为 nil 时原样返回。
func WithCaller(ctx context.Context, user *domain.User) context.Context {
	if user == nil {
		return ctx
	}
	return context.WithValue(ctx, callerKey{}, user)
}

// CallerFrom 取出当前调用者，匿名请求返回 (nil, false)。
func CallerFrom(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(callerKey{}).(*domain.User)
	return user, ok && user != nil
}
