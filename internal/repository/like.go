package repository

import (
	"context"

	"tracks-graphql/internal/domain"
)

// LikeRepository 定义了点赞记录的存储和检索操作。
// 返回的点赞都已加载 User 和 Track (含 Track.PostedBy)。
type LikeRepository interface {
	Create(ctx context.Context, like *domain.Like) error
	FindAll(ctx context.Context) ([]domain.Like, error)
	FindByTrack(ctx context.Context, trackID uint) ([]domain.Like, error)
	FindByUser(ctx context.Context, userID uint) ([]domain.Like, error)
}
