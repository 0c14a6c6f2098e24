package repository

import (
	"context"

	"tracks-graphql/internal/domain"
)

// TrackRepository 定义了曲目数据的存储和检索操作。
// 返回的曲目都已加载 PostedBy。
type TrackRepository interface {
	// FindByID 根据 ID 查找曲目，不存在时返回 ErrTrackNotFound。
	FindByID(ctx context.Context, id uint) (*domain.Track, error)

	// Search 返回 title、description、url 或发布者用户名中包含 search 的曲目
	// (区分大小写，OR 组合)。search 为空时返回全部曲目。
	Search(ctx context.Context, search string) ([]domain.Track, error)

	// Save 创建或更新曲目。
	Save(ctx context.Context, track *domain.Track) error

	// Delete 删除曲目及其点赞记录，不存在时返回 ErrTrackNotFound。
	Delete(ctx context.Context, id uint) error
}
